// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testfixture writes small deterministic TPC-H shaped Parquet files
// for tests.
package testfixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"modernc.org/mathutil"
)

// LineItem is a lineitem row. Decimals are stored as doubles and dates as
// days since the epoch.
type LineItem struct {
	OrderKey      int64   `parquet:"l_orderkey"`
	PartKey       int64   `parquet:"l_partkey"`
	SuppKey       int64   `parquet:"l_suppkey"`
	LineNumber    int32   `parquet:"l_linenumber"`
	Quantity      float64 `parquet:"l_quantity"`
	ExtendedPrice float64 `parquet:"l_extendedprice"`
	Discount      float64 `parquet:"l_discount"`
	Tax           float64 `parquet:"l_tax"`
	ReturnFlag    string  `parquet:"l_returnflag"`
	LineStatus    string  `parquet:"l_linestatus"`
	ShipDate      int32   `parquet:"l_shipdate"`
	CommitDate    int32   `parquet:"l_commitdate"`
	ReceiptDate   int32   `parquet:"l_receiptdate"`
	ShipInstruct  string  `parquet:"l_shipinstruct"`
	ShipMode      string  `parquet:"l_shipmode"`
	Comment       string  `parquet:"l_comment"`
}

// LineItemColumns is the number of columns of LineItem.
const LineItemColumns = 16

var (
	instructions = []string{
		"DELIVER IN PERSON",
		"COLLECT COD",
		"NONE",
		"TAKE BACK RETURN",
	}
	modes = []string{
		"REG AIR",
		"AIR",
		"RAIL",
		"SHIP",
		"TRUCK",
		"MAIL",
		"FOB",
	}
	nouns = []string{
		"foxes",
		"ideas",
		"theodolites",
		"pinto beans",
		"instructions",
		"dependencies",
		"excuses",
		"platelets",
	}
	adverbs = []string{
		"sometimes",
		"always",
		"never",
		"furiously",
		"slyly",
		"carefully",
		"blithely",
	}
	flags = []string{"R", "A", "N"}
)

// 1992-01-01
const startDate = 8035

// LineItems returns n rows. The same n always yields the same rows; sort keys
// are permuted so no column is already in order.
func LineItems(n int) []LineItem {
	if n <= 0 {
		return nil
	}

	supp := permutation(n, 1)
	days := permutation(n, 2)
	r := make([]LineItem, n)
	for i := range r {
		d := int32(startDate + days[i])
		r[i] = LineItem{
			OrderKey:      int64(i/7 + 1),
			PartKey:       int64(supp[i]*3 + 1),
			SuppKey:       int64(supp[i] + 1),
			LineNumber:    int32(i%7 + 1),
			Quantity:      float64(1 + (i*13)%50),
			ExtendedPrice: float64(90100+supp[i]*17) / 100,
			Discount:      float64((i*3)%11) / 100,
			Tax:           float64((i*5)%9) / 100,
			ReturnFlag:    flags[i%len(flags)],
			LineStatus:    []string{"O", "F"}[i%2],
			ShipDate:      d,
			CommitDate:    d + 30,
			ReceiptDate:   d + int32(1+i%30),
			ShipInstruct:  instructions[supp[i]%len(instructions)],
			ShipMode:      modes[days[i]%len(modes)],
			Comment:       fmt.Sprintf("%s %s", adverbs[i%len(adverbs)], nouns[supp[i]%len(nouns)]),
		}
	}
	return r
}

// WriteLineItems writes LineItems(n) into the Parquet file path.
func WriteLineItems(path string, n int) error {
	return Write(path, LineItems(n))
}

// Write writes rows into the Parquet file path, creating parent directories.
// The schema is derived from the parquet tags of T.
func Write[T any](path string, rows []T) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0775); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()

	var zero T
	w := parquet.NewWriter(f, parquet.SchemaOf(zero))
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}

	return w.Close()
}

// TypedLineItem is a lineitem subset laid out like DuckDB exports it:
// optional columns, DECIMAL(15,2) prices and DATE ship dates.
type TypedLineItem struct {
	// hundredths
	ExtendedPrice int64 `parquet:"l_extendedprice,decimal(2:15)"`
	// days since the epoch
	ShipDate int32   `parquet:"l_shipdate,date"`
	Quantity *int64  `parquet:"l_quantity,optional"`
	Comment  *string `parquet:"l_comment,optional"`
}

// TypedLineItems returns n rows. Every third row has a null comment and every
// fourth a null quantity, starting with the first row.
func TypedLineItems(n int) []TypedLineItem {
	r := make([]TypedLineItem, n)
	for i := range r {
		r[i] = TypedLineItem{
			ExtendedPrice: int64(10000 + i*101),
			ShipDate:      int32(startDate + i),
		}
		if i%4 != 0 {
			q := int64(1 + i%50)
			r[i].Quantity = &q
		}
		if i%3 != 0 {
			c := adverbs[i%len(adverbs)] + " " + nouns[i%len(nouns)]
			r[i].Comment = &c
		}
	}
	return r
}

// permutation returns the numbers 0..n-1 in an order fixed by seed.
func permutation(n int, seed int64) []int {
	if n == 1 {
		return []int{0}
	}

	fc, err := mathutil.NewFC32(0, n-1, true)
	if err != nil {
		panic(err)
	}

	fc.Seed(seed)
	r := make([]int, n)
	for i := range r {
		r[i] = fc.Next()
	}
	return r
}
