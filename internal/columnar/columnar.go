// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package columnar reads Parquet files.
package columnar

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ErrNested is returned when scanning files with nested columns.
var ErrNested = errors.New("nested columns are not supported")

// Kind is the value class of a column.
type Kind int

const (
	KindUnknown Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Column describes a top level column of a Parquet file.
type Column struct {
	Name string
	Kind Kind
}

// FileInfo is the footer summary of a Parquet file.
type FileInfo struct {
	Path      string
	Rows      int64
	RowGroups int
	Columns   []Column
}

// Inspect reads the footer of the Parquet file at path.
func Inspect(path string) (*FileInfo, error) {
	f, pf, err := open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	info := &FileInfo{
		Path:      path,
		Rows:      pf.NumRows(),
		RowGroups: len(pf.RowGroups()),
	}
	for _, field := range pf.Schema().Fields() {
		info.Columns = append(info.Columns, Column{Name: field.Name(), Kind: kindOf(field)})
	}
	return info, nil
}

// ScanRows calls fn for every row of the flat Parquet file at path. Values
// are bool, int64, float64, string or nil for nulls, in column order. The
// row slice is reused between calls.
//
// Logical types are not applied: decimals arrive as their unscaled integer
// and dates as days since the epoch, both ordered like the logical values.
func ScanRows(path string, fn func(row []interface{}) error) error {
	f, pf, err := open(path)
	if err != nil {
		return err
	}

	defer f.Close()

	fields := pf.Schema().Fields()
	for _, field := range fields {
		if !field.Leaf() {
			return fmt.Errorf("%s: column %s: %w", path, field.Name(), ErrNested)
		}
	}

	buf := make([]parquet.Row, 128)
	out := make([]interface{}, len(fields))
	for _, rg := range pf.RowGroups() {
		if err := scanRowGroup(rg, buf, out, fn); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func scanRowGroup(rg parquet.RowGroup, buf []parquet.Row, out []interface{}, fn func([]interface{}) error) (err error) {
	rows := rg.Rows()

	defer func() {
		if e := rows.Close(); e != nil && err == nil {
			err = e
		}
	}()

	for {
		n, rerr := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			for i := range out {
				out[i] = nil
			}
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < len(out) {
					out[c] = goValue(v)
				}
			}
			if err := fn(out); err != nil {
				return err
			}
		}

		switch {
		case rerr == io.EOF:
			return nil
		case rerr != nil:
			return rerr
		case n == 0:
			return nil
		}
	}
}

func open(path string) (*os.File, *parquet.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, pf, nil
}

func kindOf(field parquet.Field) Kind {
	if !field.Leaf() {
		return KindUnknown
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return KindBool
	case parquet.Int32, parquet.Int64:
		return KindInt
	case parquet.Float, parquet.Double:
		return KindFloat
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return KindString
	default:
		return KindUnknown
	}
}

func goValue(v parquet.Value) interface{} {
	if v.IsNull() {
		return nil
	}

	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
