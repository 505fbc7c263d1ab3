// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmark

import (
	"context"
	"fmt"
	"strings"
)

// SortTable is the table the sort suites query. It holds the TPC-H lineitem
// rows, which carry the most records and attributes.
const SortTable = "lineitem"

// Querier executes a query and consumes its whole result set.
type Querier interface {
	Drain(ctx context.Context, query string) (rows int64, err error)
}

// SortQuery is a full table sort by Keys.
type SortQuery struct {
	Description string
	Attributes  int
	Keys        []string
}

// SQL returns the query text sorting table by q.Keys.
func (q SortQuery) SQL(table string) string {
	return fmt.Sprintf("SELECT * FROM %s ORDER BY %s", table, strings.Join(q.Keys, ", "))
}

// Suite is a named group of sort queries plotted together.
type Suite struct {
	// Name is the report key of the suite.
	Name string
	// Plot is the chart file name prefix, the scale is appended.
	Plot    string
	Queries []SortQuery
}

// PlotFile returns the chart file name for scale.
func (s Suite) PlotFile(scale int) string {
	return fmt.Sprintf("%s_%d.png", s.Plot, scale)
}

var (
	// NumberSuite sorts on numeric and date attributes only.
	NumberSuite = Suite{
		Name: "Number Sort",
		Plot: "number_sort_ratio",
		Queries: []SortQuery{
			{"Number Test With 1 attribute", 1, []string{"L_SUPPKEY"}},
			{"Number Test With 2 attributes", 2, []string{"L_LINENUMBER", "L_RECEIPTDATE"}},
			{"Number Test With 3 attributes", 3, []string{"L_LINENUMBER", "L_DISCOUNT", "L_TAX"}},
			{"Number Test With 4 attributes", 4, []string{"L_LINENUMBER", "L_DISCOUNT", "L_QUANTITY", "L_EXTENDEDPRICE"}},
		},
	}

	// StringSuite sorts on string attributes only, the last one being the
	// variable length comment.
	StringSuite = Suite{
		Name: "String Sort",
		Plot: "string_sort_ratio",
		Queries: []SortQuery{
			{"String Test With 1 attribute", 1, []string{"L_SHIPMODE"}},
			{"String Test With 2 attributes", 2, []string{"L_SHIPMODE", "L_SHIPINSTRUCT"}},
			{"String Test With 3 attributes", 3, []string{"L_SHIPMODE", "L_SHIPINSTRUCT", "L_RETURNFLAG"}},
			{"String Test With 4 attributes", 4, []string{"L_SHIPMODE", "L_SHIPINSTRUCT", "L_RETURNFLAG", "L_COMMENT"}},
		},
	}

	// MixSuite mixes numeric and string attributes.
	MixSuite = Suite{
		Name: "Mix Sort",
		Plot: "mix_sort_ratio",
		Queries: []SortQuery{
			{"Mix Test With 1 number attribute and 1 string attribute", 2, []string{"L_LINENUMBER", "L_SHIPINSTRUCT"}},
			{"Mix Test With 1 number attribute and 2 string attribute", 3, []string{"L_LINENUMBER", "L_SHIPINSTRUCT", "L_SHIPMODE"}},
			{"Mix Test With 2 number attribute and 2 string attribute", 4, []string{"L_LINENUMBER", "L_SHIPINSTRUCT", "L_SHIPMODE", "L_DISCOUNT"}},
		},
	}
)

// RunSuite benchmarks every query of s against table via q.
func (r *Runner) RunSuite(ctx context.Context, q Querier, table string, s Suite) ([]*Result, error) {
	var results []*Result
	for _, sq := range s.Queries {
		query := sq.SQL(table)
		res, err := r.Run(sq.Description, sq.Attributes, func() error {
			_, err := q.Drain(ctx, query)
			return err
		})
		if err != nil {
			return nil, err
		}

		results = append(results, res)
	}
	return results, nil
}
