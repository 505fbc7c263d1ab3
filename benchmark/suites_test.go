// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmark

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	clock   *fakeClock
	queries []string
	err     error
}

func (q *fakeQuerier) Drain(ctx context.Context, query string) (int64, error) {
	q.queries = append(q.queries, query)
	if q.err != nil {
		return 0, q.err
	}

	q.clock.advance(time.Millisecond)
	return 10, nil
}

func TestSortQuerySQL(t *testing.T) {
	require.Equal(t,
		"SELECT * FROM lineitem ORDER BY L_LINENUMBER, L_RECEIPTDATE",
		NumberSuite.Queries[1].SQL(SortTable),
	)
}

func TestSuites(t *testing.T) {
	for _, s := range []Suite{NumberSuite, StringSuite, MixSuite} {
		for _, q := range s.Queries {
			require.Len(t, q.Keys, q.Attributes, q.Description)
		}
	}
	require.Equal(t, "mix_sort_ratio_3.png", MixSuite.PlotFile(3))
}

func TestRunSuite(t *testing.T) {
	r, clock, logs := newRunner(1, 2)
	q := &fakeQuerier{clock: clock}

	results, err := r.RunSuite(context.Background(), q, SortTable, StringSuite)
	require.NoError(t, err)
	require.Len(t, results, len(StringSuite.Queries))
	require.Len(t, q.queries, 3*len(StringSuite.Queries))
	require.Len(t, *logs, len(StringSuite.Queries))

	for i, res := range results {
		require.Equal(t, StringSuite.Queries[i].Description, res.Description)
		require.Equal(t, StringSuite.Queries[i].Attributes, res.Attributes)
		require.Equal(t, 1.0, res.Avg)
	}
	require.Equal(t, "SELECT * FROM lineitem ORDER BY L_SHIPMODE", q.queries[0])
}

func TestRunSuiteError(t *testing.T) {
	errQuery := errors.New("no such table")
	r, clock, _ := newRunner(0, 1)

	_, err := r.RunSuite(context.Background(), &fakeQuerier{clock: clock, err: errQuery}, "missing", MixSuite)
	require.ErrorIs(t, err, errQuery)
	require.Contains(t, err.Error(), MixSuite.Queries[0].Description)
}
