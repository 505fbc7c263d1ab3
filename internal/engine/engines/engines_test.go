// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engines

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whippetsort/whippet/benchmark"
	"github.com/whippetsort/whippet/internal/columnar"
	"github.com/whippetsort/whippet/internal/engine"
	"github.com/whippetsort/whippet/internal/testfixture"
)

func fixture(t *testing.T, rows int) string {
	fn := filepath.Join(t.TempDir(), "lineitem.parquet")
	require.NoError(t, testfixture.WriteLineItems(fn, rows))
	return fn
}

func TestLoadParquet(t *testing.T) {
	const rows = 10
	fn := fixture(t, rows)
	ctx := context.Background()

	for _, nm := range engine.List() {
		t.Run(nm, func(t *testing.T) {
			e, err := engine.Lookup(nm)
			require.NoError(t, err)

			require.NoError(t, engine.With(ctx, e, func(c *engine.Conn) error {
				require.NoError(t, e.LoadParquet(ctx, c, benchmark.SortTable, fn))

				n, err := c.Count(ctx, benchmark.SortTable)
				require.NoError(t, err)
				require.EqualValues(t, rows, n)

				for _, s := range []benchmark.Suite{benchmark.NumberSuite, benchmark.StringSuite, benchmark.MixSuite} {
					for _, q := range s.Queries {
						n, err := c.Drain(ctx, q.SQL(benchmark.SortTable))
						require.NoError(t, err, q.Description)
						require.EqualValues(t, rows, n, q.Description)
					}
				}
				return nil
			}))
		})
	}
}

func TestSQLiteBatches(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	rows := 2*batchSize + 17
	fn := fixture(t, rows)
	ctx := context.Background()

	e, err := engine.Lookup("sqlite3")
	require.NoError(t, err)
	require.NoError(t, engine.With(ctx, e, func(c *engine.Conn) error {
		require.NoError(t, e.LoadParquet(ctx, c, "t", fn))

		n, err := c.Count(ctx, "t")
		require.NoError(t, err)
		require.EqualValues(t, rows, n)

		modes, err := c.Strings(ctx, "select distinct l_shipmode from t order by 1")
		require.NoError(t, err)
		require.Equal(t, []string{"AIR", "FOB", "MAIL", "RAIL", "REG AIR", "SHIP", "TRUCK"}, modes)
		return nil
	}))
}

func TestLoadParquetMissingFile(t *testing.T) {
	ctx := context.Background()
	fn := filepath.Join(t.TempDir(), "missing.parquet")

	for _, nm := range engine.List() {
		e, err := engine.Lookup(nm)
		require.NoError(t, err)
		require.Error(t, engine.With(ctx, e, func(c *engine.Conn) error {
			return e.LoadParquet(ctx, c, "t", fn)
		}), nm)
	}
}

func TestAffinity(t *testing.T) {
	require.Equal(t, "integer", affinity(columnar.KindInt))
	require.Equal(t, "integer", affinity(columnar.KindBool))
	require.Equal(t, "real", affinity(columnar.KindFloat))
	require.Equal(t, "text", affinity(columnar.KindString))
	require.Equal(t, "blob", affinity(columnar.KindUnknown))
}

func TestLoadParquetNulls(t *testing.T) {
	const rows = 12
	fn := filepath.Join(t.TempDir(), "typed.parquet")
	require.NoError(t, testfixture.Write(fn, testfixture.TypedLineItems(rows)))
	ctx := context.Background()

	for _, nm := range engine.List() {
		t.Run(nm, func(t *testing.T) {
			e, err := engine.Lookup(nm)
			require.NoError(t, err)

			require.NoError(t, engine.With(ctx, e, func(c *engine.Conn) error {
				require.NoError(t, e.LoadParquet(ctx, c, "t", fn))

				n, err := c.Count(ctx, "t")
				require.NoError(t, err)
				require.EqualValues(t, rows, n)

				// rows 0, 3, 6, 9
				n, err = c.Drain(ctx, "select * from t where l_comment is null")
				require.NoError(t, err)
				require.EqualValues(t, 4, n)

				// rows 0, 4, 8
				n, err = c.Drain(ctx, "select * from t where l_quantity is null")
				require.NoError(t, err)
				require.EqualValues(t, 3, n)

				n, err = c.Drain(ctx, "select * from t order by l_extendedprice, l_comment")
				require.NoError(t, err)
				require.EqualValues(t, rows, n)
				return nil
			}))
		})
	}
}
