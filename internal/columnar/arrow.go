// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package columnar

import (
	"context"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	arrowpq "github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

// ReadTable reads the whole Parquet file at path into an Arrow table. The
// caller must Release the table.
func ReadTable(ctx context.Context, path string) (arrow.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	mem := memory.DefaultAllocator
	return pqarrow.ReadTable(
		ctx,
		f,
		arrowpq.NewReaderProperties(mem),
		pqarrow.ArrowReadProperties{Parallel: true, BatchSize: 64 << 10},
		mem,
	)
}

// ReadRows reads the Parquet file at path the way ReadTable does, releases
// the table and returns its row count.
func ReadRows(ctx context.Context, path string) (int64, error) {
	tbl, err := ReadTable(ctx, path)
	if err != nil {
		return 0, err
	}

	defer tbl.Release()
	return tbl.NumRows(), nil
}
