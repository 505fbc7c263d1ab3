// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engines registers the available embedded engines. Import it for its
// side effects.
package engines

import (
	"context"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/whippetsort/whippet/internal/engine"
)

func init() {
	engine.Register(newDuckDB())
}

var _ engine.Engine = (*duckDB)(nil)

type duckDB struct{}

func newDuckDB() *duckDB {
	return &duckDB{}
}

func (b *duckDB) Name() string { return "duckdb" }

// Open returns an in-memory database; an empty DSN means ":memory:".
func (b *duckDB) Open(ctx context.Context) (*engine.Conn, error) {
	return engine.Open(ctx, b.Name(), "")
}

// LoadParquet materializes the file so later queries do no I/O.
func (b *duckDB) LoadParquet(ctx context.Context, c *engine.Conn, table, path string) error {
	return c.Exec(ctx, fmt.Sprintf(
		"CREATE TABLE %s AS SELECT * FROM read_parquet(%s)",
		engine.QuoteIdent(table),
		engine.QuoteString(path),
	))
}
