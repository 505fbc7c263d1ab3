// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engines

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/whippetsort/whippet/internal/columnar"
	"github.com/whippetsort/whippet/internal/engine"
)

// rows per insert transaction
const batchSize = 1000

func init() {
	engine.Register(newSQLite3())
}

var _ engine.Engine = (*sqlite3)(nil)

type sqlite3 struct{}

func newSQLite3() *sqlite3 {
	return &sqlite3{}
}

func (b *sqlite3) Name() string { return "sqlite3" }

func (b *sqlite3) Open(ctx context.Context) (*engine.Conn, error) {
	return engine.Open(ctx, b.Name(), "file::memory:")
}

// LoadParquet copies the file row by row; SQLite cannot read Parquet.
func (b *sqlite3) LoadParquet(ctx context.Context, c *engine.Conn, table, path string) error {
	return loadParquet(ctx, c, table, path)
}

func loadParquet(ctx context.Context, c *engine.Conn, table, path string) error {
	info, err := columnar.Inspect(path)
	if err != nil {
		return err
	}

	if len(info.Columns) == 0 {
		return fmt.Errorf("%s: no columns", path)
	}

	cols := make([]string, len(info.Columns))
	args := make([]string, len(info.Columns))
	for i, col := range info.Columns {
		cols[i] = engine.QuoteIdent(col.Name) + " " + affinity(col.Kind)
		args[i] = fmt.Sprintf("?%d", i+1)
	}
	if err := c.Exec(ctx, fmt.Sprintf("create table %s (%s)", engine.QuoteIdent(table), strings.Join(cols, ", "))); err != nil {
		return err
	}

	ins := fmt.Sprintf("insert into %s values (%s)", engine.QuoteIdent(table), strings.Join(args, ", "))
	return cpTable(ctx, c, path, ins)
}

func cpTable(ctx context.Context, c *engine.Conn, path, ins string) (err error) {
	var tx *sql.Tx
	var stmt *sql.Stmt

	defer func() {
		if err != nil && tx != nil {
			tx.Rollback()
		}
	}()

	i := 0
	if err = columnar.ScanRows(path, func(row []interface{}) error {
		if i%batchSize == 0 {
			if i != 0 {
				if err := tx.Commit(); err != nil {
					return err
				}
			}

			var err error
			if tx, err = c.Begin(ctx); err != nil {
				return err
			}

			if stmt, err = tx.PrepareContext(ctx, ins); err != nil {
				return err
			}
		}
		i++

		_, err := stmt.ExecContext(ctx, row...)
		return err
	}); err != nil {
		return err
	}

	if tx == nil {
		return nil
	}

	return tx.Commit()
}

func affinity(k columnar.Kind) string {
	switch k {
	case columnar.KindBool, columnar.KindInt:
		return "integer"
	case columnar.KindFloat:
		return "real"
	case columnar.KindString:
		return "text"
	default:
		return "blob"
	}
}
