// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/whippetsort/whippet/gentpc/dataset"
	"github.com/whippetsort/whippet/internal/config"
	"github.com/whippetsort/whippet/internal/engine"
)

// the generator extensions exist only for DuckDB
const generatorEngine = "duckdb"

type options struct {
	scale   int
	dataset string
	workdir string
	verify  bool
}

func run(ctx context.Context, opts options, logf func(string, ...interface{})) error {
	ds, err := dataset.Lookup(opts.dataset)
	if err != nil {
		return err
	}

	eng, err := engine.Lookup(generatorEngine)
	if err != nil {
		return err
	}

	files, err := dbGen(ctx, eng, ds, opts.scale, config.DataDir(opts.workdir, ds.Name(), opts.scale), logf)
	if err != nil {
		return err
	}

	if opts.verify {
		return verify(files, logf)
	}
	return nil
}

// dbGen generates ds in a fresh in-memory database of eng and exports every
// table into dir, which must not exist yet. It returns the written files.
func dbGen(ctx context.Context, eng engine.Engine, ds dataset.Generator, sf int, dir string, logf func(string, ...interface{})) (files []string, err error) {
	if err := os.MkdirAll(filepath.Dir(dir), 0775); err != nil {
		return nil, err
	}

	if err := os.Mkdir(dir, 0775); err != nil {
		return nil, err
	}

	logf("Generating %s data with SF=%d, output dir is %s", ds.Name(), sf, dir)
	err = engine.With(ctx, eng, func(c *engine.Conn) error {
		if err := ds.Generate(ctx, c, sf); err != nil {
			return err
		}

		tables, err := c.Strings(ctx, "SHOW TABLES")
		if err != nil {
			return err
		}

		if len(tables) == 0 {
			return fmt.Errorf("%s: generator created no tables", ds.Name())
		}

		for _, t := range tables {
			pth, err := exportTable(ctx, c, t, dir, logf)
			if err != nil {
				return err
			}

			files = append(files, pth)
		}
		return nil
	})
	return files, err
}

func exportTable(ctx context.Context, c *engine.Conn, table, dir string, logf func(string, ...interface{})) (string, error) {
	pth := filepath.Join(dir, table+".parquet")
	logf("write to %s", pth)
	if err := c.Exec(ctx, fmt.Sprintf(
		"COPY (SELECT * FROM %s) TO %s (FORMAT parquet)",
		engine.QuoteIdent(table),
		engine.QuoteString(pth),
	)); err != nil {
		return "", fmt.Errorf("export %s: %w", table, err)
	}
	return pth, nil
}
