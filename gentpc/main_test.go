// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whippetsort/whippet/gentpc/dataset"
	"github.com/whippetsort/whippet/internal/columnar"
	"github.com/whippetsort/whippet/internal/engine"
)

// The generator extensions are downloaded on first use.
var oDBGen = flag.Bool("dbgen", false, "run the generator extensions, needs network access")

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// toy creates two small tables without any extension.
type toy struct{}

func (toy) Name() string { return "toy" }

func (toy) Generate(ctx context.Context, c *engine.Conn, sf int) error {
	for _, q := range []string{
		fmt.Sprintf("CREATE TABLE region AS SELECT range AS r_regionkey, 'region ' || range AS r_name FROM range(%d)", 5*sf),
		fmt.Sprintf("CREATE TABLE nation AS SELECT range AS n_nationkey, range %% 5 AS n_regionkey FROM range(%d)", 25*sf),
	} {
		if err := c.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func discard(string, ...interface{}) {}

func duckdb(t *testing.T) engine.Engine {
	e, err := engine.Lookup(generatorEngine)
	require.NoError(t, err)
	return e
}

func TestDBGen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "toy", "s2")

	files, err := dbGen(context.Background(), duckdb(t), toy{}, 2, dir, discard)
	require.NoError(t, err)

	sort.Strings(files)
	require.Equal(t, []string{
		filepath.Join(dir, "nation.parquet"),
		filepath.Join(dir, "region.parquet"),
	}, files)

	info, err := columnar.Inspect(files[0])
	require.NoError(t, err)
	require.EqualValues(t, 50, info.Rows)
	require.Len(t, info.Columns, 2)

	var logs []string
	require.NoError(t, verify(files, func(format string, args ...interface{}) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}))
	require.Len(t, logs, 2)
}

func TestDBGenRefusesExistingDir(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "keep")
	require.NoError(t, os.WriteFile(marker, nil, 0644))

	_, err := dbGen(context.Background(), duckdb(t), toy{}, 1, dir, discard)
	require.ErrorIs(t, err, os.ErrExist)
	require.FileExists(t, marker)
}

func TestVerifyEmptyTable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "s0")
	files, err := dbGen(context.Background(), duckdb(t), toy{}, 0, dir, discard)
	require.NoError(t, err)

	err = verify(files, discard)
	require.Error(t, err)
	require.Contains(t, err.Error(), "region.parquet")
}

func TestRunUnknownDataset(t *testing.T) {
	err := run(context.Background(), options{scale: 1, dataset: "ssb", workdir: t.TempDir()}, discard)
	require.ErrorIs(t, err, dataset.ErrUnknownDataset)
}

func TestRunTPCH(t *testing.T) {
	if !*oDBGen {
		t.Skip("enable with -dbgen")
	}

	workdir := t.TempDir()
	require.NoError(t, run(context.Background(), options{scale: 1, dataset: "tpch", workdir: workdir, verify: true}, t.Logf))

	dir := filepath.Join(workdir, "data", "tpch", "s1")
	m, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	require.NoError(t, err)
	require.Len(t, m, 8)
	require.FileExists(t, filepath.Join(dir, "lineitem.parquet"))

	for _, fn := range m {
		n, err := columnar.ReadRows(context.Background(), fn)
		require.NoError(t, err)
		require.Greater(t, n, int64(0), fn)
	}
}
