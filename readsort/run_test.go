// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whippetsort/whippet/benchmark"
	"github.com/whippetsort/whippet/internal/config"
	"github.com/whippetsort/whippet/internal/engine"
	_ "github.com/whippetsort/whippet/internal/engine/engines"
	"github.com/whippetsort/whippet/internal/priority"
	"github.com/whippetsort/whippet/internal/testfixture"
)

func discard(string, ...interface{}) {}

func testOptions(t *testing.T, eng string) options {
	dir := t.TempDir()
	return options{
		scale:      1,
		warmup:     1,
		iterations: 3,
		output:     filepath.Join(dir, "out", eng+"_bench_res_1.json"),
		workdir:    dir,
		engine:     eng,
		plotDir:    filepath.Join(dir, "plots"),
		hinter:     priority.Nop,
	}
}

func writeFixture(t *testing.T, opts options, rows int) {
	fn := filepath.Join(config.DataDir(opts.workdir, dataset, opts.scale), sourceFile)
	require.NoError(t, testfixture.WriteLineItems(fn, rows))
}

func TestMissingInput(t *testing.T) {
	opts := testOptions(t, "duckdb")

	err := run(context.Background(), opts, &bytes.Buffer{}, discard)
	require.ErrorIs(t, err, errMissingInput)
	require.Contains(t, err.Error(), "data directory")

	require.NoError(t, os.MkdirAll(config.DataDir(opts.workdir, dataset, opts.scale), 0775))
	err = run(context.Background(), opts, &bytes.Buffer{}, discard)
	require.ErrorIs(t, err, errMissingInput)
	require.Contains(t, err.Error(), sourceFile)
	require.NoFileExists(t, opts.output)
}

func TestUnknownEngine(t *testing.T) {
	opts := testOptions(t, "oracle")
	writeFixture(t, opts, 10)

	err := run(context.Background(), opts, &bytes.Buffer{}, discard)
	require.ErrorIs(t, err, engine.ErrUnknownEngine)
}

func TestOutputFile(t *testing.T) {
	opts := options{engine: "duckdb", scale: 3}
	require.Equal(t, "duckdb_bench_res_3.json", opts.outputFile())

	opts.output = "res.json"
	require.Equal(t, "res.json", opts.outputFile())
}

func TestRun(t *testing.T) {
	for _, eng := range engine.List() {
		t.Run(eng, func(t *testing.T) {
			opts := testOptions(t, eng)
			writeFixture(t, opts, 10)

			hinted := 0
			opts.hinter = priority.HinterFunc(func() error {
				hinted++
				return nil
			})

			var stdout bytes.Buffer
			require.NoError(t, run(context.Background(), opts, &stdout, discard))
			require.Equal(t, 1, hinted)
			require.Contains(t, stdout.String(), "engine:     "+eng)

			b, err := os.ReadFile(opts.output)
			require.NoError(t, err)

			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(b, &raw))
			var keys []string
			for k := range raw {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			require.Equal(t, []string{"Mix Sort", "Number Sort", "Read Time", "String Sort"}, keys)

			var read map[string]interface{}
			require.NoError(t, json.Unmarshal(raw["Read Time"], &read))
			require.Equal(t, "Arrow Read Benchmark", read["Description"])
			require.IsType(t, float64(0), read["Read/Sort Ratio"])

			for _, k := range []string{"Number Sort", "String Sort", "Mix Sort"} {
				var leaves []map[string]interface{}
				require.NoError(t, json.Unmarshal(raw[k], &leaves))
				require.NotEmpty(t, leaves)
				for _, leaf := range leaves {
					require.IsType(t, float64(0), leaf["Read/Sort Ratio"], leaf["Description"])
				}
			}

			for _, s := range []benchmark.Suite{benchmark.NumberSuite, benchmark.StringSuite, benchmark.MixSuite} {
				require.FileExists(t, filepath.Join(opts.plotDir, s.PlotFile(opts.scale)))
			}
		})
	}
}
