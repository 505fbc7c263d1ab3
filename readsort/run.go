// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/whippetsort/whippet/benchmark"
	"github.com/whippetsort/whippet/internal/columnar"
	"github.com/whippetsort/whippet/internal/config"
	"github.com/whippetsort/whippet/internal/engine"
	"github.com/whippetsort/whippet/internal/priority"
)

// errMissingInput marks a missing data directory or source file.
var errMissingInput = errors.New("missing input")

const (
	dataset    = "tpch"
	sourceFile = "lineitem.parquet"
)

type options struct {
	scale      int
	warmup     int
	iterations int
	output     string
	workdir    string
	engine     string
	plotDir    string
	dark       bool
	hinter     priority.Hinter
}

func (o *options) outputFile() string {
	if o.output != "" {
		return o.output
	}
	return fmt.Sprintf("%s_bench_res_%d.json", o.engine, o.scale)
}

func run(ctx context.Context, opts options, stdout io.Writer, logf func(string, ...interface{})) error {
	dataDir := config.DataDir(opts.workdir, dataset, opts.scale)
	if _, err := os.Stat(dataDir); err != nil {
		return fmt.Errorf("%w: data directory %s does not exist. Use gentpc to generate the data first", errMissingInput, dataDir)
	}

	file := filepath.Join(dataDir, sourceFile)
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("%w: file %s does not exist", errMissingInput, file)
	}

	eng, err := engine.Lookup(opts.engine)
	if err != nil {
		return err
	}

	return engine.With(ctx, eng, func(c *engine.Conn) error {
		if err := eng.LoadParquet(ctx, c, benchmark.SortTable, file); err != nil {
			return err
		}

		priority.BestEffort(opts.hinter, logf)

		r := &benchmark.Runner{Warmup: opts.warmup, Iterations: opts.iterations, Logf: logf}
		r.WriteHeader(stdout, eng.Name())

		report, err := benchmarkAll(ctx, r, c, file)
		if err != nil {
			return err
		}

		report.AddRatios()
		if err := plotAll(report, opts, logf); err != nil {
			return err
		}

		if err := report.WriteFile(opts.outputFile()); err != nil {
			return err
		}

		logf("results written into %s", opts.outputFile())
		return nil
	})
}

func benchmarkAll(ctx context.Context, r *benchmark.Runner, c *engine.Conn, file string) (*benchmark.Report, error) {
	var (
		report benchmark.Report
		err    error
	)
	if report.ReadTime, err = r.Run("Arrow Read Benchmark", 0, func() error {
		_, err := columnar.ReadRows(ctx, file)
		return err
	}); err != nil {
		return nil, err
	}

	for _, s := range []struct {
		suite benchmark.Suite
		dst   *[]*benchmark.Result
	}{
		{benchmark.NumberSuite, &report.NumberSort},
		{benchmark.StringSuite, &report.StringSort},
		{benchmark.MixSuite, &report.MixSort},
	} {
		if *s.dst, err = r.RunSuite(ctx, c, benchmark.SortTable, s.suite); err != nil {
			return nil, err
		}
	}
	return &report, nil
}

func plotAll(report *benchmark.Report, opts options, logf func(string, ...interface{})) error {
	theme := benchmark.LightTheme
	if opts.dark {
		theme = benchmark.DarkTheme
	}

	for _, s := range []struct {
		suite   benchmark.Suite
		results []*benchmark.Result
	}{
		{benchmark.NumberSuite, report.NumberSort},
		{benchmark.StringSuite, report.StringSort},
		{benchmark.MixSuite, report.MixSort},
	} {
		graph := &benchmark.RatioChart{
			Title: fmt.Sprintf("%s | %s | SF %d", s.suite.Name, opts.engine, opts.scale),
			Theme: theme,
		}
		filename := filepath.Join(opts.plotDir, s.suite.PlotFile(opts.scale))
		if err := graph.Render(filename, s.results); err != nil {
			return err
		}

		logf("plot written into %s", filename)
	}
	return nil
}
