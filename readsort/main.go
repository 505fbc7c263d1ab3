// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command readsort compares the time needed to read the TPC-H lineitem Parquet
// file with the time an embedded engine needs to sort the same data by a
// growing number of attributes.
//
// The file is first loaded into an in-memory table so the sort timings carry
// no I/O. Results go to a JSON report and three bar charts of the read/sort
// ratio.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/whippetsort/whippet/internal/config"
	"github.com/whippetsort/whippet/internal/engine"
	_ "github.com/whippetsort/whippet/internal/engine/engines"
	"github.com/whippetsort/whippet/internal/priority"
)

const (
	minScale = 1
	maxScale = 7
)

func main() {
	log.SetFlags(0)

	flags := pflag.NewFlagSet("readsort", pflag.ExitOnError)
	flags.IntP("scale", "s", 1, fmt.Sprintf("Scale factor of the generated dataset, %d to %d.", minScale, maxScale))
	flags.IntP("warmup", "w", 2, "Warmup iterations discarded before timing.")
	flags.IntP("iterations", "i", 20, "Timed iterations per benchmark.")
	flags.StringP("output", "f", "", "Output file. (default <engine>_bench_res_<scale>.json)")
	flags.String(config.KeyWorkdir, ".", "Directory holding the data/ tree.")
	flags.StringP(config.KeyEngine, "e", "duckdb", fmt.Sprintf("Engine running the sorts, one of %s.", strings.Join(engine.List(), ", ")))
	flags.String("plot-dir", ".", "Directory receiving the charts.")
	flags.Bool("dark", false, "Use dark palette when plotting.")
	flags.Parse(os.Args[1:])

	v, err := config.Load(flags)
	if err != nil {
		log.Fatal(err)
	}

	opts := options{
		scale:      v.GetInt("scale"),
		warmup:     v.GetInt("warmup"),
		iterations: v.GetInt("iterations"),
		output:     v.GetString("output"),
		workdir:    v.GetString(config.KeyWorkdir),
		engine:     v.GetString(config.KeyEngine),
		plotDir:    v.GetString("plot-dir"),
		dark:       v.GetBool("dark"),
		hinter:     priority.Default(),
	}
	if err := checkScale(opts.scale); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flags.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), opts, os.Stdout, log.Printf); err != nil {
		if errors.Is(err, errMissingInput) {
			fmt.Println(err)
			os.Exit(-1)
		}

		log.Fatal(err)
	}
}

func checkScale(scale int) error {
	if scale < minScale || scale > maxScale {
		return fmt.Errorf("invalid -s/--scale value %d, want %d to %d", scale, minScale, maxScale)
	}
	return nil
}
