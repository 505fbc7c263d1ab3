// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gentpc generates a TPC benchmark dataset with the DuckDB generator
// extensions and writes every table as <workdir>/data/<dataset>/s<sf>/<table>.parquet.
//
// TPC-H 4.1.3.1 fixes the scale factors of a valid test database to
//
//	1, 10, 30, 100, 300, 1000, 3000, 10000, 30000, 100000
//
// Other positive integers are accepted too, the data are meant for sorting
// experiments, not for audited runs.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/whippetsort/whippet/gentpc/dataset"
	_ "github.com/whippetsort/whippet/gentpc/dataset/datasets"
	"github.com/whippetsort/whippet/internal/config"
	_ "github.com/whippetsort/whippet/internal/engine/engines"
)

func main() {
	log.SetFlags(0)

	flags := pflag.NewFlagSet("gentpc", pflag.ExitOnError)
	flags.IntP("scale-factor", "s", 0, "Scale factor passed to the generator. (required)")
	flags.StringP("dataset", "d", "tpch", fmt.Sprintf("Dataset to generate, one of %s.", strings.Join(dataset.List(), ", ")))
	flags.StringP(config.KeyWorkdir, "w", ".", "Directory receiving the data/ tree.")
	flags.Bool("verify", false, "Read every written file back and report its row count.")
	flags.Bool("list", false, "List registered datasets.")
	flags.Parse(os.Args[1:])

	v, err := config.Load(flags)
	if err != nil {
		log.Fatal(err)
	}

	if v.GetBool("list") {
		fmt.Println(dataset.List())
		return
	}

	opts := options{
		scale:   v.GetInt("scale-factor"),
		dataset: v.GetString("dataset"),
		workdir: v.GetString(config.KeyWorkdir),
		verify:  v.GetBool("verify"),
	}
	if opts.scale <= 0 {
		fmt.Fprintf(os.Stderr, "missing or invalid -s/--scale-factor: %v\n", opts.scale)
		flags.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), opts, log.Printf); err != nil {
		log.Fatal(err)
	}
}
