// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config merges command line flags, WHIPPET_* environment variables
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variable of every key, e.g.
// WHIPPET_WORKDIR for "workdir".
const EnvPrefix = "WHIPPET"

// Keys shared by the tools.
const (
	KeyWorkdir = "workdir"
	KeyEngine  = "engine"
)

// EnvFile is loaded into the environment by Load when it exists. Variables
// already set take precedence.
var EnvFile = ".env"

// Load returns a viper instance reading flags, then the environment,
// then defaults. Flags given on the command line win.
func Load(flags *pflag.FlagSet) (*viper.Viper, error) {
	if err := loadEnvFile(EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyWorkdir, ".")
	v.SetDefault(KeyEngine, "duckdb")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func loadEnvFile(name string) error {
	if name == "" {
		return nil
	}

	if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// DataDir returns the directory holding the tables of dataset generated with
// the scale factor scale.
func DataDir(workdir, dataset string, scale int) string {
	return filepath.Join(workdir, "data", dataset, fmt.Sprintf("s%d", scale))
}
