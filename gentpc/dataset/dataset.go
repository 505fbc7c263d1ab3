// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset holds the registry of synthetic benchmark datasets the
// engine can generate.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/whippetsort/whippet/internal/engine"
)

// ErrUnknownDataset is returned by Lookup for names nobody registered.
var ErrUnknownDataset = errors.New("dataset not registered")

// Generator populates an engine with the tables of a dataset.
type Generator interface {
	// Name is the registry name, also the directory under data/.
	Name() string
	// Generate creates all tables of the dataset at scale factor sf in c.
	Generate(ctx context.Context, c *engine.Conn, sf int) error
}

var registered = map[string]Generator{}

// Register makes g available by its name. It panics on duplicate names.
func Register(g Generator) {
	nm := g.Name()
	if _, ok := registered[nm]; ok {
		panic(fmt.Errorf("already registered: %s", nm))
	}

	registered[nm] = g
}

// Lookup returns the dataset registered as name.
func Lookup(name string) (Generator, error) {
	g, ok := registered[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownDataset, name, strings.Join(List(), ", "))
	}
	return g, nil
}

// List returns the sorted names of all registered datasets.
func List() []string {
	r := []string{}
	for k := range registered {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
