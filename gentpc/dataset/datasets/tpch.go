// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package datasets registers the DuckDB generator extensions. Import it for
// its side effects.
package datasets

import (
	"context"
	"fmt"

	"github.com/whippetsort/whippet/gentpc/dataset"
	"github.com/whippetsort/whippet/internal/engine"
)

func init() {
	dataset.Register(newTPCH())
}

var _ dataset.Generator = (*tpch)(nil)

// tpch runs the TPC-H dbgen shipped as a DuckDB extension.
type tpch struct {
	extension string
	procedure string
}

func newTPCH() *tpch {
	return &tpch{extension: "tpch", procedure: "dbgen"}
}

func (d *tpch) Name() string { return d.extension }

func (d *tpch) Generate(ctx context.Context, c *engine.Conn, sf int) error {
	if sf <= 0 {
		return fmt.Errorf("%s: invalid scale factor %d", d.Name(), sf)
	}

	for _, q := range []string{
		"INSTALL " + d.extension,
		"LOAD " + d.extension,
		fmt.Sprintf("CALL %s(sf=%d)", d.procedure, sf),
	} {
		if err := c.Exec(ctx, q); err != nil {
			return fmt.Errorf("%s: %w", d.Name(), err)
		}
	}
	return nil
}
