// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engines

import (
	"context"

	"github.com/whippetsort/whippet/internal/engine"
	_ "modernc.org/sqlite"
)

func init() {
	engine.Register(newSQLite())
}

var _ engine.Engine = (*sqlite)(nil)

// sqlite is the pure Go SQLite, loaded like the CGo one.
type sqlite struct {
	*sqlite3
}

func newSQLite() *sqlite {
	return &sqlite{newSQLite3()}
}

func (b *sqlite) Name() string { return "sqlite" }

func (b *sqlite) Open(ctx context.Context) (*engine.Conn, error) {
	return engine.Open(ctx, b.Name(), "file::memory:")
}
