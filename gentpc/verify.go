// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/whippetsort/whippet/internal/columnar"
)

// verify reads back the footer of every file and fails on tables without
// rows.
func verify(files []string, logf func(string, ...interface{})) error {
	var empty []string
	for _, f := range files {
		info, err := columnar.Inspect(f)
		if err != nil {
			return err
		}

		logf("%s: %d rows, %d columns, %d row group(s)", f, info.Rows, len(info.Columns), info.RowGroups)
		if info.Rows == 0 {
			empty = append(empty, filepath.Base(f))
		}
	}

	if len(empty) != 0 {
		return fmt.Errorf("no rows in %s", strings.Join(empty, ", "))
	}
	return nil
}
