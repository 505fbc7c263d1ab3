// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckScale(t *testing.T) {
	for scale := minScale; scale <= maxScale; scale++ {
		require.NoError(t, checkScale(scale))
	}

	for _, scale := range []int{0, -1, maxScale + 1, 100} {
		err := checkScale(scale)
		require.Error(t, err, scale)
		require.Contains(t, err.Error(), "--scale")
	}
}
