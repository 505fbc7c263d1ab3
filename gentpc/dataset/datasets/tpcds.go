// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datasets

import (
	"github.com/whippetsort/whippet/gentpc/dataset"
)

func init() {
	dataset.Register(newTPCDS())
}

var _ dataset.Generator = (*tpcds)(nil)

// tpcds differs from tpch only by extension and procedure name.
type tpcds struct {
	*tpch
}

func newTPCDS() *tpcds {
	return &tpcds{&tpch{extension: "tpcds", procedure: "dsdgen"}}
}
