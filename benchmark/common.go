// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmark

import (
	"fmt"
	"io"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// WriteHeader prints information about the host and the run parameters.
func (r *Runner) WriteHeader(w io.Writer, engine string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "goos:       %s\n", runtime.GOOS)
	fmt.Fprintf(w, "goarch:     %s\n", runtime.GOARCH)
	if cpu := cpuid.CPU.BrandName; cpu != "" {
		fmt.Fprintf(w, "cpu:        %s\n", cpu)
	}
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		fmt.Fprintf(w, "cores:      %d\n", n)
	}
	fmt.Fprintf(w, "engine:     %s\n", engine)
	fmt.Fprintf(w, "warmup:     %d time(s)\n", r.Warmup)
	fmt.Fprintf(w, "iterations: %d time(s)\n", r.Iterations)
	fmt.Fprintln(w)
}
