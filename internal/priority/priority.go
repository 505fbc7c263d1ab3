// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package priority asks the operating system to schedule the current process
// ahead of others, to reduce timing noise in benchmarks.
package priority

// Hinter is a process wide scheduling hint.
type Hinter interface {
	Raise() error
}

// HinterFunc adapts a function to Hinter.
type HinterFunc func() error

func (f HinterFunc) Raise() error { return f() }

// Nop does nothing.
var Nop Hinter = HinterFunc(func() error { return nil })

// Default returns the hint supported by the current platform, Nop if there is
// none.
func Default() Hinter { return platformHinter() }

// BestEffort raises the priority with h. Failures, typically missing
// privileges, are only logged. It reports whether the hint was applied.
func BestEffort(h Hinter, logf func(format string, args ...interface{})) bool {
	if h == nil {
		return false
	}

	if err := h.Raise(); err != nil {
		if logf != nil {
			logf("cannot raise process priority, continuing: %v", err)
		}
		return false
	}
	return true
}
