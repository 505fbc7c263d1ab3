// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package priority

import (
	"golang.org/x/sys/unix"
)

// lowest niceness, i.e. highest scheduling priority
const maxPriority = -20

func platformHinter() Hinter {
	return HinterFunc(func() error {
		return unix.Setpriority(unix.PRIO_PROCESS, 0, maxPriority)
	})
}
