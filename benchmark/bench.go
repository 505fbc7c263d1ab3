// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmark times repeated operations, reduces the timings to summary
// statistics and reports them as JSON and PNG charts.
package benchmark

import (
	"fmt"
	"log"
	"time"
)

// Op is a benchmarked operation.
type Op func() error

// Clock is the time source of a Runner.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock uses time.Now, which carries a monotonic reading.
var SystemClock Clock = systemClock{}

// Runner executes benchmarks.
type Runner struct {
	// Warmup is the number of executions discarded before timing.
	Warmup int
	// Iterations is the number of timed executions, must be > 0.
	Iterations int

	// Clock defaults to SystemClock.
	Clock Clock
	// Logf defaults to log.Printf.
	Logf func(format string, args ...interface{})
}

// Run executes op r.Warmup times, then times r.Iterations executions of op
// and summarizes the elapsed milliseconds.
func (r *Runner) Run(description string, attrs int, op Op) (*Result, error) {
	if r.Iterations < 1 {
		return nil, fmt.Errorf("%s: iterations must be positive, got %d", description, r.Iterations)
	}
	if r.Warmup < 0 {
		return nil, fmt.Errorf("%s: warmup must not be negative, got %d", description, r.Warmup)
	}

	clock := r.Clock
	if clock == nil {
		clock = SystemClock
	}
	logf := r.Logf
	if logf == nil {
		logf = log.Printf
	}

	for i := 0; i < r.Warmup; i++ {
		if err := op(); err != nil {
			return nil, fmt.Errorf("%s: warmup: %w", description, err)
		}
	}

	times := make([]float64, 0, r.Iterations)
	for i := 0; i < r.Iterations; i++ {
		start := clock.Now()
		if err := op(); err != nil {
			return nil, fmt.Errorf("%s: %w", description, err)
		}
		times = append(times, millis(clock.Now().Sub(start)))
	}

	res := newResult(description, attrs, Summarize(times))
	logf("Benchmark %s finished. Avg time: %v ms.", description, res.Avg)
	return res, nil
}

// Run is a shorthand for a Runner with the system clock.
func Run(description string, attrs int, op Op, warmup, iterations int) (*Result, error) {
	r := &Runner{Warmup: warmup, Iterations: iterations}
	return r.Run(description, attrs, op)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
