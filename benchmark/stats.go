// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmark

import (
	"math"
	"sort"

	"golang.org/x/perf/benchmath"
)

// confidence of the benchmath summaries; only their centers are used
const confidence = 0.95

// Summary holds descriptive statistics of a timing sample sequence, in
// milliseconds.
type Summary struct {
	Min    float64
	Max    float64
	Avg    float64
	Median float64
	Std    float64

	// AvgPercentile is the rank fraction of Median within the sorted samples,
	// see Percentile.
	AvgPercentile float64
}

// Summarize reduces samples to a Summary.
//
// samples must not be empty. Summarize sorts samples in place.
func Summarize(samples []float64) Summary {
	if len(samples) == 0 {
		panic("benchmark: Summarize called with no samples")
	}

	s := benchmath.NewSample(samples, &benchmath.DefaultThresholds)
	n := len(s.Values)

	r := Summary{
		Min:    s.Values[0],
		Max:    s.Values[n-1],
		Avg:    benchmath.AssumeNormal.Summary(s, confidence).Center,
		Median: benchmath.AssumeNothing.Summary(s, confidence).Center,
	}
	r.Std = populationStd(s.Values, r.Avg)
	r.AvgPercentile = Percentile(samples, r.Median)
	return r
}

// populationStd divides by n, not n-1.
func populationStd(values []float64, mean float64) float64 {
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}

// Percentile returns the fraction of samples strictly less than v.
//
// It sorts samples in place and then does a lower bound search for v, so the
// caller observes samples in ascending order afterwards. samples must not be
// empty.
func Percentile(samples []float64, v float64) float64 {
	if len(samples) == 0 {
		panic("benchmark: Percentile called with no samples")
	}

	sort.Float64s(samples)
	return float64(sort.SearchFloat64s(samples, v)) / float64(len(samples))
}
