// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Result is the outcome of one benchmark. The JSON field names are the ones
// consumed by the existing result tooling and must not change.
type Result struct {
	Description   string  `json:"Description"`
	Attributes    int     `json:"Number of Attributes"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Avg           float64 `json:"avg"`
	Median        float64 `json:"median"`
	Std           float64 `json:"std"`
	AvgPercentile float64 `json:"avg_percentile"`

	// Ratio is nil until AddRatio has been applied.
	Ratio *float64 `json:"Read/Sort Ratio,omitempty"`
}

func newResult(description string, attrs int, s Summary) *Result {
	return &Result{
		Description:   description,
		Attributes:    attrs,
		Min:           s.Min,
		Max:           s.Max,
		Avg:           s.Avg,
		Median:        s.Median,
		Std:           s.Std,
		AvgPercentile: s.AvgPercentile,
	}
}

// HasRatio reports whether AddRatio has been applied to r.
func (r *Result) HasRatio() bool { return r.Ratio != nil }

// AddRatio sets the read/sort ratio, readAvg / r.Avg, on every result.
func AddRatio(readAvg float64, results []*Result) {
	for _, r := range results {
		ratio := readAvg / r.Avg
		r.Ratio = &ratio
	}
}

// Report is the persisted output of a read/sort benchmark run.
type Report struct {
	ReadTime   *Result   `json:"Read Time"`
	NumberSort []*Result `json:"Number Sort"`
	StringSort []*Result `json:"String Sort"`
	MixSort    []*Result `json:"Mix Sort"`
}

// AddRatios applies AddRatio to all suites using the read time average. The
// read result itself gets a ratio of 1.
func (r *Report) AddRatios() {
	readAvg := r.ReadTime.Avg
	AddRatio(readAvg, []*Result{r.ReadTime})
	AddRatio(readAvg, r.NumberSort)
	AddRatio(readAvg, r.StringSort)
	AddRatio(readAvg, r.MixSort)
}

// WriteFile writes r as indented JSON into filename, creating parent
// directories as needed.
func (r *Report) WriteFile(filename string) error {
	b, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0775); err != nil {
			return err
		}
	}
	if err := os.WriteFile(filename, append(b, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
