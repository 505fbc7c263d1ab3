// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmark

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
)

const (
	yAxisCeilStep = 0.5
)

// ErrMissingRatio is returned when plotting results AddRatio was not applied to.
var ErrMissingRatio = errors.New("result does not contain the ratio attribute, use AddRatio first")

var transparentColor = drawing.ColorWhite.WithAlpha(0)

// RatioChart plots the read/sort ratio of results against their number of
// attributes, one bar per result.
type RatioChart struct {
	Title string
	// Theme defaults to LightTheme.
	Theme *Theme
}

// Render writes the chart of results into filename as PNG. Nothing is written
// if any of results lacks a ratio.
func (g *RatioChart) Render(filename string, results []*Result) error {
	for _, r := range results {
		if !r.HasRatio() {
			return fmt.Errorf("%s: %w", r.Description, ErrMissingRatio)
		}
	}

	theme := g.theme()
	graph := g.newGraph(theme)

	var ratios []float64
	for i, r := range results {
		ratios = append(ratios, *r.Ratio)
		graph.Bars = append(graph.Bars, chart.Value{
			Value: *r.Ratio,
			Label: fmt.Sprintf("%d (%.2f)", r.Attributes, *r.Ratio),
			Style: chart.Style{
				Show:        true,
				FillColor:   theme.bar(i),
				StrokeColor: transparentColor,
			},
		})
	}

	// adjust max for Y axis
	yMax := math.Ceil(maxOf(ratios...)/yAxisCeilStep) * yAxisCeilStep
	if yMax == 0 {
		yMax = yAxisCeilStep
	}
	graph.YAxis.Range = &chart.ContinuousRange{
		Min: 0,
		Max: yMax,
	}

	// write into file
	if err := os.MkdirAll(filepath.Dir(filename), 0775); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := graph.Render(chart.PNG, f); err != nil {
		return err
	}
	return f.Close()
}

func (g *RatioChart) theme() *Theme {
	if g.Theme == nil {
		return LightTheme
	}
	return g.Theme
}

func (g *RatioChart) newGraph(t *Theme) *chart.BarChart {
	text := chart.Style{
		Show:        true,
		FontColor:   t.Text,
		StrokeColor: t.Text,
	}
	return &chart.BarChart{
		Title:      g.title(),
		TitleStyle: text,
		Background: chart.Style{
			FillColor:   t.Background,
			StrokeColor: t.Background,
			Padding: chart.Box{
				Top:  40,
				Left: 20,
			},
		},
		Canvas: chart.Style{
			FillColor:   t.Canvas,
			StrokeColor: t.Canvas,
		},
		Height:   512,
		BarWidth: 60,
		XAxis:    text,
		YAxis: chart.YAxis{
			Style:          text,
			Name:           "Read/Sort Ratio",
			NameStyle:      text,
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.2f", v) },
		},
	}
}

func (g *RatioChart) title() string {
	if g.Title == "" {
		return "Read/Sort Ratio by Number of Attributes"
	}
	return g.Title + " | Read/Sort Ratio by Number of Attributes"
}

func maxOf(f ...float64) float64 {
	if len(f) == 0 {
		return 0
	}
	m := f[0]
	for i := 1; i < len(f); i++ {
		if m < f[i] {
			m = f[i]
		}
	}
	return m
}

// Theme holds the colors of a RatioChart. Bars cycle through Bars.
type Theme struct {
	Background drawing.Color
	Canvas     drawing.Color
	Text       drawing.Color
	Bars       []drawing.Color
}

func (t *Theme) bar(i int) drawing.Color { return t.Bars[i%len(t.Bars)] }

var (
	DarkTheme = &Theme{
		Background: drawing.ColorFromHex("252526"),
		Canvas:     drawing.ColorFromHex("1e1e1e"),
		Text:       drawing.ColorFromHex("d4d4d4"),
		Bars: []drawing.Color{
			drawing.ColorFromHex("569cd5"),
			drawing.ColorFromHex("d5d5a5"),
			drawing.ColorFromHex("4ec9b0"),
			drawing.ColorFromHex("ce9178"),
		},
	}

	LightTheme = &Theme{
		Background: drawing.ColorFromHex("f5f5f5"),
		Canvas:     drawing.ColorFromHex("f2f2f2"),
		Text:       drawing.ColorFromHex("393939"),
		Bars: []drawing.Color{
			drawing.ColorFromHex("5a77c7"),
			drawing.ColorFromHex("aa3731"),
			drawing.ColorFromHex("4f9a5b"),
			drawing.ColorFromHex("c7913c"),
		},
	}
)
