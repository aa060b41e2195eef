// Copyright 2026 The Collisionmap Authors
// SPDX-License-Identifier: MIT

package view

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/collisionmap/collisionmap/internal/transform"
)

// Histogram dimensions in pixels.
const (
	HistogramWidth  = 480
	HistogramHeight = 220
)

// HistogramSVG renders v as a stepped histogram with a point per group and a
// hover tooltip. It returns nil for an empty view so the caller can show the
// placeholder instead.
func HistogramSVG(v transform.AggregateView, title string) (svg []byte, err error) {
	if len(v.Groups) == 0 || v.Empty() {
		return nil, nil
	}

	xs := make([]float64, len(v.Groups))
	ys := make([]float64, len(v.Groups))
	tips := make([]string, len(v.Groups))
	for i, g := range v.Groups {
		x, err := strconv.ParseFloat(g.Key, 64)
		if err != nil {
			x = float64(i)
		}
		xs[i] = x
		ys[i] = g.Value
		tips[i] = fmt.Sprintf("%s: %g", g.Label, g.Value)
	}

	tab := table.NewBuilder(nil).
		Add("x", xs).
		Add("collisions", ys).
		Add("tooltip", tips).
		Done()

	plot := gg.NewPlot(tab)
	plot.SetScale("y", gg.NewLinearScaler().Include(0))
	// A zero-width x domain cannot be ticked.
	if lo, hi := bounds(xs); lo == hi {
		plot.SetScale("x", gg.NewLinearScaler().Include(lo-1).Include(hi+1))
	}
	plot.Add(gg.LayerSteps{
		LayerPaths: gg.LayerPaths{X: "x", Y: "collisions"},
		Step:       gg.StepHMid,
	})
	plot.Add(gg.LayerPoints{X: "x", Y: "collisions"})
	plot.Add(gg.LayerTooltips{X: "x", Y: "collisions", Label: "tooltip"})
	if title != "" {
		plot.Add(gg.Title(title))
	}

	// go-gg reports degenerate scales by panicking.
	defer func() {
		if r := recover(); r != nil {
			svg, err = nil, fmt.Errorf("render %s histogram: %v", v.Spec.GroupBy, r)
		}
	}()
	var buf bytes.Buffer
	if err := plot.WriteSVG(&buf, HistogramWidth, HistogramHeight); err != nil {
		return nil, fmt.Errorf("render %s histogram: %w", v.Spec.GroupBy, err)
	}
	return buf.Bytes(), nil
}

func bounds(xs []float64) (lo, hi float64) {
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	return lo, hi
}
