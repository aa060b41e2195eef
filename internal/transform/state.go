// Copyright 2026 The Collisionmap Authors
// SPDX-License-Identifier: MIT

// Package transform filters and aggregates loaded collision records. Every
// function here is a pure function of its inputs: the same records, regions
// and FilterState always produce the same output, in the same order.
package transform

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Window is a half-open date range [From, To). A zero bound is open.
type Window struct {
	From time.Time
	To   time.Time
}

// YearWindow returns the window covering calendar years from..to inclusive.
// A zero year leaves that side open.
func YearWindow(from, to int) Window {
	var w Window
	if from != 0 {
		w.From = time.Date(from, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if to != 0 {
		w.To = time.Date(to+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return w
}

// IsZero reports whether both bounds are open.
func (w Window) IsZero() bool {
	return w.From.IsZero() && w.To.IsZero()
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !t.Before(w.To) {
		return false
	}
	return true
}

// Years returns the number of calendar years the window spans, or 0 when
// either side is open.
func (w Window) Years() int {
	if w.From.IsZero() || w.To.IsZero() {
		return 0
	}
	n := w.To.Year() - w.From.Year()
	if w.To.YearDay() > 1 || w.To.Hour() > 0 {
		n++
	}
	return n
}

func (w Window) String() string {
	const layout = "2006-01-02"
	switch {
	case w.IsZero():
		return "all dates"
	case w.From.IsZero():
		return "before " + w.To.Format(layout)
	case w.To.IsZero():
		return "from " + w.From.Format(layout)
	default:
		return w.From.Format(layout) + " to " + w.To.AddDate(0, 0, -1).Format(layout)
	}
}

// FilterState is the immutable set of filters for one recompute pass.
// Empty sets are no-ops. Build one per request and never mutate it.
type FilterState struct {
	Window     Window
	Regions    []string
	Categories []string
	Areas      []string
}

// WithWindow returns a copy of f with the given window.
func (f FilterState) WithWindow(w Window) FilterState {
	f.Window = w
	return f.clone()
}

// WithRegions returns a copy of f restricted to the named regions.
func (f FilterState) WithRegions(names ...string) FilterState {
	f = f.clone()
	f.Regions = slices.Clone(names)
	return f
}

// WithCategories returns a copy of f restricted to the given categories.
func (f FilterState) WithCategories(cats ...string) FilterState {
	f = f.clone()
	f.Categories = slices.Clone(cats)
	return f
}

// WithAreas returns a copy of f restricted to the given areas.
func (f FilterState) WithAreas(areas ...string) FilterState {
	f = f.clone()
	f.Areas = slices.Clone(areas)
	return f
}

func (f FilterState) clone() FilterState {
	f.Regions = slices.Clone(f.Regions)
	f.Categories = slices.Clone(f.Categories)
	f.Areas = slices.Clone(f.Areas)
	return f
}

// String describes the active filters for warnings and logs.
func (f FilterState) String() string {
	parts := []string{f.Window.String()}
	if len(f.Regions) > 0 {
		parts = append(parts, fmt.Sprintf("regions %s", strings.Join(f.Regions, ", ")))
	}
	if len(f.Categories) > 0 {
		parts = append(parts, fmt.Sprintf("categories %s", strings.Join(f.Categories, ", ")))
	}
	if len(f.Areas) > 0 {
		parts = append(parts, fmt.Sprintf("areas %s", strings.Join(f.Areas, ", ")))
	}
	return strings.Join(parts, "; ")
}
