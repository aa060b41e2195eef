// Copyright 2026 The Collisionmap Authors
// SPDX-License-Identifier: MIT

// Package route resolves the path between two points for the commute view.
package route

import (
	"context"
	"log/slog"

	"github.com/paulmach/orb"
)

// Router returns a path from one point to another. Points are (lon, lat).
type Router interface {
	// Name identifies the provider in logs and the rendered page.
	Name() string

	Route(ctx context.Context, from, to orb.Point) (orb.LineString, error)
}

// StraightLine routes directly between the two points.
type StraightLine struct{}

// Name returns "straight line".
func (StraightLine) Name() string { return "straight line" }

// Route returns the two-point segment from -> to.
func (StraightLine) Route(_ context.Context, from, to orb.Point) (orb.LineString, error) {
	return orb.LineString{from, to}, nil
}

// Result is a resolved path plus the provider that produced it.
type Result struct {
	Path     orb.LineString
	Provider string
	// Err is set when the primary router failed and the fallback was used.
	Err error
}

// Fallback tries Primary and falls back to a straight line on error.
type Fallback struct {
	Primary Router
}

// Resolve returns the primary route, or a straight line with Err set.
func (f Fallback) Resolve(ctx context.Context, from, to orb.Point) Result {
	if f.Primary == nil {
		path, _ := StraightLine{}.Route(ctx, from, to)
		return Result{Path: path, Provider: StraightLine{}.Name()}
	}
	path, err := f.Primary.Route(ctx, from, to)
	if err == nil && len(path) >= 2 {
		return Result{Path: path, Provider: f.Primary.Name()}
	}
	if err == nil {
		err = errEmptyRoute
	}
	slog.Warn("route lookup failed, using straight line", "provider", f.Primary.Name(), "error", err)
	path, _ = StraightLine{}.Route(ctx, from, to)
	return Result{Path: path, Provider: StraightLine{}.Name(), Err: err}
}
