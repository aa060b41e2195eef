// Copyright 2026 The Collisionmap Authors
// SPDX-License-Identifier: MIT

package view

import (
	"fmt"
	"math"

	"github.com/collisionmap/collisionmap/internal/transform"
)

// RGBA is an 8-bit color with alpha.
type RGBA struct{ R, G, B, A uint8 }

// CSS formats the color as an rgba() value.
func (c RGBA) CSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", c.R, c.G, c.B, float64(c.A)/255)
}

// Hex formats the color as #rrggbb, dropping alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scale maps a value within [lo, hi] to a color.
type Scale func(v, lo, hi float64) RGBA

// Colors for the stepped count scale.
var (
	stepNone   = RGBA{230, 230, 230, 160}
	stepLow    = RGBA{198, 239, 206, 160}
	stepMedium = RGBA{123, 201, 111, 160}
	stepHigh   = RGBA{35, 132, 67, 160}
)

// StepScale colors absolute counts: none, under 100, under 1000, and above.
func StepScale(v, _, _ float64) RGBA {
	switch {
	case v <= 0:
		return stepNone
	case v < 100:
		return stepLow
	case v < 1000:
		return stepMedium
	default:
		return stepHigh
	}
}

// Gradient stops, low to high.
var (
	gradLow  = RGBA{255, 255, 178, 180}
	gradMid  = RGBA{254, 204, 92, 180}
	gradHigh = RGBA{227, 26, 28, 180}
)

// GradientScale interpolates yellow through orange to red across [lo, hi].
func GradientScale(v, lo, hi float64) RGBA {
	t := (v - lo) / math.Max(hi-lo, 1)
	t = math.Max(0, math.Min(1, t))
	if t < 0.5 {
		return lerp(gradLow, gradMid, t*2)
	}
	return lerp(gradMid, gradHigh, (t-0.5)*2)
}

func lerp(a, b RGBA, t float64) RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// DensityColor shades a point from yellow (sparse) to red (dense); norm is
// in [0, 1].
func DensityColor(norm float64) RGBA {
	norm = math.Max(0, math.Min(1, norm))
	return RGBA{255, uint8(math.Round(255 - norm*255)), 0, 180}
}

// RatingColor is the marker color of a school safety tier.
func RatingColor(r transform.Rating) RGBA {
	switch r {
	case transform.RatingExcellent:
		return RGBA{34, 177, 76, 200}
	case transform.RatingGood:
		return RGBA{255, 192, 0, 200}
	case transform.RatingFair:
		return RGBA{255, 127, 0, 200}
	case transform.RatingPoor:
		return RGBA{255, 0, 0, 200}
	default:
		return RGBA{150, 150, 150, 200}
	}
}
