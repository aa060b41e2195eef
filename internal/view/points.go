// Package view binds transformed selections and aggregate views to the
// shapes the dashboard widgets draw: map points, polygons, hexagons, chart
// series and SVG histograms. Every binder reports the rows it could not
// place, so input rows always equal bound rows plus excluded rows.
package view

import (
	"math"

	"github.com/collisionmap/collisionmap/internal/transform"
)

// Point is one collision marker.
type Point struct {
	ID     string  `json:"id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Weight int     `json:"weight"`
	Color  string  `json:"color"`
}

// Points is the bound point set.
type Points struct {
	Points []Point
	// Excluded counts rows without coordinates.
	Excluded int
	// Sampled counts located rows left out by the point cap.
	Sampled int
}

// PointLayer places every located row as a point weighted by the number of
// rows sharing its rounded location. When more than maxPoints rows are
// located, an evenly spaced subset is kept. maxPoints <= 0 keeps all.
func PointLayer(s transform.Selection, maxPoints, precision int) Points {
	var layer Points
	var located []int
	weights := make(map[string]int)
	for k := 0; k < s.Len(); k++ {
		r := s.Record(k)
		if !r.HasLocation {
			layer.Excluded++
			continue
		}
		located = append(located, k)
		weights[transform.LocationKey(r.Lat, r.Lon, precision)]++
	}

	keep := located
	if maxPoints > 0 && len(located) > maxPoints {
		keep = make([]int, maxPoints)
		for i := range keep {
			keep[i] = located[i*len(located)/maxPoints]
		}
		layer.Sampled = len(located) - maxPoints
	}

	lo, hi := math.MaxInt, 0
	layer.Points = make([]Point, len(keep))
	for i, k := range keep {
		r := s.Record(k)
		w := weights[transform.LocationKey(r.Lat, r.Lon, precision)]
		layer.Points[i] = Point{ID: r.ID, Lat: r.Lat, Lon: r.Lon, Weight: w}
		lo = min(lo, w)
		hi = max(hi, w)
	}
	for i := range layer.Points {
		norm := 0.0
		if hi > lo {
			norm = float64(layer.Points[i].Weight-lo) / float64(hi-lo)
		}
		layer.Points[i].Color = DensityColor(norm).CSS()
	}
	return layer
}
