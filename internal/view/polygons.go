package view

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/collisionmap/collisionmap/internal/collision"
	"github.com/collisionmap/collisionmap/internal/transform"
)

// Polygons is a filled region layer.
type Polygons struct {
	Features *geojson.FeatureCollection
	Min, Max float64
	// Excluded counts rows that fell in no region.
	Excluded int
}

// PolygonLayer pairs every region with its value in v, which must be grouped
// by transform.DimRegion. Regions absent from v get zero.
func PolygonLayer(regions []collision.Region, v transform.AggregateView, scale Scale) Polygons {
	values := make(map[string]float64, len(v.Groups))
	for _, g := range v.Groups {
		values[g.Key] += g.Value
	}

	layer := Polygons{Features: geojson.NewFeatureCollection(), Excluded: v.Excluded}
	if len(regions) == 0 {
		return layer
	}
	layer.Min, layer.Max = math.Inf(1), math.Inf(-1)
	for _, r := range regions {
		n := values[r.Name]
		layer.Min = math.Min(layer.Min, n)
		layer.Max = math.Max(layer.Max, n)
	}
	for _, r := range regions {
		n := values[r.Name]
		f := geojson.NewFeature(r.Geometry)
		f.Properties["name"] = r.Name
		f.Properties["value"] = n
		f.Properties["fill"] = scale(n, layer.Min, layer.Max).CSS()
		layer.Features.Append(f)
	}
	return layer
}

// HexLayer turns hex bins into gradient-filled polygons.
func HexLayer(hexes []transform.Hex, excluded int) Polygons {
	layer := Polygons{Features: geojson.NewFeatureCollection(), Excluded: excluded}
	if len(hexes) == 0 {
		return layer
	}
	layer.Min, layer.Max = math.Inf(1), math.Inf(-1)
	for _, h := range hexes {
		layer.Min = math.Min(layer.Min, float64(h.Count))
		layer.Max = math.Max(layer.Max, float64(h.Count))
	}
	for _, h := range hexes {
		n := float64(h.Count)
		f := geojson.NewFeature(orb.Polygon{h.Boundary})
		f.Properties["value"] = h.Count
		f.Properties["fill"] = GradientScale(n, layer.Min, layer.Max).CSS()
		layer.Features.Append(f)
	}
	return layer
}
