package transform

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// Route buffer limits, in meters.
const (
	MinBufferMeters     = 50.0
	MaxBufferMeters     = 1000.0
	DefaultBufferMeters = 200.0
)

// hotspotCount is the number of hotspot locations reported per route.
const hotspotCount = 3

// Exposure summarizes the collisions along a route.
type Exposure struct {
	OnRoute  Selection
	Total    int // located rows considered
	Ratio    float64
	Hotspots []Location
	// Excluded counts rows without coordinates.
	Excluded int
}

// ClampBuffer restricts a buffer distance to the supported range.
func ClampBuffer(m float64) float64 {
	switch {
	case m <= 0:
		return DefaultBufferMeters
	case m < MinBufferMeters:
		return MinBufferMeters
	case m > MaxBufferMeters:
		return MaxBufferMeters
	}
	return m
}

// RouteExposure selects rows within bufferMeters of path, measured in Web
// Mercator meters, and ranks their locations.
func RouteExposure(s Selection, path orb.LineString, bufferMeters float64, precision int) Exposure {
	exp := Exposure{OnRoute: Selection{j: s.j}}
	if len(path) == 0 {
		for k := 0; k < s.Len(); k++ {
			if s.Record(k).HasLocation {
				exp.Total++
			} else {
				exp.Excluded++
			}
		}
		return exp
	}

	line := project.LineString(path.Clone(), project.WGS84.ToMercator)
	bound := line.Bound().Pad(bufferMeters)

	for k := 0; k < s.Len(); k++ {
		r := s.Record(k)
		if !r.HasLocation {
			exp.Excluded++
			continue
		}
		exp.Total++
		p := project.Point(r.Point(), project.WGS84.ToMercator)
		if !bound.Contains(p) {
			continue
		}
		if planar.DistanceFrom(line, p) <= bufferMeters {
			exp.OnRoute.idx = append(exp.OnRoute.idx, s.Index(k))
		}
	}

	if exp.Total > 0 {
		exp.Ratio = float64(exp.OnRoute.Len()) / float64(exp.Total)
	}
	groups, _ := LocationGroups(exp.OnRoute, precision)
	if len(groups) > hotspotCount {
		groups = groups[:hotspotCount]
	}
	exp.Hotspots = groups
	return exp
}
