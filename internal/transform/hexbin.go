package transform

import (
	"cmp"
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Hex is one pointy-top hexagonal bin in Web Mercator space.
type Hex struct {
	Q, R     int
	Center   orb.Point // lon, lat
	Boundary orb.Ring  // lon, lat, closed
	Count    int
}

// HexBins bins located rows into hexagons of the given circumradius in
// meters. Hexagons are ordered by (Q, R). Rows without coordinates are
// returned as excluded. A non-positive radius bins nothing and excludes
// nothing.
func HexBins(s Selection, radius float64) (hexes []Hex, excluded int) {
	if radius <= 0 {
		return nil, 0
	}
	type axial struct{ q, r int }
	counts := make(map[axial]int)
	for k := 0; k < s.Len(); k++ {
		rec := s.Record(k)
		if !rec.HasLocation {
			excluded++
			continue
		}
		m := project.Point(rec.Point(), project.WGS84.ToMercator)
		q, r := hexRound(
			(math.Sqrt(3)/3*m[0]-m[1]/3)/radius,
			(2.0/3*m[1])/radius,
		)
		counts[axial{q, r}]++
	}

	hexes = make([]Hex, 0, len(counts))
	for a, n := range counts {
		cx := radius * math.Sqrt(3) * (float64(a.q) + float64(a.r)/2)
		cy := radius * 1.5 * float64(a.r)
		ring := make(orb.Ring, 0, 7)
		for i := 0; i < 6; i++ {
			angle := math.Pi / 180 * (60*float64(i) - 30)
			v := orb.Point{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)}
			ring = append(ring, project.Point(v, project.Mercator.ToWGS84))
		}
		ring = append(ring, ring[0])
		hexes = append(hexes, Hex{
			Q:        a.q,
			R:        a.r,
			Center:   project.Point(orb.Point{cx, cy}, project.Mercator.ToWGS84),
			Boundary: ring,
			Count:    n,
		})
	}
	slices.SortFunc(hexes, func(a, b Hex) int {
		if c := cmp.Compare(a.Q, b.Q); c != 0 {
			return c
		}
		return cmp.Compare(a.R, b.R)
	})
	return hexes, excluded
}

// hexRound rounds fractional axial coordinates to the nearest hexagon.
func hexRound(fq, fr float64) (int, int) {
	fs := -fq - fr
	q, r, s := math.Round(fq), math.Round(fr), math.Round(fs)
	dq, dr, ds := math.Abs(q-fq), math.Abs(r-fr), math.Abs(s-fs)
	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}
	return int(q), int(r)
}
