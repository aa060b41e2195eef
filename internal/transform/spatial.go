package transform

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/collisionmap/collisionmap/internal/collision"
)

// noRegion marks a record that is not inside any region.
const noRegion = -1

// Joined is the record table with each record's region resolved. It is
// computed once from the loaded data and shared read-only between requests.
type Joined struct {
	Records []collision.Record
	Regions []collision.Region

	region []int

	// Unlocated counts records without coordinates.
	Unlocated int
	// Unmatched counts located records outside every region.
	Unmatched int
}

// Join assigns every record to the first region (by index) containing it.
// Records without coordinates, or outside every region, get no region.
func Join(records []collision.Record, regions []collision.Region) *Joined {
	j := &Joined{
		Records: records,
		Regions: regions,
		region:  make([]int, len(records)),
	}
	for i := range records {
		r := &records[i]
		if !r.HasLocation {
			j.region[i] = noRegion
			j.Unlocated++
			continue
		}
		j.region[i] = locate(regions, r.Point())
		if j.region[i] == noRegion {
			j.Unmatched++
		}
	}
	return j
}

func locate(regions []collision.Region, p orb.Point) int {
	for k := range regions {
		if !regions[k].Bound.Contains(p) {
			continue
		}
		if contains(regions[k].Geometry, p) {
			return k
		}
	}
	return noRegion
}

func contains(g orb.Geometry, p orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p)
	default:
		return false
	}
}

// RegionOf returns the region index of record i, or -1.
func (j *Joined) RegionOf(i int) int {
	return j.region[i]
}

// RegionName returns the region name of record i, or "".
func (j *Joined) RegionName(i int) string {
	if k := j.region[i]; k != noRegion {
		return j.Regions[k].Name
	}
	return ""
}

// All returns a selection of every record in load order.
func (j *Joined) All() Selection {
	idx := make([]int, len(j.Records))
	for i := range idx {
		idx[i] = i
	}
	return Selection{j: j, idx: idx}
}

// Select returns a selection of the given record indices, in the order given.
func (j *Joined) Select(indices []int) Selection {
	return Selection{j: j, idx: append([]int(nil), indices...)}
}
