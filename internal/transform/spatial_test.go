package transform

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collisionmap/collisionmap/internal/collision"
)

func TestJoin_AssignsRegions(t *testing.T) {
	j := testJoined()
	require.Len(t, j.Records, 5)

	assert.Equal(t, "Alpha", j.RegionName(0))
	assert.Equal(t, "Alpha", j.RegionName(1))
	assert.Equal(t, "Bravo", j.RegionName(2))
	assert.Equal(t, "", j.RegionName(3))
	assert.Equal(t, -1, j.RegionOf(4))

	assert.Equal(t, 1, j.Unlocated)
	assert.Equal(t, 1, j.Unmatched)
}

func TestJoin_MultiPolygon(t *testing.T) {
	a := square(0, "", -1, -1, 1).Geometry.(orb.Polygon)
	b := square(0, "", 5, 5, 1).Geometry.(orb.Polygon)
	mp := orb.MultiPolygon{a, b}
	regions := []collision.Region{{Name: "Islands", Geometry: mp, Bound: mp.Bound()}}

	records := []collision.Record{rec("in", day(2021, 1, 1), 5.5, 5.5), rec("gap", day(2021, 1, 1), 2, 2)}
	j := Join(records, regions)
	assert.Equal(t, "Islands", j.RegionName(0))
	assert.Equal(t, "", j.RegionName(1))
}

func TestJoin_FirstRegionWins(t *testing.T) {
	regions := []collision.Region{
		square(0, "Outer", -1, -1, 4),
		square(1, "Inner", 0, 0, 1),
	}
	j := Join([]collision.Record{rec("x", day(2021, 1, 1), 0.5, 0.5)}, regions)
	assert.Equal(t, "Outer", j.RegionName(0))
}

func TestJoined_All(t *testing.T) {
	j := testJoined()
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(j.All()))
	assert.Equal(t, []string{"3", "1"}, ids(j.Select([]int{2, 0})))
}
