package transform

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/collisionmap/collisionmap/internal/collision"
)

// square returns a region covering [lon, lon+size] x [lat, lat+size].
func square(idx int, name string, lon, lat, size float64) collision.Region {
	poly := orb.Polygon{orb.Ring{
		{lon, lat}, {lon + size, lat}, {lon + size, lat + size}, {lon, lat + size}, {lon, lat},
	}}
	return collision.Region{Index: idx, Name: name, Geometry: poly, Bound: poly.Bound()}
}

func testRegions() []collision.Region {
	return []collision.Region{
		square(0, "Alpha", -118.30, 34.00, 0.05),
		square(1, "Bravo", -118.25, 34.00, 0.05),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(id string, occurred time.Time, lat, lon float64) collision.Record {
	return collision.Record{
		ID:          id,
		Occurred:    occurred,
		TimeOfDay:   collision.Unknown,
		Lat:         lat,
		Lon:         lon,
		HasLocation: true,
		VictimAge:   collision.Unknown,
	}
}

// testRecords has two rows in Alpha, one in Bravo, one outside both, and
// one without coordinates.
func testRecords() []collision.Record {
	a1 := rec("1", day(2021, 3, 5), 34.01, -118.29)
	a1.Category, a1.Area, a1.TimeOfDay, a1.VictimAge, a1.Address = "TRAFFIC DR #", "Central", 830, 34, "100 MAIN ST"
	a2 := rec("2", day(2022, 7, 9), 34.01, -118.29)
	a2.Category, a2.Area, a2.TimeOfDay, a2.VictimAge, a2.Address = "TRAFFIC DR #", "Central", 1745, 27, "100 MAIN ST"
	b1 := rec("3", day(2022, 7, 10), 34.02, -118.22)
	b1.Category, b1.Area, b1.TimeOfDay, b1.VictimSex = "HIT AND RUN", "Hollywood", 2310, "F"
	out := rec("4", day(2023, 1, 1), 35.5, -119.0)
	out.Category, out.Area = "TRAFFIC DR #", "Harbor"
	none := rec("5", day(2023, 12, 31), 0, 0)
	none.HasLocation = false
	none.Category, none.Area = "HIT AND RUN", "Harbor"
	return []collision.Record{a1, a2, b1, out, none}
}

func testJoined() *Joined {
	return Join(testRecords(), testRegions())
}

func ids(s Selection) []string {
	out := make([]string, s.Len())
	for k := range out {
		out[k] = s.Record(k).ID
	}
	return out
}
