package view

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collisionmap/collisionmap/internal/collision"
	"github.com/collisionmap/collisionmap/internal/transform"
)

func square(idx int, name string, lon, lat, size float64) collision.Region {
	poly := orb.Polygon{orb.Ring{
		{lon, lat}, {lon + size, lat}, {lon + size, lat + size}, {lon, lat + size}, {lon, lat},
	}}
	return collision.Region{Index: idx, Name: name, Geometry: poly, Bound: poly.Bound()}
}

func rec(id string, occurred time.Time, lat, lon float64, category string) collision.Record {
	return collision.Record{
		ID:          id,
		Occurred:    occurred,
		TimeOfDay:   collision.Unknown,
		Lat:         lat,
		Lon:         lon,
		HasLocation: true,
		VictimAge:   collision.Unknown,
		Category:    category,
	}
}

// testJoined has two rows at one spot in Alpha, one in Bravo, one outside
// every region and one without coordinates. Charlie has no rows.
func testJoined() *transform.Joined {
	regions := []collision.Region{
		square(0, "Alpha", -118.30, 34.00, 0.05),
		square(1, "Bravo", -118.25, 34.00, 0.05),
		square(2, "Charlie", -117.00, 33.00, 0.05),
	}
	d := func(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }
	none := rec("5", d(2023, time.December), 0, 0, "HIT AND RUN")
	none.HasLocation = false
	records := []collision.Record{
		rec("1", d(2021, time.March), 34.01, -118.29, "TRAFFIC DR #"),
		rec("2", d(2022, time.July), 34.01, -118.29, "TRAFFIC DR #"),
		rec("3", d(2022, time.July), 34.02, -118.22, "HIT AND RUN"),
		rec("4", d(2023, time.January), 35.5, -119.0, "TRAFFIC DR #"),
		none,
	}
	return transform.Join(records, regions)
}

func TestPointLayer(t *testing.T) {
	sel := testJoined().All()
	layer := PointLayer(sel, 0, transform.DefaultPrecision)

	require.Len(t, layer.Points, 4)
	assert.Equal(t, 1, layer.Excluded)
	assert.Zero(t, layer.Sampled)

	dense := DensityColor(1).CSS()
	sparse := DensityColor(0).CSS()
	assert.Equal(t, 2, layer.Points[0].Weight)
	assert.Equal(t, dense, layer.Points[0].Color)
	assert.Equal(t, dense, layer.Points[1].Color)
	assert.Equal(t, sparse, layer.Points[2].Color)
	assert.Equal(t, sparse, layer.Points[3].Color)

	assert.Equal(t, layer, PointLayer(sel, -1, transform.DefaultPrecision), "a negative cap keeps every point")
}

func TestPointLayer_Sampling(t *testing.T) {
	sel := testJoined().All()
	layer := PointLayer(sel, 2, transform.DefaultPrecision)

	require.Len(t, layer.Points, 2)
	assert.Equal(t, "1", layer.Points[0].ID)
	assert.Equal(t, "3", layer.Points[1].ID)
	assert.Equal(t, 2, layer.Sampled)
	assert.Equal(t, sel.Len(), len(layer.Points)+layer.Sampled+layer.Excluded)

	again := PointLayer(sel, 2, transform.DefaultPrecision)
	assert.Equal(t, layer, again)
}

func TestPointLayer_Empty(t *testing.T) {
	sel := testJoined().All().Where(func(*collision.Record) bool { return false })
	layer := PointLayer(sel, 10, transform.DefaultPrecision)
	assert.Empty(t, layer.Points)
	assert.Zero(t, layer.Excluded)
}

func TestPolygonLayer(t *testing.T) {
	j := testJoined()
	v := transform.Aggregate(j.All(), transform.AggregateSpec{GroupBy: transform.DimRegion})
	layer := PolygonLayer(j.Regions, v, StepScale)

	require.Len(t, layer.Features.Features, 3)
	assert.Equal(t, 2, layer.Excluded)
	assert.InDelta(t, 0, layer.Min, 1e-9)
	assert.InDelta(t, 2, layer.Max, 1e-9)

	byName := make(map[string]float64)
	total := 0.0
	for _, f := range layer.Features.Features {
		n := f.Properties["value"].(float64)
		byName[f.Properties.MustString("name", "")] = n
		total += n
	}
	assert.Equal(t, map[string]float64{"Alpha": 2, "Bravo": 1, "Charlie": 0}, byName)
	assert.Equal(t, float64(j.All().Len()), total+float64(layer.Excluded))

	charlie := layer.Features.Features[2]
	assert.Equal(t, StepScale(0, 0, 0).CSS(), charlie.Properties["fill"])

	data, err := json.Marshal(layer.Features)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"FeatureCollection"`)
	assert.Contains(t, string(data), `"name":"Alpha"`)
}

func TestHexLayer(t *testing.T) {
	sel := testJoined().All()
	hexes, excluded := transform.HexBins(sel, 200)
	layer := HexLayer(hexes, excluded)

	require.Len(t, layer.Features.Features, len(hexes))
	sum := 0
	for _, f := range layer.Features.Features {
		assert.Equal(t, "Polygon", f.Geometry.GeoJSONType())
		sum += f.Properties["value"].(int)
	}
	assert.Equal(t, sel.Len(), sum+layer.Excluded)
	assert.InDelta(t, 1, layer.Min, 1e-9)
	assert.InDelta(t, 2, layer.Max, 1e-9)
}

func TestScales(t *testing.T) {
	tests := []struct {
		name string
		got  RGBA
		want RGBA
	}{
		{"step zero", StepScale(0, 0, 0), RGBA{230, 230, 230, 160}},
		{"step low", StepScale(99, 0, 0), RGBA{198, 239, 206, 160}},
		{"step medium", StepScale(100, 0, 0), RGBA{123, 201, 111, 160}},
		{"step high", StepScale(1000, 0, 0), RGBA{35, 132, 67, 160}},
		{"gradient min", GradientScale(0, 0, 10), RGBA{255, 255, 178, 180}},
		{"gradient mid", GradientScale(5, 0, 10), RGBA{254, 204, 92, 180}},
		{"gradient max", GradientScale(10, 0, 10), RGBA{227, 26, 28, 180}},
		{"gradient flat", GradientScale(3, 3, 3), RGBA{255, 255, 178, 180}},
		{"density sparse", DensityColor(0), RGBA{255, 255, 0, 180}},
		{"density dense", DensityColor(1), RGBA{255, 0, 0, 180}},
		{"excellent", RatingColor(transform.RatingExcellent), RGBA{34, 177, 76, 200}},
		{"poor", RatingColor(transform.RatingPoor), RGBA{255, 0, 0, 200}},
		{"unrated", RatingColor(""), RGBA{150, 150, 150, 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestRGBA_Format(t *testing.T) {
	c := RGBA{255, 0, 16, 255}
	assert.Equal(t, "rgba(255,0,16,1)", c.CSS())
	assert.Equal(t, "#ff0010", c.Hex())
}

func TestChartSeries(t *testing.T) {
	sel := testJoined().All()
	v := transform.Aggregate(sel, transform.AggregateSpec{GroupBy: transform.DimCategory})
	s := ChartSeries("Categories", v)

	assert.Equal(t, []string{"HIT AND RUN", "TRAFFIC DR #"}, s.Labels)
	assert.Equal(t, []float64{2, 3}, s.Values)
	assert.Equal(t, -1, s.Selected)
	assert.Zero(t, s.Excluded)
	assert.False(t, s.Empty())
}

func TestTopSeries(t *testing.T) {
	sel := testJoined().All()
	v := transform.Aggregate(sel, transform.AggregateSpec{
		GroupBy: transform.DimCategory,
		Sort:    transform.SortValueDesc,
	})

	s := TopSeries("Top", v, 1, "HIT AND RUN")
	assert.Equal(t, []string{"TRAFFIC DR #", "HIT AND RUN"}, s.Labels)
	assert.Equal(t, 1, s.Selected)
	assert.Zero(t, s.Omitted)

	s = TopSeries("Top", v, 1, "")
	assert.Equal(t, []string{"TRAFFIC DR #"}, s.Labels)
	assert.Equal(t, 2, s.Omitted)
}

func TestHistogramSVG(t *testing.T) {
	sel := testJoined().All()
	v := transform.Aggregate(sel, transform.AggregateSpec{GroupBy: transform.DimMonth, ZeroFill: true})

	svg, err := HistogramSVG(v, "Collisions by month")
	require.NoError(t, err)
	require.NotEmpty(t, svg)
	assert.True(t, strings.Contains(string(svg), "<svg"), "output should be an SVG document")
}

func TestHistogramSVG_Empty(t *testing.T) {
	sel := testJoined().All().Where(func(*collision.Record) bool { return false })
	v := transform.Aggregate(sel, transform.AggregateSpec{GroupBy: transform.DimMonth, ZeroFill: true})

	svg, err := HistogramSVG(v, "Collisions by month")
	require.NoError(t, err)
	assert.Nil(t, svg)
}

func TestHistogramSVG_SingleGroup(t *testing.T) {
	recs := []collision.Record{
		{ID: "a", Occurred: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), TimeOfDay: collision.Unknown, VictimAge: collision.Unknown},
		{ID: "b", Occurred: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), TimeOfDay: collision.Unknown, VictimAge: collision.Unknown},
	}
	v := transform.Aggregate(transform.Join(recs, nil).All(), transform.AggregateSpec{GroupBy: transform.DimYear})
	require.Len(t, v.Groups, 1)

	var svg []byte
	var err error
	require.NotPanics(t, func() { svg, err = HistogramSVG(v, "") })
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestSchoolLayer(t *testing.T) {
	j := testJoined()
	schools := []collision.School{
		{Name: "Near", Lat: 34.01, Lon: -118.29, HasLocation: true},
		{Name: "Far", Lat: 36.0, Lon: -120.0, HasLocation: true},
		{Name: "Lost"},
	}
	ix := transform.IndexSchools(j, schools, 0.2*transform.MetersPerMile)
	markers, excluded := SchoolLayer(ix.Stats(transform.SchoolFilter{}))

	require.Len(t, markers, 2)
	assert.Equal(t, 1, excluded)
	assert.Equal(t, "Near", markers[0].Name)
	assert.Equal(t, 2, markers[0].Collisions)
	assert.Equal(t, RatingColor(transform.Rating(markers[0].Rating)).CSS(), markers[0].Color)
	assert.Equal(t, string(transform.RatingExcellent), markers[1].Rating)
}

func TestRouteLine(t *testing.T) {
	line := RouteLine(orb.LineString{{-118.25, 34.05}, {-118.20, 34.10}})
	assert.Equal(t, []LatLng{{34.05, -118.25}, {34.10, -118.20}}, line)
}
