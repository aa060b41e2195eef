// Copyright 2026 The Collisionmap Authors
// SPDX-License-Identifier: MIT

package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/collisionmap/collisionmap/internal/collision"
	"github.com/collisionmap/collisionmap/internal/log"
	"github.com/collisionmap/collisionmap/internal/transform"
	"github.com/collisionmap/collisionmap/internal/view"
)

// Map modes.
const (
	modeDot   = "dot"
	modeHex   = "hex"
	modeRoute = "route"
)

// topCategories is how many collision types the location chart shows.
const topCategories = 10

// mapLayers is the JSON handed to the page's Leaflet script.
type mapLayers struct {
	Points    []view.Point               `json:"points,omitempty"`
	Regions   *geojson.FeatureCollection `json:"regions,omitempty"`
	Hexes     *geojson.FeatureCollection `json:"hexes,omitempty"`
	Highlight *view.LatLng               `json:"highlight,omitempty"`
	Route     []view.LatLng              `json:"route,omitempty"`
	Schools   []view.SchoolMarker        `json:"schools,omitempty"`
	Circle    *circle                    `json:"circle,omitempty"`
}

type circle struct {
	Center view.LatLng `json:"center"`
	Radius float64     `json:"radius"`
	Color  string      `json:"color"`
}

type field struct {
	Name  string
	Value string
}

type locationDetail struct {
	Label      string
	Count      int
	Records    []option
	Fields     []field
	Categories view.Series
}

type routeSummary struct {
	Starts, Ends []option
	Buffer       float64
	MinBuffer    float64
	MaxBuffer    float64
	Ready        bool
	Provider     string
	OnRoute      int
	Total        int
	Ratio        float64
	Hotspots     []transform.Location
	Excluded     int
}

type histogram struct {
	Title    string
	SVG      template.HTML
	Excluded int
}

type mapPage struct {
	page
	Years             []option
	Modes             []option
	Mode              string
	Filter            string
	Hidden            []field
	Rows              int
	LocationCount     int
	Locations         []option
	LocationsExcluded int
	Location          *locationDetail
	Layers            mapLayers
	Points            view.Points
	RegionsExcluded   int
	Histograms        []histogram
	Charts            []view.Series
	Route             *routeSummary
}

func (a *App) handleMap(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := &mapPage{page: a.newPage(r, "/map", "Collision Map")}

	_, last := a.yearRange()
	year, ok := q.year("year")
	if !ok || q.str("year") == "" {
		year = last
	}
	p.Mode = q.oneOf("mode", modeDot, modeDot, modeHex, modeRoute)
	p.Years = yearOptions(a.years, year, true)
	p.Modes = []option{
		{Value: modeDot, Label: "Dot map", Selected: p.Mode == modeDot},
		{Value: modeHex, Label: "Hexagon map", Selected: p.Mode == modeHex},
		{Value: modeRoute, Label: "Commute route", Selected: p.Mode == modeRoute},
	}

	state := transform.FilterState{}.
		WithCategories(q.list("category")...).
		WithAreas(q.list("area")...)
	if year != 0 {
		state = state.WithWindow(transform.YearWindow(year, year))
	}
	p.Filter = state.String()
	for _, c := range state.Categories {
		p.Hidden = append(p.Hidden, field{"category", c})
	}
	for _, ar := range state.Areas {
		p.Hidden = append(p.Hidden, field{"area", ar})
	}

	res := transform.Apply(a.joined, state)
	p.Notices = append(p.Notices, q.notices...)
	p.warn(res.Warnings...)
	if res.Empty() {
		a.render(w, r, "map", p)
		return
	}
	rows := res.Rows
	p.Rows = rows.Len()
	precision := a.opts.Map.LocationPrecision

	locs, locExcluded := transform.LocationGroups(rows, precision)
	p.LocationCount = len(locs)
	p.LocationsExcluded = locExcluded

	if p.Mode == modeRoute {
		a.bindRoute(r.Context(), p, q, rows, locs)
	} else {
		a.bindLocations(p, q, rows, locs)
		a.bindHistograms(r.Context(), p, rows, year == 0)
	}

	for _, c := range a.charts {
		p.Charts = append(p.Charts, view.ChartSeries(c.title, transform.Aggregate(rows, c.spec)))
	}

	a.render(w, r, "map", p)
}

// bindLocations fills the dot or hex layer, the region overlay and the
// selected location's details.
func (a *App) bindLocations(p *mapPage, q *query, rows transform.Selection, locs []transform.Location) {
	precision := a.opts.Map.LocationPrecision

	regions := view.PolygonLayer(a.joined.Regions,
		transform.Aggregate(rows, transform.AggregateSpec{GroupBy: transform.DimRegion}),
		view.StepScale)
	p.Layers.Regions = regions.Features
	p.RegionsExcluded = regions.Excluded

	if p.Mode == modeHex {
		hexes, excluded := transform.HexBins(rows, a.opts.Map.HexRadiusMeters)
		p.Layers.Hexes = view.HexLayer(hexes, excluded).Features
	} else {
		p.Points = view.PointLayer(rows, a.opts.Map.MaxPoints, precision)
		p.Layers.Points = p.Points.Points
	}

	key := q.str("loc")
	p.Locations = append(p.Locations, option{Value: "", Label: "All locations", Selected: key == ""})
	for _, l := range locs {
		p.Locations = append(p.Locations, option{Value: l.Key, Label: l.Label(), Selected: l.Key == key})
	}
	if key == "" {
		return
	}
	loc, ok := transform.FindLocation(locs, key)
	if !ok {
		p.add(levelInfo, fmt.Sprintf("Location %s has no collisions under the current filters.", key))
		return
	}
	p.Location = a.locationDetail(loc, q.str("record"))
	p.Layers.Highlight = &view.LatLng{loc.Lat, loc.Lon}
	p.View.Lat, p.View.Lon = loc.Lat, loc.Lon
	p.View.Zoom = max(p.View.Zoom, 15)
}

func (a *App) locationDetail(loc transform.Location, recordID string) *locationDetail {
	sel := a.joined.Select(loc.Rows)
	order := make([]int, sel.Len())
	for k := range order {
		order[k] = k
	}
	slices.SortStableFunc(order, func(x, y int) int {
		rx, ry := sel.Record(x), sel.Record(y)
		if c := rx.Occurred.Compare(ry.Occurred); c != 0 {
			return c
		}
		return cmp.Compare(rx.TimeOfDay, ry.TimeOfDay)
	})

	chosen := order[0]
	for _, k := range order {
		if sel.Record(k).ID == recordID {
			chosen = k
			break
		}
	}

	d := &locationDetail{Label: loc.Label(), Count: sel.Len()}
	for _, k := range order {
		rec := sel.Record(k)
		d.Records = append(d.Records, option{Value: rec.ID, Label: recordLabel(rec), Selected: k == chosen})
	}
	d.Fields = recordFields(sel.Record(chosen), sel.RegionName(chosen))
	d.Categories = view.ChartSeries("Collision types at this location", transform.Aggregate(sel, transform.AggregateSpec{
		GroupBy: transform.DimCategory,
		Sort:    transform.SortValueDesc,
		Limit:   topCategories,
	}))
	return d
}

func recordLabel(r *collision.Record) string {
	return fmt.Sprintf("%s | %s | %s", r.ID, r.Occurred.Format("2006-01-02"), timeOfDay(r.TimeOfDay))
}

func timeOfDay(hhmm int) string {
	if hhmm == collision.Unknown {
		return "unknown time"
	}
	return fmt.Sprintf("%02d:%02d", hhmm/100, hhmm%100)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func recordFields(r *collision.Record, region string) []field {
	age := "-"
	if r.VictimAge != collision.Unknown {
		age = fmt.Sprint(r.VictimAge)
	}
	return []field{
		{"DR number", r.ID},
		{"Date", r.Occurred.Format("2006-01-02")},
		{"Time", timeOfDay(r.TimeOfDay)},
		{"Area", orDash(r.Area)},
		{"Neighborhood", orDash(region)},
		{"Collision type", orDash(r.Category)},
		{"Address", orDash(r.Address)},
		{"Cross street", orDash(r.CrossStreet)},
		{"Victim age", age},
		{"Victim sex", orDash(r.VictimSex)},
		{"Victim descent", orDash(r.VictimDescent)},
		{"Premise", orDash(r.Premise)},
	}
}

func (a *App) bindHistograms(ctx context.Context, p *mapPage, rows transform.Selection, yearly bool) {
	specs := []struct {
		title string
		spec  transform.AggregateSpec
	}{
		{"Collisions by month", transform.AggregateSpec{GroupBy: transform.DimMonth, ZeroFill: true}},
		{"Collisions by hour", transform.AggregateSpec{GroupBy: transform.DimHour, ZeroFill: true}},
	}
	if yearly {
		specs = append(specs, struct {
			title string
			spec  transform.AggregateSpec
		}{"Collisions by year", transform.AggregateSpec{GroupBy: transform.DimYear}})
	}

	for _, s := range specs {
		if h, ok := a.drawHistogram(ctx, &p.page, s.title, transform.Aggregate(rows, s.spec)); ok {
			p.Histograms = append(p.Histograms, h)
		}
	}
}

// drawHistogram renders v, adding an error notice to p when it cannot be
// drawn.
func (a *App) drawHistogram(ctx context.Context, p *page, title string, v transform.AggregateView) (histogram, bool) {
	svg, err := a.histogramSVG(v, "")
	if err != nil {
		log.FromContext(ctx).Error("render histogram", "chart", title, "error", err)
		p.add(levelError, fmt.Sprintf("%s could not be drawn.", title))
		return histogram{}, false
	}
	return histogram{
		Title:    title,
		SVG:      template.HTML(svg), //nolint:gosec // generated by go-gg from numeric data
		Excluded: v.Excluded,
	}, true
}

// bindRoute resolves the commute route between two locations and measures
// collisions within the buffer.
func (a *App) bindRoute(ctx context.Context, p *mapPage, q *query, rows transform.Selection, locs []transform.Location) {
	rs := &routeSummary{
		Buffer:    transform.ClampBuffer(q.float("buffer", a.opts.Route.BufferMeters)),
		MinBuffer: transform.MinBufferMeters,
		MaxBuffer: transform.MaxBufferMeters,
	}
	p.Route = rs
	if len(locs) < 2 {
		p.add(levelInfo, "Fewer than two locations are available, so no route can be built.")
		return
	}

	start, end := q.str("start"), q.str("end")
	if start == "" {
		start = locs[0].Key
	}
	if end == "" {
		end = locs[1].Key
	}
	for _, l := range locs {
		rs.Starts = append(rs.Starts, option{Value: l.Key, Label: l.Label(), Selected: l.Key == start})
		rs.Ends = append(rs.Ends, option{Value: l.Key, Label: l.Label(), Selected: l.Key == end})
	}
	if start == end {
		p.add(levelWarning, "The start and end locations must differ.")
		return
	}
	from, okFrom := transform.FindLocation(locs, start)
	to, okTo := transform.FindLocation(locs, end)
	if !okFrom || !okTo {
		p.add(levelInfo, "The chosen route endpoints have no collisions under the current filters.")
		return
	}

	res := a.router.Resolve(ctx, orb.Point{from.Lon, from.Lat}, orb.Point{to.Lon, to.Lat})
	if res.Err != nil {
		p.add(levelWarning, fmt.Sprintf("Route lookup failed, showing a straight line instead: %v", res.Err))
	}
	exp := transform.RouteExposure(rows, res.Path, rs.Buffer, a.opts.Map.LocationPrecision)

	rs.Ready = true
	rs.Provider = res.Provider
	rs.OnRoute = exp.OnRoute.Len()
	rs.Total = exp.Total
	rs.Ratio = exp.Ratio
	rs.Hotspots = exp.Hotspots
	rs.Excluded = exp.Excluded
	if rs.OnRoute == 0 {
		p.add(levelInfo, "No collisions were found within the buffer.")
	}

	p.Layers.Route = view.RouteLine(res.Path)
	p.Points = view.PointLayer(exp.OnRoute, a.opts.Map.MaxPoints, a.opts.Map.LocationPrecision)
	p.Layers.Points = p.Points.Points
	p.View.Lat = (from.Lat + to.Lat) / 2
	p.View.Lon = (from.Lon + to.Lon) / 2
}
