package dashboard

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/paulmach/orb/planar"

	"github.com/collisionmap/collisionmap/internal/collision"
	"github.com/collisionmap/collisionmap/internal/transform"
	"github.com/collisionmap/collisionmap/internal/view"
)

// topRegions is how many neighborhoods the ranking shows unless "all" is set.
const topRegions = 20

// topPremises is how many premise types the detail breakdown shows.
const topPremises = 8

type regionDetail struct {
	Name     string
	Count    int
	Ages     view.Series
	Sexes    view.Series
	Premises view.Series
	Years    histogram
}

type neighborhoodPage struct {
	page
	From, To        []option
	Regions         []option
	ShowAll         bool
	Rows            int
	Layers          mapLayers
	RegionsExcluded int
	Ranking         view.Series
	Detail          *regionDetail
}

func (a *App) handleNeighborhoods(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := &neighborhoodPage{page: a.newPage(r, "/neighborhoods", "Neighborhood Collisions")}
	p.View.Zoom = max(p.View.Zoom-1, 0)

	from, to := a.yearWindow(q)
	p.From = yearOptions(a.years, from, false)
	p.To = yearOptions(a.years, to, false)
	p.ShowAll = q.flag("all")

	state := transform.FilterState{}.WithWindow(transform.YearWindow(from, to))
	res := transform.Apply(a.joined, state)
	p.Notices = append(p.Notices, q.notices...)
	p.warn(res.Warnings...)
	if res.Empty() {
		a.render(w, r, "neighborhoods", p)
		return
	}
	rows := res.Rows
	p.Rows = rows.Len()

	byRegion := transform.Aggregate(rows, transform.AggregateSpec{
		GroupBy: transform.DimRegion,
		Sort:    transform.SortValueDesc,
	})
	layer := view.PolygonLayer(a.joined.Regions, byRegion, view.GradientScale)
	p.Layers.Regions = layer.Features
	p.RegionsExcluded = layer.Excluded
	if layer.Excluded > 0 {
		p.warn(&collision.GeometryMismatchWarning{
			Excluded: layer.Excluded,
			Reason:   "outside every neighborhood or without coordinates",
		})
	}

	names := a.rankedRegions(byRegion)
	selected := ""
	if want := q.str("region"); want != "" {
		for _, n := range names {
			if strings.EqualFold(n, want) {
				selected = n
				break
			}
		}
		if selected == "" {
			p.add(levelInfo, fmt.Sprintf("Ignoring unknown neighborhood %q.", want))
		}
	}
	if selected == "" && len(names) > 0 {
		selected = names[0]
	}
	for _, n := range names {
		p.Regions = append(p.Regions, option{Value: n, Label: n, Selected: n == selected})
	}

	limit := topRegions
	if p.ShowAll {
		limit = 0
	}
	title := fmt.Sprintf("Collisions per neighborhood (top %d + selected)", topRegions)
	if p.ShowAll {
		title = "Collisions per neighborhood (all)"
	}
	p.Ranking = view.TopSeries(title, byRegion, limit, selected)

	if selected != "" {
		p.Detail = a.regionDetail(r, &p.page, state, selected)
		if c, ok := a.regionCenter(selected); ok {
			p.Layers.Highlight = &c
		}
	}
	a.render(w, r, "neighborhoods", p)
}

// yearWindow reads from/to years, defaulting to the full data range.
func (a *App) yearWindow(q *query) (int, int) {
	lo, hi := a.yearRange()
	from, ok := q.year("from")
	if !ok || from == 0 {
		from = lo
	}
	to, ok := q.year("to")
	if !ok || to == 0 {
		to = hi
	}
	return from, to
}

// rankedRegions lists region names by collisions descending, followed by
// regions without collisions in name order.
func (a *App) rankedRegions(byRegion transform.AggregateView) []string {
	seen := make(map[string]bool)
	var names []string
	for _, g := range byRegion.Groups {
		seen[g.Key] = true
		names = append(names, g.Key)
	}
	var rest []string
	for _, reg := range a.joined.Regions {
		if !seen[reg.Name] {
			seen[reg.Name] = true
			rest = append(rest, reg.Name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

func (a *App) regionCenter(name string) (view.LatLng, bool) {
	for _, reg := range a.joined.Regions {
		if reg.Name == name {
			c, _ := planar.CentroidArea(reg.Geometry)
			return view.LatLng{c.Lat(), c.Lon()}, true
		}
	}
	return view.LatLng{}, false
}

func (a *App) regionDetail(r *http.Request, p *page, state transform.FilterState, name string) *regionDetail {
	d := &regionDetail{Name: name}
	sel := transform.Apply(a.joined, state.WithRegions(name)).Rows
	d.Count = sel.Len()
	if d.Count == 0 {
		return d
	}

	d.Ages = view.ChartSeries("Victim age", transform.Aggregate(sel, transform.AggregateSpec{
		GroupBy:  transform.DimAgeBin,
		ZeroFill: true,
	}))
	d.Sexes = view.ChartSeries("Victim sex", transform.Aggregate(sel, transform.AggregateSpec{
		GroupBy:     transform.DimVictimSex,
		Sort:        transform.SortValueDesc,
		FillMissing: "Unknown",
	}))
	d.Premises = view.ChartSeries("Premise", transform.Aggregate(sel, transform.AggregateSpec{
		GroupBy:     transform.DimPremise,
		Sort:        transform.SortValueDesc,
		Limit:       topPremises,
		FillMissing: "Unknown",
	}))

	byYear := transform.Aggregate(sel, transform.AggregateSpec{GroupBy: transform.DimYear})
	d.Years, _ = a.drawHistogram(r.Context(), p, "Collisions by year", byYear)
	return d
}
