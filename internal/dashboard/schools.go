package dashboard

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/collisionmap/collisionmap/internal/collision"
	"github.com/collisionmap/collisionmap/internal/transform"
	"github.com/collisionmap/collisionmap/internal/view"
)

// topSchoolCategories is how many collision types the school detail shows.
const topSchoolCategories = 5

type legendItem struct {
	Label string
	Rule  string
	Color string
}

var ratingRules = map[transform.Rating]string{
	transform.RatingExcellent: "0 per year",
	transform.RatingGood:      "up to 3 per year",
	transform.RatingFair:      "up to 10 per year",
	transform.RatingPoor:      "more than 10 per year",
}

type schoolRow struct {
	Link       string
	Name       string
	Type       string
	Collisions int
	PerYear    float64
	Rating     string
	Color      string
	Selected   bool
}

type schoolDetail struct {
	Name       string
	Fields     []field
	Collisions int
	PerYear    float64
	Rating     string
	Color      string
	ByYear     view.Series
	Categories view.Series
	// Excluded counts nearby collisions not drawn on the map.
	Excluded int
}

type schoolPage struct {
	page
	Available  bool
	From, To   []option
	Types      []option
	Categories []option
	Ratings    []option
	Query      string
	Legend     []legendItem
	Rows       []schoolRow
	Excluded   int
	Years      int
	Layers     mapLayers
	Detail     *schoolDetail
}

func (a *App) handleSchools(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := &schoolPage{page: a.newPage(r, "/schools", "School Safety")}
	for _, rt := range transform.Ratings {
		p.Legend = append(p.Legend, legendItem{Label: string(rt), Rule: ratingRules[rt], Color: view.RatingColor(rt).Hex()})
	}
	if a.schools == nil {
		p.Empty = true
		p.add(levelInfo, "No school data was loaded. Start collisionmap with --schools to enable this view.")
		a.render(w, r, "schools", p)
		return
	}
	p.Available = true

	from, to := a.yearWindow(q)
	rating, err := transform.ParseRating(q.str("safety"))
	if err != nil {
		q.ignore("safety", q.str("safety"))
	}
	filter := transform.SchoolFilter{
		Window:   transform.YearWindow(from, to),
		Type:     q.str("type"),
		Category: q.str("category"),
		Query:    q.str("q"),
		Rating:   rating,
	}
	p.From = yearOptions(a.years, from, false)
	p.To = yearOptions(a.years, to, false)
	p.Types = stringOptions(a.schools.Types(), filter.Type, "All types")
	p.Categories = stringOptions(a.schools.Categories(filter.Type), filter.Category, "All categories")
	p.Ratings = stringOptions(ratingNames(), string(rating), "All ratings")
	p.Query = filter.Query

	report := a.schools.Stats(filter)
	p.Notices = append(p.Notices, q.notices...)
	p.Years = report.Years
	p.Excluded = report.Excluded
	if report.Excluded > 0 {
		p.add(levelInfo, fmt.Sprintf("%d school(s) without coordinates are not shown.", report.Excluded))
	}
	if len(report.Rows) == 0 {
		p.warn(&collision.EmptyResultWarning{Filter: "the selected schools"})
		a.render(w, r, "schools", p)
		return
	}

	markers, _ := view.SchoolLayer(report)
	p.Layers.Schools = markers

	selected := q.int("school", -1)
	for _, st := range report.Rows {
		color := view.RatingColor(st.Rating).Hex()
		p.Rows = append(p.Rows, schoolRow{
			Link:       schoolLink(r.URL.Query(), st.Index),
			Name:       st.School.Name,
			Type:       st.School.Type,
			Collisions: st.Collisions,
			PerYear:    st.PerYear,
			Rating:     string(st.Rating),
			Color:      color,
			Selected:   st.Index == selected,
		})
		if st.Index == selected {
			p.Detail = a.schoolDetail(p, st, filter.Window)
		}
	}
	if selected >= 0 && p.Detail == nil {
		p.add(levelInfo, "The selected school does not match the current filters.")
	}
	a.render(w, r, "schools", p)
}

func ratingNames() []string {
	out := make([]string, len(transform.Ratings))
	for i, rt := range transform.Ratings {
		out[i] = string(rt)
	}
	return out
}

// schoolLink keeps the current filters and selects school si.
func schoolLink(v url.Values, si int) string {
	v = cloneValues(v)
	v.Set("school", strconv.Itoa(si))
	return "/schools?" + v.Encode()
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func (a *App) schoolDetail(p *schoolPage, st transform.SchoolStat, w transform.Window) *schoolDetail {
	s := st.School
	nearby := a.schools.Nearby(st.Index, w)
	color := view.RatingColor(st.Rating)

	enrollment := "-"
	if s.Enrollment != collision.Unknown {
		enrollment = p.Fmt.Int(s.Enrollment)
	}
	addr := strings.TrimSpace(strings.Join(nonBlank(s.Address, s.City, s.State), ", "))
	d := &schoolDetail{
		Name: s.Name,
		Fields: []field{
			{"Type", orDash(s.Type)},
			{"Category", orDash(s.Category)},
			{"Address", orDash(addr)},
			{"Enrollment", enrollment},
		},
		Collisions: st.Collisions,
		PerYear:    st.PerYear,
		Rating:     string(st.Rating),
		Color:      color.Hex(),
		ByYear:     view.ChartSeries("Collisions by year", transform.Aggregate(nearby, transform.AggregateSpec{GroupBy: transform.DimYear})),
		Categories: view.ChartSeries("Collision types", transform.Aggregate(nearby, transform.AggregateSpec{
			GroupBy: transform.DimCategory,
			Sort:    transform.SortValueDesc,
			Limit:   topSchoolCategories,
		})),
	}

	points := view.PointLayer(nearby, a.opts.Map.MaxPoints, a.opts.Map.LocationPrecision)
	d.Excluded = points.Excluded + points.Sampled
	p.Layers.Points = points.Points
	p.Layers.Circle = &circle{
		Center: view.LatLng{s.Lat, s.Lon},
		Radius: a.opts.SchoolRadiusMeters,
		Color:  color.CSS(),
	}
	p.View.Lat, p.View.Lon, p.View.Zoom = s.Lat, s.Lon, 15
	return d
}

func nonBlank(values ...string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
