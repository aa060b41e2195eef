// Package dashboard serves the collision map, neighborhood and school safety
// views. Every request parses its filters from the URL query into a fresh
// transform.FilterState, recomputes over the shared read-only data and
// renders the result with html/template.
package dashboard

import (
	"fmt"
	"slices"

	"github.com/collisionmap/collisionmap/internal/config"
	"github.com/collisionmap/collisionmap/internal/route"
	"github.com/collisionmap/collisionmap/internal/transform"
	"github.com/collisionmap/collisionmap/internal/view"
)

// Options configures the dashboard views.
type Options struct {
	Map    config.MapConfig
	Route  config.RouteConfig
	Charts []config.ChartConfig
	// SchoolRadiusMeters is drawn around the selected school.
	SchoolRadiusMeters float64
	// Router resolves commute routes. Nil means straight lines.
	Router route.Router
}

type chart struct {
	name  string
	title string
	spec  transform.AggregateSpec
}

// App holds the loaded data and renders pages from it.
type App struct {
	joined  *transform.Joined
	schools *transform.SchoolIndex
	opts    Options
	router  route.Fallback
	charts  []chart
	years   []int

	histogramSVG func(transform.AggregateView, string) ([]byte, error)
}

// New builds the dashboard over the joined collision table. schools may be
// nil when no school source was loaded. Zero options take their defaults.
func New(j *transform.Joined, schools *transform.SchoolIndex, opts Options) (*App, error) {
	if j == nil {
		return nil, fmt.Errorf("dashboard: no collision data")
	}
	merged := config.Merge(config.Defaults(), config.Config{Map: opts.Map, Route: opts.Route})
	opts.Map, opts.Route = merged.Map, merged.Route
	if opts.SchoolRadiusMeters <= 0 {
		opts.SchoolRadiusMeters = config.Defaults().Schools.RadiusMiles * transform.MetersPerMile
	}

	a := &App{
		joined:  j,
		schools: schools,
		opts:    opts,
		router:  route.Fallback{Primary: opts.Router},

		histogramSVG: view.HistogramSVG,
	}
	for _, ch := range opts.Charts {
		spec, err := ch.Spec()
		if err != nil {
			return nil, fmt.Errorf("chart %q: %w", ch.Name, err)
		}
		spec.Precision = opts.Map.LocationPrecision
		title := ch.Title
		if title == "" {
			title = ch.Name
		}
		a.charts = append(a.charts, chart{name: ch.Name, title: title, spec: spec})
	}

	seen := make(map[int]bool)
	for i := range j.Records {
		y := j.Records[i].Year()
		if !seen[y] {
			seen[y] = true
			a.years = append(a.years, y)
		}
	}
	slices.Sort(a.years)
	return a, nil
}

// yearRange returns the first and last year in the data, or zeros.
func (a *App) yearRange() (int, int) {
	if len(a.years) == 0 {
		return 0, 0
	}
	return a.years[0], a.years[len(a.years)-1]
}
