package dashboard

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/collisionmap/collisionmap/internal/collision"
	"github.com/collisionmap/collisionmap/internal/redact"
)

const (
	levelInfo    = "info"
	levelWarning = "warning"
	levelError   = "error"
)

type notice struct {
	Level string
	Text  string
}

type tiles struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	TileSize    int    `json:"tileSize"`
	ZoomOffset  int    `json:"zoomOffset"`
}

// mapView is the initial Leaflet viewport.
type mapView struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Zoom  int     `json:"zoom"`
	Tiles tiles   `json:"tiles"`
}

type navItem struct {
	Path   string
	Label  string
	Active bool
}

// page holds what every view renders: navigation, notices and the map setup.
type page struct {
	Title   string
	Nav     []navItem
	Notices []notice
	View    mapView
	Fmt     numberFormat
	// Empty replaces the page body with the no-data placeholder.
	Empty bool
}

func (a *App) newPage(r *http.Request, path, title string) page {
	nav := []navItem{
		{Path: "/map", Label: "Collision Map"},
		{Path: "/neighborhoods", Label: "Neighborhoods"},
		{Path: "/schools", Label: "School Safety"},
	}
	for i := range nav {
		nav[i].Active = nav[i].Path == path
	}
	return page{
		Title: title,
		Nav:   nav,
		View: mapView{
			Lat:   a.opts.Map.CenterLat,
			Lon:   a.opts.Map.CenterLon,
			Zoom:  a.opts.Map.Zoom,
			Tiles: tileLayer(a.opts.Map.MapboxToken),
		},
		Fmt: newNumberFormat(requestTag(r)),
	}
}

func tileLayer(mapboxToken string) tiles {
	if mapboxToken != "" {
		return tiles{
			URL:         "https://api.mapbox.com/styles/v1/mapbox/light-v11/tiles/{z}/{x}/{y}?access_token=" + mapboxToken,
			Attribution: `&copy; <a href="https://www.mapbox.com/about/maps/">Mapbox</a> &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a>`,
			TileSize:    512,
			ZoomOffset:  -1,
		}
	}
	return tiles{
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		TileSize:    256,
	}
}

// warn adds a notice per transform warning. An empty-result warning also
// switches the page to its placeholder.
func (p *page) warn(warnings ...error) {
	for _, w := range warnings {
		var empty *collision.EmptyResultWarning
		if errors.As(w, &empty) {
			p.Empty = true
		}
		p.Notices = append(p.Notices, notice{Level: levelWarning, Text: redact.String(w.Error())})
	}
}

func (p *page) add(level, text string) {
	p.Notices = append(p.Notices, notice{Level: level, Text: redact.String(text)})
}

// option is one entry of a select control.
type option struct {
	Value    string
	Label    string
	Selected bool
}

func yearOptions(years []int, selected int, withAll bool) []option {
	var opts []option
	if withAll {
		opts = append(opts, option{Value: "all", Label: "All years", Selected: selected == 0})
	}
	for _, y := range years {
		v := strconv.Itoa(y)
		opts = append(opts, option{Value: v, Label: v, Selected: y == selected})
	}
	return opts
}

func stringOptions(values []string, selected, allLabel string) []option {
	opts := []option{{Value: "", Label: allLabel, Selected: selected == ""}}
	for _, v := range values {
		opts = append(opts, option{Value: v, Label: v, Selected: strings.EqualFold(v, selected)})
	}
	return opts
}
