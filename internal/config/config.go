// Package config handles collisionmap configuration files (.collisionmap.yaml
// or TOML), environment overrides, and defaults.
package config

import "time"

// Config represents the contents of a configuration file.
type Config struct {
	Server  ServerConfig  `yaml:"server,omitempty" toml:"server"`
	Sources SourcesConfig `yaml:"sources,omitempty" toml:"sources"`
	Regions RegionsConfig `yaml:"regions,omitempty" toml:"regions"`
	Map     MapConfig     `yaml:"map,omitempty" toml:"map"`
	Schools SchoolsConfig `yaml:"schools,omitempty" toml:"schools"`
	Route   RouteConfig   `yaml:"route,omitempty" toml:"route"`
	Charts  []ChartConfig `yaml:"charts,omitempty" toml:"charts"`
}

// ServerConfig controls the local dashboard server.
type ServerConfig struct {
	Addr      string `yaml:"addr,omitempty" toml:"addr" env:"COLLISIONMAP_ADDR"`
	NoBrowser bool   `yaml:"no_browser,omitempty" toml:"no_browser" env:"COLLISIONMAP_NO_BROWSER"`
}

// SourcesConfig names the input files. Each entry is a local path or an
// http(s) URL.
type SourcesConfig struct {
	Collisions string        `yaml:"collisions,omitempty" toml:"collisions" env:"COLLISIONMAP_COLLISIONS"`
	Regions    string        `yaml:"regions,omitempty" toml:"regions" env:"COLLISIONMAP_REGIONS"`
	Schools    string        `yaml:"schools,omitempty" toml:"schools" env:"COLLISIONMAP_SCHOOLS"`
	Timeout    time.Duration `yaml:"timeout,omitempty" toml:"timeout" env:"COLLISIONMAP_SOURCE_TIMEOUT"`
}

// RegionsConfig controls how region names are read from the boundary file.
type RegionsConfig struct {
	// NameProperty is the GeoJSON property holding the region name. Empty
	// means auto-detect.
	NameProperty string `yaml:"name_property,omitempty" toml:"name_property"`
}

// NoPointCap is the max_points value that disables point down-sampling.
const NoPointCap = -1

// MapConfig holds map view settings. MaxPoints caps the rendered point
// layer: 0 means the default and NoPointCap draws every located collision.
type MapConfig struct {
	CenterLat         float64 `yaml:"center_lat,omitempty" toml:"center_lat"`
	CenterLon         float64 `yaml:"center_lon,omitempty" toml:"center_lon"`
	Zoom              int     `yaml:"zoom,omitempty" toml:"zoom"`
	MaxPoints         int     `yaml:"max_points,omitempty" toml:"max_points"`
	HexRadiusMeters   float64 `yaml:"hex_radius_m,omitempty" toml:"hex_radius_m"`
	LocationPrecision int     `yaml:"location_precision,omitempty" toml:"location_precision"`
	MapboxToken       string  `yaml:"-" toml:"-" env:"MAPBOX_TOKEN"`
}

// SchoolsConfig holds school proximity settings.
type SchoolsConfig struct {
	RadiusMiles float64 `yaml:"radius_miles,omitempty" toml:"radius_miles"`
}

// RouteConfig controls the commute route view.
type RouteConfig struct {
	// OSRMURL is the base URL of an OSRM routing service. Empty means
	// straight-line routes.
	OSRMURL      string        `yaml:"osrm_url,omitempty" toml:"osrm_url" env:"COLLISIONMAP_OSRM_URL"`
	Timeout      time.Duration `yaml:"timeout,omitempty" toml:"timeout"`
	BufferMeters float64       `yaml:"buffer_m,omitempty" toml:"buffer_m"`
}

// ChartConfig declares an extra aggregate view rendered on the map page.
type ChartConfig struct {
	Name    string `yaml:"name" toml:"name"`
	Title   string `yaml:"title,omitempty" toml:"title"`
	GroupBy string `yaml:"group_by" toml:"group_by"`
	Reduce  string `yaml:"reduce,omitempty" toml:"reduce"`
	Measure string `yaml:"measure,omitempty" toml:"measure"`
	Sort    string `yaml:"sort,omitempty" toml:"sort"`
	Limit   int    `yaml:"limit,omitempty" toml:"limit"`
}

// FileName is the config file looked up in the working directory when no
// explicit path is given.
const FileName = ".collisionmap.yaml"

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server:  ServerConfig{Addr: "localhost:8501"},
		Sources: SourcesConfig{Timeout: 30 * time.Second},
		Map: MapConfig{
			CenterLat:         34.05,
			CenterLon:         -118.25,
			Zoom:              11,
			MaxPoints:         8000,
			HexRadiusMeters:   200,
			LocationPrecision: 4,
		},
		Schools: SchoolsConfig{RadiusMiles: 0.2},
		Route: RouteConfig{
			Timeout:      10 * time.Second,
			BufferMeters: 200,
		},
	}
}
