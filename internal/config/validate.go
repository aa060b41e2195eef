package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/collisionmap/collisionmap/internal/transform"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Addr == "" {
		errs = append(errs, "server.addr: must not be empty")
	}

	if cfg.Sources.Collisions == "" {
		errs = append(errs, "sources.collisions: a collision table is required")
	}
	if cfg.Sources.Regions == "" {
		errs = append(errs, "sources.regions: a region boundary file is required")
	}
	for _, src := range []struct{ name, value string }{
		{"collisions", cfg.Sources.Collisions},
		{"regions", cfg.Sources.Regions},
		{"schools", cfg.Sources.Schools},
	} {
		if err := checkSource(src.value); err != nil {
			errs = append(errs, fmt.Sprintf("sources.%s: %v", src.name, err))
		}
	}
	if cfg.Sources.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("sources.timeout: must be non-negative, got %s", cfg.Sources.Timeout))
	}

	if cfg.Map.CenterLat < -90 || cfg.Map.CenterLat > 90 {
		errs = append(errs, fmt.Sprintf("map.center_lat: must be between -90 and 90, got %g", cfg.Map.CenterLat))
	}
	if cfg.Map.CenterLon < -180 || cfg.Map.CenterLon > 180 {
		errs = append(errs, fmt.Sprintf("map.center_lon: must be between -180 and 180, got %g", cfg.Map.CenterLon))
	}
	if cfg.Map.Zoom < 0 || cfg.Map.Zoom > 20 {
		errs = append(errs, fmt.Sprintf("map.zoom: must be between 0 and 20, got %d", cfg.Map.Zoom))
	}
	if cfg.Map.MaxPoints < NoPointCap {
		errs = append(errs, fmt.Sprintf("map.max_points: must be positive or %d for no cap, got %d", NoPointCap, cfg.Map.MaxPoints))
	}
	if cfg.Map.HexRadiusMeters <= 0 {
		errs = append(errs, fmt.Sprintf("map.hex_radius_m: must be positive, got %g", cfg.Map.HexRadiusMeters))
	}
	if cfg.Map.LocationPrecision < 1 || cfg.Map.LocationPrecision > 6 {
		errs = append(errs, fmt.Sprintf("map.location_precision: must be between 1 and 6, got %d", cfg.Map.LocationPrecision))
	}

	if cfg.Schools.RadiusMiles <= 0 {
		errs = append(errs, fmt.Sprintf("schools.radius_miles: must be positive, got %g", cfg.Schools.RadiusMiles))
	}

	if cfg.Route.OSRMURL != "" {
		if u, err := url.Parse(cfg.Route.OSRMURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Sprintf("route.osrm_url: must be an http(s) URL, got %q", cfg.Route.OSRMURL))
		}
	}
	if cfg.Route.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("route.timeout: must be non-negative, got %s", cfg.Route.Timeout))
	}
	if cfg.Route.BufferMeters < transform.MinBufferMeters || cfg.Route.BufferMeters > transform.MaxBufferMeters {
		errs = append(errs, fmt.Sprintf("route.buffer_m: must be between %g and %g, got %g",
			transform.MinBufferMeters, transform.MaxBufferMeters, cfg.Route.BufferMeters))
	}

	seen := make(map[string]bool)
	for i, ch := range cfg.Charts {
		prefix := fmt.Sprintf("charts[%d]", i)
		if ch.Name == "" {
			errs = append(errs, prefix+".name: must not be empty")
		} else if seen[ch.Name] {
			errs = append(errs, fmt.Sprintf("%s.name: duplicate chart %q", prefix, ch.Name))
		}
		seen[ch.Name] = true

		if _, err := ch.Spec(); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Spec converts a chart declaration into an aggregation spec.
func (c ChartConfig) Spec() (transform.AggregateSpec, error) {
	dim, err := transform.ParseDimension(c.GroupBy)
	if err != nil {
		return transform.AggregateSpec{}, fmt.Errorf("group_by: %w", err)
	}
	red, err := transform.ParseReducer(c.Reduce)
	if err != nil {
		return transform.AggregateSpec{}, fmt.Errorf("reduce: %w", err)
	}
	var measure transform.Measure
	if c.Measure != "" {
		measure, err = transform.ParseMeasure(c.Measure)
		if err != nil {
			return transform.AggregateSpec{}, fmt.Errorf("measure: %w", err)
		}
	}
	if red != transform.ReduceCount && measure == "" {
		return transform.AggregateSpec{}, fmt.Errorf("measure: required for reduce %q", red)
	}
	sortMode, err := transform.ParseSortMode(c.Sort)
	if err != nil {
		return transform.AggregateSpec{}, fmt.Errorf("sort: %w", err)
	}
	if c.Limit < 0 {
		return transform.AggregateSpec{}, fmt.Errorf("limit: must be non-negative, got %d", c.Limit)
	}
	return transform.AggregateSpec{
		GroupBy: dim,
		Reduce:  red,
		Measure: measure,
		Sort:    sortMode,
		Limit:   c.Limit,
	}, nil
}

func checkSource(src string) error {
	if src == "" {
		return nil
	}
	if !strings.Contains(src, "://") {
		return nil
	}
	u, err := url.Parse(src)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q (use a file path or http(s) URL)", u.Scheme)
	}
	return nil
}
