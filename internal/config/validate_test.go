package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collisionmap/collisionmap/internal/transform"
)

func validConfig() Config {
	cfg := Defaults()
	cfg.Sources.Collisions = "c.csv"
	cfg.Sources.Regions = "r.geojson"
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Sources.Schools = "https://example.com/schools.csv"
	cfg.Route.OSRMURL = "http://router.project-osrm.org"
	cfg.Charts = []ChartConfig{
		{Name: "weekday", GroupBy: "weekday"},
		{Name: "age", GroupBy: "area", Reduce: "mean", Measure: "victim_age", Sort: "value_desc", Limit: 5},
	}
	require.NoError(t, Validate(&cfg))
}

func TestValidate_NoPointCap(t *testing.T) {
	cfg := validConfig()
	cfg.Map.MaxPoints = NoPointCap
	require.NoError(t, Validate(&cfg))
}

func TestValidate_MissingSources(t *testing.T) {
	cfg := Defaults()
	err := Validate(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sources.collisions")
	assert.Contains(t, err.Error(), "sources.regions")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Map.MaxPoints = -2
	cfg.Map.LocationPrecision = 9
	cfg.Schools.RadiusMiles = 0
	cfg.Route.BufferMeters = 5000

	err := Validate(&cfg)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "config validation failed")
	assert.Contains(t, msg, "map.max_points")
	assert.Contains(t, msg, "map.location_precision")
	assert.Contains(t, msg, "schools.radius_miles")
	assert.Contains(t, msg, "route.buffer_m")
}

func TestValidate_BadSourceScheme(t *testing.T) {
	cfg := validConfig()
	cfg.Sources.Collisions = "ftp://example.com/c.csv"
	err := Validate(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported scheme "ftp"`)
}

func TestValidate_BadOSRMURL(t *testing.T) {
	cfg := validConfig()
	cfg.Route.OSRMURL = "router.local"
	err := Validate(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route.osrm_url")
}

func TestValidate_Charts(t *testing.T) {
	tests := []struct {
		name  string
		chart ChartConfig
		want  string
	}{
		{"missing name", ChartConfig{GroupBy: "area"}, "name: must not be empty"},
		{"unknown group", ChartConfig{Name: "x", GroupBy: "colour"}, "group_by"},
		{"unknown reducer", ChartConfig{Name: "x", GroupBy: "area", Reduce: "median"}, "reduce"},
		{"mean without measure", ChartConfig{Name: "x", GroupBy: "area", Reduce: "mean"}, "measure: required"},
		{"bad sort", ChartConfig{Name: "x", GroupBy: "area", Sort: "random"}, "sort"},
		{"negative limit", ChartConfig{Name: "x", GroupBy: "area", Limit: -2}, "limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Charts = []ChartConfig{tt.chart}
			err := Validate(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_DuplicateChart(t *testing.T) {
	cfg := validConfig()
	cfg.Charts = []ChartConfig{
		{Name: "dup", GroupBy: "area"},
		{Name: "dup", GroupBy: "hour"},
	}
	err := Validate(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate chart "dup"`)
}

func TestChartConfig_Spec(t *testing.T) {
	spec, err := ChartConfig{Name: "a", GroupBy: "month", Reduce: "sum", Measure: "victim_age", Sort: "value_asc", Limit: 3}.Spec()
	require.NoError(t, err)
	assert.Equal(t, transform.DimMonth, spec.GroupBy)
	assert.Equal(t, transform.ReduceSum, spec.Reduce)
	assert.Equal(t, transform.MeasureVictimAge, spec.Measure)
	assert.Equal(t, transform.SortValueAsc, spec.Sort)
	assert.Equal(t, 3, spec.Limit)

	spec, err = ChartConfig{Name: "b", GroupBy: "hour"}.Spec()
	require.NoError(t, err)
	assert.Equal(t, transform.ReduceCount, spec.Reduce)
	assert.Equal(t, transform.SortKeyAsc, spec.Sort)
}
