package loader

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/collisionmap/collisionmap/internal/collision"
)

// nameHints are substrings that mark a property as the region name.
var nameHints = []string{"name", "neigh", "hood"}

// ReadRegions parses a GeoJSON FeatureCollection of Polygon and MultiPolygon
// features in WGS84. nameProperty selects the name property; when empty it
// is detected from the first feature.
func ReadRegions(source string, data []byte, nameProperty string) ([]collision.Region, error) {
	fail := func(stage string, err error) error {
		return &collision.LoadError{Source: source, Stage: stage, Err: err}
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fail(collision.StageParse, err)
	}
	if len(fc.Features) == 0 {
		return nil, fail(collision.StageSchema, errors.New("feature collection has no features"))
	}

	if nameProperty == "" {
		nameProperty = detectNameProperty(fc.Features[0].Properties)
	}

	regions := make([]collision.Region, 0, len(fc.Features))
	for i, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return nil, fail(collision.StageSchema,
				fmt.Errorf("feature %d: unsupported geometry %s (want Polygon or MultiPolygon)", i, geometryType(f.Geometry)))
		}
		bound := f.Geometry.Bound()
		if bound.Min.Lon() < -180 || bound.Max.Lon() > 180 || bound.Min.Lat() < -90 || bound.Max.Lat() > 90 {
			return nil, fail(collision.StageSchema,
				fmt.Errorf("feature %d: coordinates outside lon/lat range; expected WGS84", i))
		}

		name := ""
		if nameProperty != "" {
			name = strings.TrimSpace(f.Properties.MustString(nameProperty, ""))
		}
		if name == "" {
			name = "Region " + strconv.Itoa(i+1)
		}
		regions = append(regions, collision.Region{
			Index:    i,
			Name:     name,
			Geometry: f.Geometry,
			Bound:    bound,
		})
	}
	return regions, nil
}

// detectNameProperty returns the first string property, in sorted key order,
// whose key contains a name hint; otherwise the first string property.
func detectNameProperty(props geojson.Properties) string {
	keys := make([]string, 0, len(props))
	for k, v := range props {
		if _, ok := v.(string); ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		lower := strings.ToLower(k)
		for _, hint := range nameHints {
			if strings.Contains(lower, hint) {
				return k
			}
		}
	}
	if len(keys) > 0 {
		return keys[0]
	}
	return ""
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}
