package config

// Merge layers override on top of base. Non-zero override values win; zero
// values fall through to base. Charts from override replace base charts when
// present.
func Merge(base, override Config) Config {
	result := base

	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.NoBrowser {
		result.Server.NoBrowser = true
	}

	if override.Sources.Collisions != "" {
		result.Sources.Collisions = override.Sources.Collisions
	}
	if override.Sources.Regions != "" {
		result.Sources.Regions = override.Sources.Regions
	}
	if override.Sources.Schools != "" {
		result.Sources.Schools = override.Sources.Schools
	}
	if override.Sources.Timeout > 0 {
		result.Sources.Timeout = override.Sources.Timeout
	}

	if override.Regions.NameProperty != "" {
		result.Regions.NameProperty = override.Regions.NameProperty
	}

	// Map center: both coordinates move together.
	if override.Map.CenterLat != 0 || override.Map.CenterLon != 0 {
		result.Map.CenterLat = override.Map.CenterLat
		result.Map.CenterLon = override.Map.CenterLon
	}
	if override.Map.Zoom > 0 {
		result.Map.Zoom = override.Map.Zoom
	}
	if override.Map.MaxPoints != 0 {
		result.Map.MaxPoints = override.Map.MaxPoints
	}
	if override.Map.HexRadiusMeters != 0 {
		result.Map.HexRadiusMeters = override.Map.HexRadiusMeters
	}
	if override.Map.LocationPrecision != 0 {
		result.Map.LocationPrecision = override.Map.LocationPrecision
	}
	if override.Map.MapboxToken != "" {
		result.Map.MapboxToken = override.Map.MapboxToken
	}

	if override.Schools.RadiusMiles != 0 {
		result.Schools.RadiusMiles = override.Schools.RadiusMiles
	}

	if override.Route.OSRMURL != "" {
		result.Route.OSRMURL = override.Route.OSRMURL
	}
	if override.Route.Timeout != 0 {
		result.Route.Timeout = override.Route.Timeout
	}
	if override.Route.BufferMeters != 0 {
		result.Route.BufferMeters = override.Route.BufferMeters
	}

	if len(override.Charts) > 0 {
		result.Charts = append([]ChartConfig(nil), override.Charts...)
	}

	return result
}
