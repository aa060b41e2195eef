package view

import "github.com/paulmach/orb"

// LatLng is a Leaflet coordinate pair.
type LatLng [2]float64

// RouteLine flips an orb path into Leaflet's latitude-first order.
func RouteLine(path orb.LineString) []LatLng {
	out := make([]LatLng, len(path))
	for i, p := range path {
		out[i] = LatLng{p.Lat(), p.Lon()}
	}
	return out
}
