package view

import (
	"github.com/collisionmap/collisionmap/internal/transform"
)

// SchoolMarker is one school on the safety map.
type SchoolMarker struct {
	Index      int     `json:"index"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Collisions int     `json:"collisions"`
	PerYear    float64 `json:"perYear"`
	Rating     string  `json:"rating"`
	Color      string  `json:"color"`
}

// SchoolLayer marks every located school in r, colored by rating. Schools
// without coordinates are already counted in r.Excluded.
func SchoolLayer(r transform.SchoolReport) ([]SchoolMarker, int) {
	markers := make([]SchoolMarker, 0, len(r.Rows))
	for _, st := range r.Rows {
		markers = append(markers, SchoolMarker{
			Index:      st.Index,
			Name:       st.School.Name,
			Lat:        st.School.Lat,
			Lon:        st.School.Lon,
			Collisions: st.Collisions,
			PerYear:    st.PerYear,
			Rating:     string(st.Rating),
			Color:      RatingColor(st.Rating).CSS(),
		})
	}
	return markers, r.Excluded
}
