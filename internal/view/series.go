package view

import "github.com/collisionmap/collisionmap/internal/transform"

// Series is a bar or doughnut chart's data, in display order.
type Series struct {
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Values   []float64 `json:"values"`
	Selected int       `json:"selected"` // index of the highlighted bar, or -1
	Excluded int       `json:"-"`
	Omitted  int       `json:"-"`
}

// ChartSeries converts every group of v into a labeled value.
func ChartSeries(title string, v transform.AggregateView) Series {
	s := groupSeries(title, v.Groups, "")
	s.Excluded = v.Excluded
	s.Omitted = v.Omitted
	return s
}

// TopSeries keeps the n largest groups of v plus the selected key, which is
// highlighted.
func TopSeries(title string, v transform.AggregateView, n int, selected string) Series {
	groups := transform.TopWithSelected(v, n, selected)
	s := groupSeries(title, groups, selected)
	s.Excluded = v.Excluded
	rows := 0
	for _, g := range groups {
		rows += g.Count
	}
	s.Omitted = v.Total - v.Excluded - rows
	return s
}

func groupSeries(title string, groups []transform.Group, selected string) Series {
	s := Series{
		Title:    title,
		Labels:   make([]string, len(groups)),
		Values:   make([]float64, len(groups)),
		Selected: -1,
	}
	for i, g := range groups {
		s.Labels[i] = g.Label
		s.Values[i] = g.Value
		if selected != "" && g.Key == selected {
			s.Selected = i
		}
	}
	return s
}

// Empty reports whether the series has nothing to draw.
func (s Series) Empty() bool {
	for _, v := range s.Values {
		if v != 0 {
			return false
		}
	}
	return true
}
