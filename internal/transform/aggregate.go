package transform

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/aclements/go-moremath/stats"
)

// DefaultPrecision is the number of decimals kept when grouping locations.
const DefaultPrecision = 4

// AggregateSpec declares how to group and reduce a selection.
type AggregateSpec struct {
	GroupBy Dimension
	Reduce  Reducer
	Measure Measure
	Sort    SortMode
	Limit   int

	// ZeroFill emits an empty group for every key of a fixed domain
	// (months, hours, weekdays, age bins).
	ZeroFill bool

	// FillMissing, when set, groups rows without a key under this label
	// instead of excluding them.
	FillMissing string

	// Precision is the rounding for DimLocation keys; 0 means DefaultPrecision.
	Precision int
}

// Group is one row of an AggregateView.
type Group struct {
	Key   string
	Label string
	Count int     // rows in the group
	Value float64 // reduced value; equals Count for ReduceCount
}

// AggregateView is the grouped, reduced and ordered result of Aggregate.
type AggregateView struct {
	Spec   AggregateSpec
	Groups []Group

	// Total is the number of input rows.
	Total int
	// Excluded counts rows with no key (or, for sum and mean, no measure).
	Excluded int
	// Omitted counts rows in groups dropped by Limit.
	Omitted int
}

// Empty reports whether the view has no rows in any group.
func (v AggregateView) Empty() bool {
	for _, g := range v.Groups {
		if g.Count > 0 {
			return false
		}
	}
	return true
}

// Find returns the group with the given key.
func (v AggregateView) Find(key string) (Group, bool) {
	for _, g := range v.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return Group{}, false
}

type accumulator struct {
	count int
	xs    []float64
}

// Aggregate groups the selection by spec.GroupBy and reduces each group.
// Groups are ordered by key (numerically when every key is a number), then
// by value when a value sort is requested; ties keep key order.
func Aggregate(s Selection, spec AggregateSpec) AggregateView {
	if spec.Reduce == "" {
		spec.Reduce = ReduceCount
	}
	if spec.Sort == "" {
		spec.Sort = SortKeyAsc
	}
	precision := spec.Precision
	if precision == 0 {
		precision = DefaultPrecision
	}

	view := AggregateView{Spec: spec, Total: s.Len()}
	acc := make(map[string]*accumulator)
	var order []string

	get := func(key string) *accumulator {
		a, ok := acc[key]
		if !ok {
			a = &accumulator{}
			acc[key] = a
			order = append(order, key)
		}
		return a
	}

	if spec.ZeroFill {
		for _, key := range spec.GroupBy.domain() {
			get(key)
		}
	}

	for k := 0; k < s.Len(); k++ {
		key, ok := spec.GroupBy.key(s, k, precision)
		if !ok {
			if spec.FillMissing == "" {
				view.Excluded++
				continue
			}
			key = spec.FillMissing
		}
		if spec.Reduce == ReduceCount {
			get(key).count++
			continue
		}
		x, ok := spec.Measure.value(s.Record(k))
		if !ok {
			view.Excluded++
			continue
		}
		a := get(key)
		a.count++
		a.xs = append(a.xs, x)
	}

	view.Groups = make([]Group, 0, len(order))
	for _, key := range order {
		a := acc[key]
		g := Group{Key: key, Label: spec.GroupBy.label(key), Count: a.count}
		switch spec.Reduce {
		case ReduceCount:
			g.Value = float64(a.count)
		case ReduceSum:
			for _, x := range a.xs {
				g.Value += x
			}
		case ReduceMean:
			if len(a.xs) > 0 {
				g.Value = stats.Mean(a.xs)
			}
		}
		view.Groups = append(view.Groups, g)
	}

	sortGroups(view.Groups, spec.Sort)

	if spec.Limit > 0 && len(view.Groups) > spec.Limit {
		for _, g := range view.Groups[spec.Limit:] {
			view.Omitted += g.Count
		}
		view.Groups = view.Groups[:spec.Limit]
	}
	return view
}

// sortGroups orders by key first, then stably by value for value modes.
func sortGroups(groups []Group, mode SortMode) {
	numeric := true
	for _, g := range groups {
		if _, err := strconv.ParseFloat(g.Key, 64); err != nil {
			numeric = false
			break
		}
	}
	slices.SortStableFunc(groups, func(a, b Group) int {
		if numeric {
			x, _ := strconv.ParseFloat(a.Key, 64)
			y, _ := strconv.ParseFloat(b.Key, 64)
			return cmp.Compare(x, y)
		}
		return cmp.Compare(a.Key, b.Key)
	})

	switch mode {
	case SortValueDesc:
		slices.SortStableFunc(groups, func(a, b Group) int { return cmp.Compare(b.Value, a.Value) })
	case SortValueAsc:
		slices.SortStableFunc(groups, func(a, b Group) int { return cmp.Compare(a.Value, b.Value) })
	}
}

// TopWithSelected returns the first n groups of v, followed by the group
// with key selected when it is not already among them.
func TopWithSelected(v AggregateView, n int, selected string) []Group {
	if n <= 0 || n >= len(v.Groups) {
		return slices.Clone(v.Groups)
	}
	top := slices.Clone(v.Groups[:n])
	if selected == "" {
		return top
	}
	for _, g := range top {
		if g.Key == selected {
			return top
		}
	}
	if g, ok := v.Find(selected); ok {
		top = append(top, g)
	}
	return top
}
