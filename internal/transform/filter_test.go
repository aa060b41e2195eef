package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collisionmap/collisionmap/internal/collision"
)

func TestApply_NoFilters(t *testing.T) {
	res := Apply(testJoined(), FilterState{})
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(res.Rows))
	assert.Empty(t, res.Warnings)
	assert.False(t, res.Empty())
}

func TestApply_Window(t *testing.T) {
	res := Apply(testJoined(), FilterState{Window: YearWindow(2022, 2022)})
	assert.Equal(t, []string{"2", "3"}, ids(res.Rows))

	res = Apply(testJoined(), FilterState{Window: YearWindow(2023, 0)})
	assert.Equal(t, []string{"4", "5"}, ids(res.Rows))
}

func TestApply_WindowExcludingEverything(t *testing.T) {
	res := Apply(testJoined(), FilterState{Window: YearWindow(1990, 1991)})
	assert.True(t, res.Empty())
	assert.Equal(t, 0, res.Rows.Len())
	require.Len(t, res.Warnings, 1)

	var empty *collision.EmptyResultWarning
	require.ErrorAs(t, res.Warnings[0], &empty)
	assert.Contains(t, empty.Error(), "1990-01-01 to 1991-12-31")
}

func TestApply_CategoryAndArea(t *testing.T) {
	j := testJoined()
	res := Apply(j, FilterState{}.WithCategories("hit and run"))
	assert.Equal(t, []string{"3", "5"}, ids(res.Rows))

	res = Apply(j, FilterState{}.WithCategories("HIT AND RUN").WithAreas("Harbor"))
	assert.Equal(t, []string{"5"}, ids(res.Rows))
}

func TestApply_RegionReportsUnbound(t *testing.T) {
	res := Apply(testJoined(), FilterState{}.WithRegions("alpha"))
	assert.Equal(t, []string{"1", "2"}, ids(res.Rows))
	require.Len(t, res.Warnings, 1)

	var mismatch *collision.GeometryMismatchWarning
	require.ErrorAs(t, res.Warnings[0], &mismatch)
	assert.Equal(t, 2, mismatch.Excluded)
}

func TestApply_SelectRegionScenario(t *testing.T) {
	// Three rows in regions {A, A, B}; filter to A; count by region is {A: 2}.
	j := Join(testRecords()[:3], testRegions())
	res := Apply(j, FilterState{}.WithRegions("Alpha"))
	view := Aggregate(res.Rows, AggregateSpec{GroupBy: DimRegion})

	require.Len(t, view.Groups, 1)
	assert.Equal(t, "Alpha", view.Groups[0].Key)
	assert.Equal(t, 2, view.Groups[0].Count)
	assert.Zero(t, view.Excluded)
	assert.Empty(t, res.Warnings)
}

func TestApply_Monotonic(t *testing.T) {
	j := testJoined()
	states := []FilterState{
		{},
		{Window: YearWindow(2022, 0)},
		FilterState{Window: YearWindow(2022, 0)}.WithCategories("TRAFFIC DR #", "HIT AND RUN"),
		FilterState{Window: YearWindow(2022, 0)}.WithCategories("TRAFFIC DR #"),
		FilterState{Window: YearWindow(2022, 2022)}.WithCategories("TRAFFIC DR #"),
		FilterState{Window: YearWindow(2022, 2022)}.WithCategories("TRAFFIC DR #").WithRegions("Alpha"),
	}
	prev := Apply(j, states[0]).Rows.Len()
	for i, st := range states[1:] {
		n := Apply(j, st).Rows.Len()
		assert.LessOrEqual(t, n, prev, "state %d added a constraint but returned more rows", i+1)
		prev = n
	}
}

func TestApply_Idempotent(t *testing.T) {
	j := testJoined()
	st := FilterState{Window: YearWindow(2021, 2023)}.WithAreas("Central", "Hollywood")
	spec := AggregateSpec{GroupBy: DimArea, Sort: SortValueDesc}

	first := Aggregate(Apply(j, st).Rows, spec)
	second := Aggregate(Apply(j, st).Rows, spec)
	assert.Equal(t, first, second)
}

func TestFilterState_Immutable(t *testing.T) {
	cats := []string{"A"}
	st := FilterState{}.WithCategories(cats...)
	cats[0] = "B"
	assert.Equal(t, []string{"A"}, st.Categories)

	narrowed := st.WithAreas("Central")
	assert.Empty(t, st.Areas)
	assert.Equal(t, []string{"Central"}, narrowed.Areas)
}

func TestWindow(t *testing.T) {
	w := YearWindow(2021, 2022)
	assert.True(t, w.Contains(day(2021, 1, 1)))
	assert.True(t, w.Contains(day(2022, 12, 31)))
	assert.False(t, w.Contains(day(2023, 1, 1)))
	assert.False(t, w.Contains(day(2020, 12, 31)))
	assert.Equal(t, 2, w.Years())
	assert.Equal(t, 0, YearWindow(2021, 0).Years())
	assert.True(t, Window{}.IsZero())
	assert.Equal(t, "all dates", Window{}.String())
	assert.Equal(t, "from 2021-01-01", YearWindow(2021, 0).String())
}
