package collision

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Hour(t *testing.T) {
	tests := []struct {
		tod  int
		want int
	}{
		{Unknown, Unknown},
		{0, 0},
		{59, 0},
		{1330, 13},
		{2359, 23},
		{2400, 23},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.tod), func(t *testing.T) {
			r := Record{TimeOfDay: tt.tod}
			assert.Equal(t, tt.want, r.Hour())
		})
	}
}

func TestRecord_Point(t *testing.T) {
	r := Record{Lat: 34.05, Lon: -118.25}
	p := r.Point()
	assert.InDelta(t, -118.25, p.Lon(), 1e-9)
	assert.InDelta(t, 34.05, p.Lat(), 1e-9)
}

func TestDataset_Years(t *testing.T) {
	d := &Dataset{Records: []Record{
		{Occurred: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)},
		{Occurred: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Occurred: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)},
	}}
	assert.Equal(t, []int{2021, 2023}, d.Years())
	assert.Empty(t, (&Dataset{}).Years())
}

func TestLoadError(t *testing.T) {
	inner := errors.New("missing column \"Location\"")
	err := fmt.Errorf("startup: %w", &LoadError{Source: "collisions.csv", Stage: StageSchema, Err: inner})

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, StageSchema, le.Stage)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, `load collisions.csv: schema: missing column "Location"`, le.Error())

	withRow := &LoadError{Source: "c.csv", Stage: StageParse, Row: 7, Err: inner}
	assert.Contains(t, withRow.Error(), "row 7")
}

func TestWarnings(t *testing.T) {
	assert.Equal(t, "no data available for the current filters", (&EmptyResultWarning{}).Error())
	assert.Equal(t, "no data available for year 1999", (&EmptyResultWarning{Filter: "year 1999"}).Error())

	w := &GeometryMismatchWarning{Excluded: 4, Reason: "missing coordinates"}
	assert.Equal(t, "4 row(s) excluded: missing coordinates", w.Error())
	assert.Equal(t, "2 row(s) excluded: no matching geometry", (&GeometryMismatchWarning{Excluded: 2}).Error())
}
