package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/collisionmap/collisionmap/internal/collision"
)

// Dimension names a grouping key.
type Dimension string

// Supported grouping dimensions.
const (
	DimRegion        Dimension = "region"
	DimArea          Dimension = "area"
	DimYear          Dimension = "year"
	DimMonth         Dimension = "month"
	DimHour          Dimension = "hour"
	DimWeekday       Dimension = "weekday"
	DimCategory      Dimension = "category"
	DimPremise       Dimension = "premise"
	DimVictimSex     Dimension = "victim_sex"
	DimVictimDescent Dimension = "victim_descent"
	DimAgeBin        Dimension = "age_bin"
	DimLocation      Dimension = "location"
)

var dimensions = []Dimension{
	DimRegion, DimArea, DimYear, DimMonth, DimHour, DimWeekday, DimCategory,
	DimPremise, DimVictimSex, DimVictimDescent, DimAgeBin, DimLocation,
}

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range dimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dimension %q (available: %s)", s, joinNames(dimensions))
}

// Reducer names an aggregation function.
type Reducer string

// Supported reducers.
const (
	ReduceCount Reducer = "count"
	ReduceSum   Reducer = "sum"
	ReduceMean  Reducer = "mean"
)

// ParseReducer validates a reducer name. Empty means count.
func ParseReducer(s string) (Reducer, error) {
	switch Reducer(s) {
	case "", ReduceCount:
		return ReduceCount, nil
	case ReduceSum, ReduceMean:
		return Reducer(s), nil
	}
	return "", fmt.Errorf("unknown reducer %q (available: count, sum, mean)", s)
}

// Measure names the numeric field reduced by sum and mean.
type Measure string

// Supported measures.
const (
	MeasureVictimAge Measure = "victim_age"
	MeasureHour      Measure = "hour"
)

// ParseMeasure validates a measure name.
func ParseMeasure(s string) (Measure, error) {
	switch Measure(s) {
	case MeasureVictimAge, MeasureHour:
		return Measure(s), nil
	}
	return "", fmt.Errorf("unknown measure %q (available: victim_age, hour)", s)
}

// value returns the measure for r and whether it is present.
func (m Measure) value(r *collision.Record) (float64, bool) {
	switch m {
	case MeasureVictimAge:
		if r.VictimAge < 0 {
			return 0, false
		}
		return float64(r.VictimAge), true
	case MeasureHour:
		if h := r.Hour(); h >= 0 {
			return float64(h), true
		}
	}
	return 0, false
}

// SortMode orders aggregate groups.
type SortMode string

// Supported sort modes.
const (
	SortKeyAsc    SortMode = "key_asc"
	SortValueDesc SortMode = "value_desc"
	SortValueAsc  SortMode = "value_asc"
)

// ParseSortMode validates a sort mode. Empty means key_asc.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "", SortKeyAsc:
		return SortKeyAsc, nil
	case SortValueDesc, SortValueAsc:
		return SortMode(s), nil
	}
	return "", fmt.Errorf("unknown sort %q (available: key_asc, value_desc, value_asc)", s)
}

// maxAge is the exclusive upper bound of the age bins.
const maxAge = 100

var weekdayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// key returns the group key of the k-th row of s, or false when the row has
// no value for the dimension.
func (d Dimension) key(s Selection, k, precision int) (string, bool) {
	r := s.Record(k)
	switch d {
	case DimRegion:
		return nonEmpty(s.RegionName(k))
	case DimArea:
		return nonEmpty(r.Area)
	case DimYear:
		return strconv.Itoa(r.Year()), true
	case DimMonth:
		return strconv.Itoa(int(r.Occurred.Month())), true
	case DimWeekday:
		return strconv.Itoa(int(r.Occurred.Weekday())), true
	case DimHour:
		if h := r.Hour(); h >= 0 {
			return strconv.Itoa(h), true
		}
	case DimCategory:
		return nonEmpty(r.Category)
	case DimPremise:
		return nonEmpty(r.Premise)
	case DimVictimSex:
		return nonEmpty(r.VictimSex)
	case DimVictimDescent:
		return nonEmpty(r.VictimDescent)
	case DimAgeBin:
		if r.VictimAge >= 0 && r.VictimAge < maxAge {
			return strconv.Itoa(r.VictimAge / 10 * 10), true
		}
	case DimLocation:
		if r.HasLocation {
			return LocationKey(r.Lat, r.Lon, precision), true
		}
	}
	return "", false
}

// domain returns every key of a dimension with a fixed domain, in order.
func (d Dimension) domain() []string {
	var n, step, start int
	switch d {
	case DimMonth:
		start, n, step = 1, 12, 1
	case DimHour:
		start, n, step = 0, 24, 1
	case DimWeekday:
		start, n, step = 0, 7, 1
	case DimAgeBin:
		start, n, step = 0, maxAge/10, 10
	default:
		return nil
	}
	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(start + i*step)
	}
	return keys
}

// label returns the display label for a key.
func (d Dimension) label(key string) string {
	n, err := strconv.Atoi(key)
	if err != nil {
		return key
	}
	switch d {
	case DimMonth:
		if n >= 1 && n <= 12 {
			return monthNames[n-1]
		}
	case DimWeekday:
		if n >= 0 && n <= 6 {
			return weekdayNames[n]
		}
	case DimHour:
		return fmt.Sprintf("%02d:00", n)
	case DimAgeBin:
		return fmt.Sprintf("%d-%d", n, n+9)
	}
	return key
}

// LocationKey rounds a coordinate pair to precision decimals and formats it
// as "lat,lon".
func LocationKey(lat, lon float64, precision int) string {
	return strconv.FormatFloat(round(lat, precision), 'f', precision, 64) + "," +
		strconv.FormatFloat(round(lon, precision), 'f', precision, 64)
}

func round(v float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func joinNames(ds []Dimension) string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
