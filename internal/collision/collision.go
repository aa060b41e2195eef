// Copyright 2026 The Collisionmap Authors
// SPDX-License-Identifier: MIT

// Package collision defines the shared data types for loaded collision
// records, region boundaries, and schools, along with the error and warning
// types reported by the loading and transform stages.
package collision

import (
	"slices"
	"time"

	"github.com/paulmach/orb"
)

// Unknown is the sentinel for missing integer fields such as VictimAge.
const Unknown = -1

// Record is one traffic collision. Records are immutable once loaded.
type Record struct {
	ID          string
	Occurred    time.Time
	TimeOfDay   int // hhmm, Unknown when missing
	Lat, Lon    float64
	HasLocation bool

	Area        string
	Address     string
	CrossStreet string
	Category    string // crime code description

	VictimAge     int // Unknown when missing
	VictimSex     string
	VictimDescent string
	Premise       string
}

// Point returns the record location as an orb point (lon, lat).
func (r *Record) Point() orb.Point {
	return orb.Point{r.Lon, r.Lat}
}

// Year returns the calendar year the collision occurred in.
func (r *Record) Year() int {
	return r.Occurred.Year()
}

// Hour returns the hour of day (0-23) or Unknown.
func (r *Record) Hour() int {
	if r.TimeOfDay < 0 {
		return Unknown
	}
	h := r.TimeOfDay / 100
	if h > 23 {
		h = 23
	}
	return h
}

// Region is a named boundary polygon from the geometry reference.
type Region struct {
	Index    int
	Name     string
	Geometry orb.Geometry // orb.Polygon or orb.MultiPolygon
	Bound    orb.Bound
}

// School is a school site used for proximity analysis.
type School struct {
	Name        string
	Type        string // Category2
	Category    string // Category3
	Lat, Lon    float64
	HasLocation bool
	Address     string
	City        string
	State       string
	Enrollment  int // Unknown when missing
}

// Point returns the school location as an orb point (lon, lat).
func (s *School) Point() orb.Point {
	return orb.Point{s.Lon, s.Lat}
}

// Dataset is the immutable result of loading every configured source.
type Dataset struct {
	Records []Record
	Regions []Region
	Schools []School
}

// Years returns the distinct years present in the records, ascending.
func (d *Dataset) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for i := range d.Records {
		y := d.Records[i].Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	slices.Sort(years)
	return years
}
