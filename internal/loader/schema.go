package loader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/collisionmap/collisionmap/internal/collision"
)

// ColumnType is the semantic type a column must parse as.
type ColumnType int

// Column types.
const (
	TypeString ColumnType = iota
	TypeInt
	TypeFloat
	TypeDate
	TypeLocation
)

func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeDate:
		return "date"
	case TypeLocation:
		return "location"
	default:
		return "string"
	}
}

// Column declares one expected column. Required columns must be present in
// the header; unless Nullable, every row must carry a parseable value.
type Column struct {
	Name     string
	Type     ColumnType
	Required bool
	Nullable bool
}

// Schema is the declared layout of a tabular source.
type Schema struct {
	Name    string
	Columns []Column
}

// Collision table columns.
const (
	ColID            = "DR Number"
	ColDate          = "Date Occurred"
	ColTime          = "Time Occurred"
	ColArea          = "Area Name"
	ColCategory      = "Crime Code Description"
	ColAddress       = "Address"
	ColCrossStreet   = "Cross Street"
	ColVictimAge     = "Victim Age"
	ColVictimSex     = "Victim Sex"
	ColVictimDescent = "Victim Descent"
	ColPremise       = "Premise Description"
	ColLocation      = "Location"
)

// CollisionSchema is the declared schema of the collision table.
var CollisionSchema = Schema{
	Name: "collisions",
	Columns: []Column{
		{Name: ColID, Type: TypeString, Required: true},
		{Name: ColDate, Type: TypeDate, Required: true},
		{Name: ColLocation, Type: TypeLocation, Required: true, Nullable: true},
		{Name: ColTime, Type: TypeInt},
		{Name: ColArea, Type: TypeString},
		{Name: ColCategory, Type: TypeString},
		{Name: ColAddress, Type: TypeString},
		{Name: ColCrossStreet, Type: TypeString},
		{Name: ColVictimAge, Type: TypeInt},
		{Name: ColVictimSex, Type: TypeString},
		{Name: ColVictimDescent, Type: TypeString},
		{Name: ColPremise, Type: TypeString},
	},
}

// School table columns.
const (
	ColSchoolName = "Name"
	ColSchoolType = "Category2"
	ColSchoolCat  = "Category3"
	ColLatitude   = "Latitude"
	ColLongitude  = "Longitude"
	ColStreet     = "Address Line 1"
	ColCity       = "City"
	ColState      = "State"
	ColEnrollment = "Enrollment"
)

// SchoolSchema is the declared schema of the school table.
var SchoolSchema = Schema{
	Name: "schools",
	Columns: []Column{
		{Name: ColSchoolName, Type: TypeString, Required: true},
		{Name: ColLatitude, Type: TypeFloat, Required: true, Nullable: true},
		{Name: ColLongitude, Type: TypeFloat, Required: true, Nullable: true},
		{Name: ColSchoolType, Type: TypeString},
		{Name: ColSchoolCat, Type: TypeString},
		{Name: ColStreet, Type: TypeString},
		{Name: ColCity, Type: TypeString},
		{Name: ColState, Type: TypeString},
		{Name: ColEnrollment, Type: TypeInt},
	},
}

var dateLayouts = []string{
	"01/02/2006 03:04:05 PM",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

var errBlank = errors.New("value is blank")

// parseDate accepts the date layouts used by open-data portals.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errBlank
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseLocation parses "(lat, lon)". A (0, 0) location means unknown.
func parseLocation(s string) (lat, lon float64, ok bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	latStr, lonStr, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	if lat == 0 && lon == 0 {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// parseOptionalInt returns collision.Unknown for blank or malformed values.
// Decimal strings such as "1830.0" are truncated.
func parseOptionalInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return collision.Unknown
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return int(f)
	}
	return collision.Unknown
}
