package loader

import (
	"io"
	"strconv"

	"github.com/collisionmap/collisionmap/internal/collision"
)

// ReadCollisions parses a collision table. Rows with a missing or (0, 0)
// location are kept with HasLocation unset.
func ReadCollisions(source string, r io.Reader) ([]collision.Record, error) {
	t, err := openTable(source, r, CollisionSchema)
	if err != nil {
		return nil, err
	}

	var records []collision.Record
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := t.check(); err != nil {
			return nil, err
		}

		occurred, _ := parseDate(t.get(ColDate))
		rec := collision.Record{
			ID:            t.get(ColID),
			Occurred:      occurred,
			TimeOfDay:     parseOptionalInt(t.get(ColTime)),
			Area:          t.get(ColArea),
			Address:       t.get(ColAddress),
			CrossStreet:   t.get(ColCrossStreet),
			Category:      t.get(ColCategory),
			VictimAge:     parseOptionalInt(t.get(ColVictimAge)),
			VictimSex:     t.get(ColVictimSex),
			VictimDescent: t.get(ColVictimDescent),
			Premise:       t.get(ColPremise),
		}
		rec.Lat, rec.Lon, rec.HasLocation = parseLocation(t.get(ColLocation))
		records = append(records, rec)
	}
	return records, nil
}

// ReadSchools parses a school table. Rows with blank or invalid coordinates
// are kept with HasLocation unset.
func ReadSchools(source string, r io.Reader) ([]collision.School, error) {
	t, err := openTable(source, r, SchoolSchema)
	if err != nil {
		return nil, err
	}

	var schools []collision.School
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := t.check(); err != nil {
			return nil, err
		}

		s := collision.School{
			Name:       t.get(ColSchoolName),
			Type:       t.get(ColSchoolType),
			Category:   t.get(ColSchoolCat),
			Address:    t.get(ColStreet),
			City:       t.get(ColCity),
			State:      t.get(ColState),
			Enrollment: parseOptionalInt(t.get(ColEnrollment)),
		}
		lat, errLat := strconv.ParseFloat(t.get(ColLatitude), 64)
		lon, errLon := strconv.ParseFloat(t.get(ColLongitude), 64)
		if errLat == nil && errLon == nil && lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180 && (lat != 0 || lon != 0) {
			s.Lat, s.Lon, s.HasLocation = lat, lon, true
		}
		schools = append(schools, s)
	}
	return schools, nil
}
