package transform

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/collisionmap/collisionmap/internal/collision"
)

// MetersPerMile converts school search radii.
const MetersPerMile = 1609.34

// metersPerDegreeLat approximates the length of one degree of latitude.
const metersPerDegreeLat = 111000.0

// Rating is a school safety tier derived from average collisions per year.
type Rating string

// Safety tiers, safest first.
const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
)

// Ratings lists the tiers in display order.
var Ratings = []Rating{RatingExcellent, RatingGood, RatingFair, RatingPoor}

// ParseRating validates a rating name. Empty means no rating filter.
func ParseRating(s string) (Rating, error) {
	if s == "" {
		return "", nil
	}
	for _, r := range Ratings {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rating %q", s)
}

// RateSchool maps an average annual collision count to a tier.
func RateSchool(perYear float64) Rating {
	switch {
	case perYear == 0:
		return RatingExcellent
	case perYear <= 3:
		return RatingGood
	case perYear <= 10:
		return RatingFair
	default:
		return RatingPoor
	}
}

// SchoolIndex holds, for every school, the records within the search radius.
// It is built once at startup.
type SchoolIndex struct {
	j       *Joined
	Schools []collision.School
	nearby  [][]int
	years   int // distinct years in the records

	// Unlocated counts schools without coordinates.
	Unlocated int
}

// IndexSchools finds, for each located school, the located records within
// radiusMeters (great-circle distance).
func IndexSchools(j *Joined, schools []collision.School, radiusMeters float64) *SchoolIndex {
	ix := &SchoolIndex{j: j, Schools: schools, nearby: make([][]int, len(schools))}

	seenYears := make(map[int]bool)
	for i := range j.Records {
		seenYears[j.Records[i].Year()] = true
	}
	ix.years = len(seenYears)

	// Records sorted by latitude so each school scans only a latitude band.
	byLat := make([]int, 0, len(j.Records))
	for i := range j.Records {
		if j.Records[i].HasLocation {
			byLat = append(byLat, i)
		}
	}
	slices.SortStableFunc(byLat, func(a, b int) int {
		return cmp.Compare(j.Records[a].Lat, j.Records[b].Lat)
	})

	dLat := radiusMeters / metersPerDegreeLat
	for si := range schools {
		s := &schools[si]
		if !s.HasLocation {
			ix.Unlocated++
			continue
		}
		lo := sort.Search(len(byLat), func(k int) bool { return j.Records[byLat[k]].Lat >= s.Lat-dLat })
		center := s.Point()
		var hits []int
		for k := lo; k < len(byLat); k++ {
			r := &j.Records[byLat[k]]
			if r.Lat > s.Lat+dLat {
				break
			}
			if geo.Distance(center, orb.Point{r.Lon, r.Lat}) <= radiusMeters {
				hits = append(hits, byLat[k])
			}
		}
		slices.Sort(hits)
		ix.nearby[si] = hits
	}
	return ix
}

// Nearby returns the selection of records near school si within window w.
func (ix *SchoolIndex) Nearby(si int, w Window) Selection {
	sel := ix.j.Select(ix.nearby[si])
	if w.IsZero() {
		return sel
	}
	return sel.Where(func(r *collision.Record) bool { return w.Contains(r.Occurred) })
}

// SchoolFilter narrows the school list.
type SchoolFilter struct {
	Window   Window
	Type     string // Category2; empty means all
	Category string // Category3; empty means all
	Query    string // case-insensitive name substring
	Rating   Rating // empty means all
}

// SchoolStat is the safety summary of one school.
type SchoolStat struct {
	Index      int
	School     *collision.School
	Collisions int
	PerYear    float64
	Rating     Rating
}

// SchoolReport is the filtered, rated school list.
type SchoolReport struct {
	Rows []SchoolStat
	// Years is the number of years the averages are taken over.
	Years int
	// Excluded counts schools without coordinates.
	Excluded int
}

// Stats rates every located school matching f. Rows are ordered by collision
// count descending, then name.
func (ix *SchoolIndex) Stats(f SchoolFilter) SchoolReport {
	years := f.Window.Years()
	if years == 0 {
		years = ix.years
	}
	if years == 0 {
		years = 1
	}
	report := SchoolReport{Years: years, Excluded: ix.Unlocated}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	for si := range ix.Schools {
		s := &ix.Schools[si]
		if !s.HasLocation {
			continue
		}
		if f.Type != "" && !strings.EqualFold(s.Type, f.Type) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(s.Category, f.Category) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(s.Name), query) {
			continue
		}
		n := ix.Nearby(si, f.Window).Len()
		per := float64(n) / float64(years)
		rating := RateSchool(per)
		if f.Rating != "" && rating != f.Rating {
			continue
		}
		report.Rows = append(report.Rows, SchoolStat{
			Index:      si,
			School:     s,
			Collisions: n,
			PerYear:    per,
			Rating:     rating,
		})
	}

	slices.SortStableFunc(report.Rows, func(a, b SchoolStat) int {
		if c := cmp.Compare(b.Collisions, a.Collisions); c != 0 {
			return c
		}
		return cmp.Compare(a.School.Name, b.School.Name)
	})
	return report
}

// Types returns the distinct school types, sorted.
func (ix *SchoolIndex) Types() []string {
	return ix.distinct(func(s *collision.School) string { return s.Type }, "")
}

// Categories returns the distinct categories of schools of the given type
// (all types when empty), sorted.
func (ix *SchoolIndex) Categories(schoolType string) []string {
	return ix.distinct(func(s *collision.School) string { return s.Category }, schoolType)
}

func (ix *SchoolIndex) distinct(field func(*collision.School) string, schoolType string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range ix.Schools {
		s := &ix.Schools[i]
		if schoolType != "" && !strings.EqualFold(s.Type, schoolType) {
			continue
		}
		v := strings.TrimSpace(field(s))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
