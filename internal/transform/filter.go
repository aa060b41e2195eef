package transform

import (
	"strings"

	"github.com/collisionmap/collisionmap/internal/collision"
)

// Result is the output of Apply: the matching rows plus any non-fatal
// warnings (*collision.EmptyResultWarning, *collision.GeometryMismatchWarning).
type Result struct {
	Rows     Selection
	Warnings []error
}

// Empty reports whether no rows matched.
func (r Result) Empty() bool { return r.Rows.Len() == 0 }

// Apply filters the joined table by the conjunction of every active filter
// in f. Rows keep their load order. When a region filter is active, rows with
// no region are excluded and reported in a GeometryMismatchWarning.
func Apply(j *Joined, f FilterState) Result {
	regions := lowerSet(f.Regions)
	cats := lowerSet(f.Categories)
	areas := lowerSet(f.Areas)

	var res Result
	res.Rows = Selection{j: j}
	unbound := 0
	for i := range j.Records {
		r := &j.Records[i]
		if !f.Window.Contains(r.Occurred) {
			continue
		}
		if cats != nil && !cats[strings.ToLower(r.Category)] {
			continue
		}
		if areas != nil && !areas[strings.ToLower(r.Area)] {
			continue
		}
		if regions != nil {
			if j.region[i] == noRegion {
				unbound++
				continue
			}
			if !regions[strings.ToLower(j.Regions[j.region[i]].Name)] {
				continue
			}
		}
		res.Rows.idx = append(res.Rows.idx, i)
	}

	if unbound > 0 {
		res.Warnings = append(res.Warnings, &collision.GeometryMismatchWarning{
			Excluded: unbound,
			Reason:   "not inside any region",
		})
	}
	if res.Rows.Len() == 0 {
		res.Warnings = append(res.Warnings, &collision.EmptyResultWarning{Filter: f.String()})
	}
	return res
}

// lowerSet returns a lower-cased membership set, or nil for an empty filter.
func lowerSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return set
}
