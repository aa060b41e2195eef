package transform

import "github.com/collisionmap/collisionmap/internal/collision"

// Selection is an ordered subset of a Joined table, held as record indices.
// The underlying records are never copied or modified.
type Selection struct {
	j   *Joined
	idx []int
}

// Len returns the number of selected rows.
func (s Selection) Len() int { return len(s.idx) }

// Record returns the k-th selected record.
func (s Selection) Record(k int) *collision.Record {
	return &s.j.Records[s.idx[k]]
}

// Index returns the table index of the k-th selected record.
func (s Selection) Index(k int) int { return s.idx[k] }

// Indices returns a copy of the selected table indices.
func (s Selection) Indices() []int { return append([]int(nil), s.idx...) }

// Region returns the region index of the k-th selected record, or -1.
func (s Selection) Region(k int) int {
	return s.j.region[s.idx[k]]
}

// RegionName returns the region name of the k-th selected record, or "".
func (s Selection) RegionName(k int) string {
	return s.j.RegionName(s.idx[k])
}

// Joined returns the table the selection refers to.
func (s Selection) Joined() *Joined { return s.j }

// Where returns the rows for which keep returns true, preserving order.
func (s Selection) Where(keep func(r *collision.Record) bool) Selection {
	out := Selection{j: s.j}
	for k := range s.idx {
		if keep(s.Record(k)) {
			out.idx = append(out.idx, s.idx[k])
		}
	}
	return out
}
