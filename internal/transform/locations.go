package transform

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Location is a set of collisions sharing a rounded coordinate.
type Location struct {
	Key      string
	Lat, Lon float64
	Address  string
	Area     string
	Count    int
	Rows     []int // table indices, in selection order
}

// Label is the human-readable name used in location pickers.
func (l Location) Label() string {
	addr := strings.Join(strings.Fields(l.Address), " ")
	if addr == "" {
		addr = l.Key
	}
	return fmt.Sprintf("%s | %s | %d collisions", addr, l.Area, l.Count)
}

// LocationGroups groups located rows by coordinates rounded to precision
// decimals. Address and area come from the first row of each group. Groups
// are ordered by count descending, then key. Rows without coordinates are
// returned as excluded.
func LocationGroups(s Selection, precision int) (groups []Location, excluded int) {
	if precision == 0 {
		precision = DefaultPrecision
	}
	byKey := make(map[string]int)
	for k := 0; k < s.Len(); k++ {
		r := s.Record(k)
		if !r.HasLocation {
			excluded++
			continue
		}
		key := LocationKey(r.Lat, r.Lon, precision)
		pos, ok := byKey[key]
		if !ok {
			pos = len(groups)
			byKey[key] = pos
			groups = append(groups, Location{
				Key:     key,
				Lat:     round(r.Lat, precision),
				Lon:     round(r.Lon, precision),
				Address: r.Address,
				Area:    r.Area,
			})
		}
		groups[pos].Count++
		groups[pos].Rows = append(groups[pos].Rows, s.Index(k))
	}
	slices.SortStableFunc(groups, func(a, b Location) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return groups, excluded
}

// FindLocation returns the group with the given key.
func FindLocation(groups []Location, key string) (Location, bool) {
	for _, g := range groups {
		if g.Key == key {
			return g, true
		}
	}
	return Location{}, false
}
