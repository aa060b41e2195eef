package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// query reads filter parameters and collects a notice for every value it
// had to ignore.
type query struct {
	values  url.Values
	notices []notice
}

func newQuery(v url.Values) *query {
	return &query{values: v}
}

func (q *query) str(name string) string {
	return strings.TrimSpace(q.values.Get(name))
}

func (q *query) list(name string) []string {
	var out []string
	for _, v := range q.values[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (q *query) flag(name string) bool {
	switch strings.ToLower(q.str(name)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// year parses a four-digit year. Empty or "all" returns (0, true).
func (q *query) year(name string) (int, bool) {
	s := q.str(name)
	if s == "" || strings.EqualFold(s, "all") {
		return 0, true
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1000 || y > 9999 {
		q.ignore(name, s)
		return 0, false
	}
	return y, true
}

func (q *query) int(name string, def int) int {
	s := q.str(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		q.ignore(name, s)
		return def
	}
	return n
}

func (q *query) float(name string, def float64) float64 {
	s := q.str(name)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		q.ignore(name, s)
		return def
	}
	return f
}

// oneOf returns the parameter when it is among choices, else def.
func (q *query) oneOf(name, def string, choices ...string) string {
	s := strings.ToLower(q.str(name))
	if s == "" {
		return def
	}
	for _, c := range choices {
		if s == c {
			return c
		}
	}
	q.ignore(name, s)
	return def
}

func (q *query) ignore(name, value string) {
	q.notices = append(q.notices, notice{
		Level: levelInfo,
		Text:  fmt.Sprintf("Ignoring invalid %s %q.", name, value),
	})
}
