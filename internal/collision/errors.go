package collision

import (
	"fmt"
)

// Load stages reported by LoadError.
const (
	StageRead   = "read"
	StageParse  = "parse"
	StageSchema = "schema"
)

// LoadError reports a source that could not be read or did not match its
// declared schema. It is fatal at startup.
type LoadError struct {
	Source string // path or URL
	Stage  string
	Row    int // 1-based data row, 0 when not row-specific
	Err    error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("load %s: %s: row %d: %v", e.Source, e.Stage, e.Row, e.Err)
	}
	return fmt.Sprintf("load %s: %s: %v", e.Source, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// EmptyResultWarning reports that a filter matched no rows. The view renders
// its empty state instead of failing.
type EmptyResultWarning struct {
	Filter string
}

func (w *EmptyResultWarning) Error() string {
	if w.Filter == "" {
		return "no data available for the current filters"
	}
	return fmt.Sprintf("no data available for %s", w.Filter)
}

// GeometryMismatchWarning reports rows that could not be bound to a map
// element, either because they lack coordinates or fall outside every
// region. The rows are excluded, never silently dropped.
type GeometryMismatchWarning struct {
	Excluded int
	Reason   string
}

func (w *GeometryMismatchWarning) Error() string {
	reason := w.Reason
	if reason == "" {
		reason = "no matching geometry"
	}
	return fmt.Sprintf("%d row(s) excluded: %s", w.Excluded, reason)
}
