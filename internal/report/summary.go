// Package report renders the startup load summary shown on the terminal
// before the dashboard starts serving.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/collisionmap/collisionmap/internal/loader"
	"github.com/collisionmap/collisionmap/internal/redact"
	"github.com/collisionmap/collisionmap/internal/transform"
)

// sourceWidth keeps long source URLs from wrapping the summary.
const sourceWidth = 72

// Summary describes what was loaded and how the spatial join went.
type Summary struct {
	Sources []loader.SourceResult
	// SchoolsSkipped is set when no school source was configured.
	SchoolsSkipped bool

	Records   int
	InRegion  int
	Unmatched int
	Unlocated int
	Years     []int
}

// NewSummary collects load results and join statistics.
func NewSummary(results []loader.SourceResult, j *transform.Joined, schoolsConfigured bool) Summary {
	s := Summary{
		Sources:        results,
		SchoolsSkipped: !schoolsConfigured,
	}
	if j == nil {
		return s
	}
	s.Records = len(j.Records)
	s.Unmatched = j.Unmatched
	s.Unlocated = j.Unlocated
	s.InRegion = s.Records - s.Unmatched - s.Unlocated

	seen := make(map[int]bool)
	for i := range j.Records {
		y := j.Records[i].Year()
		if !seen[y] {
			seen[y] = true
			s.Years = append(s.Years, y)
		}
	}
	return s
}

// Render writes the summary as two sections: sources and spatial join.
func (s Summary) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", SectionTitle("Sources")); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	tbl := NewTable(
		Column{Header: "Name"},
		Column{Header: "Status", Color: ColorStatus},
		Column{Header: "Rows", Align: AlignRight},
		Column{Header: "Unlocated", Align: AlignRight},
		Column{Header: "Duration", Align: AlignRight},
		Column{Header: "Source", MaxWidth: sourceWidth},
	)
	for _, r := range s.Sources {
		tbl.AddRow(
			r.Name,
			"ok",
			strconv.Itoa(r.Rows),
			strconv.Itoa(r.Unlocated),
			r.Duration.Round(time.Millisecond).String(),
			redact.String(r.Source),
		)
	}
	if s.SchoolsSkipped {
		tbl.AddRow("schools", "skipped", "-", "-", "-", "not configured")
	}
	if err := tbl.Render(w); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n"+
		"  Records:               %d\n"+
		"  Inside a region:       %d\n"+
		"  Outside every region:  %s\n"+
		"  Without coordinates:   %s\n"+
		"  Years:                 %s\n",
		SectionTitle("Spatial Join"),
		s.Records,
		s.InRegion,
		colorCount(s.Unmatched),
		colorCount(s.Unlocated),
		yearSpan(s.Years),
	)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

func yearSpan(years []int) string {
	if len(years) == 0 {
		return "none"
	}
	lo, hi := years[0], years[0]
	for _, y := range years[1:] {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	if lo == hi {
		return strconv.Itoa(lo)
	}
	return fmt.Sprintf("%d to %d (%d distinct)", lo, hi, len(years))
}
