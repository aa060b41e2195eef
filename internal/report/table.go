// Copyright 2026 The Collisionmap Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// ColorFunc decorates a cell value, typically with ANSI color.
type ColorFunc func(value string) string

// Column describes one column of the load summary table.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc
	// MaxWidth shortens longer values with a trailing ellipsis. 0 means
	// unlimited.
	MaxWidth int
}

// Table lays out summary rows in aligned, two-space separated columns.
type Table struct {
	columns []Column
	rows    [][]string
}

// NewTable creates a table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Extra values are dropped and missing ones are empty.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	for i, col := range t.columns {
		if i < len(values) {
			row[i] = clip(values[i], col.MaxWidth)
		}
	}
	t.rows = append(t.rows, row)
}

// Render writes a bold header, a dashed rule and every row to w.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}
	widths := t.widths()

	bold := color.New(color.Bold).SprintFunc()
	header := make([]string, len(t.columns))
	rule := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = pad(col.Header, bold(col.Header), widths[i], col.Align)
		rule[i] = strings.Repeat("-", widths[i])
	}
	if err := writeLine(w, header); err != nil {
		return err
	}
	if err := writeLine(w, rule); err != nil {
		return err
	}

	cells := make([]string, len(t.columns))
	for _, row := range t.rows {
		for i, col := range t.columns {
			shown := row[i]
			if col.Color != nil {
				shown = col.Color(row[i])
			}
			cells[i] = pad(row[i], shown, widths[i], col.Align)
		}
		if err := writeLine(w, cells); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = utf8.RuneCountInString(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	return widths
}

// pad justifies shown to width, measuring the undecorated raw value.
func pad(raw, shown string, width int, align Alignment) string {
	fill := strings.Repeat(" ", max(width-utf8.RuneCountInString(raw), 0))
	if align == AlignRight {
		return fill + shown
	}
	return shown + fill
}

func clip(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:limit-1]) + "…"
}

func writeLine(w io.Writer, cells []string) error {
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(cells, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
