package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/collisionmap/collisionmap/internal/collision"
)

// table reads CSV rows and resolves declared columns by header name.
type table struct {
	source string
	schema Schema
	reader *csv.Reader
	index  map[string]int // column name -> field position, -1 when absent
	row    []string
	rowNum int
}

// openTable reads the header and checks it against the schema.
func openTable(source string, r io.Reader, schema Schema) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("file is empty")
		}
		return nil, &collision.LoadError{Source: source, Stage: collision.StageParse, Err: err}
	}

	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		positions[strings.ToLower(h)] = i
	}

	t := &table{source: source, schema: schema, reader: cr, index: make(map[string]int)}
	var missing []string
	for _, col := range schema.Columns {
		pos, ok := positions[strings.ToLower(col.Name)]
		if !ok {
			pos = -1
			if col.Required {
				missing = append(missing, strconv.Quote(col.Name))
			}
		}
		t.index[col.Name] = pos
	}
	if len(missing) > 0 {
		return nil, &collision.LoadError{
			Source: source,
			Stage:  collision.StageSchema,
			Err:    fmt.Errorf("%s table is missing required column(s) %s", schema.Name, strings.Join(missing, ", ")),
		}
	}
	return t, nil
}

// next advances to the next row. It returns false at end of input.
func (t *table) next() (bool, error) {
	row, err := t.reader.Read()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	t.rowNum++
	if err != nil {
		return false, t.errorf(collision.StageParse, "%w", err)
	}
	t.row = row
	return true, nil
}

// get returns the trimmed value of a column, or "" when absent.
func (t *table) get(name string) string {
	pos, ok := t.index[name]
	if !ok || pos < 0 || pos >= len(t.row) {
		return ""
	}
	return strings.TrimSpace(t.row[pos])
}

// check validates required, non-nullable values of the current row.
func (t *table) check() error {
	for _, col := range t.schema.Columns {
		if !col.Required || col.Nullable {
			continue
		}
		v := t.get(col.Name)
		if v == "" {
			return t.errorf(collision.StageSchema, "column %q: %w", col.Name, errBlank)
		}
		var err error
		switch col.Type {
		case TypeInt:
			_, err = strconv.Atoi(v)
		case TypeFloat:
			_, err = strconv.ParseFloat(v, 64)
		case TypeDate:
			_, err = parseDate(v)
		}
		if err != nil {
			return t.errorf(collision.StageSchema, "column %q is not a valid %s: %w", col.Name, col.Type, err)
		}
	}
	return nil
}

func (t *table) errorf(stage, format string, args ...any) error {
	return &collision.LoadError{Source: t.source, Stage: stage, Row: t.rowNum, Err: fmt.Errorf(format, args...)}
}
