// Package refdata loads the exported game tables (quests, items, objective
// tasks, locale strings, POI definitions, vitals categories) into in-memory
// lookup indices. Every loader is tolerant: a missing optional file yields an
// empty mapping and a malformed row is skipped, never fatal.
package refdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Row is one record of a header-indexed table. Cells are kept as raw strings;
// absence (missing column, empty cell) is reported through the ok result of
// Get rather than an empty-string sentinel.
type Row struct {
	cells map[string]string
	cols  []string
}

// NewRow builds a Row from column/value pairs. Columns are sorted so rows
// built this way have a stable field order; table rows keep header order.
func NewRow(cells map[string]string) Row {
	cols := make([]string, 0, len(cells))
	for c := range cells {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return Row{cells: cells, cols: cols}
}

// Get returns the trimmed cell for col. ok is false when the column is absent
// or the cell is empty after trimming.
func (r Row) Get(col string) (string, bool) {
	v, ok := r.cells[col]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

// GetDefault returns the cell for col, or def when absent.
func (r Row) GetDefault(col, def string) string {
	if v, ok := r.Get(col); ok {
		return v
	}
	return def
}

// Columns lists the column names present on this row, in header order.
func (r Row) Columns() []string {
	return r.cols
}

// Cells returns a copy of the raw cell map, used when a resolved task record
// is carried through to the output document.
func (r Row) Cells() map[string]string {
	out := make(map[string]string, len(r.cells))
	for k, v := range r.cells {
		out[k] = v
	}
	return out
}

// ReadTable reads a CSV file into header-indexed rows. Headers are trimmed.
// Rows shorter or longer than the header are tolerated; extra cells are
// dropped and missing cells read as absent.
func ReadTable(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		cells := make(map[string]string, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(rec) {
				cells[h] = rec[i]
			}
		}
		rows = append(rows, Row{cells: cells, cols: header})
	}
	return rows, nil
}

// SplitIDs splits a multi-id cell on the delimiter set used throughout the
// exported tables: whitespace, comma, pipe and semicolon.
func SplitIDs(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
