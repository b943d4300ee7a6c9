// Package source loads tabular data into records: CSV with a header row,
// JSON arrays of objects, GeoJSON feature collections and pasted text.
// Cell text is typed into numbers, times or strings on the way in.
package source

import (
	"sort"
	"strconv"
	"strings"

	"gochart/internal/scale"
)

// Record is one row keyed by field name.
type Record map[string]any

// Dataset is a loaded table.
type Dataset struct {
	Name    string
	Fields  []string
	Records []Record
}

// NewDataset wraps records, deriving the field order from their keys.
func NewDataset(name string, records []Record) *Dataset {
	return &Dataset{Name: name, Fields: fieldsOf(records), Records: records}
}

// Values returns the column of field, nil where a record lacks it.
func (d *Dataset) Values(field string) []any {
	out := make([]any, len(d.Records))
	for i, r := range d.Records {
		out[i] = r[field]
	}
	return out
}

// Rows renders every record as text in Fields order.
func (d *Dataset) Rows() [][]string {
	rows := make([][]string, 0, len(d.Records))
	for _, r := range d.Records {
		row := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			if v, ok := r[f]; ok && v != nil {
				row[i] = scale.Key(v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Typed converts cell text: empty is nil, numbers are float64, dates and
// timestamps are time.Time, anything else stays a string.
func Typed(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if t, ok := scale.ParseTime(s); ok {
		return t
	}
	return s
}

// fieldsOf unions the keys of records, first appearance first, sorting keys
// that appear together in one record.
func fieldsOf(records []Record) []string {
	var order []string
	seen := map[string]bool{}
	for _, r := range records {
		keys := make([]string, 0, len(r))
		for k := range r {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			order = append(order, k)
		}
	}
	return order
}
