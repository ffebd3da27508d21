// Package source provides the row contract the import pipeline consumes:
// normalized field names, a single null marker for every "missing" spelling
// found in spreadsheet extracts, and date parsing.
package source

import (
	"strconv"
	"strings"
	"time"
)

// Row maps normalized, lower-cased, underscore-separated field names to
// values. A missing or null field holds nil.
type Row map[string]any

// Source is one logical extract (institutions, program metadata or
// enrollments).
type Source interface {
	Load() ([]Row, error)
}

// Static is an in-memory Source, used by tests and dry runs.
type Static struct {
	Rows []Row
}

func (s *Static) Load() ([]Row, error) {
	return s.Rows, nil
}

// NormalizeHeader lower-cases a column header and replaces spaces with
// underscores.
func NormalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

// NormalizeValue trims a cell and collapses every textual missing-value
// spelling to nil.
func NormalizeValue(v string) any {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "nan", "none", "nat", "null":
		return nil
	}
	return v
}

// String returns the field as a trimmed string, "" when null or absent.
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case time.Time:
		return s.Format("2006-01-02")
	default:
		return ""
	}
}

// Has reports whether the field is present and non-null.
func (r Row) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"01-02-06",
}

// Date returns the field as a calendar date, nil when null, absent or not
// parseable as any known layout.
func (r Row) Date(key string) *time.Time {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// Int returns the field as an integer, tolerating float-typed spreadsheet
// cells ("2019.0"). Nil when null, absent or non-numeric.
func (r Row) Int(key string) *int {
	s := r.String(key)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}
