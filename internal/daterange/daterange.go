// Package daterange implements the inclusive calendar-day ranges every
// dashboard query is scoped by.
package daterange

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Layout is the only accepted wire format for range bounds.
const Layout = "2006-01-02"

const day = 24 * time.Hour

var (
	ErrInvalidStartDate = errors.New("invalid_start_date")
	ErrInvalidEndDate   = errors.New("invalid_end_date")
	ErrInvertedRange    = errors.New("invalid_date_range")
	ErrInvalidPreset    = errors.New("invalid_preset")
)

// Range is an optionally open-ended, inclusive interval of calendar days.
// Both bounds are normalized to midnight UTC; End covers its whole day.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// All is the unbounded range.
var All = Range{}

// New builds a range from optional bounds, truncating each to its UTC day.
func New(start, end *time.Time) Range {
	var r Range
	if start != nil {
		s := truncateDay(*start)
		r.Start = &s
	}
	if end != nil {
		e := truncateDay(*end)
		r.End = &e
	}
	return r
}

// Parse reads optional YYYY-MM-DD bounds. Blank values leave that side open.
func Parse(start, end string) (Range, error) {
	var r Range

	if trimmed := strings.TrimSpace(start); trimmed != "" {
		parsed, err := time.ParseInLocation(Layout, trimmed, time.UTC)
		if err != nil {
			return Range{}, ErrInvalidStartDate
		}
		r.Start = &parsed
	}
	if trimmed := strings.TrimSpace(end); trimmed != "" {
		parsed, err := time.ParseInLocation(Layout, trimmed, time.UTC)
		if err != nil {
			return Range{}, ErrInvalidEndDate
		}
		r.End = &parsed
	}
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return Range{}, ErrInvertedRange
	}
	return r, nil
}

func (r Range) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// Contains reports whether ts falls on or after Start and on or before End's day.
func (r Range) Contains(ts time.Time) bool {
	ts = ts.UTC()
	if r.Start != nil && ts.Before(*r.Start) {
		return false
	}
	if r.End != nil && !ts.Before(r.End.Add(day)) {
		return false
	}
	return true
}

// Apply scopes stmt to rows whose column falls inside the range.
func (r Range) Apply(stmt *gorm.DB, column string) *gorm.DB {
	if r.Start != nil {
		stmt = stmt.Where(column+" >= ?", *r.Start)
	}
	if r.End != nil {
		stmt = stmt.Where(column+" < ?", r.End.Add(day))
	}
	return stmt
}

// Scope adapts Apply for gorm's Scopes chain.
func (r Range) Scope(column string) func(*gorm.DB) *gorm.DB {
	return func(stmt *gorm.DB) *gorm.DB {
		return r.Apply(stmt, column)
	}
}

func (r Range) StartString() string {
	if r.Start == nil {
		return ""
	}
	return r.Start.Format(Layout)
}

func (r Range) EndString() string {
	if r.End == nil {
		return ""
	}
	return r.End.Format(Layout)
}

func (r Range) String() string {
	return "[" + r.StartString() + ", " + r.EndString() + "]"
}

// Filter keeps the rows whose timestamp, as extracted by ts, is inside r.
// The input order is preserved.
func Filter[T any](rows []T, r Range, ts func(T) time.Time) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if r.Contains(ts(row)) {
			out = append(out, row)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
