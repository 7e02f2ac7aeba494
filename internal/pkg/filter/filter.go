// Package filter evaluates list criteria (free-text search, categorical
// equality and date-range overlap) against in-memory collections.
package filter

import (
	"strings"
	"time"
)

// All is the categorical sentinel meaning "no constraint".
const All = "all"

// Span is the [Start, End] interval an entity occupies.
type Span struct {
	Start time.Time
	End   time.Time
}

// DateRange is an inclusive range normalised to whole days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange returns a range from the start of start's day to the end of
// end's day.
func NewDateRange(start, end time.Time) *DateRange {
	return &DateRange{
		Start: StartOfDay(start),
		End:   EndOfDay(end),
	}
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Contains reports whether t lies inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps reports whether the span starts or ends inside the range, or
// strictly surrounds it.
func (r DateRange) Overlaps(s Span) bool {
	return r.Contains(s.Start) ||
		r.Contains(s.End) ||
		(s.Start.Before(r.Start) && s.End.After(r.End))
}

// Criteria is the set of constraints applied to a collection.
type Criteria struct {
	Query      string
	Categories map[string]string
	Range      *DateRange
}

// Active reports whether any constraint narrows the collection.
func (c Criteria) Active() bool {
	if c.Query != "" || c.Range != nil {
		return true
	}
	for _, v := range c.Categories {
		if !unconstrained(v) {
			return true
		}
	}
	return false
}

// Schema describes how an entity type is projected for filtering.
type Schema[T any] struct {
	// Text lists the searchable string fields.
	Text []func(T) string
	// Fields maps categorical keys to field projections.
	Fields map[string]func(T) string
	// Span returns the entity's date span. A nil Span means the entity
	// type has no dates and range constraints are ignored.
	Span func(T) (Span, bool)
}

// Apply returns the items matching every active constraint, preserving
// input order.
func Apply[T any](items []T, schema Schema[T], c Criteria) []T {
	out := make([]T, 0, len(items))
	if !c.Active() {
		return append(out, items...)
	}
	for _, item := range items {
		if Match(item, schema, c) {
			out = append(out, item)
		}
	}
	return out
}

// Match reports whether a single item satisfies the criteria.
func Match[T any](item T, schema Schema[T], c Criteria) bool {
	if !MatchText(item, schema.Text, c.Query) {
		return false
	}

	for key, want := range c.Categories {
		if unconstrained(want) {
			continue
		}
		project, ok := schema.Fields[key]
		if !ok || project == nil {
			return false
		}
		if !MatchCategory(project(item), want) {
			return false
		}
	}

	if c.Range != nil && schema.Span != nil {
		span, ok := schema.Span(item)
		if !ok || !c.Range.Overlaps(span) {
			return false
		}
	}

	return true
}

// MatchText reports whether any field contains query, ignoring case.
// Whitespace in the query is significant; only "" matches everything.
func MatchText[T any](item T, fields []func(T) string, query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	for _, field := range fields {
		if field == nil {
			continue
		}
		if strings.Contains(strings.ToLower(field(item)), q) {
			return true
		}
	}
	return false
}

// MatchCategory compares an entity value against a filter value.
func MatchCategory(value, want string) bool {
	if unconstrained(want) {
		return true
	}
	return value == want
}

func unconstrained(v string) bool {
	return v == "" || v == All
}
