package table

import (
	"strconv"
	"time"
)

// Tag is a coloured label, e.g. a status badge.
type Tag struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// Progress is a percentage bar.
type Progress struct {
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
	Color   string  `json:"color,omitempty"`
}

// Badge is a numeric counter.
type Badge struct {
	Count int `json:"count"`
}

// Person is a name with a secondary line, typically an email.
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Pluralize formats a quantity with its unit: "1 day", "5 days".
func Pluralize(n float64, unit string) string {
	s := strconv.FormatFloat(n, 'f', -1, 64) + " " + unit
	if n > 1 {
		s += "s"
	}
	return s
}

// Date formats t with layout, or returns "-" for the zero time.
func Date(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}

// DatePtr is Date for optional timestamps.
func DatePtr(t *time.Time, layout string) string {
	if t == nil {
		return "-"
	}
	return Date(*t, layout)
}

// CompareTime orders timestamps ascending.
func CompareTime(a, b time.Time) int {
	return a.Compare(b)
}
