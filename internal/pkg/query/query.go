// Package query holds the serializable list view state shared by every
// list endpoint: search text, date range, column filters, sort and page.
package query

import (
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
)

const (
	DateLayout  = "2006-01-02"
	MaxPageSize = 100
)

type List struct {
	Search    string              `json:"search,omitempty"`
	StartDate string              `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string              `json:"end_date,omitempty"`   // YYYY-MM-DD
	Page      int                 `json:"page"`
	PageSize  int                 `json:"page_size"`
	SortBy    string              `json:"sort_by,omitempty"`
	SortOrder string              `json:"sort_order,omitempty"` // ascend, descend
	Filters   map[string][]string `json:"filters,omitempty"`
	Scope     string              `json:"scope,omitempty"` // page, filtered
}

// Validate appends problems to errs and fills defaults.
func (l *List) Validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if l.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if l.Page == 0 {
		l.Page = 1
	}

	if l.PageSize < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page_size",
			Message: "page_size must be a positive number",
		})
	}
	if l.PageSize > MaxPageSize {
		errs = append(errs, validator.ValidationError{
			Field:   "page_size",
			Message: "page_size must not exceed 100",
		})
	}

	switch table.SortOrder(l.SortOrder) {
	case table.SortNone, table.SortAscend, table.SortDescend:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be one of: ascend, descend",
		})
	}

	var start, end time.Time
	var startOK, endOK bool
	if l.StartDate != "" {
		if start, startOK = validator.IsValidDate(l.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if l.EndDate != "" {
		if end, endOK = validator.IsValidDate(l.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if (l.StartDate == "") != (l.EndDate == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "date_range",
			Message: "start_date and end_date must be provided together",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if _, err := table.ParseScope(l.Scope); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "scope",
			Message: "scope must be one of: page, filtered",
		})
	}

	return errs
}

// Range returns the day-normalised date range, or nil when unset or
// malformed.
func (l List) Range() *filter.DateRange {
	start, ok := validator.IsValidDate(l.StartDate)
	if !ok {
		return nil
	}
	end, ok := validator.IsValidDate(l.EndDate)
	if !ok {
		return nil
	}
	return filter.NewDateRange(start, end)
}

func (l List) Table() table.Request {
	return table.Request{
		SortBy:    l.SortBy,
		SortOrder: table.SortOrder(l.SortOrder),
		Filters:   l.Filters,
		Page:      l.Page,
		PageSize:  l.PageSize,
	}
}

func (l List) SelectScope() table.Scope {
	s, err := table.ParseScope(l.Scope)
	if err != nil {
		return table.ScopeFiltered
	}
	return s
}

// Result is the payload of a list endpoint.
type Result[S any] struct {
	Table table.View `json:"table"`
	Stats S          `json:"stats"`
	// Keys lists every row key in the selection scope, for select-all.
	Keys []string `json:"keys"`
}

// Run drives one list view: criteria filtering, stats over the filtered
// collection, then column filters, sorting and pagination for display.
func Run[T, S any](items []T, schema filter.Schema[T], c filter.Criteria, t *table.Table[T], l List, reduce func([]T) S) (Result[S], error) {
	filtered := filter.Apply(items, schema, c)

	req := l.Table()
	view, err := t.Render(filtered, req)
	if err != nil {
		return Result[S]{}, err
	}
	keys, err := t.ScopeKeys(filtered, l.SelectScope(), req)
	if err != nil {
		return Result[S]{}, err
	}

	return Result[S]{
		Table: view,
		Stats: reduce(filtered),
		Keys:  keys,
	}, nil
}

// Rows returns every filtered and sorted item behind a list view, ignoring
// pagination. Exports use it.
func Rows[T any](items []T, schema filter.Schema[T], c filter.Criteria, t *table.Table[T], l List) ([]T, error) {
	filtered := filter.Apply(items, schema, c)
	_, all, _, err := t.Prepare(filtered, l.Table())
	return all, err
}
