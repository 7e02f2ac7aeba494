package report

import "context"

type ReportService interface {
	Generate(ctx context.Context, f Filter) (Report, error)
	// Rows returns every sorted row of the report, unpaginated.
	Rows(ctx context.Context, f Filter) ([]UserRow, error)
}
