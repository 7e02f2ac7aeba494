package query

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
)

func TestList_ValidateDefaults(t *testing.T) {
	l := List{}
	errs := l.Validate(nil)

	assert.Empty(t, errs)
	assert.Equal(t, 1, l.Page)
	assert.Equal(t, table.ScopeFiltered, l.SelectScope())
	assert.Nil(t, l.Range())
}

func TestList_ValidateErrors(t *testing.T) {
	l := List{
		Page:      -1,
		PageSize:  500,
		SortOrder: "up",
		StartDate: "2024-02-10",
		EndDate:   "2024-02-01",
		Scope:     "all-of-it",
	}
	errs := l.Validate(nil)

	fields := errs.ToMap()
	assert.Contains(t, fields, "page")
	assert.Contains(t, fields, "page_size")
	assert.Contains(t, fields, "sort_order")
	assert.Contains(t, fields, "end_date")
	assert.Contains(t, fields, "scope")
}

func TestList_ValidateHalfRange(t *testing.T) {
	l := List{StartDate: "2024-01-01"}
	errs := l.Validate(nil)
	assert.Contains(t, errs.ToMap(), "date_range")
}

func TestList_Range(t *testing.T) {
	l := List{StartDate: "2024-01-10", EndDate: "2024-01-20"}
	r := l.Range()
	require.NotNil(t, r)

	assert.True(t, r.Start.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 20, r.End.Day())
	assert.Equal(t, 23, r.End.Hour())
}

func TestList_Table(t *testing.T) {
	l := List{SortBy: "days", SortOrder: "descend", Page: 2, PageSize: 5, Filters: map[string][]string{"status": {"pending"}}}
	req := l.Table()

	assert.Equal(t, table.SortDescend, req.SortOrder)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, []string{"pending"}, req.Filters["status"])
}

type row struct {
	ID     string
	Status string
}

var rowSchema = filter.Schema[row]{
	Text:   []func(row) string{func(r row) string { return r.ID }},
	Fields: map[string]func(row) string{"status": func(r row) string { return r.Status }},
}

var rowTable = table.MustNew(table.Config[row]{
	RowKey: func(r row) string { return r.ID },
	Noun:   "rows",
	Columns: []table.Column[row]{
		{Key: "id", Title: "ID", Sorter: func(a, b row) int { return strings.Compare(a.ID, b.ID) }, Render: func(r row) any { return r.ID }},
		{Key: "status", Title: "Status", Render: func(r row) any { return r.Status }, Filters: []table.FilterOption[row]{
			{Text: "Open", Value: "open", Match: func(r row) bool { return r.Status == "open" }},
		}},
	},
})

func TestRun_StatsIgnoreColumnFiltersAndPagination(t *testing.T) {
	items := []row{{"c", "open"}, {"a", "closed"}, {"b", "open"}, {"d", "closed"}}
	l := List{Page: 1, PageSize: 1, SortBy: "id", SortOrder: "descend", Filters: map[string][]string{"status": {"open"}}}

	res, err := Run(items, rowSchema, filter.Criteria{}, rowTable, l, func(rs []row) int { return len(rs) })
	require.NoError(t, err)

	assert.Equal(t, 4, res.Stats)
	assert.Equal(t, 2, res.Table.Meta.TotalItems)
	assert.Equal(t, "Total 2 rows", res.Table.Meta.TotalLabel)
	require.Len(t, res.Table.Rows, 1)
	assert.Equal(t, "c", res.Table.Rows[0].Key)
	assert.Equal(t, []string{"c", "b"}, res.Keys)

	l.Scope = string(table.ScopePage)
	res, err = Run(items, rowSchema, filter.Criteria{Categories: map[string]string{"status": "closed"}}, rowTable, List{Page: 1, Scope: l.Scope}, func(rs []row) int { return len(rs) })
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats)
	assert.Equal(t, []string{"a", "d"}, res.Keys)
}

func TestRows_Unpaginated(t *testing.T) {
	items := []row{{"c", "open"}, {"a", "closed"}, {"b", "open"}}

	rows, err := Rows(items, rowSchema, filter.Criteria{Query: "a"}, rowTable, List{Page: 3, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, []row{{"a", "closed"}}, rows)

	_, err = Rows(items, rowSchema, filter.Criteria{}, rowTable, List{SortBy: "status", SortOrder: "ascend"})
	assert.ErrorIs(t, err, table.ErrNotSortable)
}
