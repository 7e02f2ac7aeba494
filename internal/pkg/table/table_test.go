package table

import (
	"cmp"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leave struct {
	ID     string
	Type   string
	Status string
	Days   float64
}

func leaveTable(t *testing.T) *Table[leave] {
	t.Helper()
	tbl, err := New(Config[leave]{
		RowKey: func(l leave) string { return l.ID },
		Noun:   "leaves",
		Columns: []Column[leave]{
			{Key: "id", Title: "ID", Render: func(l leave) any { return l.ID }},
			{
				Key:   "type",
				Title: "Type",
				Filters: []FilterOption[leave]{
					{Text: "Vacation", Value: "vacation", Match: func(l leave) bool { return l.Type == "vacation" }},
					{Text: "Sick", Value: "sick", Match: func(l leave) bool { return l.Type == "sick" }},
				},
			},
			{
				Key:   "status",
				Title: "Status",
				Filters: []FilterOption[leave]{
					{Text: "Pending", Value: "pending", Match: func(l leave) bool { return l.Status == "pending" }},
					{Text: "Approved", Value: "approved", Match: func(l leave) bool { return l.Status == "approved" }},
				},
			},
			{
				Key:    "days",
				Title:  "Duration",
				Sorter: func(a, b leave) int { return cmp.Compare(a.Days, b.Days) },
				Render: func(l leave) any { return Pluralize(l.Days, "day") },
			},
		},
		Actions: []RowAction[leave]{
			{Kind: "approve", Label: "Approve", Visible: func(l leave) bool { return l.Status == "pending" }},
			{Kind: "reject", Label: "Reject", Danger: true, Visible: func(l leave) bool { return l.Status == "pending" }},
			{Kind: "delete", Label: "Delete", Danger: true, Visible: func(l leave) bool { return l.Status != "pending" }},
		},
	})
	require.NoError(t, err)
	return tbl
}

func sample() []leave {
	return []leave{
		{"LV-1", "vacation", "approved", 5},
		{"LV-2", "sick", "pending", 1},
		{"LV-3", "vacation", "pending", 3},
		{"LV-4", "personal", "approved", 1},
		{"LV-5", "sick", "approved", 2},
	}
}

func TestNew_RejectsDuplicateKeys(t *testing.T) {
	_, err := New(Config[leave]{
		RowKey:  func(l leave) string { return l.ID },
		Columns: []Column[leave]{{Key: "id"}, {Key: "id"}},
	})
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestNew_RequiresRowKey(t *testing.T) {
	_, err := New(Config[leave]{})
	assert.ErrorIs(t, err, ErrMissingRowKey)
}

func TestSort_StableAscendDescend(t *testing.T) {
	tbl := leaveTable(t)

	asc, err := tbl.Sort(sample(), "days", SortAscend)
	require.NoError(t, err)
	assert.Equal(t, []string{"LV-2", "LV-4", "LV-5", "LV-3", "LV-1"}, tbl.Keys(asc))

	desc, err := tbl.Sort(sample(), "days", SortDescend)
	require.NoError(t, err)
	// ties keep input order in both directions
	assert.Equal(t, []string{"LV-1", "LV-3", "LV-5", "LV-2", "LV-4"}, tbl.Keys(desc))

	none, err := tbl.Sort(sample(), "days", SortNone)
	require.NoError(t, err)
	assert.Equal(t, tbl.Keys(sample()), tbl.Keys(none))
}

func TestSort_Errors(t *testing.T) {
	tbl := leaveTable(t)

	_, err := tbl.Sort(sample(), "missing", SortAscend)
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = tbl.Sort(sample(), "type", SortAscend)
	assert.ErrorIs(t, err, ErrNotSortable)

	_, err = tbl.Sort(sample(), "days", SortOrder("sideways"))
	assert.ErrorIs(t, err, ErrInvalidSortOrder)
}

func TestFilter_OrWithinColumnAndAcross(t *testing.T) {
	tbl := leaveTable(t)

	got, err := tbl.Filter(sample(), map[string][]string{"type": {"vacation", "sick"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"LV-1", "LV-2", "LV-3", "LV-5"}, tbl.Keys(got))

	got, err = tbl.Filter(sample(), map[string][]string{
		"type":   {"vacation", "sick"},
		"status": {"pending"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"LV-2", "LV-3"}, tbl.Keys(got))
}

func TestFilter_Errors(t *testing.T) {
	tbl := leaveTable(t)

	_, err := tbl.Filter(sample(), map[string][]string{"nope": {"x"}})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = tbl.Filter(sample(), map[string][]string{"days": {"1"}})
	assert.ErrorIs(t, err, ErrNotFilterable)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	page, meta := Paginate(items, 3, 0)
	assert.Equal(t, []int{20, 21, 22}, page)
	assert.Equal(t, Meta{Page: 3, PageSize: 10, TotalItems: 23, TotalPages: 3}, meta)

	page, meta = Paginate(items, 9, 10)
	assert.Empty(t, page)
	assert.Equal(t, 23, meta.TotalItems)

	page, meta = Paginate(items, 0, 5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, page)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 5, meta.TotalPages)
}

func TestRender(t *testing.T) {
	tbl := leaveTable(t)

	view, err := tbl.Render(sample(), Request{SortBy: "days", SortOrder: SortDescend, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, "Total 5 leaves", view.Meta.TotalLabel)
	assert.Equal(t, 3, view.Meta.TotalPages)
	require.Len(t, view.Rows, 2)

	first := view.Rows[0]
	assert.Equal(t, "LV-1", first.Key)
	assert.Equal(t, []Cell{{Key: "id", Value: "LV-1"}, {Key: "days", Value: "5 days"}}, first.Cells)
	assert.Equal(t, []string{"delete"}, first.Actions)
	assert.Equal(t, []string{"approve", "reject"}, view.Rows[1].Actions)

	require.Len(t, view.Columns, 4)
	assert.True(t, view.Columns[3].Sortable)
	assert.Equal(t, SortDescend, view.Columns[3].SortOrder)
	assert.Len(t, view.Columns[1].Filters, 2)
}

func TestTrigger(t *testing.T) {
	tbl := leaveTable(t)
	items := sample()

	var gotKind, gotKey string
	err := tbl.Trigger(items[1], "approve", func(kind, key string, l leave) error {
		gotKind, gotKey = kind, key
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "approve", gotKind)
	assert.Equal(t, "LV-2", gotKey)
	assert.Equal(t, "pending", items[1].Status)

	err = tbl.Trigger(items[0], "approve", func(string, string, leave) error {
		t.Fatal("callback must not run for a hidden action")
		return nil
	})
	assert.ErrorIs(t, err, ErrActionUnavailable)

	boom := errors.New("boom")
	err = tbl.Trigger(items[0], "delete", func(string, string, leave) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{1, "1 day"},
		{5, "5 days"},
		{0.5, "0.5 day"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, Pluralize(tt.n, "day"))
		})
	}
}
