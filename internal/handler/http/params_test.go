package http

import (
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/leaves?search=+jane+&start_date=2024-01-01&end_date=2024-01-31&page=2&page_size=5&sort_by=dateRange&sort_order=descend&filter[status]=pending,approved&filter[leaveType]=sick&filter[]=x", nil)

	l, err := parseList(r, 10)
	require.NoError(t, err)

	assert.Equal(t, " jane ", l.Search)
	assert.Equal(t, "2024-01-01", l.StartDate)
	assert.Equal(t, "2024-01-31", l.EndDate)
	assert.Equal(t, 2, l.Page)
	assert.Equal(t, 5, l.PageSize)
	assert.Equal(t, "dateRange", l.SortBy)
	assert.Equal(t, "descend", l.SortOrder)
	assert.Equal(t, map[string][]string{
		"status":    {"pending", "approved"},
		"leaveType": {"sick"},
	}, l.Filters)
}

func TestParseList_BadNumbers(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/users?page=two&page_size=x", nil)

	_, err := parseList(r, 10)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestParseList_Defaults(t *testing.T) {
	l, err := parseList(httptest.NewRequest("GET", "/api/v1/users", nil), 25)
	require.NoError(t, err)
	assert.Zero(t, l.Page)
	assert.Equal(t, 25, l.PageSize)
	assert.Nil(t, l.Filters)
}
