package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/query"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
)

// parseList reads the shared list view state from the query string.
// Column filters use filter[<column>]=v1,v2.
func parseList(r *http.Request, defaultPageSize int) (query.List, error) {
	q := r.URL.Query()
	var errs validator.ValidationErrors

	l := query.List{
		Search:    q.Get("search"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
		Scope:     q.Get("scope"),
		Filters:   columnFilters(q),
	}

	var ok bool
	if l.Page, ok = intParam(q, "page", 0); !ok {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a number"})
	}
	if l.PageSize, ok = intParam(q, "page_size", defaultPageSize); !ok {
		errs = append(errs, validator.ValidationError{Field: "page_size", Message: "page_size must be a number"})
	}

	if len(errs) > 0 {
		return l, errs
	}
	return l, nil
}

func columnFilters(q url.Values) map[string][]string {
	var out map[string][]string
	for key, values := range q {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}
		col := key[len("filter[") : len(key)-1]
		if col == "" {
			continue
		}
		for _, v := range values {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					if out == nil {
						out = make(map[string][]string)
					}
					out[col] = append(out[col], part)
				}
			}
		}
	}
	return out
}

// intParam returns def for a missing key and ok=false for a malformed one.
func intParam(q url.Values, key string, def int) (int, bool) {
	v := q.Get(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, false
	}
	return n, true
}

func boolParam(q url.Values, key string) bool {
	v := q.Get(key)
	return v == "true" || v == "1"
}
