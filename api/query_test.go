package api

import (
	"net/url"
	"testing"

	"github.com/gobuffalo/buffalo"
)

func (ts *TestSuite) TestNewQueryParams() {
	tests := []struct {
		name        string
		qs          string
		wantPerPage int
		wantPage    int
		wantSearch  string
		wantErr     bool
	}{
		{
			name:        "default",
			qs:          "",
			wantPerPage: 10,
			wantPage:    1,
		},
		{
			name:        "per_page and page",
			qs:          "per_page=2&page=5",
			wantPerPage: 2,
			wantPage:    5,
		},
		{
			name:        "search",
			qs:          "search=lab_report",
			wantPerPage: 10,
			wantPage:    1,
			wantSearch:  "lab_report",
		},
		{
			name:    "negative page is rejected",
			qs:      "page=-5",
			wantErr: true,
		},
		{
			name:    "zero per_page is rejected",
			qs:      "per_page=0",
			wantErr: true,
		},
		{
			name:    "non-numeric page is rejected",
			qs:      "page=abc",
			wantErr: true,
		},
		{
			name:        "spaces",
			qs:          "per_page=+2+&search=+scan+",
			wantPerPage: 2,
			wantPage:    1,
			wantSearch:  "scan",
		},
	}
	for _, tt := range tests {
		ts.T().Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.qs)

			got, err := NewQueryParams(buffalo.ParamValues(values))
			if tt.wantErr {
				ts.Error(err, "expected a pagination error")
				var appErr *AppError
				ts.ErrorAs(err, &appErr)
				ts.Equal(ErrorInvalidPagination, appErr.Key)
				ts.Equal(CategoryUser, appErr.Category)
				return
			}
			ts.NoError(err)
			ts.Equal(tt.wantPerPage, got.PerPage(), "per_page is incorrect")
			ts.Equal(tt.wantPage, got.Page(), "page is incorrect")
			ts.Equal(tt.wantSearch, got.Search(), "search is incorrect")
		})
	}
}

func (ts *TestSuite) TestQueryParams_PerPageCap() {
	values, _ := url.ParseQuery("per_page=500")
	got, err := NewQueryParams(buffalo.ParamValues(values))
	ts.NoError(err)
	ts.Equal(maxPerPage, got.PerPage())
}
