package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gobuffalo/buffalo"
)

const (
	defaultPerPage = 10
	maxPerPage     = 50
)

// QueryParams contains criteria to limit the results of List endpoints
type QueryParams struct {
	// searchText is a substring to match against the report reference
	searchText string

	// perPage sets the number of records returned in a single page, between 1 and 50
	perPage int

	// page sets the pagination slice for the query, starting at 1
	page int
}

func (q QueryParams) PerPage() int {
	if q.perPage > maxPerPage {
		return maxPerPage
	}
	return q.perPage
}

func (q QueryParams) Page() int {
	return q.page
}

func (q QueryParams) Search() string {
	return q.searchText
}

// NewQueryParams parses query string parameter values into query criteria. Omitted
// parameters get defaults (page 1, 10 records); an explicit page or per_page below 1,
// or one that fails to parse, is rejected.
func NewQueryParams(values buffalo.ParamValues) (QueryParams, error) {
	q := QueryParams{page: 1, perPage: defaultPerPage}

	q.searchText = strings.TrimSpace(values.Get("search"))

	if perPage := values.Get("per_page"); perPage != "" {
		i, err := strconv.Atoi(strings.TrimSpace(perPage))
		if err != nil || i < 1 {
			return q, NewAppError(
				errors.New("invalid per_page parameter: "+perPage),
				ErrorInvalidPagination,
				CategoryUser,
			)
		}
		q.perPage = i
	}

	if page := values.Get("page"); page != "" {
		i, err := strconv.Atoi(strings.TrimSpace(page))
		if err != nil || i < 1 {
			return q, NewAppError(
				errors.New("invalid page parameter: "+page),
				ErrorInvalidPagination,
				CategoryUser,
			)
		}
		q.page = i
	}

	return q, nil
}
