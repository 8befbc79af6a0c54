package paging

import "strings"

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
	maxPageSize       = 20
)

// Params holds the raw filter and page inputs for a collection query.
// Normalize must be called before the params are handed to a store.
type Params struct {
	Name        string
	SearchQuery string
	PageNumber  int
	PageSize    int
}

// Normalize trims filter inputs and clamps page values. Whitespace-only
// filters become absent, page size above the maximum is silently lowered to
// the maximum, and missing or non-positive page values fall back to defaults.
func (p Params) Normalize() Params {
	p.Name = strings.TrimSpace(p.Name)
	p.SearchQuery = strings.TrimSpace(p.SearchQuery)

	if p.PageNumber < 1 {
		p.PageNumber = defaultPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// HasName reports whether an exact-name filter is present
func (p Params) HasName() bool {
	return p.Name != ""
}

// HasSearch reports whether a free-text search term is present
func (p Params) HasSearch() bool {
	return p.SearchQuery != ""
}

// Offset returns the number of items to skip for the current page
func (p Params) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// Metadata describes a page's position within the total filtered result set.
// The JSON field names are part of the API contract (X-Pagination header).
type Metadata struct {
	TotalItemCount int `json:"totalItemCount"`
	PageSize       int `json:"pageSize"`
	CurrentPage    int `json:"currentPage"`
	TotalPages     int `json:"totalPages"`
}

// NewMetadata computes metadata for a page of a filtered set of totalItemCount
// items. TotalPages is ceil(totalItemCount / pageSize).
func NewMetadata(totalItemCount int, params Params) Metadata {
	totalPages := (totalItemCount + params.PageSize - 1) / params.PageSize
	return Metadata{
		TotalItemCount: totalItemCount,
		PageSize:       params.PageSize,
		CurrentPage:    params.PageNumber,
		TotalPages:     totalPages,
	}
}
