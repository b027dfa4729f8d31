package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit within int for every allowed limit.
	MaxPage = math.MaxInt / MaxLimit
)

// SortDirection is the direction of a listing's order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PageRequest describes which slice of a listing to return and in what order.
// Results are always ordered by (SortField, id) in SortDirection.
type PageRequest struct {
	Page          int
	Limit         int
	SortField     string
	SortDirection SortDirection
}

// Normalized returns a copy with defaults applied: page and limit fall back to
// 1 and 10 when below 1, page and limit are capped at MaxPage and MaxLimit,
// an unknown direction becomes desc.
func (p PageRequest) Normalized() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortDirection != SortAsc {
		p.SortDirection = SortDesc
	}

	return p
}

// Offset returns the number of rows preceding the requested page.
func (p PageRequest) Offset() uint64 {
	return uint64((p.Page - 1) * p.Limit)
}

// Page is a paginated listing.
type Page[T any] struct {
	Items       []T   `json:"items"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

// NewPage assembles a page. TotalPages is ceil(total/limit).
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}

	var totalPages int64
	if req.Limit > 0 {
		totalPages = (total + int64(req.Limit) - 1) / int64(req.Limit)
	}

	return Page[T]{
		Items:       items,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: req.Page,
		Limit:       req.Limit,
	}
}
