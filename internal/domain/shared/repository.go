package shared

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination is a normalized page/limit pair.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination applies the storefront defaults (page 1, limit 20) to raw
// query values and caps the limit.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// instead of wrapping for very large pages.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func (p Pagination) TotalPages(total int64) int {
	if p.Limit == 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}

// SortOrder is the direction of a listing sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder returns desc only for the literal "desc"; everything else sorts ascending.
func ParseSortOrder(s string) SortOrder {
	if s == string(SortDesc) {
		return SortDesc
	}
	return SortAsc
}
