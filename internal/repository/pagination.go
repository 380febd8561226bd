package repository

import "math"

// DefaultPageSize is used when a non-positive page size is requested.
const DefaultPageSize = 10

// MaxPage is the largest page whose offset still fits in an int.
func MaxPage(pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return math.MaxInt / pageSize
}

// Offset returns the number of rows to skip for a 1-based page. Pages past
// MaxPage are clamped so the offset never wraps negative.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if limit := MaxPage(pageSize); page > limit {
		page = limit
	}
	return (page - 1) * pageSize
}

// PageCount returns how many pages of pageSize rows are needed for total rows.
func PageCount(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return (total + pageSize - 1) / pageSize
}
