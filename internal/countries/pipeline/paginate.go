package pipeline

import (
	"slices"

	"worldranks/internal/countries/models"
)

// DefaultPageSize is the number of rows per page of the country list.
const DefaultPageSize = 15

// Page is one window over a filtered collection.
type Page struct {
	Items       []models.CountryOverview
	CurrentPage int
	TotalPages  int
	PageSize    int
	MatchCount  int
}

// TotalPages is 0 for an empty collection and ceil(n/pageSize) otherwise.
// A pageSize below 1 is treated as 1.
func TotalPages(n, pageSize int) int {
	if n <= 0 {
		return 0
	}
	pageSize = max(pageSize, 1)
	return (n + pageSize - 1) / pageSize
}

// ClampPage forces page into [0, totalPages-1], or 0 when there are no pages.
func ClampPage(page, totalPages int) int {
	if totalPages <= 0 || page < 0 {
		return 0
	}
	return min(page, totalPages-1)
}

// Paginate returns the window for page (clamped) over collection.
func Paginate(collection []models.CountryOverview, page, pageSize int) Page {
	pageSize = max(pageSize, 1)
	n := len(collection)
	total := TotalPages(n, pageSize)
	page = ClampPage(page, total)

	start := min(page*pageSize, n)
	end := min(start+pageSize, n)

	return Page{
		Items:       slices.Clone(collection[start:end]),
		CurrentPage: page,
		TotalPages:  total,
		PageSize:    pageSize,
		MatchCount:  n,
	}
}
