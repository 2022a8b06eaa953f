// Package page holds the paginated result of one search request.
package page

import "github.com/kailas-cloud/dishcovery/internal/domain"

// Page is the ordered, paginated output of one search request.
// Pagination is stateless: nothing survives across requests.
type Page struct {
	items        []domain.RestaurantRecord
	totalResults int
	currentPage  int
	pageSize     int
	reason       string
}

// New creates a result page. totalResults is the count after all
// filtering, not the slice length.
func New(items []domain.RestaurantRecord, totalResults, currentPage, pageSize int) Page {
	return Page{
		items:        items,
		totalResults: totalResults,
		currentPage:  currentPage,
		pageSize:     pageSize,
	}
}

// Empty creates a distinct no-results page carrying a human-readable reason.
func Empty(currentPage, pageSize int, reason string) Page {
	return Page{currentPage: currentPage, pageSize: pageSize, reason: reason}
}

// Items returns the records of this page, in result order.
func (p Page) Items() []domain.RestaurantRecord { return p.items }

// TotalResults returns the total match count across all pages.
func (p Page) TotalResults() int { return p.totalResults }

// CurrentPage returns the 1-based page number.
func (p Page) CurrentPage() int { return p.currentPage }

// TotalPages returns ceil(totalResults / pageSize).
func (p Page) TotalPages() int {
	if p.pageSize <= 0 {
		return 0
	}
	return (p.totalResults + p.pageSize - 1) / p.pageSize
}

// IsEmpty reports whether this page carries no items.
func (p Page) IsEmpty() bool { return len(p.items) == 0 }

// NoResultsReason returns the human-readable reason for an empty page.
func (p Page) NoResultsReason() string { return p.reason }

// Slice returns the [(page-1)*size, page*size) window of items.
// Out-of-range pages yield an empty slice.
func Slice(items []domain.RestaurantRecord, currentPage, pageSize int) []domain.RestaurantRecord {
	start := (currentPage - 1) * pageSize
	if start < 0 || start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
