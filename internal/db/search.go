package db

import "github.com/kailas-cloud/dishcovery/internal/domain/search/predicate"

// PredicateQuery is the input for a predicate search against an FT index.
// Offset/Limit select one window; use Limit equal to the total count to
// fetch everything (the distance-filtering path needs all matches).
type PredicateQuery struct {
	IndexName    string
	Predicate    predicate.Predicate
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
