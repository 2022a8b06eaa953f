// Package db defines the storage contracts for the restaurant store.
// Consumers depend on the narrow sub-interfaces; the facade exists for
// the composition root only.
package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/dishcovery/internal/domain/search/predicate"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	JSONStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JSONStore provides JSON document operations.
type JSONStore interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher runs predicate queries over an FT index.
type Searcher interface {
	// SearchPredicate returns one window of matches plus the total
	// match count reported by the index.
	SearchPredicate(ctx context.Context, q *PredicateQuery) (*SearchResult, error)
	// CountPredicate returns the total match count without fetching documents.
	CountPredicate(ctx context.Context, index string, p predicate.Predicate) (int, error)
	// SearchTagExact returns documents whose TAG field equals value.
	SearchTagExact(ctx context.Context, index, field, value string, limit int, returnFields []string) (*SearchResult, error)
}
