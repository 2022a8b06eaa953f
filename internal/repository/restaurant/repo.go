// Package restaurant adapts the restaurant store to the discovery use case.
package restaurant

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/dishcovery/internal/db"
	"github.com/kailas-cloud/dishcovery/internal/domain"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/predicate"
)

const (
	// DefaultNamespace prefixes restaurant keys and the index name when
	// no storage namespace is configured.
	DefaultNamespace = "dishcovery:"

	// KeyPrefix and IndexName are the storage names under DefaultNamespace.
	KeyPrefix = DefaultNamespace + "restaurants:"
	IndexName = DefaultNamespace + "restaurants:idx"
)

// store is the consumer interface for restaurant persistence (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchPredicate(ctx context.Context, q *db.PredicateQuery) (*db.SearchResult, error)
	CountPredicate(ctx context.Context, index string, p predicate.Predicate) (int, error)
	SearchTagExact(ctx context.Context, index, field, value string, limit int, returnFields []string) (*db.SearchResult, error)
}

// Repo implements the discovery use case's store contracts.
type Repo struct {
	store     store
	keyPrefix string
	indexName string
}

// Option customizes repository construction.
type Option func(*Repo)

// WithNamespace replaces the default storage namespace: documents live
// under <ns>restaurants: and the index is named <ns>restaurants:idx.
func WithNamespace(ns string) Option {
	return func(r *Repo) {
		if ns == "" {
			return
		}
		r.keyPrefix = ns + "restaurants:"
		r.indexName = ns + "restaurants:idx"
	}
}

// New creates a restaurant repository.
func New(s store, opts ...Option) *Repo {
	r := &Repo{store: s, keyPrefix: KeyPrefix, indexName: IndexName}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Index returns the FT index name this repository queries.
func (r *Repo) Index() string { return r.indexName }

// indexDefinition returns the FT index schema for restaurant documents.
func (r *Repo) indexDefinition() *db.IndexDefinition {
	return db.NewIndex(r.indexName).
		OnJSON().
		Prefix(r.keyPrefix).
		Tag("$.id", "id").
		Text("$.cuisines", "cuisines").
		Text("$.name", "name").
		Numeric("$.price_range", "price_range").
		Numeric("$.user_rating.aggregate_rating", "rating").
		MustBuild()
}

// EnsureIndex creates the restaurant FT index when it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName)
	if err != nil {
		return fmt.Errorf("check index: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if exists {
		return nil
	}
	if err := r.store.CreateIndex(ctx, r.indexDefinition()); err != nil {
		return fmt.Errorf("create index: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Upsert writes a restaurant document under a synthetic storage id.
// External record ids repeat in the dataset, so they never become keys.
func (r *Repo) Upsert(ctx context.Context, storageID string, doc []byte) error {
	key := r.keyPrefix + storageID
	if err := r.store.JSONSet(ctx, key, "$", doc); err != nil {
		return fmt.Errorf("json.set %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	return nil
}

// FindPage returns one store-side page of predicate matches plus the
// total match count. Store order is preserved.
func (r *Repo) FindPage(
	ctx context.Context, p predicate.Predicate, offset, limit int,
) ([]domain.RestaurantRecord, int, error) {
	res, err := r.store.SearchPredicate(ctx, &db.PredicateQuery{
		IndexName:    r.indexName,
		Predicate:    p,
		Offset:       offset,
		Limit:        limit,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("search restaurants: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return parseEntries(res), res.Total, nil
}

// FindAll returns every predicate match. Unbounded by design: distance
// filtering changes ordering and totals, so the whole candidate set is
// needed before pagination.
func (r *Repo) FindAll(ctx context.Context, p predicate.Predicate) ([]domain.RestaurantRecord, error) {
	total, err := r.CountByPredicate(ctx, p)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	res, err := r.store.SearchPredicate(ctx, &db.PredicateQuery{
		IndexName:    r.indexName,
		Predicate:    p,
		Offset:       0,
		Limit:        total,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return parseEntries(res), nil
}

// CountByPredicate returns the total number of predicate matches.
func (r *Repo) CountByPredicate(ctx context.Context, p predicate.Predicate) (int, error) {
	n, err := r.store.CountPredicate(ctx, r.indexName, p)
	if err != nil {
		return 0, fmt.Errorf("count restaurants: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return n, nil
}

// FindByID returns the first record carrying the external id, with the
// full stored document in Raw for passthrough fields.
func (r *Repo) FindByID(ctx context.Context, id string) (domain.RestaurantRecord, error) {
	res, err := r.store.SearchTagExact(ctx, r.indexName, "id", id, 1, []string{"$"})
	if err != nil {
		return domain.RestaurantRecord{}, fmt.Errorf("find restaurant %s: %w: %w",
			id, domain.ErrStoreUnavailable, err)
	}
	if res == nil || len(res.Entries) == 0 {
		return domain.RestaurantRecord{}, domain.ErrRestaurantNotFound
	}

	rec, err := parseRecord([]byte(res.Entries[0].Fields["$"]))
	if err != nil {
		return domain.RestaurantRecord{}, fmt.Errorf("parse restaurant %s: %w", id, err)
	}
	return rec, nil
}

// parseEntries converts search hits into records, skipping entries
// whose stored document cannot be parsed.
func parseEntries(res *db.SearchResult) []domain.RestaurantRecord {
	if res == nil || len(res.Entries) == 0 {
		return nil
	}
	records := make([]domain.RestaurantRecord, 0, len(res.Entries))
	for _, entry := range res.Entries {
		rec, err := parseRecord([]byte(entry.Fields["$"]))
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}
