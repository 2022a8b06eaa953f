package restaurant

import (
	"context"

	"github.com/kailas-cloud/dishcovery/internal/db"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/predicate"
)

// mockStore implements the store interface with overridable functions.
type mockStore struct {
	jsonSetFunc         func(ctx context.Context, key, path string, data []byte) error
	createIndexFunc     func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFunc     func(ctx context.Context, name string) (bool, error)
	searchPredicateFunc func(ctx context.Context, q *db.PredicateQuery) (*db.SearchResult, error)
	countPredicateFunc  func(ctx context.Context, index string, p predicate.Predicate) (int, error)
	searchTagExactFunc  func(ctx context.Context, index, field, value string, limit int, returnFields []string) (*db.SearchResult, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFunc != nil {
		return m.jsonSetFunc(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFunc != nil {
		return m.createIndexFunc(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFunc != nil {
		return m.indexExistsFunc(ctx, name)
	}
	return false, nil
}

func (m *mockStore) SearchPredicate(ctx context.Context, q *db.PredicateQuery) (*db.SearchResult, error) {
	if m.searchPredicateFunc != nil {
		return m.searchPredicateFunc(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) CountPredicate(ctx context.Context, index string, p predicate.Predicate) (int, error) {
	if m.countPredicateFunc != nil {
		return m.countPredicateFunc(ctx, index, p)
	}
	return 0, nil
}

func (m *mockStore) SearchTagExact(
	ctx context.Context, index, field, value string, limit int, returnFields []string,
) (*db.SearchResult, error) {
	if m.searchTagExactFunc != nil {
		return m.searchTagExactFunc(ctx, index, field, value, limit, returnFields)
	}
	return &db.SearchResult{}, nil
}
