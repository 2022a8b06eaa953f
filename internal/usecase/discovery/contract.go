package discovery

import (
	"context"

	"github.com/kailas-cloud/dishcovery/internal/domain"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/predicate"
)

// Repository defines the storage contract for restaurant discovery.
type Repository interface {
	// FindPage returns one store-side window of predicate matches plus
	// the total match count.
	FindPage(ctx context.Context, p predicate.Predicate, offset, limit int) ([]domain.RestaurantRecord, int, error)

	// FindAll returns every predicate match, for pipelines that rank
	// in-process before paginating.
	FindAll(ctx context.Context, p predicate.Predicate) ([]domain.RestaurantRecord, error)

	// FindByID returns the first record carrying the external id.
	FindByID(ctx context.Context, id string) (domain.RestaurantRecord, error)
}

// Classifier labels a food image with scored concepts.
type Classifier interface {
	Classify(ctx context.Context, image []byte) ([]domain.ConceptScore, error)
}

// TagExtractor converts classifier concepts into search tags.
type TagExtractor interface {
	Extract(concepts []domain.ConceptScore) []string
}
