package discovery

import (
	"context"

	"github.com/kailas-cloud/dishcovery/internal/domain"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/predicate"
)

// mockRepo implements Repository with overridable functions.
type mockRepo struct {
	findPageFunc func(ctx context.Context, p predicate.Predicate, offset, limit int) ([]domain.RestaurantRecord, int, error)
	findAllFunc  func(ctx context.Context, p predicate.Predicate) ([]domain.RestaurantRecord, error)
	findByIDFunc func(ctx context.Context, id string) (domain.RestaurantRecord, error)
}

func (m *mockRepo) FindPage(
	ctx context.Context, p predicate.Predicate, offset, limit int,
) ([]domain.RestaurantRecord, int, error) {
	if m.findPageFunc != nil {
		return m.findPageFunc(ctx, p, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockRepo) FindAll(ctx context.Context, p predicate.Predicate) ([]domain.RestaurantRecord, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, p)
	}
	return nil, nil
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (domain.RestaurantRecord, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.RestaurantRecord{}, domain.ErrRestaurantNotFound
}

// mockClassifier implements Classifier with an overridable function.
type mockClassifier struct {
	classifyFunc func(ctx context.Context, image []byte) ([]domain.ConceptScore, error)
}

func (m *mockClassifier) Classify(ctx context.Context, image []byte) ([]domain.ConceptScore, error) {
	if m.classifyFunc != nil {
		return m.classifyFunc(ctx, image)
	}
	return nil, nil
}

// mockExtractor returns fixed tags.
type mockExtractor struct {
	tags []string
}

func (m *mockExtractor) Extract([]domain.ConceptScore) []string { return m.tags }

// record builds a test restaurant at the given coordinates.
func record(id, name, lat, lon string) domain.RestaurantRecord {
	return domain.RestaurantRecord{
		ID:   id,
		Name: name,
		Location: domain.Location{
			Latitude:  lat,
			Longitude: lon,
		},
	}
}
