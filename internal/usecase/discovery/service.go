// Package discovery runs the restaurant search pipelines: text search
// by cuisine and image search via the vision classifier. Both share one
// predicate model and one pagination path.
package discovery

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/dishcovery/internal/domain"
	"github.com/kailas-cloud/dishcovery/internal/domain/geo"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/filter"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/page"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/predicate"
)

// Defaults applied when Options leaves a field zero.
const (
	DefaultTextPageSize  = 6
	DefaultImagePageSize = 10
	DefaultMaxDistanceKm = 50
)

// Options configures the pipeline page sizes and the proximity bound.
type Options struct {
	TextPageSize  int
	ImagePageSize int
	MaxDistanceKm float64
}

func (o Options) withDefaults() Options {
	if o.TextPageSize <= 0 {
		o.TextPageSize = DefaultTextPageSize
	}
	if o.ImagePageSize <= 0 {
		o.ImagePageSize = DefaultImagePageSize
	}
	if o.MaxDistanceKm <= 0 {
		o.MaxDistanceKm = DefaultMaxDistanceKm
	}
	return o
}

// Query carries one search request through the pipeline.
type Query struct {
	// Cuisine is the user-entered cuisine term for text search.
	Cuisine string
	// Filter holds the parsed price/rating constraints.
	Filter filter.Spec
	// Page is the 1-based page number; values below 1 mean the first page.
	Page int
	// PageSize overrides the configured page size when > 0.
	PageSize int
	// Latitude and Longitude form the optional reference point. Both
	// must be set to enable proximity ranking.
	Latitude  string
	Longitude string
	// MaxDistanceKm overrides the configured proximity bound when > 0.
	MaxDistanceKm float64
}

func (q Query) hasLocation() bool {
	return q.Latitude != "" && q.Longitude != ""
}

// ImageResult is the image search outcome: the extracted tags plus the
// result page. Tags are returned even when the page is empty so callers
// can show what the classifier saw.
type ImageResult struct {
	Tags []string
	Page page.Page
}

// Service runs the discovery pipelines over the restaurant repository.
type Service struct {
	repo       Repository
	classifier Classifier
	tags       TagExtractor
	opts       Options
}

// New creates a discovery service.
func New(repo Repository, classifier Classifier, tags TagExtractor, opts Options) *Service {
	return &Service{repo: repo, classifier: classifier, tags: tags, opts: opts.withDefaults()}
}

// SearchByCuisine runs the text pipeline: one cuisine term matched
// against the cuisine field, composed with the filter constraints.
// A blank cuisine fails with an error wrapping domain.ErrNoSearchTags.
func (s *Service) SearchByCuisine(ctx context.Context, q Query) (page.Page, error) {
	pred, err := predicate.Build([]string{q.Cuisine}, q.Filter)
	if err != nil {
		return page.Page{}, fmt.Errorf("build predicate: %w", err)
	}

	pageNum := normalizePage(q.Page)
	size := pageSize(q, s.opts.TextPageSize)

	if q.hasLocation() {
		return s.searchNearby(ctx, pred, q, pageNum, size, s.nearbyReason(q))
	}
	return s.searchPaged(ctx, pred, pageNum, size, "No restaurants found for the given cuisine")
}

// SearchByImage runs the image pipeline: classify, extract tags, then
// query with tag clauses fanning out over both cuisine and name fields.
// When no tag survives extraction the store is never queried.
func (s *Service) SearchByImage(ctx context.Context, image []byte, q Query) (ImageResult, error) {
	concepts, err := s.classifier.Classify(ctx, image)
	if err != nil {
		return ImageResult{}, fmt.Errorf("classify image: %w", err)
	}

	pageNum := normalizePage(q.Page)
	size := pageSize(q, s.opts.ImagePageSize)
	const noMatchReason = "No restaurants found matching the image"

	tags := s.tags.Extract(concepts)
	if len(tags) == 0 {
		return ImageResult{Page: page.Empty(pageNum, size, noMatchReason)}, nil
	}

	pred, err := predicate.Build(tags, q.Filter, predicate.MatchNames())
	if err != nil {
		return ImageResult{}, fmt.Errorf("build predicate: %w", err)
	}

	var result page.Page
	if q.hasLocation() {
		result, err = s.searchNearby(ctx, pred, q, pageNum, size, noMatchReason)
	} else {
		result, err = s.searchPaged(ctx, pred, pageNum, size, noMatchReason)
	}
	if err != nil {
		return ImageResult{}, err
	}
	return ImageResult{Tags: tags, Page: result}, nil
}

// FindRestaurant returns the full record for an external id.
func (s *Service) FindRestaurant(ctx context.Context, id string) (domain.RestaurantRecord, error) {
	return s.repo.FindByID(ctx, id)
}

// searchPaged pages at the store. Store order is preserved.
func (s *Service) searchPaged(
	ctx context.Context, pred predicate.Predicate, pageNum, size int, emptyReason string,
) (page.Page, error) {
	items, total, err := s.repo.FindPage(ctx, pred, (pageNum-1)*size, size)
	if err != nil {
		return page.Page{}, err
	}
	if len(items) == 0 {
		return page.Empty(pageNum, size, emptyReason), nil
	}
	return page.New(items, total, pageNum, size), nil
}

// searchNearby fetches all matches, ranks by distance from the
// reference point, then pages in-process. Distance changes both the
// ordering and the total, so the store window cannot be used.
func (s *Service) searchNearby(
	ctx context.Context, pred predicate.Predicate, q Query, pageNum, size int, emptyReason string,
) (page.Page, error) {
	candidates, err := s.repo.FindAll(ctx, pred)
	if err != nil {
		return page.Page{}, err
	}

	nearby := rankByDistance(candidates, q.Latitude, q.Longitude, s.maxDistance(q))
	items := page.Slice(nearby, pageNum, size)
	if len(items) == 0 {
		return page.Empty(pageNum, size, emptyReason), nil
	}
	return page.New(items, len(nearby), pageNum, size), nil
}

func (s *Service) maxDistance(q Query) float64 {
	if q.MaxDistanceKm > 0 {
		return q.MaxDistanceKm
	}
	return s.opts.MaxDistanceKm
}

func (s *Service) nearbyReason(q Query) string {
	return fmt.Sprintf("No restaurants found within %gkm of your location", s.maxDistance(q))
}

// rankByDistance attaches the distance from the reference point to each
// record, drops records beyond maxKm or with unparseable coordinates,
// and sorts ascending. The sort is stable: equal distances keep store
// order.
func rankByDistance(records []domain.RestaurantRecord, lat, lon string, maxKm float64) []domain.RestaurantRecord {
	kept := make([]domain.RestaurantRecord, 0, len(records))
	for _, rec := range records {
		d := geo.DistanceKm(lat, lon, rec.Location.Latitude, rec.Location.Longitude)
		if d == nil || *d > maxKm {
			continue
		}
		rec.Distance = d
		kept = append(kept, rec)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return *kept[i].Distance < *kept[j].Distance
	})
	return kept
}

func pageSize(q Query, def int) int {
	if q.PageSize > 0 {
		return q.PageSize
	}
	return def
}

func normalizePage(p int) int {
	if p < 1 {
		return 1
	}
	return p
}
