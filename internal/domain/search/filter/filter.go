// Package filter translates raw price-range and rating options into a
// validated, immutable filter specification.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/dishcovery/internal/domain"
)

// Spec holds the validated filter bounds for one search request.
// A nil bound means "no constraint". Immutable after construction.
type Spec struct {
	priceMin  *int
	priceMax  *int
	minRating *float64
}

// Parse builds a Spec from raw option strings. An empty string leaves
// the corresponding bound unset. Malformed values fail with an error
// wrapping domain.ErrInvalidFilter before any store access.
func Parse(rawPriceRange, rawRating string) (Spec, error) {
	var s Spec

	if rawPriceRange != "" {
		parts := strings.Split(rawPriceRange, ",")
		if len(parts) != 2 {
			return Spec{}, fmt.Errorf("%w: priceRange must be two comma-separated numbers, got %q",
				domain.ErrInvalidFilter, rawPriceRange)
		}
		lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return Spec{}, fmt.Errorf("%w: price range lower bound %q: %w",
				domain.ErrInvalidFilter, parts[0], err)
		}
		hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Spec{}, fmt.Errorf("%w: price range upper bound %q: %w",
				domain.ErrInvalidFilter, parts[1], err)
		}
		s.priceMin = &lo
		s.priceMax = &hi
	}

	if rawRating != "" {
		r, err := strconv.ParseFloat(strings.TrimSpace(rawRating), 64)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: rating %q: %w", domain.ErrInvalidFilter, rawRating, err)
		}
		s.minRating = &r
	}

	return s, nil
}

// PriceMin returns the inclusive lower price-range bound.
func (s Spec) PriceMin() *int { return s.priceMin }

// PriceMax returns the inclusive upper price-range bound.
func (s Spec) PriceMax() *int { return s.priceMax }

// MinRating returns the inclusive minimum aggregate rating.
func (s Spec) MinRating() *float64 { return s.minRating }

// IsEmpty reports whether the spec carries no constraints.
func (s Spec) IsEmpty() bool {
	return s.priceMin == nil && s.priceMax == nil && s.minRating == nil
}
