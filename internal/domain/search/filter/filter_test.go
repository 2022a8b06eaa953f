package filter

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/dishcovery/internal/domain"
)

func TestParse_PriceRangeAndRating(t *testing.T) {
	s, err := Parse("1,3", "4.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.PriceMin() == nil || *s.PriceMin() != 1 {
		t.Errorf("priceMin = %v, want 1", s.PriceMin())
	}
	if s.PriceMax() == nil || *s.PriceMax() != 3 {
		t.Errorf("priceMax = %v, want 3", s.PriceMax())
	}
	if s.MinRating() == nil || *s.MinRating() != 4.0 {
		t.Errorf("minRating = %v, want 4.0", s.MinRating())
	}
}

func TestParse_AbsentOptionsLeaveBoundsUnset(t *testing.T) {
	s, err := Parse("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsEmpty() {
		t.Error("expected empty spec")
	}
}

func TestParse_RatingOnly(t *testing.T) {
	s, err := Parse("", "3.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.PriceMin() != nil || s.PriceMax() != nil {
		t.Error("price bounds should be unset")
	}
	if s.MinRating() == nil || *s.MinRating() != 3.5 {
		t.Errorf("minRating = %v, want 3.5", s.MinRating())
	}
}

func TestParse_InvalidInputs(t *testing.T) {
	tests := []struct {
		name       string
		priceRange string
		rating     string
	}{
		{"non-numeric price range", "x,y", ""},
		{"wrong arity low", "2", ""},
		{"wrong arity high", "1,2,3", ""},
		{"non-numeric rating", "", "four"},
		{"partial price range", "1,", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.priceRange, tc.rating)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidFilter) {
				t.Errorf("error %v does not wrap ErrInvalidFilter", err)
			}
		})
	}
}
