// Package cuisine converts image-classifier concepts into restaurant
// search tags.
package cuisine

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/dishcovery/internal/domain"
)

// Extractor applies the extraction policy to classifier concepts.
// Pure and safe for concurrent use.
type Extractor struct {
	minConfidence      float64
	fallbackConfidence float64
	excluded           map[string]struct{}
	allowed            map[string]struct{}
}

// NewExtractor creates an Extractor from the given rules. Empty rule
// fields fall back to DefaultRules.
func NewExtractor(r Rules) *Extractor {
	r = r.merged()
	return &Extractor{
		minConfidence:      r.MinConfidence,
		fallbackConfidence: r.FallbackConfidence,
		excluded:           toSet(r.Exclusions),
		allowed:            toSet(r.Cuisines),
	}
}

// Extract returns the search tags for a concept list: at most one tag.
//
// Primary pass: concepts above MinConfidence, minus excluded generic
// labels, kept only when allow-listed, highest confidence wins.
// Fallback: concepts above FallbackConfidence with no sets applied.
// An empty result means no searchable tag was found; callers surface a
// no-results outcome instead of querying with an undefined tag.
func (e *Extractor) Extract(concepts []domain.ConceptScore) []string {
	candidates := make([]domain.ConceptScore, 0, len(concepts))
	for _, c := range concepts {
		if c.Confidence <= e.minConfidence {
			continue
		}
		label := strings.ToLower(c.Label)
		if _, skip := e.excluded[label]; skip {
			continue
		}
		if _, ok := e.allowed[label]; !ok {
			continue
		}
		candidates = append(candidates, c)
	}

	if top, ok := topConfidence(candidates); ok {
		return []string{top.Label}
	}

	// Fallback: very confident generic dish, no exclusion or allow list.
	fallback := make([]domain.ConceptScore, 0, len(concepts))
	for _, c := range concepts {
		if c.Confidence > e.fallbackConfidence {
			fallback = append(fallback, c)
		}
	}
	if top, ok := topConfidence(fallback); ok {
		return []string{top.Label}
	}

	return nil
}

// topConfidence returns the highest-confidence concept. Ties keep
// input order (stable sort), so the first-listed concept wins.
func topConfidence(concepts []domain.ConceptScore) (domain.ConceptScore, bool) {
	if len(concepts) == 0 {
		return domain.ConceptScore{}, false
	}
	sorted := make([]domain.ConceptScore, len(concepts))
	copy(sorted, concepts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted[0], true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}
