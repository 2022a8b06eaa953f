// Package predicate models the single query predicate evaluated by the
// restaurant store: filter constraints AND a disjunction of per-tag
// cuisine (and optionally name) matches.
//
// Text search and image search both build their predicates here; the
// single user-entered cuisine string is treated as a one-tag list.
// Translation into a concrete store query happens in internal/db.
package predicate

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/dishcovery/internal/domain"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/filter"
)

// MaxTags bounds the tag disjunction to keep store queries sane.
const MaxTags = 16

// Predicate is an immutable, request-scoped query predicate.
type Predicate struct {
	tags       []string
	spec       filter.Spec
	matchNames bool
}

// Option customizes predicate construction.
type Option func(*Predicate)

// MatchNames extends each tag clause to also match the restaurant name
// field. Image search uses this fan-out; text search matches the
// cuisine field only.
func MatchNames() Option {
	return func(p *Predicate) { p.matchNames = true }
}

// Build combines cuisine tags and a filter spec into a Predicate.
// Blank tags are dropped; an effectively empty tag list fails with an
// error wrapping domain.ErrNoSearchTags so callers can short-circuit
// to a no-results response instead of querying with a vacuous match.
func Build(tags []string, spec filter.Spec, opts ...Option) (Predicate, error) {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return Predicate{}, domain.ErrNoSearchTags
	}
	if len(cleaned) > MaxTags {
		return Predicate{}, fmt.Errorf("too many search tags (max %d)", MaxTags)
	}

	p := Predicate{tags: cleaned, spec: spec}
	for _, o := range opts {
		o(&p)
	}
	return p, nil
}

// Tags returns the cuisine tags of the disjunction.
func (p Predicate) Tags() []string { return p.tags }

// Filter returns the filter constraints.
func (p Predicate) Filter() filter.Spec { return p.spec }

// MatchesNames reports whether tag clauses also match the name field.
func (p Predicate) MatchesNames() bool { return p.matchNames }
