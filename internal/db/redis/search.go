package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/dishcovery/internal/db"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/predicate"
)

// SearchPredicate runs a predicate query via FT.SEARCH with LIMIT paging.
func (s *Store) SearchPredicate(ctx context.Context, q *db.PredicateQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit < 0 || q.Offset < 0 {
		return nil, fmt.Errorf("offset and limit must be non-negative")
	}

	queryStr := BuildQuery(q.Predicate)
	args := []string{q.IndexName, queryStr}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseSearchResult(raw)
}

// CountPredicate returns the match count via FT.SEARCH with LIMIT 0 0.
func (s *Store) CountPredicate(ctx context.Context, index string, p predicate.Predicate) (int, error) {
	queryStr := BuildQuery(p)
	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(index, queryStr, "LIMIT", "0", "0", "DIALECT", "2").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// SearchTagExact finds documents whose TAG field equals value.
func (s *Store) SearchTagExact(
	ctx context.Context, index, field, value string, limit int, returnFields []string,
) (*db.SearchResult, error) {
	if limit <= 0 {
		limit = 1
	}
	queryStr := fmt.Sprintf("@%s:{%s}", field, tagEscaper.Replace(value))

	args := []string{index, queryStr}
	if len(returnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(returnFields)))
		args = append(args, returnFields...)
	}
	args = append(args, "LIMIT", "0", strconv.Itoa(limit), "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseSearchResult(raw)
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

// --- Result parsing ---

func parseSearchResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{Total: 0}, nil
	}

	entries := make([]db.SearchEntry, 0, len(raw)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query building ---

// BuildQuery translates a predicate into an FT.SEARCH query string:
// the filter constraints ANDed with a disjunction of per-tag wildcard
// clauses. TEXT matching in RediSearch is case-insensitive, which
// gives the required case-insensitive partial match.
func BuildQuery(p predicate.Predicate) string {
	var parts []string

	spec := p.Filter()
	if spec.PriceMin() != nil || spec.PriceMax() != nil {
		minBound := "-inf"
		if spec.PriceMin() != nil {
			minBound = strconv.Itoa(*spec.PriceMin())
		}
		maxBound := "+inf"
		if spec.PriceMax() != nil {
			maxBound = strconv.Itoa(*spec.PriceMax())
		}
		parts = append(parts, numericRange("price_range", minBound, maxBound))
	}
	if spec.MinRating() != nil {
		parts = append(parts, numericRange("rating", fmt.Sprintf("%g", *spec.MinRating()), "+inf"))
	}

	if group := buildTagGroup(p.Tags(), p.MatchesNames()); group != "" {
		parts = append(parts, group)
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

// buildTagGroup produces the OR group of wildcard clauses for all tags.
func buildTagGroup(tags []string, matchNames bool) string {
	clauses := make([]string, 0, len(tags)*2)
	for _, tag := range tags {
		term := sanitizeTerm(tag)
		if term == "" {
			continue
		}
		clauses = append(clauses, wildcardClause("cuisines", term))
		if matchNames {
			clauses = append(clauses, wildcardClause("name", term))
		}
	}
	if len(clauses) == 0 {
		return ""
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "(" + strings.Join(clauses, " | ") + ")"
}

// wildcardClause builds an infix wildcard match: @field:(w'*term*').
// The TEXT tokenizer splits indexed values on whitespace, so a wildcard
// pattern containing a space can never match a dictionary term; a
// multi-word term therefore becomes one wildcard token per word inside
// the clause ("north indian" → @cuisines:(w'*north*' w'*indian*')).
func wildcardClause(field, term string) string {
	words := strings.Fields(term)
	patterns := make([]string, len(words))
	for i, word := range words {
		patterns[i] = fmt.Sprintf("w'*%s*'", word)
	}
	return fmt.Sprintf("@%s:(%s)", field, strings.Join(patterns, " "))
}

// sanitizeTerm strips characters that carry syntax inside a wildcard
// token, keeping letters, digits, spaces and hyphens.
func sanitizeTerm(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlpha || r == ' ' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func numericRange(field, minBound, maxBound string) string {
	return fmt.Sprintf("@%s:[%s %s]", field, minBound, maxBound)
}
