// Package lookup aggregates external knowledge sources into ranked candidate
// definitions for an acronym, with a persistent response cache in front.
package lookup

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/acrodocs/acrodocs-backend/internal/domain"
	"github.com/acrodocs/acrodocs-backend/internal/extract"
	"github.com/acrodocs/acrodocs-backend/internal/provider"
)

const defaultLimit = 5

// Source is one external knowledge source. Implementations may fail
// transiently; the aggregator treats any error as "zero snippets" and moves
// on.
type Source interface {
	Name() string
	Query(ctx context.Context, term string, hints provider.Hints) ([]provider.Snippet, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) ([]domain.Candidate, error)
	Set(ctx context.Context, key string, candidates []domain.Candidate) error
}

// Query carries one aggregation request: the acronym, the surrounding
// document context, and the optional lookup hints.
type Query struct {
	Term    string
	Context string
	Limit   int
	Keyword string
	Lang    string
	Domain  string
	Strict  bool
}

// Service runs the sources in priority order, normalizes and rescores their
// snippets, and caches the ranked result.
type Service struct {
	sources []Source
	cache   cacheStore
	log     *slog.Logger
}

func New(cache cacheStore, sources []Source, logger *slog.Logger) *Service {
	return &Service{
		sources: sources,
		cache:   cache,
		log:     logger.With("service", "lookup"),
	}
}

// Lookup returns up to q.Limit ranked candidates for q.Term. It never
// fails: cache and source errors degrade to fewer (possibly zero)
// candidates.
func (s *Service) Lookup(ctx context.Context, q Query) []domain.Candidate {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	key := cacheKey(q)
	cached, err := s.cache.Get(ctx, key)
	switch {
	// An empty cached list is a miss: it may record a transient outage
	// rather than a genuinely unknown term.
	case err == nil && len(cached) > 0:
		return truncate(cached, limit)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		s.log.Warn("cache read failed", "key", key, "error", err)
	}

	hints := provider.Hints{Keyword: q.Keyword, Language: q.Lang, Domain: q.Domain}

	var out []domain.Candidate
	seen := make(map[string]struct{})
	for i, src := range s.sources {
		// The first source always runs; later ones only while short of the
		// limit.
		if i > 0 && len(out) >= limit {
			break
		}
		snippets, err := src.Query(ctx, q.Term, hints)
		if err != nil {
			s.log.Warn("source failed", "source", src.Name(), "term", q.Term, "error", err)
			continue
		}
		for _, snip := range snippets {
			def := normalizeDefinition(q.Term, snip.Title, snip.Text)
			if def == "" {
				continue
			}
			k := strings.ToLower(def) + "|" + snip.Source
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, domain.Candidate{
				Definition: def,
				Confidence: rescore(q.Term, def, q.Context, snip.BaseScore),
				Source:     domain.Source(snip.Source),
			})
		}
	}

	for i := range out {
		out[i].Confidence = boost(q.Term, out[i].Definition, out[i].Confidence)
	}

	if q.Strict {
		out = filterStrict(q.Term, out)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	out = truncate(out, limit)

	if len(out) > 0 {
		if err := s.cache.Set(ctx, key, out); err != nil {
			s.log.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return out
}

func cacheKey(q Query) string {
	parts := []string{q.Term, q.Keyword, q.Lang, q.Domain, strconv.FormatBool(q.Strict)}
	return strings.ToLower(strings.TrimSpace(strings.Join(parts, "|")))
}

func filterStrict(acr string, in []domain.Candidate) []domain.Candidate {
	out := in[:0]
	for _, c := range in {
		if extract.Initials(c.Definition) == acr {
			out = append(out, c)
		}
	}
	return out
}

func truncate(in []domain.Candidate, limit int) []domain.Candidate {
	if len(in) > limit {
		return in[:limit]
	}
	return in
}
