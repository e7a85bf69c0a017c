package lookup

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acrodocs/acrodocs-backend/internal/domain"
	"github.com/acrodocs/acrodocs-backend/internal/provider"
)

type stubCache struct {
	store  map[string][]domain.Candidate
	getErr error
	setErr error
}

func newStubCache() *stubCache {
	return &stubCache{store: make(map[string][]domain.Candidate)}
}

func (c *stubCache) Get(_ context.Context, key string) ([]domain.Candidate, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.store[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (c *stubCache) Set(_ context.Context, key string, candidates []domain.Candidate) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.store[key] = candidates
	return nil
}

type stubSource struct {
	name    string
	queryFn func(ctx context.Context, term string, hints provider.Hints) ([]provider.Snippet, error)
	calls   int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Query(ctx context.Context, term string, hints provider.Hints) ([]provider.Snippet, error) {
	s.calls++
	return s.queryFn(ctx, term, hints)
}

func gpsSnippet() []provider.Snippet {
	return []provider.Snippet{{
		Title:     "GPS",
		Text:      "GPS stands for Global Positioning System.",
		Source:    "web:en.wikipedia.org",
		BaseScore: 0.58,
	}}
}

func TestService_Lookup_CacheRoundTrip(t *testing.T) {
	t.Parallel()

	cache := newStubCache()
	src := &stubSource{
		name: "stub",
		queryFn: func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
			return gpsSnippet(), nil
		},
	}
	svc := New(cache, []Source{src}, slog.Default())

	q := Query{Term: "GPS", Limit: 5}
	first := svc.Lookup(context.Background(), q)
	second := svc.Lookup(context.Background(), q)

	require.Equal(t, first, second)
	assert.Equal(t, 1, src.calls, "second call must be served from cache")
	require.Len(t, first, 1)
	assert.Equal(t, "Global Positioning System", first[0].Definition)
	assert.Equal(t, domain.Source("web:en.wikipedia.org"), first[0].Source)
	assert.InDelta(t, 0.95, first[0].Confidence, 1e-9)
}

func TestService_Lookup_ShortCircuitsAfterLimit(t *testing.T) {
	t.Parallel()

	first := &stubSource{
		name: "first",
		queryFn: func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
			return gpsSnippet(), nil
		},
	}
	second := &stubSource{
		name: "second",
		queryFn: func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
			t.Fatal("second source must not be queried once the limit is met")
			return nil, nil
		},
	}
	svc := New(newStubCache(), []Source{first, second}, slog.Default())

	got := svc.Lookup(context.Background(), Query{Term: "GPS", Limit: 1})
	require.Len(t, got, 1)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestService_Lookup_SourceFailureDegrades(t *testing.T) {
	t.Parallel()

	failing := &stubSource{
		name: "failing",
		queryFn: func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
			return nil, errors.New("boom")
		},
	}
	working := &stubSource{
		name: "working",
		queryFn: func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
			return gpsSnippet(), nil
		},
	}
	svc := New(newStubCache(), []Source{failing, working}, slog.Default())

	got := svc.Lookup(context.Background(), Query{Term: "GPS"})
	require.Len(t, got, 1)
	assert.Equal(t, "Global Positioning System", got[0].Definition)
}

func TestService_Lookup_CacheFailureDegrades(t *testing.T) {
	t.Parallel()

	cache := newStubCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	src := &stubSource{
		name: "stub",
		queryFn: func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
			return gpsSnippet(), nil
		},
	}
	svc := New(cache, []Source{src}, slog.Default())

	got := svc.Lookup(context.Background(), Query{Term: "GPS"})
	require.Len(t, got, 1, "lookup must complete despite cache errors")
}

func TestService_Lookup_EmptyResultNotCached(t *testing.T) {
	t.Parallel()

	// The source is down for the first lookup and healthy afterwards. The
	// outage must not be pinned in the cache: the second lookup re-queries
	// and succeeds.
	cache := newStubCache()
	flaky := &stubSource{name: "flaky"}
	flaky.queryFn = func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
		if flaky.calls == 1 {
			return nil, errors.New("boom")
		}
		return gpsSnippet(), nil
	}
	svc := New(cache, []Source{flaky}, slog.Default())

	q := Query{Term: "GPS", Limit: 5}
	first := svc.Lookup(context.Background(), q)
	assert.Empty(t, first)
	assert.Empty(t, cache.store, "an empty result must not be written to the cache")

	second := svc.Lookup(context.Background(), q)
	require.Len(t, second, 1)
	assert.Equal(t, 2, flaky.calls, "recovered source must be re-queried")
}

func TestService_Lookup_EmptyCachedListIsMiss(t *testing.T) {
	t.Parallel()

	// Rows written before empty results were skipped may still hold empty
	// lists; they must be treated as misses, not hits.
	cache := newStubCache()
	src := &stubSource{
		name: "stub",
		queryFn: func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
			return gpsSnippet(), nil
		},
	}
	svc := New(cache, []Source{src}, slog.Default())

	q := Query{Term: "GPS", Limit: 5}
	cache.store[cacheKey(q)] = []domain.Candidate{}

	got := svc.Lookup(context.Background(), q)
	require.Len(t, got, 1)
	assert.Equal(t, 1, src.calls)
}

func TestService_Lookup_StrictFilter(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		name: "stub",
		queryFn: func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
			return []provider.Snippet{
				{Title: "GPS", Text: "GPS stands for Global Positioning System.", Source: "web:a.org", BaseScore: 0.5},
				{Title: "GPS", Text: "GPS stands for Extra Global Positioning System.", Source: "web:b.org", BaseScore: 0.5},
			}, nil
		},
	}
	svc := New(newStubCache(), []Source{src}, slog.Default())

	loose := svc.Lookup(context.Background(), Query{Term: "GPS"})
	require.Len(t, loose, 2)

	strict := svc.Lookup(context.Background(), Query{Term: "GPS", Strict: true})
	require.Len(t, strict, 1)
	assert.Equal(t, "Global Positioning System", strict[0].Definition)
}

func TestService_Lookup_RanksExactAbovePartial(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		name: "stub",
		queryFn: func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
			return []provider.Snippet{
				{Title: "GPS", Text: "GPS stands for Extra Global Positioning System.", Source: "web:b.org", BaseScore: 0.6},
				{Title: "GPS", Text: "GPS stands for Global Positioning System.", Source: "web:a.org", BaseScore: 0.5},
			}, nil
		},
	}
	svc := New(newStubCache(), []Source{src}, slog.Default())

	got := svc.Lookup(context.Background(), Query{Term: "GPS"})
	require.Len(t, got, 2)
	assert.Equal(t, "Global Positioning System", got[0].Definition)
	assert.Greater(t, got[0].Confidence, got[1].Confidence)
}

func TestService_Lookup_DropsUnusableSnippets(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		name: "stub",
		queryFn: func(context.Context, string, provider.Hints) ([]provider.Snippet, error) {
			return []provider.Snippet{
				{Title: "SAR", Text: "SAR may refer to: Synthetic Aperture Radar, Search and Rescue.", Source: "web:a.org", BaseScore: 0.5},
				{Title: "SAR", Text: "nothing relevant here at all", Source: "web:a.org", BaseScore: 0.5},
			}, nil
		},
	}
	svc := New(newStubCache(), []Source{src}, slog.Default())

	got := svc.Lookup(context.Background(), Query{Term: "SAR"})
	assert.Empty(t, got)
}

func TestCacheKey_FoldsCaseAndHints(t *testing.T) {
	t.Parallel()

	a := cacheKey(Query{Term: "GPS", Keyword: "Nav", Lang: "EN", Strict: true})
	b := cacheKey(Query{Term: "GPS", Keyword: "nav", Lang: "en", Strict: true})
	assert.Equal(t, a, b)

	c := cacheKey(Query{Term: "GPS", Keyword: "nav", Lang: "en", Strict: false})
	assert.NotEqual(t, a, c)
}
