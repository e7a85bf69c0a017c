// Package wikipedia adapts the Wikipedia action API and REST summary API as
// knowledge sources. It contributes three sources in the aggregator's
// priority order: title search, page summary, and open search.
package wikipedia

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/webclient"
	"github.com/acrodocs/acrodocs-backend/internal/provider"
)

const (
	defaultAPIPattern  = "https://%s.wikipedia.org/w/api.php"
	defaultRESTPattern = "https://%s.wikipedia.org/api/rest_v1/page/summary"

	titleBaseScore      = 0.55
	titleLooseBaseScore = 0.50
	summaryBaseScore    = 0.58
	openBaseScore       = 0.55
)

// Provider holds the pieces shared by the three Wikipedia sources.
type Provider struct {
	client  *webclient.Client
	apiURL  string // overrides defaultAPIPattern when non-empty (tests)
	restURL string // overrides defaultRESTPattern when non-empty (tests)
	log     *slog.Logger
}

// NewProvider creates a Provider against the public Wikipedia APIs.
func NewProvider(client *webclient.Client, logger *slog.Logger) *Provider {
	return &Provider{client: client, log: logger.With("adapter", "wikipedia")}
}

// NewProviderWithURLs creates a Provider with fixed endpoints (for testing).
func NewProviderWithURLs(apiURL, restURL string, client *webclient.Client, logger *slog.Logger) *Provider {
	return &Provider{client: client, apiURL: apiURL, restURL: restURL, log: logger.With("adapter", "wikipedia")}
}

func (p *Provider) apiEndpoint(lang string) string {
	if p.apiURL != "" {
		return p.apiURL
	}
	return fmt.Sprintf(defaultAPIPattern, lang)
}

func (p *Provider) restEndpoint(lang string) string {
	if p.restURL != "" {
		return p.restURL
	}
	return fmt.Sprintf(defaultRESTPattern, lang)
}

func (p *Provider) sourceTag(lang string) string {
	return "web:" + lang + ".wikipedia.org"
}

// opensearch calls action=opensearch and returns parallel title/description
// slices.
func (p *Provider) opensearch(ctx context.Context, lang, query string, limit int) ([]string, []string, error) {
	params := url.Values{
		"action":    {"opensearch"},
		"format":    {"json"},
		"namespace": {"0"},
		"limit":     {fmt.Sprint(limit)},
		"search":    {query},
	}

	// Response shape: [query, [titles...], [descriptions...], [links...]].
	var raw []jsonArray
	if err := p.client.GetJSON(ctx, p.apiEndpoint(lang), params, &raw); err != nil {
		return nil, nil, fmt.Errorf("wikipedia opensearch: %w", err)
	}
	if len(raw) < 3 {
		return nil, nil, nil
	}
	return raw[1].strings, raw[2].strings, nil
}

// TitleSearch is the highest-priority encyclopedia source: an opensearch
// biased with the word "acronym", mining result titles.
type TitleSearch struct{ p *Provider }

// NewTitleSearch creates the title-search source.
func NewTitleSearch(p *Provider) *TitleSearch { return &TitleSearch{p: p} }

func (s *TitleSearch) Name() string { return "wikipedia-title" }

// Query searches for pages titled after the acronym and returns their
// titles as snippets; titles containing the acronym itself rank slightly
// higher than loose matches.
func (s *TitleSearch) Query(ctx context.Context, term string, hints provider.Hints) ([]provider.Snippet, error) {
	lang := hints.Lang()
	titles, descs, err := s.p.opensearch(ctx, lang, hints.Query(term)+" acronym", 5)
	if err != nil {
		return nil, err
	}

	var out []provider.Snippet
	for i, title := range titles {
		if title == "" || len(title) > 120 {
			continue
		}
		base := titleLooseBaseScore
		if strings.Contains(strings.ToUpper(title), strings.ToUpper(term)) {
			base = titleBaseScore
		}
		text := title
		if i < len(descs) && descs[i] != "" {
			text = descs[i]
		}
		out = append(out, provider.Snippet{
			Title:     title,
			Text:      text,
			Source:    s.p.sourceTag(lang),
			BaseScore: base,
		})
	}
	return out, nil
}

// Summary is the page-summary source: the REST summary of the page named
// exactly after the acronym (optionally disambiguated by the keyword hint).
type Summary struct{ p *Provider }

// NewSummary creates the page-summary source.
func NewSummary(p *Provider) *Summary { return &Summary{p: p} }

func (s *Summary) Name() string { return "wikipedia-summary" }

type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	Description string `json:"description"`
}

func (s *Summary) Query(ctx context.Context, term string, hints provider.Hints) ([]provider.Snippet, error) {
	lang := hints.Lang()
	page := term
	if hints.Keyword != "" {
		page = fmt.Sprintf("%s (%s)", term, hints.Keyword)
	}

	var resp summaryResponse
	endpoint := s.p.restEndpoint(lang) + "/" + url.PathEscape(page)
	if err := s.p.client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("wikipedia summary: %w", err)
	}

	text := strings.TrimSpace(resp.Extract)
	if text == "" {
		text = strings.TrimSpace(resp.Description)
	}
	if text == "" {
		return nil, nil
	}
	// Keep the first sentence only; summaries run long.
	if idx := strings.Index(text, ". "); idx > 0 {
		text = text[:idx]
	}

	return []provider.Snippet{{
		Title:     resp.Title,
		Text:      text,
		Source:    s.p.sourceTag(lang),
		BaseScore: summaryBaseScore,
	}}, nil
}

// OpenSearch is the loose encyclopedia source: a plain opensearch on the
// bare term, mining descriptions.
type OpenSearch struct{ p *Provider }

// NewOpenSearch creates the open-search source.
func NewOpenSearch(p *Provider) *OpenSearch { return &OpenSearch{p: p} }

func (s *OpenSearch) Name() string { return "wikipedia-open" }

func (s *OpenSearch) Query(ctx context.Context, term string, hints provider.Hints) ([]provider.Snippet, error) {
	lang := hints.Lang()
	titles, descs, err := s.p.opensearch(ctx, lang, hints.Query(term), 6)
	if err != nil {
		return nil, err
	}

	var out []provider.Snippet
	for i, title := range titles {
		text := ""
		if i < len(descs) {
			text = strings.TrimSpace(descs[i])
		}
		if text == "" {
			text = strings.TrimSpace(title)
		}
		if text == "" {
			continue
		}
		out = append(out, provider.Snippet{
			Title:     title,
			Text:      text,
			Source:    s.p.sourceTag(lang),
			BaseScore: openBaseScore,
		})
	}
	return out, nil
}
