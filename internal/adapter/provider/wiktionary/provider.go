// Package wiktionary adapts the Wiktionary opensearch API as a dictionary
// knowledge source.
package wiktionary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/webclient"
	"github.com/acrodocs/acrodocs-backend/internal/provider"
)

const (
	defaultAPIPattern = "https://%s.wiktionary.org/w/api.php"

	baseScore = 0.45
)

// Provider queries Wiktionary for entry titles matching a term. Wiktionary
// entries rarely expand acronyms in their titles, so this source carries a
// low base score and relies on the aggregator's rescoring.
type Provider struct {
	client *webclient.Client
	apiURL string // overrides defaultAPIPattern when non-empty (tests)
	log    *slog.Logger
}

// NewProvider creates a Provider against the public Wiktionary API.
func NewProvider(client *webclient.Client, logger *slog.Logger) *Provider {
	return &Provider{client: client, log: logger.With("adapter", "wiktionary")}
}

// NewProviderWithURL creates a Provider with a fixed endpoint (for testing).
func NewProviderWithURL(apiURL string, client *webclient.Client, logger *slog.Logger) *Provider {
	return &Provider{client: client, apiURL: apiURL, log: logger.With("adapter", "wiktionary")}
}

func (p *Provider) Name() string { return "wiktionary" }

func (p *Provider) Query(ctx context.Context, term string, hints provider.Hints) ([]provider.Snippet, error) {
	lang := hints.Lang()
	endpoint := p.apiURL
	if endpoint == "" {
		endpoint = fmt.Sprintf(defaultAPIPattern, lang)
	}

	params := url.Values{
		"action": {"opensearch"},
		"format": {"json"},
		"limit":  {"4"},
		"search": {term},
	}

	var raw []json.RawMessage
	if err := p.client.GetJSON(ctx, endpoint, params, &raw); err != nil {
		return nil, fmt.Errorf("wiktionary opensearch: %w", err)
	}
	if len(raw) < 2 {
		return nil, nil
	}
	var titles []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, fmt.Errorf("wiktionary opensearch: decode titles: %w", err)
	}

	var out []provider.Snippet
	for _, title := range titles {
		title = strings.TrimSpace(title)
		// The bare entry repeats the acronym; only multi-word titles can
		// carry an expansion.
		if title == "" || strings.EqualFold(title, term) || !strings.Contains(title, " ") {
			continue
		}
		out = append(out, provider.Snippet{
			Title:     title,
			Text:      title,
			Source:    "web:" + lang + ".wiktionary.org",
			BaseScore: baseScore,
		})
	}
	return out, nil
}
