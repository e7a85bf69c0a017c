// Package wikidata adapts the Wikidata entity search API as a structured
// knowledge source. Entity labels and descriptions often spell out what an
// abbreviation stands for.
package wikidata

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
	defaultAPIURL = "https://www.wikidata.org/w/api.php"

	baseScore = 0.50
)

type Provider struct {
	client *webclient.Client
	apiURL string
	log    *slog.Logger
}

// NewProvider creates a Provider against the public Wikidata API.
func NewProvider(client *webclient.Client, logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultAPIURL, client, logger)
}

// NewProviderWithURL creates a Provider with a fixed endpoint (for testing).
func NewProviderWithURL(apiURL string, client *webclient.Client, logger *slog.Logger) *Provider {
	return &Provider{client: client, apiURL: apiURL, log: logger.With("adapter", "wikidata")}
}

func (p *Provider) Name() string { return "wikidata" }

type searchResponse struct {
	Search []struct {
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"search"`
}

func (p *Provider) Query(ctx context.Context, term string, hints provider.Hints) ([]provider.Snippet, error) {
	params := url.Values{
		"action":   {"wbsearchentities"},
		"format":   {"json"},
		"type":     {"item"},
		"limit":    {"5"},
		"language": {hints.Lang()},
		"search":   {term},
	}

	var resp searchResponse
	if err := p.client.GetJSON(ctx, p.apiURL, params, &resp); err != nil {
		return nil, fmt.Errorf("wikidata search: %w", err)
	}

	var out []provider.Snippet
	for _, hit := range resp.Search {
		text := strings.TrimSpace(hit.Label)
		// A label identical to the acronym carries no expansion; fall back
		// to the description, which may spell it out.
		if strings.EqualFold(text, term) || !strings.Contains(text, " ") {
			text = strings.TrimSpace(hit.Description)
		}
		if text == "" {
			continue
		}
		out = append(out, provider.Snippet{
			Title:     hit.Label,
			Text:      text,
			Source:    "web:wikidata.org",
			BaseScore: baseScore,
		})
	}
	return out, nil
}
