// Package duckduckgo adapts the DuckDuckGo Instant Answer API as a
// general-web knowledge source.
package duckduckgo

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
	defaultAPIURL = "https://api.duckduckgo.com/"

	abstractBaseScore = 0.50
	relatedBaseScore  = 0.48
	maxRelated        = 3
)

type Provider struct {
	client *webclient.Client
	apiURL string
	log    *slog.Logger
}

// NewProvider creates a Provider against the public Instant Answer API.
func NewProvider(client *webclient.Client, logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultAPIURL, client, logger)
}

// NewProviderWithURL creates a Provider with a fixed endpoint (for testing).
func NewProviderWithURL(apiURL string, client *webclient.Client, logger *slog.Logger) *Provider {
	return &Provider{client: client, apiURL: apiURL, log: logger.With("adapter", "duckduckgo")}
}

func (p *Provider) Name() string { return "duckduckgo" }

type answerResponse struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

func (p *Provider) Query(ctx context.Context, term string, hints provider.Hints) ([]provider.Snippet, error) {
	params := url.Values{
		"q":             {hints.Query(term) + " stands for"},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
		"no_redirect":   {"1"},
	}

	var resp answerResponse
	if err := p.client.GetJSON(ctx, p.apiURL, params, &resp); err != nil {
		return nil, fmt.Errorf("duckduckgo answer: %w", err)
	}

	var out []provider.Snippet
	if abstract := strings.TrimSpace(resp.AbstractText); abstract != "" {
		if idx := strings.Index(abstract, ". "); idx > 0 {
			abstract = abstract[:idx]
		}
		out = append(out, provider.Snippet{
			Title:     resp.Heading,
			Text:      abstract,
			Source:    "web:duckduckgo.com",
			BaseScore: abstractBaseScore,
		})
	}

	upper := strings.ToUpper(term)
	for _, topic := range resp.RelatedTopics {
		if len(out) >= 1+maxRelated {
			break
		}
		text := strings.TrimSpace(topic.Text)
		if text == "" || !strings.Contains(strings.ToUpper(text), upper) {
			continue
		}
		out = append(out, provider.Snippet{
			Title:     resp.Heading,
			Text:      text,
			Source:    "web:duckduckgo.com",
			BaseScore: relatedBaseScore,
		})
	}
	return out, nil
}
