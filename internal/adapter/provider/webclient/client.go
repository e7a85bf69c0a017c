// Package webclient provides the shared HTTP client used by every
// knowledge-source adapter: JSON GET with a per-call timeout, a custom
// User-Agent, and bounded retries with exponential backoff and jitter on
// rate-limit and server errors.
package webclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultUserAgent = "acrodocs/1.0 (+https://github.com/acrodocs/acrodocs-backend)"

	maxAttempts     = 3
	initialInterval = 150 * time.Millisecond
	maxInterval     = 1500 * time.Millisecond
)

// ErrStatus is returned when a source answers with a non-retryable,
// non-200 status.
var ErrStatus = errors.New("unexpected status")

// Client is a retrying JSON HTTP client.
type Client struct {
	httpClient *http.Client
	userAgent  string
	log        *slog.Logger
}

// New creates a Client with the given per-call timeout.
func New(timeout time.Duration, userAgent string, logger *slog.Logger) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		log:        logger.With("adapter", "webclient"),
	}
}

// GetJSON issues a GET for rawURL with the given query parameters and
// decodes the JSON body into v. Up to three attempts are made; only HTTP
// 429 and 5xx responses (and transport errors) are retried, with
// exponential backoff and jitter between attempts. Any other non-200
// status fails immediately with ErrStatus.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error {
	reqURL := rawURL
	if len(params) > 0 {
		reqURL = rawURL + "?" + params.Encode()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialInterval
	bo.MaxInterval = maxInterval

	var body []byte
	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.WarnContext(ctx, "request failed",
				slog.String("url", rawURL),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			c.log.WarnContext(ctx, "retryable status",
				slog.String("url", rawURL),
				slog.Int("attempt", attempt),
				slog.Int("status", resp.StatusCode),
			)
			return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	retryPolicy := backoff.WithContext(backoff.WithMaxRetries(bo, maxAttempts-1), ctx)
	if err := backoff.Retry(op, retryPolicy); err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
