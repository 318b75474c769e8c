// Package quote looks up instrument names and prices from a remote quote
// service, falling back to a static table of well known tickers.
package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"go.uber.org/zap"
)

// Fetcher returns the full body of a GET on url.
type Fetcher interface {
	FetchRaw(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (string, error)

func (f FetcherFunc) FetchRaw(ctx context.Context, url string) (string, error) { return f(ctx, url) }

// RetryConfig controls the exponential backoff of HTTPFetcher.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

var DefaultRetry = RetryConfig{
	MaxAttempts: 3,
	BaseDelay:   1 * time.Second,
	MaxDelay:    10 * time.Second,
}

// HTTPFetcher is a Fetcher over HTTP. Transport errors and 5xx responses are
// retried, other non 200 responses fail immediately.
type HTTPFetcher struct {
	Client *http.Client
	Retry  RetryConfig
	Logger *zap.Logger
}

// NewHTTPFetcher returns a fetcher with the default retry policy.
// A nil transport means http.DefaultTransport.
func NewHTTPFetcher(timeout time.Duration, transport http.RoundTripper, logger *zap.Logger) *HTTPFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPFetcher{
		Client: &http.Client{Timeout: timeout, Transport: transport},
		Retry:  DefaultRetry,
		Logger: logger,
	}
}

func (f *HTTPFetcher) FetchRaw(ctx context.Context, url string) (string, error) {
	cfg := f.Retry
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultRetry.MaxAttempts
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var lastErr error
	delay := cfg.BaseDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		body, retry, err := get(ctx, client, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || attempt == cfg.MaxAttempts {
			break
		}

		logger.Warn("fetch failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.MaxAttempts),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return "", fmt.Errorf("cannot http GET %s: %w", redact(url), lastErr)
}

// get performs a single attempt. retry reports whether a failure may be transient.
func get(ctx context.Context, client *http.Client, url string) (body string, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", resp.StatusCode >= 500, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("read body: %w", err)
	}
	return string(data), false, nil
}

// redact hides the api key of addr, it is meant for error messages and logs.
func redact(addr string) string {
	u, err := neturl.Parse(addr)
	if err != nil {
		return addr
	}
	q := u.Query()
	if q.Has("apikey") {
		q.Set("apikey", "xxx")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
