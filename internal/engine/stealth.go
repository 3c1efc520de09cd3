package engine

import (
	"context"
	"fmt"
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Re-export stealth types and functions for engine consumers.
type BrowserClient = stealth.BrowserClient

func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }
func RandomUserAgent() string          { return stealth.RandomUserAgent() }
func IsRetryableStatus(code int) bool  { return stealth.IsRetryableStatus(code) }

// BrowserGet fetches a page through the Chrome-fingerprinted client.
// It returns when ctx is done even if the request is still in flight.
// Non-200 answers are errors; 429 wraps ErrRateLimited.
func BrowserGet(ctx context.Context, bc *BrowserClient, pageURL string) ([]byte, error) {
	metrics.FetchRequests.Add(1)

	type result struct {
		body   []byte
		status int
		err    error
	}
	done := make(chan result, 1)
	go func() {
		body, _, status, err := bc.Do(http.MethodGet, pageURL, ChromeHeaders(), nil)
		done <- result{body, status, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		metrics.FetchErrors.Add(1)
		return nil, ctx.Err()
	case res = <-done:
	}

	switch {
	case res.err != nil:
		metrics.FetchErrors.Add(1)
		return nil, res.err
	case res.status == http.StatusTooManyRequests:
		metrics.FetchErrors.Add(1)
		return nil, fmt.Errorf("status %d: %w", res.status, ErrRateLimited)
	case res.status != http.StatusOK:
		metrics.FetchErrors.Add(1)
		return nil, fmt.Errorf("status %d", res.status)
	}
	body := res.body
	if int64(len(body)) > cfg.MaxBodyBytes {
		body = body[:cfg.MaxBodyBytes]
	}
	return body, nil
}
