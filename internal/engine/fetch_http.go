package engine

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// ErrRateLimited is returned when a remote host keeps answering 429.
var ErrRateLimited = errors.New("rate limited")

// newFetchClient creates an HTTP client with proper settings for page fetches.
// The per-request deadline comes from the caller's context.
func newFetchClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
			DisableCompression:  false,
			TLSHandshakeTimeout: 5 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			return nil
		},
	}
}

// FetchHTMLWithin GETs a page and returns at most MaxBodyBytes of its body.
// The whole call, retries included, is bounded by timeout.
func FetchHTMLWithin(ctx context.Context, fetchURL string, timeout time.Duration) ([]byte, error) {
	return fetchBody(ctx, fetchURL, timeout, true)
}

// FetchJSON GETs url within timeout and decodes the JSON body into v.
func FetchJSON(ctx context.Context, fetchURL string, timeout time.Duration, v any) error {
	body, err := fetchBody(ctx, fetchURL, timeout, false)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		metrics.FetchErrors.Add(1)
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

func fetchBody(ctx context.Context, fetchURL string, timeout time.Duration, isHTML bool) (body []byte, err error) {
	metrics.FetchRequests.Add(1)
	defer func() {
		if err != nil {
			metrics.FetchErrors.Add(1)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := fetchWithRetry(ctx, fetchURL, isHTML, timeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return readResponseBody(resp, cfg.MaxBodyBytes)
}

// fetchWithRetry performs an HTTP GET with retry logic using exponential backoff.
// isHTML controls Accept headers: HTML for web pages, JSON otherwise.
// Only 5xx answers are retried; a 429 degrades the caller to its fallback.
func fetchWithRetry(ctx context.Context, fetchURL string, isHTML bool, maxElapsed time.Duration) (*http.Response, error) {
	client := cfg.HTTPClient

	operation := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		req.Header.Set("User-Agent", RandomUserAgent())

		if isHTML {
			req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
			req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		} else {
			req.Header.Set("Accept", "application/json,*/*;q=0.9")
		}

		req.Header.Set("Accept-Encoding", "gzip, deflate")

		resp, err := client.Do(req)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			return nil, backoff.Permanent(fmt.Errorf("status %d: %w", resp.StatusCode, ErrRateLimited))
		}

		if IsRetryableStatus(resp.StatusCode) {
			resp.Body.Close()
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}

		return resp, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 2 * time.Second

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(cfg.FetchRetries)),
		backoff.WithMaxElapsedTime(maxElapsed),
	)
}

// readResponseBody reads up to limit bytes of the response body, handling gzip.
func readResponseBody(resp *http.Response, limit int64) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	if limit > 0 {
		r = io.LimitReader(r, limit)
	}
	return io.ReadAll(r)
}
