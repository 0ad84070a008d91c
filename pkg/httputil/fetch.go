package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dashweave/dashweave/pkg/observability"
)

// DefaultTimeout is the per-request timeout used by [FetchBytes] when the
// caller does not supply a client.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps response bodies at 100 MiB to guard against runaway
// downloads from misconfigured dataset URLs.
const maxBodySize = 100 << 20

// FetchBytes performs a GET request and returns the response body.
//
// Transient failures (network errors, 5xx responses, 429 rate limits) are
// retried with exponential backoff; 4xx responses fail immediately. The
// registered [observability.HTTPHooks] receive request, response, and error
// events for every attempt.
//
// If client is nil, a client with [DefaultTimeout] is used.
func FetchBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		data, err := fetchOnce(ctx, client, url)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	return body, err
}

func fetchOnce(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RetryableError{Err: fmt.Errorf("GET %s: status %d", url, resp.StatusCode)}
	default:
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
}
