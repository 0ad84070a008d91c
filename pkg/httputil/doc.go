// Package httputil provides HTTP utilities for remote dataset sources.
//
// # Overview
//
// This package provides infrastructure used when datasets are loaded over
// the network:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//   - [FetchBytes]: GET with retry, instrumented via observability hooks
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/dashweave/)
// with configurable TTL. This dramatically speeds up repeated builds and
// avoids refetching unchanged remote datasets.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24 * time.Hour)
//	data, ok := cache.Get("csv:survey")   // Check cache
//	if !ok {
//	    data = fetchFromSource()
//	    cache.Set("csv:survey", data)     // Store for later
//	}
//
// Cache keys should be namespaced by source type to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff to avoid thundering herd:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetch(url)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/dashweave/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `dashweave cache clear` or by deleting
// the cache directory.
package httputil
