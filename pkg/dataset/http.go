package dataset

import (
	"bytes"
	"context"
	"net/http"

	"github.com/dashweave/dashweave/pkg/errors"
	"github.com/dashweave/dashweave/pkg/httputil"
)

// HTTPCSV is a Source backed by a CSV document fetched over HTTP(S).
//
// Responses are cached through the optional [httputil.Cache], keyed by URL
// under the "csv:" namespace, so repeated builds against an unchanged
// remote dataset skip the network entirely until the cache TTL lapses.
type HTTPCSV struct {
	DatasetName string
	URL         string

	// Cache holds fetched response bodies. Nil disables caching.
	Cache *httputil.Cache

	// Client is the HTTP client for fetches. Nil uses a default client
	// with a 30 second timeout.
	Client *http.Client
}

// Name returns the dataset name.
func (s *HTTPCSV) Name() string { return s.DatasetName }

// Origin returns the URL.
func (s *HTTPCSV) Origin() string { return s.URL }

// Load fetches the CSV document (or restores it from cache) and parses it.
func (s *HTTPCSV) Load(ctx context.Context) (*Dataset, error) {
	if err := errors.ValidateURL(s.URL); err != nil {
		return nil, err
	}

	body, hit := s.cached()
	if !hit {
		fetched, err := httputil.FetchBytes(ctx, s.Client, s.URL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "dataset %q: fetch %s", s.DatasetName, s.URL)
		}
		body = fetched
		if s.Cache != nil {
			_ = s.Cache.Namespace("csv:").Set(s.URL, body)
		}
	}

	return ReadCSV(bytes.NewReader(body), s.DatasetName)
}

func (s *HTTPCSV) cached() ([]byte, bool) {
	if s.Cache == nil {
		return nil, false
	}
	var body []byte
	ok, err := s.Cache.Namespace("csv:").Get(s.URL, &body)
	return body, ok && err == nil
}
