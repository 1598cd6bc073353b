// Package legacy implements the Legacy-Source Adapter (spec.md §4.7): a
// read-through fallback consulted on a GET miss against the owner's Local
// Store and Durable-Store Adapter. It never accepts writes.
package legacy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Source fetches a value from the legacy HTTP API. A 404 is a plain miss,
// matching the legacy system's own "404 means absent" contract; a transport
// error or any other non-200 status is also reported as not found, together
// with an error describing the failure.
type Source struct {
	baseURL string
	client  *http.Client
}

// New returns a Source that queries baseURL + "/legacy/data/{key}".
func New(baseURL string, client *http.Client) *Source {
	if client == nil {
		client = http.DefaultClient
	}
	return &Source{baseURL: baseURL, client: client}
}

type legacyResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Fetch looks up key in the legacy system, bounded by ctx's deadline.
// Returns (value, true, nil) on a hit, (nil, false, nil) on a 404 miss, and
// (nil, false, err) for a transport failure, a status other than 200 or 404,
// or an undecodable response body.
func (s *Source) Fetch(ctx context.Context, key string) ([]byte, bool, error) {
	reqURL := fmt.Sprintf("%s/legacy/data/%s", s.baseURL, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("legacy: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("legacy: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("legacy: unexpected status %d", resp.StatusCode)
	}

	var body legacyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("legacy: decode response: %w", err)
	}
	return []byte(body.Value), true, nil
}
