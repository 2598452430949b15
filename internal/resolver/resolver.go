// Package resolver talks to the upstream metadata API that maps a
// resource kind + slug to an on-disk path. This sits outside the
// transcoding core proper, but the service needs a real client to
// drive it (spec §1 lists path resolution as an external collaborator).
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NotFoundError means the upstream rejected the slug (spec §7: maps to
// an HTTP 404 at the boundary).
type NotFoundError struct {
	Resource, Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resolver: %s/%s not found", e.Resource, e.Slug)
}

// Resolver resolves {resource}/{slug} references to absolute file paths
// via the upstream metadata API.
type Resolver struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(baseURL, apiKey string) *Resolver {
	return &Resolver{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type pathResponse struct {
	Path string `json:"path"`
}

// Resolve fetches the path for {resource}/{slug}, sending the configured
// API key as X-API-KEY (spec §6).
func (r *Resolver) Resolve(ctx context.Context, resource, slug string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s", r.baseURL, resource, slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building resolver request: %w", err)
	}
	if r.apiKey != "" {
		req.Header.Set("X-API-KEY", r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolving %s/%s: %w", resource, slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", &NotFoundError{Resource: resource, Slug: slug}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resolver: %s/%s returned status %d", resource, slug, resp.StatusCode)
	}

	var body pathResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding resolver response: %w", err)
	}
	return body.Path, nil
}
