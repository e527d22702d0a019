package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrStore wraps failures reported by the document store.
var ErrStore = errors.New("content: store query failed")

// Store runs a query with $-parameters and decodes the result into out.
type Store interface {
	Query(ctx context.Context, query string, params map[string]any, out any) error
}

// SanityConfig addresses a hosted dataset.
type SanityConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	Token      string
	// BaseURL overrides the computed API host, mainly for tests.
	BaseURL string
}

// Defaults for SanityConfig.
const (
	DefaultProjectID  = "8sg3qh88"
	DefaultDataset    = "production"
	DefaultAPIVersion = "2024-01-01"
)

// SanityStore queries the hosted store over its HTTP query API.
type SanityStore struct {
	cfg  SanityConfig
	http *http.Client
}

// NewSanityStore returns a store for cfg. An empty dataset or API version
// falls back to the defaults.
func NewSanityStore(cfg SanityConfig, client *http.Client) *SanityStore {
	if cfg.Dataset == "" {
		cfg.Dataset = DefaultDataset
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SanityStore{cfg: cfg, http: client}
}

// Endpoint returns the query URL for the configured dataset.
func (s *SanityStore) Endpoint() string {
	base := s.cfg.BaseURL
	if base == "" {
		host := "api.sanity.io"
		if s.cfg.UseCDN {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", s.cfg.ProjectID, host)
	}
	version := strings.TrimPrefix(s.cfg.APIVersion, "v")
	return fmt.Sprintf("%s/v%s/data/query/%s", strings.TrimRight(base, "/"), version, url.PathEscape(s.cfg.Dataset))
}

// Query implements Store.
func (s *SanityStore) Query(ctx context.Context, query string, params map[string]any, out any) error {
	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("content: encode param %s: %w", name, err)
		}
		values.Set("$"+strings.TrimPrefix(name, "$"), string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint()+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("content: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrStore, err)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Description string `json:"description"`
			Type        string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: status %d: decode response: %v", ErrStore, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || envelope.Error != nil {
		msg := http.StatusText(resp.StatusCode)
		if envelope.Error != nil && envelope.Error.Description != "" {
			msg = envelope.Error.Description
		}
		return fmt.Errorf("%w: status %d: %s", ErrStore, resp.StatusCode, msg)
	}
	if len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("content: decode result: %w", err)
	}
	return nil
}
