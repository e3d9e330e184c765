package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"chartdeck/internal/dashboard"
	"chartdeck/internal/models"
	"chartdeck/internal/server"
)

// apiError mirrors the server's JSON error body
type apiError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// ExportResult is the reply to an export request
type ExportResult struct {
	ID          string             `json:"id"`
	Path        string             `json:"path"`
	URL         string             `json:"url"`
	GeneratedAt string             `json:"generatedAt"`
	Charts      []models.ChartKind `json:"charts"`
}

// FilterUpdate is a partial filter change; nil fields are left alone
type FilterUpdate struct {
	TimeRange *string `json:"timeRange,omitempty"`
	Category  *string `json:"category,omitempty"`
	Region    *string `json:"region,omitempty"`
}

// Client talks to the dashboard service over HTTP
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// check turns transport failures and non-2xx replies into errors
func check(resp *resty.Response, err error, what string) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	if resp.IsError() {
		if e, ok := resp.Error().(*apiError); ok && e.Error != "" {
			return fmt.Errorf("failed to %s: server returned %d: %s", what, resp.StatusCode(), e.Error)
		}
		return fmt.Errorf("failed to %s: server returned %d", what, resp.StatusCode())
	}
	return nil
}

// State fetches the current dashboard selection
func (c *Client) State(ctx context.Context) (*server.State, error) {
	var st server.State
	resp, err := c.http.R().SetContext(ctx).SetResult(&st).SetError(&apiError{}).Get("/api/state")
	if err := check(resp, err, "get state"); err != nil {
		return nil, err
	}
	return &st, nil
}

// Chart fetches the raw payload for kind under the active backend
func (c *Client) Chart(ctx context.Context, kind string) (json.RawMessage, string, error) {
	resp, err := c.http.R().SetContext(ctx).SetError(&apiError{}).
		SetPathParam("kind", kind).
		Get("/api/charts/{kind}")
	if err := check(resp, err, "get chart"); err != nil {
		return nil, "", err
	}
	return json.RawMessage(resp.Body()), resp.Header().Get("X-Chart-Backend"), nil
}

// SetFilters applies a partial filter update
func (c *Client) SetFilters(ctx context.Context, update FilterUpdate) (*server.State, error) {
	var st server.State
	resp, err := c.http.R().SetContext(ctx).SetBody(update).SetResult(&st).SetError(&apiError{}).Put("/api/filters")
	if err := check(resp, err, "set filters"); err != nil {
		return nil, err
	}
	return &st, nil
}

// ResetFilters restores the service's default filters
func (c *Client) ResetFilters(ctx context.Context) (*server.State, error) {
	var st server.State
	resp, err := c.http.R().SetContext(ctx).SetResult(&st).SetError(&apiError{}).Post("/api/filters/reset")
	if err := check(resp, err, "reset filters"); err != nil {
		return nil, err
	}
	return &st, nil
}

// SetBackend switches the rendering backend
func (c *Client) SetBackend(ctx context.Context, backend string) (*server.State, error) {
	var st server.State
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"backend": backend}).
		SetResult(&st).SetError(&apiError{}).
		Put("/api/backend")
	if err := check(resp, err, "set backend"); err != nil {
		return nil, err
	}
	return &st, nil
}

// ToggleTheme flips the persisted theme and returns the new value
func (c *Client) ToggleTheme(ctx context.Context) (models.Theme, error) {
	var t models.Theme
	resp, err := c.http.R().SetContext(ctx).SetResult(&t).SetError(&apiError{}).Post("/api/theme/toggle")
	if err := check(resp, err, "toggle theme"); err != nil {
		return models.Theme{}, err
	}
	return t, nil
}

// ClearCache drops every cached payload on the server
func (c *Client) ClearCache(ctx context.Context) (dashboard.Stats, error) {
	var stats dashboard.Stats
	resp, err := c.http.R().SetContext(ctx).SetResult(&stats).SetError(&apiError{}).Post("/api/cache/clear")
	if err := check(resp, err, "clear cache"); err != nil {
		return dashboard.Stats{}, err
	}
	return stats, nil
}

// Snapshot downloads the PNG rendering of kind
func (c *Client) Snapshot(ctx context.Context, kind string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).SetError(&apiError{}).
		SetHeader("Accept", "image/png").
		SetPathParam("file", kind+".png").
		Get("/api/snapshots/{file}")
	if err := check(resp, err, "get snapshot"); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// Export asks the server to render and store a static export
func (c *Client) Export(ctx context.Context) (*ExportResult, error) {
	var res ExportResult
	resp, err := c.http.R().SetContext(ctx).SetResult(&res).SetError(&apiError{}).Post("/api/exports")
	if err := check(resp, err, "create export"); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListExports returns the ids of stored exports
func (c *Client) ListExports(ctx context.Context) ([]string, error) {
	var res struct {
		Exports []string `json:"exports"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&res).SetError(&apiError{}).Get("/api/exports")
	if err := check(resp, err, "list exports"); err != nil {
		return nil, err
	}
	return res.Exports, nil
}
