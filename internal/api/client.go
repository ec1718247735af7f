// Package api is the request/response client for the classroom backend.
// Everything here is plain bearer-token HTTP; the live-session channel is
// a separate concern.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/edufocus/liveclass/internal/models"
)

// Define errors
var (
	// ErrUnauthorized means the token was rejected; the configured
	// unauthorized hook has already been invoked
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the requested resource does not exist
	ErrNotFound = errors.New("resource not found")
)

// Config holds configuration for the API client
type Config struct {
	// BaseURL is the backend origin, e.g. https://host
	BaseURL string

	// Token is the bearer credential attached to every request
	Token string

	// HTTPClient overrides the default client, mainly for tests
	HTTPClient *http.Client

	// OnUnauthorized runs once per 401 response; the application hooks its
	// global logout-and-redirect here
	OnUnauthorized func()
}

// Client talks to the classroom backend
type Client struct {
	baseURL        string
	token          string
	httpClient     *http.Client
	onUnauthorized func()
}

// New creates an API client
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:        cfg.BaseURL,
		token:          cfg.Token,
		httpClient:     httpClient,
		onUnauthorized: cfg.OnUnauthorized,
	}, nil
}

// GetSession fetches one session record by ID
func (c *Client) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/sessions/%s/", sessionID), &session)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// JoinSession registers this user's attendance on a session
func (c *Client) JoinSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/sessions/%s/join/", sessionID), nil)
}

// LeaveSession clears this user's attendance on a session
func (c *Client) LeaveSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/sessions/%s/leave/", sessionID), nil)
}

// EndSession ends a session; instructors only, enforced server-side
func (c *Client) EndSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/sessions/%s/end/", sessionID), nil)
}

func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
