// Package transport is the shared HTTP client for the analytics and insights
// APIs. It attaches bearer tokens, classifies failures into NetworkError,
// ServerError, RequestSetupError and AuthAcquisitionError, and retries a 401
// exactly once when the token source can be invalidated.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxLoggedBody = 500

// Config holds client configuration
type Config struct {
	Name        string // Used in log lines, e.g. "analytics"
	BaseURL     string
	Timeout     time.Duration
	ExemptPaths []string // Paths sent without a bearer token
	HTTPClient  *http.Client
}

// Client performs JSON requests against one base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	exempt     map[string]bool
	log        zerolog.Logger

	mu     sync.RWMutex
	tokens TokenSource
}

// NewClient creates a client. tokens may be nil and set later with SetTokenSource.
func NewClient(cfg Config, tokens TokenSource, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	exempt := make(map[string]bool, len(cfg.ExemptPaths))
	for _, p := range cfg.ExemptPaths {
		exempt[p] = true
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		exempt:     exempt,
		tokens:     tokens,
		log:        log.With().Str("client", cfg.Name).Logger(),
	}
}

// SetTokenSource replaces the token source
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = tokens
}

func (c *Client) tokenSource() TokenSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the JSON response into out (if non-nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &RequestSetupError{Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
	}

	endpoint, err := c.resolve(path, query)
	if err != nil {
		return &RequestSetupError{Err: err}
	}

	requestID := outboundRequestID(ctx)
	tokens := c.tokenSource()
	authenticated := !c.exempt[path] && tokens != nil

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader(payload))
		if err != nil {
			return &RequestSetupError{Err: err}
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", requestID)

		var token string
		if authenticated {
			token, err = tokens.Token(ctx)
			if err != nil {
				var authErr *AuthAcquisitionError
				if errors.As(err, &authErr) {
					return err
				}
				return &AuthAcquisitionError{Err: err}
			}
			req.Header.Set("Authorization", "Bearer "+token)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("Request failed")
			return &NetworkError{Method: method, URL: endpoint, Err: err}
		}

		retry, err := c.handleResponse(resp, method, path, out, time.Since(start))
		if err == nil {
			return nil
		}

		if retry && authenticated && attempt == 0 {
			if inv, ok := tokens.(Invalidator); ok {
				c.log.Info().Str("path", path).Msg("Token rejected, refreshing and retrying once")
				inv.Invalidate(token)
				continue
			}
		}
		return err
	}
}

// handleResponse closes resp. retry is true when the status was 401.
func (c *Client) handleResponse(resp *http.Response, method, path string, out interface{}, elapsed time.Duration) (bool, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &NetworkError{Method: method, URL: resp.Request.URL.String(), Err: err}
	}

	if resp.StatusCode >= 400 {
		serverErr := &ServerError{
			Status:  resp.StatusCode,
			Message: errorMessage(data),
			Body:    truncate(string(data), maxLoggedBody),
		}
		c.log.Error().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("body", serverErr.Body).
			Msg("Request returned error status")
		return resp.StatusCode == http.StatusUnauthorized, serverErr
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("Request completed")

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, &RequestSetupError{Err: fmt.Errorf("failed to parse response from %s: %w", path, err)}
	}
	return false, nil
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	if c.baseURL == "" {
		return "", errors.New("base URL is not configured")
	}
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", c.baseURL+path, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func bodyReader(payload []byte) io.Reader {
	if payload == nil {
		return nil
	}
	return bytes.NewReader(payload)
}

// errorMessage extracts "detail" (or "message") from a JSON error body.
func errorMessage(body []byte) string {
	var parsed struct {
		Detail  interface{} `json:"detail"`
		Message string      `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch d := parsed.Detail.(type) {
		case string:
			if d != "" {
				return d
			}
		case nil:
		default:
			if b, err := json.Marshal(d); err == nil {
				return string(b)
			}
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return msgServerError
}

func outboundRequestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
