// Package insights talks to the secondary API that serves AI-generated daily
// and weekly sales insights behind a short-lived bearer token.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/salesboard/internal/clients/transport"
	"github.com/aristath/salesboard/internal/domain"
)

// Config holds insights API configuration
type Config struct {
	BaseURL    string
	ClientKey  string
	TokenPath  string
	DailyPath  string
	WeeklyPath string
	TokenTTL   time.Duration
	Timeout    time.Duration
	HTTPClient *http.Client
	Now        func() time.Time
}

// Client for the insights API
type Client struct {
	http      *transport.Client
	tokens    *TokenCache
	clientKey string
	paths     map[domain.Cadence]string
	tokenPath string
	log       zerolog.Logger
}

type tokenRequest struct {
	ClientKey string `json:"client_key"`
}

type tokenResponse struct {
	Token    string      `json:"token"`
	Validity interface{} `json:"validity"`
}

// NewClient creates the insights client and its token cache. The token
// endpoint itself is called without a bearer token.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.TokenPath == "" {
		cfg.TokenPath = "/auth/token"
	}
	if cfg.DailyPath == "" {
		cfg.DailyPath = "/insights/daily"
	}
	if cfg.WeeklyPath == "" {
		cfg.WeeklyPath = "/insights/weekly"
	}

	c := &Client{
		http: transport.NewClient(transport.Config{
			Name:        "insights",
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			ExemptPaths: []string{cfg.TokenPath},
			HTTPClient:  cfg.HTTPClient,
		}, nil, log),
		clientKey: cfg.ClientKey,
		tokenPath: cfg.TokenPath,
		paths: map[domain.Cadence]string{
			domain.CadenceDaily:  cfg.DailyPath,
			domain.CadenceWeekly: cfg.WeeklyPath,
		},
		log: log.With().Str("client", "insights").Logger(),
	}

	var opts []TokenCacheOption
	if cfg.Now != nil {
		opts = append(opts, WithClock(cfg.Now))
	}
	c.tokens = NewTokenCache(c.requestToken, cfg.TokenTTL, log, opts...)
	c.http.SetTokenSource(c.tokens)
	return c
}

// Tokens exposes the token cache
func (c *Client) Tokens() *TokenCache {
	return c.tokens
}

func (c *Client) requestToken(ctx context.Context) (string, error) {
	var resp tokenResponse
	if err := c.http.Post(ctx, c.tokenPath, tokenRequest{ClientKey: c.clientKey}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Fetch returns the raw insight payload for a cadence
func (c *Client) Fetch(ctx context.Context, cadence domain.Cadence) (json.RawMessage, error) {
	path, ok := c.paths[cadence]
	if !ok {
		return nil, fmt.Errorf("unknown cadence %q", cadence)
	}

	var raw json.RawMessage
	if err := c.http.Get(ctx, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch %s insight: %w", cadence, err)
	}

	c.log.Info().Str("cadence", string(cadence)).Int("bytes", len(raw)).Msg("Fetched insight")
	return raw, nil
}

// Insight fetches and decodes the insight for a cadence
func (c *Client) Insight(ctx context.Context, cadence domain.Cadence) (*domain.Insight, error) {
	raw, err := c.Fetch(ctx, cadence)
	if err != nil {
		return nil, err
	}
	var insight domain.Insight
	if err := json.Unmarshal(raw, &insight); err != nil {
		return nil, &transport.RequestSetupError{Err: err}
	}
	return &insight, nil
}
