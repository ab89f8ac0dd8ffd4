package insights

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/aristath/salesboard/internal/clients/transport"
	"github.com/aristath/salesboard/internal/domain"
)

// DefaultTokenTTL is how long an acquired token is trusted. The validity
// reported by the token endpoint is not used.
const DefaultTokenTTL = time.Hour

const defaultAcquireTimeout = 30 * time.Second

// AcquireFunc obtains a fresh token value from the identity endpoint.
type AcquireFunc func(ctx context.Context) (string, error)

// TokenCache holds the single insights API token for the process.
//
// Concurrent callers that find the token missing or expired share one
// acquisition. The acquisition is detached from the first caller's
// cancellation so that caller giving up does not fail the others.
type TokenCache struct {
	acquire AcquireFunc
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	log     zerolog.Logger

	group singleflight.Group

	mu    sync.RWMutex
	token domain.AuthToken
}

// TokenCacheOption customizes a TokenCache
type TokenCacheOption func(*TokenCache)

// WithClock injects the time source
func WithClock(now func() time.Time) TokenCacheOption {
	return func(c *TokenCache) { c.now = now }
}

// WithAcquireTimeout bounds a single acquisition
func WithAcquireTimeout(d time.Duration) TokenCacheOption {
	return func(c *TokenCache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewTokenCache creates an empty token cache. ttl <= 0 uses DefaultTokenTTL.
func NewTokenCache(acquire AcquireFunc, ttl time.Duration, log zerolog.Logger, opts ...TokenCacheOption) *TokenCache {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	c := &TokenCache{
		acquire: acquire,
		ttl:     ttl,
		timeout: defaultAcquireTimeout,
		now:     time.Now,
		log:     log.With().Str("component", "token_cache").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureToken returns a valid token, acquiring one if needed.
func (c *TokenCache) EnsureToken(ctx context.Context) (domain.AuthToken, error) {
	if token, ok := c.current(); ok {
		return token, nil
	}

	ch := c.group.DoChan("token", func() (interface{}, error) {
		// Another flight may have finished between the check above and here.
		if token, ok := c.current(); ok {
			return token, nil
		}

		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		value, err := c.acquire(actx)
		if err != nil {
			c.log.Error().Err(err).Msg("Token acquisition failed")
			return nil, &transport.AuthAcquisitionError{Err: err}
		}
		if value == "" {
			return nil, &transport.AuthAcquisitionError{Err: errors.New("token endpoint returned an empty token")}
		}

		token := domain.AuthToken{Value: value, ExpiresAt: c.now().Add(c.ttl)}
		c.mu.Lock()
		c.token = token
		c.mu.Unlock()

		c.log.Info().Time("expires_at", token.ExpiresAt).Msg("Acquired insights token")
		return token, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.AuthToken{}, res.Err
		}
		return res.Val.(domain.AuthToken), nil
	case <-ctx.Done():
		return domain.AuthToken{}, &transport.AuthAcquisitionError{Err: ctx.Err()}
	}
}

// Token implements transport.TokenSource
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	token, err := c.EnsureToken(ctx)
	if err != nil {
		return "", err
	}
	return token.Value, nil
}

// Invalidate drops the cached token if it is still the rejected one, so the
// next call acquires a new one. A token already replaced by a concurrent
// refresh is kept. Implements transport.Invalidator.
func (c *TokenCache) Invalidate(rejected string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token.Value == "" || c.token.Value != rejected {
		return
	}
	c.token = domain.AuthToken{}
	c.log.Debug().Msg("Insights token invalidated")
}

func (c *TokenCache) current() (domain.AuthToken, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token.Expired(c.now()) {
		return domain.AuthToken{}, false
	}
	return c.token, true
}
