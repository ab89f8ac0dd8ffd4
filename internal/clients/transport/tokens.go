package transport

import (
	"context"
	"errors"
)

// TokenSource supplies bearer tokens for outgoing requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Invalidator is implemented by token sources that can discard a rejected
// token. The client retries a 401 once only for such sources.
// Invalidate must be a no-op when rejected is no longer the current token.
type Invalidator interface {
	Invalidate(rejected string)
}

// StaticToken always returns the same token.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", errors.New("no bearer token configured")
	}
	return string(s), nil
}

type bearerKey struct{}

// WithBearer attaches a caller identity token to ctx.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFromContext returns the token attached with WithBearer.
func BearerFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerKey{}).(string)
	return token, ok && token != ""
}

// ContextToken reads the caller's identity token from the request context,
// falling back to a static token (used by the CLI).
type ContextToken struct {
	Fallback StaticToken
}

func (c ContextToken) Token(ctx context.Context) (string, error) {
	if token, ok := BearerFromContext(ctx); ok {
		return token, nil
	}
	if c.Fallback != "" {
		return string(c.Fallback), nil
	}
	return "", errors.New("no identity token on request")
}
