package clientdata

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by a Store when a key has no value.
var ErrNotFound = errors.New("clientdata: key not found")

// Store is a persisted string key-value store.
// Implemented by the sqlite Repository and by ValkeyStore.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Scoped prefixes every key with "namespace:" so several caches can share
// one store without colliding.
type Scoped struct {
	store  Store
	prefix string
}

// NewScoped creates a namespaced view over store
func NewScoped(store Store, namespace string) Scoped {
	return Scoped{store: store, prefix: namespace + ":"}
}

// Key returns the fully qualified key
func (s Scoped) Key(key string) string {
	return s.prefix + key
}

func (s Scoped) Get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, s.Key(key))
}

func (s Scoped) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.Key(key), value)
}

func (s Scoped) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.Key(key))
}

// Keys lists keys within the namespace, with the namespace stripped
func (s Scoped) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.store.Keys(ctx, s.prefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, s.prefix))
	}
	return out, nil
}
