package clientdata

import (
	"context"
	"fmt"
	"strings"

	valkeylib "github.com/valkey-io/valkey-go"
)

// ValkeyConfig holds valkey connection settings
type ValkeyConfig struct {
	Address  string
	Password string
	DB       int
	Prefix   string // Optional global key prefix, e.g. "salesboard"
}

// ValkeyStore is a Store on a valkey server. Entries carry no TTL;
// staleness is decided by the cadence rules on read.
type ValkeyStore struct {
	client valkeylib.Client
	prefix string
}

// NewValkeyStore connects and pings the server
func NewValkeyStore(ctx context.Context, cfg ValkeyConfig) (*ValkeyStore, error) {
	addr := strings.TrimSpace(cfg.Address)
	if addr == "" {
		return nil, fmt.Errorf("valkey address is required")
	}

	client, err := valkeylib.NewClient(valkeylib.ClientOption{
		InitAddress: []string{addr},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey at %s: %w", addr, err)
	}

	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &ValkeyStore{client: client, prefix: prefix}, nil
}

// NewValkeyStoreFromClient wraps an existing client
func NewValkeyStoreFromClient(client valkeylib.Client, prefix string) *ValkeyStore {
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) key(k string) string {
	return s.prefix + k
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(key)).Build()).ToString()
	if err != nil {
		if valkeylib.IsValkeyNil(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Do(ctx, s.client.B().Set().Key(s.key(key)).Value(value).Build()).Error(); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func (s *ValkeyStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Do(ctx, s.client.B().Del().Key(s.key(key)).Build()).Error(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys scans for keys starting with prefix
func (s *ValkeyStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		entry, err := s.client.Do(ctx, s.client.B().Scan().Cursor(cursor).Match(s.key(prefix)+"*").Count(100).Build()).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}
		for _, k := range entry.Elements {
			keys = append(keys, strings.TrimPrefix(k, s.prefix))
		}
		cursor = entry.Cursor
		if cursor == 0 {
			return keys, nil
		}
	}
}

// Ping checks connectivity
func (s *ValkeyStore) Ping(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

// Close releases the connection
func (s *ValkeyStore) Close() {
	s.client.Close()
}
