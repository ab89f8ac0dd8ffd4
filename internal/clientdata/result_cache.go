package clientdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/salesboard/internal/domain"
)

// Namespace under which insight entries are stored, giving keys such as
// "insights:daily".
const Namespace = "insights"

// ErrInvalidCadence is returned for cadences other than daily and weekly.
var ErrInvalidCadence = errors.New("invalid cadence")

// Cadences lists every cadence the cache knows about
var Cadences = []domain.Cadence{domain.CadenceDaily, domain.CadenceWeekly}

type entry struct {
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// ResultCache keeps the last insight payload per cadence.
// Put always overwrites; reads apply the Validity rules and never delete.
type ResultCache struct {
	store    Scoped
	validity Validity
	now      func() time.Time
	log      zerolog.Logger
}

// NewResultCache creates a result cache over store
func NewResultCache(store Store, validity Validity, now func() time.Time, log zerolog.Logger) *ResultCache {
	if now == nil {
		now = time.Now
	}
	return &ResultCache{
		store:    NewScoped(store, Namespace),
		validity: validity,
		now:      now,
		log:      log.With().Str("component", "result_cache").Logger(),
	}
}

// Get returns the payload for cadence if present and still valid.
// A stale or unreadable entry reads as absent.
func (c *ResultCache) Get(ctx context.Context, cadence domain.Cadence) (json.RawMessage, bool, error) {
	cached, err := c.Entry(ctx, cadence)
	if err != nil || cached == nil {
		return nil, false, err
	}

	if !c.validity.IsValid(cadence, cached.StoredAt, c.now()) {
		c.log.Debug().
			Str("cadence", string(cadence)).
			Time("stored_at", cached.StoredAt).
			Msg("Cached insight is stale")
		return nil, false, nil
	}

	c.log.Debug().Str("cadence", string(cadence)).Msg("Cache hit")
	return cached.Payload, true, nil
}

// Entry returns the stored entry regardless of validity, or nil if absent.
func (c *ResultCache) Entry(ctx context.Context, cadence domain.Cadence) (*domain.CachedInsight, error) {
	if !cadence.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCadence, cadence)
	}

	raw, err := c.store.Get(ctx, string(cadence))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s insight cache: %w", cadence, err)
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil || e.Timestamp.IsZero() {
		c.log.Warn().Str("cadence", string(cadence)).Msg("Ignoring unreadable cache entry")
		return nil, nil
	}

	return &domain.CachedInsight{Payload: e.Payload, StoredAt: e.Timestamp, Cadence: cadence}, nil
}

// Put stores payload for cadence stamped with the current time.
func (c *ResultCache) Put(ctx context.Context, cadence domain.Cadence, payload json.RawMessage) error {
	if !cadence.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCadence, cadence)
	}
	if !json.Valid(payload) {
		return fmt.Errorf("refusing to cache invalid JSON for %s insight", cadence)
	}

	data, err := json.Marshal(entry{Payload: payload, Timestamp: c.now()})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := c.store.Set(ctx, string(cadence), string(data)); err != nil {
		return fmt.Errorf("failed to write %s insight cache: %w", cadence, err)
	}

	c.log.Debug().Str("cadence", string(cadence)).Msg("Cached insight")
	return nil
}

// Clear removes the entry for cadence
func (c *ResultCache) Clear(ctx context.Context, cadence domain.Cadence) error {
	if !cadence.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCadence, cadence)
	}
	return c.store.Delete(ctx, string(cadence))
}

// Status describes one cadence's entry
type Status struct {
	Cadence  domain.Cadence `json:"cadence"`
	Present  bool           `json:"present"`
	Valid    bool           `json:"valid"`
	StoredAt *time.Time     `json:"stored_at,omitempty"`
}

// Statuses reports presence and validity of every cadence
func (c *ResultCache) Statuses(ctx context.Context) ([]Status, error) {
	now := c.now()
	out := make([]Status, 0, len(Cadences))
	for _, cadence := range Cadences {
		cached, err := c.Entry(ctx, cadence)
		if err != nil {
			return nil, err
		}
		s := Status{Cadence: cadence}
		if cached != nil {
			storedAt := cached.StoredAt
			s.Present = true
			s.StoredAt = &storedAt
			s.Valid = c.validity.IsValid(cadence, cached.StoredAt, now)
		}
		out = append(out, s)
	}
	return out, nil
}

// Sweep deletes stale, unreadable and unknown entries in the namespace and
// returns the removed keys.
func (c *ResultCache) Sweep(ctx context.Context) ([]string, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	now := c.now()
	var removed []string
	for _, key := range keys {
		cadence := domain.Cadence(key)
		if cadence.Valid() {
			cached, err := c.Entry(ctx, cadence)
			if err != nil {
				return removed, err
			}
			if cached != nil && c.validity.IsValid(cadence, cached.StoredAt, now) {
				continue
			}
		}
		if err := c.store.Delete(ctx, key); err != nil {
			return removed, err
		}
		removed = append(removed, key)
	}
	return removed, nil
}
