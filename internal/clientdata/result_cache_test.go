package clientdata

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/salesboard/internal/domain"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestCache(t *testing.T) (*ResultCache, *Repository, *testClock) {
	t.Helper()
	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	// 2024-03-16 is a Saturday
	clock := &testClock{now: time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)}
	validity := Validity{RefreshDay: time.Saturday, Location: time.UTC}
	return NewResultCache(repo, validity, clock.Now, zerolog.Nop()), repo, clock
}

func TestResultCache_PutThenGet(t *testing.T) {
	cache, _, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, domain.CadenceDaily, json.RawMessage(`{"message":"hello"}`)))

	payload, ok, err := cache.Get(ctx, domain.CadenceDaily)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"message":"hello"}`, string(payload))
}

func TestResultCache_StoredFormat(t *testing.T) {
	cache, repo, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, domain.CadenceWeekly, json.RawMessage(`{"message":"w"}`)))

	raw, err := repo.Get(ctx, "insights:weekly")
	require.NoError(t, err)

	var stored struct {
		Payload   json.RawMessage `json:"payload"`
		Timestamp time.Time       `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.JSONEq(t, `{"message":"w"}`, string(stored.Payload))
	assert.True(t, clock.now.Equal(stored.Timestamp))
}

func TestResultCache_Missing(t *testing.T) {
	cache, _, _ := newTestCache(t)

	payload, ok, err := cache.Get(context.Background(), domain.CadenceWeekly)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestResultCache_DailyExpiresAtMidnight(t *testing.T) {
	cache, _, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, domain.CadenceDaily, json.RawMessage(`{}`)))

	clock.now = time.Date(2024, 3, 16, 23, 59, 0, 0, time.UTC)
	_, ok, err := cache.Get(ctx, domain.CadenceDaily)
	require.NoError(t, err)
	assert.True(t, ok)

	clock.now = time.Date(2024, 3, 17, 0, 0, 1, 0, time.UTC)
	_, ok, err = cache.Get(ctx, domain.CadenceDaily)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResultCache_StaleEntryIsNotDeletedByGet(t *testing.T) {
	cache, repo, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, domain.CadenceDaily, json.RawMessage(`{}`)))
	clock.now = clock.now.Add(48 * time.Hour)

	_, ok, err := cache.Get(ctx, domain.CadenceDaily)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Get(ctx, "insights:daily")
	assert.NoError(t, err, "stale entries stay until overwritten or swept")
}

func TestResultCache_WeeklyStoredOffRefreshDayIsStale(t *testing.T) {
	cache, _, clock := newTestCache(t)
	ctx := context.Background()

	clock.now = time.Date(2024, 3, 19, 9, 0, 0, 0, time.UTC) // Tuesday
	require.NoError(t, cache.Put(ctx, domain.CadenceWeekly, json.RawMessage(`{}`)))

	_, ok, err := cache.Get(ctx, domain.CadenceWeekly)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResultCache_PutOverwrites(t *testing.T) {
	cache, _, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, domain.CadenceDaily, json.RawMessage(`{"v":1}`)))
	clock.now = clock.now.Add(time.Hour)
	require.NoError(t, cache.Put(ctx, domain.CadenceDaily, json.RawMessage(`{"v":2}`)))

	entry, err := cache.Entry(ctx, domain.CadenceDaily)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.JSONEq(t, `{"v":2}`, string(entry.Payload))
	assert.True(t, clock.now.Equal(entry.StoredAt))
}

func TestResultCache_InvalidCadence(t *testing.T) {
	cache, _, _ := newTestCache(t)
	ctx := context.Background()

	_, _, err := cache.Get(ctx, domain.Cadence("monthly"))
	assert.ErrorIs(t, err, ErrInvalidCadence)

	err = cache.Put(ctx, domain.Cadence("monthly"), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidCadence)
}

func TestResultCache_RejectsInvalidJSON(t *testing.T) {
	cache, _, _ := newTestCache(t)

	err := cache.Put(context.Background(), domain.CadenceDaily, json.RawMessage(`{broken`))
	assert.Error(t, err)
}

func TestResultCache_CorruptEntryReadsAsAbsent(t *testing.T) {
	cache, repo, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "insights:daily", "not json"))

	_, ok, err := cache.Get(ctx, domain.CadenceDaily)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResultCache_Clear(t *testing.T) {
	cache, _, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, domain.CadenceDaily, json.RawMessage(`{}`)))
	require.NoError(t, cache.Clear(ctx, domain.CadenceDaily))

	_, ok, err := cache.Get(ctx, domain.CadenceDaily)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResultCache_Statuses(t *testing.T) {
	cache, _, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, domain.CadenceDaily, json.RawMessage(`{}`)))

	statuses, err := cache.Statuses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, domain.CadenceDaily, statuses[0].Cadence)
	assert.True(t, statuses[0].Present)
	assert.True(t, statuses[0].Valid)
	assert.NotNil(t, statuses[0].StoredAt)

	assert.Equal(t, domain.CadenceWeekly, statuses[1].Cadence)
	assert.False(t, statuses[1].Present)
}

func TestResultCache_Sweep(t *testing.T) {
	cache, repo, clock := newTestCache(t)
	ctx := context.Background()

	// Saturday: both entries valid when stored
	require.NoError(t, cache.Put(ctx, domain.CadenceDaily, json.RawMessage(`{}`)))
	require.NoError(t, cache.Put(ctx, domain.CadenceWeekly, json.RawMessage(`{}`)))
	require.NoError(t, repo.Set(ctx, "insights:legacy", "{}"))
	require.NoError(t, repo.Set(ctx, "other:daily", "{}"))

	clock.now = clock.now.Add(24 * time.Hour)

	removed, err := cache.Sweep(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"daily", "legacy"}, removed)

	_, ok, err := cache.Get(ctx, domain.CadenceWeekly)
	require.NoError(t, err)
	assert.True(t, ok, "weekly entry is still within its week")

	_, err = repo.Get(ctx, "other:daily")
	assert.NoError(t, err, "keys outside the namespace are untouched")
}
