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

func TestCleanupJobName(t *testing.T) {
	cache, _, _ := newTestCache(t)
	job := NewCleanupJob(cache, zerolog.Nop())

	assert.Equal(t, "insight_cache_cleanup", job.Name())
}

func TestCleanupJobRun(t *testing.T) {
	cache, repo, clock := newTestCache(t)
	ctx := context.Background()
	job := NewCleanupJob(cache, zerolog.Nop())

	require.NoError(t, cache.Put(ctx, domain.CadenceDaily, json.RawMessage(`{}`)))
	require.NoError(t, cache.Put(ctx, domain.CadenceWeekly, json.RawMessage(`{}`)))

	clock.now = clock.now.Add(8 * 24 * time.Hour)
	require.NoError(t, job.Run())

	keys, err := repo.Keys(ctx, "insights:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCleanupJobRunKeepsFreshEntries(t *testing.T) {
	cache, repo, _ := newTestCache(t)
	ctx := context.Background()
	job := NewCleanupJob(cache, zerolog.Nop())

	require.NoError(t, cache.Put(ctx, domain.CadenceDaily, json.RawMessage(`{}`)))
	require.NoError(t, job.Run())

	keys, err := repo.Keys(ctx, "insights:")
	require.NoError(t, err)
	assert.Equal(t, []string{"insights:daily"}, keys)
}

func TestCleanupJobRunEmpty(t *testing.T) {
	cache, _, _ := newTestCache(t)
	assert.NoError(t, NewCleanupJob(cache, zerolog.Nop()).Run())
}
