package clientdata

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CleanupJob removes insight cache entries that can no longer be served.
// It never fetches replacements.
type CleanupJob struct {
	cache   *ResultCache
	timeout time.Duration
	log     zerolog.Logger
}

// NewCleanupJob creates a new insight cache cleanup job.
func NewCleanupJob(cache *ResultCache, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		cache:   cache,
		timeout: 30 * time.Second,
		log:     log.With().Str("job", "insight_cache_cleanup").Logger(),
	}
}

// Run executes the cleanup job
func (j *CleanupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	removed, err := j.cache.Sweep(ctx)
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to sweep insight cache")
		return err
	}

	for _, key := range removed {
		j.log.Info().Str("key", key).Msg("Removed stale cache entry")
	}
	if len(removed) > 0 {
		j.log.Info().Int("total_deleted", len(removed)).Msg("Insight cache cleanup completed")
	}

	return nil
}

// Name returns the job name for scheduling and logging.
func (j *CleanupJob) Name() string {
	return "insight_cache_cleanup"
}
