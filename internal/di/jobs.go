package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/salesboard/internal/clientdata"
	"github.com/aristath/salesboard/internal/config"
	"github.com/aristath/salesboard/internal/scheduler"
)

// walCheckpointSchedule runs the SQLite checkpoint every 30 minutes
const walCheckpointSchedule = "0 */30 * * * *"

// RegisterJobs creates the scheduler and registers the maintenance jobs.
// The scheduler is not started here.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	instances := &JobInstances{}
	container.Scheduler = scheduler.New(log)

	instances.CacheCleanup = clientdata.NewCleanupJob(container.ResultCache, log)
	if err := container.Scheduler.AddJob(cfg.Cache.CleanupSchedule, instances.CacheCleanup); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", instances.CacheCleanup.Name(), err)
	}

	if container.ClientDataDB != nil {
		instances.WALCheckpoint = scheduler.NewWALCheckpointJob(log, container.ClientDataDB)
		if err := container.Scheduler.AddJob(walCheckpointSchedule, instances.WALCheckpoint); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", instances.WALCheckpoint.Name(), err)
		}
	}

	return instances, nil
}
