/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is the single source of truth for all service instances and is
 * shared by the HTTP server and the CLI.
 */
package di

import (
	"github.com/aristath/salesboard/internal/clientdata"
	"github.com/aristath/salesboard/internal/clients/analytics"
	"github.com/aristath/salesboard/internal/clients/insights"
	"github.com/aristath/salesboard/internal/clients/transport"
	"github.com/aristath/salesboard/internal/config"
	"github.com/aristath/salesboard/internal/database"
	"github.com/aristath/salesboard/internal/modules/dashboard"
	"github.com/aristath/salesboard/internal/modules/reports"
	"github.com/aristath/salesboard/internal/scheduler"
)

/**
 * Container holds all dependencies for the application.
 *
 * Architecture:
 * - Storage: the insight result cache on SQLite (client_data.db) or valkey
 * - Clients: analytics API (caller's identity token) and insights API (token cache)
 * - Services: dashboard orchestrator and report views
 * - Scheduler: cache maintenance jobs
 */
type Container struct {
	Config *config.Config

	// Storage (exactly one backend is set)
	ClientDataDB *database.DB
	ValkeyStore  *clientdata.ValkeyStore
	Store        clientdata.Store
	ResultCache  *clientdata.ResultCache

	// Clients
	AnalyticsTransport *transport.Client
	AnalyticsClient    *analytics.Client
	InsightsClient     *insights.Client // nil when INSIGHTS_BASE_URL is unset

	// Services
	DashboardService *dashboard.Service
	ReportService    *reports.Service

	Scheduler *scheduler.Scheduler
}

// JobInstances holds the registered maintenance jobs for manual triggering
type JobInstances struct {
	CacheCleanup  *clientdata.CleanupJob
	WALCheckpoint *scheduler.WALCheckpointJob // nil on the valkey backend
}

// Close releases storage connections
func (c *Container) Close() error {
	if c.ValkeyStore != nil {
		c.ValkeyStore.Close()
	}
	if c.ClientDataDB != nil {
		return c.ClientDataDB.Close()
	}
	return nil
}
