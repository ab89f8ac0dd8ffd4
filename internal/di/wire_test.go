package di

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/salesboard/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DataDir:      t.TempDir(),
		RequiredRole: "org:admin",
		API: config.APIConfig{
			BaseURL: "http://analytics.test/api",
			Timeout: time.Second,
		},
		Insights: config.InsightsConfig{
			TokenTTL:   time.Hour,
			RefreshDay: time.Saturday,
		},
		Cache: config.CacheConfig{
			Backend:         config.CacheBackendSQLite,
			Location:        time.UTC,
			CleanupSchedule: "0 0 3 * * *",
		},
	}
}

func TestWire(t *testing.T) {
	cfg := testConfig(t)

	container, jobs, err := Wire(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	assert.NotNil(t, container.ClientDataDB)
	assert.Nil(t, container.ValkeyStore)
	assert.NotNil(t, container.ResultCache)
	assert.NotNil(t, container.AnalyticsClient)
	assert.Nil(t, container.InsightsClient, "insights are disabled without a base URL")
	assert.NotNil(t, container.DashboardService)
	assert.NotNil(t, container.ReportService)

	require.NotNil(t, jobs.CacheCleanup)
	require.NotNil(t, jobs.WALCheckpoint)
	assert.Len(t, container.Scheduler.Jobs(), 2)

	assert.FileExists(t, filepath.Join(cfg.DataDir, "client_data.db"))
}

func TestWire_InsightsEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Insights.BaseURL = "http://insights.test"
	cfg.Insights.ClientKey = "key"

	container, _, err := Wire(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	assert.NotNil(t, container.InsightsClient)
	assert.NotNil(t, container.InsightsClient.Tokens())
}

func TestWire_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.CleanupSchedule = "whenever"

	container, jobs, err := Wire(cfg, zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, container)
	assert.Nil(t, jobs)
}

func TestInitializeStorage_InvalidPath(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(cfg.DataDir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg.DataDir = filepath.Join(blocker, "data")

	container, err := InitializeStorage(cfg, zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, container)
}

func TestRegisterJobs_NilContainer(t *testing.T) {
	_, err := RegisterJobs(nil, testConfig(t), zerolog.Nop())
	assert.Error(t, err)
}
