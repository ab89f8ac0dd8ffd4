package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/salesboard/internal/clientdata"
	"github.com/aristath/salesboard/internal/domain"
	"github.com/aristath/salesboard/internal/scheduler"
)

// CacheAdmin is the result cache as seen by the system endpoints
type CacheAdmin interface {
	Statuses(ctx context.Context) ([]clientdata.Status, error)
	Clear(ctx context.Context, cadence domain.Cadence) error
}

// JobLister lists scheduled jobs
type JobLister interface {
	Jobs() []scheduler.JobInfo
}

// SystemHandlers serves status and maintenance endpoints
type SystemHandlers struct {
	log             zerolog.Logger
	cache           CacheAdmin
	jobs            JobLister
	runnable        map[string]scheduler.Job
	backend         string
	insightsEnabled bool
	startedAt       time.Time
}

// SystemStatusResponse is the body of GET /api/system/status
type SystemStatusResponse struct {
	Status          string              `json:"status"`
	Version         string              `json:"version"`
	StartedAt       string              `json:"started_at"`
	UptimeSeconds   int64               `json:"uptime_seconds"`
	CPUPercent      float64             `json:"cpu_percent"`
	MemoryPercent   float64             `json:"memory_percent"`
	CacheBackend    string              `json:"cache_backend"`
	Cache           []clientdata.Status `json:"cache"`
	InsightsEnabled bool                `json:"insights_enabled"`
	Jobs            []scheduler.JobInfo `json:"jobs"`
}

// NewSystemHandlers creates system handlers. runnable are the jobs that can
// be triggered by name.
func NewSystemHandlers(
	log zerolog.Logger,
	cache CacheAdmin,
	jobs JobLister,
	backend string,
	insightsEnabled bool,
	runnable ...scheduler.Job,
) *SystemHandlers {
	byName := make(map[string]scheduler.Job, len(runnable))
	for _, job := range runnable {
		if job != nil {
			byName[job.Name()] = job
		}
	}
	return &SystemHandlers{
		log:             log.With().Str("handler", "system").Logger(),
		cache:           cache,
		jobs:            jobs,
		runnable:        byName,
		backend:         backend,
		insightsEnabled: insightsEnabled,
		startedAt:       time.Now(),
	}
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.cache.Statuses(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read cache status")
		h.writeError(w, http.StatusInternalServerError, "Failed to read cache status")
		return
	}

	cpuPercent, memPercent := h.getSystemStats()

	status := SystemStatusResponse{
		Status:          "healthy",
		Version:         Version,
		StartedAt:       h.startedAt.Format(time.RFC3339),
		UptimeSeconds:   int64(time.Since(h.startedAt).Seconds()),
		CPUPercent:      cpuPercent,
		MemoryPercent:   memPercent,
		CacheBackend:    h.backend,
		Cache:           statuses,
		InsightsEnabled: h.insightsEnabled,
		Jobs:            []scheduler.JobInfo{},
	}
	if h.jobs != nil {
		status.Jobs = h.jobs.Jobs()
	}

	h.writeData(w, status)
}

// HandleClearCache handles DELETE /api/system/cache/{cadence}
// An empty cadence clears every cadence
func (h *SystemHandlers) HandleClearCache(w http.ResponseWriter, r *http.Request, raw string) {
	cadences := clientdata.Cadences
	if raw != "" {
		cadence, err := domain.ParseCadence(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		cadences = []domain.Cadence{cadence}
	}

	cleared := make([]domain.Cadence, 0, len(cadences))
	for _, cadence := range cadences {
		if err := h.cache.Clear(r.Context(), cadence); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, clientdata.ErrInvalidCadence) {
				status = http.StatusBadRequest
			}
			h.log.Error().Err(err).Str("cadence", string(cadence)).Msg("Failed to clear cached insight")
			h.writeError(w, status, err.Error())
			return
		}
		cleared = append(cleared, cadence)
	}

	h.log.Info().Interface("cadences", cleared).Msg("Cleared cached insights")
	h.writeData(w, map[string]interface{}{"cleared": cleared})
}

// HandleRunJob handles POST /api/system/jobs/{name}
// Runs the job synchronously, outside its schedule
func (h *SystemHandlers) HandleRunJob(w http.ResponseWriter, r *http.Request, name string) {
	job, ok := h.runnable[name]
	if !ok {
		h.writeError(w, http.StatusNotFound, "unknown job "+name)
		return
	}

	start := time.Now()
	if err := job.Run(); err != nil {
		h.log.Error().Err(err).Str("job", name).Msg("Manual job run failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeData(w, map[string]interface{}{
		"job":         name,
		"status":      "completed",
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// getSystemStats returns CPU and RAM usage percentages. CPU is sampled over
// 100ms so the endpoint stays fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeData(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *SystemHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
