// Package handlers provides HTTP handlers for the dashboard screen.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/salesboard/internal/clients/transport"
	"github.com/aristath/salesboard/internal/domain"
	"github.com/aristath/salesboard/internal/modules/dashboard"
)

// Service is what the handlers need from the dashboard service
type Service interface {
	LoadPage(ctx context.Context) (*dashboard.Page, error)
	LoadInsight(ctx context.Context, cadence domain.Cadence) (*domain.Insight, *dashboard.Warning)
}

// Handler handles dashboard HTTP requests
type Handler struct {
	service Service
	log     zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "dashboard").Logger(),
	}
}

// HandleGetDashboard handles GET /api/dashboard
// Returns the overview plus whichever insights could be loaded
func (h *Handler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.LoadPage(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load dashboard")
		h.writeError(w, transport.HTTPStatus(err), err)
		return
	}

	if page.Warnings == nil {
		page.Warnings = []dashboard.Warning{}
	}
	h.writeData(w, http.StatusOK, page)
}

// HandleGetInsight handles GET /api/dashboard/insights/{cadence}
// A failed insight is reported as a warning, never as an error status
func (h *Handler) HandleGetInsight(w http.ResponseWriter, r *http.Request, raw string) {
	cadence, err := domain.ParseCadence(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	insight, warning := h.service.LoadInsight(r.Context(), cadence)

	warnings := []dashboard.Warning{}
	if warning != nil {
		warnings = append(warnings, *warning)
	}

	h.writeData(w, http.StatusOK, map[string]interface{}{
		"cadence":  cadence,
		"insight":  insight,
		"warnings": warnings,
	})
}

func (h *Handler) writeData(w http.ResponseWriter, status int, data interface{}) {
	h.writeJSON(w, status, map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
