// Package handlers provides HTTP handlers for the report screens.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/salesboard/internal/clients/transport"
	"github.com/aristath/salesboard/internal/modules/reports"
)

// Service is what the handlers need from the report service
type Service interface {
	Weekly(ctx context.Context, weeks int) (*reports.WeeklyReport, error)
	Monthly(ctx context.Context, months int) (*reports.MonthlyReport, error)
	Yearly(ctx context.Context) (*reports.YearlyReport, error)
	Customers(ctx context.Context) (*reports.CustomerReport, error)
	Products(ctx context.Context, search string, page, size int) (*reports.ProductReport, error)
	Patterns(ctx context.Context) (*reports.PatternReport, error)
}

// Handler handles report HTTP requests
type Handler struct {
	service Service
	log     zerolog.Logger
}

// NewHandler creates a new reports handler
func NewHandler(service Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "reports").Logger(),
	}
}

// HandleGetWeekly handles GET /api/reports/weekly?weeks=N
func (h *Handler) HandleGetWeekly(w http.ResponseWriter, r *http.Request) {
	weeks, err := queryInt(r, "weeks")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := h.service.Weekly(r.Context(), weeks)
	h.respond(w, "weekly", report, err)
}

// HandleGetMonthly handles GET /api/reports/monthly?months=N
func (h *Handler) HandleGetMonthly(w http.ResponseWriter, r *http.Request) {
	months, err := queryInt(r, "months")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := h.service.Monthly(r.Context(), months)
	h.respond(w, "monthly", report, err)
}

// HandleGetYearly handles GET /api/reports/yearly
func (h *Handler) HandleGetYearly(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Yearly(r.Context())
	h.respond(w, "yearly", report, err)
}

// HandleGetCustomers handles GET /api/reports/customers
func (h *Handler) HandleGetCustomers(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Customers(r.Context())
	h.respond(w, "customers", report, err)
}

// HandleGetProducts handles GET /api/reports/products?search=&page=&size=
func (h *Handler) HandleGetProducts(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	size, err := queryInt(r, "size")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := h.service.Products(r.Context(), r.URL.Query().Get("search"), page, size)
	h.respond(w, "products", report, err)
}

// HandleGetPatterns handles GET /api/reports/patterns
func (h *Handler) HandleGetPatterns(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Patterns(r.Context())
	h.respond(w, "patterns", report, err)
}

func (h *Handler) respond(w http.ResponseWriter, report string, data interface{}, err error) {
	if err != nil {
		status := transport.HTTPStatus(err)
		if errors.Is(err, reports.ErrInvalidWindow) {
			status = http.StatusBadRequest
		} else {
			h.log.Error().Err(err).Str("report", report).Msg("Failed to load report")
		}
		h.writeError(w, status, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
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

// queryInt reads an optional integer query parameter; absent means 0
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return v, nil
}
