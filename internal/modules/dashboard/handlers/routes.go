package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all dashboard routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.HandleGetDashboard)
		r.Get("/insights/{cadence}", func(w http.ResponseWriter, r *http.Request) {
			h.HandleGetInsight(w, r, chi.URLParam(r, "cadence"))
		})
	})
}
