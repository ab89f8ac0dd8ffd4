package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers all report routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/weekly", h.HandleGetWeekly)
		r.Get("/monthly", h.HandleGetMonthly)
		r.Get("/yearly", h.HandleGetYearly)
		r.Get("/customers", h.HandleGetCustomers)
		r.Get("/products", h.HandleGetProducts)
		r.Get("/patterns", h.HandleGetPatterns)
	})
}
