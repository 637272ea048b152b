// Package server wires the register's HTTP JSON API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the API routes with request-id, logging, metrics and
// CORS middleware.
func NewRouter(items *CatalogHandler, cart *CartHandler, history *TransactionsHandler, metrics *Metrics) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(metrics.Instrument)
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.List)
			r.Post("/", items.Create)
			r.Put("/{id}", items.Update)
			r.Delete("/{id}", items.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.Get)
			r.Delete("/", cart.Clear)
			r.Post("/items", cart.AddItem)
			r.Put("/items/{id}", cart.UpdateLine)
			r.Delete("/items/{id}", cart.RemoveLine)
			r.Post("/checkout", cart.Checkout)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", history.List)
			r.Get("/{id}", history.Get)
			r.Delete("/{id}", history.Delete)
		})
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
