// Package router wires the HTTP API.
package router

import (
	"net/http"

	"github.com/VASCOSORO/soopbeta/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// New builds the chi router over the four handlers.
func New(orders *handler.OrderHandler, catalog *handler.CatalogHandler, convert *handler.ConvertHandler, dashboard *handler.DashboardHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Post("/import", catalog.Import)
			r.Get("/", catalog.GetAll)
			r.Get("/{code}", catalog.GetByCode)
			r.Put("/{code}", catalog.Update)
		})

		r.Get("/clients", dashboard.Clients)

		r.Route("/order", func(r chi.Router) {
			r.Get("/", orders.GetOrder)
			r.Delete("/", orders.Discard)
			r.Post("/lines", orders.AddLine)
			r.Delete("/lines/{index}", orders.RemoveLine)
			r.Post("/commit", orders.Commit)
		})

		r.Post("/convert", convert.Convert)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/clients", dashboard.ClientSummaries)
			r.Get("/salespeople", dashboard.SalespersonSummaries)
		})
	})

	return r
}
