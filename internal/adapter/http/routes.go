package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Review queue
		r.Get("/review/pending", h.ListPending)
		r.Get("/review/{id}", h.GetEntry)
		r.Post("/review/{id}/approve", h.Approve)
		r.Post("/review/{id}/correct", h.Correct)

		// Catalog
		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Get("/products/{slug}", h.GetProduct)
		r.Get("/products/{slug}/prices", h.ListProductPrices)

		// Supplier offers / matching
		r.Post("/offers", h.CreateOffer)
		r.Post("/match/run", h.RunMatcher)
	})
}
