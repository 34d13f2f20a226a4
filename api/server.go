/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  unique id per request
  2. requestLogger: one zerolog line per request
  3. Recoverer:  panic -> 500 instead of crash
  4. CORS:       browser frontend on a different origin

SECURITY NOTE:
  No authentication middleware. All endpoints are public, matching the
  single-operator deployment this serves.

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", h.ListIngredients)
			r.Post("/", h.CreateIngredient)
			r.Put("/{id}/stock", h.SetIngredientStock)
			r.Delete("/{id}", h.DeleteIngredient)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/{id}", h.GetProduct)
			r.Put("/{id}", h.ReplaceProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})

		r.Post("/sales", h.Sell)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/dashboard", h.Dashboard)
			r.Get("/monthly", h.MonthlyReport)
			r.Get("/top-products", h.TopProducts)
		})
	})

	// The browser UI is served elsewhere; the root just points at the API.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Confectionery Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Confectionery Engine API</h1>
<ul>
<li><a href="/api/ingredients">/api/ingredients</a> - Ingredient ledger</li>
<li><a href="/api/products">/api/products</a> - Product catalog</li>
<li><a href="/api/reports/dashboard">/api/reports/dashboard</a> - Current month summary</li>
<li><a href="/api/reports/top-products">/api/reports/top-products</a> - Best sellers</li>
</ul>
</body>
</html>`))
	})

	return r
}
