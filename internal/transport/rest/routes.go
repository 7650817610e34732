package rest

import (
	"net/http"

	"github.com/heartmarshall/classifieds-backend/internal/transport/middleware"
)

// Handlers groups the REST handlers mounted by RegisterRoutes.
type Handlers struct {
	Health     *HealthHandler
	Categories *CategoryHandler
	Listings   *ListingHandler
}

// RegisterRoutes mounts every endpoint on mux. Authentication itself is
// resolved by middleware.Auth further out; here routes only declare whether
// they need a user or an admin.
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	user := func(f http.HandlerFunc) http.Handler { return middleware.RequireUser(f) }
	admin := func(f http.HandlerFunc) http.Handler { return middleware.AdminOnly(f) }

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /categories", h.Categories.List)
	mux.HandleFunc("GET /categories/{id}", h.Categories.Get)
	mux.HandleFunc("GET /categories/{id}/schema", h.Categories.Schema)
	mux.Handle("POST /categories", admin(h.Categories.Create))
	mux.Handle("PUT /categories/{id}", admin(h.Categories.Update))
	mux.Handle("DELETE /categories/{id}", admin(h.Categories.Delete))
	mux.Handle("POST /categories/{id}/preview", admin(h.Categories.Preview))

	mux.HandleFunc("GET /listings", h.Listings.List)
	mux.HandleFunc("GET /listings/search", h.Listings.Search)
	mux.Handle("GET /listings/user/my-listings", user(h.Listings.MyListings))
	mux.HandleFunc("GET /listings/{id}", h.Listings.Get)
	mux.Handle("POST /listings", user(h.Listings.Create))
	mux.Handle("PUT /listings/{id}", user(h.Listings.Update))
	mux.Handle("DELETE /listings/{id}", user(h.Listings.Delete))
}
