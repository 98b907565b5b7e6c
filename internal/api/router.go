package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter builds the HTTP routing table. The ws handler is passed in so
// the live feed shares the one server.
func NewRouter(h *Handler, wsHandler http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ws", wsHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/auctions", h.ListAuctions)
		r.Get("/auctions/{slug}", h.GetAuction)
		r.Get("/auctions/{slug}/bids", h.GetBids)
		r.Post("/auctions/{slug}/bids", h.PlaceBid)
		r.Post("/auctions/{slug}/buy-now", h.BuyNow)

		r.Post("/admin/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.AdminMiddleware)
			r.Post("/admin/auctions", h.CreateAuction)
			r.Put("/admin/auctions/{slug}", h.UpdateAuction)
			r.Delete("/admin/auctions/{slug}", h.DeleteAuction)
			r.Get("/admin/settings", h.GetSettings)
			r.Put("/admin/settings", h.SaveSettings)
		})
	})

	return r
}
