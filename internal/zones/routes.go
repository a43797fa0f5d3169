package zones

import (
	"net/http"

	"github.com/SeaWatch/SW-Backend/internal/auth"
	"github.com/SeaWatch/SW-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))

		r.Get("/", ListZonesHandler)
		r.Get("/stats", ZoneStatsHandler)
		r.Get("/{id}", GetZoneHandler)

		// Mutations are admin-only, matching the operational model:
		// administrators draw zones, everyone else only reads them.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware(sessionFetcher))
			r.Post("/", CreateZoneHandler)
			r.Put("/{id}", UpdateZoneHandler)
			r.Delete("/{id}", DeleteZoneHandler)
		})
	})

	return r
}
