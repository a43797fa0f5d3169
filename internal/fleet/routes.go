package fleet

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

		r.Get("/", ListBoatsHandler)
		r.Post("/", CreateBoatHandler)
		r.Get("/positions/latest", LatestPositionsHandler)
		r.Get("/{id}", GetBoatHandler)
		r.Put("/{id}", UpdateBoatHandler)
		r.Get("/{id}/positions", BoatPositionsHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware(sessionFetcher))
			r.Delete("/{id}", DeleteBoatHandler)
		})
	})

	return r
}
