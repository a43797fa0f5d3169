package alerts

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

		r.Get("/", ListAlertsHandler)
		r.Get("/active", ActiveAlertsHandler)
		r.Get("/stats", AlertStatsHandler)
		r.Get("/{id}", GetAlertHandler)
		r.Put("/{id}/acknowledge", AcknowledgeAlertHandler)

		// Manual SOS/test alerts are an operator tool, not something a
		// fisherman account can raise against someone else's boat.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(sessionFetcher, auth.RoleAdmin, auth.RoleTechnician))
			r.Post("/generate", GenerateAlertHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware(sessionFetcher))
			r.Delete("/{id}", DeleteAlertHandler)
		})
	})

	return r
}
