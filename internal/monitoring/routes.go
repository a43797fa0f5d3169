package monitoring

import (
	"net/http"

	"github.com/SeaWatch/SW-Backend/internal/auth"
	"github.com/SeaWatch/SW-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	// Device gateways post fixes at whatever cadence their trackers use;
	// the per-IP limiter keeps a chattering device from flooding us.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitMiddleware(10, 30))
		r.Post("/positions", PositionReportHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(sessionFetcher))
		r.Post("/sweep", SweepHandler)
	})

	return r
}
