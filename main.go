package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/SeaWatch/SW-Backend/internal/alerts"
	"github.com/SeaWatch/SW-Backend/internal/auth"
	"github.com/SeaWatch/SW-Backend/internal/db"
	"github.com/SeaWatch/SW-Backend/internal/fleet"
	"github.com/SeaWatch/SW-Backend/internal/logger"
	"github.com/SeaWatch/SW-Backend/internal/middleware"
	"github.com/SeaWatch/SW-Backend/internal/monitoring"
	"github.com/SeaWatch/SW-Backend/internal/zones"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	log := logger.New("main")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	zones.Init()
	alerts.Init()
	fleet.Init()
	monitoring.Init()

	if n := envInt("SWEEP_WORKERS", 0); n > 0 {
		monitoring.Monitor().SetSweepWorkers(n)
	}
	startBackgroundLoops(log)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/zones", zones.SetupRoutes())
	r.Mount("/alerts", alerts.SetupRoutes())
	r.Mount("/boats", fleet.SetupRoutes())
	r.Mount("/monitoring", monitoring.SetupRoutes())

	log.Info().Str("port", port).Msg("server listening")

	if err := http.ListenAndServe("0.0.0.0:"+port, r); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// startBackgroundLoops runs the periodic fleet sweep and the daily
// retention cleanup. SWEEP_INTERVAL_SECONDS=0 disables the sweep.
func startBackgroundLoops(log zerolog.Logger) {
	monitor := monitoring.Monitor()

	sweepSeconds := envInt("SWEEP_INTERVAL_SECONDS", 60)
	if sweepSeconds > 0 {
		interval := time.Duration(sweepSeconds) * time.Second
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for range ticker.C {
				ctx, cancel := context.WithTimeout(context.Background(), interval)
				if _, err := monitor.MonitorAllBoats(ctx); err != nil {
					log.Error().Err(err).Msg("fleet sweep failed")
				}
				cancel()
			}
		}()
		log.Info().Dur("interval", interval).Msg("fleet sweep loop started")
	}

	retentionDays := envInt("ALERT_RETENTION_DAYS", 30)
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if _, err := monitor.CleanupOldAlerts(ctx, retentionDays); err != nil {
				log.Error().Err(err).Msg("alert retention cleanup failed")
			}
			cancel()
		}
	}()
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
