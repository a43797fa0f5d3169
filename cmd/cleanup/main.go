// Command cleanup runs the retention policy once: acknowledged alerts
// older than the retention period and GPS fixes older than the position
// retention period are deleted.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/SeaWatch/SW-Backend/internal/alerts"
	"github.com/SeaWatch/SW-Backend/internal/db"
	"github.com/SeaWatch/SW-Backend/internal/fleet"
	"github.com/joho/godotenv"
)

func main() {
	alertDays := flag.Int("alert-days", 30, "delete acknowledged alerts older than this many days")
	positionDays := flag.Int("position-days", 90, "delete GPS positions older than this many days")
	flag.Parse()

	_ = godotenv.Load(".env.local")
	db.Connect()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	alertStore := alerts.NewStore(db.DB)
	deletedAlerts, err := alertStore.DeleteAcknowledgedOlderThan(ctx, *alertDays)
	if err != nil {
		log.Fatalf("Alert cleanup failed: %v", err)
	}

	fleetStore := fleet.NewStore(db.DB)
	deletedPositions, err := fleetStore.DeletePositionsOlderThan(ctx, *positionDays)
	if err != nil {
		log.Fatalf("Position cleanup failed: %v", err)
	}

	log.Printf("Cleanup complete: %d alerts, %d positions removed", deletedAlerts, deletedPositions)
}
