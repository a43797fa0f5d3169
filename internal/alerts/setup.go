package alerts

import (
	"log"

	"github.com/SeaWatch/SW-Backend/internal/db"
)

var store *Store

func Init() {
	if err := db.EnsureSchema(db.DB, "alerts"); err != nil {
		log.Fatal("Failed to ensure schema alerts: ", err)
	}

	if err := db.DB.AutoMigrate(&Alert{}); err != nil {
		log.Fatal("Failed to auto-migrate alert tables: ", err)
	}

	store = NewStore(db.DB)
}

// Log exposes the package store to the monitoring service.
func Log() *Store { return store }
