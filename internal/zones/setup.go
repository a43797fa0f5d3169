package zones

import (
	"log"

	"github.com/SeaWatch/SW-Backend/internal/db"
)

var store *Store

func Init() {
	if err := db.EnsureSchema(db.DB, "zones"); err != nil {
		log.Fatal("Failed to ensure schema zones: ", err)
	}

	if err := db.DB.AutoMigrate(&Zone{}); err != nil {
		log.Fatal("Failed to auto-migrate zone tables: ", err)
	}

	store = NewStore(db.DB)
}

// Registry exposes the package store to the monitoring service.
func Registry() *Store { return store }
