package fleet

import (
	"log"

	"github.com/SeaWatch/SW-Backend/internal/db"
)

var store *Store

func Init() {
	if err := db.EnsureSchema(db.DB, "fleet"); err != nil {
		log.Fatal("Failed to ensure schema fleet: ", err)
	}

	if err := db.DB.AutoMigrate(&Boat{}, &GpsPosition{}); err != nil {
		log.Fatal("Failed to auto-migrate fleet tables: ", err)
	}

	store = NewStore(db.DB)
}

// Source exposes the package store to the monitoring service.
func Source() *Store { return store }
