package main

import (
	"flag"
	"log"

	"github.com/SeaWatch/SW-Backend/internal/alerts"
	"github.com/SeaWatch/SW-Backend/internal/auth"
	"github.com/SeaWatch/SW-Backend/internal/db"
	"github.com/SeaWatch/SW-Backend/internal/fleet"
	"github.com/SeaWatch/SW-Backend/internal/seeds"
	"github.com/SeaWatch/SW-Backend/internal/zones"
	"github.com/joho/godotenv"
)

func main() {
	path := flag.String("file", "seeds/data.yaml", "path to the YAML fixture file")
	flag.Parse()

	_ = godotenv.Load(".env.local")
	db.Connect()

	auth.Init()
	zones.Init()
	alerts.Init()
	fleet.Init()

	if err := seeds.SeedAll(*path); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
