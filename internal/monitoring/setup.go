package monitoring

import (
	"github.com/SeaWatch/SW-Backend/internal/alerts"
	"github.com/SeaWatch/SW-Backend/internal/fleet"
	"github.com/SeaWatch/SW-Backend/internal/logger"
	"github.com/SeaWatch/SW-Backend/internal/zones"
)

var (
	service    *Service
	fleetStore positionRecorder
)

// Init wires the monitoring service to the gorm-backed collaborators.
// Must run after zones.Init, alerts.Init and fleet.Init.
func Init() {
	src := fleet.Source()
	fleetStore = src
	service = NewService(zones.Registry(), alerts.Log(), src, logger.New("monitoring"))
}

// Monitor returns the wired service for the background sweep loop.
func Monitor() *Service { return service }
