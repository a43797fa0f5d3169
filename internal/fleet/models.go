package fleet

import (
	"time"

	"github.com/google/uuid"
)

type Boat struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string    `gorm:"size:100;not null" json:"name"`
	RegistrationNumber string    `gorm:"size:50;uniqueIndex" json:"registration_number"`
	OwnerID            string    `gorm:"size:64;index" json:"owner_id"`
	DeviceID           string    `gorm:"size:100" json:"device_id"`
	Status             string    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Boat) TableName() string { return "fleet.boats" }

// GpsPosition is an immutable fix reported by a boat's tracking device.
// Rows are only ever inserted and, eventually, pruned by retention.
type GpsPosition struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BoatID    uuid.UUID `gorm:"type:uuid;index:idx_positions_boat_time;not null" json:"boat_id"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Speed     *float64  `json:"speed"`
	Heading   *float64  `json:"heading"`
	Altitude  *float64  `json:"altitude"`
	Timestamp time.Time `gorm:"index:idx_positions_boat_time,sort:desc;not null" json:"timestamp"`
}

func (GpsPosition) TableName() string { return "fleet.gps_positions" }

// LatestPosition is one row of the latest-fix-per-boat sweep query,
// joined with the boat identity the alert templates need.
type LatestPosition struct {
	BoatID             uuid.UUID `json:"boat_id"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	Timestamp          time.Time `json:"timestamp"`
	BoatName           string    `json:"boat_name"`
	RegistrationNumber string    `json:"registration_number"`
	Status             string    `json:"status"`
}
