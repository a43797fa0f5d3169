package zones

import (
	"time"

	"github.com/SeaWatch/SW-Backend/internal/geo"
	"github.com/google/uuid"
)

// ZoneType governs how monitoring treats a zone: fishing zones are
// permissive, everything else is a violation when entered.
type ZoneType string

const (
	TypeFishing    ZoneType = "fishing"
	TypeRestricted ZoneType = "restricted"
	TypeProtected  ZoneType = "protected"
	TypeProhibited ZoneType = "prohibited"
)

// Valid reports whether t is one of the known zone types.
func (t ZoneType) Valid() bool {
	switch t {
	case TypeFishing, TypeRestricted, TypeProtected, TypeProhibited:
		return true
	}
	return false
}

type Zone struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string       `gorm:"size:100;not null" json:"name"`
	Type        ZoneType     `gorm:"size:20;default:'fishing';index" json:"type"`
	Geometry    geo.Geometry `gorm:"type:text;not null" json:"geometry"`
	Description string       `json:"description"`
	Color       string       `gorm:"size:7;default:'#0000FF'" json:"color"`
	CreatedBy   string       `gorm:"size:64" json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Zone) TableName() string { return "zones.zones" }

// TypeCount is one row of the per-type zone statistics.
type TypeCount struct {
	Type  ZoneType `json:"type"`
	Count int64    `json:"count"`
}
