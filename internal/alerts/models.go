package alerts

import (
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	TypeZoneViolation AlertType = "zone_violation"
	TypeDriftWarning  AlertType = "drift_warning"
	TypeSOS           AlertType = "sos"
	TypeSpeed         AlertType = "speed"
	TypeBattery       AlertType = "battery"
	TypeSensorLoss    AlertType = "sensor_loss"
)

func (t AlertType) Valid() bool {
	switch t {
	case TypeZoneViolation, TypeDriftWarning, TypeSOS, TypeSpeed, TypeBattery, TypeSensorLoss:
		return true
	}
	return false
}

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

// Alert is the durable record of a detected event. ZoneID is nil for
// drift alerts, which are not tied to a single zone. Acknowledgement is
// a one-way transition: AcknowledgedBy/At are written once and never
// overwritten.
type Alert struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BoatID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"boat_id"`
	ZoneID         *uuid.UUID `gorm:"type:uuid;index" json:"zone_id"`
	Type           AlertType  `gorm:"size:30;not null;index" json:"type"`
	Severity       Severity   `gorm:"size:10;not null" json:"severity"`
	Message        string     `gorm:"not null" json:"message"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	Acknowledged   bool       `gorm:"default:false;index:idx_alerts_ack_created" json:"acknowledged"`
	AcknowledgedBy *string    `gorm:"size:64" json:"acknowledged_by"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	CreatedAt      time.Time  `gorm:"index:idx_alerts_ack_created,sort:desc" json:"created_at"`
}

func (Alert) TableName() string { return "alerts.alerts" }

// NewAlert carries everything needed to create an alert; the store
// assigns the id and creation timestamp.
type NewAlert struct {
	BoatID    uuid.UUID
	ZoneID    *uuid.UUID
	Type      AlertType
	Severity  Severity
	Message   string
	Latitude  float64
	Longitude float64
}

// Filter narrows Find results. Nil fields are ignored.
type Filter struct {
	BoatID       *uuid.UUID
	Type         *AlertType
	Severity     *Severity
	Acknowledged *bool
	Limit        int
}

// Stats mirrors the dashboard counters: totals by acknowledgement state
// and severity.
type Stats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Resolved int64 `json:"resolved"`
	Critical int64 `json:"critical"`
	Warning  int64 `json:"warning"`
	Info     int64 `json:"info"`
}
