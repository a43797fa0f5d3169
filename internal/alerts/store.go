package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an alert id does not exist.
var ErrNotFound = errors.New("alert not found")

// Store is the durable alert log.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new alert, assigning its id and creation timestamp.
func (s *Store) Create(ctx context.Context, in NewAlert) (*Alert, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("unknown alert type %q", in.Type)
	}
	if !in.Severity.Valid() {
		return nil, fmt.Errorf("unknown severity %q", in.Severity)
	}

	alert := Alert{
		ID:        uuid.New(),
		BoatID:    in.BoatID,
		ZoneID:    in.ZoneID,
		Type:      in.Type,
		Severity:  in.Severity,
		Message:   in.Message,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	if err := s.db.WithContext(ctx).Create(&alert).Error; err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	return &alert, nil
}

// Find returns alerts matching the filter, newest first.
func (s *Store) Find(ctx context.Context, f Filter) ([]Alert, error) {
	q := s.db.WithContext(ctx).Model(&Alert{})

	if f.BoatID != nil {
		q = q.Where("boat_id = ?", *f.BoatID)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Severity != nil {
		q = q.Where("severity = ?", *f.Severity)
	}
	if f.Acknowledged != nil {
		q = q.Where("acknowledged = ?", *f.Acknowledged)
	}

	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []Alert
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find alerts: %w", err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Alert, error) {
	var a Alert
	err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &a, nil
}

// Acknowledge marks an alert as reviewed. First write wins: the update
// is conditional on acknowledged = false, so a second call leaves the
// original acknowledger and timestamp untouched and returns the row
// as it already stands.
func (s *Store) Acknowledge(ctx context.Context, id uuid.UUID, userID string) (*Alert, error) {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&Alert{}).
		Where("id = ? AND acknowledged = ?", id, false).
		Updates(map[string]interface{}{
			"acknowledged":    true,
			"acknowledged_by": userID,
			"acknowledged_at": now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("acknowledge alert: %w", res.Error)
	}

	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Alert{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete alert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAcknowledgedOlderThan removes acknowledged alerts whose
// acknowledgement is older than the given number of days. Unacknowledged
// alerts are never eligible for cleanup.
func (s *Store) DeleteAcknowledgedOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	res := s.db.WithContext(ctx).
		Where("acknowledged = ? AND acknowledged_at < ?", true, cutoff).
		Delete(&Alert{})
	if res.Error != nil {
		return 0, fmt.Errorf("cleanup alerts: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// GetStats returns the dashboard counters in one round trip.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE acknowledged = FALSE) AS active,
			COUNT(*) FILTER (WHERE acknowledged = TRUE) AS resolved,
			COUNT(*) FILTER (WHERE severity = 'critical' AND acknowledged = FALSE) AS critical,
			COUNT(*) FILTER (WHERE severity = 'warning') AS warning,
			COUNT(*) FILTER (WHERE severity = 'info') AS info
		FROM alerts.alerts
	`).Scan(&st).Error
	if err != nil {
		return nil, fmt.Errorf("alert stats: %w", err)
	}
	return &st, nil
}
