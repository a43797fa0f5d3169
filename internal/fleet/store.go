package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a boat id does not exist.
var ErrNotFound = errors.New("boat not found")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListBoats(ctx context.Context) ([]Boat, error) {
	var out []Boat
	if err := s.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list boats: %w", err)
	}
	return out, nil
}

func (s *Store) ListBoatsByOwner(ctx context.Context, ownerID string) ([]Boat, error) {
	var out []Boat
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list boats by owner: %w", err)
	}
	return out, nil
}

func (s *Store) GetBoat(ctx context.Context, id uuid.UUID) (*Boat, error) {
	var b Boat
	err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get boat: %w", err)
	}
	return &b, nil
}

func (s *Store) CreateBoat(ctx context.Context, b *Boat) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create boat: %w", err)
	}
	return nil
}

func (s *Store) UpdateBoat(ctx context.Context, b *Boat) error {
	res := s.db.WithContext(ctx).Model(&Boat{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"name":                b.Name,
		"registration_number": b.RegistrationNumber,
		"owner_id":            b.OwnerID,
		"device_id":           b.DeviceID,
		"status":              b.Status,
	})
	if res.Error != nil {
		return fmt.Errorf("update boat: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteBoat(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Boat{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete boat: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordPosition inserts a new fix. Timestamp defaults to now when the
// device did not report one.
func (s *Store) RecordPosition(ctx context.Context, p *GpsPosition) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("record position: %w", err)
	}
	return nil
}

// LatestPositions returns the most recent fix per boat, joined with the
// boat identity. DISTINCT ON keeps this a single index-backed pass.
func (s *Store) LatestPositions(ctx context.Context) ([]LatestPosition, error) {
	var out []LatestPosition
	err := s.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (gp.boat_id)
			gp.boat_id,
			gp.latitude,
			gp.longitude,
			gp.timestamp,
			b.name AS boat_name,
			b.registration_number,
			b.status
		FROM fleet.gps_positions gp
		INNER JOIN fleet.boats b ON b.id = gp.boat_id
		ORDER BY gp.boat_id, gp.timestamp DESC
	`).Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("latest positions: %w", err)
	}
	return out, nil
}

// RecentPositions returns the last n fixes for a boat, newest first.
func (s *Store) RecentPositions(ctx context.Context, boatID uuid.UUID, limit int) ([]GpsPosition, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []GpsPosition
	err := s.db.WithContext(ctx).
		Where("boat_id = ?", boatID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("recent positions: %w", err)
	}
	return out, nil
}

// Trajectory returns a boat's fixes between two instants, oldest first.
func (s *Store) Trajectory(ctx context.Context, boatID uuid.UUID, from, to time.Time) ([]GpsPosition, error) {
	var out []GpsPosition
	err := s.db.WithContext(ctx).
		Where("boat_id = ? AND timestamp BETWEEN ? AND ?", boatID, from, to).
		Order("timestamp ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("trajectory: %w", err)
	}
	return out, nil
}

// DeletePositionsOlderThan prunes the position time series.
func (s *Store) DeletePositionsOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	res := s.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&GpsPosition{})
	if res.Error != nil {
		return 0, fmt.Errorf("cleanup positions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
