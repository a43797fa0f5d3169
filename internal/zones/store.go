package zones

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a zone id does not exist.
var ErrNotFound = errors.New("zone not found")

// Store is the zone registry backed by Postgres. Monitoring reads zones
// fresh through it on every evaluation; nothing is cached.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListZones returns every zone, newest first.
func (s *Store) ListZones(ctx context.Context) ([]Zone, error) {
	var out []Zone
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return out, nil
}

// ListZonesByType returns the zones of a single type.
func (s *Store) ListZonesByType(ctx context.Context, t ZoneType) ([]Zone, error) {
	var out []Zone
	err := s.db.WithContext(ctx).
		Where("type = ?", t).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list zones by type %q: %w", t, err)
	}
	return out, nil
}

// ListZonesByTypes returns zones matching any of the given types.
func (s *Store) ListZonesByTypes(ctx context.Context, types []ZoneType) ([]Zone, error) {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}

	var out []Zone
	err := s.db.WithContext(ctx).
		Where("type = ANY(?)", pq.Array(names)).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list zones by types: %w", err)
	}
	return out, nil
}

func (s *Store) GetZone(ctx context.Context, id uuid.UUID) (*Zone, error) {
	var z Zone
	err := s.db.WithContext(ctx).First(&z, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get zone: %w", err)
	}
	return &z, nil
}

// CreateZone validates the type and geometry before inserting.
func (s *Store) CreateZone(ctx context.Context, z *Zone) error {
	if !z.Type.Valid() {
		return fmt.Errorf("unknown zone type %q", z.Type)
	}
	if err := z.Geometry.Validate(); err != nil {
		return err
	}
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(z).Error; err != nil {
		return fmt.Errorf("create zone: %w", err)
	}
	return nil
}

func (s *Store) UpdateZone(ctx context.Context, z *Zone) error {
	if !z.Type.Valid() {
		return fmt.Errorf("unknown zone type %q", z.Type)
	}
	if err := z.Geometry.Validate(); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&Zone{}).Where("id = ?", z.ID).Updates(map[string]interface{}{
		"name":        z.Name,
		"type":        z.Type,
		"geometry":    z.Geometry,
		"description": z.Description,
		"color":       z.Color,
	})
	if res.Error != nil {
		return fmt.Errorf("update zone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteZone(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Zone{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete zone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByType returns the number of zones per type.
func (s *Store) CountByType(ctx context.Context) ([]TypeCount, error) {
	var out []TypeCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT type, COUNT(*) AS count
		FROM zones.zones
		GROUP BY type
	`).Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("count zones by type: %w", err)
	}
	return out, nil
}
