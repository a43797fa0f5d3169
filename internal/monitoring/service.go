// Package monitoring evaluates boat positions against the configured
// zones and produces deduplicated alerts: zone violations when a boat
// enters a restricted, protected or prohibited zone, and drift warnings
// when a boat is outside every authorized fishing zone.
package monitoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SeaWatch/SW-Backend/internal/alerts"
	"github.com/SeaWatch/SW-Backend/internal/fleet"
	"github.com/SeaWatch/SW-Backend/internal/geo"
	"github.com/SeaWatch/SW-Backend/internal/zones"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// violationSuppressionWindow keeps a stationary boat inside a
	// forbidden zone from raising an alert on every poll.
	violationSuppressionWindow = 10 * time.Minute
	// driftSuppressionWindow is wider: drift is a standing condition,
	// not a per-sample event.
	driftSuppressionWindow = 30 * time.Minute

	violationLookback = 10
	driftLookback     = 5

	defaultSweepWorkers = 8
)

// ErrInvalidCoordinate rejects out-of-range latitude/longitude before
// any evaluation starts.
var ErrInvalidCoordinate = errors.New("latitude or longitude out of range")

// ZoneRegistry supplies the current zone set. Implemented by *zones.Store.
type ZoneRegistry interface {
	ListZones(ctx context.Context) ([]zones.Zone, error)
	ListZonesByType(ctx context.Context, t zones.ZoneType) ([]zones.Zone, error)
}

// AlertStore is the durable alert log. Implemented by *alerts.Store.
type AlertStore interface {
	Create(ctx context.Context, in alerts.NewAlert) (*alerts.Alert, error)
	Find(ctx context.Context, f alerts.Filter) ([]alerts.Alert, error)
	DeleteAcknowledgedOlderThan(ctx context.Context, days int) (int64, error)
}

// FleetSource resolves boats and their latest fixes. Implemented by *fleet.Store.
type FleetSource interface {
	GetBoat(ctx context.Context, id uuid.UUID) (*fleet.Boat, error)
	LatestPositions(ctx context.Context) ([]fleet.LatestPosition, error)
}

// Report is the outcome of evaluating one position fix.
type Report struct {
	ViolationAlerts []alerts.Alert `json:"violation_alerts"`
	DriftAlert      *alerts.Alert  `json:"drift_alert"`
}

// Service is stateless between invocations: zones and alerts are read
// fresh from the collaborators on every call so the evaluation always
// sees the current configuration.
type Service struct {
	zones  ZoneRegistry
	alerts AlertStore
	fleet  FleetSource
	log    zerolog.Logger

	sweepWorkers int
}

func NewService(zr ZoneRegistry, as AlertStore, fs FleetSource, log zerolog.Logger) *Service {
	return &Service{
		zones:        zr,
		alerts:       as,
		fleet:        fs,
		log:          log,
		sweepWorkers: defaultSweepWorkers,
	}
}

// SetSweepWorkers bounds the fleet-sweep worker pool.
func (s *Service) SetSweepWorkers(n int) {
	if n > 0 {
		s.sweepWorkers = n
	}
}

// CheckPosition evaluates one fix against every non-fishing zone and
// returns the alerts created during this call. A boat that no longer
// exists yields an empty result, not an error. Zones with malformed
// geometry are skipped and logged. A hit inside a zone that already has
// an unacknowledged alert younger than the suppression window creates
// nothing for that zone; other zones are still evaluated.
func (s *Service) CheckPosition(ctx context.Context, boatID uuid.UUID, lat, lng float64) ([]alerts.Alert, error) {
	boat, err := s.fleet.GetBoat(ctx, boatID)
	if errors.Is(err, fleet.ErrNotFound) {
		s.log.Warn().Stringer("boat_id", boatID).Msg("position report for unknown boat, skipping evaluation")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch boat: %w", err)
	}

	allZones, err := s.zones.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch zones: %w", err)
	}

	recent, err := s.alerts.Find(ctx, alerts.Filter{
		BoatID:       &boatID,
		Acknowledged: boolPtr(false),
		Limit:        violationLookback,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch recent alerts: %w", err)
	}

	point := geo.Point{Lat: lat, Lng: lng}
	var created []alerts.Alert

	for _, zone := range allZones {
		if zone.Type == zones.TypeFishing {
			continue
		}

		if err := zone.Geometry.Validate(); err != nil {
			s.log.Warn().
				Err(err).
				Stringer("zone_id", zone.ID).
				Str("zone_name", zone.Name).
				Msg("skipping zone with invalid geometry")
			continue
		}

		if !zone.Geometry.ContainsPoint(point) {
			continue
		}

		if hasRecentAlertForZone(recent, zone.ID, violationSuppressionWindow) {
			s.log.Debug().
				Stringer("boat_id", boatID).
				Str("zone_name", zone.Name).
				Msg("violation suppressed, unacknowledged alert already open for this zone")
			continue
		}

		zoneID := zone.ID
		alert, err := s.alerts.Create(ctx, alerts.NewAlert{
			BoatID:    boatID,
			ZoneID:    &zoneID,
			Type:      alerts.TypeZoneViolation,
			Severity:  violationSeverity(zone.Type),
			Message:   violationMessage(boat, &zone),
			Latitude:  lat,
			Longitude: lng,
		})
		if err != nil {
			return created, fmt.Errorf("persist violation alert: %w", err)
		}

		s.log.Info().
			Stringer("boat_id", boatID).
			Str("boat_name", boat.Name).
			Str("zone_name", zone.Name).
			Str("zone_type", string(zone.Type)).
			Str("severity", string(alert.Severity)).
			Msg("zone violation alert created")

		created = append(created, *alert)
	}

	return created, nil
}

// CheckDrift reports a boat outside every authorized fishing zone.
// With no fishing zones configured, drift cannot be evaluated and no
// alert is raised. A recent unacknowledged drift warning suppresses a
// new one for 30 minutes.
func (s *Service) CheckDrift(ctx context.Context, boatID uuid.UUID, lat, lng float64) (*alerts.Alert, error) {
	authorized, err := s.zones.ListZonesByType(ctx, zones.TypeFishing)
	if err != nil {
		return nil, fmt.Errorf("fetch fishing zones: %w", err)
	}
	if len(authorized) == 0 {
		return nil, nil
	}

	point := geo.Point{Lat: lat, Lng: lng}
	for _, zone := range authorized {
		if err := zone.Geometry.Validate(); err != nil {
			s.log.Warn().
				Err(err).
				Stringer("zone_id", zone.ID).
				Str("zone_name", zone.Name).
				Msg("skipping fishing zone with invalid geometry")
			continue
		}
		if zone.Geometry.ContainsPoint(point) {
			return nil, nil
		}
	}

	boat, err := s.fleet.GetBoat(ctx, boatID)
	if errors.Is(err, fleet.ErrNotFound) {
		s.log.Warn().Stringer("boat_id", boatID).Msg("drift check for unknown boat, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch boat: %w", err)
	}

	driftType := alerts.TypeDriftWarning
	recent, err := s.alerts.Find(ctx, alerts.Filter{
		BoatID:       &boatID,
		Type:         &driftType,
		Acknowledged: boolPtr(false),
		Limit:        driftLookback,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch recent drift alerts: %w", err)
	}
	if hasRecentAlert(recent, driftSuppressionWindow) {
		return nil, nil
	}

	alert, err := s.alerts.Create(ctx, alerts.NewAlert{
		BoatID:    boatID,
		ZoneID:    nil,
		Type:      alerts.TypeDriftWarning,
		Severity:  alerts.SeverityWarning,
		Message:   driftMessage(boat),
		Latitude:  lat,
		Longitude: lng,
	})
	if err != nil {
		return nil, fmt.Errorf("persist drift alert: %w", err)
	}

	s.log.Info().
		Stringer("boat_id", boatID).
		Str("boat_name", boat.Name).
		Msg("drift alert created")

	return alert, nil
}

// OnPositionReport is the entry point for every new fix. The two
// detectors have no data dependency on each other and run concurrently;
// both must finish before the merged report is returned. Any
// collaborator failure aborts the evaluation and propagates so the
// caller never mistakes a failed check for "no violation".
func (s *Service) OnPositionReport(ctx context.Context, boatID uuid.UUID, lat, lng float64) (*Report, error) {
	if !geo.ValidCoordinate(lat, lng) {
		return nil, fmt.Errorf("%w: lat=%f lng=%f", ErrInvalidCoordinate, lat, lng)
	}

	var report Report
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		violations, err := s.CheckPosition(ctx, boatID, lat, lng)
		if err != nil {
			return err
		}
		report.ViolationAlerts = violations
		return nil
	})
	g.Go(func() error {
		drift, err := s.CheckDrift(ctx, boatID, lat, lng)
		if err != nil {
			return err
		}
		report.DriftAlert = drift
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}

// MonitorAllBoats re-evaluates the latest known fix of every boat.
// Boats are dispatched to a bounded worker pool; one boat's failure is
// logged and does not abort the sweep for the rest.
func (s *Service) MonitorAllBoats(ctx context.Context) ([]alerts.Alert, error) {
	positions, err := s.fleet.LatestPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch latest positions: %w", err)
	}

	var (
		mu        sync.Mutex
		generated []alerts.Alert
	)

	g := new(errgroup.Group)
	g.SetLimit(s.sweepWorkers)

	for _, pos := range positions {
		pos := pos
		g.Go(func() error {
			report, err := s.OnPositionReport(ctx, pos.BoatID, pos.Latitude, pos.Longitude)
			if err != nil {
				s.log.Error().
					Err(err).
					Stringer("boat_id", pos.BoatID).
					Str("boat_name", pos.BoatName).
					Msg("sweep evaluation failed for boat")
				return nil
			}

			mu.Lock()
			generated = append(generated, report.ViolationAlerts...)
			if report.DriftAlert != nil {
				generated = append(generated, *report.DriftAlert)
			}
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	if len(generated) > 0 {
		s.log.Info().Int("alerts", len(generated)).Msg("fleet sweep complete")
	}
	return generated, nil
}

// CleanupOldAlerts removes acknowledged alerts older than the retention
// period. Unacknowledged alerts are never touched.
func (s *Service) CleanupOldAlerts(ctx context.Context, days int) (int64, error) {
	deleted, err := s.alerts.DeleteAcknowledgedOlderThan(ctx, days)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Int("retention_days", days).Msg("old acknowledged alerts removed")
	}
	return deleted, nil
}

func violationSeverity(t zones.ZoneType) alerts.Severity {
	if t == zones.TypeProhibited {
		return alerts.SeverityCritical
	}
	return alerts.SeverityWarning
}

func hasRecentAlertForZone(list []alerts.Alert, zoneID uuid.UUID, window time.Duration) bool {
	now := time.Now()
	for _, a := range list {
		if a.ZoneID == nil || *a.ZoneID != zoneID {
			continue
		}
		if now.Sub(a.CreatedAt) < window {
			return true
		}
	}
	return false
}

func hasRecentAlert(list []alerts.Alert, window time.Duration) bool {
	now := time.Now()
	for _, a := range list {
		if now.Sub(a.CreatedAt) < window {
			return true
		}
	}
	return false
}

func boolPtr(b bool) *bool { return &b }
