package alerts_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SeaWatch/SW-Backend/internal/alerts"
	"github.com/SeaWatch/SW-Backend/internal/db"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

var store *alerts.Store

func TestMain(m *testing.M) {
	// Load .env.local relative to the repo root (two directories up from internal/alerts/).
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		// No database available — skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	// Set up alert tables (idempotent).
	alerts.Init()
	store = alerts.Log()

	os.Exit(m.Run())
}

// createTestAlert inserts an alert for a throwaway boat and registers a
// cleanup function to remove it.
func createTestAlert(t *testing.T, boatID uuid.UUID) *alerts.Alert {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	alert, err := store.Create(context.Background(), alerts.NewAlert{
		BoatID:    boatID,
		Type:      alerts.TypeZoneViolation,
		Severity:  alerts.SeverityWarning,
		Message:   "integration test alert",
		Latitude:  9.52,
		Longitude: -13.68,
	})
	if err != nil {
		t.Fatalf("failed to create test alert: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("id = ?", alert.ID).Delete(&alerts.Alert{})
	})

	return alert
}

// TestAcknowledgeFirstWriteWins verifies that acknowledging an alert twice
// keeps the first acknowledger and timestamp: the second call is a no-op
// that returns the row as it already stands.
func TestAcknowledgeFirstWriteWins(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	alert := createTestAlert(t, uuid.New())
	ctx := context.Background()

	first, err := store.Acknowledge(ctx, alert.ID, "operator-1")
	if err != nil {
		t.Fatalf("first acknowledge: %v", err)
	}
	if !first.Acknowledged {
		t.Fatal("alert should be acknowledged after first call")
	}
	if first.AcknowledgedBy == nil || *first.AcknowledgedBy != "operator-1" {
		t.Fatalf("acknowledged_by = %v, want operator-1", first.AcknowledgedBy)
	}
	if first.AcknowledgedAt == nil {
		t.Fatal("acknowledged_at should be set")
	}

	second, err := store.Acknowledge(ctx, alert.ID, "operator-2")
	if err != nil {
		t.Fatalf("second acknowledge: %v", err)
	}
	if second.AcknowledgedBy == nil || *second.AcknowledgedBy != "operator-1" {
		t.Errorf("second acknowledge overwrote the acknowledger: %v", second.AcknowledgedBy)
	}
	if second.AcknowledgedAt == nil || !second.AcknowledgedAt.Equal(*first.AcknowledgedAt) {
		t.Errorf("second acknowledge changed the timestamp: %v vs %v",
			second.AcknowledgedAt, first.AcknowledgedAt)
	}
}

// TestAcknowledgeUnknownAlert verifies the not-found path maps to ErrNotFound.
func TestAcknowledgeUnknownAlert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	_, err := store.Acknowledge(context.Background(), uuid.New(), "operator-1")
	if err != alerts.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestFindFiltersByBoatAndAcknowledged verifies the filter plumbing
// against real SQL.
func TestFindFiltersByBoatAndAcknowledged(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	boatID := uuid.New()
	a1 := createTestAlert(t, boatID)
	a2 := createTestAlert(t, boatID)
	createTestAlert(t, uuid.New()) // different boat, must not appear

	ctx := context.Background()
	if _, err := store.Acknowledge(ctx, a1.ID, "operator-1"); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}

	ackFalse := false
	open, err := store.Find(ctx, alerts.Filter{BoatID: &boatID, Acknowledged: &ackFalse})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("expected 1 open alert for boat, got %d", len(open))
	}
	if open[0].ID != a2.ID {
		t.Errorf("wrong alert returned: %s", open[0].ID)
	}
}

// TestCleanupSparesUnacknowledged verifies that retention cleanup deletes
// old acknowledged alerts but never touches open ones, however old.
func TestCleanupSparesUnacknowledged(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	boatID := uuid.New()
	acked := createTestAlert(t, boatID)
	open := createTestAlert(t, boatID)
	ctx := context.Background()

	if _, err := store.Acknowledge(ctx, acked.ID, "operator-1"); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}

	// Backdate both alerts well past the retention period.
	old := time.Now().AddDate(0, 0, -60)
	if err := db.DB.Model(&alerts.Alert{}).
		Where("id IN ?", []uuid.UUID{acked.ID, open.ID}).
		Update("created_at", old).Error; err != nil {
		t.Fatalf("backdate created_at: %v", err)
	}
	if err := db.DB.Model(&alerts.Alert{}).
		Where("id = ?", acked.ID).
		Update("acknowledged_at", old).Error; err != nil {
		t.Fatalf("backdate acknowledged_at: %v", err)
	}

	if _, err := store.DeleteAcknowledgedOlderThan(ctx, 30); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if _, err := store.Get(ctx, acked.ID); err != alerts.ErrNotFound {
		t.Errorf("old acknowledged alert should be gone, got %v", err)
	}
	if _, err := store.Get(ctx, open.ID); err != nil {
		t.Errorf("open alert must survive cleanup: %v", err)
	}
}
