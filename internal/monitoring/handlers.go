package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SeaWatch/SW-Backend/internal/fleet"
	"github.com/SeaWatch/SW-Backend/internal/geo"
	"github.com/google/uuid"
)

// positionRecorder is the slice of the fleet store the ingest handler
// needs. Implemented by *fleet.Store.
type positionRecorder interface {
	RecordPosition(ctx context.Context, p *fleet.GpsPosition) error
}

type positionReportInput struct {
	BoatID    uuid.UUID `json:"boat_id"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Speed     *float64  `json:"speed"`
	Heading   *float64  `json:"heading"`
	Altitude  *float64  `json:"altitude"`
}

type positionReportResponse struct {
	Position        *fleet.GpsPosition `json:"position"`
	Report          *Report            `json:"report,omitempty"`
	MonitoringError string             `json:"monitoring_error,omitempty"`
}

// PositionReportHandler is the ingestion boundary: it persists the fix,
// runs the monitoring evaluation, and returns both. A monitoring
// failure does not fail the request; the position is already written,
// so the response carries the error explicitly instead of implying
// that no violation occurred.
func PositionReportHandler(w http.ResponseWriter, r *http.Request) {
	var input positionReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.BoatID == uuid.Nil || input.Latitude == nil || input.Longitude == nil {
		http.Error(w, "boat_id, latitude and longitude are required", http.StatusBadRequest)
		return
	}
	lat, lng := *input.Latitude, *input.Longitude
	if !geo.ValidCoordinate(lat, lng) {
		http.Error(w, "latitude or longitude out of range", http.StatusBadRequest)
		return
	}

	position := fleet.GpsPosition{
		BoatID:    input.BoatID,
		Latitude:  lat,
		Longitude: lng,
		Speed:     input.Speed,
		Heading:   input.Heading,
		Altitude:  input.Altitude,
	}
	if err := fleetStore.RecordPosition(r.Context(), &position); err != nil {
		http.Error(w, "Failed to record position: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := positionReportResponse{Position: &position}

	report, err := service.OnPositionReport(r.Context(), input.BoatID, lat, lng)
	if err != nil {
		if errors.Is(err, ErrInvalidCoordinate) {
			// Coordinates were validated above; reaching this means the
			// validation rules diverged.
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp.MonitoringError = "monitoring could not complete: " + err.Error()
	} else {
		resp.Report = report
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// SweepHandler triggers a full-fleet re-evaluation on demand.
func SweepHandler(w http.ResponseWriter, r *http.Request) {
	generated, err := service.MonitorAllBoats(r.Context())
	if err != nil {
		http.Error(w, "Sweep failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"alerts_generated": len(generated),
		"alerts":           generated,
	})
}
