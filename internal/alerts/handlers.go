package alerts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/SeaWatch/SW-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func ListAlertsHandler(w http.ResponseWriter, r *http.Request) {
	var f Filter
	q := r.URL.Query()

	if raw := q.Get("boat_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid boat_id", http.StatusBadRequest)
			return
		}
		f.BoatID = &id
	}
	if raw := q.Get("type"); raw != "" {
		t := AlertType(raw)
		if !t.Valid() {
			http.Error(w, "Unknown alert type", http.StatusBadRequest)
			return
		}
		f.Type = &t
	}
	if raw := q.Get("severity"); raw != "" {
		s := Severity(raw)
		if !s.Valid() {
			http.Error(w, "Unknown severity", http.StatusBadRequest)
			return
		}
		f.Severity = &s
	}
	if raw := q.Get("acknowledged"); raw != "" {
		ack, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "Invalid acknowledged flag", http.StatusBadRequest)
			return
		}
		f.Acknowledged = &ack
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		f.Limit = limit
	}

	result, err := store.Find(r.Context(), f)
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ActiveAlertsHandler returns the unacknowledged alerts, newest first.
func ActiveAlertsHandler(w http.ResponseWriter, r *http.Request) {
	ack := false
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	result, err := store.Find(r.Context(), Filter{Acknowledged: &ack, Limit: limit})
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func GetAlertHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid alert id", http.StatusBadRequest)
		return
	}

	alert, err := store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Alert not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alert)
}

func AcknowledgeAlertHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid alert id", http.StatusBadRequest)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	alert, err := store.Acknowledge(r.Context(), id, userID)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Alert not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to acknowledge alert: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alert)
}

func DeleteAlertHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid alert id", http.StatusBadRequest)
		return
	}

	err = store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Alert not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete alert: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func AlertStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context())
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// GenerateAlertHandler creates a manual alert: SOS calls raised from the
// dashboard and drill/test alerts. The boat must exist as far as the
// caller is concerned, but the store does not verify it here.
func GenerateAlertHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		BoatID    uuid.UUID `json:"boat_id"`
		Type      AlertType `json:"type"`
		Severity  Severity  `json:"severity"`
		Message   string    `json:"message"`
		Latitude  float64   `json:"latitude"`
		Longitude float64   `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.BoatID == uuid.Nil {
		http.Error(w, "boat_id is required", http.StatusBadRequest)
		return
	}

	if input.Type == "" {
		input.Type = TypeSOS
	}
	if input.Severity == "" {
		input.Severity = SeverityCritical
	}
	if input.Message == "" {
		input.Message = "Manual alert raised from the dashboard"
	}

	alert, err := store.Create(r.Context(), NewAlert{
		BoatID:    input.BoatID,
		Type:      input.Type,
		Severity:  input.Severity,
		Message:   input.Message,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	})
	if err != nil {
		http.Error(w, "Failed to create alert: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(alert)
}
