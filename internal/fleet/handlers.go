package fleet

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func ListBoatsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		boats []Boat
		err   error
	)
	if owner := r.URL.Query().Get("owner_id"); owner != "" {
		boats, err = store.ListBoatsByOwner(r.Context(), owner)
	} else {
		boats, err = store.ListBoats(r.Context())
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(boats)
}

func GetBoatHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid boat id", http.StatusBadRequest)
		return
	}

	boat, err := store.GetBoat(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Boat not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(boat)
}

type boatInput struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	OwnerID            string `json:"owner_id"`
	DeviceID           string `json:"device_id"`
	Status             string `json:"status"`
}

func CreateBoatHandler(w http.ResponseWriter, r *http.Request) {
	var input boatInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "Boat name is required", http.StatusBadRequest)
		return
	}

	boat := Boat{
		Name:               input.Name,
		RegistrationNumber: input.RegistrationNumber,
		OwnerID:            input.OwnerID,
		DeviceID:           input.DeviceID,
		Status:             input.Status,
	}
	if boat.Status == "" {
		boat.Status = "active"
	}

	if err := store.CreateBoat(r.Context(), &boat); err != nil {
		http.Error(w, "Failed to create boat: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(boat)
}

func UpdateBoatHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid boat id", http.StatusBadRequest)
		return
	}

	var input boatInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	boat := Boat{
		ID:                 id,
		Name:               input.Name,
		RegistrationNumber: input.RegistrationNumber,
		OwnerID:            input.OwnerID,
		DeviceID:           input.DeviceID,
		Status:             input.Status,
	}

	err = store.UpdateBoat(r.Context(), &boat)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Boat not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update boat: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(boat)
}

func DeleteBoatHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid boat id", http.StatusBadRequest)
		return
	}

	err = store.DeleteBoat(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Boat not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete boat: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BoatPositionsHandler returns recent fixes, or a trajectory when both
// ?from and ?to are given (RFC 3339).
func BoatPositionsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid boat id", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	fromRaw, toRaw := q.Get("from"), q.Get("to")

	var positions []GpsPosition
	if fromRaw != "" && toRaw != "" {
		from, err1 := time.Parse(time.RFC3339, fromRaw)
		to, err2 := time.Parse(time.RFC3339, toRaw)
		if err1 != nil || err2 != nil {
			http.Error(w, "from/to must be RFC 3339 timestamps", http.StatusBadRequest)
			return
		}
		positions, err = store.Trajectory(r.Context(), id, from, to)
	} else {
		limit := 50
		if raw := q.Get("limit"); raw != "" {
			if n, perr := strconv.Atoi(raw); perr == nil && n > 0 {
				limit = n
			}
		}
		positions, err = store.RecentPositions(r.Context(), id, limit)
	}

	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(positions)
}

// LatestPositionsHandler powers the live map: one fix per boat.
func LatestPositionsHandler(w http.ResponseWriter, r *http.Request) {
	positions, err := store.LatestPositions(r.Context())
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(positions)
}
