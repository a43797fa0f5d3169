package zones

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/SeaWatch/SW-Backend/internal/geo"
	"github.com/SeaWatch/SW-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func ListZonesHandler(w http.ResponseWriter, r *http.Request) {
	var (
		result []Zone
		err    error
	)

	// Optional ?types=restricted,prohibited filter.
	if raw := r.URL.Query().Get("types"); raw != "" {
		var types []ZoneType
		for _, part := range strings.Split(raw, ",") {
			t := ZoneType(strings.TrimSpace(part))
			if !t.Valid() {
				http.Error(w, "Unknown zone type: "+string(t), http.StatusBadRequest)
				return
			}
			types = append(types, t)
		}
		result, err = store.ListZonesByTypes(r.Context(), types)
	} else {
		result, err = store.ListZones(r.Context())
	}

	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func GetZoneHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid zone id", http.StatusBadRequest)
		return
	}

	zone, err := store.GetZone(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Zone not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(zone)
}

type zoneInput struct {
	Name        string       `json:"name"`
	Type        ZoneType     `json:"type"`
	Geometry    geo.Geometry `json:"geometry"`
	Description string       `json:"description"`
	Color       string       `json:"color"`
}

func CreateZoneHandler(w http.ResponseWriter, r *http.Request) {
	var input zoneInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "Zone name is required", http.StatusBadRequest)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())

	zone := Zone{
		Name:        input.Name,
		Type:        input.Type,
		Geometry:    input.Geometry,
		Description: input.Description,
		Color:       input.Color,
		CreatedBy:   userID,
	}
	if zone.Color == "" {
		zone.Color = "#0000FF"
	}

	if err := store.CreateZone(r.Context(), &zone); err != nil {
		if errors.Is(err, geo.ErrInvalidGeometry) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create zone: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(zone)
}

func UpdateZoneHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid zone id", http.StatusBadRequest)
		return
	}

	var input zoneInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	zone := Zone{
		ID:          id,
		Name:        input.Name,
		Type:        input.Type,
		Geometry:    input.Geometry,
		Description: input.Description,
		Color:       input.Color,
	}

	err = store.UpdateZone(r.Context(), &zone)
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "Zone not found", http.StatusNotFound)
	case errors.Is(err, geo.ErrInvalidGeometry):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		http.Error(w, "Failed to update zone: "+err.Error(), http.StatusInternalServerError)
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(zone)
	}
}

func DeleteZoneHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid zone id", http.StatusBadRequest)
		return
	}

	err = store.DeleteZone(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Zone not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete zone: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ZoneStatsHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := store.CountByType(r.Context())
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counts)
}
