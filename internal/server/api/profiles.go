// Package api provides HTTP API handlers for the Handfield tuning profiles.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aryamehta0302/handfield/internal/gesture"
	"github.com/aryamehta0302/handfield/internal/store"
)

// Tuner applies classifier thresholds to the running pipeline. The engine
// implements it; a nil Tuner limits the API to persistence.
type Tuner interface {
	SetTuning(gesture.Tuning)
}

// ProfileHandler handles HTTP requests for tuning profile resources.
type ProfileHandler struct {
	store *store.Store
	tuner Tuner
}

// NewProfileHandler creates a new ProfileHandler with the given store.
func NewProfileHandler(s *store.Store, tuner Tuner) *ProfileHandler {
	return &ProfileHandler{store: s, tuner: tuner}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/profiles or /api/profiles/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/profiles
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/profiles/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type tuningPayload struct {
	ClosedReference   float64 `json:"closed_reference"`
	OpenReference     float64 `json:"open_reference"`
	FingerExtendedMin float64 `json:"finger_extended_min"`
	PinchDistanceMax  float64 `json:"pinch_distance_max"`
	PalmDeadband      float64 `json:"palm_deadband"`
	PeaceTensionMax   float64 `json:"peace_tension_max"`
	PointTensionMin   float64 `json:"point_tension_min"`
	PinchTensionMin   float64 `json:"pinch_tension_min"`
	PalmTensionMax    float64 `json:"palm_tension_max"`
	StableRunLength   int     `json:"stable_run_length"`
}

type profileRequest struct {
	Name   string         `json:"name"`
	Tuning *tuningPayload `json:"tuning"`
}

type profileResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Tuning    tuningPayload `json:"tuning"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toTuning(p tuningPayload) gesture.Tuning {
	return gesture.Tuning{
		ClosedReference:   p.ClosedReference,
		OpenReference:     p.OpenReference,
		FingerExtendedMin: p.FingerExtendedMin,
		PinchDistanceMax:  p.PinchDistanceMax,
		PalmDeadband:      p.PalmDeadband,
		PeaceTensionMax:   p.PeaceTensionMax,
		PointTensionMin:   p.PointTensionMin,
		PinchTensionMin:   p.PinchTensionMin,
		PalmTensionMax:    p.PalmTensionMax,
		StableRunLength:   p.StableRunLength,
	}
}

func fromTuning(t gesture.Tuning) tuningPayload {
	return tuningPayload{
		ClosedReference:   t.ClosedReference,
		OpenReference:     t.OpenReference,
		FingerExtendedMin: t.FingerExtendedMin,
		PinchDistanceMax:  t.PinchDistanceMax,
		PalmDeadband:      t.PalmDeadband,
		PeaceTensionMax:   t.PeaceTensionMax,
		PointTensionMin:   t.PointTensionMin,
		PinchTensionMin:   t.PinchTensionMin,
		PalmTensionMax:    t.PalmTensionMax,
		StableRunLength:   t.StableRunLength,
	}
}

// validTuning rejects threshold sets that would make the classifier
// degenerate.
func validTuning(t gesture.Tuning) bool {
	if t.ClosedReference <= 0 || t.OpenReference <= t.ClosedReference {
		return false
	}
	if t.FingerExtendedMin <= 0 || t.PinchDistanceMax <= 0 || t.PalmDeadband < 0 {
		return false
	}
	return t.StableRunLength >= 1
}

// toResponse converts a store.Profile to a profileResponse.
func toResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Tuning:    fromTuning(p.Tuning),
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/profiles and returns all profiles.
func (h *ProfileHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}

	response := listProfilesResponse{
		Profiles: make([]profileResponse, 0, len(profiles)),
	}

	for _, p := range profiles {
		response.Profiles = append(response.Profiles, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/profiles/{id} and returns a single profile.
func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// create handles POST /api/profiles and creates a new profile. Omitted
// tuning fields take the default thresholds.
func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	tuning := gesture.DefaultTuning()
	if req.Tuning != nil {
		tuning = toTuning(*req.Tuning)
	}

	if !validTuning(tuning) {
		writeError(w, http.StatusBadRequest, "Invalid tuning thresholds")
		return
	}

	profile := &store.Profile{
		ID:     uuid.New().String(),
		Name:   req.Name,
		Tuning: tuning,
	}

	if err := h.store.Profiles().Create(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(profile))
}

// update handles PUT /api/profiles/{id} and updates an existing profile.
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Tuning != nil {
		tuning := toTuning(*req.Tuning)
		if !validTuning(tuning) {
			writeError(w, http.StatusBadRequest, "Invalid tuning thresholds")
			return
		}
		profile.Tuning = tuning
	}

	if err := h.store.Profiles().Update(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// delete handles DELETE /api/profiles/{id} and removes a profile.
func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Profiles().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	// The active profile reference may now dangle; clear it.
	if active, err := h.store.Settings().Get(store.SettingActiveProfile); err == nil && active == id {
		h.store.Settings().Delete(store.SettingActiveProfile)
	}

	w.WriteHeader(http.StatusNoContent)
}
