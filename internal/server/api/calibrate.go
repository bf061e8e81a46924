package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/aryamehta0302/handfield/internal/detector"
	"github.com/aryamehta0302/handfield/internal/gesture"
	"github.com/aryamehta0302/handfield/internal/store"
)

// HandSource exposes the pipeline's most recent landmark frame and its
// active thresholds. The engine implements it.
type HandSource interface {
	LastHand() (detector.HandLandmarks, bool)
	Tuning() gesture.Tuning
}

// CalibrateHandler records tension reference samples from the live pipeline
// and turns them into a stored tuning profile. The user holds a pose while
// the frontend posts sample requests, then applies the result under a
// profile name.
type CalibrateHandler struct {
	store *store.Store
	hands HandSource
	tuner Tuner

	mu         sync.Mutex
	calibrator *gesture.Calibrator
}

// NewCalibrateHandler creates a new CalibrateHandler with the given store
// and landmark source.
func NewCalibrateHandler(s *store.Store, hands HandSource, tuner Tuner) *CalibrateHandler {
	return &CalibrateHandler{
		store:      s,
		hands:      hands,
		tuner:      tuner,
		calibrator: gesture.NewCalibrator(),
	}
}

type calibrationStatus struct {
	OpenSamples     int `json:"open_samples"`
	ClosedSamples   int `json:"closed_samples"`
	RequiredSamples int `json:"required_samples"`
}

type applyCalibrationRequest struct {
	Name string `json:"name"`
}

// ServeHTTP implements the http.Handler interface.
// Routes: GET /api/calibrate (status), POST /api/calibrate/{open|closed}
// (record one sample), POST /api/calibrate/apply (store + activate the
// result), POST /api/calibrate/reset (discard samples).
func (h *CalibrateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/calibrate")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.status(w)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch path {
	case string(gesture.PoseOpen), string(gesture.PoseClosed):
		h.record(w, gesture.Pose(path))
	case "apply":
		h.apply(w, r)
	case "reset":
		h.reset(w)
	default:
		writeError(w, http.StatusNotFound, "Unknown calibration operation")
	}
}

func (h *CalibrateHandler) currentStatus() calibrationStatus {
	open, closed := h.calibrator.SampleCounts()
	return calibrationStatus{
		OpenSamples:     open,
		ClosedSamples:   closed,
		RequiredSamples: gesture.MinCalibrationSamples,
	}
}

// status handles GET /api/calibrate and returns the sample counts.
func (h *CalibrateHandler) status(w http.ResponseWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.currentStatus())
}

// record handles POST /api/calibrate/{pose} and records one sample from the
// pipeline's current landmark frame.
func (h *CalibrateHandler) record(w http.ResponseWriter, pose gesture.Pose) {
	hand, ok := h.hands.LastHand()
	if !ok {
		writeError(w, http.StatusConflict, "No hand visible")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.calibrator.Record(&hand, pose)
	writeJSON(w, http.StatusOK, h.currentStatus())
}

// apply handles POST /api/calibrate/apply: it computes the recalibrated
// thresholds, stores them as a named profile, activates it, and discards
// the recorded samples.
func (h *CalibrateHandler) apply(w http.ResponseWriter, r *http.Request) {
	var req applyCalibrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	tuning, err := h.calibrator.Result(h.hands.Tuning())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	profile := &store.Profile{
		ID:     uuid.New().String(),
		Name:   req.Name,
		Tuning: tuning,
	}
	if err := h.store.Profiles().Create(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store profile")
		return
	}
	if err := h.store.Settings().Set(store.SettingActiveProfile, profile.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to activate profile")
		return
	}

	if h.tuner != nil {
		h.tuner.SetTuning(tuning)
	}

	h.calibrator = gesture.NewCalibrator()
	writeJSON(w, http.StatusCreated, toResponse(profile))
}

// reset handles POST /api/calibrate/reset and discards recorded samples.
func (h *CalibrateHandler) reset(w http.ResponseWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calibrator = gesture.NewCalibrator()
	writeJSON(w, http.StatusOK, h.currentStatus())
}
