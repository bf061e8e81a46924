package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aryamehta0302/handfield/internal/store"
)

// ActivateHandler handles POST /api/profiles/{id}/activate. Activation
// persists the profile ID as the active setting and, when a Tuner is
// wired, applies the thresholds to the running pipeline immediately.
type ActivateHandler struct {
	store *store.Store
	tuner Tuner
}

// NewActivateHandler creates a new ActivateHandler with the given store.
func NewActivateHandler(s *store.Store, tuner Tuner) *ActivateHandler {
	return &ActivateHandler{store: s, tuner: tuner}
}

// ServeHTTP implements the http.Handler interface.
func (h *ActivateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Expected path: /api/profiles/{id}/activate
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles/")
	id := strings.TrimSuffix(path, "/activate")
	if id == "" || id == path {
		writeError(w, http.StatusBadRequest, "Profile ID is required")
		return
	}

	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	if err := h.store.Settings().Set(store.SettingActiveProfile, profile.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to activate profile")
		return
	}

	if h.tuner != nil {
		h.tuner.SetTuning(profile.Tuning)
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}
