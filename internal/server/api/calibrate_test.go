package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aryamehta0302/handfield/internal/detector"
	"github.com/aryamehta0302/handfield/internal/gesture"
	"github.com/aryamehta0302/handfield/internal/store"
)

// fakeHandSource serves a fixed landmark frame for calibration tests.
type fakeHandSource struct {
	hand    detector.HandLandmarks
	hasHand bool
}

func (f *fakeHandSource) LastHand() (detector.HandLandmarks, bool) {
	return f.hand, f.hasHand
}

func (f *fakeHandSource) Tuning() gesture.Tuning {
	return gesture.DefaultTuning()
}

func recordSamples(t *testing.T, handler *CalibrateHandler, src *fakeHandSource, pose string, hand detector.HandLandmarks, n int) {
	t.Helper()

	src.hand = hand
	src.hasHand = true
	for i := 0; i < n; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/calibrate/"+pose, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("recording %s sample %d: expected status %d, got %d: %s",
				pose, i, http.StatusOK, rec.Code, rec.Body.String())
		}
	}
}

func TestCalibrateHandler_Status(t *testing.T) {
	s := newTestStore(t)
	src := &fakeHandSource{}
	handler := NewCalibrateHandler(s, src, nil)

	recordSamples(t, handler, src, "open", detector.OpenPalmLandmarks(), 3)

	req := httptest.NewRequest(http.MethodGet, "/api/calibrate", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var status calibrationStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if status.OpenSamples != 3 {
		t.Errorf("open samples = %d, want 3", status.OpenSamples)
	}
	if status.ClosedSamples != 0 {
		t.Errorf("closed samples = %d, want 0", status.ClosedSamples)
	}
	if status.RequiredSamples != gesture.MinCalibrationSamples {
		t.Errorf("required samples = %d, want %d", status.RequiredSamples, gesture.MinCalibrationSamples)
	}
}

func TestCalibrateHandler_Record_NoHand(t *testing.T) {
	s := newTestStore(t)
	handler := NewCalibrateHandler(s, &fakeHandSource{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/calibrate/open", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestCalibrateHandler_Apply(t *testing.T) {
	s := newTestStore(t)
	src := &fakeHandSource{}
	tuner := &recordingTuner{}
	handler := NewCalibrateHandler(s, src, tuner)

	recordSamples(t, handler, src, "open", detector.OpenPalmLandmarks(), gesture.MinCalibrationSamples)
	recordSamples(t, handler, src, "closed", detector.FistLandmarks(), gesture.MinCalibrationSamples)

	body, _ := json.Marshal(applyCalibrationRequest{Name: "my-hand"})
	req := httptest.NewRequest(http.MethodPost, "/api/calibrate/apply", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response profileResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Name != "my-hand" {
		t.Errorf("profile name = %q, want 'my-hand'", response.Name)
	}
	if response.Tuning.ClosedReference >= response.Tuning.OpenReference {
		t.Errorf("closed reference %f should sit below open reference %f",
			response.Tuning.ClosedReference, response.Tuning.OpenReference)
	}

	// The result is stored and activated.
	stored, err := s.Profiles().GetByID(response.ID)
	if err != nil {
		t.Fatalf("failed to load stored profile: %v", err)
	}
	active, err := s.Settings().Get(store.SettingActiveProfile)
	if err != nil {
		t.Fatalf("failed to read active profile setting: %v", err)
	}
	if active != stored.ID {
		t.Errorf("active profile = %q, want %q", active, stored.ID)
	}
	if len(tuner.applied) != 1 || tuner.applied[0] != stored.Tuning {
		t.Errorf("tuner should receive the calibrated thresholds, got %+v", tuner.applied)
	}

	// Apply discards the recorded samples.
	statusReq := httptest.NewRequest(http.MethodGet, "/api/calibrate", nil)
	statusRec := httptest.NewRecorder()
	handler.ServeHTTP(statusRec, statusReq)

	var status calibrationStatus
	if err := json.NewDecoder(statusRec.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if status.OpenSamples != 0 || status.ClosedSamples != 0 {
		t.Errorf("samples after apply = %d/%d, want 0/0", status.OpenSamples, status.ClosedSamples)
	}
}

func TestCalibrateHandler_Apply_TooFewSamples(t *testing.T) {
	s := newTestStore(t)
	src := &fakeHandSource{}
	handler := NewCalibrateHandler(s, src, nil)

	recordSamples(t, handler, src, "open", detector.OpenPalmLandmarks(), 2)

	body, _ := json.Marshal(applyCalibrationRequest{Name: "incomplete"})
	req := httptest.NewRequest(http.MethodPost, "/api/calibrate/apply", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
}

func TestCalibrateHandler_Apply_MissingName(t *testing.T) {
	s := newTestStore(t)
	handler := NewCalibrateHandler(s, &fakeHandSource{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/calibrate/apply", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCalibrateHandler_Reset(t *testing.T) {
	s := newTestStore(t)
	src := &fakeHandSource{}
	handler := NewCalibrateHandler(s, src, nil)

	recordSamples(t, handler, src, "open", detector.OpenPalmLandmarks(), 4)

	req := httptest.NewRequest(http.MethodPost, "/api/calibrate/reset", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var status calibrationStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if status.OpenSamples != 0 {
		t.Errorf("open samples after reset = %d, want 0", status.OpenSamples)
	}
}

func TestCalibrateHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewCalibrateHandler(s, &fakeHandSource{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/calibrate", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestCalibrateHandler_UnknownOperation(t *testing.T) {
	s := newTestStore(t)
	handler := NewCalibrateHandler(s, &fakeHandSource{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/calibrate/bogus", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
