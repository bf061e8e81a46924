// Package server provides the HTTP surface of the Handfield pipeline: frame
// output streaming over WebSocket, the MJPEG camera preview, and the tuning
// profile API.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aryamehta0302/handfield/internal/capture"
	"github.com/aryamehta0302/handfield/internal/server/api"
	"github.com/aryamehta0302/handfield/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Frames    FrameSource
	Tuner     api.Tuner
	Hands     api.HandSource
}

// Server represents the HTTP server for the Handfield application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register the profile API if Store is configured
	if s.config.Store != nil {
		profileHandler := api.NewProfileHandler(s.config.Store, s.config.Tuner)
		activateHandler := api.NewActivateHandler(s.config.Store, s.config.Tuner)

		// Route between the profile CRUD and activation handlers.
		// Activation requests look like /api/profiles/{id}/activate.
		profileRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/activate") {
				activateHandler.ServeHTTP(w, r)
				return
			}
			profileHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/profiles", profileRouter)
		s.mux.Handle("/api/profiles/", profileRouter)
	}

	// Register the calibration API if both a store and a landmark source
	// are available
	if s.config.Store != nil && s.config.Hands != nil {
		calibrateHandler := api.NewCalibrateHandler(s.config.Store, s.config.Hands, s.config.Tuner)
		s.mux.Handle("/api/calibrate", calibrateHandler)
		s.mux.Handle("/api/calibrate/", calibrateHandler)
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Register frame output WebSocket endpoint if a source is configured
	if s.config.Frames != nil {
		framesHandler := NewFramesHandler(s.config.Frames)
		s.mux.Handle("/api/frames", framesHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
