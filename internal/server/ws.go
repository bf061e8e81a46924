package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/aryamehta0302/handfield/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// FrameSource provides per-frame pipeline outputs to stream. The engine
// implements it.
type FrameSource interface {
	Subscribe() (<-chan engine.FrameOutput, func())
	LastOutput() engine.FrameOutput
}

// FramesHandler streams frame outputs to WebSocket clients. Each client
// holds its own subscription, so a slow client drops frames without
// affecting the others.
type FramesHandler struct {
	source FrameSource
}

// NewFramesHandler creates a new FramesHandler with the given source.
func NewFramesHandler(source FrameSource) *FramesHandler {
	return &FramesHandler{source: source}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *FramesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	frames, cancel := h.source.Subscribe()
	defer cancel()

	// The client sees the current state immediately rather than waiting
	// for the next pipeline tick.
	if err := conn.WriteJSON(h.source.LastOutput()); err != nil {
		return
	}

	// Drain client messages so pings and close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case out, ok := <-frames:
			if !ok {
				return
			}
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		}
	}
}
