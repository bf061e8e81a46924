// Package engine orchestrates the per-frame gesture pipeline: landmark
// acquisition, classification, stabilization, smoothing, and the particle
// field evaluation. Renderers consume it two ways: out of process through
// the FrameOutput subscription (the server's WebSocket feed), or in process
// through Positions for embedders that draw the particles themselves.
package engine

import (
	"log"
	"sync"

	"github.com/aryamehta0302/handfield/internal/capture"
	"github.com/aryamehta0302/handfield/internal/detector"
	"github.com/aryamehta0302/handfield/internal/field"
	"github.com/aryamehta0302/handfield/internal/gesture"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active hand tracking.
	ActiveFPS = 30
	// IdleTimeoutMs is the time in milliseconds without motion before
	// switching back to idle mode.
	IdleTimeoutMs = 2000
)

// DefaultParticleCount is the particle array size when none is configured.
const DefaultParticleCount = 4000

// Config holds configuration options for the engine.
type Config struct {
	CameraID      int
	MotionThresh  float64
	ParticleCount int
	// Workers is the force-field worker count; 0 means one per CPU.
	Workers int
	Tuning  gesture.Tuning
	Params  field.Params
}

// Engine owns the gesture pipeline and the particle field. All per-frame
// state has a single writer (the pipeline goroutine); readers receive
// immutable FrameOutput copies through Subscribe.
type Engine struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	stabilizer *gesture.Stabilizer
	state      *field.FrameState
	pool       *field.Pool

	mu          sync.RWMutex
	enabled     bool
	stopCh      chan struct{}
	subscribers map[chan FrameOutput]struct{}

	// Inputs reused when a detection frame is missed or rejected.
	lastTension float64
	lastAnchors []field.Vec3
	lastOutput  FrameOutput

	// Last valid landmark frame, for calibration sampling.
	lastHand detector.HandLandmarks
	hasHand  bool
}

// New creates an Engine with the given configuration.
func New(config Config) *Engine {
	if config.MotionThresh <= 0 {
		config.MotionThresh = 1.0 // 1% pixel change
	}
	if config.ParticleCount <= 0 {
		config.ParticleCount = DefaultParticleCount
	}
	if config.Tuning == (gesture.Tuning{}) {
		config.Tuning = gesture.DefaultTuning()
	}
	if config.Params == (field.Params{}) {
		config.Params = field.DefaultParams()
	}

	e := &Engine{
		config:      config,
		camera:      capture.NewCamera(config.CameraID),
		motion:      capture.NewMotionDetector(config.MotionThresh),
		stabilizer:  gesture.NewStabilizer(config.Tuning.StableRunLength),
		state:       field.NewFrameState(),
		pool:        field.NewPool(field.SphereShape(config.ParticleCount), config.Workers),
		subscribers: make(map[chan FrameOutput]struct{}),
	}

	// Try MediaPipe first, fall back to the mock detector.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		e.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		e.detector = detector.NewMockDetector()
	}

	return e
}

// SetEnabled enables or disables gesture detection.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (e *Engine) IsEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

// LastHand returns the landmark frame seen on the most recent detection
// tick, and whether that tick saw a hand at all. Calibration samples poses
// through it.
func (e *Engine) LastHand() (detector.HandLandmarks, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastHand, e.hasHand
}

// SetTuning replaces the classifier thresholds. The stabilizer restarts
// from none so a threshold change cannot leave a stale gesture active.
func (e *Engine) SetTuning(t gesture.Tuning) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.Tuning = t
	e.stabilizer = gesture.NewStabilizer(t.StableRunLength)
}

// Tuning returns the active classifier thresholds.
func (e *Engine) Tuning() gesture.Tuning {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config.Tuning
}

// SetDetector sets the hand detector implementation to use.
func (e *Engine) SetDetector(d detector.Detector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detector = d
}

// Detector returns the hand detector.
func (e *Engine) Detector() detector.Detector {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.detector
}

// Camera returns the camera instance.
func (e *Engine) Camera() capture.Camera {
	return e.camera
}

// MotionDetector returns the motion detector instance.
func (e *Engine) MotionDetector() *capture.MotionDetector {
	return e.motion
}

// Particles returns the particle array driven by the field.
func (e *Engine) Particles() []field.Particle {
	return e.pool.Particles()
}

// Positions evaluates the force field for the current frame state and
// returns the particle positions. It is the call an in-process renderer
// makes once per drawn frame; external renderers reconstruct positions from
// the FrameOutput stream instead. Evaluations serialize on the engine lock
// because the pool's output buffer is shared; the caller gets its own copy.
func (e *Engine) Positions() []field.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.pool.Evaluate(e.state, e.config.Params)
	positions := make([]field.Vec3, len(out))
	copy(positions, out)
	return positions
}

// Subscribe registers a frame output channel. The returned cancel function
// removes the subscription. Slow subscribers miss frames instead of
// stalling the pipeline.
func (e *Engine) Subscribe() (<-chan FrameOutput, func()) {
	ch := make(chan FrameOutput, 8)

	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

// LastOutput returns the most recently published frame output.
func (e *Engine) LastOutput() FrameOutput {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastOutput
}

// publish fans the frame output out to subscribers without blocking.
func (e *Engine) publish(out FrameOutput) {
	e.mu.Lock()
	e.lastOutput = out
	for ch := range e.subscribers {
		select {
		case ch <- out:
		default:
		}
	}
	e.mu.Unlock()
}

// Start begins the detection pipeline.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		return nil
	}

	if err := e.camera.Open(); err != nil {
		return err
	}
	e.camera.SetFPS(IdleFPS)

	e.stopCh = make(chan struct{})
	go e.runPipeline()

	log.Println("Gesture pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}

	if err := e.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	e.motion.Close()
	e.pool.Close()

	if e.detector != nil {
		if err := e.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Gesture pipeline stopped")
}
