package engine

import (
	"log"
	"time"

	"github.com/aryamehta0302/handfield/internal/detector"
	"github.com/aryamehta0302/handfield/internal/field"
	"github.com/aryamehta0302/handfield/internal/gesture"
)

// runPipeline is the main detection loop. It manages the idle/active frame
// rate based on motion detection, reads landmark frames and advances the
// gesture state once per tick.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run hand detection and advance the gesture/smoothing state
// 4. Publish the frame output to subscribers
// 5. After IdleTimeoutMs without motion, switch back to idle mode
func (e *Engine) runPipeline() {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			if !e.IsEnabled() {
				continue
			}

			dt := frameInterval.Seconds()

			frame, err := e.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				e.StepHold(dt)
				continue
			}

			motionDetected, _ := e.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					e.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					e.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode || e.Detector() == nil {
				frame.Close()
				e.StepHold(dt)
				continue
			}

			hands, err := e.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				// Stale or failed detection: reuse the previous frame's
				// stabilized state rather than surfacing an error.
				e.StepHold(dt)
				continue
			}

			if len(hands) == 0 {
				e.Step(nil, dt)
				continue
			}

			e.Step(&hands[0], dt)
		}
	}
}

// Step advances the pipeline one frame with an optional landmark set and
// returns the published output. A nil hand means the detector ran and saw
// no hand: tension resets to 0 and the raw state reads none, both still
// subject to hysteresis and smoothing. A malformed landmark set is rejected
// and handled like a missed frame so NaNs never reach particle positions.
func (e *Engine) Step(hand *detector.HandLandmarks, dt float64) FrameOutput {
	if hand != nil && !hand.Valid() {
		return e.StepHold(dt)
	}

	out := e.step(hand, dt)
	e.publish(out)
	return out
}

func (e *Engine) step(hand *detector.HandLandmarks, dt float64) FrameOutput {
	e.mu.Lock()
	defer e.mu.Unlock()

	tension := gesture.EstimateTension(hand, e.config.Tuning)
	raw := gesture.Classify(hand, tension, e.config.Tuning)
	stable := e.stabilizer.Observe(raw)

	if hand != nil {
		e.lastHand = *hand
		e.hasHand = true
	} else {
		e.hasHand = false
	}

	var anchors []field.Vec3
	if hand != nil {
		reading := gesture.ExtractAnchors(hand, stable)
		anchors = make([]field.Vec3, len(reading.Anchors))
		for i, p := range reading.Anchors {
			anchors[i] = field.MapToWorld(p)
		}
	}

	e.state.Advance(tension, dt, e.config.Params)
	e.state.SetGesture(stable, e.stabilizer.Age(), anchors)

	e.lastTension = tension
	e.lastAnchors = anchors

	return buildOutput(e.state)
}

// StepHold advances smoothing and decay for one frame while reusing the
// previous frame's tension, stabilized gesture and anchors. It is the
// degraded path for missed, failed or malformed detection frames.
func (e *Engine) StepHold(dt float64) FrameOutput {
	out := e.stepHold(dt)
	e.publish(out)
	return out
}

func (e *Engine) stepHold(dt float64) FrameOutput {
	e.mu.Lock()
	defer e.mu.Unlock()

	// No trustworthy landmarks this tick, so calibration must not sample.
	e.hasHand = false

	// Re-observing the current state counts as reconfirmation: the
	// gesture ages normally so particle convergence keeps progressing.
	stable := e.stabilizer.Observe(e.stabilizer.Current())

	e.state.Advance(e.lastTension, dt, e.config.Params)
	e.state.SetGesture(stable, e.stabilizer.Age(), e.lastAnchors)

	return buildOutput(e.state)
}
