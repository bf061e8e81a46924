package field

import (
	"github.com/aryamehta0302/handfield/internal/gesture"
)

// Params holds the force-field and smoothing constants. Like the gesture
// thresholds these are empirically tuned; treat changes as deliberate
// recalibration.
type Params struct {
	// SmoothRateFast and SmoothRateSlow are the exponential interpolation
	// rates for smoothed tension. The fast rate applies when the raw
	// tension jumps by more than TensionDeltaFast in one frame.
	SmoothRateFast   float64
	SmoothRateSlow   float64
	TensionDeltaFast float64

	// ExplosionDeltaMin is the per-frame tension change that triggers an
	// explosion impulse. ExplosionImpulse is the triggered energy value,
	// ExplosionDecay the per-frame geometric decay factor, and
	// ExplosionEpsilon the level under which energy clamps to exactly 0.
	ExplosionDeltaMin float64
	ExplosionImpulse  float64
	ExplosionDecay    float64
	ExplosionEpsilon  float64

	// ExpansionMin and ExpansionMax bound the rest-shape scale driven by
	// smoothed tension.
	ExpansionMin float64
	ExpansionMax float64
	// BreatheAmp and BreatheFreq shape the low-frequency breathing
	// oscillation of the resting animation.
	BreatheAmp  float64
	BreatheFreq float64

	// JitterAmp scales the deterministic per-particle jitter; TrailLag is
	// the time offset between consecutive trail indices.
	JitterAmp float64
	TrailLag  float64

	// ExplosionRadial amplifies the radial explosion displacement with
	// distance from center.
	ExplosionRadial float64

	// PointStep is the per-frame travel of the constant-speed attraction
	// used by point and peace. PinchRate is the per-frame fraction of the
	// remaining distance covered by the pinch convergence. PalmLift is the
	// vertical offset applied by the palm gestures.
	PointStep float64
	PinchRate float64
	PalmLift  float64
}

// DefaultParams returns the tuned production force-field constants.
func DefaultParams() Params {
	return Params{
		SmoothRateFast:    0.35,
		SmoothRateSlow:    0.08,
		TensionDeltaFast:  0.1,
		ExplosionDeltaMin: 0.3,
		ExplosionImpulse:  1.0,
		ExplosionDecay:    0.92,
		ExplosionEpsilon:  0.001,
		ExpansionMin:      0.85,
		ExpansionMax:      1.55,
		BreatheAmp:        0.04,
		BreatheFreq:       0.6,
		JitterAmp:         0.12,
		TrailLag:          0.05,
		ExplosionRadial:   1.8,
		PointStep:         0.45,
		PinchRate:         0.12,
		PalmLift:          3.0,
	}
}

// FrameState is the shared per-frame state consumed by the force field:
// smoothed tension, explosion energy, the stabilized gesture with its world
// anchors, gesture age, and elapsed simulation time. It has a single writer
// (the engine, once per frame) and is read by the field evaluation later
// the same frame, so no locking is needed.
type FrameState struct {
	SmoothedTension float64
	ExplosionEnergy float64

	Gesture    gesture.State
	GestureAge int
	Anchors    []Vec3

	Time float64

	prevTension float64
}

// NewFrameState returns a FrameState at rest: no gesture, zero energy,
// fully contracted.
func NewFrameState() *FrameState {
	return &FrameState{Gesture: gesture.StateNone}
}

// Advance folds this frame's raw tension into the smoothed signals.
//
// Smoothed tension chases 1 - tension (open hand = expanded) with a rate
// picked by the size of the frame-to-frame change: fast under rapid motion,
// slow under jitter. A tension jump past ExplosionDeltaMin sets explosion
// energy to the full impulse value, re-triggering restarts the impulse;
// otherwise energy decays geometrically and clamps to exactly 0 under
// epsilon.
func (fs *FrameState) Advance(rawTension, dt float64, p Params) {
	delta := rawTension - fs.prevTension
	fs.prevTension = rawTension

	rate := p.SmoothRateSlow
	if abs(delta) > p.TensionDeltaFast {
		rate = p.SmoothRateFast
	}

	target := 1 - rawTension
	fs.SmoothedTension += (target - fs.SmoothedTension) * rate
	fs.SmoothedTension = clamp01(fs.SmoothedTension)

	if abs(delta) > p.ExplosionDeltaMin {
		fs.ExplosionEnergy = p.ExplosionImpulse
	} else {
		fs.ExplosionEnergy *= p.ExplosionDecay
		if fs.ExplosionEnergy < p.ExplosionEpsilon {
			fs.ExplosionEnergy = 0
		}
	}

	fs.Time += dt
}

// SetGesture records the stabilized gesture, its age in frames, and its
// world anchors for this frame. Anchors must already be mapped to world
// space; their count must match the state's anchor count or the gesture
// term degrades to none during evaluation.
func (fs *FrameState) SetGesture(state gesture.State, age int, anchors []Vec3) {
	fs.Gesture = state
	fs.GestureAge = age
	fs.Anchors = anchors
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
