// Package gesture converts hand landmarks into a discrete, stable gesture
// state plus the spatial anchors that drive the particle field.
package gesture

import (
	"github.com/aryamehta0302/handfield/internal/detector"
)

// State represents a classified hand pose. Exactly one state is active at a
// time.
type State string

const (
	// StateNone means no recognized gesture.
	StateNone State = "none"
	// StatePoint is an index finger extended from an otherwise closed hand.
	StatePoint State = "point"
	// StatePinch is the thumb and index tips held together.
	StatePinch State = "pinch"
	// StatePalmUp is an open hand facing upward.
	StatePalmUp State = "palm_up"
	// StatePalmDown is an open hand facing downward.
	StatePalmDown State = "palm_down"
	// StatePeace is index and middle fingers extended, ring and pinky curled.
	StatePeace State = "peace"
)

// Reading is the per-frame classification result: the gesture state together
// with the anchor payload that state carries. The anchor count is fixed by
// the state, so a Reading never has optional fields that are only meaningful
// for some states.
type Reading struct {
	State   State
	Anchors []detector.Point3D
}

// AnchorCount returns how many anchors a state carries.
func (s State) AnchorCount() int {
	switch s {
	case StatePoint, StatePinch:
		return 1
	case StatePeace:
		return 2
	default:
		return 0
	}
}

// Read classifies a landmark set end to end: tension, raw state, anchors.
// It is a pure function; hysteresis is the Stabilizer's job.
func Read(h *detector.HandLandmarks, tn Tuning) (Reading, float64) {
	tension := EstimateTension(h, tn)
	state := Classify(h, tension, tn)
	return ExtractAnchors(h, state), tension
}

// ExtractAnchors pulls the spatial anchor points relevant to a state.
// States without anchors return a Reading with an empty anchor slice.
func ExtractAnchors(h *detector.HandLandmarks, state State) Reading {
	r := Reading{State: state}
	if h == nil {
		r.State = StateNone
		return r
	}

	switch state {
	case StatePoint:
		r.Anchors = []detector.Point3D{h.Points[detector.IndexTip]}
	case StatePinch:
		mid := detector.Midpoint(h.Points[detector.ThumbTip], h.Points[detector.IndexTip])
		r.Anchors = []detector.Point3D{mid}
	case StatePeace:
		r.Anchors = []detector.Point3D{
			h.Points[detector.IndexTip],
			h.Points[detector.MiddleTip],
		}
	}

	return r
}
