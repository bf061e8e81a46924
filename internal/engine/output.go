package engine

import (
	"github.com/aryamehta0302/handfield/internal/field"
	"github.com/aryamehta0302/handfield/internal/gesture"
)

// FrameOutput is the per-frame contract with the rendering backend. The
// backend feeds these values into its own per-particle position evaluation;
// it performs no classification or smoothing of its own. Anchor fields are
// nil whenever the gesture carries no such anchor this frame.
type FrameOutput struct {
	Gesture         gesture.State `json:"gesture"`
	GestureAnchor   *field.Vec3   `json:"gestureAnchor,omitempty"`
	PeaceAnchor1    *field.Vec3   `json:"peaceAnchor1,omitempty"`
	PeaceAnchor2    *field.Vec3   `json:"peaceAnchor2,omitempty"`
	SmoothedTension float64       `json:"smoothedTension"`
	ExplosionEnergy float64       `json:"explosionEnergy"`
}

// buildOutput snapshots the frame state into an immutable FrameOutput.
func buildOutput(state *field.FrameState) FrameOutput {
	out := FrameOutput{
		Gesture:         state.Gesture,
		SmoothedTension: state.SmoothedTension,
		ExplosionEnergy: state.ExplosionEnergy,
	}

	switch state.Gesture {
	case gesture.StatePoint, gesture.StatePinch:
		if len(state.Anchors) >= 1 {
			a := state.Anchors[0]
			out.GestureAnchor = &a
		}
	case gesture.StatePeace:
		if len(state.Anchors) >= 2 {
			a1, a2 := state.Anchors[0], state.Anchors[1]
			out.PeaceAnchor1 = &a1
			out.PeaceAnchor2 = &a2
		}
	}

	return out
}
