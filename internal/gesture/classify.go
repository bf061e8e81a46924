package gesture

import (
	"github.com/aryamehta0302/handfield/internal/detector"
)

// Classify maps a landmark set and its raw tension to this frame's raw
// gesture state, pre-hysteresis. It is a pure function: the same inputs
// always produce the same state.
//
// Rules are checked in priority order, first match wins. Gestures with more
// specific finger-count/tension conjunctions come first so a transitional
// hand shape is not misclassified as a broader gesture.
func Classify(h *detector.HandLandmarks, tension float64, tn Tuning) State {
	if h == nil {
		return StateNone
	}

	index := fingerExtended(h, detector.Index, tn)
	middle := fingerExtended(h, detector.Middle, tn)
	ring := fingerExtended(h, detector.Ring, tn)
	pinky := fingerExtended(h, detector.Pinky, tn)
	thumb := fingerExtended(h, detector.Thumb, tn)

	// Peace: index and middle up, ring and pinky down, hand mostly open.
	if index && middle && !ring && !pinky && tension < tn.PeaceTensionMax {
		return StatePeace
	}

	// Point: index alone, hand otherwise closed enough to disambiguate
	// from an open palm.
	if index && !middle && !ring && !pinky && tension > tn.PointTensionMin {
		return StatePoint
	}

	// Pinch: thumb and index tips together on a mostly-closed silhouette.
	pinchDist := detector.Distance(h.Points[detector.ThumbTip], h.Points[detector.IndexTip])
	if pinchDist < tn.PinchDistanceMax && tension > tn.PinchTensionMin {
		return StatePinch
	}

	// Palm orientation: at least 4 of 5 fingers extended on an open hand.
	extended := 0
	for _, up := range []bool{thumb, index, middle, ring, pinky} {
		if up {
			extended++
		}
	}
	if extended >= 4 && tension < tn.PalmTensionMax {
		if state, ok := palmOrientation(h, tn); ok {
			return state
		}
	}

	return StateNone
}

// fingerExtended reports whether a finger's base-to-tip distance exceeds the
// extension threshold.
func fingerExtended(h *detector.HandLandmarks, f detector.Finger, tn Tuning) bool {
	return h.FingerSpan(f) > tn.FingerExtendedMin
}

// palmOrientation decides up vs down by comparing the average y-coordinate
// of the four non-thumb fingertips against the thumb tip, with a deadband.
// Camera-space y grows downward, so fingertips numerically below the thumb
// (larger y) mean the palm faces down. Inside the deadband orientation is
// ambiguous and the rule falls through.
func palmOrientation(h *detector.HandLandmarks, tn Tuning) (State, bool) {
	avgY := (h.Points[detector.IndexTip].Y +
		h.Points[detector.MiddleTip].Y +
		h.Points[detector.RingTip].Y +
		h.Points[detector.PinkyTip].Y) / 4

	diff := avgY - h.Points[detector.ThumbTip].Y
	switch {
	case diff > tn.PalmDeadband:
		return StatePalmDown, true
	case diff < -tn.PalmDeadband:
		return StatePalmUp, true
	default:
		return StateNone, false
	}
}
