// Package detector provides hand detection interfaces and types for gesture recognition.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Finger identifies one of the five fingers for geometry predicates.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// fingerJoints maps each finger to its base joint and tip landmark indices.
var fingerJoints = [NumFingers]struct{ Base, Tip int }{
	Thumb:  {ThumbMCP, ThumbTip},
	Index:  {IndexMCP, IndexTip},
	Middle: {MiddleMCP, MiddleTip},
	Ring:   {RingMCP, RingTip},
	Pinky:  {PinkyMCP, PinkyTip},
}

// Base returns the landmark index of the finger's base joint.
func (f Finger) Base() int { return fingerJoints[f].Base }

// Tip returns the landmark index of the finger's tip.
func (f Finger) Tip() int { return fingerJoints[f].Tip }

// Point3D represents a 3D point in normalized camera space.
// X and Y lie in [0,1]; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected per frame.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Distance calculates the Euclidean distance between two 3D points.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Midpoint returns the componentwise midpoint of two points.
func Midpoint(a, b Point3D) Point3D {
	return Point3D{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
		Z: (a.Z + b.Z) / 2,
	}
}

// FingerSpan returns the distance from a finger's base joint to its tip.
func (h *HandLandmarks) FingerSpan(f Finger) float64 {
	return Distance(h.Points[f.Base()], h.Points[f.Tip()])
}

// PalmSpan returns the wrist-to-palm-base distance used to normalize
// hand measurements across hand sizes and camera depths.
func (h *HandLandmarks) PalmSpan() float64 {
	return Distance(h.Points[Wrist], h.Points[MiddleMCP])
}

// Valid reports whether the landmark set is usable for classification.
// A set with any non-finite coordinate is rejected before it can
// propagate NaNs into downstream particle positions.
func (h *HandLandmarks) Valid() bool {
	if h == nil {
		return false
	}
	for i := range h.Points {
		p := h.Points[i]
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
