package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// baseHand returns a closed fist with the wrist at (0.5, 0.8) and the palm
// base (middle MCP) at (0.5, 0.62). Fixture poses start from this hand and
// extend individual fingers.
func baseHand() HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb wrapped across the curled fingers
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.68, Z: 0.0}
	h.Points[ThumbIP] = Point3D{X: 0.54, Y: 0.67, Z: -0.01}
	h.Points[ThumbTip] = Point3D{X: 0.49, Y: 0.67, Z: -0.02}

	// Index finger curled, tip resting beside the palm
	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.66, Z: -0.03}
	h.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.64, Z: -0.03}
	h.Points[IndexTip] = Point3D{X: 0.57, Y: 0.63, Z: -0.02}

	// Middle finger curled
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.62, Z: 0.0}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.60, Z: -0.04}
	h.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.62, Z: -0.03}
	h.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.64, Z: -0.02}

	// Ring finger curled
	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: 0.0}
	h.Points[RingPIP] = Point3D{X: 0.45, Y: 0.67, Z: -0.04}
	h.Points[RingDIP] = Point3D{X: 0.45, Y: 0.66, Z: -0.03}
	h.Points[RingTip] = Point3D{X: 0.45, Y: 0.68, Z: -0.02}

	// Pinky finger curled
	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: 0.0}
	h.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.69, Z: -0.03}
	h.Points[PinkyDIP] = Point3D{X: 0.41, Y: 0.69, Z: -0.03}
	h.Points[PinkyTip] = Point3D{X: 0.41, Y: 0.70, Z: -0.02}

	return h
}

// FistLandmarks returns a preset HandLandmarks representing a closed fist.
// No fingers are extended and the thumb tip stays clear of the index tip.
func FistLandmarks() HandLandmarks {
	return baseHand()
}

// PointingLandmarks returns a preset HandLandmarks with only the index
// finger extended; the rest of the hand stays closed.
func PointingLandmarks() HandLandmarks {
	h := baseHand()
	h.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.55, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.45, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}
	return h
}

// PeaceLandmarks returns a preset HandLandmarks with index and middle
// fingers extended while ring and pinky stay curled.
func PeaceLandmarks() HandLandmarks {
	h := baseHand()
	h.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.53, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.43, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.57, Y: 0.33, Z: 0.0}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.50, Z: 0.0}
	h.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.39, Z: 0.0}
	h.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.28, Z: 0.0}
	return h
}

// PinchLandmarks returns a preset HandLandmarks with the thumb and index
// tips nearly touching while the hand silhouette stays mostly closed.
func PinchLandmarks() HandLandmarks {
	h := baseHand()
	h.Points[ThumbIP] = Point3D{X: 0.56, Y: 0.64, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.54, Y: 0.61, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.64, Z: -0.01}
	h.Points[IndexDIP] = Point3D{X: 0.56, Y: 0.61, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.56, Y: 0.59, Z: 0.0}
	return h
}

// OpenPalmLandmarks returns a preset HandLandmarks with all five fingers
// extended and the thumb tip below the other fingertips, reading as an
// upward-facing palm.
func OpenPalmLandmarks() HandLandmarks {
	h := baseHand()

	h.Points[ThumbIP] = Point3D{X: 0.66, Y: 0.64, Z: 0.02}
	h.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.50, Z: 0.0}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.38, Z: 0.0}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.26, Z: 0.0}

	h.Points[RingPIP] = Point3D{X: 0.43, Y: 0.58, Z: 0.0}
	h.Points[RingDIP] = Point3D{X: 0.42, Y: 0.46, Z: 0.0}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	h.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.62, Z: 0.0}
	h.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.52, Z: 0.0}
	h.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return h
}

// PalmDownLandmarks returns a preset HandLandmarks with all five fingers
// extended and the thumb tip above the other fingertips, reading as a
// downward-facing palm.
func PalmDownLandmarks() HandLandmarks {
	h := OpenPalmLandmarks()
	h.Points[ThumbIP] = Point3D{X: 0.66, Y: 0.45, Z: 0.02}
	h.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.25, Z: 0.03}
	return h
}
