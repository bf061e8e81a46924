package gesture

// Tuning holds the empirically calibrated constants of the gesture core.
// The values were tuned against live camera footage; recalibration is an
// explicit operation (see Calibrator), never an automatic one.
type Tuning struct {
	// ClosedReference is the normalized average fingertip distance of a
	// fully closed fist. At or below this value tension reads 1.
	ClosedReference float64
	// OpenReference is the normalized average fingertip distance of a fully
	// open hand. At or above this value tension reads 0.
	OpenReference float64

	// FingerExtendedMin is the base-to-tip distance above which a finger
	// counts as extended. The same threshold applies to all fingers.
	FingerExtendedMin float64
	// PinchDistanceMax is the thumb-tip-to-index-tip distance below which
	// the hand can read as a pinch.
	PinchDistanceMax float64
	// PalmDeadband is the fingertip-vs-thumb vertical margin inside which
	// palm orientation is ambiguous and the palm rules fall through.
	PalmDeadband float64

	// PeaceTensionMax, PointTensionMin, PinchTensionMin and PalmTensionMax
	// gate each rule on hand closure so transitional shapes do not
	// misclassify as broader gestures.
	PeaceTensionMax float64
	PointTensionMin float64
	PinchTensionMin float64
	PalmTensionMax  float64

	// StableRunLength is the number of consecutive frames a new raw state
	// must be observed before the stabilized gesture switches. Calibrated
	// at 3 for the pinch transition, the most noise-sensitive gesture.
	StableRunLength int
}

// DefaultTuning returns the calibrated production constants.
func DefaultTuning() Tuning {
	return Tuning{
		ClosedReference:   0.80,
		OpenReference:     1.75,
		FingerExtendedMin: 0.10,
		PinchDistanceMax:  0.08,
		PalmDeadband:      0.04,
		PeaceTensionMax:   0.5,
		PointTensionMin:   0.4,
		PinchTensionMin:   0.6,
		PalmTensionMax:    0.3,
		StableRunLength:   3,
	}
}
