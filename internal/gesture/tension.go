package gesture

import (
	"github.com/aryamehta0302/handfield/internal/detector"
)

// fingertips are the five tip landmarks averaged by the tension estimate.
var fingertips = [5]int{
	detector.ThumbTip,
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// EstimateTension converts a landmark set into a single open/closed scalar
// in [0,1]: 0 is a fully open hand, 1 a closed fist.
//
// The average wrist-to-fingertip distance is normalized by the
// wrist-to-palm-base distance so the estimate is invariant to hand size and
// camera depth, then mapped linearly between the closed and open reference
// values. The raw value is deliberately unsmoothed; the classifier needs it
// at full responsiveness and smoothing happens downstream.
func EstimateTension(h *detector.HandLandmarks, tn Tuning) float64 {
	if h == nil {
		return 0
	}

	palm := h.PalmSpan()
	if palm <= 0 {
		return 0
	}

	wrist := h.Points[detector.Wrist]
	var sum float64
	for _, tip := range fingertips {
		sum += detector.Distance(wrist, h.Points[tip])
	}
	avg := sum / float64(len(fingertips))

	normalized := avg / palm
	tension := (tn.OpenReference - normalized) / (tn.OpenReference - tn.ClosedReference)

	return clamp01(tension)
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
