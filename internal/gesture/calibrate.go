package gesture

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/aryamehta0302/handfield/internal/detector"
)

// Pose names the hand pose a calibration sample was recorded under.
type Pose string

const (
	// PoseOpen is a fully open, relaxed hand.
	PoseOpen Pose = "open"
	// PoseClosed is a fully closed fist.
	PoseClosed Pose = "closed"
)

// MinCalibrationSamples is the minimum sample count per pose before a
// calibration result can be computed.
const MinCalibrationSamples = 10

// outlierSigma is the standard-deviation cutoff for discarding jittery
// samples before averaging.
const outlierSigma = 2.0

// Calibrator recomputes the tension reference distances from recorded
// samples of a user holding an open hand and a closed fist. Calibration is
// an explicit operation triggered by the user; the pipeline never
// recalibrates on its own.
type Calibrator struct {
	open   []float64
	closed []float64
}

// NewCalibrator creates an empty Calibrator.
func NewCalibrator() *Calibrator {
	return &Calibrator{}
}

// Record adds one landmark frame under the named pose. Invalid landmark
// sets and frames with a degenerate palm span are ignored.
func (c *Calibrator) Record(h *detector.HandLandmarks, pose Pose) {
	if !h.Valid() {
		return
	}
	palm := h.PalmSpan()
	if palm <= 0 {
		return
	}

	wrist := h.Points[detector.Wrist]
	var sum float64
	for _, tip := range fingertips {
		sum += detector.Distance(wrist, h.Points[tip])
	}
	normalized := sum / float64(len(fingertips)) / palm

	switch pose {
	case PoseOpen:
		c.open = append(c.open, normalized)
	case PoseClosed:
		c.closed = append(c.closed, normalized)
	}
}

// SampleCounts returns the number of recorded open and closed samples.
func (c *Calibrator) SampleCounts() (open, closed int) {
	return len(c.open), len(c.closed)
}

// Result computes a Tuning whose reference distances are recalibrated from
// the recorded samples. All other constants are taken from base unchanged.
func (c *Calibrator) Result(base Tuning) (Tuning, error) {
	if len(c.open) < MinCalibrationSamples || len(c.closed) < MinCalibrationSamples {
		return base, fmt.Errorf("need at least %d samples per pose, have %d open / %d closed",
			MinCalibrationSamples, len(c.open), len(c.closed))
	}

	openRef := trimmedMean(c.open)
	closedRef := trimmedMean(c.closed)

	if closedRef >= openRef {
		return base, fmt.Errorf("closed reference %.3f not below open reference %.3f", closedRef, openRef)
	}

	tuned := base
	tuned.OpenReference = openRef
	tuned.ClosedReference = closedRef
	return tuned, nil
}

// trimmedMean averages samples after discarding values more than
// outlierSigma standard deviations from the raw mean. Landmark jitter
// produces occasional wild frames; one pass of trimming is enough.
func trimmedMean(samples []float64) float64 {
	mean, std := stat.MeanStdDev(samples, nil)
	if std == 0 {
		return mean
	}

	kept := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s >= mean-outlierSigma*std && s <= mean+outlierSigma*std {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return mean
	}
	return stat.Mean(kept, nil)
}
