package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

const (
	// blurKernelSize is the Gaussian kernel applied before differencing.
	// The blur suppresses single-pixel sensor noise between frames.
	blurKernelSize = 21

	// pixelDeltaMin is the per-pixel brightness delta that counts as a
	// changed pixel after differencing.
	pixelDeltaMin = 25
)

// MotionDetector gates the capture loop's frame rate. It compares each
// frame against the previous one and reports how much of the scene moved,
// letting the pipeline drop to its idle rate when the scene is still.
type MotionDetector struct {
	mu        sync.Mutex
	threshold float64
	baseline  gocv.Mat
	primed    bool
}

// NewMotionDetector returns a detector that reports motion when more than
// threshold percent of pixels changed between frames.
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		baseline:  gocv.NewMat(),
	}
}

// Detect compares frame against the previous one and returns whether the
// changed area exceeds the threshold, plus the changed percentage itself.
// The first frame after construction or Reset primes the baseline and
// reports no motion.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	smoothed := gocv.NewMat()
	defer smoothed.Close()
	grayBlur(frame, &smoothed)

	if !m.primed {
		smoothed.CopyTo(&m.baseline)
		m.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(smoothed, m.baseline, &diff)

	changed := gocv.NewMat()
	defer changed.Close()
	gocv.Threshold(diff, &changed, pixelDeltaMin, 255, gocv.ThresholdBinary)

	total := changed.Rows() * changed.Cols()
	percent := float64(gocv.CountNonZero(changed)) / float64(total) * 100.0

	smoothed.CopyTo(&m.baseline)

	return percent > m.threshold, percent
}

// grayBlur converts frame to a blurred grayscale copy in dst.
func grayBlur(frame *gocv.Mat, dst *gocv.Mat) {
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, dst, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(dst)
	}
	kernel := image.Point{X: blurKernelSize, Y: blurKernelSize}
	gocv.GaussianBlur(*dst, dst, kernel, 0, 0, gocv.BorderDefault)
}

// Reset discards the baseline frame. The next Detect call primes a new one.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release()
}

// Close releases the detector's resources. The detector remains usable and
// will prime a fresh baseline if Detect is called again.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release()
}

func (m *MotionDetector) release() {
	if !m.baseline.Empty() {
		m.baseline.Close()
		m.baseline = gocv.NewMat()
	}
	m.primed = false
}

// SetThreshold replaces the changed-area threshold. Non-positive values
// are ignored.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threshold = threshold
}
