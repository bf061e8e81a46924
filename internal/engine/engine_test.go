package engine

import (
	"math"
	"sync"
	"testing"

	"github.com/aryamehta0302/handfield/internal/detector"
	"github.com/aryamehta0302/handfield/internal/gesture"
)

const dt = 1.0 / ActiveFPS

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(Config{ParticleCount: 64, Workers: 2})
}

// feed steps the engine with the same hand for n frames and returns the
// last output.
func feed(e *Engine, hand *detector.HandLandmarks, n int) FrameOutput {
	var out FrameOutput
	for i := 0; i < n; i++ {
		out = e.Step(hand, dt)
	}
	return out
}

func TestEngine_PeaceScenario(t *testing.T) {
	e := newTestEngine(t)
	peace := detector.PeaceLandmarks()

	out := feed(e, &peace, gesture.DefaultTuning().StableRunLength)

	if out.Gesture != gesture.StatePeace {
		t.Fatalf("gesture = %q, want %q", out.Gesture, gesture.StatePeace)
	}
	if out.PeaceAnchor1 == nil || out.PeaceAnchor2 == nil {
		t.Fatal("peace output must carry both anchors")
	}
	if out.GestureAnchor != nil {
		t.Error("peace output must not carry a single-gesture anchor")
	}
	if *out.PeaceAnchor1 == *out.PeaceAnchor2 {
		t.Error("peace anchors should be distinct fingertips")
	}
}

func TestEngine_PointAnchorIsMappedIndexTip(t *testing.T) {
	e := newTestEngine(t)
	pointing := detector.PointingLandmarks()

	out := feed(e, &pointing, 3)

	if out.Gesture != gesture.StatePoint {
		t.Fatalf("gesture = %q, want %q", out.Gesture, gesture.StatePoint)
	}
	if out.GestureAnchor == nil {
		t.Fatal("point output must carry an anchor")
	}

	tip := pointing.Points[detector.IndexTip]
	if out.GestureAnchor.Z != tip.Z {
		t.Error("anchor depth should pass through the coordinate mapper unchanged")
	}
	// Camera y below center maps to negative world y.
	if (tip.Y > 0.5) != (out.GestureAnchor.Y < 0) {
		t.Error("anchor vertical axis should be inverted by the coordinate mapper")
	}
}

func TestEngine_HysteresisDelaysSwitch(t *testing.T) {
	e := newTestEngine(t)
	pointing := detector.PointingLandmarks()

	if out := feed(e, &pointing, 2); out.Gesture != gesture.StateNone {
		t.Errorf("gesture after 2 frames = %q, want %q before run length", out.Gesture, gesture.StateNone)
	}
	if out := feed(e, &pointing, 1); out.Gesture != gesture.StatePoint {
		t.Errorf("gesture after 3 frames = %q, want %q", out.Gesture, gesture.StatePoint)
	}
}

func TestEngine_NoHandFallsBackToNeutral(t *testing.T) {
	e := newTestEngine(t)
	pointing := detector.PointingLandmarks()
	feed(e, &pointing, 3)

	// The stabilized gesture survives the first missing frames.
	if out := feed(e, nil, 2); out.Gesture != gesture.StatePoint {
		t.Errorf("gesture after 2 empty frames = %q, want %q held", out.Gesture, gesture.StatePoint)
	}

	// Three consecutive no-hand frames settle on none with no anchors.
	out := feed(e, nil, 1)
	if out.Gesture != gesture.StateNone {
		t.Errorf("gesture = %q, want %q after run length of empty frames", out.Gesture, gesture.StateNone)
	}
	if out.GestureAnchor != nil || out.PeaceAnchor1 != nil || out.PeaceAnchor2 != nil {
		t.Error("neutral output must carry no anchors")
	}
}

func TestEngine_MalformedFrameRetainsState(t *testing.T) {
	e := newTestEngine(t)
	pinch := detector.PinchLandmarks()
	established := feed(e, &pinch, 3)
	if established.Gesture != gesture.StatePinch {
		t.Fatalf("setup: gesture = %q, want %q", established.Gesture, gesture.StatePinch)
	}

	bad := detector.PinchLandmarks()
	bad.Points[detector.IndexTip].X = math.NaN()

	out := e.Step(&bad, dt)
	if out.Gesture != gesture.StatePinch {
		t.Errorf("gesture = %q, want %q retained across malformed frame", out.Gesture, gesture.StatePinch)
	}
	if out.GestureAnchor == nil {
		t.Error("anchor should be held across a malformed frame")
	}
	if math.IsNaN(out.SmoothedTension) || math.IsNaN(out.ExplosionEnergy) {
		t.Error("malformed input must not propagate NaNs")
	}
}

func TestEngine_ExplosionOnRapidClose(t *testing.T) {
	e := newTestEngine(t)
	open := detector.OpenPalmLandmarks()
	fist := detector.FistLandmarks()

	feed(e, &open, 1) // tension ~0
	out := feed(e, &fist, 1)

	params := e.config.Params
	if out.ExplosionEnergy != params.ExplosionImpulse {
		t.Errorf("explosion energy = %f, want full impulse %f on rapid close", out.ExplosionEnergy, params.ExplosionImpulse)
	}
}

func TestEngine_SmoothedTensionExpandsOpenHand(t *testing.T) {
	e := newTestEngine(t)
	open := detector.OpenPalmLandmarks()

	out := feed(e, &open, 200)
	if out.SmoothedTension < 0.95 {
		t.Errorf("smoothed tension = %f, want ~1 for a held open hand", out.SmoothedTension)
	}
}

func TestEngine_PositionsCoverAllParticles(t *testing.T) {
	e := newTestEngine(t)
	peace := detector.PeaceLandmarks()
	feed(e, &peace, 5)

	positions := e.Positions()
	if len(positions) != 64 {
		t.Fatalf("positions = %d, want 64", len(positions))
	}
	for i, p := range positions {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			t.Fatalf("particle %d has NaN position", i)
		}
	}
}

func TestEngine_ConcurrentPositions(t *testing.T) {
	e := newTestEngine(t)
	pinch := detector.PinchLandmarks()
	feed(e, &pinch, 5)

	// Concurrent evaluations serialize on the engine lock; every caller
	// must still observe a fully written buffer.
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				positions := e.Positions()
				if len(positions) != 64 {
					t.Errorf("positions = %d, want 64", len(positions))
					return
				}
				for _, p := range positions {
					if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
						t.Error("position buffer contains NaN")
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestEngine_LastHandTracksLatestFrame(t *testing.T) {
	e := newTestEngine(t)

	if _, ok := e.LastHand(); ok {
		t.Error("fresh engine should report no hand")
	}

	palm := detector.OpenPalmLandmarks()
	e.Step(&palm, dt)

	hand, ok := e.LastHand()
	if !ok {
		t.Fatal("engine should report a hand after a landmark frame")
	}
	if hand.Points[detector.Wrist] != palm.Points[detector.Wrist] {
		t.Error("reported hand should match the stepped frame")
	}

	e.Step(nil, dt)
	if _, ok := e.LastHand(); ok {
		t.Error("a no-hand frame should clear the reported hand")
	}

	e.Step(&palm, dt)
	e.StepHold(dt)
	if _, ok := e.LastHand(); ok {
		t.Error("a hold step should clear the reported hand")
	}
}

func TestEngine_SubscribeReceivesOutputs(t *testing.T) {
	e := newTestEngine(t)
	ch, cancel := e.Subscribe()
	defer cancel()

	peace := detector.PeaceLandmarks()
	e.Step(&peace, dt)

	select {
	case out := <-ch:
		if out.Gesture != gesture.StateNone {
			t.Errorf("first frame gesture = %q, want %q pre-hysteresis", out.Gesture, gesture.StateNone)
		}
	default:
		t.Fatal("subscriber should have received a frame")
	}
}

func TestEngine_SubscribeCancelIdempotent(t *testing.T) {
	e := newTestEngine(t)
	_, cancel := e.Subscribe()
	cancel()
	cancel() // second cancel must not panic
}

func TestEngine_EnabledToggle(t *testing.T) {
	e := newTestEngine(t)
	if e.IsEnabled() {
		t.Error("engine should start disabled")
	}
	e.SetEnabled(true)
	if !e.IsEnabled() {
		t.Error("SetEnabled(true) should enable the engine")
	}
}
