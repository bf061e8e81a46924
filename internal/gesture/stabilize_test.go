package gesture

import "testing"

func TestStabilizer_RequiresRunLength(t *testing.T) {
	s := NewStabilizer(3)

	// Two frames of a new state are not enough.
	if got := s.Observe(StatePoint); got != StateNone {
		t.Errorf("frame 1: got %q, want %q", got, StateNone)
	}
	if got := s.Observe(StatePoint); got != StateNone {
		t.Errorf("frame 2: got %q, want %q", got, StateNone)
	}
	// Third consecutive frame switches.
	if got := s.Observe(StatePoint); got != StatePoint {
		t.Errorf("frame 3: got %q, want %q", got, StatePoint)
	}
}

func TestStabilizer_ReconfirmationResetsPending(t *testing.T) {
	s := NewStabilizer(3)

	// Establish pinch as the stable state.
	for i := 0; i < 3; i++ {
		s.Observe(StatePinch)
	}
	if s.Current() != StatePinch {
		t.Fatalf("setup: current = %q, want %q", s.Current(), StatePinch)
	}

	// Raw sequence pinch, point, pinch, pinch, pinch: the single point
	// frame never accumulates three consecutive observations, so the
	// stable state must not move.
	for i, raw := range []State{StatePinch, StatePoint, StatePinch, StatePinch, StatePinch} {
		if got := s.Observe(raw); got != StatePinch {
			t.Errorf("frame %d: got %q, want %q", i, got, StatePinch)
		}
	}

	// Three consecutive non-matching frames do switch.
	s.Observe(StatePoint)
	s.Observe(StatePoint)
	if got := s.Observe(StatePoint); got != StatePoint {
		t.Errorf("after 3 consecutive point frames: got %q, want %q", got, StatePoint)
	}
}

func TestStabilizer_InterruptedRunStartsOver(t *testing.T) {
	s := NewStabilizer(3)

	s.Observe(StatePeace)
	s.Observe(StatePeace)
	s.Observe(StatePoint) // interrupts the peace run
	s.Observe(StatePeace)
	if got := s.Observe(StatePeace); got != StateNone {
		t.Errorf("got %q, want %q: interrupted run must start over", got, StateNone)
	}
	if got := s.Observe(StatePeace); got != StatePeace {
		t.Errorf("got %q, want %q after full run", got, StatePeace)
	}
}

func TestStabilizer_Age(t *testing.T) {
	s := NewStabilizer(3)

	for i := 1; i <= 5; i++ {
		s.Observe(StateNone)
		if got := s.Age(); got != i {
			t.Fatalf("age after %d matching frames = %d, want %d", i, got, i)
		}
	}

	// Switching resets age to 1 on the frame the new state takes effect.
	s.Observe(StatePinch)
	s.Observe(StatePinch)
	s.Observe(StatePinch)
	if got := s.Age(); got != 1 {
		t.Errorf("age after switch = %d, want 1", got)
	}
	s.Observe(StatePinch)
	if got := s.Age(); got != 2 {
		t.Errorf("age one frame later = %d, want 2", got)
	}
}

func TestStabilizer_RunLengthFloor(t *testing.T) {
	s := NewStabilizer(0)
	if got := s.Observe(StatePoint); got != StatePoint {
		t.Errorf("run length floor of 1: got %q, want immediate switch", got)
	}
}

func TestStabilizer_Reset(t *testing.T) {
	s := NewStabilizer(3)
	for i := 0; i < 3; i++ {
		s.Observe(StatePalmUp)
	}
	s.Reset()
	if s.Current() != StateNone || s.Age() != 0 {
		t.Errorf("after Reset: current = %q age = %d, want none/0", s.Current(), s.Age())
	}
}
