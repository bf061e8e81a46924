package gesture

// Stabilizer is a temporal filter over raw gesture states. Landmark noise
// makes the raw classification flicker between adjacent states; the
// stabilizer only switches after a candidate state has been observed for a
// minimum number of consecutive frames. Observing the current stable state
// resets the pending switch, but no state is sticky beyond that: once a new
// state satisfies the run length it takes over.
type Stabilizer struct {
	runLength int
	current   State
	pending   State
	run       int
	age       int
}

// NewStabilizer creates a Stabilizer starting in StateNone.
// runLength is the required consecutive-frame count; values below 1 are
// treated as 1 (no hysteresis).
func NewStabilizer(runLength int) *Stabilizer {
	if runLength < 1 {
		runLength = 1
	}
	return &Stabilizer{
		runLength: runLength,
		current:   StateNone,
	}
}

// Observe feeds this frame's raw state and returns the stabilized state.
func (s *Stabilizer) Observe(raw State) State {
	if raw == s.current {
		s.run = 0
		s.pending = s.current
		s.age++
		return s.current
	}

	if raw == s.pending {
		s.run++
	} else {
		s.pending = raw
		s.run = 1
	}

	if s.run >= s.runLength {
		s.current = raw
		s.run = 0
		s.age = 1
	} else {
		s.age++
	}

	return s.current
}

// Current returns the stabilized gesture state.
func (s *Stabilizer) Current() State {
	return s.current
}

// Age returns how many consecutive frames the current state has been
// stable, counting the frame on which it took effect.
func (s *Stabilizer) Age() int {
	return s.age
}

// Reset returns the stabilizer to StateNone with no pending switch.
func (s *Stabilizer) Reset() {
	s.current = StateNone
	s.pending = StateNone
	s.run = 0
	s.age = 0
}
