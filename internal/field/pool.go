package field

import (
	"runtime"
	"sync"
)

// Pool evaluates the force field across the particle array on a set of
// persistent worker goroutines. Particles have no ordering dependency
// between each other, so the array is split into contiguous index ranges,
// one per worker. Workers idle on a condition variable between frames
// instead of being respawned every evaluation.
type Pool struct {
	particles []Particle
	out       []Vec3
	workers   int

	mu      sync.Mutex
	cond    *sync.Cond
	step    int
	pending int
	fs      FrameState
	prm     Params
	started bool
	closed  bool
}

// NewPool creates a Pool over the given particles. workers values below 1
// default to GOMAXPROCS.
func NewPool(particles []Particle, workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(particles) && len(particles) > 0 {
		workers = len(particles)
	}
	p := &Pool{
		particles: particles,
		out:       make([]Vec3, len(particles)),
		workers:   workers,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Len returns the particle count.
func (p *Pool) Len() int {
	return len(p.particles)
}

// Particles returns the underlying particle slice. Callers must not mutate
// it while evaluations are in flight.
func (p *Pool) Particles() []Particle {
	return p.particles
}

// Evaluate computes all particle positions for one frame and returns the
// shared output buffer. The buffer is overwritten by the next call; callers
// needing to retain positions must copy them out. Evaluate must not be
// called concurrently: the step countdown and the output buffer belong to
// one evaluation at a time.
func (p *Pool) Evaluate(fs *FrameState, prm Params) []Vec3 {
	if len(p.particles) == 0 {
		return p.out
	}

	p.mu.Lock()
	if p.closed {
		// Workers are gone; fall back to the calling goroutine.
		fsCopy := *fs
		p.mu.Unlock()
		for i := range p.particles {
			p.out[i] = Evaluate(p.particles[i], &fsCopy, prm)
		}
		return p.out
	}
	if !p.started {
		p.started = true
		for i := 0; i < p.workers; i++ {
			go p.workerLoop(i)
		}
	}

	p.fs = *fs
	p.prm = prm
	p.pending = p.workers
	p.step++
	p.cond.Broadcast()

	for p.pending > 0 {
		p.cond.Wait()
	}
	p.mu.Unlock()

	return p.out
}

// Close stops the worker goroutines. Subsequent Evaluate calls run on the
// calling goroutine. Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
}

// workerLoop evaluates the worker's index range each time a new step is
// signalled, until the pool is closed.
func (p *Pool) workerLoop(index int) {
	lastStep := 0
	p.mu.Lock()
	for {
		for p.step == lastStep && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		lastStep = p.step
		fs := p.fs
		prm := p.prm
		p.mu.Unlock()

		n := len(p.particles)
		start := index * n / p.workers
		end := (index + 1) * n / p.workers
		for i := start; i < end; i++ {
			p.out[i] = Evaluate(p.particles[i], &fs, prm)
		}

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}

// EvaluateSequential computes all positions on the calling goroutine into a
// fresh slice. It exists for tests and as a reference implementation of the
// parallel path.
func EvaluateSequential(particles []Particle, fs *FrameState, prm Params) []Vec3 {
	out := make([]Vec3, len(particles))
	for i, pt := range particles {
		out[i] = Evaluate(pt, fs, prm)
	}
	return out
}
