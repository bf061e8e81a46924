package field

import (
	"math"
	"math/bits"

	"github.com/aryamehta0302/handfield/internal/gesture"
)

// Particle is one element of the deformation field. Rest is its target
// coordinate in the base shape, Trail marks its position along the short
// temporal echo (0 = lead, increasing = lag), and Scale is a per-particle
// render size factor. Particles own no positional state: the displayed
// position is recomputed every frame by Evaluate, which keeps the field
// free of accumulated drift.
type Particle struct {
	Rest  Vec3
	Trail int
	Scale float64
}

// Evaluate computes a particle's displayed position for the current frame.
// It is a pure function of the particle and the shared frame state, with no
// dependency on any other particle, so it can be mapped over the particle
// array in parallel.
//
// Terms compose in order; later terms apply to the position produced by
// earlier ones:
//
//  1. rest placement scaled by the tension-driven expansion plus a
//     breathing oscillation
//  2. deterministic per-particle jitter with a trail-index time lag
//  3. radial explosion displacement, amplified by distance from center
//  4. the gesture-specific term
//
// A gesture whose required anchors are missing this frame contributes
// nothing, leaving only terms 1-3.
func Evaluate(p Particle, fs *FrameState, prm Params) Vec3 {
	expansion := prm.ExpansionMin + fs.SmoothedTension*(prm.ExpansionMax-prm.ExpansionMin)
	breathe := math.Sin(fs.Time*prm.BreatheFreq) * prm.BreatheAmp
	pos := p.Rest.Scale(expansion + breathe)

	lag := fs.Time - float64(p.Trail)*prm.TrailLag
	pos = pos.Add(jitter(p.Rest, lag, prm.JitterAmp))

	if fs.ExplosionEnergy > 0 {
		// Radially outward from the origin, growing with distance from
		// center, so the swarm blows apart instead of translating.
		pos = pos.Scale(1 + fs.ExplosionEnergy*prm.ExplosionRadial)
	}

	age := float64(fs.GestureAge)

	switch fs.Gesture {
	case gesture.StatePoint:
		if len(fs.Anchors) >= 1 {
			// Constant-magnitude travel accumulated over the gesture's
			// age: a fast, decisive swarm rather than a lazy drift.
			pos = stepToward(pos, fs.Anchors[0], prm.PointStep*age)
		}

	case gesture.StatePinch:
		if len(fs.Anchors) >= 1 {
			// Exponential convergence: each frame of age covers a fixed
			// fraction of the remaining distance.
			t := 1 - math.Pow(1-prm.PinchRate, age)
			pos = pos.Lerp(fs.Anchors[0], t)
		}

	case gesture.StatePalmUp:
		pos.Y += prm.PalmLift

	case gesture.StatePalmDown:
		pos.Y -= prm.PalmLift

	case gesture.StatePeace:
		if len(fs.Anchors) >= 2 {
			// Each particle commits to whichever anchor is nearer,
			// forming two independent sub-swarms.
			target := fs.Anchors[0]
			if fs.Anchors[1].Sub(pos).Len() < fs.Anchors[0].Sub(pos).Len() {
				target = fs.Anchors[1]
			}
			pos = stepToward(pos, target, prm.PointStep*age)
		}
	}

	return pos
}

// stepToward moves pos a fixed travel distance toward target, stopping at
// the target rather than overshooting.
func stepToward(pos, target Vec3, travel float64) Vec3 {
	d := target.Sub(pos)
	dist := d.Len()
	if travel >= dist || dist == 0 {
		return target
	}
	return pos.Add(d.Scale(travel / dist))
}

// jitter derives a small organic displacement from a hash of the rest
// position and a lagged time, with no persisted per-particle state.
func jitter(rest Vec3, lag, amp float64) Vec3 {
	h := hashVec(rest)
	p1 := float64(h&0xffff) / 0xffff * 2 * math.Pi
	p2 := float64((h>>16)&0xffff) / 0xffff * 2 * math.Pi
	p3 := float64((h>>32)&0xffff) / 0xffff * 2 * math.Pi

	return Vec3{
		X: math.Sin(lag*1.7+p1) * amp,
		Y: math.Sin(lag*2.3+p2) * amp,
		Z: math.Sin(lag*1.3+p3) * amp,
	}
}

// hashVec mixes the bit patterns of the rest coordinates into a single
// 64-bit value, splitmix-style.
func hashVec(v Vec3) uint64 {
	h := math.Float64bits(v.X)
	h = mix(h + math.Float64bits(v.Y))
	h = mix(h + math.Float64bits(v.Z))
	return h
}

func mix(h uint64) uint64 {
	h += 0x9e3779b97f4a7c15
	h = (h ^ (h >> 30)) * 0xbf58476d1ce4e5b9
	h = (h ^ (h >> 27)) * 0x94d049bb133111eb
	return bits.RotateLeft64(h^(h>>31), 17)
}
