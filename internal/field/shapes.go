package field

import "math"

// TrailLength is the number of temporal echo steps spread across a shape's
// particles.
const TrailLength = 8

// shapeRadius is the base radius of the generated shapes in world units.
const shapeRadius = 5.0

// SphereShape distributes n particles over a Fibonacci sphere.
func SphereShape(n int) []Particle {
	particles := make([]Particle, n)
	golden := math.Pi * (3 - math.Sqrt(5))

	for i := 0; i < n; i++ {
		y := 1 - 2*float64(i)/math.Max(1, float64(n-1))
		r := math.Sqrt(math.Max(0, 1-y*y))
		theta := golden * float64(i)

		rest := Vec3{
			X: math.Cos(theta) * r * shapeRadius,
			Y: y * shapeRadius,
			Z: math.Sin(theta) * r * shapeRadius,
		}
		particles[i] = newParticle(rest, i)
	}
	return particles
}

// CubeShape distributes n particles over the surface of an axis-aligned
// cube, cycling through the six faces.
func CubeShape(n int) []Particle {
	particles := make([]Particle, n)
	half := shapeRadius

	for i := 0; i < n; i++ {
		h := hashVec(Vec3{X: float64(i)})
		u := (float64(h&0xffffff)/0xffffff - 0.5) * 2 * half
		v := (float64((h>>24)&0xffffff)/0xffffff - 0.5) * 2 * half

		var rest Vec3
		switch i % 6 {
		case 0:
			rest = Vec3{X: half, Y: u, Z: v}
		case 1:
			rest = Vec3{X: -half, Y: u, Z: v}
		case 2:
			rest = Vec3{X: u, Y: half, Z: v}
		case 3:
			rest = Vec3{X: u, Y: -half, Z: v}
		case 4:
			rest = Vec3{X: u, Y: v, Z: half}
		case 5:
			rest = Vec3{X: u, Y: v, Z: -half}
		}
		particles[i] = newParticle(rest, i)
	}
	return particles
}

// RingShape distributes n particles around a flat ring with slight radial
// spread.
func RingShape(n int) []Particle {
	particles := make([]Particle, n)

	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / math.Max(1, float64(n))
		h := hashVec(Vec3{X: float64(i), Y: 1})
		radius := shapeRadius * (0.85 + 0.3*float64(h&0xffff)/0xffff)

		rest := Vec3{
			X: math.Cos(angle) * radius,
			Y: (float64((h>>16)&0xffff)/0xffff - 0.5) * 0.8,
			Z: math.Sin(angle) * radius,
		}
		particles[i] = newParticle(rest, i)
	}
	return particles
}

func newParticle(rest Vec3, i int) Particle {
	h := hashVec(rest)
	return Particle{
		Rest:  rest,
		Trail: i % TrailLength,
		Scale: 0.7 + 0.6*float64(h&0xffff)/0xffff,
	}
}
