package core

import "math/rand"

// Sampler provides the uniform random draws the renderer consumes.
// Each worker owns its own Sampler; implementations are not safe for
// concurrent use.
type Sampler interface {
	// Get1D returns a uniform value in [0, 1)
	Get1D() float64
	// GetRange returns a uniform value in [min, max)
	GetRange(min, max float64) float64
	// InUnitDisk returns a uniform point inside the unit disk on the z=0 plane
	InUnitDisk() Vec3
	// InUnitSphere returns a uniform point inside the unit ball
	InUnitSphere() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic stream
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// GetRange returns a random float64 in [min, max)
func (r *RandomSampler) GetRange(min, max float64) float64 {
	return min + (max-min)*r.random.Float64()
}

// InUnitDisk generates a random point in a unit disk by rejection sampling
func (r *RandomSampler) InUnitDisk() Vec3 {
	for {
		p := NewVec3(r.GetRange(-1, 1), r.GetRange(-1, 1), 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// InUnitSphere generates a random point inside a unit sphere by rejection sampling
func (r *RandomSampler) InUnitSphere() Vec3 {
	for {
		p := NewVec3(r.GetRange(-1, 1), r.GetRange(-1, 1), r.GetRange(-1, 1))
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
