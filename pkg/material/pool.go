package material

import (
	"fmt"

	"github.com/df07/go-motion-raytracer/pkg/core"
)

// Pool owns every material of a scene. Primitives and mix materials refer
// to entries by Handle. The pool is read-only while a frame renders; the
// frame driver may change emission colors between frames.
type Pool struct {
	materials []Material
}

// NewPool creates an empty material pool
func NewPool() *Pool {
	return &Pool{}
}

// Add stores a material and returns its handle. It panics if a mix
// references a handle that is not yet in the pool, which also rules out
// cycles between mix materials.
func (p *Pool) Add(m Material) Handle {
	if m.Kind == KindMix {
		if !p.valid(m.First) || !p.valid(m.Second) {
			panic(fmt.Sprintf("mix material references unknown handles %d, %d", m.First, m.Second))
		}
	}
	p.materials = append(p.materials, m)
	return Handle(len(p.materials) - 1)
}

// Get returns a copy of the material behind h
func (p *Pool) Get(h Handle) Material {
	return p.materials[h]
}

// Len returns the number of stored materials
func (p *Pool) Len() int {
	return len(p.materials)
}

// IsEmissive reports the static emissive flag of h
func (p *Pool) IsEmissive(h Handle) bool {
	return p.materials[h].IsEmissive()
}

// SetEmission replaces the emission color of h
func (p *Pool) SetEmission(h Handle, emission core.Vec3) {
	p.materials[h].Emission = emission
}

// Scatter dispatches to the scattering function of the material's kind
func (p *Pool) Scatter(h Handle, rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	m := &p.materials[h]
	switch m.Kind {
	case KindLambertian:
		return scatterLambertian(m, rayIn, hit, sampler)
	case KindMetal:
		return scatterMetal(m, rayIn, hit, sampler)
	case KindDielectric:
		return scatterDielectric(m.RefractiveIndex, core.NewVec3(1, 1, 1), rayIn, hit, sampler)
	case KindTranslucent:
		return scatterDielectric(m.RefractiveIndex, m.Albedo, rayIn, hit, sampler)
	case KindEmissive:
		return ScatterResult{}, false
	case KindMix:
		return p.scatterMix(m, rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

// Emitted returns the radiance emitted at point; black for non-emitters
func (p *Pool) Emitted(h Handle, point core.Vec3) core.Vec3 {
	m := &p.materials[h]
	switch m.Kind {
	case KindEmissive:
		return m.Emission
	case KindMix:
		return p.emittedMix(m, point)
	default:
		return core.Vec3{}
	}
}

func (p *Pool) valid(h Handle) bool {
	return h >= 0 && int(h) < len(p.materials)
}
