package material

import (
	"github.com/df07/go-motion-raytracer/pkg/core"
)

// scatterMix delegates the whole scatter to one sub-material per call,
// picking Second with probability Blend
func (p *Pool) scatterMix(m *Material, rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	if sampler.Get1D() < m.Blend {
		return p.Scatter(m.Second, rayIn, hit, sampler)
	}
	return p.Scatter(m.First, rayIn, hit, sampler)
}

// emittedMix is a deterministic linear blend, unlike scatterMix
func (p *Pool) emittedMix(m *Material, point core.Vec3) core.Vec3 {
	first := p.Emitted(m.First, point)
	second := p.Emitted(m.Second, point)
	return first.Multiply(1.0 - m.Blend).Add(second.Multiply(m.Blend))
}
