package material

import (
	"github.com/df07/go-motion-raytracer/pkg/core"
)

// scatterLambertian bounces towards normal + a random point in the unit ball,
// which approximates a cosine-weighted hemisphere
func scatterLambertian(m *Material, rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(sampler.InUnitSphere())
	scattered := core.NewRayAtTime(hit.Point, scatterDirection, rayIn.Time)

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}
