package integrator

import (
	"math"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/material"
	"github.com/df07/go-motion-raytracer/pkg/scene"
)

// hitEpsilon keeps scattered rays from re-hitting the surface they left
const hitEpsilon = 0.001

// PathTracer estimates radiance along a ray with a recursive random walk
type PathTracer struct {
	materials *material.Pool
}

// NewPathTracer creates a path tracer resolving hit materials in the given pool
func NewPathTracer(materials *material.Pool) *PathTracer {
	return &PathTracer{materials: materials}
}

// RayColor returns the radiance arriving along ray. Emissive surfaces end
// the walk with their emission; other surfaces scatter until depth runs out,
// at which point the background top color is returned. Escaping rays see
// the vertical background gradient. counters may be nil.
func (pt *PathTracer) RayColor(ray core.Ray, world World, background scene.Background, depth int, sampler core.Sampler, counters *Counters) core.Vec3 {
	if depth <= 0 {
		return background.Top
	}

	var boxHits *int64
	if counters != nil {
		boxHits = &counters.BoxHits
	}
	hit, isHit := world.Hit(ray, hitEpsilon, math.Inf(1), boxHits)
	if !isHit {
		return backgroundGradient(ray, background)
	}
	if counters != nil {
		counters.ObjectHits++
	}

	if pt.materials.IsEmissive(hit.Material) {
		return pt.materials.Emitted(hit.Material, hit.Point)
	}

	scatter, didScatter := pt.materials.Scatter(hit.Material, ray, hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, world, background, depth-1, sampler, counters))
}

// backgroundGradient blends bottom to top by the ray's vertical direction
func backgroundGradient(ray core.Ray, background scene.Background) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return background.Bottom.Multiply(1.0 - t).Add(background.Top.Multiply(t))
}
