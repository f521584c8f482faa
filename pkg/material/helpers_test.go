package material

import (
	"math"

	"github.com/df07/go-motion-raytracer/pkg/core"
)

// stubSampler returns fixed values so scatter branches can be driven directly
type stubSampler struct {
	value  float64
	sphere core.Vec3
	draws  int
}

func (s *stubSampler) Get1D() float64 {
	s.draws++
	return s.value
}

func (s *stubSampler) GetRange(min, max float64) float64 {
	return min + (max-min)*s.Get1D()
}

func (s *stubSampler) InUnitDisk() core.Vec3 {
	s.draws++
	return core.Vec3{}
}

func (s *stubSampler) InUnitSphere() core.Vec3 {
	s.draws++
	return s.sphere
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) < tolerance &&
		math.Abs(a.Y-b.Y) < tolerance &&
		math.Abs(a.Z-b.Z) < tolerance
}

// upHit is a front-face hit on the plane y=0
func upHit() HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
	}
}
