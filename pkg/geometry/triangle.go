package geometry

import (
	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// machineEpsilon is the spacing of float64 values around 1.0
const machineEpsilon = 2.220446049250313e-16

// Triangle represents a single triangle whose vertices move linearly from
// Start at time 0 to End at time 1
type Triangle struct {
	Start    [3]core.Vec3
	End      [3]core.Vec3
	Material material.Handle
	bbox     core.AABB
}

// NewTriangle creates a static triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Handle) *Triangle {
	return NewMovingTriangle([3]core.Vec3{v0, v1, v2}, [3]core.Vec3{v0, v1, v2}, mat)
}

// NewMovingTriangle creates a triangle that is motion blurred between two vertex sets
func NewMovingTriangle(start, end [3]core.Vec3, mat material.Handle) *Triangle {
	t := &Triangle{
		Start:    start,
		End:      end,
		Material: mat,
	}
	t.computeBoundingBox()
	return t
}

// computeBoundingBox calculates and caches the box over both keyframes
func (t *Triangle) computeBoundingBox() {
	t.bbox = core.NewAABBFromPoints(t.Start[0], t.Start[1], t.Start[2], t.End[0], t.End[1], t.End[2])
}

// Vertices returns the interpolated vertices at the given time
func (t *Triangle) Vertices(time float64) (core.Vec3, core.Vec3, core.Vec3) {
	return t.Start[0].Lerp(t.End[0], time),
		t.Start[1].Lerp(t.End[1], time),
		t.Start[2].Lerp(t.End[2], time)
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord, boxHits *int64) bool {
	if !t.bbox.Hit(ray, tMin, tMax) {
		return false
	}
	countBoxHit(boxHits)

	v0, v1, v2 := t.Vertices(ray.Time)

	// Calculate two edge vectors
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	// Calculate determinant
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -machineEpsilon && a < machineEpsilon {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(v0)
	u := f * s.Dot(h)

	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)

	if v < 0.0 || u+v > 1.0 {
		return false
	}

	tHit := f * edge2.Dot(q)
	if tHit <= tMin || tHit >= tMax {
		return false
	}

	rec.T = tHit
	rec.Point = ray.At(tHit)
	rec.Material = t.Material
	rec.SetFaceNormal(ray, edge1.Cross(edge2).Normalize())

	return true
}

// BoundingBox returns the box around both keyframes
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Translate shifts every vertex of both keyframes
func (t *Triangle) Translate(offset core.Vec3) {
	for i := range t.Start {
		t.Start[i] = t.Start[i].Add(offset)
		t.End[i] = t.End[i].Add(offset)
	}
	t.bbox.Translate(offset)
}

// MoveTo places the centroid of the start vertices at position
func (t *Triangle) MoveTo(position core.Vec3) {
	t.Translate(position.Subtract(t.Centroid()))
}

// Centroid returns the mean of the start vertices
func (t *Triangle) Centroid() core.Vec3 {
	return t.Start[0].Add(t.Start[1]).Add(t.Start[2]).Divide(3)
}

// Normal returns the normalized edge1×edge2 of the start keyframe
func (t *Triangle) Normal(point core.Vec3) core.Vec3 {
	edge1 := t.Start[1].Subtract(t.Start[0])
	edge2 := t.Start[2].Subtract(t.Start[0])
	return edge1.Cross(edge2).Normalize()
}
