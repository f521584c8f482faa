package geometry

import (
	"math"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// Sphere represents a sphere whose center moves linearly from CenterStart
// at time 0 to CenterEnd at time 1
type Sphere struct {
	CenterStart core.Vec3
	CenterEnd   core.Vec3
	Radius      float64
	Material    material.Handle
	bbox        core.AABB
}

// NewSphere creates a static sphere
func NewSphere(center core.Vec3, radius float64, mat material.Handle) *Sphere {
	return NewMovingSphere(center, center, radius, mat)
}

// NewMovingSphere creates a sphere that is motion blurred between two centers
func NewMovingSphere(centerStart, centerEnd core.Vec3, radius float64, mat material.Handle) *Sphere {
	s := &Sphere{
		CenterStart: centerStart,
		CenterEnd:   centerEnd,
		Radius:      radius,
		Material:    mat,
	}
	s.computeBoundingBox()
	return s
}

func (s *Sphere) computeBoundingBox() {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	start := core.NewAABB(s.CenterStart.Subtract(radius), s.CenterStart.Add(radius))
	end := core.NewAABB(s.CenterEnd.Subtract(radius), s.CenterEnd.Add(radius))
	s.bbox = core.SurroundingBox(start, end)
}

// Center returns the interpolated center at the given time
func (s *Sphere) Center(time float64) core.Vec3 {
	return s.CenterStart.Lerp(s.CenterEnd, time)
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord, boxHits *int64) bool {
	if !s.bbox.Hit(ray, tMin, tMax) {
		return false
	}
	countBoxHit(boxHits)

	center := s.Center(ray.Time)

	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c

	// Tangent rays count as misses
	if discriminant <= 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	rec.Material = s.Material

	// Calculate outward normal (from center to hit point)
	outwardNormal := rec.Point.Subtract(center).Divide(s.Radius)
	rec.SetFaceNormal(ray, outwardNormal)

	return true
}

// BoundingBox returns the box around both keyframe positions
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// Translate shifts both keyframe centers
func (s *Sphere) Translate(offset core.Vec3) {
	s.CenterStart = s.CenterStart.Add(offset)
	s.CenterEnd = s.CenterEnd.Add(offset)
	s.bbox.Translate(offset)
}

// MoveTo places the center of the bounding box at position
func (s *Sphere) MoveTo(position core.Vec3) {
	s.Translate(position.Subtract(s.bbox.Center()))
}

// Normal returns the outward normal at a point on the start keyframe
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.CenterStart).Divide(s.Radius)
}
