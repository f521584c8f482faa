package geometry

import (
	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// Shape is the closed set of primitives: *Sphere, *Triangle and *CompoundShape.
// Every primitive stores a start (time 0) and end (time 1) keyframe and
// interpolates between them by the ray's time.
type Shape interface {
	// Hit fills rec and reports whether the ray hits the shape with t in
	// (tMin, tMax). Every bounding box the ray passes is added to boxHits,
	// which may be nil.
	Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord, boxHits *int64) bool
	// BoundingBox covers both keyframes
	BoundingBox() core.AABB
	// Translate rigidly shifts both keyframes and the bounding box
	Translate(offset core.Vec3)
	// MoveTo translates the shape so its centroid lands on position
	MoveTo(position core.Vec3)
	// Normal returns the outward normal at a point of the start keyframe
	Normal(point core.Vec3) core.Vec3

	isShape()
}

func (*Sphere) isShape()        {}
func (*Triangle) isShape()      {}
func (*CompoundShape) isShape() {}

func countBoxHit(boxHits *int64) {
	if boxHits != nil {
		*boxHits++
	}
}
