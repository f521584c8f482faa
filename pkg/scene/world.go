package scene

import (
	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// World is the flat aggregate the integrator intersects. It is read-only
// while a frame renders.
type World struct {
	shapes []geometry.Shape
}

// NewWorld creates an aggregate over the given shapes
func NewWorld(shapes ...geometry.Shape) *World {
	w := &World{shapes: make([]geometry.Shape, 0, len(shapes))}
	w.shapes = append(w.shapes, shapes...)
	return w
}

// Add appends a shape to the aggregate
func (w *World) Add(shape geometry.Shape) {
	w.shapes = append(w.shapes, shape)
}

// Len returns the number of shapes in the aggregate
func (w *World) Len() int {
	return len(w.shapes)
}

// Hit scans every shape and returns the closest hit with t in (tMin, tMax).
// Ties keep the earlier shape. Bounding boxes the ray passes are counted in
// boxHits when it is not nil.
func (w *World) Hit(ray core.Ray, tMin, tMax float64, boxHits *int64) (material.HitRecord, bool) {
	var closest material.HitRecord
	closest.Material = material.NoMaterial
	hitAnything := false
	closestSoFar := tMax

	var rec material.HitRecord
	for _, shape := range w.shapes {
		var hit bool
		switch s := shape.(type) {
		case *geometry.Sphere:
			hit = s.Hit(ray, tMin, closestSoFar, &rec, boxHits)
		case *geometry.Triangle:
			hit = s.Hit(ray, tMin, closestSoFar, &rec, boxHits)
		case *geometry.CompoundShape:
			hit = s.Hit(ray, tMin, closestSoFar, &rec, boxHits)
		}
		if hit {
			hitAnything = true
			closestSoFar = rec.T
			closest = rec
		}
	}

	return closest, hitAnything
}
