package integrator

import (
	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// World is the closest-hit query the integrator traces against
type World interface {
	Hit(ray core.Ray, tMin, tMax float64, boxHits *int64) (material.HitRecord, bool)
}

// Counters accumulates per-worker render metrics. Each worker owns one;
// the frame driver sums them after the pass.
type Counters struct {
	Rays       int64 // Camera rays traced
	ObjectHits int64 // Successful closest-hit queries
	BoxHits    int64 // Bounding boxes passed by any ray
}

// Add folds other into c
func (c *Counters) Add(other Counters) {
	c.Rays += other.Rays
	c.ObjectHits += other.ObjectHits
	c.BoxHits += other.BoxHits
}
