package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
	"github.com/df07/go-motion-raytracer/pkg/material"
	"github.com/df07/go-motion-raytracer/pkg/scene"
)

// countingWorld wraps a World and records every closest-hit query
type countingWorld struct {
	inner   World
	queries int
	tMins   []float64
	tMaxs   []float64
}

func (w *countingWorld) Hit(ray core.Ray, tMin, tMax float64, boxHits *int64) (material.HitRecord, bool) {
	w.queries++
	w.tMins = append(w.tMins, tMin)
	w.tMaxs = append(w.tMaxs, tMax)
	if w.inner == nil {
		return material.HitRecord{}, false
	}
	return w.inner.Hit(ray, tMin, tMax, boxHits)
}

var sky = scene.Background{
	Top:    core.NewVec3(0.5, 0.7, 1.0),
	Bottom: core.NewVec3(1.0, 1.0, 1.0),
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance && math.Abs(a.Z-b.Z) <= tolerance
}

func TestPathTracing_DepthExhaustion(t *testing.T) {
	pool := material.NewPool()
	pt := NewPathTracer(pool)
	world := &countingWorld{}
	sampler := core.NewSeededSampler(1)

	for _, depth := range []int{0, -1} {
		got := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, sky, depth, sampler, nil)
		if got != sky.Top {
			t.Errorf("Depth %d: expected background top %v, got %v", depth, sky.Top, got)
		}
	}
	if world.queries != 0 {
		t.Errorf("Expected no intersection tests at exhausted depth, got %d", world.queries)
	}
}

func TestPathTracing_BackgroundGradient(t *testing.T) {
	pt := NewPathTracer(material.NewPool())
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 3, 0), sky.Top},
		{"straight down", core.NewVec3(0, -2, 0), sky.Bottom},
		{"horizontal", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := &countingWorld{}
			got := pt.RayColor(core.NewRay(core.Vec3{}, tt.direction), world, sky, 5, sampler, nil)
			if !vecNear(got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if world.queries != 1 {
				t.Errorf("Expected one intersection test, got %d", world.queries)
			}
			if world.tMins[0] != 0.001 || !math.IsInf(world.tMaxs[0], 1) {
				t.Errorf("Expected query range (0.001, +Inf), got (%f, %f)", world.tMins[0], world.tMaxs[0])
			}
		})
	}
}

func TestPathTracing_EmissiveTerminates(t *testing.T) {
	pool := material.NewPool()
	light := pool.Add(material.NewEmissive(core.NewVec3(4, 2, 1)))
	world := &countingWorld{inner: scene.NewWorld(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, light))}
	pt := NewPathTracer(pool)
	counters := &Counters{}

	got := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, sky, 50, core.NewSeededSampler(1), counters)
	if got != core.NewVec3(4, 2, 1) {
		t.Errorf("Expected the emission color, got %v", got)
	}
	if world.queries != 1 {
		t.Errorf("Expected the walk to stop at the emitter after one query, got %d", world.queries)
	}
	if counters.ObjectHits != 1 || counters.BoxHits != 1 {
		t.Errorf("Expected one counted object and box hit, got %+v", *counters)
	}
}

// fixedSampler returns the same ball offset every draw
type fixedSampler struct {
	ball core.Vec3
}

func (s fixedSampler) Get1D() float64                    { return 0.5 }
func (s fixedSampler) GetRange(min, max float64) float64 { return min + 0.5*(max-min) }
func (s fixedSampler) InUnitDisk() core.Vec3             { return core.Vec3{} }
func (s fixedSampler) InUnitSphere() core.Vec3           { return s.ball }

func TestPathTracing_AbsorbedScatterIsBlack(t *testing.T) {
	pool := material.NewPool()
	rough := pool.Add(material.NewMetal(core.NewVec3(1, 1, 1), 1))
	world := &countingWorld{inner: scene.NewWorld(geometry.NewTriangle(
		core.NewVec3(-100, -100, -5), core.NewVec3(100, -100, -5), core.NewVec3(0, 100, -5), rough))}
	pt := NewPathTracer(pool)

	// The fuzz offset pushes the 45 degree reflection below the surface
	ray := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, -1))
	got := pt.RayColor(ray, world, sky, 3, fixedSampler{ball: core.NewVec3(0, 0, -0.9)}, nil)
	if got != (core.Vec3{}) {
		t.Errorf("Expected black from an absorbed ray, got %v", got)
	}
	if world.queries != 1 {
		t.Errorf("Expected the walk to stop after one query, got %d", world.queries)
	}
}

func TestPathTracing_AttenuationMultiplies(t *testing.T) {
	pool := material.NewPool()
	mirror := pool.Add(material.NewMetal(core.NewVec3(0.5, 0.25, 1), 0))
	world := &countingWorld{inner: scene.NewWorld(geometry.NewTriangle(
		core.NewVec3(-10, -1, 10), core.NewVec3(10, -1, 10), core.NewVec3(0, -1, -10), mirror))}
	pt := NewPathTracer(pool)

	// Straight down onto the mirror bounces straight up into the sky top
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))
	got := pt.RayColor(ray, world, sky, 5, core.NewSeededSampler(1), nil)
	expected := sky.Top.MultiplyVec(core.NewVec3(0.5, 0.25, 1))
	if !vecNear(got, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if world.queries != 2 {
		t.Errorf("Expected two queries (mirror, sky), got %d", world.queries)
	}

	// With a single bounce left the reflected ray is cut off and sees the top color
	world.queries = 0
	got = pt.RayColor(ray, world, scene.Background{Top: core.NewVec3(1, 1, 1)}, 1, core.NewSeededSampler(1), nil)
	if !vecNear(got, core.NewVec3(0.5, 0.25, 1), 1e-12) {
		t.Errorf("Expected attenuation times top color, got %v", got)
	}
	if world.queries != 1 {
		t.Errorf("Expected one query before depth ran out, got %d", world.queries)
	}
}

func TestPathTracing_DiffuseConverges(t *testing.T) {
	// A white diffuse floor under a uniform white sky reflects white
	pool := material.NewPool()
	white := pool.Add(material.NewLambertian(core.NewVec3(1, 1, 1)))
	world := scene.NewWorld(geometry.NewSphere(core.NewVec3(0, -1000, 0), 999, white))
	pt := NewPathTracer(pool)
	uniform := scene.Background{Top: core.NewVec3(1, 1, 1), Bottom: core.NewVec3(1, 1, 1)}
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	for i := 0; i < 100; i++ {
		got := pt.RayColor(ray, world, uniform, 50, sampler, nil)
		if !vecNear(got, core.NewVec3(1, 1, 1), 1e-9) {
			t.Fatalf("Sample %d: expected white, got %v", i, got)
		}
	}
}

func TestCounters_Add(t *testing.T) {
	total := Counters{Rays: 1, ObjectHits: 2, BoxHits: 3}
	total.Add(Counters{Rays: 10, ObjectHits: 20, BoxHits: 30})
	if total != (Counters{Rays: 11, ObjectHits: 22, BoxHits: 33}) {
		t.Errorf("Expected summed counters, got %+v", total)
	}
}
