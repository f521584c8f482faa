package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-motion-raytracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	pool := NewPool()
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	h := pool.Add(NewMetal(albedo, 0.0))
	sampler := core.NewSeededSampler(42)

	// 45 degree ray onto the y=0 plane
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	result, scattered := pool.Scatter(h, rayIn, upHit(), sampler)
	if !scattered {
		t.Fatal("Expected perfect metal to scatter")
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	if !vecNear(result.Scattered.Direction, expected, 1e-9) {
		t.Errorf("Expected reflection %v, got %v", expected, result.Scattered.Direction)
	}
	if result.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, result.Attenuation)
	}
}

func TestMetal_FuzzBelowSurfaceAbsorbs(t *testing.T) {
	pool := NewPool()
	h := pool.Add(NewMetal(core.NewVec3(1, 1, 1), 1.0))

	// Grazing ray whose reflection is pushed under the surface by the fuzz offset
	rayIn := core.NewRay(core.NewVec3(-1, 0.1, 0), core.NewVec3(1, -0.1, 0))
	sampler := &stubSampler{sphere: core.NewVec3(0, -0.9, 0)}

	if _, scattered := pool.Scatter(h, rayIn, upHit(), sampler); scattered {
		t.Error("Expected reflection below the surface to be absorbed")
	}
}

func TestMetal_FuzzStaysAboveSurface(t *testing.T) {
	pool := NewPool()
	h := pool.Add(NewMetal(core.NewVec3(1, 1, 1), 0.3))
	random := rand.New(rand.NewSource(7))
	sampler := core.NewRandomSampler(random)

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	for i := 0; i < 100; i++ {
		result, scattered := pool.Scatter(h, rayIn, upHit(), sampler)
		if !scattered {
			t.Fatalf("Sample %d: head-on reflection with fuzz 0.3 should always scatter", i)
		}
		if result.Scattered.Direction.Dot(upHit().Normal) <= 0 {
			t.Errorf("Sample %d: scattered ray points below the surface: %v", i, result.Scattered.Direction)
		}
	}
}
