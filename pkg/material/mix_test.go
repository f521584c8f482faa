package material

import (
	"testing"

	"github.com/df07/go-motion-raytracer/pkg/core"
)

func TestMix_BlendEndpoints(t *testing.T) {
	pool := NewPool()
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)
	first := pool.Add(NewLambertian(red))
	second := pool.Add(NewLambertian(blue))

	tests := []struct {
		name     string
		blend    float64
		expected core.Vec3
	}{
		{"Blend 0 always first", 0.0, red},
		{"Blend 1 always second", 1.0, blue},
	}

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := pool.Add(NewMix(first, second, tt.blend))
			sampler := core.NewSeededSampler(3)
			for i := 0; i < 200; i++ {
				result, scattered := pool.Scatter(h, rayIn, upHit(), sampler)
				if !scattered {
					t.Fatal("Mix of lambertians should always scatter")
				}
				if result.Attenuation != tt.expected {
					t.Fatalf("Sample %d: expected %v, got %v", i, tt.expected, result.Attenuation)
				}
			}
		})
	}
}

func TestMix_StochasticFrequency(t *testing.T) {
	pool := NewPool()
	first := pool.Add(NewLambertian(core.NewVec3(1, 0, 0)))
	second := pool.Add(NewLambertian(core.NewVec3(0, 0, 1)))
	h := pool.Add(NewMix(first, second, 0.25))

	sampler := core.NewSeededSampler(11)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	const samples = 20000
	secondCount := 0
	for i := 0; i < samples; i++ {
		result, _ := pool.Scatter(h, rayIn, upHit(), sampler)
		if result.Attenuation.Z == 1 {
			secondCount++
		}
	}

	fraction := float64(secondCount) / samples
	if fraction < 0.23 || fraction > 0.27 {
		t.Errorf("Expected about 25%% second material, got %.3f", fraction)
	}
}

func TestMix_EmittedIsLinearBlend(t *testing.T) {
	pool := NewPool()
	light := pool.Add(NewEmissive(core.NewVec3(2, 4, 8)))
	dark := pool.Add(NewLambertian(core.NewVec3(1, 1, 1)))
	h := pool.Add(NewMix(dark, light, 0.25))

	expected := core.NewVec3(0.5, 1, 2)
	if got := pool.Emitted(h, core.Vec3{}); !vecNear(got, expected, 1e-12) {
		t.Errorf("Expected blended emission %v, got %v", expected, got)
	}
	if pool.IsEmissive(h) {
		t.Error("Mix should not carry the emissive flag")
	}
}

func TestMix_Nested(t *testing.T) {
	pool := NewPool()
	a := pool.Add(NewEmissive(core.NewVec3(1, 0, 0)))
	b := pool.Add(NewEmissive(core.NewVec3(0, 1, 0)))
	inner := pool.Add(NewMix(a, b, 0.5))
	c := pool.Add(NewEmissive(core.NewVec3(0, 0, 1)))
	outer := pool.Add(NewMix(inner, c, 0.5))

	expected := core.NewVec3(0.25, 0.25, 0.5)
	if got := pool.Emitted(outer, core.Vec3{}); !vecNear(got, expected, 1e-12) {
		t.Errorf("Expected nested emission %v, got %v", expected, got)
	}
}

func TestPool_AddRejectsUnknownHandles(t *testing.T) {
	tests := []struct {
		name          string
		first, second Handle
	}{
		{"Forward reference", 0, 5},
		{"Self reference", 0, 1},
		{"No material", NoMaterial, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool()
			pool.Add(NewLambertian(core.NewVec3(1, 1, 1)))

			defer func() {
				if recover() == nil {
					t.Error("Expected panic for mix with unknown handle")
				}
			}()
			pool.Add(NewMix(tt.first, tt.second, 0.5))
		})
	}
}

func TestNewMix_BlendClamp(t *testing.T) {
	if m := NewMix(0, 1, 1.5); m.Blend != 1 {
		t.Errorf("Expected blend clamped to 1, got %f", m.Blend)
	}
	if m := NewMix(0, 1, -2); m.Blend != 0 {
		t.Errorf("Expected blend clamped to 0, got %f", m.Blend)
	}
	if KindMix.String() != "mix" {
		t.Errorf("Unexpected kind name %q", KindMix.String())
	}
}
