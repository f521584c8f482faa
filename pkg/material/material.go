package material

import (
	"fmt"
	"math"

	"github.com/df07/go-motion-raytracer/pkg/core"
)

// Kind tags the closed set of material variants
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
	KindTranslucent
	KindEmissive
	KindMix
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	case KindTranslucent:
		return "translucent"
	case KindEmissive:
		return "emissive"
	case KindMix:
		return "mix"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Material is a tagged variant. Only the fields relevant to Kind are used.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and metal color, translucent tint
	Fuzz            float64   // Metal roughness in [0,1]
	RefractiveIndex float64   // Dielectric and translucent index of refraction
	Emission        core.Vec3 // Emissive color
	First, Second   Handle    // Mix sub-materials
	Blend           float64   // Mix weight in [0,1]: 0 = all First, 1 = all Second
}

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// NewMetal creates a metallic material; fuzz is clamped to [0,1]
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: clampUnit(fuzz)}
}

// NewDielectric creates a clear refractive material like glass or water
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

// NewTranslucent creates a dielectric that tints every bounce
func NewTranslucent(refractiveIndex float64, tint core.Vec3) Material {
	return Material{Kind: KindTranslucent, RefractiveIndex: refractiveIndex, Albedo: tint}
}

// NewEmissive creates a light-emitting material that never scatters
func NewEmissive(emission core.Vec3) Material {
	return Material{Kind: KindEmissive, Emission: emission}
}

// NewMix creates a material that picks Second with probability blend per scatter.
// Both handles must already be stored in the pool the mix is added to.
func NewMix(first, second Handle, blend float64) Material {
	return Material{Kind: KindMix, First: first, Second: second, Blend: clampUnit(blend)}
}

// IsEmissive reports whether the integrator should terminate paths on this material
func (m Material) IsEmissive() bool {
	return m.Kind == KindEmissive
}

func clampUnit(v float64) float64 {
	return math.Max(0.0, math.Min(v, 1.0))
}
