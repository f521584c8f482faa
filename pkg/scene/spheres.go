package scene

import (
	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// NewSpheresScene shows each material kind on a sphere. Every sphere has
// its own shutter motion, so single frames already show motion blur, and
// the row slides sideways across the animation.
func NewSpheresScene(opts Options) (*Scene, error) {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:        core.NewVec3(0, 2, 9),
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40,
		Aperture:      0.1,
		FocusDistance: 0.0,
	}, opts)

	s := NewScene("spheres", cameraConfig, Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	})

	floor := s.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.7, 0.75), 0.3))
	s.Add(newQuad(
		core.NewVec3(-20, 0, 20), core.NewVec3(20, 0, 20),
		core.NewVec3(-20, 0, -20), core.NewVec3(20, 0, -20),
		floor)...)

	red := s.AddMaterial(material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)))
	gold := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0))
	glass := s.AddMaterial(material.NewDielectric(1.5))
	tinted := s.AddMaterial(material.NewTranslucent(1.33, core.NewVec3(0.6, 0.9, 0.7)))
	light := s.AddMaterial(material.NewEmissive(core.NewVec3(4, 3.6, 3)))
	mixed := s.AddMaterial(material.NewMix(red, gold, 0.5))

	row := []material.Handle{red, gold, glass, tinted, light, mixed}
	for i, h := range row {
		x := -5.0 + 2.0*float64(i)
		start := core.NewVec3(x, 0.7, 0)
		end := start.Add(core.NewVec3(0, 0.15*float64(i%3), 0))
		sphere := geometry.NewMovingSphere(start, end, 0.7, h)
		s.Add(sphere)

		center := sphere.BoundingBox().Center()
		s.Animation.Move(sphere, center, center.Add(core.NewVec3(1, 0, 0)))
	}

	return s, nil
}
