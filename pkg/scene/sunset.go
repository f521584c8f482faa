package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
	"github.com/df07/go-motion-raytracer/pkg/loaders"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// NewSunsetScene builds the sunset animation: the sun sinks behind a
// translucent backdrop while the moon rises, the sky darkens, and a row of
// spheres and a glowing mesh float toward the horizon on the water
func NewSunsetScene(opts Options) (*Scene, error) {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 20),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       640,
		AspectRatio: 640.0 / 480.0,
		VFov:        50,
		Aperture:    0.0,
	}, opts)

	dusk := Background{Top: core.NewVec3(0.53, 0.81, 0.98), Bottom: core.NewVec3(0.9, 0.95, 1.0)}
	night := Background{Top: core.NewVec3(0.12, 0.15, 0.3), Bottom: core.NewVec3(0.2, 0.25, 0.5)}

	s := NewScene("sunset", cameraConfig, dusk)
	s.Animation.Background = &BackgroundTrack{Start: dusk, End: night}

	addSunAndMoon(s)
	if err := addFloatingMesh(s, opts); err != nil {
		return nil, err
	}
	addDriftingSpheres(s)
	addWaterAndBackdrop(s)

	return s, nil
}

func addSunAndMoon(s *Scene) {
	sunStart, sunEnd := core.NewVec3(0, 8, -22), core.NewVec3(0, -16, -22)
	moonStart, moonEnd := core.NewVec3(0, -16, -24), core.NewVec3(0, 8, -24)
	sunColorStart, sunColorEnd := core.NewVec3(1, 1, 0.9), core.NewVec3(0.9, 0.39, 0.28)
	moonColorStart, moonColorEnd := core.NewVec3(0.88, 0.82, 0.75), core.NewVec3(0.88, 0.88, 0.9)

	sunMaterial := s.AddMaterial(material.NewEmissive(sunColorStart))
	sun := geometry.NewSphere(sunStart, 6.0, sunMaterial)

	moonMaterial := s.AddMaterial(material.NewEmissive(moonColorStart))
	moon := geometry.NewSphere(moonStart, 4.0, moonMaterial)

	s.Add(sun, moon)
	s.Animation.Move(sun, sunStart, sunEnd)
	s.Animation.Move(moon, moonStart, moonEnd)
	s.Animation.Fade(sunMaterial, sunColorStart, sunColorEnd)
	s.Animation.Fade(moonMaterial, moonColorStart, moonColorEnd)
}

func addFloatingMesh(s *Scene, opts Options) error {
	mesh := NewCubeMesh(1.0)
	if opts.MeshPath != "" {
		loaded, err := loaders.LoadMesh(opts.MeshPath, opts.Logger)
		if err != nil {
			return fmt.Errorf("failed to load sunset mesh: %w", err)
		}
		mesh = loaded
	}

	start, end := core.NewVec3(0, -1.8, 18), core.NewVec3(0, -1.8, -16)
	glow := s.AddMaterial(material.NewEmissive(core.NewVec3(1.0, 0.8745, 0.8)))
	rotation := core.NewVec3(0, math.Pi/4, 0)

	shape := geometry.NewTriangleMesh(FitMesh(mesh, 1.0), mesh.Faces, glow, &geometry.TriangleMeshOptions{Rotation: &rotation})
	shape.MoveTo(start)
	s.Add(shape)
	s.Animation.Move(shape, start, end)
	return nil
}

func addDriftingSpheres(s *Scene) {
	pastelRed := core.NewVec3(0.98, 0.6, 0.6)
	pastelOrange := core.NewVec3(0.98, 0.7, 0.58)
	pastelBlue := core.NewVec3(0.6, 0.6, 0.98)
	pastelPurple := core.NewVec3(0.85, 0.6, 0.98)
	pastelPink := core.NewVec3(0.98, 0.6, 0.85)

	pinkMetal := s.AddMaterial(material.NewMetal(pastelPink, 0.1))
	purpleLambertian := s.AddMaterial(material.NewLambertian(pastelPurple))

	spheres := []struct {
		start, end core.Vec3
		radius     float64
		material   material.Handle
	}{
		{core.NewVec3(-12, -1.5, 8), core.NewVec3(-12, -1.5, -17), 0.6, s.AddMaterial(material.NewLambertian(pastelRed))},
		{core.NewVec3(-8, -1.5, 9), core.NewVec3(-8, -1.5, -16.5), 0.7, s.AddMaterial(material.NewMetal(pastelOrange, 0.1))},
		{core.NewVec3(-4, -1.5, 10), core.NewVec3(-4, -1.5, -16), 0.8, s.AddMaterial(material.NewLambertian(pastelBlue))},
		{core.NewVec3(4, -1.5, 12), core.NewVec3(4, -1.5, -15), 0.5, s.AddMaterial(material.NewTranslucent(2.4, pastelPurple))},
		{core.NewVec3(8, -1.5, 13), core.NewVec3(8, -1.5, -17.5), 0.6, s.AddMaterial(material.NewMetal(pastelPink, 0.2))},
		{core.NewVec3(12, -1.5, 14), core.NewVec3(12, -1.5, -17), 0.7, s.AddMaterial(material.NewMix(pinkMetal, purpleLambertian, 0.5))},
	}

	for _, sp := range spheres {
		sphere := geometry.NewSphere(sp.start, sp.radius, sp.material)
		s.Add(sphere)
		s.Animation.Move(sphere, sp.start, sp.end)
	}
}

func addWaterAndBackdrop(s *Scene) {
	reflectiveWater := s.AddMaterial(material.NewMetal(core.NewVec3(0.9, 0.9, 1.0), 0.02))
	refractiveWater := s.AddMaterial(material.NewTranslucent(1.33, core.NewVec3(0, 0.22, 0.66)))
	water := s.AddMaterial(material.NewMix(reflectiveWater, refractiveWater, 0.5))
	s.Add(newQuad(
		core.NewVec3(-30, -2, -20), core.NewVec3(30, -2, -20),
		core.NewVec3(-30, -2, 20), core.NewVec3(30, -2, 20),
		water)...)

	lambertBackdrop := s.AddMaterial(material.NewLambertian(core.NewVec3(0.98, 0.98, 1)))
	translucentBackdrop := s.AddMaterial(material.NewTranslucent(1.33, core.NewVec3(0.8, 0.8, 0.9)))
	backdrop := s.AddMaterial(material.NewMix(lambertBackdrop, translucentBackdrop, 0.5))
	s.Add(newQuad(
		core.NewVec3(-40, -4, -30), core.NewVec3(40, -4, -30),
		core.NewVec3(-40, 30, -30), core.NewVec3(40, 30, -30),
		backdrop)...)
}

// newQuad splits a rectangle into two triangles
func newQuad(bottomLeft, bottomRight, topLeft, topRight core.Vec3, mat material.Handle) []geometry.Shape {
	return []geometry.Shape{
		geometry.NewTriangle(bottomLeft, bottomRight, topLeft, mat),
		geometry.NewTriangle(topLeft, bottomRight, topRight, mat),
	}
}
