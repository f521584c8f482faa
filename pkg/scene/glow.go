package scene

import (
	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// NewGlowScene places the camera inside a white emissive sphere, so every
// primary ray hits the light
func NewGlowScene(opts Options) (*Scene, error) {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       64,
		AspectRatio: 1.0,
		VFov:        90,
	}, opts)

	s := NewScene("glow", cameraConfig, Background{
		Top:    core.NewVec3(0, 0, 0),
		Bottom: core.NewVec3(0, 0, 0),
	})

	white := s.AddMaterial(material.NewEmissive(core.NewVec3(1, 1, 1)))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 100, white))

	return s, nil
}
