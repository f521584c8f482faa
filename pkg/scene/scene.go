package scene

import (
	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// Background is the vertical sky gradient seen by rays that escape
type Background struct {
	Top    core.Vec3 // Color straight up, also the depth-exhaustion fallback
	Bottom core.Vec3 // Color straight down
}

// Scene owns the materials, the master shape list and the animation that
// poses them for each frame
type Scene struct {
	Name         string
	Materials    *material.Pool
	Shapes       []geometry.Shape // Master list; the World is rebuilt from it every frame
	CameraConfig geometry.CameraConfig
	Background   Background
	Animation    Animation
}

// Frame is everything needed to render one frame of a scene
type Frame struct {
	Index      int
	World      *World
	Camera     *geometry.Camera
	Background Background
}

// NewScene creates an empty scene with its own material pool
func NewScene(name string, cameraConfig geometry.CameraConfig, background Background) *Scene {
	return &Scene{
		Name:         name,
		Materials:    material.NewPool(),
		CameraConfig: cameraConfig,
		Background:   background,
	}
}

// AddMaterial stores a material in the scene's pool
func (s *Scene) AddMaterial(m material.Material) material.Handle {
	return s.Materials.Add(m)
}

// Add appends shapes to the master list
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// PrepareFrame poses every animated shape and material for frame index of
// count, then rebuilds the aggregate. It mutates the scene and must not
// run while another frame of the same scene is rendering.
func (s *Scene) PrepareFrame(index, count int) *Frame {
	fraction := FrameFraction(index, count)
	s.Animation.Apply(s.Materials, fraction)

	background := s.Background
	if s.Animation.Background != nil {
		background = s.Animation.Background.At(fraction)
	}

	return &Frame{
		Index:      index,
		World:      NewWorld(s.Shapes...),
		Camera:     geometry.NewCamera(s.CameraConfig),
		Background: background,
	}
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		switch obj := shape.(type) {
		case *geometry.CompoundShape:
			count += obj.TriangleCount()
		default:
			count++
		}
	}
	return count
}
