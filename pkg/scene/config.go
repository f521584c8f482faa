package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
	"github.com/df07/go-motion-raytracer/pkg/loaders"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// Vec is a JSON triple [x, y, z]
type Vec [3]float64

func (v Vec) vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func vecPtr(v *Vec, fallback core.Vec3) core.Vec3 {
	if v == nil {
		return fallback
	}
	return v.vec3()
}

// Config is a JSON scene description
type Config struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Group       string        `json:"group,omitempty"`
	Camera      CameraCfg     `json:"camera"`
	Background  BackgroundCfg `json:"background"`
	Materials   []MaterialCfg `json:"materials"`
	Objects     []ObjectCfg   `json:"objects"`
}

type CameraCfg struct {
	Center        *Vec    `json:"center,omitempty"`
	LookAt        *Vec    `json:"lookAt,omitempty"`
	Up            *Vec    `json:"up,omitempty"`
	Width         int     `json:"width,omitempty"`
	Height        int     `json:"height,omitempty"`
	VFov          float64 `json:"vfov,omitempty"`
	Aperture      float64 `json:"aperture,omitempty"`
	FocusDistance float64 `json:"focusDistance,omitempty"`
}

// BackgroundCfg fades from Top/Bottom to TopEnd/BottomEnd when those are given
type BackgroundCfg struct {
	Top       Vec  `json:"top"`
	Bottom    Vec  `json:"bottom"`
	TopEnd    *Vec `json:"topEnd,omitempty"`
	BottomEnd *Vec `json:"bottomEnd,omitempty"`
}

// MaterialCfg describes one named material. Type is one of lambertian,
// metal, dielectric, translucent, emissive or mix. Mix sub-materials must
// be declared earlier in the list.
type MaterialCfg struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Albedo          Vec     `json:"albedo,omitempty"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"refractiveIndex,omitempty"`
	Tint            Vec     `json:"tint,omitempty"`
	Emission        Vec     `json:"emission,omitempty"`
	EmissionEnd     *Vec    `json:"emissionEnd,omitempty"`
	First           string  `json:"first,omitempty"`
	Second          string  `json:"second,omitempty"`
	Blend           float64 `json:"blend,omitempty"`
}

// ObjectCfg describes a sphere, triangle or mesh. Start/End animate the
// object's centroid across frames; CenterEnd and VerticesEnd give motion
// blur within a frame.
type ObjectCfg struct {
	Type        string  `json:"type"`
	Material    string  `json:"material"`
	Center      Vec     `json:"center,omitempty"`
	CenterEnd   *Vec    `json:"centerEnd,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	Vertices    []Vec   `json:"vertices,omitempty"`
	VerticesEnd []Vec   `json:"verticesEnd,omitempty"`
	Mesh        string  `json:"mesh,omitempty"`
	Size        float64 `json:"size,omitempty"`
	RotationDeg *Vec    `json:"rotationDeg,omitempty"`
	Start       *Vec    `json:"start,omitempty"`
	End         *Vec    `json:"end,omitempty"`
}

// LoadConfig reads a JSON scene file. Mesh paths are resolved relative to
// the file's directory.
func LoadConfig(path string, logger core.Logger) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	s, err := ParseConfig(data, filepath.Dir(path), logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseConfig builds a scene from JSON bytes
func ParseConfig(data []byte, baseDir string, logger core.Logger) (*Scene, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return cfg.Build(baseDir, logger)
}

// Build turns the description into a scene
func (cfg Config) Build(baseDir string, logger core.Logger) (*Scene, error) {
	name := cfg.Name
	if name == "" {
		name = "custom"
	}

	background := Background{Top: cfg.Background.Top.vec3(), Bottom: cfg.Background.Bottom.vec3()}
	s := NewScene(name, cfg.Camera.Build(), background)

	if cfg.Background.TopEnd != nil || cfg.Background.BottomEnd != nil {
		s.Animation.Background = &BackgroundTrack{
			Start: background,
			End: Background{
				Top:    vecPtr(cfg.Background.TopEnd, background.Top),
				Bottom: vecPtr(cfg.Background.BottomEnd, background.Bottom),
			},
		}
	}

	handles := make(map[string]material.Handle, len(cfg.Materials))
	for i, mc := range cfg.Materials {
		if mc.Name == "" {
			return nil, fmt.Errorf("material %d has no name", i)
		}
		if _, dup := handles[mc.Name]; dup {
			return nil, fmt.Errorf("duplicate material %q", mc.Name)
		}
		m, err := mc.Build(handles)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", mc.Name, err)
		}
		h := s.AddMaterial(m)
		handles[mc.Name] = h
		if mc.EmissionEnd != nil {
			s.Animation.Fade(h, mc.Emission.vec3(), mc.EmissionEnd.vec3())
		}
	}

	for i, oc := range cfg.Objects {
		h, ok := handles[oc.Material]
		if !ok {
			return nil, fmt.Errorf("object %d: unknown material %q", i, oc.Material)
		}
		shape, err := oc.Build(h, baseDir, logger)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(shape)

		if oc.Start != nil || oc.End != nil {
			centroid := shapeCentroid(shape)
			start := vecPtr(oc.Start, centroid)
			s.Animation.Move(shape, start, vecPtr(oc.End, start))
		}
	}

	return s, nil
}

// Build returns the camera config with defaults for missing fields
func (c CameraCfg) Build() geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	config.Center = vecPtr(c.Center, config.Center)
	config.LookAt = vecPtr(c.LookAt, config.LookAt)
	config.Up = vecPtr(c.Up, config.Up)
	if c.Width > 0 {
		config.Width = c.Width
	}
	if c.Height > 0 {
		config.AspectRatio = float64(config.Width) / float64(c.Height)
	}
	if c.VFov > 0 {
		config.VFov = c.VFov
	}
	config.Aperture = c.Aperture
	config.FocusDistance = c.FocusDistance
	return config
}

// Build creates the material; mix references resolve against handles
func (mc MaterialCfg) Build(handles map[string]material.Handle) (material.Material, error) {
	switch mc.Type {
	case "lambertian":
		return material.NewLambertian(mc.Albedo.vec3()), nil
	case "metal":
		return material.NewMetal(mc.Albedo.vec3(), mc.Fuzz), nil
	case "dielectric":
		if mc.RefractiveIndex <= 0 {
			return material.Material{}, fmt.Errorf("refractiveIndex must be positive")
		}
		return material.NewDielectric(mc.RefractiveIndex), nil
	case "translucent":
		if mc.RefractiveIndex <= 0 {
			return material.Material{}, fmt.Errorf("refractiveIndex must be positive")
		}
		return material.NewTranslucent(mc.RefractiveIndex, mc.Tint.vec3()), nil
	case "emissive":
		return material.NewEmissive(mc.Emission.vec3()), nil
	case "mix":
		first, ok := handles[mc.First]
		if !ok {
			return material.Material{}, fmt.Errorf("unknown first material %q", mc.First)
		}
		second, ok := handles[mc.Second]
		if !ok {
			return material.Material{}, fmt.Errorf("unknown second material %q", mc.Second)
		}
		return material.NewMix(first, second, mc.Blend), nil
	default:
		return material.Material{}, fmt.Errorf("unknown material type %q", mc.Type)
	}
}

// Build creates the shape
func (oc ObjectCfg) Build(h material.Handle, baseDir string, logger core.Logger) (geometry.Shape, error) {
	switch oc.Type {
	case "sphere":
		if oc.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive")
		}
		center := oc.Center.vec3()
		return geometry.NewMovingSphere(center, vecPtr(oc.CenterEnd, center), oc.Radius, h), nil
	case "triangle":
		if len(oc.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(oc.Vertices))
		}
		start := [3]core.Vec3{oc.Vertices[0].vec3(), oc.Vertices[1].vec3(), oc.Vertices[2].vec3()}
		end := start
		if oc.VerticesEnd != nil {
			if len(oc.VerticesEnd) != 3 {
				return nil, fmt.Errorf("triangle verticesEnd needs 3 vertices, got %d", len(oc.VerticesEnd))
			}
			end = [3]core.Vec3{oc.VerticesEnd[0].vec3(), oc.VerticesEnd[1].vec3(), oc.VerticesEnd[2].vec3()}
		}
		return geometry.NewMovingTriangle(start, end, h), nil
	case "mesh":
		path := oc.Mesh
		if path == "" {
			mesh := NewCubeMesh(1)
			return oc.buildMesh(mesh, h), nil
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		mesh, err := loaders.LoadMesh(path, logger)
		if err != nil {
			return nil, err
		}
		return oc.buildMesh(mesh, h), nil
	default:
		return nil, fmt.Errorf("unknown object type %q", oc.Type)
	}
}

func (oc ObjectCfg) buildMesh(mesh *loaders.Mesh, h material.Handle) *geometry.CompoundShape {
	vertices := mesh.Vertices
	if oc.Size > 0 {
		vertices = FitMesh(mesh, oc.Size)
	}

	var options *geometry.TriangleMeshOptions
	if oc.RotationDeg != nil {
		rotation := oc.RotationDeg.vec3().Multiply(math.Pi / 180)
		options = &geometry.TriangleMeshOptions{Rotation: &rotation}
	}

	shape := geometry.NewTriangleMesh(vertices, mesh.Faces, h, options)
	if oc.Center != (Vec{}) {
		shape.MoveTo(oc.Center.vec3())
	}
	return shape
}

// shapeCentroid returns the point MoveTo aligns for the shape
func shapeCentroid(shape geometry.Shape) core.Vec3 {
	if t, ok := shape.(*geometry.Triangle); ok {
		return t.Centroid()
	}
	return shape.BoundingBox().Center()
}
