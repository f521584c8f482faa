package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
)

// Options carries inputs shared by the built-in scene constructors
type Options struct {
	MeshPath        string                 // Optional OBJ or PLY file for scenes that float a mesh
	CameraOverrides *geometry.CameraConfig // Non-zero fields replace the scene's camera
	Logger          core.Logger
}

type builtinScene struct {
	description string
	create      func(Options) (*Scene, error)
}

var builtinScenes = map[string]builtinScene{
	"sunset": {
		description: "Sun sets and moon rises over water while spheres and a glowing mesh drift past",
		create:      NewSunsetScene,
	},
	"spheres": {
		description: "One motion blurred sphere per material kind over a mirror floor",
		create:      NewSpheresScene,
	},
	"glow": {
		description: "Camera inside a single white emissive sphere",
		create:      NewGlowScene,
	},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the one-line description of a built-in scene
func Describe(name string) string {
	return builtinScenes[name].description
}

// New creates the named built-in scene
func New(name string, opts Options) (*Scene, error) {
	entry, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	return entry.create(opts)
}

// applyCameraOverrides merges opts.CameraOverrides onto a scene's default camera
func applyCameraOverrides(defaults geometry.CameraConfig, opts Options) geometry.CameraConfig {
	if opts.CameraOverrides == nil {
		return defaults
	}
	return geometry.MergeCameraConfig(defaults, *opts.CameraOverrides)
}
