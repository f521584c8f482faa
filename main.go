package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
	"github.com/df07/go-motion-raytracer/pkg/renderer"
	"github.com/df07/go-motion-raytracer/pkg/scene"
)

// Config holds the parsed command line
type Config struct {
	SceneType  string
	ConfigPath string
	MeshPath   string
	Width      int
	Height     int
	Sampling   renderer.SamplingConfig
	Animation  renderer.AnimationConfig
	Format     string
	GIF        bool
	GIFDelay   int
	OutputDir  string
}

func main() {
	sampling := renderer.DefaultSamplingConfig()
	animation := renderer.DefaultAnimationConfig()

	// Parse command line flags
	sceneType := flag.String("scene", "sunset", "Built-in scene name, scene file name under scenes/, or .json path (see -help)")
	configPath := flag.String("config", "", "JSON scene file; overrides -scene")
	frames := flag.Int("frames", animation.Frames, "Number of animation frames")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 = scene default)")
	samples := flag.Int("samples", sampling.SamplesPerPixel, "Samples per pixel")
	depth := flag.Int("depth", sampling.MaxDepth, "Maximum ray bounce depth")
	workers := flag.Int("workers", animation.NumWorkers, "Number of parallel workers (0 = CPU count)")
	tileSize := flag.Int("tile", animation.TileSize, "Tile size in pixels")
	seed := flag.Int64("seed", animation.Seed, "Random seed")
	meshPath := flag.String("mesh", "", "OBJ or PLY file for the floating mesh of the sunset scene")
	format := flag.String("format", renderer.FormatPNG, "Frame format: 'png' or 'ppm'")
	makeGIF := flag.Bool("gif", false, "Also assemble the frames into an animated GIF")
	gifDelay := flag.Int("gif-delay", 10, "GIF frame delay in 1/100 s")
	outputDir := flag.String("output", "output", "Output directory; frames go to <output>/<scene>/")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	config := Config{
		SceneType:  *sceneType,
		ConfigPath: *configPath,
		MeshPath:   *meshPath,
		Width:      *width,
		Height:     *height,
		Sampling: renderer.SamplingConfig{
			SamplesPerPixel: *samples,
			MaxDepth:        *depth,
		},
		Animation: renderer.AnimationConfig{
			Frames:     *frames,
			TileSize:   *tileSize,
			NumWorkers: *workers,
			Seed:       *seed,
		},
		Format:    *format,
		GIF:       *makeGIF,
		GIFDelay:  *gifDelay,
		OutputDir: *outputDir,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Motion Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	groups, err := scene.ListAllScenes(scene.DefaultScenesDir, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
	}
	for _, group := range groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("  %-12s - %s\n", info.ID, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to <output>/<scene>/frame_NNNN.<format>")
}

// validate checks flag values that would otherwise fail deep in rendering
func (c Config) validate() error {
	if c.Format != renderer.FormatPNG && c.Format != renderer.FormatPPM {
		return fmt.Errorf("unknown format %q (want png or ppm)", c.Format)
	}
	if c.Animation.Frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", c.Animation.Frames)
	}
	if c.Sampling.SamplesPerPixel < 1 {
		return fmt.Errorf("samples must be at least 1, got %d", c.Sampling.SamplesPerPixel)
	}
	if c.Sampling.MaxDepth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", c.Sampling.MaxDepth)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("image size must not be negative, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// createScene loads the JSON scene when a path is given, otherwise the named
// built-in, otherwise a scene file found by name in the scenes directory
func createScene(sceneType, configPath, meshPath string, logger core.Logger) (*scene.Scene, error) {
	if configPath != "" {
		return scene.LoadConfig(configPath, logger)
	}
	if !scene.IsBuiltin(sceneType) {
		if path, ok := scene.ResolveConfigPath(sceneType, scene.DefaultScenesDir); ok {
			return scene.LoadConfig(path, logger)
		}
	}
	return scene.New(sceneType, scene.Options{MeshPath: meshPath, Logger: logger})
}

// resizeCamera applies -width/-height. With only one given the scene's
// aspect ratio is kept.
func resizeCamera(config geometry.CameraConfig, width, height int) geometry.CameraConfig {
	switch {
	case width > 0 && height > 0:
		config.Width = width
		config.AspectRatio = float64(width) / float64(height)
	case width > 0:
		config.Width = width
	case height > 0:
		config.Width = max(1, int(float64(height)*config.AspectRatio+0.5))
	}
	return config
}

func run(ctx context.Context, config Config, logger core.Logger) error {
	if err := config.validate(); err != nil {
		return err
	}

	sc, err := createScene(config.SceneType, config.ConfigPath, config.MeshPath, logger)
	if err != nil {
		return err
	}
	sc.CameraConfig = resizeCamera(sc.CameraConfig, config.Width, config.Height)
	logger.Printf("Scene %s: %d primitives, %d materials\n", sc.Name, sc.GetPrimitiveCount(), sc.Materials.Len())

	// Create output directory for this scene
	outputDir := filepath.Join(config.OutputDir, sc.Name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var frames []image.Image
	startTime := time.Now()

	animator := renderer.NewAnimator(sc, config.Sampling, config.Animation, logger)
	err = animator.RenderAll(ctx, func(result renderer.FrameResult) error {
		filename, err := renderer.SaveFrame(result.Image, outputDir, result.Index, config.Format)
		if err != nil {
			return err
		}
		logger.Printf("Frame saved as %s\n", filename)
		if config.GIF {
			frames = append(frames, result.Image)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if config.GIF {
		gifPath := filepath.Join(outputDir, "animation.gif")
		if err := renderer.SaveAnimatedGIF(gifPath, frames, config.GIFDelay); err != nil {
			return err
		}
		logger.Printf("Animation saved as %s\n", gifPath)
	}

	logger.Printf("Rendered %d frames in %v\n", config.Animation.Frames, time.Since(startTime))
	return nil
}
