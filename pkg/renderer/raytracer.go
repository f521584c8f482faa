package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/material"
	"github.com/df07/go-motion-raytracer/pkg/scene"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Raytracer renders whole frames by splitting them into tiles and handing
// the tiles to a worker pool
type Raytracer struct {
	config     SamplingConfig
	tileSize   int
	seed       int64
	workerPool *WorkerPool
}

// NewRaytracer creates a raytracer feeding the given, already started, pool
func NewRaytracer(config SamplingConfig, tileSize int, seed int64, workerPool *WorkerPool) *Raytracer {
	return &Raytracer{
		config:     config,
		tileSize:   tileSize,
		seed:       seed,
		workerPool: workerPool,
	}
}

// RenderFrame renders a prepared frame. The frame and the material pool
// must not change until it returns.
func (rt *Raytracer) RenderFrame(ctx context.Context, frame *scene.Frame, materials *material.Pool) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()

	cameraConfig := frame.Camera.Config()
	width, height := cameraConfig.Width, cameraConfig.Height()

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tileRenderer := NewTileRenderer(frame, materials, rt.config)
	tiles := NewTileGrid(width, height, rt.tileSize)
	for taskID, tile := range tiles {
		rt.workerPool.SubmitTask(TileTask{
			Tile:       tile,
			Frame:      frame.Index,
			Seed:       rt.seed,
			TaskID:     taskID,
			Renderer:   tileRenderer,
			PixelStats: pixelStats,
		})
	}

	var stats RenderStats
	for i := 0; i < len(tiles); i++ {
		select {
		case <-ctx.Done():
			return nil, RenderStats{}, ctx.Err()
		default:
		}

		result, ok := rt.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return nil, RenderStats{}, result.Error
		}
		stats.Add(result.Stats)
	}

	img := assembleImage(pixelStats, width, height)
	stats.RenderTime = time.Since(startTime)
	return img, stats, nil
}

// assembleImage converts the averaged pixel colors into an 8-bit image
func assembleImage(pixelStats [][]PixelStats, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, Vec3ToColor(pixelStats[y][x].GetColor()))
		}
	}
	return img
}

// Vec3ToColor applies gamma 2 (square root), clamps to [0,1] and scales
// by 255.99 to 8 bits
func Vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Sqrt().Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255.99 * colorVec.X),
		G: uint8(255.99 * colorVec.Y),
		B: uint8(255.99 * colorVec.Z),
		A: 255,
	}
}
