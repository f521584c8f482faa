package renderer

import (
	"context"
	"fmt"
	"image"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// AnimationConfig contains configuration for rendering a frame sequence
type AnimationConfig struct {
	Frames     int   // Number of frames; keyframes sit on the first and last
	TileSize   int   // Size of each tile (32x32 recommended)
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed of every tile's random stream
}

// DefaultAnimationConfig returns sensible default values
func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		Frames:     2,
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// FrameResult contains one rendered frame
type FrameResult struct {
	Index  int
	Image  *image.RGBA
	Stats  RenderStats
	IsLast bool
}

// Animator renders every frame of an animated scene in order
type Animator struct {
	scene    *scene.Scene
	sampling SamplingConfig
	config   AnimationConfig
	logger   core.Logger
}

// NewAnimator creates an animator for the scene
func NewAnimator(sc *scene.Scene, sampling SamplingConfig, config AnimationConfig, logger core.Logger) *Animator {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if config.Frames <= 0 {
		config.Frames = 1
	}
	return &Animator{
		scene:    sc,
		sampling: sampling,
		config:   config,
		logger:   logger,
	}
}

// Render renders frames with channel-based communication. Frames arrive in
// order on the first channel; a failure or cancellation is sent on the error
// channel and stops the animation. Both channels are closed when rendering ends.
func (a *Animator) Render(ctx context.Context) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	cameraConfig := a.scene.CameraConfig
	maxTiles := len(NewTileGrid(cameraConfig.Width, cameraConfig.Height(), a.config.TileSize))
	workerPool := NewWorkerPool(a.config.NumWorkers, maxTiles)
	raytracer := NewRaytracer(a.sampling, a.config.TileSize, a.config.Seed, workerPool)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		workerPool.Start()
		defer workerPool.Stop()

		a.logger.Printf("Rendering %d frames of %s at %dx%d, %d samples/pixel (using %d workers)...\n",
			a.config.Frames, a.scene.Name, cameraConfig.Width, cameraConfig.Height(),
			a.sampling.SamplesPerPixel, workerPool.GetNumWorkers())

		for index := 0; index < a.config.Frames; index++ {
			// Check for cancellation before starting this frame
			select {
			case <-ctx.Done():
				a.logger.Printf("Rendering cancelled before frame %d\n", index)
				errChan <- ctx.Err()
				return
			default:
			}

			a.logger.Printf("Preparing frame %d...\n", index)
			frame := a.scene.PrepareFrame(index, a.config.Frames)

			img, stats, err := raytracer.RenderFrame(ctx, frame, a.scene.Materials)
			if err != nil {
				errChan <- fmt.Errorf("frame %d: %w", index, err)
				return
			}

			a.logger.Printf("Completed frame %d in %v: %d rays, %d object hits, %d bounding box hits, %d samples, luminance %.3f\n",
				index, stats.RenderTime, stats.Rays, stats.ObjectHits, stats.BoxHits, stats.TotalSamples,
				CalculateAverageLuminance(img))

			result := FrameResult{
				Index:  index,
				Image:  img,
				Stats:  stats,
				IsLast: index == a.config.Frames-1,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return frameChan, errChan
}

// RenderAll renders every frame and calls onFrame for each as it completes.
// It stops at the first error from rendering or from onFrame.
func (a *Animator) RenderAll(ctx context.Context, onFrame func(FrameResult) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frameChan, errChan := a.Render(ctx)
	for result := range frameChan {
		if err := onFrame(result); err != nil {
			cancel()
			// Drain so the render goroutine can exit
			for range frameChan {
			}
			return err
		}
	}
	return <-errChan
}
