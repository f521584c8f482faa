package renderer

import (
	"image"
	"strings"
	"testing"

	"github.com/df07/go-motion-raytracer/pkg/scene"
)

func TestWorkerPool_RendersEveryTask(t *testing.T) {
	sc := glowScene(t, 8)
	renderer := NewTileRenderer(sc.PrepareFrame(0, 1), sc.Materials, SamplingConfig{SamplesPerPixel: 1, MaxDepth: 2})
	tiles := NewTileGrid(8, 8, 2)
	pixelStats := newPixelStats(8, 8)

	pool := NewWorkerPool(3, len(tiles))
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
	pool.Start()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Renderer: renderer, PixelStats: pixelStats})
	}

	seen := make(map[int]bool)
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		if result.Error != nil {
			t.Fatalf("Task %d failed: %v", result.TaskID, result.Error)
		}
		if result.Stats.TotalPixels != 4 {
			t.Errorf("Task %d: expected 4 pixels, got %d", result.TaskID, result.Stats.TotalPixels)
		}
		seen[result.TaskID] = true
	}
	pool.Stop()

	if len(seen) != len(tiles) {
		t.Errorf("Expected %d distinct results, got %d", len(tiles), len(seen))
	}
	if _, ok := pool.GetResult(); ok {
		t.Error("Expected the result queue to be closed after Stop")
	}
}

func TestWorkerPool_DefaultsToCPUCount(t *testing.T) {
	pool := NewWorkerPool(0, 1)
	if pool.GetNumWorkers() < 1 {
		t.Errorf("Expected at least one worker, got %d", pool.GetNumWorkers())
	}
}

func TestWorkerPool_PanicBecomesError(t *testing.T) {
	sc := scene.NewScene("empty", glowScene(t, 4).CameraConfig, scene.Background{})
	renderer := NewTileRenderer(sc.PrepareFrame(0, 1), sc.Materials, SamplingConfig{SamplesPerPixel: 1, MaxDepth: 2})

	pool := NewWorkerPool(1, 1)
	pool.Start()
	defer pool.Stop()

	// Pixel stats too small for the tile bounds
	tile := &Tile{ID: 5, Bounds: image.Rect(0, 0, 4, 4)}
	pool.SubmitTask(TileTask{Tile: tile, Frame: 2, TaskID: 9, Renderer: renderer, PixelStats: newPixelStats(1, 1)})

	result, _ := pool.GetResult()
	if result.TaskID != 9 {
		t.Errorf("Expected task 9, got %d", result.TaskID)
	}
	if result.Error == nil || !strings.Contains(result.Error.Error(), "tile 5 of frame 2") {
		t.Errorf("Expected a tile error, got %v", result.Error)
	}
}
