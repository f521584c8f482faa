package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/integrator"
	"github.com/df07/go-motion-raytracer/pkg/material"
	"github.com/df07/go-motion-raytracer/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1), y grows downwards
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = max(width, height)
	}

	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// Sampler returns the tile's random stream for a frame. The stream depends
// only on (seed, frame, tile), so output does not depend on worker count
// or scheduling.
func (t *Tile) Sampler(seed int64, frame int) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(tileSeed(seed, frame, t.ID))))
}

// tileSeed mixes the inputs with splitmix64 so neighbouring tiles and
// frames get unrelated streams
func tileSeed(seed int64, frame, tile int) int64 {
	x := uint64(seed) ^ uint64(frame)<<32 ^ uint64(tile)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// TileRenderer renders pixels of one frame. It only reads the frame, so a
// single instance is shared by every worker.
type TileRenderer struct {
	frame      *scene.Frame
	integrator *integrator.PathTracer
	config     SamplingConfig
	width      int
	height     int
}

// NewTileRenderer creates a tile renderer for a prepared frame
func NewTileRenderer(frame *scene.Frame, materials *material.Pool, config SamplingConfig) *TileRenderer {
	cameraConfig := frame.Camera.Config()
	return &TileRenderer{
		frame:      frame,
		integrator: integrator.NewPathTracer(materials),
		config:     config,
		width:      cameraConfig.Width,
		height:     cameraConfig.Height(),
	}
}

// RenderTileBounds renders every pixel in bounds into pixelStats, drawing
// all randomness from sampler
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler) RenderStats {
	var counters integrator.Counters

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			tr.samplePixel(x, y, &pixelStats[y][x], sampler, &counters)
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:  pixels,
		TotalSamples: pixels * tr.config.SamplesPerPixel,
		Rays:         counters.Rays,
		ObjectHits:   counters.ObjectHits,
		BoxHits:      counters.BoxHits,
	}
}

// samplePixel jitters SamplesPerPixel rays through image pixel (x, y).
// Screen coordinates run bottom-up, so image row y maps to j = height-1-y.
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, sampler core.Sampler, counters *integrator.Counters) {
	j := tr.height - 1 - y
	uScale := float64(max(tr.width-1, 1))
	vScale := float64(max(tr.height-1, 1))

	for sample := 0; sample < tr.config.SamplesPerPixel; sample++ {
		s := (float64(x) + sampler.Get1D()) / uScale
		t := (float64(j) + sampler.Get1D()) / vScale
		time := sampler.Get1D()
		lens := sampler.InUnitDisk()

		ray := tr.frame.Camera.GetRay(s, t, time, lens)
		counters.Rays++
		ps.AddSample(tr.integrator.RayColor(ray, tr.frame.World, tr.frame.Background, tr.config.MaxDepth, sampler, counters))
	}
}
