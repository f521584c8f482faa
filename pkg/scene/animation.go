package scene

import (
	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// PositionTrack moves a shape's centroid from Start on the first frame to End on the last
type PositionTrack struct {
	Shape      geometry.Shape
	Start, End core.Vec3
}

// EmissionTrack fades an emissive material's color across the animation
type EmissionTrack struct {
	Material   material.Handle
	Start, End core.Vec3
}

// BackgroundTrack fades the sky gradient across the animation
type BackgroundTrack struct {
	Start, End Background
}

// Animation holds the per-frame keyframe tracks of a scene
type Animation struct {
	Positions  []PositionTrack
	Emissions  []EmissionTrack
	Background *BackgroundTrack // nil keeps the scene's static background
}

// FrameFraction maps frame index of count onto [0,1]. A single frame sits at 0.
func FrameFraction(index, count int) float64 {
	return float64(index) / float64(max(count-1, 1))
}

// Interpolate returns start + (end-start)*fraction
func Interpolate(start, end core.Vec3, fraction float64) core.Vec3 {
	return start.Add(end.Subtract(start).Multiply(fraction))
}

// Apply moves tracked shapes and sets tracked emission colors
func (a *Animation) Apply(materials *material.Pool, fraction float64) {
	for _, track := range a.Positions {
		track.Shape.MoveTo(Interpolate(track.Start, track.End, fraction))
	}
	for _, track := range a.Emissions {
		materials.SetEmission(track.Material, Interpolate(track.Start, track.End, fraction))
	}
}

// At returns the background at the given fraction
func (b *BackgroundTrack) At(fraction float64) Background {
	return Background{
		Top:    Interpolate(b.Start.Top, b.End.Top, fraction),
		Bottom: Interpolate(b.Start.Bottom, b.End.Bottom, fraction),
	}
}

// Move adds a position track
func (a *Animation) Move(shape geometry.Shape, start, end core.Vec3) {
	a.Positions = append(a.Positions, PositionTrack{Shape: shape, Start: start, End: end})
}

// Fade adds an emission track
func (a *Animation) Fade(h material.Handle, start, end core.Vec3) {
	a.Emissions = append(a.Emissions, EmissionTrack{Material: h, Start: start, End: end})
}
