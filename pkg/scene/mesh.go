package scene

import (
	"math"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/loaders"
)

// NewCubeMesh returns a cube of the given edge length centered on the origin
func NewCubeMesh(size float64) *loaders.Mesh {
	h := size / 2
	vertices := []core.Vec3{
		core.NewVec3(-h, -h, -h), core.NewVec3(h, -h, -h), core.NewVec3(h, h, -h), core.NewVec3(-h, h, -h),
		core.NewVec3(-h, -h, h), core.NewVec3(h, -h, h), core.NewVec3(h, h, h), core.NewVec3(-h, h, h),
	}
	// Counter-clockwise seen from outside
	faces := []int{
		4, 5, 6, 4, 6, 7, // front +z
		1, 0, 3, 1, 3, 2, // back -z
		5, 1, 2, 5, 2, 6, // right +x
		0, 4, 7, 0, 7, 3, // left -x
		7, 6, 2, 7, 2, 3, // top +y
		0, 1, 5, 0, 5, 4, // bottom -y
	}
	return &loaders.Mesh{Vertices: vertices, Faces: faces}
}

// FitMesh returns the mesh vertices scaled so the largest extent equals
// size and translated so the bounding box is centered on the origin
func FitMesh(mesh *loaders.Mesh, size float64) []core.Vec3 {
	if len(mesh.Vertices) == 0 {
		return nil
	}

	box := core.NewAABBFromPoints(mesh.Vertices...)
	extent := box.Size()
	largest := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	scale := 1.0
	if largest > 0 {
		scale = size / largest
	}

	center := box.Center()
	vertices := make([]core.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		vertices[i] = v.Subtract(center).Multiply(scale)
	}
	return vertices
}
