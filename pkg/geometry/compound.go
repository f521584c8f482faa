package geometry

import (
	"math"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

// CompoundShape is a rigid group of triangles probed by a linear scan
type CompoundShape struct {
	triangles []Triangle
	bbox      core.AABB
}

// TriangleMeshOptions contains optional parameters for mesh creation
type TriangleMeshOptions struct {
	Materials []material.Handle // Optional per-triangle materials
	Rotation  *core.Vec3        // Optional rotation in radians around X, Y, Z
	Center    *core.Vec3        // Optional center point for rotation
}

// NewCompoundShape creates a compound from copies of the given triangles
func NewCompoundShape(triangles []*Triangle) *CompoundShape {
	c := &CompoundShape{triangles: make([]Triangle, len(triangles))}
	for i, t := range triangles {
		c.triangles[i] = *t
	}
	c.computeBoundingBox()
	return c
}

// NewTriangleMesh creates a compound from vertices and face indices.
// faces holds three vertex indices per triangle. It panics if faces is not
// a multiple of 3, an index is out of range, or options.Materials does not
// have one entry per triangle.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Handle, options *TriangleMeshOptions) *CompoundShape {
	if len(faces)%3 != 0 {
		panic("Face indices must be a multiple of 3")
	}

	numTriangles := len(faces) / 3

	if options != nil && options.Materials != nil && len(options.Materials) != numTriangles {
		panic("Number of materials must match number of triangles")
	}

	// Apply rotation if specified
	workingVertices := vertices
	if options != nil && options.Rotation != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			// Translate to center, rotate, then translate back
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = rotateVertex(vertex, *options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
			workingVertices[i] = vertex
		}
	}

	c := &CompoundShape{triangles: make([]Triangle, numTriangles)}
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]

		if i0 >= len(workingVertices) || i1 >= len(workingVertices) || i2 >= len(workingVertices) ||
			i0 < 0 || i1 < 0 || i2 < 0 {
			panic("Face index out of bounds")
		}

		triangleMaterial := mat
		if options != nil && options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}

		c.triangles[i] = *NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], triangleMaterial)
	}
	c.computeBoundingBox()
	return c
}

func (c *CompoundShape) computeBoundingBox() {
	if len(c.triangles) == 0 {
		c.bbox = core.AABB{}
		return
	}
	c.bbox = c.triangles[0].BoundingBox()
	for i := 1; i < len(c.triangles); i++ {
		c.bbox = core.SurroundingBox(c.bbox, c.triangles[i].BoundingBox())
	}
}

// Hit returns the closest hit among all triangles
func (c *CompoundShape) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord, boxHits *int64) bool {
	if len(c.triangles) == 0 || !c.bbox.Hit(ray, tMin, tMax) {
		return false
	}
	countBoxHit(boxHits)

	hitAnything := false
	closest := tMax
	for i := range c.triangles {
		if c.triangles[i].Hit(ray, tMin, closest, rec, boxHits) {
			hitAnything = true
			closest = rec.T
		}
	}
	return hitAnything
}

// BoundingBox returns the union of the triangle boxes
func (c *CompoundShape) BoundingBox() core.AABB {
	return c.bbox
}

// Translate shifts every triangle
func (c *CompoundShape) Translate(offset core.Vec3) {
	for i := range c.triangles {
		c.triangles[i].Translate(offset)
	}
	c.bbox.Translate(offset)
}

// MoveTo places the center of the bounding box at position
func (c *CompoundShape) MoveTo(position core.Vec3) {
	c.Translate(position.Subtract(c.bbox.Center()))
}

// Normal is undefined for a group of triangles and returns the zero vector
func (c *CompoundShape) Normal(point core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// TriangleCount returns the number of triangles in the compound
func (c *CompoundShape) TriangleCount() int {
	return len(c.triangles)
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVec3(vertex.X, y, z)
	}

	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVec3(x, vertex.Y, z)
	}

	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVec3(x, y, vertex.Z)
	}

	return vertex
}
