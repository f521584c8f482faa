package loaders

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-motion-raytracer/pkg/core"
)

// ErrMeshFormat is returned (wrapped) when a mesh file is readable but its
// content cannot be parsed
var ErrMeshFormat = errors.New("malformed mesh file")

// Mesh is an indexed triangle soup
type Mesh struct {
	Vertices []core.Vec3 // Vertex positions
	Faces    []int       // Triangle indices (3 per triangle)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Faces) / 3
}

// LoadMesh loads an OBJ or PLY file, chosen by extension, and merges
// exactly duplicated vertices
func LoadMesh(filename string, logger core.Logger) (*Mesh, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	startTime := time.Now()

	var mesh *Mesh
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		mesh, err = LoadOBJ(filename)
	case ".ply":
		mesh, err = LoadPLY(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh extension %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	before := len(mesh.Vertices)
	mesh = MergeDuplicateVertices(mesh)

	logger.Printf("Loaded mesh %s: %d vertices (%d merged), %d triangles in %v\n",
		filepath.Base(filename), len(mesh.Vertices), before-len(mesh.Vertices), mesh.TriangleCount(), time.Since(startTime))

	return mesh, nil
}

// MergeDuplicateVertices returns a mesh where vertices with identical
// positions share one index. Vertex order follows first occurrence.
func MergeDuplicateVertices(mesh *Mesh) *Mesh {
	remap := make([]int, len(mesh.Vertices))
	seen := make(map[core.Vec3]int, len(mesh.Vertices))
	vertices := make([]core.Vec3, 0, len(mesh.Vertices))

	for i, v := range mesh.Vertices {
		if index, ok := seen[v]; ok {
			remap[i] = index
			continue
		}
		seen[v] = len(vertices)
		remap[i] = len(vertices)
		vertices = append(vertices, v)
	}

	faces := make([]int, len(mesh.Faces))
	for i, index := range mesh.Faces {
		faces[i] = remap[index]
	}

	return &Mesh{Vertices: vertices, Faces: faces}
}

// formatError wraps ErrMeshFormat with details
func formatError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMeshFormat, fmt.Sprintf(format, args...))
}

// appendFan triangulates a convex polygon as a fan around its first vertex
func appendFan(faces []int, polygon []int) []int {
	for i := 1; i+1 < len(polygon); i++ {
		faces = append(faces, polygon[0], polygon[i], polygon[i+1])
	}
	return faces
}
