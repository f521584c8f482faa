package loaders

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/udhos/gwob"

	"github.com/df07/go-motion-raytracer/pkg/core"
)

// objParserOptions keeps gwob quiet; progress is reported by LoadMesh
func objParserOptions() *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		LogStats:      false,
		Logger:        func(string) {},
		IgnoreNormals: true,
	}
}

// LoadOBJ loads the triangles of a Wavefront OBJ file. Polygons are fan
// triangulated by the parser; texture coordinates, normals and materials
// are dropped and vertices are shared by position.
func LoadOBJ(filename string) (*Mesh, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}

	mesh, err := parseOBJ(func() (*gwob.Obj, error) {
		return gwob.NewObjFromFile(filename, objParserOptions())
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ReadOBJ parses OBJ content from a reader
func ReadOBJ(r io.Reader) (*Mesh, error) {
	return parseOBJ(func() (*gwob.Obj, error) {
		return gwob.NewObjFromReader("obj", bufio.NewReader(r), objParserOptions())
	})
}

// parseOBJ runs the parser and converts its output. Parser failures,
// including panics on malformed input, become ErrMeshFormat.
func parseOBJ(parse func() (*gwob.Obj, error)) (mesh *Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			mesh, err = nil, formatError("%v", r)
		}
	}()

	obj, err := parse()
	if err != nil {
		return nil, formatError("%v", err)
	}
	return meshFromObj(obj)
}

// meshFromObj flattens gwob's interleaved vertex stream into positions and
// its triangle index stream into Faces
func meshFromObj(obj *gwob.Obj) (*Mesh, error) {
	if len(obj.Indices) == 0 || obj.StrideSize <= 0 {
		return nil, formatError("no faces found")
	}
	if len(obj.Indices)%3 != 0 {
		return nil, formatError("index count %d is not a multiple of 3", len(obj.Indices))
	}

	stride := obj.StrideSize / 4
	offset := obj.StrideOffsetPosition / 4
	vertexCount := len(obj.Coord) / stride

	// gwob splits vertices by texture and normal index too; merge them back
	// by position
	mesh := &Mesh{}
	remap := make([]int, vertexCount)
	seen := make(map[core.Vec3]int, vertexCount)
	for i := 0; i < vertexCount; i++ {
		base := i*stride + offset
		position := core.NewVec3(float64(obj.Coord[base]), float64(obj.Coord[base+1]), float64(obj.Coord[base+2]))
		if !isFinite(position) {
			return nil, formatError("vertex %d is not finite", i)
		}

		index, ok := seen[position]
		if !ok {
			index = len(mesh.Vertices)
			seen[position] = index
			mesh.Vertices = append(mesh.Vertices, position)
		}
		remap[i] = index
	}

	mesh.Faces = make([]int, len(obj.Indices))
	for i, index := range obj.Indices {
		if index < 0 || index >= vertexCount {
			return nil, formatError("face index %d out of range (%d vertices)", index, vertexCount)
		}
		mesh.Faces[i] = remap[index]
	}
	return mesh, nil
}

func isFinite(v core.Vec3) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
