package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/material"
)

func TestCompoundShape_ClosestHit(t *testing.T) {
	far := NewTriangle(core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, -1), core.NewVec3(0, 1, -1), 1)
	near := NewTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0), 2)

	// Order should not matter
	for _, triangles := range [][]*Triangle{{far, near}, {near, far}} {
		compound := NewCompoundShape(triangles)
		ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

		var rec material.HitRecord
		if !compound.Hit(ray, 0.001, math.Inf(1), &rec, nil) {
			t.Fatal("Expected hit")
		}
		if math.Abs(rec.T-1) > 1e-12 {
			t.Errorf("Expected closest t=1, got %f", rec.T)
		}
		if rec.Material != 2 {
			t.Errorf("Expected material of the near triangle, got %d", rec.Material)
		}
	}
}

func TestCompoundShape_DeepCopy(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0), testMaterial)
	compound := NewCompoundShape([]*Triangle{triangle})

	triangle.Translate(core.NewVec3(100, 0, 0))

	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	var rec material.HitRecord
	if !compound.Hit(ray, 0.001, math.Inf(1), &rec, nil) {
		t.Error("Compound should own its own copy of the triangles")
	}
}

func TestCompoundShape_TranslateAndMoveTo(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(2, 2, 0),
		core.NewVec3(0, 2, 0),
	}
	faces := []int{0, 1, 2, 0, 2, 3}
	compound := NewTriangleMesh(vertices, faces, testMaterial, nil)

	if compound.TriangleCount() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", compound.TriangleCount())
	}

	compound.MoveTo(core.NewVec3(10, 0, -5))
	box := compound.BoundingBox()
	if !vecNear(box.Min, core.NewVec3(9, -1, -5), 1e-12) || !vecNear(box.Max, core.NewVec3(11, 1, -5), 1e-12) {
		t.Errorf("Unexpected box after move: %v", box)
	}

	// Old location misses, new location hits
	var rec material.HitRecord
	if compound.Hit(core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), &rec, nil) {
		t.Error("Expected miss at old location")
	}
	if !compound.Hit(core.NewRay(core.NewVec3(10.5, -0.5, 1), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), &rec, nil) {
		t.Fatal("Expected hit at new location")
	}
	if math.Abs(rec.T-6) > 1e-12 {
		t.Errorf("Expected t=6, got %f", rec.T)
	}

	if !compound.Normal(core.NewVec3(10, 0, -5)).IsZero() {
		t.Error("Compound normal should be the zero vector")
	}
}

func TestCompoundShape_Empty(t *testing.T) {
	compound := NewCompoundShape(nil)
	var rec material.HitRecord
	if compound.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), &rec, nil) {
		t.Error("Empty compound should never be hit")
	}
}

func TestNewTriangleMesh_Rotation(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(2, 0, 0),
	}
	rotation := core.NewVec3(0, math.Pi/2, 0)
	compound := NewTriangleMesh(vertices, []int{0, 1, 2}, testMaterial, &TriangleMeshOptions{Rotation: &rotation})

	// Rotating 90 degrees around Y maps +X to -Z
	box := compound.BoundingBox()
	if !vecNear(box.Min, core.NewVec3(0, 0, -2), 1e-9) || !vecNear(box.Max, core.NewVec3(0, 1, -1), 1e-9) {
		t.Errorf("Unexpected rotated box %v", box)
	}
}

func TestNewTriangleMesh_PerTriangleMaterials(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, -1), core.NewVec3(0, 1, -1),
	}
	options := &TriangleMeshOptions{Materials: []material.Handle{7, 8}}
	compound := NewTriangleMesh(vertices, []int{0, 1, 2, 3, 4, 5}, testMaterial, options)

	var rec material.HitRecord
	if !compound.Hit(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), &rec, nil) {
		t.Fatal("Expected hit")
	}
	if rec.Material != 7 {
		t.Errorf("Expected material 7, got %d", rec.Material)
	}
}

func TestNewTriangleMesh_Panics(t *testing.T) {
	vertices := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}

	tests := []struct {
		name    string
		faces   []int
		options *TriangleMeshOptions
	}{
		{"Faces not multiple of 3", []int{0, 1}, nil},
		{"Index out of range", []int{0, 1, 3}, nil},
		{"Negative index", []int{0, -1, 2}, nil},
		{"Material count mismatch", []int{0, 1, 2}, &TriangleMeshOptions{Materials: []material.Handle{1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected panic")
				}
			}()
			NewTriangleMesh(vertices, tt.faces, testMaterial, tt.options)
		})
	}
}

func TestHit_CountsBoundingBoxes(t *testing.T) {
	onPath := NewTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0), testMaterial)
	offPath := NewTriangle(core.NewVec3(9, -1, 0), core.NewVec3(11, -1, 0), core.NewVec3(10, 1, 0), testMaterial)
	sphere := NewSphere(core.Vec3{}, 1, testMaterial)
	down := core.NewVec3(0, 0, -1)

	tests := []struct {
		name     string
		shape    Shape
		ray      core.Ray
		hit      bool
		expected int64
	}{
		{"Sphere hit", sphere, core.NewRay(core.NewVec3(0, 0, 5), down), true, 1},
		{"Sphere box corner", sphere, core.NewRay(core.NewVec3(0.9, 0.9, 5), down), false, 1},
		{"Sphere box miss", sphere, core.NewRay(core.NewVec3(3, 0, 5), down), false, 0},
		{"Triangle hit", onPath, core.NewRay(core.NewVec3(0, -0.5, 5), down), true, 1},
		{"Compound skips child boxes off the ray", NewCompoundShape([]*Triangle{onPath, offPath}), core.NewRay(core.NewVec3(0, -0.5, 5), down), true, 2},
		{"Compound box miss", NewCompoundShape([]*Triangle{onPath, offPath}), core.NewRay(core.NewVec3(5, 5, 5), down), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec material.HitRecord
			var boxHits int64
			if hit := tt.shape.Hit(tt.ray, 0.001, math.Inf(1), &rec, &boxHits); hit != tt.hit {
				t.Errorf("Expected hit=%v, got %v", tt.hit, hit)
			}
			if boxHits != tt.expected {
				t.Errorf("Expected %d bounding box hits, got %d", tt.expected, boxHits)
			}
		})
	}
}
