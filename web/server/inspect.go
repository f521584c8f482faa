package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/geometry"
	"github.com/df07/go-motion-raytracer/pkg/material"
	"github.com/df07/go-motion-raytracer/pkg/scene"
)

// InspectResponse describes what the center of a pixel sees
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point,omitempty"`
	Normal       [3]float64             `json:"normal,omitempty"`
	Distance     float64                `json:"distance,omitempty"`
	FrontFace    bool                   `json:"frontFace,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the traced ray, the closest hit and the shape that
// produced it
type InspectResult struct {
	Ray       core.Ray
	Hit       bool
	HitRecord material.HitRecord
	Shape     geometry.Shape
}

// Distance is the world-space length from the ray origin to the hit. Camera
// rays are not normalized, so T alone is not a distance.
func (r InspectResult) Distance() float64 {
	return r.HitRecord.T * r.Ray.Direction.Length()
}

// inspectPixel poses the scene for frame index of count and traces a ray
// through the center of pixel (x, y) from the center of the lens at the
// middle of the shutter interval
func inspectPixel(sc *scene.Scene, index, count, x, y int) InspectResult {
	frame := sc.PrepareFrame(index, count)
	config := frame.Camera.Config()
	width, height := config.Width, config.Height()

	j := height - 1 - y
	s := (float64(x) + 0.5) / float64(max(width-1, 1))
	t := (float64(j) + 0.5) / float64(max(height-1, 1))
	ray := frame.Camera.GetRay(s, t, 0.5, core.Vec3{})

	result := InspectResult{Ray: ray}
	closest := math.Inf(1)
	for _, shape := range sc.Shapes {
		var rec material.HitRecord
		if shape.Hit(ray, 0.001, closest, &rec, nil) {
			closest = rec.T
			result = InspectResult{Ray: ray, Hit: true, HitRecord: rec, Shape: shape}
		}
	}
	return result
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// materialInfo returns the kind and parameters of a pooled material. Mix
// materials list their components.
func materialInfo(pool *material.Pool, h material.Handle) (string, map[string]interface{}) {
	mat := pool.Get(h)
	properties := map[string]interface{}{}

	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(mat.Albedo)
	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
	case material.KindTranslucent:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["tint"] = vecArray(mat.Albedo)
	case material.KindEmissive:
		properties["emission"] = vecArray(mat.Emission)
	case material.KindMix:
		firstType, firstProps := materialInfo(pool, mat.First)
		secondType, secondProps := materialInfo(pool, mat.Second)
		properties["blend"] = mat.Blend
		properties["first"] = map[string]interface{}{"type": firstType, "properties": firstProps}
		properties["second"] = map[string]interface{}{"type": secondType, "properties": secondProps}
	}
	return mat.Kind.String(), properties
}

// geometryInfo extracts the type and shape parameters at the given time
func geometryInfo(shape geometry.Shape, time float64) (string, map[string]interface{}) {
	properties := map[string]interface{}{}
	bbox := shape.BoundingBox()
	properties["boundingBox"] = map[string]interface{}{
		"min": vecArray(bbox.Min),
		"max": vecArray(bbox.Max),
	}

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center(time))
		properties["radius"] = geom.Radius
		properties["moving"] = geom.CenterStart != geom.CenterEnd
		return "sphere", properties

	case *geometry.Triangle:
		v0, v1, v2 := geom.Vertices(time)
		properties["vertices"] = [3][3]float64{vecArray(v0), vecArray(v1), vecArray(v2)}
		properties["moving"] = geom.Start != geom.End
		return "triangle", properties

	case *geometry.CompoundShape:
		properties["triangleCount"] = geom.TriangleCount()
		return "compound", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := parseRenderRequest(query)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	frameIndex, err := parseIntParam(query, "frame", 0, 0, req.Frames-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sc, err := s.createScene(req, core.NopLogger{})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	width, height := sc.CameraConfig.Width, sc.CameraConfig.Height()
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(sc, frameIndex, req.Frames, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := materialInfo(sc.Materials, result.HitRecord.Material)
	geometryType, geometryProps := geometryInfo(result.Shape, 0.5)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.Distance(),
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
