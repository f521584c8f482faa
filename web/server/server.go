package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-motion-raytracer/pkg/core"
	"github.com/df07/go-motion-raytracer/pkg/renderer"
	"github.com/df07/go-motion-raytracer/pkg/scene"
)

// maxImageSize bounds both dimensions of a rendered frame
const maxImageSize = 2048

// Server handles web requests for the animation renderer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server. scenesDir holds the JSON scene files
// offered next to the built-in scenes.
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`    // Built-in name or scene file ID
	Width    int    `json:"width"`    // Image width, 0 keeps the scene's width
	Frames   int    `json:"frames"`   // Number of animation frames
	Samples  int    `json:"samples"`  // Samples per pixel
	MaxDepth int    `json:"maxDepth"` // Maximum bounce depth
	Seed     int64  `json:"seed"`     // Base random seed
}

// Stats represents render statistics of one frame
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Rays           int64   `json:"rays"`
	ObjectHits     int64   `json:"objectHits"`
	BoxHits        int64   `json:"boxHits"`
	RenderMs       int64   `json:"renderMs"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	groups, err := scene.ListAllScenes(s.scenesDir, stdLogger{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// parseRenderRequest parses the query of a render or inspect request
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	sampling := renderer.DefaultSamplingConfig()
	animation := renderer.DefaultAnimationConfig()

	req := &RenderRequest{Scene: values.Get("scene"), Seed: animation.Seed}
	if req.Scene == "" {
		req.Scene = "sunset"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 0, maxImageSize); err != nil {
		return nil, err
	}
	if req.Frames, err = parseIntParam(values, "frames", animation.Frames, 1, 240); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", sampling.SamplesPerPixel, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", sampling.MaxDepth, 1, 200); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested built-in or listed scene file and applies
// the requested width, keeping the scene's aspect ratio. Only names offered
// by /api/scenes are accepted; paths are never opened directly.
func (s *Server) createScene(req *RenderRequest, logger core.Logger) (*scene.Scene, error) {
	var (
		sc  *scene.Scene
		err error
	)
	if scene.IsBuiltin(req.Scene) {
		sc, err = scene.New(req.Scene, scene.Options{Logger: logger})
	} else {
		path, ok, findErr := s.findConfigScene(req.Scene)
		if findErr != nil {
			return nil, findErr
		}
		if !ok {
			return nil, fmt.Errorf("unknown scene: %q", req.Scene)
		}
		sc, err = scene.LoadConfig(path, logger)
	}
	if err != nil {
		return nil, err
	}

	if req.Width > 0 {
		sc.CameraConfig.Width = req.Width
	}
	if width, height := sc.CameraConfig.Width, sc.CameraConfig.Height(); width > maxImageSize || height > maxImageSize {
		return nil, fmt.Errorf("image size %dx%d exceeds %dx%d", width, height, maxImageSize, maxImageSize)
	}
	return sc, nil
}

// findConfigScene returns the file of the scene listed under id in the
// scenes directory
func (s *Server) findConfigScene(id string) (string, bool, error) {
	scenes, err := scene.ListConfigScenes(s.scenesDir, stdLogger{})
	if err != nil {
		return "", false, err
	}
	for _, info := range scenes {
		if info.ID == id {
			return info.FilePath, true, nil
		}
	}
	return "", false, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// stdLogger routes scene discovery warnings to the server log
type stdLogger struct{}

func (stdLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}
