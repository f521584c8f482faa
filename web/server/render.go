package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-motion-raytracer/pkg/renderer"
)

// FrameUpdate is one finished animation frame sent via SSE
type FrameUpdate struct {
	Index       int    `json:"index"`
	TotalFrames int    `json:"totalFrames"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsLast      bool   `json:"isLast"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// CompleteEvent closes a render stream
type CompleteEvent struct {
	Frames    int   `json:"frames"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// handleRender renders the requested animation and streams every frame as
// it completes. All writes happen on the request goroutine.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	setSSEHeaders(w)
	stream := &sseWriter{w: w, flusher: flusher}

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		stream.sendError(fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	logger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), consoleChan)

	sc, err := s.createScene(req, logger)
	if err != nil {
		stream.sendError(err.Error())
		return
	}

	sampling := renderer.SamplingConfig{SamplesPerPixel: req.Samples, MaxDepth: req.MaxDepth}
	animation := renderer.DefaultAnimationConfig()
	animation.Frames = req.Frames
	animation.Seed = req.Seed

	startTime := time.Now()
	animator := renderer.NewAnimator(sc, sampling, animation, logger)
	frameChan, errChan := animator.Render(r.Context())

	frames := 0
	failed := false
	for frameChan != nil || errChan != nil {
		select {
		case msg := <-consoleChan:
			stream.sendJSON("console", msg)

		case result, ok := <-frameChan:
			if !ok {
				frameChan = nil
				continue
			}
			imageData, err := imageToBase64PNG(result.Image)
			if err != nil {
				stream.sendError(fmt.Sprintf("failed to encode frame %d: %v", result.Index, err))
				continue
			}
			bounds := result.Image.Bounds()
			stream.sendJSON("frame", FrameUpdate{
				Index:       result.Index,
				TotalFrames: req.Frames,
				Width:       bounds.Dx(),
				Height:      bounds.Dy(),
				ImageData:   imageData,
				Stats: Stats{
					TotalPixels:    result.Stats.TotalPixels,
					TotalSamples:   result.Stats.TotalSamples,
					AverageSamples: result.Stats.AverageSamples(),
					Rays:           result.Stats.Rays,
					ObjectHits:     result.Stats.ObjectHits,
					BoxHits:        result.Stats.BoxHits,
					RenderMs:       result.Stats.RenderTime.Milliseconds(),
				},
				IsLast:    result.IsLast,
				ElapsedMs: time.Since(startTime).Milliseconds(),
			})
			frames++

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			failed = true
			stream.sendError(err.Error())
		}
	}

	// Forward log lines written after the last frame
	for drained := false; !drained; {
		select {
		case msg := <-consoleChan:
			stream.sendJSON("console", msg)
		default:
			drained = true
		}
	}

	if !failed {
		stream.sendJSON("complete", CompleteEvent{Frames: frames, ElapsedMs: time.Since(startTime).Milliseconds()})
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sseWriter writes Server-Sent Events. After the first failed write, for
// instance when the client went away, further events are dropped.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	broken  bool
}

func (s *sseWriter) sendJSON(event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event, err)
		return
	}
	s.send(event, string(data))
}

func (s *sseWriter) sendError(message string) {
	s.sendJSON("error", map[string]string{"error": message})
}

func (s *sseWriter) send(event, data string) {
	if s.broken {
		return
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		s.broken = true
		return
	}
	s.flusher.Flush()
}
