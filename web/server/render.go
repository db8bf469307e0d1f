package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client. Zero values
// keep the scene defaults.
type RenderRequest struct {
	Scene    string `json:"scene"`
	Width    int    `json:"width"`
	Samples  int    `json:"samples"`
	MaxDepth int    `json:"maxDepth"`
	Seed     int64  `json:"seed"`
	NoJitter bool   `json:"noJitter"`
}

// RenderResult is sent as the "image" event once rendering finishes
type RenderResult struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int     `json:"totalSamples"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	Workers         int     `json:"workers"`
	SamplesPerSec   float64 `json:"samplesPerSec"`
}

type renderOutcome struct {
	img   *image.RGBA
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and streams console output and the final
// image with SSE. Closing the connection cancels the render.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := buildScene(req)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	renderID := fmt.Sprintf("%s-%d", sceneObj.Name, time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 100)
	raytracer := sceneObj.NewRaytracer(NewWebLogger(renderID, consoleChan, s.logger))

	ctx := r.Context()
	startTime := time.Now()
	done := make(chan renderOutcome, 1)
	go func() {
		img, stats, err := raytracer.Render(ctx)
		done <- renderOutcome{img: img, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, "console", msg)
		case outcome := <-done:
			s.drainConsole(w, consoleChan)
			if outcome.err != nil {
				s.sendSSEError(w, fmt.Sprintf("Render error: %v", outcome.err))
				return
			}
			s.sendResult(w, outcome, time.Since(startTime))
			return
		}
	}
}

func (s *Server) sendResult(w http.ResponseWriter, outcome renderOutcome, elapsed time.Duration) {
	data, err := output.EncodeBytes("render.png", outcome.img)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	bounds := outcome.img.Bounds()
	result := RenderResult{
		ImageData: base64.StdEncoding.EncodeToString(data),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Stats: Stats{
			TotalPixels:     outcome.stats.TotalPixels,
			TotalSamples:    outcome.stats.TotalSamples,
			SamplesPerPixel: outcome.stats.SamplesPerPixel,
			Workers:         outcome.stats.Workers,
			SamplesPerSec:   outcome.stats.SamplesPerSec,
		},
		ElapsedMs: elapsed.Milliseconds(),
	}
	s.sendSSEJSON(w, "image", result)
	s.sendSSEEvent(w, "complete", "Rendering completed")
}

// drainConsole forwards messages logged before the render returned
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, "console", msg)
		default:
			return
		}
	}
}

func buildScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Lookup(req.Scene, req.Seed)
	if err != nil {
		return nil, err
	}
	if req.Width > 0 {
		sceneObj.Width = req.Width
	}
	if req.Samples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	}
	if req.MaxDepth > 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}
	sceneObj.SamplingConfig.Seed = req.Seed
	sceneObj.SamplingConfig.Jitter = !req.NoJitter

	if err := sceneObj.Validate(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, minSamples, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 0, minDepth, maxDepth); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	} else {
		req.Seed = renderer.DefaultSamplingConfig().Seed
	}
	req.NoJitter = values.Get("noJitter") == "true"

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

func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEJSON sends v as the JSON payload of an SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, event, string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
