package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Request limits keep a single render from tying up the server
const (
	maxWidth   = 1920
	maxSamples = 500
	maxDepth   = 100
)

var contentTypes = map[output.Format]string{
	output.FormatPNG:  "image/png",
	output.FormatPPM:  "image/x-portable-pixmap",
	output.FormatTIFF: "image/tiff",
}

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string        // Scene name or YAML path
	Width   int           // Image width, 0 keeps the scene's
	Samples int           // Samples per pixel, 0 keeps the scene's
	Depth   int           // Max depth, -1 keeps the scene's
	Seed    int64         // Sampler seed
	Format  output.Format // Response encoding
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the scenes a render request may name
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenes)
}

// handleRender renders one image and streams it as the response body
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if errors.Is(err, errUnknownScene) {
		http.Error(w, "Unknown scene", http.StatusNotFound)
		return
	}
	if err != nil {
		glog.Warningf("Failed to load scene %q: %v", req.Scene, err)
		http.Error(w, "failed to load scene", http.StatusInternalServerError)
		return
	}

	config := sceneObj.Camera
	if req.Width > 0 {
		config.ImageWidth = req.Width
	}
	if req.Samples > 0 {
		config.SamplesPerPixel = req.Samples
	}
	if req.Depth >= 0 {
		config.MaxDepth = req.Depth
	}
	camera, err := renderer.NewCamera(config)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sink, err := output.NewSink(req.Format, w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	raytracer := renderer.NewRaytracer(camera, sceneObj.World, core.NewSeededSampler(req.Seed), renderer.NewGlogLogger(2))

	// Use request context to detect client disconnection
	stats, err := raytracer.Render(r.Context(), sink)
	if err != nil {
		// Headers are usually gone by now, so the client sees a truncated body
		glog.Warningf("Render of %q failed: %v", req.Scene, err)
		return
	}
	glog.Infof("Rendered %q: %v", req.Scene, stats)
}

// errUnknownScene is the only scene error reported to clients
var errUnknownScene = errors.New("unknown scene")

// createScene resolves built-in names and bare names of files in the scenes directory.
// Request values are never used as paths.
func (s *Server) createScene(name string) (*scene.Scene, error) {
	if create, ok := scene.BuiltinScenes[name]; ok {
		return create(), nil
	}
	scenes, err := scene.ListYAMLScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range scenes {
		if trimExt(info.FilePath) == name {
			return scene.Load(info.FilePath)
		}
	}
	return nil, errUnknownScene
}

// parseRenderRequest reads render settings from query parameters
func parseRenderRequest(query url.Values) (RenderRequest, error) {
	req := RenderRequest{
		Scene:  query.Get("scene"),
		Depth:  -1,
		Seed:   42,
		Format: output.FormatPNG,
	}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = intParam(query, "width", 0, 1, maxWidth); err != nil {
		return req, err
	}
	if req.Samples, err = intParam(query, "samples", 0, 1, maxSamples); err != nil {
		return req, err
	}
	if req.Depth, err = intParam(query, "depth", -1, 0, maxDepth); err != nil {
		return req, err
	}
	if seed := query.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return req, fmt.Errorf("invalid seed: %w", err)
		}
	}
	if format := query.Get("format"); format != "" {
		if req.Format, err = output.ParseFormat(format); err != nil {
			return req, err
		}
	}
	return req, nil
}

// intParam parses an optional integer parameter within [min, max]
func intParam(query url.Values, name string, fallback, min, max int) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, v)
	}
	return v, nil
}

func trimExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
