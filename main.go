package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// scenesDir holds YAML scenes that can be selected by bare name
const scenesDir = "scenes"

// options holds the command line settings for one render
type options struct {
	sceneName string
	outPath   string
	format    string
	width     int
	aspect    float64
	samples   int
	depth     int
	seed      int64
}

func main() {
	var opts options
	flag.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name, scene in ./scenes, or path to a .yaml scene")
	flag.StringVar(&opts.outPath, "out", "image.ppm", "Output file, or - for stdout")
	flag.StringVar(&opts.format, "format", "", "Output format: ppm, png or tiff (default: from -out extension)")
	flag.IntVar(&opts.width, "width", 0, "Override image width in pixels")
	flag.Float64Var(&opts.aspect, "aspect", 0, "Override aspect ratio (width/height)")
	flag.IntVar(&opts.samples, "samples", 0, "Override samples per pixel")
	flag.IntVar(&opts.depth, "depth", -1, "Override maximum bounce depth")
	flag.Int64Var(&opts.seed, "seed", 42, "Random seed; the same seed renders the same image")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()
	defer glog.Flush()

	if *help {
		fmt.Println("Weekend Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if *list {
		if err := listScenes(os.Stdout); err != nil {
			glog.Exitf("Error listing scenes: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, err := run(ctx, opts, os.Stdout)
	if err != nil {
		glog.Exitf("Render failed: %v", err)
	}
	glog.Infof("Render completed: %v", stats)
	if opts.outPath != "-" {
		glog.Infof("Render saved as %s", opts.outPath)
	}
}

// run renders the selected scene to the configured output
func run(ctx context.Context, opts options, stdout io.Writer) (renderer.RenderStats, error) {
	selectedScene, err := createScene(opts.sceneName)
	if err != nil {
		return renderer.RenderStats{}, err
	}
	glog.Infof("Using scene %q with %d objects", selectedScene.Name, selectedScene.GetPrimitiveCount())

	camera, err := renderer.NewCamera(applyOverrides(selectedScene.Camera, opts))
	if err != nil {
		return renderer.RenderStats{}, err
	}

	format, err := resolveFormat(opts)
	if err != nil {
		return renderer.RenderStats{}, err
	}

	w := stdout
	var file *os.File
	if opts.outPath != "-" {
		if dir := filepath.Dir(opts.outPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return renderer.RenderStats{}, fmt.Errorf("error creating output directory: %w", err)
			}
		}
		file, err = os.Create(opts.outPath)
		if err != nil {
			return renderer.RenderStats{}, fmt.Errorf("error creating file: %w", err)
		}
		defer file.Close()
		w = file
	}

	sink, err := output.NewSink(format, w)
	if err != nil {
		return renderer.RenderStats{}, err
	}

	logger := renderer.NewGlogLogger(1)
	raytracer := renderer.NewRaytracer(camera, selectedScene.World, core.NewSeededSampler(opts.seed), logger)
	stats, err := raytracer.Render(ctx, sink)
	if err != nil {
		return stats, err
	}

	if file != nil {
		if err := file.Close(); err != nil {
			return stats, fmt.Errorf("error saving %s: %w", opts.outPath, err)
		}
	}
	return stats, nil
}

// createScene resolves built-in names, bare names of files in ./scenes, and scene paths
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty scene name", scene.ErrUnknownScene)
	}
	if s := tryLoadSceneFile(name); s != nil {
		return s, nil
	}
	return scene.Lookup(name)
}

// tryLoadSceneFile loads scenes/<name>.yaml when it exists
func tryLoadSceneFile(name string) *scene.Scene {
	if _, builtin := scene.BuiltinScenes[name]; builtin || filepath.Ext(name) != "" {
		return nil
	}
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(scenesDir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		s, err := scene.Load(path)
		if err != nil {
			glog.Warningf("Failed to load %s: %v", path, err)
			return nil
		}
		return s
	}
	return nil
}

// applyOverrides replaces scene camera settings with those given on the command line
func applyOverrides(config renderer.CameraConfig, opts options) renderer.CameraConfig {
	if opts.width > 0 {
		config.ImageWidth = opts.width
	}
	if opts.aspect > 0 {
		config.AspectRatio = opts.aspect
	}
	if opts.samples > 0 {
		config.SamplesPerPixel = opts.samples
	}
	if opts.depth >= 0 {
		config.MaxDepth = opts.depth
	}
	return config
}

// resolveFormat uses -format when given, otherwise the output extension. Stdout defaults to PPM.
func resolveFormat(opts options) (output.Format, error) {
	if opts.format != "" {
		return output.ParseFormat(opts.format)
	}
	if opts.outPath == "-" {
		return output.FormatPPM, nil
	}
	return output.FormatFromPath(opts.outPath)
}

func listScenes(w io.Writer) error {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Available scenes:")
	for _, s := range scenes {
		if s.Description != "" {
			fmt.Fprintf(w, "  %-28s %s - %s\n", s.ID, s.Name, s.Description)
		} else {
			fmt.Fprintf(w, "  %-28s %s\n", s.ID, s.Name)
		}
	}
	return nil
}
