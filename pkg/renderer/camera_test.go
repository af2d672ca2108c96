package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// centerSampler returns 0.5 for everything, which puts camera rays through pixel centers
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

func TestNewCamera_ImageHeight(t *testing.T) {
	tests := []struct {
		name           string
		aspectRatio    float64
		width          int
		expectedHeight int
	}{
		{"widescreen", 16.0 / 9.0, 400, 225},
		{"square", 1.0, 100, 100},
		{"four by three", 4.0 / 3.0, 640, 480},
		{"tall", 0.5, 100, 200},
		{"clamped to one row", 10.0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			config.AspectRatio = tt.aspectRatio
			config.ImageWidth = tt.width

			camera, err := NewCamera(config)
			if err != nil {
				t.Fatalf("NewCamera failed: %v", err)
			}
			if camera.ImageHeight() != tt.expectedHeight {
				t.Errorf("Expected height %d, got %d", tt.expectedHeight, camera.ImageHeight())
			}
			if camera.ImageWidth() != tt.width {
				t.Errorf("Expected width %d, got %d", tt.width, camera.ImageWidth())
			}
		})
	}
}

func TestNewCamera_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"zero width", func(c *CameraConfig) { c.ImageWidth = 0 }},
		{"zero aspect", func(c *CameraConfig) { c.AspectRatio = 0 }},
		{"negative aspect", func(c *CameraConfig) { c.AspectRatio = -1 }},
		{"NaN aspect", func(c *CameraConfig) { c.AspectRatio = math.NaN() }},
		{"infinite aspect", func(c *CameraConfig) { c.AspectRatio = math.Inf(1) }},
		{"zero samples", func(c *CameraConfig) { c.SamplesPerPixel = 0 }},
		{"negative depth", func(c *CameraConfig) { c.MaxDepth = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			tt.modify(&config)
			if _, err := NewCamera(config); !errors.Is(err, ErrInvalidCameraConfig) {
				t.Errorf("Expected ErrInvalidCameraConfig, got %v", err)
			}
		})
	}
}

func TestCamera_GetRay_PixelCenters(t *testing.T) {
	camera, err := NewCamera(CameraConfig{AspectRatio: 1, ImageWidth: 3, SamplesPerPixel: 1, MaxDepth: 1})
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	tests := []struct {
		name      string
		i, j      int
		direction core.Vec3
	}{
		{"center pixel", 1, 1, core.NewVec3(0, 0, -1)},
		{"top left", 0, 0, core.NewVec3(-2.0/3.0, 2.0/3.0, -1)},
		{"bottom right", 2, 2, core.NewVec3(2.0/3.0, -2.0/3.0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.i, tt.j, centerSampler{})
			if diff := cmp.Diff(core.NewVec3(0, 0, 0), ray.Origin, approx); diff != "" {
				t.Errorf("Origin mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.direction, ray.Direction, approx); diff != "" {
				t.Errorf("Direction mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCamera_GetRay_JitterStaysInsidePixel(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig())
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	sampler := core.NewSeededSampler(42)

	// Viewport width follows the rounded image size
	du := 2.0 * float64(camera.ImageWidth()) / float64(camera.ImageHeight()) / float64(camera.ImageWidth())
	dv := 2.0 / float64(camera.ImageHeight())

	i, j := 123, 45
	center := camera.GetRay(i, j, centerSampler{}).Direction

	for n := 0; n < 1000; n++ {
		dir := camera.GetRay(i, j, sampler).Direction
		if dir.Z != -1 {
			t.Fatalf("Ray should pass through the z=-1 viewport, got %v", dir)
		}
		if math.Abs(dir.X-center.X) > du/2+1e-12 || math.Abs(dir.Y-center.Y) > dv/2+1e-12 {
			t.Fatalf("Jittered ray %v left pixel centered at %v", dir, center)
		}
	}
}

func TestDefaultCameraConfig(t *testing.T) {
	want := CameraConfig{AspectRatio: 16.0 / 9.0, ImageWidth: 400, SamplesPerPixel: 10, MaxDepth: 10}
	if diff := cmp.Diff(want, DefaultCameraConfig()); diff != "" {
		t.Errorf("Default config mismatch (-want +got):\n%s", diff)
	}
}
