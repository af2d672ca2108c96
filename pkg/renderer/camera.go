package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrInvalidCameraConfig is returned by NewCamera for unusable settings
var ErrInvalidCameraConfig = errors.New("invalid camera config")

// CameraConfig contains the settings a camera is built from
type CameraConfig struct {
	AspectRatio     float64 // Ratio of image width over height
	ImageWidth      int     // Rendered image width in pixels
	SamplesPerPixel int     // Number of random samples for each pixel
	MaxDepth        int     // Maximum number of ray bounces into scene
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 10,
		MaxDepth:        10,
	}
}

// Validate reports the first setting that cannot produce an image
func (c CameraConfig) Validate() error {
	switch {
	case c.ImageWidth < 1:
		return fmt.Errorf("%w: image width %d must be at least 1", ErrInvalidCameraConfig, c.ImageWidth)
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0):
		return fmt.Errorf("%w: aspect ratio %v must be positive and finite", ErrInvalidCameraConfig, c.AspectRatio)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel %d must be at least 1", ErrInvalidCameraConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidCameraConfig, c.MaxDepth)
	}
	return nil
}

// Camera generates rays for rendering. It sits at the origin looking
// down -Z with a focal length of 1 and a viewport 2 units tall.
type Camera struct {
	config            CameraConfig
	imageHeight       int
	center            core.Point3 // Camera center
	pixel00Loc        core.Point3 // Location of pixel 0, 0
	pixelDeltaU       core.Vec3   // Offset to pixel to the right
	pixelDeltaV       core.Vec3   // Offset to pixel below
	pixelSamplesScale float64     // Color scale factor for a sum of pixel samples
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	imageHeight := int(math.Round(float64(config.ImageWidth) / config.AspectRatio))
	if imageHeight < 1 {
		imageHeight = 1
	}

	center := core.NewVec3(0, 0, 0)

	// Viewport width follows the real image ratio, not the requested one
	focalLength := 1.0
	viewportHeight := 2.0
	viewportWidth := viewportHeight * float64(config.ImageWidth) / float64(imageHeight)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := core.NewVec3(viewportWidth, 0, 0)
	viewportV := core.NewVec3(0, -viewportHeight, 0)

	pixelDeltaU := viewportU.Divide(float64(config.ImageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := center.
		Subtract(core.NewVec3(0, 0, focalLength)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return &Camera{
		config:            config,
		imageHeight:       imageHeight,
		center:            center,
		pixel00Loc:        pixel00Loc,
		pixelDeltaU:       pixelDeltaU,
		pixelDeltaV:       pixelDeltaV,
		pixelSamplesScale: 1.0 / float64(config.SamplesPerPixel),
	}, nil
}

// GetRay returns a ray from the camera center through a random point
// inside pixel (i, j), where j counts rows from the top
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := core.SampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	return core.NewRay(c.center, pixelSample.Subtract(c.center))
}

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int { return c.config.ImageWidth }

// ImageHeight returns the derived image height in pixels
func (c *Camera) ImageHeight() int { return c.imageHeight }

// SamplesPerPixel returns the number of samples averaged for each pixel
func (c *Camera) SamplesPerPixel() int { return c.config.SamplesPerPixel }

// MaxDepth returns the bounce limit for each camera ray
func (c *Camera) MaxDepth() int { return c.config.MaxDepth }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }
