package renderer

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Rays start this far along their direction to skip self-intersection
const shadowAcne = 0.001

// rowBuffer is how many finished rows may wait for a slow sink
const rowBuffer = 4

var (
	white   = core.NewColor(1.0, 1.0, 1.0)
	skyBlue = core.NewColor(0.5, 0.7, 1.0)
)

// Raytracer handles the rendering process
type Raytracer struct {
	camera  *Camera
	world   geometry.Shape
	sampler core.Sampler
	logger  core.Logger
}

// NewRaytracer creates a new raytracer. All randomness is drawn from
// sampler, so a seeded sampler makes the render reproducible.
func NewRaytracer(camera *Camera, world geometry.Shape, sampler core.Sampler, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:  camera,
		world:   world,
		sampler: sampler,
		logger:  logger,
	}
}

// backgroundGradient blends white to sky blue on the ray's up component
func backgroundGradient(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return white.Multiply(1.0 - a).Add(skyBlue.Multiply(a))
}

// RayColor returns the linear radiance carried back along r
func (rt *Raytracer) RayColor(r core.Ray, depth int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.NewColor(0, 0, 0)
	}

	hit, isHit := rt.world.Hit(r, core.NewInterval(shadowAcne, math.Inf(1)))
	if !isHit {
		return backgroundGradient(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, rt.sampler)
	if !didScatter {
		return core.NewColor(0, 0, 0) // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1))
}

// PixelColor averages SamplesPerPixel jittered samples for pixel (i, j)
func (rt *Raytracer) PixelColor(i, j int) core.Color {
	var stats PixelStats
	for sample := 0; sample < rt.camera.SamplesPerPixel(); sample++ {
		ray := rt.camera.GetRay(i, j, rt.sampler)
		stats.AddSample(rt.RayColor(ray, rt.camera.MaxDepth()))
	}
	return stats.ColorAccum.Multiply(rt.camera.pixelSamplesScale)
}

// RenderRow renders row j from left to right and encodes it to bytes
func (rt *Raytracer) RenderRow(j int) []core.RGB {
	row := make([]core.RGB, rt.camera.ImageWidth())
	for i := range row {
		row[i] = core.ToRGB(rt.PixelColor(i, j))
	}
	return row
}

type renderedRow struct {
	index  int
	pixels []core.RGB
}

// Render traces every row from top to bottom and streams them to sink.
// Rows are traced one after another so the sampler is consumed in pixel
// order; encoding runs concurrently with tracing.
func (rt *Raytracer) Render(ctx context.Context, sink PixelSink) (RenderStats, error) {
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	start := time.Now()

	if err := sink.Begin(width, height); err != nil {
		return RenderStats{}, fmt.Errorf("begin image: %w", err)
	}

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel, depth %d\n",
		width, height, rt.camera.SamplesPerPixel(), rt.camera.MaxDepth())

	g, gctx := errgroup.WithContext(ctx)
	rows := make(chan renderedRow, rowBuffer)
	written := 0

	g.Go(func() error {
		defer close(rows)
		step := max(1, height/10)
		for j := 0; j < height; j++ {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case rows <- renderedRow{index: j, pixels: rt.RenderRow(j)}:
			case <-gctx.Done():
				return gctx.Err()
			}
			if (j+1)%step == 0 || j+1 == height {
				rt.logger.Printf("Scanlines done: %d/%d (%d%%)\n", j+1, height, 100*(j+1)/height)
			}
		}
		return nil
	})

	g.Go(func() error {
		for row := range rows {
			if err := sink.WriteRow(row.index, row.pixels); err != nil {
				return fmt.Errorf("write row %d: %w", row.index, err)
			}
			written++
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		sink.Close()
		return RenderStats{Rows: written}, err
	}
	if err := sink.Close(); err != nil {
		return RenderStats{Rows: written}, fmt.Errorf("close image: %w", err)
	}

	return RenderStats{
		TotalPixels:  width * height,
		TotalSamples: width * height * rt.camera.SamplesPerPixel(),
		Rows:         written,
		Elapsed:      time.Since(start),
	}, nil
}
