package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/tiff"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ImageSink collects rows into an RGBA image and encodes it on Close
type ImageSink struct {
	w      io.Writer
	format Format
	img    *image.RGBA
}

// NewImageSink creates a sink encoding PNG or TIFF to w
func NewImageSink(format Format, w io.Writer) (*ImageSink, error) {
	if format != FormatPNG && format != FormatTIFF {
		return nil, fmt.Errorf("%w: %q is not a raster format", ErrUnknownFormat, format)
	}
	return &ImageSink{w: w, format: format}, nil
}

// Begin allocates the image
func (s *ImageSink) Begin(width, height int) error {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// WriteRow copies row j into the image
func (s *ImageSink) WriteRow(j int, row []core.RGB) error {
	if s.img == nil {
		return fmt.Errorf("write row %d before Begin", j)
	}
	bounds := s.img.Bounds()
	if j < 0 || j >= bounds.Dy() || len(row) != bounds.Dx() {
		return fmt.Errorf("row %d with %d pixels does not fit %dx%d image", j, len(row), bounds.Dx(), bounds.Dy())
	}
	for i, px := range row {
		s.img.SetRGBA(i, j, color.RGBA{R: px.R, G: px.G, B: px.B, A: 255})
	}
	return nil
}

// Close encodes the finished image
func (s *ImageSink) Close() error {
	if s.img == nil {
		return nil
	}
	switch s.format {
	case FormatTIFF:
		return tiff.Encode(s.w, s.img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(s.w, s.img)
	}
}

// Image returns the assembled image, nil before Begin
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}
