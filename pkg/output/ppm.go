package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrRowOutOfOrder is returned when rows do not arrive top to bottom
var ErrRowOutOfOrder = errors.New("row out of order")

// PPMWriter streams an ASCII PPM (P3) image, one "R G B" line per pixel
type PPMWriter struct {
	w       *bufio.Writer
	width   int
	height  int
	nextRow int
}

// NewPPMWriter creates a PPM writer on top of w. Closing it does not close w.
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// Begin writes the header
func (p *PPMWriter) Begin(width, height int) error {
	p.width, p.height = width, height
	_, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height)
	return err
}

// WriteRow writes row j, which must follow the previous one
func (p *PPMWriter) WriteRow(j int, row []core.RGB) error {
	if j != p.nextRow {
		return fmt.Errorf("%w: got %d, want %d", ErrRowOutOfOrder, j, p.nextRow)
	}
	if len(row) != p.width {
		return fmt.Errorf("row %d has %d pixels, want %d", j, len(row), p.width)
	}
	for _, px := range row {
		if _, err := fmt.Fprintf(p.w, "%d %d %d\n", px.R, px.G, px.B); err != nil {
			return err
		}
	}
	p.nextRow++
	return nil
}

// Close flushes buffered output
func (p *PPMWriter) Close() error {
	return p.w.Flush()
}
