package renderer

import "github.com/df07/go-weekend-raytracer/pkg/core"

// PixelSink receives rendered rows in order, top row first
type PixelSink interface {
	Begin(width, height int) error
	WriteRow(j int, row []core.RGB) error
	Close() error
}
