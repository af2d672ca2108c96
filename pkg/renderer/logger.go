package renderer

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// GlogLogger implements core.Logger by writing info lines through glog
type GlogLogger struct {
	verbosity glog.Level
}

// NewGlogLogger creates a logger that only emits when glog's -v is at least verbosity
func NewGlogLogger(verbosity glog.Level) core.Logger {
	return &GlogLogger{verbosity: verbosity}
}

// Printf logs a formatted line at the logger's verbosity
func (gl *GlogLogger) Printf(format string, args ...interface{}) {
	if glog.V(gl.verbosity) {
		glog.InfoDepth(1, fmt.Sprintf(format, args...))
	}
}
