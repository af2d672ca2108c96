package core

import (
	"fmt"
	"math"
)

// intensity keeps scaled channels below 256
var intensity = NewInterval(0.000, 0.999)

// RGB is an 8-bit-per-channel output color
type RGB struct {
	R, G, B uint8
}

// String formats the color as "R G B"
func (c RGB) String() string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

// LinearToGamma applies gamma 2 to a linear component. Non-positive values map to 0.
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToRGB gamma corrects a linear color and quantizes it to [0,255]
func ToRGB(c Color) RGB {
	return RGB{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
	}
}

func toByte(linear float64) uint8 {
	return uint8(256 * intensity.Clamp(LinearToGamma(linear)))
}
