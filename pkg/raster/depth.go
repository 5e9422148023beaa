package raster

import "math"

// Depth is the sample bit depth of a pattern document.
type Depth int

// Supported depths. Integer depths store code values; Depth32 stores
// IEEE float32 samples nominally in [0, 1].
const (
	Depth8  Depth = 8
	Depth10 Depth = 10
	Depth12 Depth = 12
	Depth16 Depth = 16
	Depth32 Depth = 32
)

// Valid reports whether d is one of the supported depths.
func (d Depth) Valid() bool {
	switch d {
	case Depth8, Depth10, Depth12, Depth16, Depth32:
		return true
	}
	return false
}

// Float reports whether samples at this depth are floating point.
func (d Depth) Float() bool {
	return d == Depth32
}

// Max returns the nominal full-scale sample value: 2^d-1 for integer
// depths, 1.0 for the float depth.
func (d Depth) Max() float64 {
	if d.Float() {
		return 1.0
	}
	return float64(uint(1)<<uint(d)) - 1
}

// Quantize rounds an authored component to its stored sample value.
// Integer depths round half-up; the float depth passes through.
func Quantize(v float64, d Depth) float64 {
	if d.Float() {
		return v
	}
	return math.Floor(v + 0.5)
}

// QuantizeColor quantizes each component of a color.
func QuantizeColor(c Color, d Depth) Color {
	if d.Float() {
		return c
	}
	for i := range c {
		c[i] = math.Floor(c[i] + 0.5)
	}
	return c
}
