package raster

import "math"

// Color is an RGB triplet in authored sample space.
type Color [3]float64

// Grey returns the color with all three components set to v.
func Grey(v float64) Color {
	return Color{v, v, v}
}

// Lerp interpolates component-wise between c1 and c2 at parameter t.
// For integer depths each component of the result is rounded half-up,
// matching how ramps and sinusoidal gratings produce code values.
func Lerp(c1, c2 Color, t float64, d Depth) Color {
	var out Color
	for i := range out {
		v := c1[i] + t*(c2[i]-c1[i])
		if !d.Float() {
			v = math.Floor(v + 0.5)
		}
		out[i] = v
	}
	return out
}
