package render

import (
	"image"
	"math"

	"github.com/yergin/test-pattern-descriptor/pkg/raster"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// paintBackground fills rect with the patch's background primitive.
// A nil background leaves the rectangle untouched, so the patch shows
// whatever its parent painted underneath.
func paintBackground(buf *raster.Buffer, rect image.Rectangle, bg tpat.Background, d raster.Depth) {
	switch b := bg.(type) {
	case tpat.Solid:
		buf.FillRect(rect, raster.QuantizeColor(b.Color, d))
	case tpat.Ramp:
		paintRamp(buf, rect, b, d)
	case tpat.Grating:
		paintGrating(buf, rect, b, d)
	}
}

// paintRamp draws a linear gradient from C1 to C2 along the ramp axis.
// Interpolation runs in the authored values and quantizes once per
// line, so long ramps accumulate no rounding error.
func paintRamp(buf *raster.Buffer, rect image.Rectangle, rp tpat.Ramp, d raster.Depth) {
	if rp.Axis == tpat.Horizontal {
		n := rect.Dx()
		for i := 0; i < n; i++ {
			c := raster.Lerp(rp.C1, rp.C2, rampPos(i, n), d)
			buf.FillRect(image.Rect(rect.Min.X+i, rect.Min.Y, rect.Min.X+i+1, rect.Max.Y), c)
		}
		return
	}
	n := rect.Dy()
	for i := 0; i < n; i++ {
		c := raster.Lerp(rp.C1, rp.C2, rampPos(i, n), d)
		buf.FillRect(image.Rect(rect.Min.X, rect.Min.Y+i, rect.Max.X, rect.Min.Y+i+1), c)
	}
}

// rampPos maps line index i of n to the blend parameter. A one-line
// extent pins the ramp to its first color.
func rampPos(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// paintGrating draws a frequency grating along the grating axis. The
// phase, measured in half-cycles, accumulates the instantaneous
// frequency of a linear sweep from half-period P0 to P1:
//
//	phase(x) = x/p0 + a*x^2/2   with   a = (1/p1 - 1/p0) / (n-1)
//
// so the instantaneous half-period at the first and last line is
// exactly P0 and P1. A constant grating at the Nyquist half-period of
// one pixel always renders as a square wave; sampled sinusoids cannot
// represent it.
func paintGrating(buf *raster.Buffer, rect image.Rectangle, g tpat.Grating, d raster.Depth) {
	n := rect.Dx()
	if g.Axis == tpat.Vertical {
		n = rect.Dy()
	}

	wave := g.Wave
	if !g.Sweep && g.P0 == 1 {
		wave = tpat.Square
	}

	f1 := 1 / g.P0
	f2 := 1 / g.P1
	accel := 0.0
	if n > 1 {
		accel = (f2 - f1) / float64(n-1)
	}

	for i := 0; i < n; i++ {
		x := float64(i)
		phase := f1*x + 0.5*accel*x*x
		c := waveColor(wave, g.C1, g.C2, phase, d)
		if g.Axis == tpat.Horizontal {
			buf.FillRect(image.Rect(rect.Min.X+i, rect.Min.Y, rect.Min.X+i+1, rect.Max.Y), c)
		} else {
			buf.FillRect(image.Rect(rect.Min.X, rect.Min.Y+i, rect.Max.X, rect.Min.Y+i+1), c)
		}
	}
}

// waveColor evaluates one waveform sample. The phase is in
// half-cycles: the waveform repeats every 2.0.
func waveColor(w tpat.Wave, c1, c2 raster.Color, phase float64, d raster.Depth) raster.Color {
	switch w {
	case tpat.Square:
		if math.Mod(phase, 2) < 1 {
			return raster.QuantizeColor(c1, d)
		}
		return raster.QuantizeColor(c2, d)
	case tpat.Cosine:
		return raster.Lerp(c1, c2, (1-math.Cos(phase*math.Pi))/2, d)
	default:
		return raster.Lerp(c1, c2, (1-math.Sin(phase*math.Pi))/2, d)
	}
}
