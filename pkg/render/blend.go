package render

import (
	"image"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/overlay"
	"github.com/yergin/test-pattern-descriptor/pkg/raster"
)

// compositeOverlay blends img onto the patch rectangle, centered. The
// destination samples are normalized to [0, 1], blended against the
// overlay's straight or premultiplied alpha, and requantized:
//
//	out = dest*(1-a) + rgb      premultiplied
//	out = dest*(1-a) + a*rgb    straight
//
// An overlay larger than the patch on either axis is an error; it is
// never cropped.
func compositeOverlay(buf *raster.Buffer, rect image.Rectangle, img *overlay.Image, premul bool, d raster.Depth, path string) error {
	if img.Width > rect.Dx() || img.Height > rect.Dy() {
		return errors.NewAt(errors.ErrCodeOverlayFit, path,
			"overlay is %dx%d but the patch is %dx%d",
			img.Width, img.Height, rect.Dx(), rect.Dy())
	}

	x0 := rect.Min.X + (rect.Dx()-img.Width)/2
	y0 := rect.Min.Y + (rect.Dy()-img.Height)/2
	max := d.Max()

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			sr, sg, sb, sa := img.At(x, y)
			blendPixel(buf, x0+x, y0+y, [3]float64{float64(sr), float64(sg), float64(sb)},
				float64(sa), premul, max, d)
		}
	}
	return nil
}

func blendPixel(buf *raster.Buffer, x, y int, rgb [3]float64, a float64, premul bool, max float64, d raster.Depth) {
	i := buf.PixOffset(x, y)
	for c := 0; c < 3; c++ {
		src := rgb[c]
		if !premul {
			src *= a
		}
		dest := float64(buf.Pix[i+c]) / max
		out := dest*(1-a) + src
		buf.Pix[i+c] = float32(raster.Quantize(out*max, d))
	}
}
