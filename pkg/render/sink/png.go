package sink

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/raster"
)

// WritePNG encodes an 8-bit preview of the buffer and writes it to w.
// Integer depths scale by 255/max with truncation, so code values map
// exactly at both endpoints; the float depth scales by 255 and rounds
// half-up. 8-bit documents pass through unchanged.
func WritePNG(buf *raster.Buffer, d raster.Depth, w io.Writer) error {
	if err := png.Encode(w, to8Bit(buf, d)); err != nil {
		return errors.Wrap(errors.ErrCodeImageEncode, err, "encode PNG")
	}
	return nil
}

// ExportPNG writes an 8-bit preview of the buffer to a PNG file at path.
// This is a convenience wrapper around [WritePNG] for file-based output.
func ExportPNG(buf *raster.Buffer, d raster.Depth, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "create %s", path)
	}
	defer f.Close()
	return WritePNG(buf, d, f)
}

func to8Bit(buf *raster.Buffer, d raster.Depth) *image.NRGBA {
	b := buf.Bounds()
	m := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := buf.PixOffset(x, y)
			o := m.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				m.Pix[o+c] = sample8(float64(buf.Pix[i+c]), d)
			}
			m.Pix[o+3] = 0xff
		}
	}
	return m
}

// sample8 maps one stored sample to an 8-bit value.
func sample8(v float64, d raster.Depth) uint8 {
	switch {
	case d.Float():
		return uint8(clamp(v*255+0.5, 255))
	case d == raster.Depth8:
		return uint8(clamp(v, 255))
	default:
		return uint8(clamp(v, d.Max()) * 255 / d.Max())
	}
}
