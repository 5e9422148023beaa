package sink

import (
	"image"
	"io"
	"math"
	"os"

	"golang.org/x/image/tiff"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/raster"
)

// TIFFOption configures TIFF encoding.
type TIFFOption func(*tiffEncoder)

type tiffEncoder struct {
	fullScale bool
}

// WithFullScale toggles low-bit replication for the 10 and 12-bit
// depths, described in the package documentation. On by default.
func WithFullScale(on bool) TIFFOption {
	return func(e *tiffEncoder) { e.fullScale = on }
}

// WriteTIFF encodes the buffer at depth d and writes it to w.
func WriteTIFF(buf *raster.Buffer, d raster.Depth, w io.Writer, opts ...TIFFOption) error {
	e := tiffEncoder{fullScale: true}
	for _, opt := range opts {
		opt(&e)
	}

	var m image.Image
	if d == raster.Depth8 {
		m = to8Bit(buf, d)
	} else {
		m = e.to16Bit(buf, d)
	}
	if err := tiff.Encode(w, m, nil); err != nil {
		return errors.Wrap(errors.ErrCodeImageEncode, err, "encode TIFF")
	}
	return nil
}

// ExportTIFF writes the buffer to a TIFF file at path.
// This is a convenience wrapper around [WriteTIFF] for file-based output.
func ExportTIFF(buf *raster.Buffer, d raster.Depth, path string, opts ...TIFFOption) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "create %s", path)
	}
	defer f.Close()
	return WriteTIFF(buf, d, f, opts...)
}

func (e tiffEncoder) to16Bit(buf *raster.Buffer, d raster.Depth) *image.NRGBA64 {
	b := buf.Bounds()
	m := image.NewNRGBA64(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := buf.PixOffset(x, y)
			o := m.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				v := sample16(float64(buf.Pix[i+c]), d, e.fullScale)
				m.Pix[o+2*c] = uint8(v >> 8)
				m.Pix[o+2*c+1] = uint8(v)
			}
			m.Pix[o+6] = 0xff
			m.Pix[o+7] = 0xff
		}
	}
	return m
}

// sample16 maps one stored sample to a 16-bit code value.
func sample16(v float64, d raster.Depth, fullScale bool) uint16 {
	if d.Float() {
		return uint16(clamp(v, 1)*65535 + 0.5)
	}
	code := uint16(clamp(v, d.Max()))
	shift := 16 - uint(d)
	out := code << shift
	if fullScale && shift > 0 {
		out |= code >> (16 - 2*shift)
	}
	return out
}

func clamp(v, max float64) float64 {
	return math.Min(math.Max(v, 0), max)
}
