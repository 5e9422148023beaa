// Package overlay decodes raster images referenced by pattern patches
// and converts them to normalized samples for compositing.
//
// Decoded pixels are held as straight-alpha float32 samples in [0, 1]
// regardless of the source format. PNG, JPEG, GIF, TIFF, BMP and WebP
// sources are supported.
package overlay

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
)

// Image is a decoded overlay held as normalized straight-alpha samples.
type Image struct {
	Width  int
	Height int

	// Pix holds four samples per pixel in R, G, B, A order, row-major
	// from the top-left corner, each normalized to [0, 1]. Alpha is
	// straight, never premultiplied.
	Pix []float32
}

// At returns the normalized RGBA sample at pixel (x, y).
func (m *Image) At(x, y int) (r, g, b, a float32) {
	i := (y*m.Width + x) * 4
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]
}

// FromImage converts a decoded image to normalized samples.
//
// NRGBA and NRGBA64 sources are read directly. Other formats go
// through the color model conversion, which round-trips premultiplied
// values and can lose one 16-bit LSB under partial alpha.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	m := &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]float32, 4*b.Dx()*b.Dy()),
	}

	switch s := src.(type) {
	case *image.NRGBA:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			o := s.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				m.Pix[i+0] = float32(s.Pix[o+0]) / 255
				m.Pix[i+1] = float32(s.Pix[o+1]) / 255
				m.Pix[i+2] = float32(s.Pix[o+2]) / 255
				m.Pix[i+3] = float32(s.Pix[o+3]) / 255
				i += 4
				o += 4
			}
		}
	case *image.NRGBA64:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			o := s.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				for c := 0; c < 4; c++ {
					v := uint16(s.Pix[o])<<8 | uint16(s.Pix[o+1])
					m.Pix[i] = float32(v) / 65535
					i++
					o += 2
				}
			}
		}
	default:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBA64Model.Convert(src.At(x, y)).(color.NRGBA64)
				m.Pix[i+0] = float32(c.R) / 65535
				m.Pix[i+1] = float32(c.G) / 65535
				m.Pix[i+2] = float32(c.B) / 65535
				m.Pix[i+3] = float32(c.A) / 65535
				i += 4
			}
		}
	}
	return m
}

// Read decodes an overlay image from r. The format is inferred from
// the stream contents. Read does not close r.
func Read(r io.Reader) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageDecode, err, "decode overlay image")
	}
	return FromImage(src), nil
}
