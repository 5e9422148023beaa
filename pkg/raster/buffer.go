package raster

import "image"

// Buffer is an in-memory RGB sample raster. It follows the stdlib
// image layout so sub-rectangles can share pixel storage with their
// parent, which is what lets sibling patches render concurrently into
// disjoint views of one allocation.
type Buffer struct {
	// Pix holds the buffer's samples in R, G, B order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix []float32
	// Stride is the Pix stride between vertically adjacent pixels.
	Stride int
	// Rect is the buffer's bounds.
	Rect image.Rectangle
}

// New creates a buffer of the given size with all samples zero.
func New(width, height int) *Buffer {
	return &Buffer{
		Pix:    make([]float32, width*height*3),
		Stride: width * 3,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// Bounds returns the buffer's rectangle.
func (b *Buffer) Bounds() image.Rectangle {
	return b.Rect
}

// PixOffset returns the index of the first sample of the pixel at (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x-b.Rect.Min.X)*3
}

// Set writes the color of the pixel at (x, y). Out-of-bounds writes
// are ignored.
func (b *Buffer) Set(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	i := b.PixOffset(x, y)
	b.Pix[i+0] = float32(c[0])
	b.Pix[i+1] = float32(c[1])
	b.Pix[i+2] = float32(c[2])
}

// At returns the color of the pixel at (x, y). Out-of-bounds reads
// return the zero color.
func (b *Buffer) At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return Color{}
	}
	i := b.PixOffset(x, y)
	return Color{
		float64(b.Pix[i+0]),
		float64(b.Pix[i+1]),
		float64(b.Pix[i+2]),
	}
}

// SubBuffer returns a buffer sharing pixel storage with b, visible
// through the rectangle r. Writes through either view affect the other.
func (b *Buffer) SubBuffer(r image.Rectangle) *Buffer {
	r = r.Intersect(b.Rect)
	if r.Empty() {
		return &Buffer{}
	}
	i := b.PixOffset(r.Min.X, r.Min.Y)
	return &Buffer{
		Pix:    b.Pix[i:],
		Stride: b.Stride,
		Rect:   r,
	}
}

// Fill sets every pixel of the buffer to c.
func (b *Buffer) Fill(c Color) {
	b.FillRect(b.Rect, c)
}

// FillRect sets every pixel inside r (clipped to the buffer) to c.
func (b *Buffer) FillRect(r image.Rectangle, c Color) {
	r = r.Intersect(b.Rect)
	if r.Empty() {
		return
	}
	r0, g0, b0 := float32(c[0]), float32(c[1]), float32(c[2])
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := b.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Pix[i+0] = r0
			b.Pix[i+1] = g0
			b.Pix[i+2] = b0
			i += 3
		}
	}
}

// Equal reports whether two buffers have identical bounds and samples.
func Equal(a, b *Buffer) bool {
	if a.Rect != b.Rect {
		return false
	}
	for y := a.Rect.Min.Y; y < a.Rect.Max.Y; y++ {
		ai := a.PixOffset(a.Rect.Min.X, y)
		bi := b.PixOffset(b.Rect.Min.X, y)
		n := a.Rect.Dx() * 3
		for k := 0; k < n; k++ {
			if a.Pix[ai+k] != b.Pix[bi+k] {
				return false
			}
		}
	}
	return true
}
