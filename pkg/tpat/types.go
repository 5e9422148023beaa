package tpat

import (
	"github.com/yergin/test-pattern-descriptor/pkg/raster"
)

// Format versions understood by this package.
const (
	DefaultVersion = 1
	MaxVersion     = 2
)

// Document is a parsed descriptor: the root patch plus the
// document-level fields that apply to the whole pattern.
type Document struct {
	Version int          // format version, DefaultVersion when absent
	Depth   raster.Depth // sample bit depth of the rendered pattern
	Name    string       // display name, used for output file naming
	Root    *Patch
}

// Patch is one node of the descriptor tree.
type Patch struct {
	// Path is the node's location in the document, for error reporting.
	Path string

	// Grid axis specs as authored; nil when the key is absent.
	// Columns/Width and Rows/Height are alias families: the first of
	// each pair wins for layout, and when both are present their
	// resolved totals must agree.
	Columns *AxisSpec
	Width   *AxisSpec
	Rows    *AxisSpec
	Height  *AxisSpec

	Border      *Extent       // border band widths, nil = none
	Spacing     *Extent       // inter-cell gaps; presence disables parent inheritance
	BorderColor *raster.Color // paints border band and spacing gaps

	Background Background // nil = no fill (root default is black)

	Image  string // overlay image path, "" = none
	Premul bool   // overlay alpha is premultiplied

	Place Placement // explicit placement within the parent grid

	Children     []Child
	Description  string
	Descriptions []string
}

// HasGrid reports whether the patch authored any grid axis key.
func (p *Patch) HasGrid() bool {
	return p.Columns != nil || p.Width != nil || p.Rows != nil || p.Height != nil
}

// ColumnSpec returns the authored column axis, preferring `columns`
// over its `width` alias. Nil when neither key is present.
func (p *Patch) ColumnSpec() *AxisSpec {
	if p.Columns != nil {
		return p.Columns
	}
	return p.Width
}

// RowSpec returns the authored row axis, preferring `rows` over its
// `height` alias. Nil when neither key is present.
func (p *Patch) RowSpec() *AxisSpec {
	if p.Rows != nil {
		return p.Rows
	}
	return p.Height
}

// Child is one element of a patch's child list: a nested patch, or a
// bare color that fills one grid cell and still advances the placement
// cursor.
type Child struct {
	// Path is the element's location in the document.
	Path  string
	Patch *Patch
	Fill  *raster.Color
}

// AxisSpec is one authored grid axis: an ordered list of cell sizes, or
// the `parent` sentinel delegating to the parent's resolved axis.
type AxisSpec struct {
	Parent bool
	Sizes  []int // scalar input becomes a single-element list
}

// Extent is a vertical/horizontal size pair. Scalar input broadcasts to
// both components.
type Extent struct {
	V int
	H int
}

// Placement carries a child's explicit position keys. The zero value
// means fully default placement (cursor position, inherited span).
type Placement struct {
	// Cell is 1-based inclusive: [row, col] or [row1, col1, row2, col2].
	// Nil when absent. Applied after the legacy keys, overriding them.
	Cell []int

	// Legacy 0-based keys. Left/Top position the cell; Right/Bottom are
	// exclusive and size the span against the cursor position.
	HasLeft   bool
	Left      int
	HasTop    bool
	Top       int
	HasRight  bool
	Right     int
	HasBottom bool
	Bottom    int
}

// Explicit reports whether any placement key was authored.
func (pl Placement) Explicit() bool {
	return pl.Cell != nil || pl.HasLeft || pl.HasTop || pl.HasRight || pl.HasBottom
}

// Axis distinguishes horizontal fills (varying along x) from vertical
// ones (varying along y).
type Axis int

// Fill axes.
const (
	Horizontal Axis = iota
	Vertical
)

// String returns the axis name as used in descriptor keys.
func (a Axis) String() string {
	if a == Horizontal {
		return "h"
	}
	return "v"
}

// Wave selects a grating waveform.
type Wave int

// Grating waveforms.
const (
	Square Wave = iota
	Sine
	Cosine
)

// String returns the waveform name as used in descriptor keys.
func (w Wave) String() string {
	switch w {
	case Square:
		return "square"
	case Sine:
		return "sine"
	default:
		return "cosine"
	}
}

// Background is the single background primitive of a patch. Exactly one
// of the nine background keys may be authored; the parsed form makes a
// second one unrepresentable.
type Background interface {
	background()
}

// Solid fills the patch with one color.
type Solid struct {
	Color raster.Color
}

// Ramp fills the patch with a linear gradient along one axis.
type Ramp struct {
	Axis   Axis
	C1, C2 raster.Color
}

// Grating fills the patch with a periodic two-color pattern along one
// axis. Half-periods are measured in pixels; P0 == P1 when no sweep was
// authored. A half-period of 1 is the Nyquist limit.
type Grating struct {
	Axis   Axis
	Wave   Wave
	P0, P1 float64
	Sweep  bool
	C1, C2 raster.Color
}

func (Solid) background()   {}
func (Ramp) background()    {}
func (Grating) background() {}
