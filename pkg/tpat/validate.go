package tpat

import (
	"fmt"
	"math"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/raster"
)

// Validate applies the semantic rules that need the assembled document:
// supported depth, color components in range for that depth, grating
// half-periods at or above the Nyquist limit, positive cell sizes, and
// well-formed placement values. Geometry rules that need resolved pixel
// rectangles are checked by the render package.
func Validate(doc *Document) error {
	if !doc.Depth.Valid() {
		return errors.NewAt(errors.ErrCodeDepth, "depth",
			"unsupported depth %d (supported: 8, 10, 12, 16, 32)", int(doc.Depth))
	}
	return validatePatch(doc.Root, doc.Depth)
}

func validatePatch(p *Patch, d raster.Depth) error {
	if err := validateGrid(p); err != nil {
		return err
	}

	if p.BorderColor != nil {
		if err := checkColor(*p.BorderColor, d, joinPath(p.Path, "bordercolor")); err != nil {
			return err
		}
	}
	if err := validateBackground(p, d); err != nil {
		return err
	}
	if err := validatePlacement(p); err != nil {
		return err
	}

	for _, c := range p.Children {
		if c.Fill != nil {
			if err := checkColor(*c.Fill, d, c.Path); err != nil {
				return err
			}
			continue
		}
		if err := validatePatch(c.Patch, d); err != nil {
			return err
		}
	}
	return nil
}

func validateGrid(p *Patch) error {
	axes := []struct {
		key  string
		spec *AxisSpec
	}{
		{"columns", p.Columns},
		{"width", p.Width},
		{"rows", p.Rows},
		{"height", p.Height},
	}
	for _, a := range axes {
		if a.spec == nil || a.spec.Parent {
			continue
		}
		for i, size := range a.spec.Sizes {
			if size < 1 {
				return errors.NewAt(errors.ErrCodeGridSize,
					fmt.Sprintf("%s[%d]", joinPath(p.Path, a.key), i),
					"cell size must be positive, got %d", size)
			}
		}
	}

	if p.Border != nil && (p.Border.V < 0 || p.Border.H < 0) {
		return errors.NewAt(errors.ErrCodeGridSize, joinPath(p.Path, "border"),
			"border must not be negative")
	}
	if p.Spacing != nil && (p.Spacing.V < 0 || p.Spacing.H < 0) {
		return errors.NewAt(errors.ErrCodeGridSize, joinPath(p.Path, "spacing"),
			"spacing must not be negative")
	}
	return nil
}

func validateBackground(p *Patch, d raster.Depth) error {
	switch bg := p.Background.(type) {
	case nil:
		return nil
	case Solid:
		return checkColor(bg.Color, d, joinPath(p.Path, "color"))
	case Ramp:
		kp := joinPath(p.Path, bg.Axis.String()+"ramp")
		if err := checkColor(bg.C1, d, kp); err != nil {
			return err
		}
		return checkColor(bg.C2, d, kp)
	case Grating:
		kp := joinPath(p.Path, bg.Axis.String()+bg.Wave.String())
		if bg.P0 < 1 || bg.P1 < 1 {
			return errors.NewAt(errors.ErrCodeWaveform, kp,
				"half-period is below the Nyquist limit of 1 pixel")
		}
		if err := checkColor(bg.C1, d, kp); err != nil {
			return err
		}
		return checkColor(bg.C2, d, kp)
	}
	return nil
}

func validatePlacement(p *Patch) error {
	pl := p.Place
	if pl.Cell != nil {
		kp := joinPath(p.Path, "cell")
		for _, v := range pl.Cell {
			if v < 1 {
				return errors.NewAt(errors.ErrCodePlacement, kp,
					"cell coordinates are 1-based, got %d", v)
			}
		}
		if len(pl.Cell) == 4 {
			if pl.Cell[2] < pl.Cell[0] || pl.Cell[3] < pl.Cell[1] {
				return errors.NewAt(errors.ErrCodePlacement, kp,
					"cell range must run top-left to bottom-right")
			}
		}
	}

	legacy := []struct {
		key string
		has bool
		v   int
	}{
		{"left", pl.HasLeft, pl.Left},
		{"top", pl.HasTop, pl.Top},
		{"right", pl.HasRight, pl.Right},
		{"bottom", pl.HasBottom, pl.Bottom},
	}
	for _, l := range legacy {
		if l.has && l.v < 0 {
			return errors.NewAt(errors.ErrCodePlacement, joinPath(p.Path, l.key),
				"must not be negative, got %d", l.v)
		}
	}
	return nil
}

// checkColor verifies every component lands inside the depth's code
// range after quantization. The float depth is unchecked; values beyond
// [0, 1] are the author's business there.
func checkColor(c raster.Color, d raster.Depth, path string) error {
	if d.Float() {
		return nil
	}
	for _, v := range c {
		q := math.Floor(v + 0.5)
		if q < 0 || q > d.Max() {
			return errors.NewAt(errors.ErrCodeColorRange, path,
				"component %v is out of range for depth %d (0..%d)", v, int(d), int(d.Max()))
		}
	}
	return nil
}
