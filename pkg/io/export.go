package io

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/render"
)

type layoutJSON struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Root   layoutNode `json:"root"`
}

type layoutNode struct {
	Path     string       `json:"path"`
	Rect     rectJSON     `json:"rect"`
	Fill     *[3]float64  `json:"fill,omitempty"`
	Border   *extentJSON  `json:"border,omitempty"`
	Grid     *gridJSON    `json:"grid,omitempty"`
	Children []layoutNode `json:"children,omitempty"`
}

type rectJSON struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type extentJSON struct {
	V int `json:"v"`
	H int `json:"h"`
}

type gridJSON struct {
	Cols axisJSON `json:"cols"`
	Rows axisJSON `json:"rows"`
}

type axisJSON struct {
	Sizes   []int `json:"sizes"`
	Spacing int   `json:"spacing,omitempty"`
	Offsets []int `json:"offsets"`
}

// WriteLayout encodes a resolved layout as JSON and writes it to w.
//
// The output carries the absolute pixel rectangle of every patch and
// fill, the border widths, and the grid boundaries each patch used to
// place its children. Bare fills are marked by a "fill" color triple.
// This is enough for external tools to draw annotations on top of
// rendered output or to check descriptor geometry without rasterizing.
func WriteLayout(l *render.Layout, w io.Writer) error {
	out := layoutJSON{
		Width:  l.Width,
		Height: l.Height,
		Root:   layoutNodeJSON(l.Root),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func layoutNodeJSON(n *render.Node) layoutNode {
	out := layoutNode{
		Path: n.Path,
		Rect: rectFromImage(n.Rect),
	}
	if n.IsFill() {
		fill := [3]float64(n.Fill)
		out.Fill = &fill
	}
	if n.Border.V != 0 || n.Border.H != 0 {
		out.Border = &extentJSON{V: n.Border.V, H: n.Border.H}
	}
	if n.Grid != nil {
		out.Grid = &gridJSON{
			Cols: axisJSON{Sizes: n.Grid.Cols.Sizes, Spacing: n.Grid.Cols.Spacing, Offsets: n.Grid.Cols.Offsets},
			Rows: axisJSON{Sizes: n.Grid.Rows.Sizes, Spacing: n.Grid.Rows.Spacing, Offsets: n.Grid.Rows.Offsets},
		}
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, layoutNodeJSON(c))
	}
	return out
}

func rectFromImage(r image.Rectangle) rectJSON {
	return rectJSON{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// ExportLayout writes a resolved layout to a JSON file at path.
// This is a convenience wrapper around [WriteLayout] for file-based output.
func ExportLayout(l *render.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "create %s", path)
	}
	defer f.Close()
	return WriteLayout(l, f)
}
