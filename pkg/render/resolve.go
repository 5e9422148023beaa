package render

import (
	"image"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/raster"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// Layout is the resolved geometry of a document: an absolute pixel
// rectangle for every patch and fill, the grid boundaries used to
// place children, and the total output size.
type Layout struct {
	Width  int
	Height int
	Root   *Node
}

// Node pairs one patch, or one bare color fill, with its resolved
// geometry. Fill nodes carry a nil Patch.
type Node struct {
	Path     string
	Patch    *tpat.Patch
	Fill     raster.Color
	Rect     image.Rectangle
	Border   tpat.Extent
	Grid     *Grid
	Children []*Node
}

// IsFill reports whether the node is a bare color fill.
func (n *Node) IsFill() bool { return n.Patch == nil }

// Grid holds resolved cell boundaries, relative to the patch interior
// (the patch rectangle inset by its border pair).
type Grid struct {
	Cols GridAxis
	Rows GridAxis
}

// GridAxis is one axis of a resolved grid. Cell i spans
// [Offsets[2i], Offsets[2i+1]) in interior-relative pixels.
type GridAxis struct {
	Sizes   []int
	Spacing int
	Offsets []int
}

// Cells returns the number of cells along the axis.
func (a GridAxis) Cells() int { return len(a.Sizes) }

// Extent returns the total pixel span of the grid along the axis,
// spacing included.
func (a GridAxis) Extent() int { return a.Offsets[len(a.Offsets)-1] }

// parentAxis carries the slice of a parent grid delegated to a child
// through the "parent" axis spec.
type parentAxis struct {
	sizes   []int
	spacing int
}

// Resolve computes the layout of a parsed and validated document.
func Resolve(doc *tpat.Document) (*Layout, error) {
	root, err := resolvePatch(doc.Root, image.Rectangle{}, nil, nil)
	if err != nil {
		return nil, err
	}
	return &Layout{
		Width:  root.Rect.Dx(),
		Height: root.Rect.Dy(),
		Root:   root,
	}, nil
}

// resolvePatch computes the node for p. The root patch is recognized
// by nil parent axes; its rectangle is derived from its own grid
// rather than supplied by a placement.
func resolvePatch(p *tpat.Patch, rect image.Rectangle, parentCols, parentRows *parentAxis) (*Node, error) {
	n := &Node{Path: p.Path, Patch: p, Rect: rect}
	if p.Border != nil {
		n.Border = *p.Border
	}
	root := parentCols == nil && parentRows == nil

	if !p.HasGrid() && len(p.Children) == 0 {
		return n, nil
	}

	var ownH, ownV *int
	if p.Spacing != nil {
		ownH, ownV = &p.Spacing.H, &p.Spacing.V
	}

	colSpec, colKey := p.ColumnSpec(), "columns"
	if p.Columns == nil {
		colKey = "width"
	}
	rowSpec, rowKey := p.RowSpec(), "rows"
	if p.Rows == nil {
		rowKey = "height"
	}

	interiorW := rect.Dx() - 2*n.Border.H
	interiorH := rect.Dy() - 2*n.Border.V

	cols, err := resolveAxis(colSpec, colKey, ownH, parentCols, interiorW, p.Path)
	if err != nil {
		return nil, err
	}
	rows, err := resolveAxis(rowSpec, rowKey, ownV, parentRows, interiorH, p.Path)
	if err != nil {
		return nil, err
	}

	// Both families at one patch must resolve to the same pixel span.
	if p.Columns != nil && p.Width != nil {
		alias, err := resolveAxis(p.Width, "width", ownH, parentCols, interiorW, p.Path)
		if err != nil {
			return nil, err
		}
		if alias.Extent() != cols.Extent() {
			return nil, errors.NewAt(errors.ErrCodeGridSize, keyPath(p.Path, "width"),
				"width resolves to %d pixels but columns resolve to %d",
				alias.Extent(), cols.Extent())
		}
	}
	if p.Rows != nil && p.Height != nil {
		alias, err := resolveAxis(p.Height, "height", ownV, parentRows, interiorH, p.Path)
		if err != nil {
			return nil, err
		}
		if alias.Extent() != rows.Extent() {
			return nil, errors.NewAt(errors.ErrCodeGridSize, keyPath(p.Path, "height"),
				"height resolves to %d pixels but rows resolve to %d",
				alias.Extent(), rows.Extent())
		}
	}

	if root {
		n.Rect = image.Rect(0, 0,
			cols.Extent()+2*n.Border.H,
			rows.Extent()+2*n.Border.V)
	} else {
		if cols.Extent() > interiorW {
			return nil, errors.NewAt(errors.ErrCodeGridSize, keyPath(p.Path, colKey),
				"grid spans %d pixels but the patch interior is %d wide",
				cols.Extent(), interiorW)
		}
		if rows.Extent() > interiorH {
			return nil, errors.NewAt(errors.ErrCodeGridSize, keyPath(p.Path, rowKey),
				"grid spans %d pixels but the patch interior is %d high",
				rows.Extent(), interiorH)
		}
	}

	n.Grid = &Grid{Cols: cols, Rows: rows}

	if err := resolveChildren(p, n); err != nil {
		return nil, err
	}
	return n, nil
}

// resolveAxis turns one axis spec into pixel cell sizes and interleaved
// offsets. A nil spec produces a single cell spanning the interior. A
// "parent" spec adopts the delegated parent slice and inherits the
// parent's spacing unless the patch declares its own.
func resolveAxis(spec *tpat.AxisSpec, key string, own *int, parent *parentAxis, interior int, path string) (GridAxis, error) {
	var sizes []int
	spacing := 0

	switch {
	case spec == nil:
		if interior < 1 {
			return GridAxis{}, errors.NewAt(errors.ErrCodeGridSize, path,
				"border leaves no interior for the default grid")
		}
		sizes = []int{interior}
	case spec.Parent:
		if parent == nil {
			return GridAxis{}, errors.NewAt(errors.ErrCodeParentGrid, keyPath(path, key),
				`"parent" cannot be used at the document root`)
		}
		sizes = parent.sizes
		spacing = parent.spacing
	default:
		sizes = spec.Sizes
	}
	if own != nil {
		spacing = *own
	}

	offsets := make([]int, 2*len(sizes))
	off := 0
	for i, s := range sizes {
		offsets[2*i] = off
		off += s
		offsets[2*i+1] = off
		off += spacing
	}
	return GridAxis{Sizes: sizes, Spacing: spacing, Offsets: offsets}, nil
}

// resolveChildren places p's children on n's grid and recurses into
// patch children. The placement cursor persists across siblings: each
// child inherits the previous child's span and advances left to right,
// wrapping to the next row band when the next same-sized child would
// pass the right edge.
func resolveChildren(p *tpat.Patch, n *Node) error {
	if len(p.Children) == 0 {
		return nil
	}

	cols, rows := n.Grid.Cols, n.Grid.Rows
	nCols, nRows := cols.Cells(), rows.Cells()
	interiorX := n.Rect.Min.X + n.Border.H
	interiorY := n.Rect.Min.Y + n.Border.V
	occupied := make([]bool, nCols*nRows)

	left, top := 0, 0
	wid, hgt := 1, 1

	for _, c := range p.Children {
		if c.Patch != nil {
			pl := c.Patch.Place
			if pl.HasLeft {
				left = pl.Left
			}
			if pl.HasTop {
				top = pl.Top
			}
			if pl.HasRight {
				wid = pl.Right - left
			}
			if pl.HasBottom {
				hgt = pl.Bottom - top
			}
			if pl.Cell != nil {
				top = pl.Cell[0] - 1
				left = pl.Cell[1] - 1
				if len(pl.Cell) == 4 {
					hgt = pl.Cell[2] - top
					wid = pl.Cell[3] - left
				} else {
					wid, hgt = 1, 1
				}
			}
		}

		if wid < 1 || hgt < 1 {
			return errors.NewAt(errors.ErrCodePlacement, c.Path,
				"placement spans no cells")
		}
		if left+wid > nCols || top+hgt > nRows {
			return errors.NewAt(errors.ErrCodePlacement, c.Path,
				"placement exceeds the %dx%d grid", nCols, nRows)
		}
		for r := top; r < top+hgt; r++ {
			for q := left; q < left+wid; q++ {
				if occupied[r*nCols+q] {
					return errors.NewAt(errors.ErrCodePlacement, c.Path,
						"placement overlaps an earlier sibling")
				}
				occupied[r*nCols+q] = true
			}
		}

		childRect := image.Rect(
			interiorX+cols.Offsets[2*left],
			interiorY+rows.Offsets[2*top],
			interiorX+cols.Offsets[2*(left+wid)-1],
			interiorY+rows.Offsets[2*(top+hgt)-1])

		if c.Patch != nil {
			child, err := resolvePatch(c.Patch, childRect,
				&parentAxis{sizes: cols.Sizes[left : left+wid], spacing: cols.Spacing},
				&parentAxis{sizes: rows.Sizes[top : top+hgt], spacing: rows.Spacing})
			if err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		} else {
			n.Children = append(n.Children, &Node{
				Path: c.Path,
				Fill: *c.Fill,
				Rect: childRect,
			})
		}

		left += wid
		if left+wid > nCols {
			left = 0
			top += hgt
		}
	}
	return nil
}

func keyPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
