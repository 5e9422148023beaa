package render

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/overlay"
	"github.com/yergin/test-pattern-descriptor/pkg/raster"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	loader     overlay.Loader
	sequential bool
}

// WithLoader sets the loader used to resolve overlay image references.
// Without one, any "image" field fails the render.
func WithLoader(l overlay.Loader) Option { return func(r *renderer) { r.loader = l } }

// WithSequential renders the tree in document order on the calling
// goroutine instead of forking per child. Output is identical.
func WithSequential() Option { return func(r *renderer) { r.sequential = true } }

func newRenderer(opts ...Option) renderer {
	r := renderer{loader: overlay.Disabled{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render resolves doc and paints it into a freshly allocated buffer.
func Render(ctx context.Context, doc *tpat.Document, opts ...Option) (*raster.Buffer, error) {
	layout, err := Resolve(doc)
	if err != nil {
		return nil, err
	}
	return RenderLayout(ctx, layout, doc.Depth, opts...)
}

// RenderLayout paints an already resolved layout at depth d.
func RenderLayout(ctx context.Context, layout *Layout, d raster.Depth, opts ...Option) (*raster.Buffer, error) {
	r := newRenderer(opts...)
	buf := raster.New(layout.Width, layout.Height)
	if err := r.paint(ctx, buf, layout.Root, d); err != nil {
		return nil, err
	}
	return buf, nil
}

// paint renders one node and its subtree. Sibling subtrees write to
// disjoint rectangles, so the parallel path needs no locking; the only
// barrier is the join before the node's own overlay goes on top.
func (r *renderer) paint(ctx context.Context, buf *raster.Buffer, n *Node, d raster.Depth) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.IsFill() {
		buf.FillRect(n.Rect, raster.QuantizeColor(n.Fill, d))
		return nil
	}
	if r.sequential {
		r.paintOwn(buf, n, d)
		for _, child := range n.Children {
			if err := r.paint(ctx, buf, child, d); err != nil {
				return err
			}
		}
		return r.applyOverlay(ctx, buf, n, d)
	}

	g, gctx := errgroup.WithContext(ctx)
	var img *overlay.Image
	if n.Patch.Image != "" {
		g.Go(func() error {
			var err error
			img, err = r.loadOverlay(gctx, n)
			return err
		})
	}
	r.paintOwn(buf, n, d)
	for _, child := range n.Children {
		g.Go(func() error { return r.paint(gctx, buf, child, d) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if img != nil {
		return compositeOverlay(buf, n.Rect, img, n.Patch.Premul, d, keyPath(n.Path, "image"))
	}
	return nil
}

// paintOwn draws the node's background across its full rectangle,
// then the border band and cell spacing gaps when a border color is
// declared. Children overwrite their cells afterwards.
func (r *renderer) paintOwn(buf *raster.Buffer, n *Node, d raster.Depth) {
	p := n.Patch
	paintBackground(buf, n.Rect, p.Background, d)

	if p.BorderColor == nil {
		return
	}
	bc := raster.QuantizeColor(*p.BorderColor, d)
	rc, b := n.Rect, n.Border

	buf.FillRect(image.Rect(rc.Min.X, rc.Min.Y, rc.Max.X, rc.Min.Y+b.V), bc)
	buf.FillRect(image.Rect(rc.Min.X, rc.Max.Y-b.V, rc.Max.X, rc.Max.Y), bc)
	buf.FillRect(image.Rect(rc.Min.X, rc.Min.Y, rc.Min.X+b.H, rc.Max.Y), bc)
	buf.FillRect(image.Rect(rc.Max.X-b.H, rc.Min.Y, rc.Max.X, rc.Max.Y), bc)

	if n.Grid == nil {
		return
	}
	ix, iy := rc.Min.X+b.H, rc.Min.Y+b.V
	iw, ih := rc.Dx()-2*b.H, rc.Dy()-2*b.V
	co := n.Grid.Cols.Offsets
	for i := 2; i < len(co); i += 2 {
		buf.FillRect(image.Rect(ix+co[i-1], iy, ix+co[i], iy+ih), bc)
	}
	ro := n.Grid.Rows.Offsets
	for i := 2; i < len(ro); i += 2 {
		buf.FillRect(image.Rect(ix, iy+ro[i-1], ix+iw, iy+ro[i]), bc)
	}
}

func (r *renderer) loadOverlay(ctx context.Context, n *Node) (*overlay.Image, error) {
	img, err := r.loader.Load(ctx, n.Patch.Image)
	if err != nil {
		return nil, errors.AtPath(err, keyPath(n.Path, "image"))
	}
	return img, nil
}

// applyOverlay loads and composites the node's overlay inline, used
// by the sequential path.
func (r *renderer) applyOverlay(ctx context.Context, buf *raster.Buffer, n *Node, d raster.Depth) error {
	if n.Patch.Image == "" {
		return nil
	}
	img, err := r.loadOverlay(ctx, n)
	if err != nil {
		return err
	}
	return compositeOverlay(buf, n.Rect, img, n.Patch.Premul, d, keyPath(n.Path, "image"))
}
