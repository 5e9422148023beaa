package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// ToDOT converts a resolved layout to Graphviz DOT format for
// inspection. Each node shows its document path, absolute rectangle,
// background, grid shape and overlay reference. Bare color fills are
// drawn dashed. The DOT string renders with [RenderSVG] or
// [RenderPNG].
func ToDOT(l *Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=11];\n")
	buf.WriteString("\n")

	writeDotNodes(&buf, l.Root)
	buf.WriteString("\n")
	writeDotEdges(&buf, l.Root)

	buf.WriteString("}\n")
	return buf.String()
}

func dotID(n *Node) string {
	if n.Path == "" {
		return "root"
	}
	return n.Path
}

func writeDotNodes(buf *bytes.Buffer, n *Node) {
	attrs := []string{fmt.Sprintf("label=%q", dotLabel(n))}
	if n.IsFill() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	fmt.Fprintf(buf, "  %q [%s];\n", dotID(n), strings.Join(attrs, ", "))
	for _, c := range n.Children {
		writeDotNodes(buf, c)
	}
}

func writeDotEdges(buf *bytes.Buffer, n *Node) {
	for _, c := range n.Children {
		fmt.Fprintf(buf, "  %q -> %q;\n", dotID(n), dotID(c))
		writeDotEdges(buf, c)
	}
}

func dotLabel(n *Node) string {
	parts := []string{
		dotID(n),
		fmt.Sprintf("%d,%d %dx%d", n.Rect.Min.X, n.Rect.Min.Y, n.Rect.Dx(), n.Rect.Dy()),
	}
	if n.IsFill() {
		parts = append(parts, fmt.Sprintf("fill %v", n.Fill))
		return strings.Join(parts, "\n")
	}
	if bg := BackgroundName(n.Patch.Background); bg != "" {
		parts = append(parts, bg)
	}
	if n.Grid != nil {
		parts = append(parts, fmt.Sprintf("grid %dx%d", n.Grid.Rows.Cells(), n.Grid.Cols.Cells()))
	}
	if n.Patch.Image != "" {
		parts = append(parts, "image "+n.Patch.Image)
	}
	return strings.Join(parts, "\n")
}

// BackgroundName returns the short descriptor-key style name of a
// background: "color", "hramp", "vsine sweep". Nil backgrounds return "".
func BackgroundName(bg tpat.Background) string {
	switch b := bg.(type) {
	case tpat.Solid:
		return "color"
	case tpat.Ramp:
		return b.Axis.String() + "ramp"
	case tpat.Grating:
		name := b.Axis.String() + b.Wave.String()
		if b.Sweep {
			name += " sweep"
		}
		return name
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDot(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDot(ctx, dot, graphviz.PNG)
}

func renderDot(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render layout graph")
	}
	return buf.Bytes(), nil
}
