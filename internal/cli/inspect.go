package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yergin/test-pattern-descriptor/pkg/io"
	"github.com/yergin/test-pattern-descriptor/pkg/render"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// Inspect output formats.
const (
	inspectTree = "tree"
	inspectJSON = "json"
	inspectDOT  = "dot"
	inspectSVG  = "svg"
	inspectPNG  = "png"
)

// inspectFormats is the set of supported inspect output formats.
var inspectFormats = map[string]bool{
	inspectTree: true,
	inspectJSON: true,
	inspectDOT:  true,
	inspectSVG:  true,
	inspectPNG:  true,
}

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	format      string // output format: tree, json, dot, svg, png
	output      string // output file, "" = stdout (or derived for svg/png)
	interactive bool   // browse the layout in a terminal UI
}

// inspectCommand creates the inspect command for examining resolved layouts.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{format: inspectTree}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the resolved layout of a descriptor",
		Long: `Inspect resolves a descriptor to its pixel layout and shows the patch
tree with the absolute rectangle of every node. The layout can also be
exported as JSON, as a Graphviz DOT graph, or rendered to SVG or PNG
via Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !inspectFormats[opts.format] {
				return fmt.Errorf("invalid format: %s (must be 'tree', 'json', 'dot', 'svg', or 'png')", opts.format)
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return runInspect(ctx, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: tree (default), json, dot, svg, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (tree, json, and dot default to stdout)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the layout in an interactive tree view")

	return cmd
}

// runInspect resolves the descriptor at input and emits its layout in the
// requested form.
func runInspect(ctx context.Context, input string, opts *inspectOpts) error {
	doc, err := io.ImportDocument(input)
	if err != nil {
		return err
	}
	layout, err := render.Resolve(doc)
	if err != nil {
		return err
	}

	if opts.interactive {
		return browseLayout(doc, layout)
	}

	switch opts.format {
	case inspectTree:
		return writeInspectText(opts.output, treeString(doc, layout))
	case inspectJSON:
		if opts.output == "" {
			return io.WriteLayout(os.Stdout, layout)
		}
		if err := io.ExportLayout(opts.output, layout); err != nil {
			return err
		}
		printFile(opts.output)
		return nil
	case inspectDOT:
		return writeInspectText(opts.output, render.ToDOT(layout))
	default:
		return renderLayoutGraph(ctx, input, layout, opts)
	}
}

// writeInspectText writes s to the output path, or stdout when none is set.
func writeInspectText(output, s string) error {
	if output == "" {
		fmt.Print(s)
		return nil
	}
	if err := os.WriteFile(output, []byte(s), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printFile(output)
	return nil
}

// renderLayoutGraph renders the layout's DOT graph to SVG or PNG through
// Graphviz. The output path defaults to the input stem with a "_layout"
// suffix so it cannot collide with rendered pattern files.
func renderLayoutGraph(ctx context.Context, input string, layout *render.Layout, opts *inspectOpts) error {
	dot := render.ToDOT(layout)

	s := newSpinnerWithContext(ctx, "Rendering layout graph...")
	s.Start()
	var data []byte
	var err error
	if opts.format == inspectSVG {
		data, err = render.RenderSVG(ctx, dot)
	} else {
		data, err = render.RenderPNG(ctx, dot)
	}
	s.Stop()
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "_layout." + opts.format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// treeString renders the layout as an indented tree, one node per line.
func treeString(doc *tpat.Document, layout *render.Layout) string {
	var b strings.Builder
	name := doc.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&b, "%s, %d-bit, version %d\n", name, doc.Depth, doc.Version)
	writeTreeNode(&b, layout.Root, "", "")
	return b.String()
}

// writeTreeNode prints n with the given branch prefix and recurses into
// its children.
func writeTreeNode(b *strings.Builder, n *render.Node, prefix, childPrefix string) {
	b.WriteString(prefix + nodeLine(n) + "\n")
	for i, child := range n.Children {
		if i == len(n.Children)-1 {
			writeTreeNode(b, child, childPrefix+"└── ", childPrefix+"    ")
		} else {
			writeTreeNode(b, child, childPrefix+"├── ", childPrefix+"│   ")
		}
	}
}

// nodeLine returns the one-line tree entry for a node: the final segment
// of its path, its pixel geometry, and a short content description. The
// ancestry is implied by the tree indentation.
func nodeLine(n *render.Node) string {
	parts := []string{
		pathBase(n.Path),
		fmt.Sprintf("%d,%d %dx%d", n.Rect.Min.X, n.Rect.Min.Y, n.Rect.Dx(), n.Rect.Dy()),
	}
	if n.IsFill() {
		parts = append(parts, fmt.Sprintf("fill %v", n.Fill))
		return strings.Join(parts, "  ")
	}
	if n.Patch.Background != nil {
		parts = append(parts, backgroundDetail(n.Patch.Background))
	}
	if n.Grid != nil {
		parts = append(parts, fmt.Sprintf("grid %dx%d", n.Grid.Rows.Cells(), n.Grid.Cols.Cells()))
	}
	if n.Patch.Image != "" {
		parts = append(parts, "image "+n.Patch.Image)
	}
	return strings.Join(parts, "  ")
}

// backgroundDetail returns the background name with its colors or periods.
func backgroundDetail(bg tpat.Background) string {
	switch b := bg.(type) {
	case tpat.Solid:
		return fmt.Sprintf("color %v", b.Color)
	case tpat.Ramp:
		return fmt.Sprintf("%s %v to %v", render.BackgroundName(b), b.C1, b.C2)
	case tpat.Grating:
		if b.Sweep {
			return fmt.Sprintf("%s %g to %g px", render.BackgroundName(b), b.P0, b.P1)
		}
		return fmt.Sprintf("%s %g px", render.BackgroundName(b), b.P0)
	}
	return ""
}

// pathBase returns the final segment of a node path.
func pathBase(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
