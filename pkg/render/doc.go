// Package render turns validated pattern documents into pixel buffers.
//
// Rendering happens in two passes. [Resolve] walks the patch tree and
// computes an absolute pixel rectangle for every patch and bare color
// fill, together with the grid boundaries used to place children. The
// resulting [Layout] is immutable. [Render] then paints the layout
// into a [raster.Buffer]: background fill, border band, spacing gaps,
// children, and finally the overlay image.
//
// # Geometry
//
// A patch's grid lives in its interior, the patch rectangle inset by
// the border pair. Cell boundaries interleave cell sizes with the
// spacing value, so cell i spans [Offsets[2i], Offsets[2i+1]) relative
// to the interior origin. Children occupy whole cell spans and never
// overlap; overlapping placements are rejected during resolution.
//
// # Concurrency
//
// Sibling subtrees write to disjoint rectangles of the shared buffer,
// so they render concurrently without locks. Each patch joins its
// children before compositing its own overlay, and overlay images load
// while the subtree renders. Sequential mode produces byte-identical
// output and exists for debugging and benchmarks.
//
// # Inspection
//
// [ToDOT] exports a resolved layout as a Graphviz digraph, rendered to
// SVG or PNG with [RenderSVG] and [RenderPNG].
//
// [raster.Buffer]: github.com/yergin/test-pattern-descriptor/pkg/raster
package render
