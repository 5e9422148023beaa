// Package io provides file import for descriptor documents and JSON
// export for resolved layouts.
//
// # Overview
//
// This package is the file-format boundary of the module. It reads
// ".tpat" descriptor files into validated documents, and it writes
// resolved layouts to a JSON format designed for:
//
//   - External tools that draw annotations on top of rendered output
//   - Checking descriptor geometry without rasterizing anything
//   - Diffing the placement effect of a descriptor edit
//
// # Descriptor Format
//
// A descriptor is a single JSON object. The object itself is the root
// patch, extended with a few document-level fields:
//
//	{
//	  "version": 2,
//	  "depth": 10,
//	  "name": "Grey Steps",
//	  "width": [210, 360, 210],
//	  "height": [360, 360],
//	  "color": 512
//	}
//
// Document fields:
//   - version: Format version, 1 or 2 (defaults to 1). Keys introduced
//     by version 2 are rejected in version 1 documents.
//   - depth: Required. Sample depth: 8, 10, 12 or 16 for integer
//     samples, 32 for normalized float samples.
//   - name: Display name, also used to derive output file names.
//
// Patch fields (the root and every entry of "patches"):
//   - columns (alias width), rows (alias height): Grid cell sizes in
//     pixels. A scalar means one cell; an array means one cell per
//     element; the string "parent" adopts the cell boundaries of the
//     enclosing grid slice.
//   - border: [vertical, horizontal] margin pair, or a scalar for both.
//   - spacing: [vertical, horizontal] gap pair between grid cells, or a
//     scalar for both. Inherited by "parent" axes.
//   - bordercolor: Color painted into the border margin and the spacing
//     gaps. Without it the margins stay on the underlying background.
//   - color: Solid background color.
//   - hramp, vramp: [c1, c2] linear ramp along the axis.
//   - hsquare, vsquare, hsine, vsine, hcosine, vcosine: Grating
//     [halfPeriod, c1, c2], or [start, end, c1, c2] for a swept
//     half-period.
//   - image: Overlay image reference, composited over the patch center.
//   - premul: Marks the overlay's color as alpha-premultiplied.
//   - patches (version 1: subpatches): Child list. Each element is a
//     patch object or a bare color, which fills one grid cell.
//   - left, top, right, bottom, cell: Explicit 1-based grid placement.
//     "cell" is [row, col] or [row1, col1, row2, col2] and overrides
//     the edge keys.
//   - description, descriptions: Freeform notes, ignored by rendering.
//
// Colors are a single grey number or an [r, g, b] triple, in the code
// range of the document depth (0..1 for depth 32).
//
// # Import
//
// Use [ImportDocument] to read a descriptor from a file path, or
// [ReadDocument] to read from any io.Reader:
//
//	doc, err := io.ImportDocument("patterns/grey_steps.tpat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions run the full structural and semantic validation, so a
// returned document is always renderable. Errors carry machine-readable
// codes and the document path of the offending value.
//
// # Layout Export
//
// Use [ExportLayout] to write a resolved layout to a file, or
// [WriteLayout] to write to any io.Writer:
//
//	layout, err := render.Resolve(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = io.ExportLayout(layout, "grey_steps_layout.json")
//
// The export carries the absolute pixel rectangle of every patch and
// fill, border widths, and the resolved grid boundaries. It is a
// one-way view of the geometry; rendering always starts from the
// descriptor, never from an exported layout.
//
// # Concurrency
//
// All functions in this package are safe to call concurrently. The
// documents returned by [ReadDocument] and [ImportDocument] are
// independent instances that can be used freely after import.
package io
