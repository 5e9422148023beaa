// Package tpat models T-PAT test pattern descriptor documents.
//
// A descriptor is a JSON document describing a raster test pattern as a
// tree of nested, grid-partitioned patches. Each patch may carry a
// background fill (solid color, ramp, or frequency grating), a border
// and bordercolor, inter-cell spacing, an image overlay, and child
// patches placed into its grid.
//
// # Parsing
//
// Parse decodes descriptor bytes into a typed Document. Decoding is
// strict: unknown keys, wrong JSON types, and malformed unions are
// STRUCTURAL_* errors carrying the offending document path. Keys
// introduced by format version 2 (border, spacing, bordercolor, cell,
// gratings, image, premul, descriptions, patches) are rejected when the
// document declares an older version.
//
// # Validation
//
// Validate applies the semantic rules that need the whole document:
// supported depth, color components in range for the declared depth,
// grating half-periods at or above the Nyquist limit, and well-formed
// grid and placement values. Geometry checks that need resolved pixel
// rectangles (cell bounds, grid overflow, alias totals) live in the
// render package.
//
// # Versions
//
// Version 1 documents use `subpatches` and the v1 key set. Version 2
// renames the child list to `patches` and adds borders, spacing,
// gratings, placement by `cell`, and image overlays. Versions above 2
// are rejected.
package tpat
