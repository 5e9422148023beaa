// Package pkg provides the core libraries for T-PAT test pattern rendering.
//
// # Overview
//
// Tpat turns declarative T-PAT descriptors into exact-value test pattern
// images for display calibration and signal-path verification. The pkg
// directory is organized into four main areas:
//
//  1. [tpat] - Descriptor model (types, parsing, validation)
//  2. [render] - Layout resolution and pixel composition
//  3. [raster] - Depth-aware pixel buffers and color values
//  4. [pipeline] - Orchestration (parse → resolve → render) with caching
//
// # Architecture
//
// The typical data flow through tpat:
//
//	T-PAT JSON descriptor
//	         ↓
//	    [tpat] package (parse + validate)
//	         ↓
//	    [render] package (resolve grid placements to pixel rectangles)
//	         ↓
//	    [raster] buffer (compose fills, gratings, overlays)
//	         ↓
//	    TIFF/PNG/JSON output
//
// # Quick Start
//
// Parse a descriptor and render it to a TIFF file:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/yergin/test-pattern-descriptor/pkg/render"
//	    "github.com/yergin/test-pattern-descriptor/pkg/render/sink"
//	    "github.com/yergin/test-pattern-descriptor/pkg/tpat"
//	)
//
//	// 1. Parse and validate the descriptor
//	data, _ := os.ReadFile("pattern.tpat")
//	doc, _ := tpat.Parse(data)
//
//	// 2. Resolve the patch tree into pixel rectangles
//	layout, _ := render.Resolve(doc)
//
//	// 3. Compose the pixel buffer
//	buf, _ := render.RenderLayout(context.Background(), layout, doc.Depth)
//
//	// 4. Encode to TIFF
//	_ = sink.ExportTIFF(buf, doc.Depth, "pattern.tif")
//
// # Main Packages
//
// ## Descriptor Model
//
// [tpat] - The T-PAT document model. Parses descriptor JSON into a typed
// patch tree, applies version gating for newer keys, and validates semantic
// constraints (depth, dimensions, color ranges, cell coordinates).
//
// [io] - Document import from files and streams, plus JSON export of
// resolved layouts for external tooling.
//
// ## Rendering
//
// [render] - Layout resolution and composition. [render.Resolve] walks the
// patch tree, sizes grid columns and rows, places children into cell spans,
// and produces pixel-space rectangles. The compositor paints backgrounds
// (solid colors, ramps, gratings) and blends overlay images, in parallel
// across sibling patches by default.
//
// [render/sink] - Image encoders. TIFF output is 16-bit with plain or
// full-scale code value mapping, PNG output is an 8-bit preview.
//
// [raster] - Pixel buffers holding float64 RGB code values, the [raster.Depth]
// type (8/10/12/16-bit integer and 32-bit float), and conversions between
// code values and normalized samples.
//
// [overlay] - Overlay image loading (PNG, TIFF) with alpha premultiplication
// and depth-aware code value scaling.
//
// ## Infrastructure
//
// [pipeline] - Complete rendering pipeline (parse → resolve → render) used
// by CLI and API. Ensures consistent behavior across all entry points and
// caches encoded artifacts keyed by descriptor content hash.
//
// [cache] - Cache backends: FileCache for CLI (filesystem), RedisCache for
// the hosted API, NullCache to disable caching.
//
// [server] - HTTP API serving POST /v1/render and POST /v1/validate with
// request size limits, request IDs, and graceful shutdown.
//
// [errors] - Structured errors carrying machine-readable codes and JSON
// paths into the descriptor, so tools can point at the offending key.
//
// [observability] - Optional instrumentation hooks for pipeline stages,
// cache operations, and HTTP requests.
//
// [buildinfo] - Version information stamped at build time.
//
// # Common Workflows
//
// Validate a descriptor without rendering:
//
//	doc, err := tpat.Parse(data)
//	if err == nil {
//	    _, err = render.Resolve(doc)
//	}
//
// Render through the cached pipeline:
//
//	store, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(store, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Path:    "pattern.tpat",
//	    Formats: []string{"tiff", "png"},
//	})
//
// Visualize the resolved layout:
//
//	dot := render.ToDOT(layout)
//	svg, _ := render.RenderSVG(ctx, dot)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/render/...      # Specific package
//	go test -run Example          # Examples only
//
// [tpat]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/tpat
// [io]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/io
// [render]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/render
// [render.Resolve]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/render#Resolve
// [render/sink]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/render/sink
// [raster]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/raster
// [raster.Depth]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/raster#Depth
// [overlay]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/overlay
// [pipeline]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/cache
// [server]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/server
// [errors]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/errors
// [observability]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/yergin/test-pattern-descriptor/pkg/buildinfo
package pkg
