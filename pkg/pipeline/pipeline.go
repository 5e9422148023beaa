// Package pipeline runs the complete descriptor-to-artifact pipeline.
//
// This package implements the load → parse → resolve → render → encode
// sequence shared by the CLI and the HTTP server. Centralizing it keeps
// caching, logging and option handling identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: read descriptor bytes and build the validated document
//  2. Resolve: compute the absolute pixel layout of every patch
//  3. Rasterize: paint the layout into a sample buffer
//  4. Encode: produce output artifacts (TIFF, PNG preview)
//
// Rendering is deterministic, so encoded artifacts are cached under the
// descriptor content hash plus the encoding options. Parse and resolve
// are cheap and always run; a cache hit skips rasterize and encode.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "patterns/grey_field.tpat",
//	    Formats: []string{"tiff", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tiff := result.Artifacts["tiff"]
//
// Run individual stages:
//
//	// Parse only (the validate command)
//	doc, _, err := runner.Parse(opts)
//
//	// Resolve an already parsed document (the inspect command)
//	layout, err := render.Resolve(doc)
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yergin/test-pattern-descriptor/pkg/cache"
	"github.com/yergin/test-pattern-descriptor/pkg/render"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// Format constants for output artifacts.
const (
	FormatTIFF = "tiff"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatTIFF: true,
	FormatPNG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: tiff, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source selection: exactly one of Path or Source.
	Path   string `json:"path,omitempty"`
	Source []byte `json:"source,omitempty"`

	// Render options. OverlayDir is the directory overlay image
	// references resolve against; when empty it defaults to the
	// descriptor's directory for file input and to disabled overlay
	// loading for byte input.
	OverlayDir string `json:"overlay_dir,omitempty"`
	Sequential bool   `json:"sequential,omitempty"`

	// Encode options. PlainScale disables the default 16-bit
	// full-scale LSB replication.
	Formats    []string `json:"formats,omitempty"`
	PlainScale bool     `json:"plain_scale,omitempty"`

	// NoCache bypasses the artifact cache for both reads and writes.
	NoCache bool `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Doc is the parsed and validated descriptor.
	Doc *tpat.Document

	// DocHash is the content hash of the descriptor bytes.
	DocHash string

	// Layout is the resolved pixel geometry.
	Layout *render.Layout

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Width       int
	Height      int
	ParseTime   time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for the cacheable pipeline stage.
type CacheInfo struct {
	ArtifactHit bool // Whether all artifacts came from cache
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetEncodeDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for the parse stage.
func (o *Options) ValidateForParse() error {
	if o.Path == "" && o.Source == nil {
		return fmt.Errorf("path or source is required")
	}
	if o.Path != "" && o.Source != nil {
		return fmt.Errorf("path and source are mutually exclusive")
	}
	if o.OverlayDir == "" && o.Path != "" {
		o.OverlayDir = filepath.Dir(o.Path)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetEncodeDefaults sets default values for encoding.
func (o *Options) SetEncodeDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatTIFF}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForEncode validates and sets defaults for encoding.
func (o *Options) ValidateForEncode() error {
	o.SetEncodeDefaults()
	return ValidateFormats(o.Formats)
}

// FullScale reports whether 16-bit output should replicate MSBs into
// the low bits.
func (o *Options) FullScale() bool {
	return !o.PlainScale
}

// ArtifactKeyOpts returns cache key options for one encoded format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		FullScale: o.FullScale(),
	}
}
