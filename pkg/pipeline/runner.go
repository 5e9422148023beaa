package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yergin/test-pattern-descriptor/pkg/cache"
	"github.com/yergin/test-pattern-descriptor/pkg/observability"
	"github.com/yergin/test-pattern-descriptor/pkg/render"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → resolve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	hooks := observability.Pipeline()

	// Stage 1: Parse
	parseStart := time.Now()
	hooks.OnParseStart(ctx)
	doc, source, err := r.Parse(opts)
	result.Stats.ParseTime = time.Since(parseStart)
	if err != nil {
		hooks.OnParseComplete(ctx, "", 0, result.Stats.ParseTime, err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	hooks.OnParseComplete(ctx, doc.Name, int(doc.Depth), result.Stats.ParseTime, nil)
	result.Doc = doc
	result.DocHash = cache.Hash(source)

	r.Logger.Info("parsed descriptor",
		"name", doc.Name,
		"version", doc.Version,
		"depth", int(doc.Depth),
		"duration", result.Stats.ParseTime)

	// Stage 2: Resolve
	resolveStart := time.Now()
	hooks.OnResolveStart(ctx)
	layout, err := render.Resolve(doc)
	result.Stats.ResolveTime = time.Since(resolveStart)
	if err != nil {
		hooks.OnResolveComplete(ctx, 0, 0, result.Stats.ResolveTime, err)
		return nil, fmt.Errorf("resolve: %w", err)
	}
	hooks.OnResolveComplete(ctx, layout.Width, layout.Height, result.Stats.ResolveTime, nil)
	result.Layout = layout
	result.Stats.Width = layout.Width
	result.Stats.Height = layout.Height

	r.Logger.Info("resolved layout",
		"width", layout.Width,
		"height", layout.Height,
		"duration", result.Stats.ResolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.DocHash, doc, layout, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
		return nil, fmt.Errorf("render: %w", err)
	}
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)
	result.Artifacts = artifacts
	result.CacheInfo.ArtifactHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse loads and validates the descriptor after applying the runner's
// logger and option validation. The raw descriptor bytes are returned
// for content hashing.
func (r *Runner) Parse(opts Options) (*tpat.Document, []byte, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, nil, err
	}
	r.applyLogger(&opts)
	return Parse(opts)
}

// RenderWithCacheInfo produces encoded artifacts with caching and
// returns cache hit info. Artifacts are keyed by the descriptor content
// hash plus the encoding options, so any change to the document or the
// requested encoding misses the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, docHash string, doc *tpat.Document, layout *render.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForEncode(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Without a content hash there is nothing safe to key on.
	useCache := !opts.NoCache && docHash != ""

	// Try to get all formats from cache
	if useCache {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	rendered, err := RenderFromLayout(ctx, layout, doc.Depth, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if useCache {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, docHash string, doc *tpat.Document, layout *render.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, docHash, doc, layout, opts)
	return artifacts, err
}

// Close releases the runner's resources.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
