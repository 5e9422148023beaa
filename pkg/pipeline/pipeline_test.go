package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yergin/test-pattern-descriptor/pkg/cache"
	"github.com/yergin/test-pattern-descriptor/pkg/errors"
)

func testRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"tiff", false},
		{"png", false},
		{"invalid", true},
		{"TIFF", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"tiff", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"tiff", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	// Missing path and source
	opts := Options{}
	if err := opts.ValidateForParse(); err == nil {
		t.Error("Missing path/source should fail")
	}

	// Both path and source
	opts = Options{Path: "a.tpat", Source: []byte("{}")}
	if err := opts.ValidateForParse(); err == nil {
		t.Error("Path and source together should fail")
	}

	// Source only
	opts = Options{Source: []byte("{}")}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Source-only options should pass: %v", err)
	}
	if opts.OverlayDir != "" {
		t.Errorf("Source input should leave OverlayDir empty, got %q", opts.OverlayDir)
	}

	// Path defaults OverlayDir to the descriptor directory
	opts = Options{Path: filepath.Join("patterns", "grey.tpat")}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Path-only options should pass: %v", err)
	}
	if opts.OverlayDir != "patterns" {
		t.Errorf("OverlayDir = %q, want %q", opts.OverlayDir, "patterns")
	}

	// Explicit OverlayDir wins
	opts = Options{Path: filepath.Join("patterns", "grey.tpat"), OverlayDir: "assets"}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Explicit OverlayDir should pass: %v", err)
	}
	if opts.OverlayDir != "assets" {
		t.Errorf("OverlayDir = %q, want %q", opts.OverlayDir, "assets")
	}
}

func TestOptionsSetEncodeDefaults(t *testing.T) {
	opts := Options{}
	opts.SetEncodeDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatTIFF {
		t.Errorf("Formats should be [tiff], got %v", opts.Formats)
	}
}

func TestOptionsFullScale(t *testing.T) {
	opts := Options{}
	if !opts.FullScale() {
		t.Error("Default should be full-scale")
	}

	opts.PlainScale = true
	if opts.FullScale() {
		t.Error("PlainScale=true should not be full-scale")
	}
}

func TestOptionsArtifactKeyOpts(t *testing.T) {
	opts := Options{PlainScale: true}
	keyOpts := opts.ArtifactKeyOpts("png")

	if keyOpts.Format != "png" {
		t.Errorf("Format = %q, want %q", keyOpts.Format, "png")
	}
	if keyOpts.FullScale {
		t.Error("FullScale should be false with PlainScale set")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Source: []byte("{}")}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormats := append([]string(nil), opts.Formats...)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if len(opts.Formats) != len(originalFormats) {
		t.Error("Formats changed on second call")
	}
}

func writeDescriptor(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pattern.tpat")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const testDoc = `{"depth": 8, "name": "Grey Field", "width": 4, "height": 3, "color": 128}`

func TestRunnerExecute(t *testing.T) {
	runner := testRunner(t, nil)
	path := writeDescriptor(t, testDoc)

	result, err := runner.Execute(context.Background(), Options{
		Path:    path,
		Formats: []string{FormatTIFF, FormatPNG},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Doc.Name != "Grey Field" {
		t.Errorf("Doc.Name = %q, want %q", result.Doc.Name, "Grey Field")
	}
	if result.DocHash == "" {
		t.Error("DocHash should be set")
	}
	if result.Stats.Width != 4 || result.Stats.Height != 3 {
		t.Errorf("size = %dx%d, want 4x3", result.Stats.Width, result.Stats.Height)
	}
	if result.CacheInfo.ArtifactHit {
		t.Error("First run should not hit the cache")
	}

	if tiff := result.Artifacts[FormatTIFF]; !bytes.HasPrefix(tiff, []byte("II")) {
		t.Errorf("TIFF artifact missing little-endian header: % x", tiff)
	}
	if png := result.Artifacts[FormatPNG]; !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("PNG artifact missing signature: % x", png)
	}
}

func TestRunnerExecuteSource(t *testing.T) {
	runner := testRunner(t, nil)

	result, err := runner.Execute(context.Background(), Options{
		Source: []byte(testDoc),
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(result.Artifacts) != 1 || len(result.Artifacts[FormatTIFF]) == 0 {
		t.Errorf("Default formats should produce one TIFF artifact, got %d entries", len(result.Artifacts))
	}
}

func TestRunnerExecuteArtifactCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := testRunner(t, c)
	defer runner.Close()

	path := writeDescriptor(t, testDoc)
	opts := Options{Path: path, Formats: []string{FormatTIFF, FormatPNG}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("First Execute failed: %v", err)
	}
	if first.CacheInfo.ArtifactHit {
		t.Error("First run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Second Execute failed: %v", err)
	}
	if !second.CacheInfo.ArtifactHit {
		t.Error("Second run should hit the cache")
	}

	for _, format := range opts.Formats {
		if !bytes.Equal(first.Artifacts[format], second.Artifacts[format]) {
			t.Errorf("Cached %s artifact differs from rendered one", format)
		}
	}
}

func TestRunnerExecuteNoCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := testRunner(t, c)
	defer runner.Close()

	path := writeDescriptor(t, testDoc)
	opts := Options{Path: path, NoCache: true}

	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("First Execute failed: %v", err)
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Second Execute failed: %v", err)
	}
	if second.CacheInfo.ArtifactHit {
		t.Error("NoCache run should never hit the cache")
	}
}

func TestRunnerExecuteEncodingChangesCacheKey(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := testRunner(t, c)
	defer runner.Close()

	path := writeDescriptor(t, `{"depth": 10, "width": 4, "height": 3, "color": 512}`)

	if _, err := runner.Execute(context.Background(), Options{Path: path}); err != nil {
		t.Fatalf("Full-scale Execute failed: %v", err)
	}

	plain, err := runner.Execute(context.Background(), Options{Path: path, PlainScale: true})
	if err != nil {
		t.Fatalf("Plain-scale Execute failed: %v", err)
	}
	if plain.CacheInfo.ArtifactHit {
		t.Error("Changing the scaling mode should miss the cache")
	}
}

func TestRunnerExecuteMissingFile(t *testing.T) {
	runner := testRunner(t, nil)

	_, err := runner.Execute(context.Background(), Options{
		Path: filepath.Join(t.TempDir(), "absent.tpat"),
	})
	if err == nil {
		t.Fatal("Execute should fail for a missing descriptor")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestRunnerExecuteInvalidDocument(t *testing.T) {
	runner := testRunner(t, nil)

	_, err := runner.Execute(context.Background(), Options{
		Source: []byte(`{"width": 4, "height": 3}`),
	})
	if err == nil {
		t.Fatal("Execute should fail without a depth")
	}
	if !errors.Is(err, errors.ErrCodeMissingField) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeMissingField)
	}
}

func TestRunnerParse(t *testing.T) {
	runner := testRunner(t, nil)

	doc, source, err := runner.Parse(Options{Source: []byte(testDoc)})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Name != "Grey Field" {
		t.Errorf("Doc.Name = %q, want %q", doc.Name, "Grey Field")
	}
	if string(source) != testDoc {
		t.Error("Parse should return the raw descriptor bytes")
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	if runner.Cache == nil || runner.Keyer == nil || runner.Logger == nil {
		t.Error("NewRunner should fill nil collaborators with defaults")
	}
	if err := runner.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
