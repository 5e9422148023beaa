package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yergin/test-pattern-descriptor/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// These options control output naming, encoding, and cache behavior.
type renderOpts struct {
	output     string   // output file (single format) or base path (multiple)
	formats    []string // output formats: "tiff", "png"
	preview    bool     // append an 8-bit PNG preview to the formats
	fullScale  bool     // scale integer code values to the full container range
	sequential bool     // render patches one at a time
	overlayDir string   // overlay image directory, "" = descriptor directory
	noCache    bool     // bypass the artifact cache
}

// renderCommand creates the render command for producing image files.
//
// Default settings:
//   - format: tiff
//   - preview: true (also write an 8-bit PNG preview)
//   - full-scale: true (integer code values spread across the container range)
//
// The [render] section of the config file overrides these defaults, and
// explicit flags win over both.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		preview:   true,
		fullScale: true,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a descriptor to image files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			applyRenderConfig(cmd, cfg.Render, &opts, &formatsStr)

			opts.formats = parseFormats(formatsStr)
			if opts.preview && !hasFormat(opts.formats, pipeline.FormatPNG) {
				opts.formats = append(opts.formats, pipeline.FormatPNG)
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}

			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx := withLogger(cmd.Context(), c.Logger)
			return runRender(ctx, runner, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): tiff (default), png (comma-separated)")
	cmd.Flags().BoolVar(&opts.preview, "preview", opts.preview, "also write an 8-bit PNG preview")
	cmd.Flags().BoolVar(&opts.fullScale, "full-scale", opts.fullScale, "scale integer code values to the full container range")
	cmd.Flags().BoolVar(&opts.sequential, "sequential", false, "render patches one at a time")
	cmd.Flags().StringVar(&opts.overlayDir, "overlay-dir", "", "overlay image directory (default: descriptor directory)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// applyRenderConfig fills flag defaults from the config file. Flags the
// user set explicitly win over the file.
func applyRenderConfig(cmd *cobra.Command, cfg RenderConfig, opts *renderOpts, formatsStr *string) {
	if !cmd.Flags().Changed("format") && len(cfg.Formats) > 0 {
		*formatsStr = strings.Join(cfg.Formats, ",")
	}
	if !cmd.Flags().Changed("full-scale") && cfg.FullScale != nil {
		opts.fullScale = *cfg.FullScale
	}
	if !cmd.Flags().Changed("preview") && cfg.Preview != nil {
		opts.preview = *cfg.Preview
	}
}

// runRender executes the pipeline on input and writes one file per requested format.
func runRender(ctx context.Context, runner *pipeline.Runner, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	prog := newProgress(logger)

	result, err := runner.Execute(ctx, pipeline.Options{
		Path:       input,
		OverlayDir: opts.overlayDir,
		Sequential: opts.sequential,
		Formats:    opts.formats,
		PlainScale: !opts.fullScale,
		NoCache:    opts.noCache,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %dx%d pattern", result.Stats.Width, result.Stats.Height))

	base := outputBase(opts.output, input, result.Doc.Name)
	paths := make([]string, 0, len(opts.formats))
	for _, format := range opts.formats {
		path := base + "." + formatExt(format)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(result.Artifacts[format]))
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", displayName(result.Doc.Name, input))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Width, result.Stats.Height, int(result.Doc.Depth), result.CacheInfo.ArtifactHit)
	printNewline()
	printNextStep("Inspect the layout", "tpat inspect "+input)
	return nil
}

// displayName returns the document name, falling back to the input file
// name for unnamed documents.
func displayName(docName, input string) string {
	if docName != "" {
		return docName
	}
	return filepath.Base(input)
}

// outputExts is the set of file extensions stripped from an explicit output path.
var outputExts = map[string]bool{"tif": true, "tiff": true, "png": true}

// outputBase derives the base output path from the output flag, the input
// file path, and the document name. An explicit output wins, with any known
// format extension stripped so multiple formats do not stack extensions.
// Otherwise the document name is used, with spaces replaced to keep the
// files shell-friendly, falling back to the input file stem.
func outputBase(output, input, docName string) string {
	if output != "" {
		ext := strings.TrimPrefix(filepath.Ext(output), ".")
		if outputExts[ext] {
			return strings.TrimSuffix(output, "."+ext)
		}
		return output
	}
	if docName != "" {
		return strings.ReplaceAll(docName, " ", "_")
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// formatExt returns the file extension for an output format.
// TIFF files use the conventional short ".tif" extension.
func formatExt(format string) string {
	if format == pipeline.FormatTIFF {
		return "tif"
	}
	return format
}

// hasFormat reports whether format is present in formats.
func hasFormat(formats []string, format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}
