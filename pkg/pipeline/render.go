package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yergin/test-pattern-descriptor/pkg/overlay"
	"github.com/yergin/test-pattern-descriptor/pkg/raster"
	"github.com/yergin/test-pattern-descriptor/pkg/render"
	"github.com/yergin/test-pattern-descriptor/pkg/render/sink"
)

// RenderFromLayout rasterizes a resolved layout and encodes it in the
// requested formats. The buffer is painted once and shared by every
// encoder.
func RenderFromLayout(ctx context.Context, layout *render.Layout, depth raster.Depth, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForEncode(); err != nil {
		return nil, err
	}

	var ropts []render.Option
	if opts.OverlayDir != "" {
		ropts = append(ropts, render.WithLoader(overlay.NewFileLoader(opts.OverlayDir)))
	}
	if opts.Sequential {
		ropts = append(ropts, render.WithSequential())
	}

	buf, err := render.RenderLayout(ctx, layout, depth, ropts...)
	if err != nil {
		return nil, err
	}

	return Encode(buf, depth, opts)
}

// Encode serializes a rendered buffer in the requested formats.
func Encode(buf *raster.Buffer, depth raster.Depth, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var out bytes.Buffer
		var err error

		switch format {
		case FormatTIFF:
			err = sink.WriteTIFF(buf, depth, &out, sink.WithFullScale(opts.FullScale()))
		case FormatPNG:
			err = sink.WritePNG(buf, depth, &out)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}
		artifacts[format] = out.Bytes()
	}

	return artifacts, nil
}
