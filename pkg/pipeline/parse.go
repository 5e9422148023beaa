package pipeline

import (
	"os"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// Parse loads descriptor bytes from the configured source and builds
// the validated document. The raw bytes are returned alongside the
// document so callers can derive content-addressed cache keys.
func Parse(opts Options) (*tpat.Document, []byte, error) {
	source := opts.Source
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err,
					"descriptor not found: %s", opts.Path)
			}
			return nil, nil, errors.Wrap(errors.ErrCodeFileRead, err,
				"read descriptor: %s", opts.Path)
		}
		source = data
	}

	doc, err := tpat.Parse(source)
	if err != nil {
		return nil, nil, err
	}
	if err := tpat.Validate(doc); err != nil {
		return nil, nil, err
	}
	return doc, source, nil
}
