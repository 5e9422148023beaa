package io

import (
	"io"
	"os"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// ReadDocument decodes and validates a descriptor from r.
//
// The input must be a JSON object carrying at least "depth" and the
// root grid axes ("width" or "columns", "height" or "rows"). Structural
// problems (unknown keys, wrong types, keys gated behind a newer format
// version) and semantic problems (colors out of range for the depth,
// gratings below the Nyquist limit, malformed placements) are both
// reported; the first error found aborts the read.
//
// Errors carry a machine-readable code and the document path of the
// offending value. Use errors.GetCode and errors.GetPath to extract
// them.
//
// The returned document is independent of r and can be used freely
// after ReadDocument returns. ReadDocument does not close r.
func ReadDocument(r io.Reader) (*tpat.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "read descriptor")
	}
	doc, err := tpat.Parse(data)
	if err != nil {
		return nil, err
	}
	if err := tpat.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ImportDocument reads a descriptor file at path and returns the
// decoded document.
//
// ImportDocument opens the file, decodes it using [ReadDocument], and
// closes the file. A missing file reports errors.ErrCodeFileNotFound;
// any other open or read failure reports errors.ErrCodeFileRead.
// Decoding failures carry the same codes as [ReadDocument].
func ImportDocument(path string) (*tpat.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "descriptor not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "open %s", path)
	}
	defer f.Close()
	return ReadDocument(f)
}
