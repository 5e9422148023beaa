package errors

import (
	"strings"
	"unicode"
)

// ValidateOverlayPath validates an overlay image path referenced by a
// descriptor. It rejects paths that could escape the directory the
// descriptor resolves against, which matters when documents arrive over
// the HTTP API.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateOverlayPath(path string) error {
	if path == "" {
		return New(ErrCodeFileNotFound, "overlay path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeFileNotFound, "overlay path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeFileNotFound, "overlay path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeFileNotFound, "overlay path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeFileNotFound, "overlay path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeFileNotFound, "overlay path cannot contain backslashes")
	}

	return nil
}

// ValidateOutputName validates a document name before it is turned into
// an output filename. Descriptor names feed directly into filesystem
// writes, so separators and traversal sequences are rejected.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeFileWrite, "output name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeFileWrite, "output name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeFileWrite, "output name contains invalid control characters")
		}
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeFileWrite, "output name cannot contain path separators")
	}

	// Check for path traversal
	if strings.Contains(name, "..") {
		return New(ErrCodeFileWrite, "output name cannot contain path traversal sequences (..)")
	}

	return nil
}
