// Package errors provides structured error types for the tpat application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Document locations attached to validation failures
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - STRUCTURAL_*: Descriptor shape failures (wrong JSON types, missing keys)
//   - SEMANTIC_*: Well-formed but meaningless values (out-of-range colors, bad grids)
//   - RESOURCE_*: Filesystem, image, and network failures
//
// # Usage
//
//	err := errors.NewAt(errors.ErrCodeColorRange, "patterns[0].background", "component %d out of range", v)
//	if errors.Is(err, errors.ErrCodeColorRange) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeImageDecode, origErr, "failed to decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Structural errors: the document shape is wrong
	ErrCodeBadDocument  Code = "STRUCTURAL_BAD_DOCUMENT"
	ErrCodeMissingField Code = "STRUCTURAL_MISSING_FIELD"
	ErrCodeWrongType    Code = "STRUCTURAL_WRONG_TYPE"
	ErrCodeUnknownField Code = "STRUCTURAL_UNKNOWN_FIELD"

	// Semantic errors: the document shape is fine but the values are not
	ErrCodeVersion      Code = "SEMANTIC_VERSION"
	ErrCodeVersionGated Code = "SEMANTIC_VERSION_GATED"
	ErrCodeDepth        Code = "SEMANTIC_DEPTH"
	ErrCodeColorRange   Code = "SEMANTIC_COLOR_RANGE"
	ErrCodeBackground   Code = "SEMANTIC_BACKGROUND"
	ErrCodeKeyConflict  Code = "SEMANTIC_KEY_CONFLICT"
	ErrCodeWaveform     Code = "SEMANTIC_WAVEFORM"
	ErrCodeGridSize     Code = "SEMANTIC_GRID_SIZE"
	ErrCodePlacement    Code = "SEMANTIC_PLACEMENT"
	ErrCodeParentGrid   Code = "SEMANTIC_PARENT_GRID"
	ErrCodeOverlayFit   Code = "SEMANTIC_OVERLAY_FIT"

	// Resource errors: the environment failed us
	ErrCodeFileNotFound    Code = "RESOURCE_FILE_NOT_FOUND"
	ErrCodeFileRead        Code = "RESOURCE_FILE_READ"
	ErrCodeFileWrite       Code = "RESOURCE_FILE_WRITE"
	ErrCodeImageDecode     Code = "RESOURCE_IMAGE_DECODE"
	ErrCodeImageEncode     Code = "RESOURCE_IMAGE_ENCODE"
	ErrCodeCache           Code = "RESOURCE_CACHE"
	ErrCodeRequestTooLarge Code = "RESOURCE_REQUEST_TOO_LARGE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Kind is the broad category an error code belongs to.
type Kind string

// Error kinds, derived from the code prefix.
const (
	KindStructural Kind = "structural"
	KindSemantic   Kind = "semantic"
	KindResource   Kind = "resource"
	KindInternal   Kind = "internal"
)

// KindOf returns the category of a code based on its prefix.
func KindOf(code Code) Kind {
	s := string(code)
	switch {
	case strings.HasPrefix(s, "STRUCTURAL_"):
		return KindStructural
	case strings.HasPrefix(s, "SEMANTIC_"):
		return KindSemantic
	case strings.HasPrefix(s, "RESOURCE_"):
		return KindResource
	default:
		return KindInternal
	}
}

// Error is a structured error with a code, an optional document location,
// and an optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Path    string // Location in the descriptor document (optional)
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Path, e.Message, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewAt creates a new Error locating the failure at a document path.
func NewAt(code Code, path, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// WrapAt creates a new Error wrapping an existing error at a document path.
func WrapAt(code Code, path string, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetPath extracts the document location from an error, if available.
// Returns empty string if the error is not an *Error or carries no path.
func GetPath(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Path
	}
	return ""
}

// AtPath attaches a document location to an error that lacks one.
// If err is not an *Error, or already carries a path, it is returned
// unchanged. Only the outermost error is inspected so wrapped context
// is never discarded.
func AtPath(err error, path string) error {
	e, ok := err.(*Error)
	if !ok || e.Path != "" {
		return err
	}
	located := *e
	located.Path = path
	return &located
}

// IsStructural reports whether err carries a STRUCTURAL_* code.
func IsStructural(err error) bool {
	return KindOf(GetCode(err)) == KindStructural
}

// IsSemantic reports whether err carries a SEMANTIC_* code.
func IsSemantic(err error) bool {
	return KindOf(GetCode(err)) == KindSemantic
}

// IsResource reports whether err carries a RESOURCE_* code.
func IsResource(err error) bool {
	return KindOf(GetCode(err)) == KindResource
}

// UserMessage returns a user-friendly message for the error.
// For *Error types with a document path, the path is prefixed so users
// can find the offending value. For other errors, returns the error
// string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Path != "" {
			return fmt.Sprintf("%s: %s", e.Path, e.Message)
		}
		return e.Message
	}
	return err.Error()
}

// RequestTooLargeError provides additional information for oversized
// render requests rejected by the HTTP API.
type RequestTooLargeError struct {
	Limit int64 // Maximum accepted body size in bytes
	Size  int64 // Observed body size, if known
}

// Error implements the error interface.
func (e *RequestTooLargeError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("request too large: limit %d bytes", e.Limit)
	}
	return "request too large"
}

// Code returns the error code for this error type.
func (e *RequestTooLargeError) Code() Code {
	return ErrCodeRequestTooLarge
}
