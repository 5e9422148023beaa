package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeWrongType, "test message: %s", "value")

	if err.Code != ErrCodeWrongType {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeWrongType)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "STRUCTURAL_WRONG_TYPE: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestNewAt(t *testing.T) {
	err := NewAt(ErrCodeColorRange, "patterns[0].background", "component %d out of range", 1024)

	if err.Path != "patterns[0].background" {
		t.Errorf("Path = %v, want %v", err.Path, "patterns[0].background")
	}

	expected := "SEMANTIC_COLOR_RANGE: patterns[0].background: component 1024 out of range"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeImageDecode, cause, "failed to decode")

	if err.Code != ErrCodeImageDecode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeImageDecode)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestWrapAt(t *testing.T) {
	cause := errors.New("no such file")
	err := WrapAt(ErrCodeFileNotFound, "patterns[1].overlay.file", cause, "cannot open overlay")

	expected := "RESOURCE_FILE_NOT_FOUND: patterns[1].overlay.file: cannot open overlay: no such file"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeWrongType, "test"),
			code:     ErrCodeWrongType,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeWrongType, "test"),
			code:     ErrCodeImageDecode,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeImageDecode, New(ErrCodeWrongType, "inner"), "outer"),
			code:     ErrCodeImageDecode,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeWrongType,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeWrongType,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeGridSize, "test"),
			expected: ErrCodeGridSize,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error with path",
			err:      NewAt(ErrCodePlacement, "patterns[0].children[2]", "test"),
			expected: "patterns[0].children[2]",
		},
		{
			name:     "Error without path",
			err:      New(ErrCodePlacement, "test"),
			expected: "",
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetPath(tt.err); got != tt.expected {
				t.Errorf("GetPath() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAtPath(t *testing.T) {
	t.Run("attaches missing path", func(t *testing.T) {
		err := AtPath(New(ErrCodeImageDecode, "decode failed"), "patches[1].image")
		if got := GetPath(err); got != "patches[1].image" {
			t.Errorf("GetPath() = %q, want %q", got, "patches[1].image")
		}
		if !Is(err, ErrCodeImageDecode) {
			t.Errorf("code changed: %v", GetCode(err))
		}
	})

	t.Run("keeps existing path", func(t *testing.T) {
		orig := NewAt(ErrCodeImageDecode, "patches[0].image", "decode failed")
		err := AtPath(orig, "patches[9].image")
		if err != orig {
			t.Errorf("AtPath() rewrote an error that already had a path")
		}
	})

	t.Run("does not mutate the original", func(t *testing.T) {
		orig := New(ErrCodeImageDecode, "decode failed")
		AtPath(orig, "image")
		if got := GetPath(orig); got != "" {
			t.Errorf("original path = %q, want empty", got)
		}
	})

	t.Run("plain error passes through", func(t *testing.T) {
		orig := errors.New("plain")
		if err := AtPath(orig, "image"); err != orig {
			t.Errorf("AtPath() = %v, want the original error", err)
		}
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		code     Code
		expected Kind
	}{
		{name: "structural", code: ErrCodeMissingField, expected: KindStructural},
		{name: "semantic", code: ErrCodeColorRange, expected: KindSemantic},
		{name: "resource", code: ErrCodeFileRead, expected: KindResource},
		{name: "internal", code: ErrCodeInternal, expected: KindInternal},
		{name: "empty", code: "", expected: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.code); got != tt.expected {
				t.Errorf("KindOf() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKindPredicates(t *testing.T) {
	structural := New(ErrCodeUnknownField, "bad key")
	semantic := NewAt(ErrCodeGridSize, "patterns[0].grid", "cells exceed patch")
	resource := Wrap(ErrCodeFileWrite, errors.New("disk full"), "cannot save")
	plain := errors.New("plain")

	if !IsStructural(structural) || IsStructural(semantic) || IsStructural(plain) {
		t.Error("IsStructural misclassified an error")
	}
	if !IsSemantic(semantic) || IsSemantic(resource) || IsSemantic(plain) {
		t.Error("IsSemantic misclassified an error")
	}
	if !IsResource(resource) || IsResource(structural) || IsResource(plain) {
		t.Error("IsResource misclassified an error")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeWrongType, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "Error with path",
			err:      NewAt(ErrCodeColorRange, "patterns[0]", "out of range"),
			expected: "patterns[0]: out of range",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRequestTooLargeError(t *testing.T) {
	t.Run("with limit", func(t *testing.T) {
		err := &RequestTooLargeError{Limit: 1 << 20}
		expected := "request too large: limit 1048576 bytes"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("without limit", func(t *testing.T) {
		err := &RequestTooLargeError{}
		expected := "request too large"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("code method", func(t *testing.T) {
		err := &RequestTooLargeError{}
		if err.Code() != ErrCodeRequestTooLarge {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeRequestTooLarge)
		}
	})
}
