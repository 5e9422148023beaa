package errors

import (
	"testing"
)

func TestValidateOverlayPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "logo.png", false},
		{"valid nested", "assets/logo.png", false},
		{"valid with dash", "cal-overlay.tif", false},
		{"valid with dot", "v2.1/logo.png", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 501)), true},
		{"absolute", "/etc/passwd", true},
		{"path traversal", "../secrets/key.png", true},
		{"embedded traversal", "assets/../../key.png", true},
		{"null byte", "foo\x00bar.png", true},
		{"backslash", "assets\\logo.png", true},
		{"control char", "foo\x01bar.png", true},
		{"newline", "foo\nbar.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOverlayPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOverlayPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "SMPTE_Bars", false},
		{"valid with spaces", "Macbeth Chart 10bit", false},
		{"valid with dash", "ramp-test", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"with path /", "out/render", true},
		{"with path \\", "out\\render", true},
		{"path traversal", "..", true},
		{"traversal in name", "a..b", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
