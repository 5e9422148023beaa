package raster

import "testing"

func TestDepthValid(t *testing.T) {
	tests := []struct {
		depth Depth
		want  bool
	}{
		{Depth8, true},
		{Depth10, true},
		{Depth12, true},
		{Depth16, true},
		{Depth32, true},
		{Depth(0), false},
		{Depth(9), false},
		{Depth(24), false},
		{Depth(64), false},
	}

	for _, tt := range tests {
		if got := tt.depth.Valid(); got != tt.want {
			t.Errorf("Depth(%d).Valid() = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestDepthMax(t *testing.T) {
	tests := []struct {
		depth Depth
		want  float64
	}{
		{Depth8, 255},
		{Depth10, 1023},
		{Depth12, 4095},
		{Depth16, 65535},
		{Depth32, 1.0},
	}

	for _, tt := range tests {
		if got := tt.depth.Max(); got != tt.want {
			t.Errorf("Depth(%d).Max() = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name  string
		v     float64
		depth Depth
		want  float64
	}{
		{"integer passthrough", 512, Depth10, 512},
		{"round down", 512.4, Depth10, 512},
		{"round half up", 512.5, Depth10, 513},
		{"round up", 512.6, Depth10, 513},
		{"negative rounds toward zero", -0.4, Depth10, 0},
		{"float passthrough", 0.731, Depth32, 0.731},
		{"float not rounded", 0.5, Depth32, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.v, tt.depth); got != tt.want {
				t.Errorf("Quantize(%v, %d) = %v, want %v", tt.v, tt.depth, got, tt.want)
			}
		})
	}
}

func TestQuantizeColor(t *testing.T) {
	got := QuantizeColor(Color{10.5, 20.4, 30.6}, Depth8)
	want := Color{11, 20, 31}
	if got != want {
		t.Errorf("QuantizeColor() = %v, want %v", got, want)
	}

	f := Color{0.1, 0.5, 0.9}
	if got := QuantizeColor(f, Depth32); got != f {
		t.Errorf("QuantizeColor(float) = %v, want %v", got, f)
	}
}
