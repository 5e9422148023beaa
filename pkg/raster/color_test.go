package raster

import "testing"

func TestGrey(t *testing.T) {
	got := Grey(18)
	want := Color{18, 18, 18}
	if got != want {
		t.Errorf("Grey(18) = %v, want %v", got, want)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name  string
		c1    Color
		c2    Color
		t     float64
		depth Depth
		want  Color
	}{
		{
			name:  "endpoints exact at t=0",
			c1:    Color{0, 100, 200},
			c2:    Color{1000, 900, 800},
			t:     0,
			depth: Depth10,
			want:  Color{0, 100, 200},
		},
		{
			name:  "endpoints exact at t=1",
			c1:    Color{0, 100, 200},
			c2:    Color{1000, 900, 800},
			t:     1,
			depth: Depth10,
			want:  Color{1000, 900, 800},
		},
		{
			name:  "integer midpoint rounds half up",
			c1:    Color{0, 0, 0},
			c2:    Color{5, 5, 5},
			t:     0.5,
			depth: Depth8,
			want:  Color{3, 3, 3}, // 2.5 rounds up
		},
		{
			name:  "float midpoint not rounded",
			c1:    Color{0, 0, 0},
			c2:    Color{1, 1, 1},
			t:     0.5,
			depth: Depth32,
			want:  Color{0.5, 0.5, 0.5},
		},
		{
			name:  "descending components",
			c1:    Color{255, 255, 255},
			c2:    Color{0, 0, 0},
			t:     0.25,
			depth: Depth8,
			want:  Color{191, 191, 191}, // 191.25 rounds down
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(tt.c1, tt.c2, tt.t, tt.depth); got != tt.want {
				t.Errorf("Lerp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLerpMonotonic(t *testing.T) {
	// For monotonic endpoint pairs, samples along t must be monotonic.
	c1 := Color{0, 0, 0}
	c2 := Color{1023, 1023, 1023}
	prev := -1.0
	for i := 0; i <= 100; i++ {
		c := Lerp(c1, c2, float64(i)/100, Depth10)
		if c[0] < prev {
			t.Fatalf("Lerp not monotonic: %v after %v at step %d", c[0], prev, i)
		}
		prev = c[0]
	}
}
