package render

import (
	"image"
	"testing"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

func mustLayout(t *testing.T, in string) *Layout {
	t.Helper()
	doc, err := tpat.Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := tpat.Validate(doc); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	l, err := Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return l
}

func layoutErr(t *testing.T, in string) error {
	t.Helper()
	doc, err := tpat.Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := tpat.Validate(doc); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	_, err = Resolve(doc)
	if err == nil {
		t.Fatalf("Resolve() succeeded, want error")
	}
	return err
}

func TestResolveRootSize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		w, h   int
	}{
		{
			name: "scalar extents",
			in:   `{"depth": 8, "width": 10, "height": 20}`,
			w:    10, h: 20,
		},
		{
			name: "cell breakdown",
			in:   `{"depth": 8, "columns": [100, 200, 50], "rows": [10, 10]}`,
			w:    350, h: 20,
		},
		{
			name: "breakdown with spacing",
			in: `{"version": 2, "depth": 8, "columns": [100, 200, 50], "rows": [10, 10],
				"spacing": [4, 6]}`,
			w: 362, h: 24,
		},
		{
			name: "border grows the canvas",
			in: `{"version": 2, "depth": 8, "width": 10, "height": 20,
				"border": [5, 3]}`,
			w: 16, h: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLayout(t, tt.in)
			if l.Width != tt.w || l.Height != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", l.Width, l.Height, tt.w, tt.h)
			}
			if got := l.Root.Rect; got != image.Rect(0, 0, tt.w, tt.h) {
				t.Errorf("root rect = %v", got)
			}
		})
	}
}

func TestResolveThreeSquaresLayout(t *testing.T) {
	l := mustLayout(t, `{
		"version": 2, "depth": 32,
		"width": [210, 360, 210, 360, 210, 360, 210],
		"height": [360, 360, 360],
		"hramp": [0, 1],
		"patches": [
			{"cell": [2, 2], "color": 0.5},
			{"cell": [2, 4], "color": 0.5},
			{"cell": [2, 6], "color": 0.5}
		]
	}`)

	if l.Width != 1920 || l.Height != 1080 {
		t.Fatalf("size = %dx%d, want 1920x1080", l.Width, l.Height)
	}

	want := []image.Rectangle{
		image.Rect(210, 360, 570, 720),
		image.Rect(780, 360, 1140, 720),
		image.Rect(1350, 360, 1710, 720),
	}
	if len(l.Root.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(l.Root.Children))
	}
	for i, c := range l.Root.Children {
		if c.Rect != want[i] {
			t.Errorf("child %d rect = %v, want %v", i, c.Rect, want[i])
		}
	}
}

// The wrap case from the format documentation: spans (top=1, left=2,
// right=4) advance the cursor past the right edge of a five-column
// grid, so the following sibling lands at row 2, column 0 with the
// previous 2x1 span.
func TestResolveCursorWrap(t *testing.T) {
	l := mustLayout(t, `{
		"version": 2, "depth": 8,
		"columns": [10, 10, 10, 10, 10],
		"rows": [5, 5, 5],
		"patches": [
			{"left": 2, "top": 1, "right": 4},
			{"color": 7}
		]
	}`)

	first, second := l.Root.Children[0], l.Root.Children[1]
	if first.Rect != image.Rect(20, 5, 40, 10) {
		t.Errorf("first rect = %v, want (20,5)-(40,10)", first.Rect)
	}
	if second.Rect != image.Rect(0, 10, 20, 15) {
		t.Errorf("second rect = %v, want (0,10)-(20,15)", second.Rect)
	}
}

func TestResolveSpanPersistsAcrossFills(t *testing.T) {
	l := mustLayout(t, `{
		"version": 2, "depth": 8,
		"columns": [10, 10, 10, 10],
		"rows": [5, 5],
		"patches": [
			{"cell": [1, 1, 1, 2]},
			64,
			128
		]
	}`)

	rects := []image.Rectangle{
		image.Rect(0, 0, 20, 5),
		image.Rect(20, 0, 40, 5),
		image.Rect(0, 5, 20, 10),
	}
	for i, c := range l.Root.Children {
		if c.Rect != rects[i] {
			t.Errorf("child %d rect = %v, want %v", i, c.Rect, rects[i])
		}
	}
	if !l.Root.Children[1].IsFill() {
		t.Errorf("child 1 should be a bare fill")
	}
}

func TestResolveParentAxis(t *testing.T) {
	l := mustLayout(t, `{
		"version": 2, "depth": 8,
		"columns": [10, 20, 30],
		"rows": [8],
		"spacing": [0, 2],
		"patches": [
			{
				"cell": [1, 1, 1, 3],
				"columns": "parent",
				"rows": [8],
				"patches": [1, 2, 3]
			}
		]
	}`)

	child := l.Root.Children[0]
	if child.Rect != image.Rect(0, 0, 64, 8) {
		t.Fatalf("child rect = %v, want (0,0)-(64,8)", child.Rect)
	}
	if got := child.Grid.Cols.Sizes; len(got) != 3 || got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Fatalf("delegated sizes = %v", got)
	}
	if child.Grid.Cols.Spacing != 2 {
		t.Errorf("inherited spacing = %d, want 2", child.Grid.Cols.Spacing)
	}

	// Grandchildren line up with the parent's cell boundaries.
	want := []image.Rectangle{
		image.Rect(0, 0, 10, 8),
		image.Rect(12, 0, 32, 8),
		image.Rect(34, 0, 64, 8),
	}
	for i, g := range child.Children {
		if g.Rect != want[i] {
			t.Errorf("grandchild %d rect = %v, want %v", i, g.Rect, want[i])
		}
	}
}

func TestResolveParentAtRoot(t *testing.T) {
	err := layoutErr(t, `{"depth": 8, "columns": "parent", "rows": [10]}`)
	if !errors.Is(err, errors.ErrCodeParentGrid) {
		t.Fatalf("error = %v, want %v", err, errors.ErrCodeParentGrid)
	}
	if got := errors.GetPath(err); got != "columns" {
		t.Errorf("path = %q, want %q", got, "columns")
	}
}

func TestResolveDefaultGrid(t *testing.T) {
	l := mustLayout(t, `{
		"version": 2, "depth": 8,
		"columns": [40], "rows": [30],
		"patches": [
			{"patches": [200]}
		]
	}`)

	child := l.Root.Children[0]
	if child.Grid == nil {
		t.Fatalf("child grid not resolved")
	}
	if child.Grid.Cols.Cells() != 1 || child.Grid.Rows.Cells() != 1 {
		t.Fatalf("default grid = %dx%d cells, want 1x1",
			child.Grid.Rows.Cells(), child.Grid.Cols.Cells())
	}
	if got := child.Children[0].Rect; got != image.Rect(0, 0, 40, 30) {
		t.Errorf("grandchild rect = %v, want the full patch", got)
	}
}

func TestResolveAliasCrossCheck(t *testing.T) {
	if _, err := Resolve(mustDoc(t, `{"depth": 8,
		"width": 350, "columns": [100, 200, 50], "height": 20, "rows": [20]}`)); err != nil {
		t.Fatalf("matching alias rejected: %v", err)
	}

	err := layoutErr(t, `{"depth": 8,
		"width": 351, "columns": [100, 200, 50], "height": 20}`)
	if !errors.Is(err, errors.ErrCodeGridSize) {
		t.Fatalf("error = %v, want %v", err, errors.ErrCodeGridSize)
	}
	if got := errors.GetPath(err); got != "width" {
		t.Errorf("path = %q, want %q", got, "width")
	}

	err = layoutErr(t, `{"version": 2, "depth": 8, "columns": [30], "rows": [30],
		"patches": [{"height": 31, "rows": [10, 20]}]}`)
	if got := errors.GetPath(err); got != "patches[0].height" {
		t.Errorf("nested path = %q, want %q", got, "patches[0].height")
	}
}

func TestResolveGridOverflow(t *testing.T) {
	err := layoutErr(t, `{"version": 2, "depth": 8, "columns": [10], "rows": [10],
		"patches": [{"columns": [20], "rows": [5]}]}`)
	if !errors.Is(err, errors.ErrCodeGridSize) {
		t.Fatalf("error = %v, want %v", err, errors.ErrCodeGridSize)
	}
	if got := errors.GetPath(err); got != "patches[0].columns" {
		t.Errorf("path = %q, want %q", got, "patches[0].columns")
	}

	// Underfill is legal; the spare interior keeps the background.
	if _, err := Resolve(mustDoc(t, `{"version": 2, "depth": 8,
		"columns": [10], "rows": [10],
		"patches": [{"columns": [5], "rows": [5]}]}`)); err != nil {
		t.Fatalf("underfilled grid rejected: %v", err)
	}
}

func TestResolvePlacementErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		path string
	}{
		{
			name: "cell beyond columns",
			in: `{"version": 2, "depth": 8, "columns": [10, 10], "rows": [10],
				"patches": [{"cell": [1, 3]}]}`,
			path: "patches[0]",
		},
		{
			name: "wrap past the last row",
			in: `{"version": 2, "depth": 8, "columns": [10], "rows": [10],
				"patches": [{"color": 1}, {"color": 2}]}`,
			path: "patches[1]",
		},
		{
			name: "overlapping siblings",
			in: `{"version": 2, "depth": 8, "columns": [10, 10], "rows": [10],
				"patches": [{"cell": [1, 1]}, {"cell": [1, 1]}]}`,
			path: "patches[1]",
		},
		{
			name: "right before left",
			in: `{"version": 2, "depth": 8, "columns": [10, 10, 10], "rows": [10],
				"patches": [{"left": 2, "right": 1}]}`,
			path: "patches[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := layoutErr(t, tt.in)
			if !errors.Is(err, errors.ErrCodePlacement) {
				t.Fatalf("error = %v, want %v", err, errors.ErrCodePlacement)
			}
			if got := errors.GetPath(err); got != tt.path {
				t.Errorf("path = %q, want %q", got, tt.path)
			}
		})
	}
}

func TestResolveBorderedChild(t *testing.T) {
	l := mustLayout(t, `{
		"version": 2, "depth": 8,
		"columns": [20], "rows": [16],
		"patches": [
			{"border": [3, 2], "patches": [50]}
		]
	}`)

	grand := l.Root.Children[0].Children[0]
	if grand.Rect != image.Rect(2, 3, 18, 13) {
		t.Errorf("grandchild rect = %v, want (2,3)-(18,13)", grand.Rect)
	}
}

func mustDoc(t *testing.T, in string) *tpat.Document {
	t.Helper()
	doc, err := tpat.Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := tpat.Validate(doc); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return doc
}
