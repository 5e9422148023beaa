package render

import (
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	l := mustLayout(t, `{
		"version": 2, "depth": 8,
		"columns": [4, 4], "rows": [4, 4],
		"hramp": [0, 255],
		"patches": [
			{"vsquare": [2, 0, 255], "columns": [2, 2], "rows": [4], "patches": [30]},
			128,
			{"hsine": [8, 2, 0, 255]},
			{"color": 5, "image": "logo.png"}
		]
	}`)

	dot := ToDOT(l)

	if !strings.HasPrefix(dot, "digraph layout {\n") {
		t.Fatalf("ToDOT() does not open a digraph:\n%s", dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Fatalf("ToDOT() does not close the digraph:\n%s", dot)
	}

	wantLines := []string{
		`"root" [label="root\n0,0 8x8\nhramp\ngrid 2x2"];`,
		`"patches[0]" [label="patches[0]\n0,0 4x4\nvsquare\ngrid 1x2"];`,
		`"patches[1]" [label="patches[1]\n4,0 4x4\nfill [128 128 128]", style="rounded,filled,dashed", fillcolor=lightgrey];`,
		`"patches[2]" [label="patches[2]\n0,4 4x4\nhsine sweep"];`,
		`"patches[3]" [label="patches[3]\n4,4 4x4\ncolor\nimage logo.png"];`,
		`"root" -> "patches[0]";`,
		`"root" -> "patches[1]";`,
		`"root" -> "patches[2]";`,
		`"root" -> "patches[3]";`,
		`"patches[0]" -> "patches[0].patches[0]";`,
	}
	for _, want := range wantLines {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTFillNodesDashed(t *testing.T) {
	l := mustLayout(t, `{"depth": 8, "columns": [2], "rows": [2], "subpatches": [9]}`)

	dot := ToDOT(l)
	if !strings.Contains(dot, `style="rounded,filled,dashed"`) {
		t.Errorf("fill node is not dashed:\n%s", dot)
	}
	if strings.Count(dot, "->") != 1 {
		t.Errorf("want exactly one edge:\n%s", dot)
	}
}
