package cli

import (
	"io"
	"testing"
)

func TestValidateCommand(t *testing.T) {
	doc := writeDescriptor(t, testDoc)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"validate", doc})
	if err := root.Execute(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateCommandInvalid(t *testing.T) {
	doc := writeDescriptor(t, `{"depth": 9, "width": 4, "height": 3}`)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetErr(io.Discard)
	root.SetArgs([]string{"validate", doc})
	if err := root.Execute(); err == nil {
		t.Fatal("invalid descriptor should fail validation")
	}
}

func TestValidateCommandUnresolvable(t *testing.T) {
	// Parses and passes semantic checks, but the cell reference points
	// outside the parent grid, which only resolution can see.
	doc := writeDescriptor(t, `{"version": 2, "depth": 8, "width": [2, 2], "height": 4, "patches": [{"color": 0, "cell": [1, 3]}]}`)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetErr(io.Discard)
	root.SetArgs([]string{"validate", doc})
	if err := root.Execute(); err == nil {
		t.Fatal("unresolvable descriptor should fail validation")
	}
}

func TestValidateCommandMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetErr(io.Discard)
	root.SetArgs([]string{"validate", "no-such.tpat"})
	if err := root.Execute(); err == nil {
		t.Fatal("missing file should fail validation")
	}
}
