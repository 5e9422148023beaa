package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/io"
	"github.com/yergin/test-pattern-descriptor/pkg/render"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// validateCommand creates the validate command for checking descriptors
// without rendering them.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a descriptor without rendering it",
		Long: `Validate parses a descriptor, checks its semantic rules, and resolves
its layout, reporting the first problem found. Nothing is rendered and no
files are written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

// runValidate reports whether the descriptor at input parses, validates,
// and resolves to a layout.
func runValidate(input string) error {
	doc, err := io.ImportDocument(input)
	if err != nil {
		return reportInvalid(input, err)
	}
	layout, err := render.Resolve(doc)
	if err != nil {
		return reportInvalid(input, err)
	}

	printSuccess("%s is valid", input)
	printKeyValue("Name", displayName(doc.Name, input))
	printKeyValue("Version", fmt.Sprintf("%d", doc.Version))
	printKeyValue("Depth", fmt.Sprintf("%d-bit", doc.Depth))
	printKeyValue("Size", fmt.Sprintf("%dx%d", layout.Width, layout.Height))
	if doc.Version < tpat.MaxVersion {
		printWarning("Version 1 descriptor; borders, spacing, and gratings need version 2")
	}
	return nil
}

// reportInvalid prints the failure details and returns a terse error so
// the process exits nonzero without repeating the full message.
func reportInvalid(input string, err error) error {
	printError("%s is invalid", input)
	if code := errors.GetCode(err); code != "" {
		printDetail("code %s", code)
	}
	printDetail("%s", errors.UserMessage(err))
	return fmt.Errorf("validation failed")
}
