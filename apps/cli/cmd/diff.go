package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/diff"
	"github.com/abdul-hamid-achik/docsite/packages/output"
)

var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare two site descriptors",
	Long: `Load two site descriptors, apply defaults, and list every field that differs.
Two descriptors with no differences describe the same site. Use :builtin for
the built-in canonical descriptor.

Referenced files are not checked.

Examples:
  docsite diff docsite.yaml :builtin
  docsite diff ./site-a ./site-b
  docsite diff a.yaml b.json -o json`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: diffCommand,
}

func diffCommand(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter(cmd)
	if err != nil {
		return err
	}

	left, err := loadDescriptor(args[0], config.WithoutResourceCheck())
	if err != nil {
		return fail(formatter, err)
	}
	right, err := loadDescriptor(args[1], config.WithoutResourceCheck())
	if err != nil {
		return fail(formatter, err)
	}

	formatter.FormatDiff(left.Source, right.Source, diff.Compare(left.Site, right.Site))
	return output.Flush(formatter)
}
