package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/output"
)

var (
	showFormat string
	showPath   string
)

var showCmd = &cobra.Command{
	Use:   "show [config|directory]",
	Short: "Print the loaded descriptor with defaults applied",
	Long: `Print the loaded site descriptor, with every default filled in.

Use --path to print a single value. Paths use gjson syntax over the JSON form
of the descriptor.

Examples:
  docsite show
  docsite show --format json
  docsite show --builtin --path themeConfig.navbar.items.#.label
  docsite show --path i18n.defaultLocale`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: showCommand,
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "yaml", "Output format: yaml, json")
	showCmd.Flags().StringVar(&showPath, "path", "", "Print only the value at this path")
}

func showCommand(cmd *cobra.Command, args []string) error {
	format := config.Format(showFormat)
	if format != config.FormatYAML && format != config.FormatJSON {
		return &usageError{err: fmt.Errorf("unknown format %q (use yaml or json)", showFormat)}
	}

	// errors go through the formatter so -o json stays parseable; the
	// descriptor itself is printed in --format
	formatter, err := output.New(settings.Output, cmd.OutOrStdout(), settings.Verbose, settings.NoColor)
	if err != nil {
		return &usageError{err: err}
	}

	d, err := loadDescriptor(target(cmd, args), config.WithoutResourceCheck())
	if err != nil {
		return fail(formatter, err)
	}

	if showPath != "" {
		data, err := d.Site.Marshal(config.FormatJSON)
		if err != nil {
			return fail(formatter, err)
		}
		value := gjson.GetBytes(data, showPath)
		if !value.Exists() {
			return fail(formatter, fmt.Errorf("no value at path %q in %s", showPath, d.Source))
		}
		if value.IsObject() || value.IsArray() {
			fmt.Fprintln(cmd.OutOrStdout(), value.Raw)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), value.String())
		}
		return nil
	}

	data, err := d.Site.Marshal(format)
	if err != nil {
		return fail(formatter, err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
