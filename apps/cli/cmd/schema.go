package cmd

import (
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/docsite/packages/schema"
)

var schemaOutFlag string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the site descriptor",
	Long: `Print the JSON Schema that docsite validate checks descriptors against.
Point your editor at it for completion in docsite.yaml.

Examples:
  docsite schema
  docsite schema --out docsite.schema.json`,
	Args: usageArgs(cobra.NoArgs),
	RunE: schemaCommand,
}

func init() {
	schemaCmd.Flags().StringVar(&schemaOutFlag, "out", "", "Write the schema to this file instead of stdout")
}

func schemaCommand(cmd *cobra.Command, args []string) error {
	data, err := schema.JSON()
	if err != nil {
		return err
	}

	if schemaOutFlag == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := renameio.WriteFile(schemaOutFlag, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", schemaOutFlag)
	return nil
}
