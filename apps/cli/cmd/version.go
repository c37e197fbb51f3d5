package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/docsite/packages/artifact"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and artifact format information",
	Args:  usageArgs(cobra.NoArgs),
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "docsite %s (built %s, %s %s/%s)\n", version, buildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(w, "artifact format: %s v%d\n", artifact.FileName, artifact.FormatVersion)
	},
}
