package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/docsite/packages/build"
	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/links"
	"github.com/abdul-hamid-achik/docsite/packages/log"
	"github.com/abdul-hamid-achik/docsite/packages/output"
	"github.com/abdul-hamid-achik/docsite/packages/watch"
)

var (
	buildOutFlag         string
	buildDryRunFlag      bool
	buildExternalFlag    bool
	buildWatchFlag       bool
	buildRateFlag        float64
	buildConcurrencyFlag int
)

var buildCmd = &cobra.Command{
	Use:   "build [config|directory]",
	Short: "Check the site and write the descriptor artifact",
	Long: `Load the site descriptor, scan the docs, check sidebars and links, then
write build/site-config.json for the site renderer.

Broken links are reported as warnings or errors according to onBrokenLinks
and onBrokenMarkdownLinks. Under the "error" policy the build fails and
nothing is written.

Examples:
  docsite build
  docsite build ./website --out dist
  docsite build --dry-run --external --rate 5
  docsite build --watch`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: buildCommand,
}

func init() {
	buildCmd.Flags().StringVar(&buildOutFlag, "out", "", "Output directory (default <site>/build)")
	buildCmd.Flags().BoolVar(&buildDryRunFlag, "dry-run", false, "Run every check without writing the artifact")
	buildCmd.Flags().BoolVar(&buildExternalFlag, "external", false, "Probe external links over HTTP")
	buildCmd.Flags().BoolVarP(&buildWatchFlag, "watch", "w", false, "Rebuild when the site changes")
	buildCmd.Flags().Float64Var(&buildRateFlag, "rate", 10, "Max external link requests per second (0 for unlimited)")
	buildCmd.Flags().IntVar(&buildConcurrencyFlag, "concurrency", 4, "Max concurrent external link requests")
}

func buildCommand(cmd *cobra.Command, args []string) error {
	location := target(cmd, args)
	if _, err := output.New(settings.Output, cmd.OutOrStdout(), false, true); err != nil {
		return &usageError{err: err}
	}
	if buildWatchFlag && location == BuiltinName {
		return &usageError{err: fmt.Errorf("--watch needs a descriptor file")}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := runBuild(ctx, cmd, location)
	if !buildWatchFlag {
		return reported(err)
	}
	return watchBuild(ctx, cmd, location)
}

// watchBuild rebuilds on every change until ctx is done. The watched paths are
// recomputed after each rebuild, so fixing a broken descriptor or pointing it
// at other files takes effect without a restart.
func watchBuild(ctx context.Context, cmd *cobra.Command, location string) error {
	logger := log.WithComponent("watch")
	for {
		paths := watchTargets(location)
		logger.Debug().Strs("paths", paths).Msg("watching")

		wctx, cancel := context.WithCancel(ctx)
		reload := false
		w := watch.New(paths, watch.WithLogger(logger))
		fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
		err := w.Run(wctx, func(ctx context.Context, changed []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "\nChanged: %s\nRebuilding...\n\n", changed[0])
			_ = runBuild(ctx, cmd, location)
			if !slices.Equal(paths, watchTargets(location)) {
				reload = true
				cancel()
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
		})
		cancel()
		if err != nil || !reload {
			return err
		}
	}
}

// runBuild loads the descriptor and runs one build, reporting through a fresh
// formatter.
func runBuild(ctx context.Context, cmd *cobra.Command, location string) error {
	formatter, err := newFormatter(cmd)
	if err != nil {
		return err
	}

	d, err := loadDescriptor(location)
	if err != nil {
		formatter.FormatBuild(nil, err)
		_ = output.Flush(formatter)
		return err
	}

	opts := build.Options{
		Root:     d.Root,
		OutDir:   buildOutFlag,
		DryRun:   buildDryRunFlag,
		External: buildExternalFlag,
		Logger: log.Derive(func(c *zerolog.Context) {
			*c = c.Str("component", "build").Str("source", d.Source)
		}),
	}
	if buildExternalFlag {
		opts.Prober = links.NewProber(
			links.WithRate(buildRateFlag, buildConcurrencyFlag),
			links.WithConcurrency(buildConcurrencyFlag),
			links.WithUserAgent("docsite/"+version),
		)
	}

	result, err := build.Run(ctx, d.Site, opts)
	formatter.FormatBuild(result, err)
	if flushErr := output.Flush(formatter); flushErr != nil && err == nil {
		err = flushErr
	}
	return err
}

// watchTargets lists the existing files and directories a build of location
// reads. When the descriptor cannot be loaded only the descriptor itself, or
// the directory it should appear in, is watched.
func watchTargets(location string) []string {
	d, err := loadDescriptor(location, config.WithoutResourceCheck())
	if err != nil {
		if file, err := resolveFile(location); err == nil && exists(file) {
			return []string{file}
		}
		if exists(location) {
			return []string{location}
		}
		return []string{filepath.Dir(location)}
	}

	paths := []string{d.Source}
	candidates := []string{
		config.ResolvePath(d.Root, d.Site.Docs.Path),
		filepath.Join(d.Root, config.StaticDir),
	}
	if d.Site.Docs.SidebarPath != "" {
		candidates = append(candidates, config.ResolvePath(d.Root, d.Site.Docs.SidebarPath))
	}
	if d.Site.Docs.CustomCSS != "" {
		candidates = append(candidates, config.ResolvePath(d.Root, d.Site.Docs.CustomCSS))
	}
	for _, p := range candidates {
		if exists(p) {
			paths = append(paths, p)
		}
	}
	return paths
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
