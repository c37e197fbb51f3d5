package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/docsite/packages/build"
	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/diff"
	"github.com/abdul-hamid-achik/docsite/packages/links"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool

	green, red, yellow, cyan, bold func(a ...any) string
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.green = f.paint(color.FgGreen)
	f.red = f.paint(color.FgRed)
	f.yellow = f.paint(color.FgYellow)
	f.cyan = f.paint(color.FgCyan)
	f.bold = f.paint(color.Bold)
	return f
}

func (f *ConsoleFormatter) paint(attr color.Attribute) func(a ...any) string {
	c := color.New(attr)
	if f.noColor {
		c.DisableColor()
	}
	return c.SprintFunc()
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatValidation(source string, err error) {
	if err == nil {
		fmt.Fprintf(f.writer, "%s Valid: %s\n", f.green("✓"), source)
		return
	}
	fmt.Fprintf(f.writer, "%s Invalid: %s\n", f.red("✗"), source)
	f.formatCause(err)
}

// formatCause prints the details of a load error, one line per violation.
func (f *ConsoleFormatter) formatCause(err error) {
	var cfgErr *config.ConfigurationError
	var resErr *config.ResourceNotFoundError
	switch {
	case errors.As(err, &cfgErr) && len(cfgErr.Violations) > 0:
		for _, v := range cfgErr.Violations {
			fmt.Fprintf(f.writer, "    %s %s: %s\n", f.red("→"), v.Field, v.Message)
			if f.verbose && v.Value != nil {
				fmt.Fprintf(f.writer, "      Value: %v\n", v.Value)
			}
		}
	case errors.As(err, &resErr):
		fmt.Fprintf(f.writer, "    %s %s: %s not found\n", f.red("→"), resErr.Field, resErr.Path)
		if f.verbose {
			fmt.Fprintf(f.writer, "      Looked at: %s\n", resErr.Resolved)
		}
	default:
		fmt.Fprintf(f.writer, "    %s %v\n", f.red("→"), err)
	}
}

func (f *ConsoleFormatter) FormatBuild(result *build.Result, err error) {
	if result == nil {
		f.FormatError(err)
		return
	}

	fmt.Fprintf(f.writer, "\n%s\n\n", f.bold("Build "+result.ID))

	if f.verbose {
		for _, s := range result.Stages {
			fmt.Fprintf(f.writer, "  %s %s %s\n", f.cyan("•"), s.Name, f.cyan(fmt.Sprintf("(%dms)", s.Duration.Milliseconds())))
		}
		fmt.Fprintf(f.writer, "\n")
	}

	if result.Report != nil {
		for _, w := range result.Report.Warnings {
			f.formatFinding(f.yellow("!"), w)
		}
		for _, e := range result.Report.Errors {
			f.formatFinding(f.red("✗"), e)
		}
		if len(result.Report.Warnings)+len(result.Report.Errors) > 0 {
			fmt.Fprintf(f.writer, "\n")
		}
	}

	var blErr *links.BrokenLinksError
	if err != nil && !errors.As(err, &blErr) {
		fmt.Fprintf(f.writer, "%s\n", f.red("Build failed"))
		f.formatCause(err)
		fmt.Fprintf(f.writer, "\n")
		return
	}

	fmt.Fprintf(f.writer, "Docs:   %d\n", result.Docs)
	fmt.Fprintf(f.writer, "Routes: %d\n", len(result.Routes))
	if result.Report != nil {
		fmt.Fprintf(f.writer, "Links:  ")
		if n := len(result.Report.Warnings); n > 0 {
			fmt.Fprintf(f.writer, "%s, ", f.yellow(fmt.Sprintf("%d warning(s)", n)))
		}
		if n := len(result.Report.Errors); n > 0 {
			fmt.Fprintf(f.writer, "%s, ", f.red(fmt.Sprintf("%d broken", n)))
		}
		fmt.Fprintf(f.writer, "checked\n")
	}
	fmt.Fprintf(f.writer, "Time:   %dms\n", result.Duration.Milliseconds())

	switch {
	case err != nil:
		fmt.Fprintf(f.writer, "\n%s\n\n", f.red("Build failed: broken links"))
	case result.Artifact != "":
		fmt.Fprintf(f.writer, "\n%s %s\n\n", f.green("Wrote"), result.Artifact)
	default:
		fmt.Fprintf(f.writer, "\n%s\n\n", f.green("Checks passed (dry run, nothing written)"))
	}
}

func (f *ConsoleFormatter) formatFinding(symbol string, finding links.Finding) {
	fmt.Fprintf(f.writer, "  %s %s %s\n", symbol, finding.Source, finding.Target)
	fmt.Fprintf(f.writer, "      %s\n", finding.Reason)
}

func (f *ConsoleFormatter) FormatDiff(left, right string, diffs []diff.Difference) {
	if len(diffs) == 0 {
		fmt.Fprintf(f.writer, "%s %s and %s describe the same site; remove one of them\n",
			f.yellow("Duplicate:"), left, right)
		return
	}

	fmt.Fprintf(f.writer, "%s\n", f.bold(fmt.Sprintf("%s vs %s", left, right)))
	for _, d := range diffs {
		fmt.Fprintf(f.writer, "  %s %s\n", f.cyan("~"), d.Path)
		fmt.Fprintf(f.writer, "      %s %s\n", f.red("-"), d.Left)
		fmt.Fprintf(f.writer, "      %s %s\n", f.green("+"), d.Right)
	}
	fmt.Fprintf(f.writer, "\n%d difference(s)\n", len(diffs))
}

func (f *ConsoleFormatter) FormatError(err error) {
	fmt.Fprintf(f.writer, "%s %v\n", f.red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	fmt.Fprintf(f.writer, "%s %s\n", f.bold("docsite"), version)
}
