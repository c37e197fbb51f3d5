package output

import (
	"fmt"
	"io"

	"github.com/abdul-hamid-achik/docsite/packages/build"
	"github.com/abdul-hamid-achik/docsite/packages/diff"
)

// Format names accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Formatter reports command results.
type Formatter interface {
	FormatHeader(version string)
	FormatValidation(source string, err error)
	FormatBuild(result *build.Result, err error)
	FormatDiff(left, right string, diffs []diff.Difference)
	FormatError(err error)
}

// Flushable is implemented by formatters that write everything at the end.
type Flushable interface {
	Flush() error
}

// New returns the formatter for format writing to w.
func New(format string, w io.Writer, verbose, noColor bool) (Formatter, error) {
	switch format {
	case "", FormatConsole:
		return NewConsoleFormatter(WithWriter(w), WithVerbose(verbose), WithNoColor(noColor)), nil
	case FormatJSON:
		return NewJSONFormatter(JSONWithWriter(w)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use %s or %s)", format, FormatConsole, FormatJSON)
	}
}

// Flush flushes f when it accumulates output.
func Flush(f Formatter) error {
	if flushable, ok := f.(Flushable); ok {
		return flushable.Flush()
	}
	return nil
}
