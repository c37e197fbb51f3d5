package output

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/docsite/packages/build"
	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/diff"
	"github.com/abdul-hamid-achik/docsite/packages/links"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Version    string           `json:"version,omitempty"`
	Validation []JSONValidation `json:"validation,omitempty"`
	Build      *JSONBuild       `json:"build,omitempty"`
	Diff       *JSONDiff        `json:"diff,omitempty"`
	Errors     []string         `json:"errors,omitempty"`
	Time       string           `json:"time"`
}

// JSONValidation represents the result of loading one descriptor
type JSONValidation struct {
	Source     string          `json:"source"`
	Valid      bool            `json:"valid"`
	Violations []JSONViolation `json:"violations,omitempty"`
	Error      string          `json:"error,omitempty"`
}

type JSONViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// JSONBuild represents a pipeline run
type JSONBuild struct {
	ID        string          `json:"id"`
	Succeeded bool            `json:"succeeded"`
	Docs      int             `json:"docs"`
	Routes    []string        `json:"routes,omitempty"`
	Artifact  string          `json:"artifact,omitempty"`
	Warnings  []links.Finding `json:"warnings,omitempty"`
	Errors    []links.Finding `json:"errors,omitempty"`
	Stages    []JSONStage     `json:"stages,omitempty"`
	Duration  float64         `json:"duration"`
	Error     string          `json:"error,omitempty"`
}

type JSONStage struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
}

type JSONDiff struct {
	Left        string            `json:"left"`
	Right       string            `json:"right"`
	Duplicate   bool              `json:"duplicate"`
	Differences []diff.Difference `json:"differences,omitempty"`
}

// JSONFormatter formats results as a single JSON document written by Flush
type JSONFormatter struct {
	writer io.Writer
	output JSONOutput
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatHeader(version string) {
	f.output.Version = version
}

func (f *JSONFormatter) FormatValidation(source string, err error) {
	v := JSONValidation{Source: source, Valid: err == nil}
	if err != nil {
		v.Error = err.Error()
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			for _, violation := range cfgErr.Violations {
				v.Violations = append(v.Violations, JSONViolation{
					Field:   violation.Field,
					Message: violation.Message,
					Value:   violation.Value,
				})
			}
		}
	}
	f.output.Validation = append(f.output.Validation, v)
}

func (f *JSONFormatter) FormatBuild(result *build.Result, err error) {
	if result == nil {
		f.FormatError(err)
		return
	}

	b := &JSONBuild{
		ID:        result.ID,
		Succeeded: err == nil,
		Docs:      result.Docs,
		Routes:    result.Routes,
		Artifact:  result.Artifact,
		Duration:  float64(result.Duration.Milliseconds()),
	}
	if result.Report != nil {
		b.Warnings = result.Report.Warnings
		b.Errors = result.Report.Errors
	}
	for _, s := range result.Stages {
		b.Stages = append(b.Stages, JSONStage{Name: s.Name, Duration: float64(s.Duration.Milliseconds())})
	}
	if err != nil {
		b.Error = err.Error()
	}
	f.output.Build = b
}

func (f *JSONFormatter) FormatDiff(left, right string, diffs []diff.Difference) {
	f.output.Diff = &JSONDiff{
		Left:        left,
		Right:       right,
		Duplicate:   len(diffs) == 0,
		Differences: diffs,
	}
}

func (f *JSONFormatter) FormatError(err error) {
	if err != nil {
		f.output.Errors = append(f.output.Errors, err.Error())
	}
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush() error {
	f.output.Time = time.Now().Format(time.RFC3339)

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(f.output)
}
