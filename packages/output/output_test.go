package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/docsite/packages/build"
	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/diff"
	"github.com/abdul-hamid-achik/docsite/packages/links"
)

var (
	warning = links.Finding{
		Kind:   links.KindLink,
		Source: "themeConfig.footer.links[0].items[0]",
		Target: "/docs/intro",
		Reason: "no page at /docs/intro",
	}
	cfgErr = &config.ConfigurationError{
		Source: "docsite.yaml",
		Violations: []config.Violation{
			{Field: "i18n.defaultLocale", Value: "fr", Message: "must be one of the locales [en]"},
		},
	}
)

func sampleResult() *build.Result {
	return &build.Result{
		ID:       "b1",
		Docs:     4,
		Routes:   []string{"/intro", "/category/installation"},
		Report:   &links.Report{Warnings: []links.Finding{warning}},
		Artifact: "build/site-config.json",
		Stages:   []build.Stage{{Name: "docs", Duration: 3 * time.Millisecond}},
		Duration: 12 * time.Millisecond,
	}
}

func newConsole(buf *bytes.Buffer, verbose bool) *ConsoleFormatter {
	return NewConsoleFormatter(WithWriter(buf), WithVerbose(verbose), WithNoColor(true))
}

func TestConsoleValidation(t *testing.T) {
	var buf bytes.Buffer
	f := newConsole(&buf, true)

	f.FormatValidation("docsite.yaml", nil)
	f.FormatValidation("broken.yaml", cfgErr)
	f.FormatValidation("missing.yaml", &config.ResourceNotFoundError{
		Field: "docs.customCss", Path: "./src/css/custom.css", Resolved: "/site/src/css/custom.css",
	})

	out := buf.String()
	assert.Contains(t, out, "✓ Valid: docsite.yaml")
	assert.Contains(t, out, "✗ Invalid: broken.yaml")
	assert.Contains(t, out, "→ i18n.defaultLocale: must be one of the locales [en]")
	assert.Contains(t, out, "Value: fr")
	assert.Contains(t, out, "→ docs.customCss: ./src/css/custom.css not found")
	assert.Contains(t, out, "Looked at: /site/src/css/custom.css")
}

func TestConsoleBuild(t *testing.T) {
	tests := []struct {
		name     string
		result   func() *build.Result
		err      error
		contains []string
		excludes []string
	}{
		{
			name:   "success with warning",
			result: sampleResult,
			contains: []string{
				"Build b1",
				"! themeConfig.footer.links[0].items[0] /docs/intro",
				"no page at /docs/intro",
				"Docs:   4",
				"Routes: 2",
				"1 warning(s)",
				"Wrote build/site-config.json",
			},
		},
		{
			name: "broken links",
			result: func() *build.Result {
				r := sampleResult()
				r.Report = &links.Report{Errors: []links.Finding{warning}}
				r.Artifact = ""
				return r
			},
			err:      &links.BrokenLinksError{Findings: []links.Finding{warning}},
			contains: []string{"✗ themeConfig.footer.links[0].items[0]", "1 broken", "Build failed: broken links"},
			excludes: []string{"Wrote"},
		},
		{
			name: "configuration error",
			result: func() *build.Result {
				return &build.Result{ID: "b2"}
			},
			err:      cfgErr,
			contains: []string{"Build failed", "→ i18n.defaultLocale"},
			excludes: []string{"Docs:"},
		},
		{
			name: "dry run",
			result: func() *build.Result {
				r := sampleResult()
				r.Artifact = ""
				return r
			},
			contains: []string{"dry run, nothing written"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newConsole(&buf, false).FormatBuild(tt.result(), tt.err)

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestConsoleBuildVerboseStages(t *testing.T) {
	var buf bytes.Buffer
	newConsole(&buf, true).FormatBuild(sampleResult(), nil)
	assert.Contains(t, buf.String(), "• docs (3ms)")
}

func TestConsoleDiff(t *testing.T) {
	var buf bytes.Buffer
	f := newConsole(&buf, false)

	f.FormatDiff("a.yaml", "b.yaml", nil)
	assert.Contains(t, buf.String(), "Duplicate: a.yaml and b.yaml describe the same site")

	buf.Reset()
	f.FormatDiff("a.yaml", "b.yaml", []diff.Difference{{Path: "title", Left: `"A"`, Right: `"B"`}})
	assert.Contains(t, buf.String(), "~ title")
	assert.Contains(t, buf.String(), `- "A"`)
	assert.Contains(t, buf.String(), `+ "B"`)
	assert.Contains(t, buf.String(), "1 difference(s)")
}

func TestConsoleHeaderAndError(t *testing.T) {
	var buf bytes.Buffer
	f := newConsole(&buf, false)

	f.FormatHeader("1.2.0")
	f.FormatError(errors.New("boom"))

	assert.Equal(t, "docsite 1.2.0\nError: boom\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatHeader("1.2.0")
	f.FormatValidation("docsite.yaml", nil)
	f.FormatValidation("broken.yaml", cfgErr)
	f.FormatBuild(sampleResult(), nil)
	f.FormatDiff("a.yaml", "b.yaml", nil)
	f.FormatError(errors.New("boom"))
	require.NoError(t, f.Flush())

	doc := buf.String()
	assert.Equal(t, "1.2.0", gjson.Get(doc, "version").String())
	assert.True(t, gjson.Get(doc, "validation.0.valid").Bool())
	assert.False(t, gjson.Get(doc, "validation.1.valid").Bool())
	assert.Equal(t, "i18n.defaultLocale", gjson.Get(doc, "validation.1.violations.0.field").String())
	assert.Equal(t, "fr", gjson.Get(doc, "validation.1.violations.0.value").String())
	assert.True(t, gjson.Get(doc, "build.succeeded").Bool())
	assert.Equal(t, int64(4), gjson.Get(doc, "build.docs").Int())
	assert.Equal(t, "/docs/intro", gjson.Get(doc, "build.warnings.0.target").String())
	assert.Equal(t, "docs", gjson.Get(doc, "build.stages.0.name").String())
	assert.True(t, gjson.Get(doc, "diff.duplicate").Bool())
	assert.Equal(t, "boom", gjson.Get(doc, "errors.0").String())
	assert.True(t, gjson.Get(doc, "time").Exists())
}

func TestJSONFormatterBuildFailure(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	r := sampleResult()
	r.Report = &links.Report{Errors: []links.Finding{warning}}
	f.FormatBuild(r, &links.BrokenLinksError{Findings: r.Report.Errors})
	require.NoError(t, Flush(f))

	assert.False(t, gjson.Get(buf.String(), "build.succeeded").Bool())
	assert.Contains(t, gjson.Get(buf.String(), "build.error").String(), "1 broken link(s)")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	f, err := New("", &buf, false, true)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleFormatter{}, f)
	assert.NoError(t, Flush(f))

	f, err = New(FormatJSON, &buf, false, true)
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	_, err = New("junit", &buf, false, true)
	assert.Error(t, err)
}
