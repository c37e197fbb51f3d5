package build

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/docsite/packages/artifact"
	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/links"
)

const sidebarsYAML = `
guide:
  - intro
  - type: category
    label: Installation
    link: {type: generated-index}
    items:
      - installation/docker
  - type: category
    label: Operations
    link: {type: generated-index}
    items:
      - operations/start
  - type: category
    label: Modules
    link: {type: generated-index}
    items:
      - type: autogenerated
        dirName: modules
`

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

// newSite lays out a site for the default descriptor, loads it and returns
// the root and the loaded descriptor.
func newSite(t *testing.T, mutate func(c *config.SiteConfig)) (string, *config.SiteConfig) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "sidebars.yaml", sidebarsYAML)
	writeFile(t, root, "src/css/custom.css", ":root {}\n")
	writeFile(t, root, "static/img/red-circle.png", "png")
	writeFile(t, root, "docs/intro.md", "# Sisyphus\n\nStart with [Docker](installation/docker.md).\n")
	writeFile(t, root, "docs/installation/docker.md", "# Docker\n\nBack to the [intro](../intro.md).\n")
	writeFile(t, root, "docs/operations/start.md", "# Starting jobs\n\n![logo](/img/red-circle.png)\n")
	writeFile(t, root, "docs/modules/ffmpeg.md", "# ffmpeg\n\nSee [operations](/category/operations).\n")

	site := config.Default()
	site.ThemeConfig.Footer.Links[0].Items[0].To = "/intro"
	if mutate != nil {
		mutate(site)
	}
	loaded, err := config.Load(site, config.WithRoot(root))
	require.NoError(t, err)
	return root, loaded
}

func TestRunDefaultSite(t *testing.T) {
	root, site := newSite(t, nil)

	result, err := Run(context.Background(), site, Options{Root: root, Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 4, result.Docs)
	assert.Equal(t, []string{"guide"}, result.Sidebars)
	assert.Empty(t, result.Report.Warnings)
	assert.Empty(t, result.Report.Errors)
	assert.Contains(t, result.Routes, "/category/installation")
	assert.Contains(t, result.Routes, "/modules/ffmpeg")

	names := make([]string, len(result.Stages))
	for i, s := range result.Stages {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"resources", "docs", "sidebars", "links", "artifact"}, names)

	require.Equal(t, filepath.Join(root, DefaultOutDir, artifact.FileName), result.Artifact)
	a, err := artifact.Read(result.Artifact)
	require.NoError(t, err)
	assert.Equal(t, result.ID, a.BuildID)
	assert.Equal(t, site, a.Site)
	assert.Equal(t, "Copyright © 2026 JamesTheBard. Built with Docusaurus.", a.Copyright)
}

func TestRunBrokenLinkPolicies(t *testing.T) {
	tests := []struct {
		name       string
		policy     config.BrokenLinkPolicy
		wantErr    bool
		wantWarn   int
		wantErrors int
	}{
		{name: "warn records a warning and completes", policy: config.PolicyWarn, wantWarn: 1},
		{name: "error aborts before the artifact", policy: config.PolicyError, wantErr: true, wantErrors: 1},
		{name: "ignore records nothing", policy: config.PolicyIgnore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, site := newSite(t, func(c *config.SiteConfig) {
				c.OnBrokenLinks = tt.policy
				c.ThemeConfig.Footer.Links[0].Items[0].To = "/docs/intro"
			})
			out := filepath.Join(t.TempDir(), "out")

			result, err := Run(context.Background(), site, Options{Root: root, OutDir: out})
			require.NotNil(t, result)
			require.NotNil(t, result.Report)
			assert.Len(t, result.Report.Warnings, tt.wantWarn)
			assert.Len(t, result.Report.Errors, tt.wantErrors)

			_, statErr := os.Stat(artifact.Path(out))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, links.ErrBrokenLinks)
				assert.Equal(t, "/docs/intro", result.Report.Errors[0].Target)
				assert.Empty(t, result.Artifact)
				assert.ErrorIs(t, statErr, os.ErrNotExist)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, statErr)
		})
	}
}

func TestRunBrokenMarkdownLink(t *testing.T) {
	root, site := newSite(t, func(c *config.SiteConfig) {
		c.OnBrokenLinks = config.PolicyError
		c.OnBrokenMarkdownLinks = config.PolicyWarn
	})
	writeFile(t, root, "docs/operations/stop.md", "# Stop\n\nSee [restart](./restart.md).\n")

	result, err := Run(context.Background(), site, Options{Root: root, DryRun: true})
	require.NoError(t, err)

	require.Len(t, result.Report.Warnings, 1)
	assert.Equal(t, links.KindMarkdown, result.Report.Warnings[0].Kind)
	assert.Equal(t, "docs/operations/stop.md", result.Report.Warnings[0].Source)
}

func TestRunDryRun(t *testing.T) {
	root, site := newSite(t, nil)

	result, err := Run(context.Background(), site, Options{Root: root, DryRun: true})
	require.NoError(t, err)

	assert.Empty(t, result.Artifact)
	_, err = os.Stat(filepath.Join(root, DefaultOutDir))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunConfigurationErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *config.SiteConfig)
		setup     func(t *testing.T, root string)
		wantField string
	}{
		{
			name: "unknown sidebar id",
			mutate: func(c *config.SiteConfig) {
				c.ThemeConfig.Navbar.Items = append(c.ThemeConfig.Navbar.Items,
					config.NavItem{Type: config.NavItemDocSidebar, SidebarID: "api", Label: "API"})
			},
			wantField: "themeConfig.navbar.items[4].sidebarId",
		},
		{
			name: "sidebar item without sidebar file",
			mutate: func(c *config.SiteConfig) {
				c.Docs.SidebarPath = ""
				c.ThemeConfig.Navbar.Items = []config.NavItem{
					{Type: config.NavItemDocSidebar, SidebarID: "guide", Label: "Guide"},
				}
			},
			wantField: "themeConfig.navbar.items[0].sidebarId",
		},
		{
			name: "sidebar references missing doc",
			setup: func(t *testing.T, root string) {
				require.NoError(t, os.Remove(filepath.Join(root, "docs", "operations", "start.md")))
			},
			wantField: "docs.sidebarPath",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, site := newSite(t, tt.mutate)
			if tt.setup != nil {
				tt.setup(t, root)
			}

			_, err := Run(context.Background(), site, Options{Root: root, DryRun: true})
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrConfiguration)

			var cfgErr *config.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.True(t, cfgErr.HasField(tt.wantField), cfgErr.Error())
		})
	}
}

func TestRunMissingDocsDirectory(t *testing.T) {
	root, site := newSite(t, nil)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "docs")))

	result, err := Run(context.Background(), site, Options{Root: root})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrResourceNotFound)
	assert.Len(t, result.Stages, 2)
}

func TestRunMissingResource(t *testing.T) {
	root, site := newSite(t, nil)
	require.NoError(t, os.Remove(filepath.Join(root, "src", "css", "custom.css")))

	_, err := Run(context.Background(), site, Options{Root: root})
	assert.ErrorIs(t, err, config.ErrResourceNotFound)
}

func TestRunExternalLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	root, site := newSite(t, func(c *config.SiteConfig) {
		c.ThemeConfig.Navbar.Items[3].Href = srv.URL + "/repo"
		c.ThemeConfig.Footer.Links[1].Items[0].Href = srv.URL + "/gone"
		c.ThemeConfig.Footer.Links[2].Items = nil
	})

	prober := links.NewProber(links.WithHTTPClient(srv.Client()), links.WithRate(0, 1))
	result, err := Run(context.Background(), site, Options{Root: root, DryRun: true, External: true, Prober: prober})
	require.NoError(t, err)

	require.Len(t, result.Report.Warnings, 1)
	assert.Equal(t, links.KindExternal, result.Report.Warnings[0].Kind)
	assert.Equal(t, srv.URL+"/gone", result.Report.Warnings[0].Target)
}

func TestRunCancelled(t *testing.T) {
	root, site := newSite(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, site, Options{Root: root})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Stages)
}

func TestRunNilSite(t *testing.T) {
	_, err := Run(context.Background(), nil, Options{})
	assert.Error(t, err)
}
