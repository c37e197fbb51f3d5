package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSiteDir creates the files the default descriptor references.
func newSiteDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "sidebars.yaml", "tutorialSidebar:\n  - intro\n")
	writeFile(t, root, "src/css/custom.css", ":root {}\n")
	return root
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadMinimalDescriptor(t *testing.T) {
	site := &SiteConfig{
		Title:   "Sisyphus",
		BaseURL: "/",
		I18n:    I18n{DefaultLocale: "en", Locales: []string{"en"}},
	}

	cfg, err := Load(site)
	require.NoError(t, err)

	assert.Equal(t, "Sisyphus", cfg.Title)
	assert.True(t, cfg.I18n.HasLocale(cfg.I18n.DefaultLocale))
}

func TestLoadDefaultLocaleNotInLocales(t *testing.T) {
	site := &SiteConfig{
		Title:   "Sisyphus",
		BaseURL: "/",
		I18n:    I18n{DefaultLocale: "fr", Locales: []string{"en"}},
	}

	cfg, err := Load(site)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.False(t, errors.Is(err, ErrResourceNotFound))

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.True(t, cfgErr.HasField("i18n.defaultLocale"))
}

func TestLoadMissingCustomCSS(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sidebars.yaml", "tutorialSidebar: []\n")

	_, err := Load(Default(), WithRoot(root))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceNotFound))
	assert.False(t, errors.Is(err, ErrConfiguration))

	var notFound *ResourceNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "docs.customCss", notFound.Field)
	assert.Equal(t, "./src/css/custom.css", notFound.Path)
	assert.Equal(t, filepath.Join(root, "src", "css", "custom.css"), notFound.Resolved)
}

func TestLoadResourceChecks(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SiteConfig)
		setup     func(t *testing.T, root string)
		wantField string
	}{
		{
			name:   "all present",
			mutate: func(*SiteConfig) {},
		},
		{
			name:      "missing sidebar definition",
			mutate:    func(c *SiteConfig) { c.Docs.SidebarPath = "./missing.yaml" },
			wantField: "docs.sidebarPath",
		},
		{
			name:      "missing favicon",
			mutate:    func(c *SiteConfig) { c.Favicon = "img/favicon.ico" },
			wantField: "favicon",
		},
		{
			name:   "favicon under static",
			mutate: func(c *SiteConfig) { c.Favicon = "img/favicon.ico" },
			setup: func(t *testing.T, root string) {
				writeFile(t, root, "static/img/favicon.ico", "ico")
			},
		},
		{
			name:   "external favicon not checked",
			mutate: func(c *SiteConfig) { c.Favicon = "https://cdn.example.com/favicon.ico" },
		},
		{
			name:      "directory is not a file",
			mutate:    func(c *SiteConfig) { c.Docs.CustomCSS = "./src/css" },
			wantField: "docs.customCss",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newSiteDir(t)
			if tt.setup != nil {
				tt.setup(t, root)
			}
			site := Default()
			tt.mutate(site)

			_, err := Load(site, WithRoot(root))
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var notFound *ResourceNotFoundError
			require.True(t, errors.As(err, &notFound), "got %v", err)
			assert.Equal(t, tt.wantField, notFound.Field)
		})
	}
}

func TestLoadWithoutResourceCheck(t *testing.T) {
	_, err := Load(Default(), WithRoot(t.TempDir()), WithoutResourceCheck())
	assert.NoError(t, err)
}

func TestLoadDefaultDescriptor(t *testing.T) {
	cfg, err := Load(Default(), WithRoot(newSiteDir(t)))
	require.NoError(t, err)

	assert.Equal(t, "Sisyphus", cfg.Title)
	assert.Equal(t, "https://sisyphus.jamesthebard.net", cfg.URL)
	assert.Equal(t, PolicyWarn, cfg.OnBrokenLinks)
	assert.Equal(t, PolicyWarn, cfg.OnBrokenMarkdownLinks)
	assert.Equal(t, ModeDark, cfg.ThemeConfig.ColorMode.DefaultMode)
	assert.True(t, cfg.ThemeConfig.ColorMode.SwitchEnabled())
	assert.False(t, cfg.ThemeConfig.ColorMode.RespectsSystemPreference())
	assert.Equal(t, []string{"powershell", "json", "shell-session"}, cfg.ThemeConfig.Prism.AdditionalLanguages)
}

func TestLoadAppliesDefaults(t *testing.T) {
	site := &SiteConfig{
		Title:   "Sisyphus",
		BaseURL: "/",
		ThemeConfig: ThemeConfig{
			Navbar: Navbar{Items: []NavItem{
				{Label: "Docs", SidebarID: "tutorialSidebar"},
				{Label: "Blog", To: "/blog"},
			}},
			Footer: Footer{Links: []FooterColumn{{Title: "Empty", Items: []FooterLink{}}}},
			Prism:  Prism{AdditionalLanguages: []string{}},
		},
	}

	cfg, err := Load(site)
	require.NoError(t, err)

	assert.Equal(t, PolicyWarn, cfg.OnBrokenLinks)
	assert.Equal(t, PolicyWarn, cfg.OnBrokenMarkdownLinks)
	assert.Equal(t, "en", cfg.I18n.DefaultLocale)
	assert.Equal(t, []string{"en"}, cfg.I18n.Locales)
	assert.Equal(t, DefaultDocsPath, cfg.Docs.Path)
	assert.Equal(t, DefaultRouteBasePath, cfg.Docs.RouteBasePath)
	assert.Equal(t, NavItemDocSidebar, cfg.ThemeConfig.Navbar.Items[0].Type)
	assert.Equal(t, NavItemLink, cfg.ThemeConfig.Navbar.Items[1].Type)
	assert.Equal(t, PositionLeft, cfg.ThemeConfig.Navbar.Items[1].Position)
	assert.Equal(t, FooterDark, cfg.ThemeConfig.Footer.Style)
	assert.Nil(t, cfg.ThemeConfig.Footer.Links[0].Items)
	assert.Nil(t, cfg.ThemeConfig.Prism.AdditionalLanguages)
	assert.Equal(t, DefaultPrismTheme, cfg.ThemeConfig.Prism.Theme)
	assert.Equal(t, DefaultPrismDark, cfg.ThemeConfig.Prism.DarkTheme)
	assert.Equal(t, ModeLight, cfg.ThemeConfig.ColorMode.DefaultMode)
}

func TestLoadLocaleDefaults(t *testing.T) {
	cfg, err := Load(&SiteConfig{Title: "S", BaseURL: "/", I18n: I18n{Locales: []string{"fr", "en"}}})
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.I18n.DefaultLocale)

	cfg, err = Load(&SiteConfig{Title: "S", BaseURL: "/", I18n: I18n{DefaultLocale: "de"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, cfg.I18n.Locales)
}

func TestLoadReturnsDetachedCopy(t *testing.T) {
	site := Default()
	cfg, err := Load(site, WithoutResourceCheck())
	require.NoError(t, err)

	site.Title = "Changed"
	site.I18n.Locales[0] = "fr"
	site.ThemeConfig.Navbar.Items[0].Label = "Changed"
	site.ThemeConfig.Navbar.Logo.Alt = "Changed"
	site.ThemeConfig.Footer.Links[0].Items[0].Label = "Changed"
	*site.ThemeConfig.ColorMode.DisableSwitch = true

	assert.Equal(t, "Sisyphus", cfg.Title)
	assert.Equal(t, []string{"en"}, cfg.I18n.Locales)
	assert.Equal(t, "Installation", cfg.ThemeConfig.Navbar.Items[0].Label)
	assert.Equal(t, "Sisyphus Encoding Server", cfg.ThemeConfig.Navbar.Logo.Alt)
	assert.Equal(t, "Tutorial", cfg.ThemeConfig.Footer.Links[0].Items[0].Label)
	assert.True(t, cfg.ThemeConfig.ColorMode.SwitchEnabled())
}

func TestLoadNil(t *testing.T) {
	_, err := Load(nil)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SiteConfig)
		wantField string
	}{
		{name: "valid default", mutate: func(*SiteConfig) {}},
		{name: "empty title", mutate: func(c *SiteConfig) { c.Title = " " }, wantField: "title"},
		{name: "empty baseUrl", mutate: func(c *SiteConfig) { c.BaseURL = "" }, wantField: "baseUrl"},
		{name: "baseUrl without trailing slash", mutate: func(c *SiteConfig) { c.BaseURL = "/docs" }, wantField: "baseUrl"},
		{name: "relative url", mutate: func(c *SiteConfig) { c.URL = "sisyphus.jamesthebard.net" }, wantField: "url"},
		{name: "ftp url", mutate: func(c *SiteConfig) { c.URL = "ftp://example.com" }, wantField: "url"},
		{name: "unknown link policy", mutate: func(c *SiteConfig) { c.OnBrokenLinks = "throw" }, wantField: "onBrokenLinks"},
		{name: "unknown markdown link policy", mutate: func(c *SiteConfig) { c.OnBrokenMarkdownLinks = "log" }, wantField: "onBrokenMarkdownLinks"},
		{name: "duplicate locale", mutate: func(c *SiteConfig) { c.I18n.Locales = []string{"en", "en"} }, wantField: "i18n.locales[1]"},
		{name: "no locales", mutate: func(c *SiteConfig) { c.I18n.Locales = nil }, wantField: "i18n.locales"},
		{name: "route base path", mutate: func(c *SiteConfig) { c.Docs.RouteBasePath = "docs" }, wantField: "docs.routeBasePath"},
		{
			name:      "unknown copyright token",
			mutate:    func(c *SiteConfig) { c.ThemeConfig.Footer.Copyright = "© {{year}} {{owner}}" },
			wantField: "themeConfig.footer.copyright",
		},
		{
			name:   "copyright env token",
			mutate: func(c *SiteConfig) { c.ThemeConfig.Footer.Copyright = "© {{date('2006')}} {{$DOCSITE_OWNER}}" },
		},
		{
			name:      "nav position",
			mutate:    func(c *SiteConfig) { c.ThemeConfig.Navbar.Items[0].Position = "center" },
			wantField: "themeConfig.navbar.items[0].position",
		},
		{
			name:      "nav type",
			mutate:    func(c *SiteConfig) { c.ThemeConfig.Navbar.Items[1].Type = "dropdown" },
			wantField: "themeConfig.navbar.items[1].type",
		},
		{
			name:      "link without target",
			mutate:    func(c *SiteConfig) { c.ThemeConfig.Navbar.Items[2].Href = "" },
			wantField: "themeConfig.navbar.items[2]",
		},
		{
			name: "docSidebar without id",
			mutate: func(c *SiteConfig) {
				c.ThemeConfig.Navbar.Items[0] = NavItem{Type: NavItemDocSidebar, Label: "Docs", Position: PositionLeft}
			},
			wantField: "themeConfig.navbar.items[0].sidebarId",
		},
		{
			name:      "empty logo src",
			mutate:    func(c *SiteConfig) { c.ThemeConfig.Navbar.Logo.Src = "" },
			wantField: "themeConfig.navbar.logo.src",
		},
		{
			name:      "footer style",
			mutate:    func(c *SiteConfig) { c.ThemeConfig.Footer.Style = "blue" },
			wantField: "themeConfig.footer.style",
		},
		{
			name:      "footer link with both targets",
			mutate:    func(c *SiteConfig) { c.ThemeConfig.Footer.Links[1].Items[0].To = "/twitter" },
			wantField: "themeConfig.footer.links[1].items[0]",
		},
		{
			name:      "prism theme",
			mutate:    func(c *SiteConfig) { c.ThemeConfig.Prism.Theme = "GitHub Light" },
			wantField: "themeConfig.prism.theme",
		},
		{
			name:      "duplicate language",
			mutate:    func(c *SiteConfig) { c.ThemeConfig.Prism.AdditionalLanguages = []string{"json", "json"} },
			wantField: "themeConfig.prism.additionalLanguages[1]",
		},
		{
			name:      "color mode",
			mutate:    func(c *SiteConfig) { c.ThemeConfig.ColorMode.DefaultMode = "sepia" },
			wantField: "themeConfig.colorMode.defaultMode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := Default()
			tt.mutate(site)

			err := Validate(site)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.True(t, cfgErr.HasField(tt.wantField), "violations: %v", cfgErr.Violations)
		})
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	site := Default()
	site.Title = ""
	site.BaseURL = ""
	site.I18n.DefaultLocale = "fr"

	err := Validate(site)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, cfgErr.Violations, 3)
	assert.Contains(t, err.Error(), "title: must not be empty")
	assert.Contains(t, err.Error(), "i18n.defaultLocale")
}

func TestNavbarItemsAt(t *testing.T) {
	navbar := Default().ThemeConfig.Navbar

	left := navbar.ItemsAt(PositionLeft)
	require.Len(t, left, 3)
	assert.Equal(t, "Installation", left[0].Label)
	assert.Equal(t, "Operations", left[1].Label)
	assert.Equal(t, "Modules", left[2].Label)

	right := navbar.ItemsAt(PositionRight)
	require.Len(t, right, 1)
	assert.Equal(t, "GitHub", right[0].Label)
}

func TestRenderCopyright(t *testing.T) {
	footer := Default().ThemeConfig.Footer
	now := time.Date(2031, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Copyright © 2031 JamesTheBard. Built with Docusaurus.", footer.RenderCopyright(now))
	assert.Contains(t, footer.Copyright, "{{year}}")
}

func TestLoadKeepsCopyrightTemplate(t *testing.T) {
	cfg, err := Load(Default(), WithoutResourceCheck())
	require.NoError(t, err)
	assert.Equal(t, "Copyright © {{year}} JamesTheBard. Built with Docusaurus.", cfg.ThemeConfig.Footer.Copyright)
}

func TestColorModeGetters(t *testing.T) {
	var c ColorModeConfig
	assert.True(t, c.SwitchEnabled())
	assert.False(t, c.RespectsSystemPreference())

	c.DisableSwitch = BoolPtr(true)
	c.RespectPrefersColorScheme = BoolPtr(true)
	assert.False(t, c.SwitchEnabled())
	assert.True(t, c.RespectsSystemPreference())
}

func TestIsExternal(t *testing.T) {
	assert.True(t, IsExternal("https://github.com/JamesTheBard/sisyphus-docs"))
	assert.True(t, IsExternal("//cdn.example.com/x.css"))
	assert.True(t, IsExternal("mailto:someone@example.com"))
	assert.False(t, IsExternal("/category/installation"))
	assert.False(t, IsExternal("intro.md"))
}

func TestTargets(t *testing.T) {
	assert.Equal(t, "/a", NavItem{To: "/a"}.Target())
	assert.Equal(t, "https://x", NavItem{Href: "https://x"}.Target())
	assert.Equal(t, "/b", FooterLink{To: "/b"}.Target())
	assert.Equal(t, "https://y", FooterLink{Href: "https://y"}.Target())
}

func TestCloneNil(t *testing.T) {
	var c *SiteConfig
	assert.Nil(t, c.Clone())
}
