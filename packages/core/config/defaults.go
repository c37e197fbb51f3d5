package config

// Default values applied to optional settings during Load.
const (
	DefaultLocale        = "en"
	DefaultDocsPath      = "docs"
	DefaultRouteBasePath = "/docs"
	DefaultPrismTheme    = "github"
	DefaultPrismDark     = "dracula"
	DefaultPolicy        = PolicyWarn
)

// Default returns the canonical descriptor of the Sisyphus documentation site.
// It is a literal: call Load to validate it and check its referenced files.
func Default() *SiteConfig {
	return &SiteConfig{
		Title:                 "Sisyphus",
		Tagline:               "Dinosaurs are cool",
		URL:                   "https://sisyphus.jamesthebard.net",
		BaseURL:               "/",
		OrganizationName:      "JamesTheBard",
		ProjectName:           "sisyphus-docs",
		OnBrokenLinks:         PolicyWarn,
		OnBrokenMarkdownLinks: PolicyWarn,
		I18n: I18n{
			DefaultLocale: "en",
			Locales:       []string{"en"},
		},
		Docs: DocsOptions{
			Path:          "docs",
			RouteBasePath: "/",
			SidebarPath:   "./sidebars.yaml",
			CustomCSS:     "./src/css/custom.css",
		},
		ThemeConfig: ThemeConfig{
			Navbar: Navbar{
				Title: "Sisyphus",
				Logo: &Logo{
					Alt: "Sisyphus Encoding Server",
					Src: "img/red-circle.png",
				},
				Items: []NavItem{
					{Type: NavItemLink, Href: "/category/installation", Label: "Installation", Position: PositionLeft},
					{Type: NavItemLink, Href: "/category/operations", Label: "Operations", Position: PositionLeft},
					{Type: NavItemLink, Href: "/category/modules", Label: "Modules", Position: PositionLeft},
					{Type: NavItemLink, Href: "https://github.com/JamesTheBard/sisyphus-docs", Label: "GitHub", Position: PositionRight},
				},
			},
			Footer: Footer{
				Style: FooterDark,
				Links: []FooterColumn{
					{
						Title: "Docs",
						Items: []FooterLink{{Label: "Tutorial", To: "/docs/intro"}},
					},
					{
						Title: "Community",
						Items: []FooterLink{{Label: "Twitter", Href: "https://twitter.com/JamesTheBard"}},
					},
					{
						Title: "More",
						Items: []FooterLink{
							{Label: "Blog", To: "https://blog.jamesthebard.net"},
							{Label: "GitHub", Href: "https://github.com/JamesTheBard/sisyphus-docs"},
						},
					},
				},
				Copyright: "Copyright © {{year}} JamesTheBard. Built with Docusaurus.",
			},
			Prism: Prism{
				Theme:               "github",
				DarkTheme:           "dracula",
				AdditionalLanguages: []string{"powershell", "json", "shell-session"},
			},
			ColorMode: ColorModeConfig{
				DefaultMode:               ModeDark,
				DisableSwitch:             BoolPtr(false),
				RespectPrefersColorScheme: BoolPtr(false),
			},
		},
	}
}

// applyDefaults fills optional settings and normalizes empty lists to nil so
// the loaded descriptor has a single representation.
func applyDefaults(c *SiteConfig) {
	if c.OnBrokenLinks == "" {
		c.OnBrokenLinks = DefaultPolicy
	}
	if c.OnBrokenMarkdownLinks == "" {
		c.OnBrokenMarkdownLinks = DefaultPolicy
	}

	switch {
	case c.I18n.DefaultLocale == "" && len(c.I18n.Locales) == 0:
		c.I18n.DefaultLocale = DefaultLocale
		c.I18n.Locales = []string{DefaultLocale}
	case c.I18n.DefaultLocale == "":
		c.I18n.DefaultLocale = c.I18n.Locales[0]
	case len(c.I18n.Locales) == 0:
		c.I18n.Locales = []string{c.I18n.DefaultLocale}
	}

	if c.Docs.Path == "" {
		c.Docs.Path = DefaultDocsPath
	}
	if c.Docs.RouteBasePath == "" {
		c.Docs.RouteBasePath = DefaultRouteBasePath
	}

	navbar := &c.ThemeConfig.Navbar
	for i := range navbar.Items {
		item := &navbar.Items[i]
		if item.Type == "" {
			item.Type = NavItemLink
			if item.SidebarID != "" {
				item.Type = NavItemDocSidebar
			}
		}
		if item.Position == "" {
			item.Position = PositionLeft
		}
	}
	if len(navbar.Items) == 0 {
		navbar.Items = nil
	}

	footer := &c.ThemeConfig.Footer
	if footer.Style == "" {
		footer.Style = FooterDark
	}
	for i := range footer.Links {
		if len(footer.Links[i].Items) == 0 {
			footer.Links[i].Items = nil
		}
	}
	if len(footer.Links) == 0 {
		footer.Links = nil
	}

	prism := &c.ThemeConfig.Prism
	if prism.Theme == "" {
		prism.Theme = DefaultPrismTheme
	}
	if prism.DarkTheme == "" {
		prism.DarkTheme = DefaultPrismDark
	}
	if len(prism.AdditionalLanguages) == 0 {
		prism.AdditionalLanguages = nil
	}

	if c.ThemeConfig.ColorMode.DefaultMode == "" {
		c.ThemeConfig.ColorMode.DefaultMode = ModeLight
	}
}
