package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/docsite/packages/core/env"
)

var identifierPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// validator accumulates violations so a single load reports all of them.
type validator struct {
	violations []Violation
}

func (v *validator) add(field, message string, value any) {
	v.violations = append(v.violations, Violation{Field: field, Value: value, Message: message})
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "must not be empty", value)
	}
}

func (v *validator) err() error {
	if len(v.violations) == 0 {
		return nil
	}
	return &ConfigurationError{Violations: v.violations}
}

// Validate checks every declarative value of c and returns a *ConfigurationError
// listing all violations, or nil. Defaults are not applied; Load does that first.
func Validate(c *SiteConfig) error {
	v := &validator{}

	v.required("title", c.Title)
	validateURL(v, c.URL)
	validateBaseURL(v, c.BaseURL)

	if !c.OnBrokenLinks.Valid() {
		v.add("onBrokenLinks", "must be one of warn, error, ignore", c.OnBrokenLinks)
	}
	if !c.OnBrokenMarkdownLinks.Valid() {
		v.add("onBrokenMarkdownLinks", "must be one of warn, error, ignore", c.OnBrokenMarkdownLinks)
	}

	validateI18n(v, c.I18n)
	validateDocs(v, c.Docs)
	validateNavbar(v, c.ThemeConfig.Navbar)
	validateFooter(v, c.ThemeConfig.Footer)
	validatePrism(v, c.ThemeConfig.Prism)

	switch c.ThemeConfig.ColorMode.DefaultMode {
	case ModeLight, ModeDark:
	default:
		v.add("themeConfig.colorMode.defaultMode", "must be light or dark", c.ThemeConfig.ColorMode.DefaultMode)
	}

	return v.err()
}

func validateURL(v *validator, raw string) {
	if raw == "" {
		return
	}
	u, err := url.Parse(raw)
	if err != nil {
		v.add("url", fmt.Sprintf("invalid URL: %v", err), raw)
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		v.add("url", "must use http or https", raw)
		return
	}
	if u.Host == "" {
		v.add("url", "must have a host", raw)
	}
}

func validateBaseURL(v *validator, baseURL string) {
	if baseURL == "" {
		v.add("baseUrl", "must not be empty", baseURL)
		return
	}
	if !strings.HasPrefix(baseURL, "/") || !strings.HasSuffix(baseURL, "/") {
		v.add("baseUrl", "must start and end with /", baseURL)
	}
}

func validateI18n(v *validator, i I18n) {
	seen := make(map[string]bool, len(i.Locales))
	for idx, locale := range i.Locales {
		field := fmt.Sprintf("i18n.locales[%d]", idx)
		if strings.TrimSpace(locale) == "" {
			v.add(field, "must not be empty", locale)
			continue
		}
		if seen[locale] {
			v.add(field, fmt.Sprintf("duplicate locale %q", locale), locale)
		}
		seen[locale] = true
	}

	if len(i.Locales) == 0 {
		v.add("i18n.locales", "must list at least one locale", i.Locales)
	}
	if !i.HasLocale(i.DefaultLocale) {
		v.add("i18n.defaultLocale", fmt.Sprintf("%q is not one of the configured locales %v", i.DefaultLocale, i.Locales), i.DefaultLocale)
	}
}

func validateDocs(v *validator, d DocsOptions) {
	if !strings.HasPrefix(d.RouteBasePath, "/") {
		v.add("docs.routeBasePath", "must start with /", d.RouteBasePath)
	}
}

func validateNavbar(v *validator, n Navbar) {
	if n.Logo != nil && n.Logo.Src == "" {
		v.add("themeConfig.navbar.logo.src", "must not be empty", n.Logo.Src)
	}

	for idx, item := range n.Items {
		field := fmt.Sprintf("themeConfig.navbar.items[%d]", idx)
		v.required(field+".label", item.Label)

		if item.Position != PositionLeft && item.Position != PositionRight {
			v.add(field+".position", "must be left or right", item.Position)
		}

		switch item.Type {
		case NavItemLink:
			if (item.Href == "") == (item.To == "") {
				v.add(field, "link item needs exactly one of href or to", item.Label)
			}
			if item.SidebarID != "" {
				v.add(field+".sidebarId", "only allowed on docSidebar items", item.SidebarID)
			}
		case NavItemDocSidebar:
			v.required(field+".sidebarId", item.SidebarID)
			if item.Href != "" || item.To != "" {
				v.add(field, "docSidebar item cannot have href or to", item.Label)
			}
		default:
			v.add(field+".type", "must be link or docSidebar", item.Type)
		}
	}
}

func validateFooter(v *validator, f Footer) {
	if f.Style != FooterDark && f.Style != FooterLight {
		v.add("themeConfig.footer.style", "must be dark or light", f.Style)
	}

	for ci, column := range f.Links {
		field := fmt.Sprintf("themeConfig.footer.links[%d]", ci)
		v.required(field+".title", column.Title)
		for li, link := range column.Items {
			linkField := fmt.Sprintf("%s.items[%d]", field, li)
			v.required(linkField+".label", link.Label)
			if (link.To == "") == (link.Href == "") {
				v.add(linkField, "needs exactly one of to or href", link.Label)
			}
		}
	}

	// {{$NAME}} tokens read the environment at render time, so only
	// function tokens are checked here.
	for _, expr := range env.NewResolver(nil).UnresolvedTokens(f.Copyright) {
		if strings.HasPrefix(expr, "$") {
			continue
		}
		v.add("themeConfig.footer.copyright", fmt.Sprintf("unknown template token {{%s}}", expr), f.Copyright)
	}
}

func validatePrism(v *validator, p Prism) {
	if !identifierPattern.MatchString(p.Theme) {
		v.add("themeConfig.prism.theme", "must be a theme identifier", p.Theme)
	}
	if !identifierPattern.MatchString(p.DarkTheme) {
		v.add("themeConfig.prism.darkTheme", "must be a theme identifier", p.DarkTheme)
	}

	seen := make(map[string]bool, len(p.AdditionalLanguages))
	for idx, lang := range p.AdditionalLanguages {
		field := fmt.Sprintf("themeConfig.prism.additionalLanguages[%d]", idx)
		if !identifierPattern.MatchString(lang) {
			v.add(field, "must be a language identifier", lang)
			continue
		}
		if seen[lang] {
			v.add(field, fmt.Sprintf("duplicate language %q", lang), lang)
		}
		seen[lang] = true
	}
}
