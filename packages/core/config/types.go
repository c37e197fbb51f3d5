package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/docsite/packages/builtin"
	"github.com/abdul-hamid-achik/docsite/packages/core/env"
)

// BrokenLinkPolicy is the response to a link that does not resolve.
type BrokenLinkPolicy string

const (
	PolicyWarn   BrokenLinkPolicy = "warn"
	PolicyError  BrokenLinkPolicy = "error"
	PolicyIgnore BrokenLinkPolicy = "ignore"
)

// Valid reports whether p is one of the known policies.
func (p BrokenLinkPolicy) Valid() bool {
	switch p {
	case PolicyWarn, PolicyError, PolicyIgnore:
		return true
	}
	return false
}

// Position is the navbar bucket an item is rendered in.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// NavItemType distinguishes plain links from sidebar references.
type NavItemType string

const (
	NavItemLink       NavItemType = "link"
	NavItemDocSidebar NavItemType = "docSidebar"
)

// FooterStyle selects the footer palette.
type FooterStyle string

const (
	FooterDark  FooterStyle = "dark"
	FooterLight FooterStyle = "light"
)

// ColorMode is a site color scheme.
type ColorMode string

const (
	ModeLight ColorMode = "light"
	ModeDark  ColorMode = "dark"
)

// SiteConfig is the root of the Site Configuration Descriptor.
type SiteConfig struct {
	Title                 string           `json:"title" yaml:"title" jsonschema:"required,minLength=1"`
	Tagline               string           `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Favicon               string           `json:"favicon,omitempty" yaml:"favicon,omitempty"` // relative to the static directory
	URL                   string           `json:"url" yaml:"url"`
	BaseURL               string           `json:"baseUrl" yaml:"baseUrl" jsonschema:"required,pattern=^/(.*/)?$"`
	OrganizationName      string           `json:"organizationName,omitempty" yaml:"organizationName,omitempty"`
	ProjectName           string           `json:"projectName,omitempty" yaml:"projectName,omitempty"`
	OnBrokenLinks         BrokenLinkPolicy `json:"onBrokenLinks,omitempty" yaml:"onBrokenLinks,omitempty" jsonschema:"enum=warn,enum=error,enum=ignore"`
	OnBrokenMarkdownLinks BrokenLinkPolicy `json:"onBrokenMarkdownLinks,omitempty" yaml:"onBrokenMarkdownLinks,omitempty" jsonschema:"enum=warn,enum=error,enum=ignore"`
	I18n                  I18n             `json:"i18n" yaml:"i18n"`
	Docs                  DocsOptions      `json:"docs" yaml:"docs"`
	ThemeConfig           ThemeConfig      `json:"themeConfig" yaml:"themeConfig"`
}

// I18n holds locale settings.
type I18n struct {
	DefaultLocale string   `json:"defaultLocale" yaml:"defaultLocale"`
	Locales       []string `json:"locales,omitempty" yaml:"locales,omitempty"`
}

// HasLocale reports whether locale is one of the supported locales.
func (i I18n) HasLocale(locale string) bool {
	for _, l := range i.Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// DocsOptions configures the docs plugin.
type DocsOptions struct {
	Path          string `json:"path,omitempty" yaml:"path,omitempty"`
	RouteBasePath string `json:"routeBasePath,omitempty" yaml:"routeBasePath,omitempty"`
	SidebarPath   string `json:"sidebarPath,omitempty" yaml:"sidebarPath,omitempty"`
	CustomCSS     string `json:"customCss,omitempty" yaml:"customCss,omitempty"`
}

// ThemeConfig groups the presentation settings.
type ThemeConfig struct {
	Navbar    Navbar          `json:"navbar" yaml:"navbar"`
	Footer    Footer          `json:"footer" yaml:"footer"`
	Prism     Prism           `json:"prism" yaml:"prism"`
	ColorMode ColorModeConfig `json:"colorMode" yaml:"colorMode"`
}

type Navbar struct {
	Title string    `json:"title,omitempty" yaml:"title,omitempty"`
	Logo  *Logo     `json:"logo,omitempty" yaml:"logo,omitempty"`
	Items []NavItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// ItemsAt returns the items rendered in the given position, in declared order.
func (n Navbar) ItemsAt(pos Position) []NavItem {
	var items []NavItem
	for _, item := range n.Items {
		if item.Position == pos {
			items = append(items, item)
		}
	}
	return items
}

type Logo struct {
	Alt string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Src string `json:"src" yaml:"src" jsonschema:"required"`
}

// NavItem is either a link (Href or To) or a docSidebar reference (SidebarID).
type NavItem struct {
	Type      NavItemType `json:"type,omitempty" yaml:"type,omitempty" jsonschema:"enum=link,enum=docSidebar"`
	Label     string      `json:"label" yaml:"label" jsonschema:"required"`
	Href      string      `json:"href,omitempty" yaml:"href,omitempty"`
	To        string      `json:"to,omitempty" yaml:"to,omitempty"`
	SidebarID string      `json:"sidebarId,omitempty" yaml:"sidebarId,omitempty"`
	Position  Position    `json:"position,omitempty" yaml:"position,omitempty" jsonschema:"enum=left,enum=right"`
}

// Target returns the link destination of a link item.
func (n NavItem) Target() string {
	if n.Href != "" {
		return n.Href
	}
	return n.To
}

type Footer struct {
	Style     FooterStyle    `json:"style,omitempty" yaml:"style,omitempty" jsonschema:"enum=dark,enum=light"`
	Links     []FooterColumn `json:"links,omitempty" yaml:"links,omitempty"`
	Copyright string         `json:"copyright,omitempty" yaml:"copyright,omitempty"`
}

// RenderCopyright resolves the {{...}} tokens of the copyright template as of now.
func (f Footer) RenderCopyright(now time.Time) string {
	r := env.NewResolver(builtin.Clock(func() time.Time { return now }))
	return r.Resolve(f.Copyright)
}

type FooterColumn struct {
	Title string       `json:"title" yaml:"title" jsonschema:"required"`
	Items []FooterLink `json:"items,omitempty" yaml:"items,omitempty"`
}

// FooterLink points at an internal path (To) or an external URL (Href).
// To may also hold an absolute URL.
type FooterLink struct {
	Label string `json:"label" yaml:"label" jsonschema:"required"`
	To    string `json:"to,omitempty" yaml:"to,omitempty"`
	Href  string `json:"href,omitempty" yaml:"href,omitempty"`
}

// Target returns the link destination.
func (l FooterLink) Target() string {
	if l.Href != "" {
		return l.Href
	}
	return l.To
}

// Prism configures syntax highlighting.
type Prism struct {
	Theme               string   `json:"theme,omitempty" yaml:"theme,omitempty"`
	DarkTheme           string   `json:"darkTheme,omitempty" yaml:"darkTheme,omitempty"`
	AdditionalLanguages []string `json:"additionalLanguages,omitempty" yaml:"additionalLanguages,omitempty"`
}

type ColorModeConfig struct {
	DefaultMode               ColorMode `json:"defaultMode,omitempty" yaml:"defaultMode,omitempty" jsonschema:"enum=light,enum=dark"`
	DisableSwitch             *bool     `json:"disableSwitch,omitempty" yaml:"disableSwitch,omitempty"`
	RespectPrefersColorScheme *bool     `json:"respectPrefersColorScheme,omitempty" yaml:"respectPrefersColorScheme,omitempty"`
}

// SwitchEnabled reports whether the color mode switch is shown, defaulting to true
func (c ColorModeConfig) SwitchEnabled() bool {
	return !getBool(c.DisableSwitch, false)
}

// RespectsSystemPreference reports whether the OS color scheme wins over
// DefaultMode, defaulting to false
func (c ColorModeConfig) RespectsSystemPreference() bool {
	return getBool(c.RespectPrefersColorScheme, false)
}

// BoolPtr returns a pointer to b, for optional boolean settings.
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// IsExternal reports whether target is an absolute URL rather than a site path.
func IsExternal(target string) bool {
	if strings.HasPrefix(target, "//") {
		return true
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Scheme != ""
}
