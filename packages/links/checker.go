package links

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/docs"
)

// Link is a link destination and where it was declared.
type Link struct {
	Source string
	Target string
}

// Checker resolves the internal links of a site.
type Checker struct {
	cfg       *config.SiteConfig
	index     *docs.Index
	routes    map[string]bool
	staticDir string
}

type Option func(*Checker)

// WithRoutes adds known routes that are not doc routes.
func WithRoutes(routes ...string) Option {
	return func(c *Checker) {
		for _, r := range routes {
			c.routes[docs.NormalizeRoute(r)] = true
		}
	}
}

// WithStaticDir makes files under dir resolve as routes below the base URL.
func WithStaticDir(dir string) Option {
	return func(c *Checker) {
		c.staticDir = dir
	}
}

// NewChecker creates a checker for cfg. index may be nil when the site has no docs.
func NewChecker(cfg *config.SiteConfig, index *docs.Index, opts ...Option) *Checker {
	c := &Checker{
		cfg:    cfg,
		index:  index,
		routes: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.routes[docs.JoinRoute(cfg.BaseURL)] = true
	return c
}

// Check returns every internal link that does not resolve, in declaration
// order: navbar, footer, then docs in source order.
func (c *Checker) Check() []Finding {
	var findings []Finding

	for _, l := range c.configLinks() {
		route := c.resolve(l.Target)
		if !c.known(route) {
			findings = append(findings, Finding{
				Kind:   KindLink,
				Source: l.Source,
				Target: l.Target,
				Reason: "no page at " + route,
			})
		}
	}

	if c.index != nil {
		for _, d := range c.index.Docs {
			findings = append(findings, c.checkDoc(d)...)
		}
	}
	return findings
}

func (c *Checker) checkDoc(d *docs.Doc) []Finding {
	var findings []Finding
	source := path.Join(filepath.ToSlash(c.cfg.Docs.Path), d.Source)

	for _, target := range d.Links {
		if target == "" || strings.HasPrefix(target, "#") || config.IsExternal(target) {
			continue
		}
		p := stripFragment(target)
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}

		if docs.IsDoc(p) {
			resolved := path.Join(path.Dir(d.Source), p)
			if strings.HasPrefix(p, "/") {
				resolved = path.Clean(strings.TrimPrefix(p, "/"))
			}
			if _, ok := c.index.BySource(resolved); !ok {
				findings = append(findings, Finding{
					Kind:   KindMarkdown,
					Source: source,
					Target: target,
					Reason: "no doc at " + resolved,
				})
			}
			continue
		}

		route := c.resolve(p)
		if !strings.HasPrefix(p, "/") {
			route = docs.JoinRoute(path.Dir(d.Route), p)
		}
		if !c.known(route) {
			findings = append(findings, Finding{
				Kind:   KindLink,
				Source: source,
				Target: target,
				Reason: "no page at " + route,
			})
		}
	}
	return findings
}

// External returns the http(s) links of the site, one per target, in
// declaration order.
func (c *Checker) External() []Link {
	seen := make(map[string]bool)
	var out []Link
	add := func(l Link) {
		if seen[l.Target] || !isHTTP(l.Target) {
			return
		}
		seen[l.Target] = true
		out = append(out, l)
	}

	for _, l := range c.allConfigLinks() {
		add(l)
	}
	if c.index != nil {
		for _, d := range c.index.Docs {
			source := path.Join(filepath.ToSlash(c.cfg.Docs.Path), d.Source)
			for _, target := range d.Links {
				add(Link{Source: source, Target: target})
			}
		}
	}
	return out
}

// configLinks returns the internal navbar and footer links.
func (c *Checker) configLinks() []Link {
	var out []Link
	for _, l := range c.allConfigLinks() {
		if l.Target != "" && !config.IsExternal(l.Target) {
			out = append(out, l)
		}
	}
	return out
}

func (c *Checker) allConfigLinks() []Link {
	var out []Link
	for i, item := range c.cfg.ThemeConfig.Navbar.Items {
		if item.Type == config.NavItemDocSidebar {
			continue
		}
		out = append(out, Link{
			Source: fmt.Sprintf("themeConfig.navbar.items[%d]", i),
			Target: item.Target(),
		})
	}
	for i, col := range c.cfg.ThemeConfig.Footer.Links {
		for j, item := range col.Items {
			out = append(out, Link{
				Source: fmt.Sprintf("themeConfig.footer.links[%d].items[%d]", i, j),
				Target: item.Target(),
			})
		}
	}
	return out
}

// resolve maps an absolute site path to a route below the base URL.
func (c *Checker) resolve(target string) string {
	p := docs.NormalizeRoute(target)
	base := docs.JoinRoute(c.cfg.BaseURL)
	if base != "/" && (p == base || strings.HasPrefix(p, base+"/")) {
		return p
	}
	return docs.JoinRoute(base, p)
}

func (c *Checker) known(route string) bool {
	if c.routes[route] {
		return true
	}
	if c.index != nil && c.index.HasRoute(route) {
		return true
	}
	return c.isStaticFile(route)
}

func (c *Checker) isStaticFile(route string) bool {
	if c.staticDir == "" {
		return false
	}
	rel := strings.TrimPrefix(route, docs.JoinRoute(c.cfg.BaseURL))
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(c.staticDir, filepath.FromSlash(rel)))
	return err == nil && info.Mode().IsRegular()
}

func stripFragment(target string) string {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		return target[:i]
	}
	return target
}

func isHTTP(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}
