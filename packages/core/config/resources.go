package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// StaticDir is the site directory the favicon path is relative to.
const StaticDir = "static"

// Resources holds the resolved paths of the files a descriptor references.
// A field is empty when the descriptor does not reference that file.
type Resources struct {
	Favicon   string
	CustomCSS string
	Sidebar   string
}

// ResolvePath resolves a declared path against the site root.
func ResolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, filepath.FromSlash(path))
}

// ResolveResources resolves the favicon, custom CSS and sidebar definition paths
// against root and checks that each names an existing regular file. Only the
// existence is checked; nothing is read or written.
func (c *SiteConfig) ResolveResources(root string) (Resources, error) {
	var res Resources

	if c.Favicon != "" && !IsExternal(c.Favicon) {
		p := ResolvePath(filepath.Join(root, StaticDir), strings.TrimPrefix(c.Favicon, "/"))
		if err := checkFile("favicon", c.Favicon, p); err != nil {
			return Resources{}, err
		}
		res.Favicon = p
	}

	if c.Docs.CustomCSS != "" {
		p := ResolvePath(root, c.Docs.CustomCSS)
		if err := checkFile("docs.customCss", c.Docs.CustomCSS, p); err != nil {
			return Resources{}, err
		}
		res.CustomCSS = p
	}

	if c.Docs.SidebarPath != "" {
		p := ResolvePath(root, c.Docs.SidebarPath)
		if err := checkFile("docs.sidebarPath", c.Docs.SidebarPath, p); err != nil {
			return Resources{}, err
		}
		res.Sidebar = p
	}

	return res, nil
}

func checkFile(field, declared, resolved string) error {
	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ResourceNotFoundError{Field: field, Path: declared, Resolved: resolved, Err: err}
		}
		return fmt.Errorf("%s: check %s: %w", field, resolved, err)
	}
	if !info.Mode().IsRegular() {
		return &ResourceNotFoundError{
			Field:    field,
			Path:     declared,
			Resolved: resolved,
			Err:      fmt.Errorf("%s is not a regular file", resolved),
		}
	}
	return nil
}
