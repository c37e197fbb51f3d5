package config

import (
	"errors"

	"github.com/abdul-hamid-achik/docsite/packages/core/env"
)

// LoadOption customizes Load, LoadFile and FindAndLoad.
type LoadOption func(*loadOptions)

type loadOptions struct {
	root           string
	rootSet        bool
	checkResources bool
	source         string
	lookup         env.LookupFunc
}

func newLoadOptions(opts []LoadOption) loadOptions {
	o := loadOptions{
		root:           ".",
		checkResources: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithRoot sets the site directory that referenced files are resolved against.
// Load defaults to the working directory; LoadFile to the file's directory.
func WithRoot(dir string) LoadOption {
	return func(o *loadOptions) {
		o.root = dir
		o.rootSet = true
	}
}

// WithoutResourceCheck skips the favicon, custom CSS and sidebar existence checks.
func WithoutResourceCheck() LoadOption {
	return func(o *loadOptions) {
		o.checkResources = false
	}
}

// WithLookup sets where ${VAR} references in config files are read from.
// The default is the process environment.
func WithLookup(lookup env.LookupFunc) LoadOption {
	return func(o *loadOptions) {
		o.lookup = lookup
	}
}

func withSource(name string) LoadOption {
	return func(o *loadOptions) {
		o.source = name
	}
}

// Load constructs the descriptor from literal values: it copies site, applies
// defaults, validates every value and checks that referenced local files exist.
// The returned descriptor shares no memory with site.
//
// Errors are a *ConfigurationError for invalid values and a
// *ResourceNotFoundError for a missing file; nothing is partially loaded.
func Load(site *SiteConfig, opts ...LoadOption) (*SiteConfig, error) {
	o := newLoadOptions(opts)

	if site == nil {
		return nil, &ConfigurationError{Source: o.source, Err: errors.New("no site configuration provided")}
	}

	cfg := site.Clone()
	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Source = o.source
		}
		return nil, err
	}

	if o.checkResources {
		if _, err := cfg.ResolveResources(o.root); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
