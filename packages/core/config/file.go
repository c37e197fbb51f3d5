package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/docsite/packages/core/env"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Format is a structured representation of the descriptor.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ConfigFilenames contains the config file names FindAndLoad searches for, in order
var ConfigFilenames = []string{
	"docsite.yaml",
	"docsite.yml",
	"docsite.json",
	".docsite.yaml",
}

// FormatFromPath picks the representation from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported config format %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// LoadFile reads a YAML or JSON config file, expands ${VAR} references, decodes
// it strictly (unknown keys are rejected) and loads the result. Referenced files
// are resolved against the file's directory unless WithRoot is given.
func LoadFile(path string, opts ...LoadOption) (*SiteConfig, error) {
	o := newLoadOptions(opts)

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &ConfigurationError{Source: path, Err: err}
	}

	// #nosec G304 -- config paths come from the operator
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ResourceNotFoundError{Field: "config", Path: path, Resolved: path, Err: err}
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	data, err = env.Expand(data, o.lookup)
	if err != nil {
		return nil, &ConfigurationError{Source: path, Err: err}
	}

	site, err := Unmarshal(data, format)
	if err != nil {
		return nil, &ConfigurationError{Source: path, Err: err}
	}

	opts = append(opts, withSource(path))
	if !o.rootSet {
		opts = append(opts, WithRoot(filepath.Dir(path)))
	}
	return Load(site, opts...)
}

// FindAndLoad searches dir for the first of ConfigFilenames and loads it.
// It returns the path that was loaded.
func FindAndLoad(dir string, opts ...LoadOption) (*SiteConfig, string, error) {
	for _, filename := range ConfigFilenames {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadFile(path, opts...)
			return cfg, path, err
		}
	}
	return nil, "", &ResourceNotFoundError{
		Field:    "config",
		Path:     strings.Join(ConfigFilenames, ", "),
		Resolved: dir,
		Err:      fs.ErrNotExist,
	}
}

// Unmarshal strictly decodes a single document. It does not apply defaults or
// validate; use Load for that.
func Unmarshal(data []byte, format Format) (*SiteConfig, error) {
	var site SiteConfig

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&site); err != nil {
			if err == io.EOF {
				return nil, errors.New("empty configuration document")
			}
			return nil, fmt.Errorf("strict config parse error: %w", err)
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return nil, errors.New("config file contains multiple documents or trailing content")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&site); err != nil {
			if err == io.EOF {
				return nil, errors.New("empty configuration document")
			}
			return nil, fmt.Errorf("strict config parse error: %w", err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, errors.New("config file contains trailing content")
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	return &site, nil
}

// Marshal encodes c in the given representation.
func (c *SiteConfig) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Save writes c to path atomically, in the format implied by its extension.
func (c *SiteConfig) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := c.Marshal(format)
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0o644)
}
