// Package artifact writes the descriptor consumed by the external renderer.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
)

const (
	// FileName is the artifact file written to the output directory
	FileName = "site-config.json"
	// FormatVersion is bumped when the artifact layout changes
	FormatVersion = 1
)

// Artifact is the JSON document handed to the renderer.
type Artifact struct {
	FormatVersion int                `json:"formatVersion"`
	BuildID       string             `json:"buildId"`
	GeneratedAt   time.Time          `json:"generatedAt"`
	Copyright     string             `json:"copyright,omitempty"` // footer copyright rendered at GeneratedAt
	Site          *config.SiteConfig `json:"site"`
	Routes        []string           `json:"routes,omitempty"`
}

// New creates an artifact for site, rendering the copyright as of generatedAt.
func New(buildID string, generatedAt time.Time, site *config.SiteConfig, routes []string) *Artifact {
	return &Artifact{
		FormatVersion: FormatVersion,
		BuildID:       buildID,
		GeneratedAt:   generatedAt,
		Copyright:     site.ThemeConfig.Footer.RenderCopyright(generatedAt),
		Site:          site,
		Routes:        routes,
	}
}

// Path returns the artifact location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Write atomically writes a to dir, creating dir if needed, and returns the
// file path.
func Write(dir string, a *Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal artifact: %w", err)
	}
	data = append(data, '\n')

	p := Path(dir)
	if err := renameio.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return p, nil
}

// Read loads an artifact written by Write.
func Read(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var a Artifact
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if a.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("artifact %s has format version %d, want %d", path, a.FormatVersion, FormatVersion)
	}
	return &a, nil
}
