package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new documentation site",
	Long: `Initialize a new documentation site from the built-in canonical descriptor.

This creates:
  - docsite.yaml        - Site descriptor
  - sidebars.yaml       - Sidebar definition
  - src/css/custom.css  - Custom stylesheet
  - static/img/         - Static files
  - docs/               - Starter docs

Examples:
  docsite init
  docsite init ./website --force`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const initSidebars = `guide:
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
      - operations/jobs
  - type: category
    label: Modules
    link: {type: generated-index}
    items:
      - type: autogenerated
        dirName: modules
`

const initCSS = `/* Site-wide styles, loaded on every page. */
:root {
  --ifm-color-primary: #c0392b;
  --ifm-code-font-size: 95%;
}

[data-theme='dark'] {
  --ifm-color-primary: #e74c3c;
}
`

var initDocs = []struct {
	path    string
	content string
}{
	{"docs/intro.md", `---
title: Introduction
---

# Sisyphus

Sisyphus is an encoding server. Start with the [Docker install](installation/docker.md).
`},
	{"docs/installation/docker.md", `# Docker

Run the server in a container, then [submit a job](../operations/jobs.md).
`},
	{"docs/operations/jobs.md", `# Jobs

Jobs are processed by [modules](/category/modules).
`},
	{"docs/modules/ffmpeg.md", `# ffmpeg

Transcodes media. Back to the [introduction](../intro.md).
`},
	{"static/img/.gitkeep", ""},
}

func initCommand(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	configFile := filepath.Join(root, config.ConfigFilenames[0])
	site := config.Default()

	files := []struct {
		path    string
		content string
	}{
		{site.Docs.SidebarPath, initSidebars},
		{site.Docs.CustomCSS, initCSS},
	}
	files = append(files, initDocs...)

	if !forceInit {
		paths := []string{configFile}
		for _, f := range files {
			paths = append(paths, config.ResolvePath(root, f.path))
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", p)
			}
		}
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", root, err)
	}
	if err := site.Save(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	for _, f := range files {
		p := config.ResolvePath(root, f.path)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(p), err)
		}
		if err := renameio.WriteFile(p, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to create %s: %w", p, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", p)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\ndocsite project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'docsite build %s' to check the site and write the artifact.\n", root)
	return nil
}
