package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/core/env"
	"github.com/abdul-hamid-achik/docsite/packages/output"
	"github.com/abdul-hamid-achik/docsite/packages/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config|directory...]",
	Short: "Validate site descriptors",
	Long: `Validate site descriptors against the JSON Schema, then load them:
defaults, value checks and referenced file checks.

Examples:
  docsite validate
  docsite validate docsite.yaml
  docsite validate ./site-a ./site-b
  docsite validate --builtin`,
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter(cmd)
	if err != nil {
		return err
	}

	targets := args
	if len(targets) == 0 {
		targets = []string{target(cmd, nil)}
	}

	var firstErr error
	for _, t := range targets {
		source, err := validateOne(t)
		formatter.FormatValidation(source, err)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := output.Flush(formatter); err != nil {
		return err
	}
	if firstErr != nil {
		return reported(fmt.Errorf("validation failed: %w", firstErr))
	}
	return nil
}

// validateOne checks one descriptor location and returns the source it checked.
func validateOne(location string) (string, error) {
	if location == BuiltinName {
		_, err := loadDescriptor(location)
		return location, err
	}

	file, err := resolveFile(location)
	if err != nil {
		return location, err
	}
	if err := validateSchema(file); err != nil {
		return file, err
	}
	_, err = loadDescriptor(file)
	return file, err
}

// validateSchema checks the raw document, after ${VAR} expansion, against the
// generated JSON Schema.
func validateSchema(file string) error {
	format, err := config.FormatFromPath(file)
	if err != nil {
		return &config.ConfigurationError{Source: file, Err: err}
	}
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &config.ResourceNotFoundError{Field: "config", Path: file, Resolved: file, Err: err}
		}
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	lk, err := lookup()
	if err != nil {
		return err
	}
	expanded, err := env.Expand(data, lk)
	if err != nil {
		return &config.ConfigurationError{Source: file, Err: err}
	}

	if err := schema.Validate(expanded, format); err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Source = file
		}
		return err
	}
	return nil
}
