package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/core/env"
)

// BuiltinName stands for the built-in canonical descriptor where a file is expected.
const BuiltinName = ":builtin"

// descriptor is a loaded site descriptor and where it came from.
type descriptor struct {
	Site   *config.SiteConfig
	Source string // file path, or BuiltinName
	Root   string // site root the descriptor's paths are resolved against
}

// target picks the descriptor location: the argument, then the --builtin
// flag, then the config setting, then the working directory.
func target(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if builtin, _ := cmd.Flags().GetBool("builtin"); builtin {
		return BuiltinName
	}
	if settings.Config != "" {
		return settings.Config
	}
	return "."
}

// lookup returns the ${VAR} lookup: process environment first, then the
// --env-file variables.
func lookup() (env.LookupFunc, error) {
	if settings.EnvFile == "" {
		return env.OSLookup, nil
	}
	vars, err := env.LoadDotEnv(settings.EnvFile)
	if err != nil {
		return nil, err
	}
	return env.ChainLookup(env.OSLookup, env.MapLookup(vars)), nil
}

// loadDescriptor loads the descriptor at location, which may be a file, a site
// directory or BuiltinName.
func loadDescriptor(location string, opts ...config.LoadOption) (*descriptor, error) {
	lk, err := lookup()
	if err != nil {
		return nil, err
	}
	opts = append([]config.LoadOption{config.WithLookup(lk)}, opts...)

	if location == BuiltinName {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		site, err := config.Load(config.Default(), append(opts, config.WithRoot(cwd))...)
		if err != nil {
			return nil, err
		}
		return &descriptor{Site: site, Source: BuiltinName, Root: cwd}, nil
	}

	info, err := os.Stat(location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &config.ResourceNotFoundError{Field: "config", Path: location, Resolved: location, Err: err}
		}
		return nil, fmt.Errorf("failed to access %s: %w", location, err)
	}

	if info.IsDir() {
		site, file, err := config.FindAndLoad(location, opts...)
		if err != nil {
			return nil, err
		}
		return &descriptor{Site: site, Source: file, Root: filepath.Dir(file)}, nil
	}

	site, err := config.LoadFile(location, opts...)
	if err != nil {
		return nil, err
	}
	return &descriptor{Site: site, Source: location, Root: filepath.Dir(location)}, nil
}

// resolveFile returns the descriptor file for location, searching directories.
func resolveFile(location string) (string, error) {
	info, err := os.Stat(location)
	if err != nil || !info.IsDir() {
		return location, nil
	}
	for _, name := range config.ConfigFilenames {
		p := filepath.Join(location, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", &config.ResourceNotFoundError{
		Field:    "config",
		Path:     location,
		Resolved: filepath.Join(location, config.ConfigFilenames[0]),
		Err:      os.ErrNotExist,
	}
}
