package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/links"
)

// Exit codes for docsite CLI
const (
	// ExitSuccess indicates every check passed
	ExitSuccess = 0

	// ExitBrokenLinks indicates broken links under an error policy
	ExitBrokenLinks = 1

	// ExitFailure indicates any other runtime failure
	ExitFailure = 2

	// ExitConfigError indicates an invalid descriptor or a missing referenced file
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// reportedError marks an error the formatter already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// usageArgs marks argument validation failures as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func exitCode(err error) int {
	var uErr *usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &uErr):
		return ExitUsageError
	case errors.Is(err, links.ErrBrokenLinks):
		return ExitBrokenLinks
	case errors.Is(err, config.ErrConfiguration), errors.Is(err, config.ErrResourceNotFound):
		return ExitConfigError
	default:
		return ExitFailure
	}
}
