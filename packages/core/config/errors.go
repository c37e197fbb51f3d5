package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration classifies invalid or inconsistent declarative values.
	// Use errors.Is(err, ErrConfiguration) instead of type assertions.
	ErrConfiguration = errors.New("configuration error")

	// ErrResourceNotFound classifies referenced local paths that do not exist.
	ErrResourceNotFound = errors.New("resource not found")
)

// Violation is a single invalid value.
type Violation struct {
	Field   string
	Value   any
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ConfigurationError reports every violation found while loading a descriptor.
// Err holds the underlying cause when the source could not be decoded.
type ConfigurationError struct {
	Source     string
	Violations []Violation
	Err        error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid site configuration")
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	switch len(e.Violations) {
	case 0:
	case 1:
		fmt.Fprintf(&b, ": %s", e.Violations[0])
	default:
		msgs := make([]string, len(e.Violations))
		for i, v := range e.Violations {
			msgs[i] = v.String()
		}
		fmt.Fprintf(&b, ":\n  - %s", strings.Join(msgs, "\n  - "))
	}
	return b.String()
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// HasField reports whether a violation was recorded for field.
func (e *ConfigurationError) HasField(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// ResourceNotFoundError reports a referenced local path that does not exist.
type ResourceNotFoundError struct {
	Field    string // descriptor field holding the reference
	Path     string // path as declared
	Resolved string // path that was checked
	Err      error
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s: referenced file %q not found (looked at %s)", e.Field, e.Path, e.Resolved)
}

func (e *ResourceNotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

func (e *ResourceNotFoundError) Unwrap() error {
	return e.Err
}
