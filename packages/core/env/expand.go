package env

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// LookupFunc returns the value of a variable and whether it was set.
type LookupFunc func(name string) (string, bool)

var referencePattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// OSLookup reads variables from the process environment.
func OSLookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// ChainLookup consults each lookup in order and returns the first hit.
func ChainLookup(lookups ...LookupFunc) LookupFunc {
	return func(name string) (string, bool) {
		for _, lookup := range lookups {
			if lookup == nil {
				continue
			}
			if v, ok := lookup(name); ok {
				return v, true
			}
		}
		return "", false
	}
}

// MapLookup adapts a map of variables, as returned by LoadDotEnv, to a LookupFunc.
func MapLookup(vars map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// UnresolvedError lists the variables referenced without a value or default.
type UnresolvedError struct {
	Names []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved environment variables: %s", strings.Join(e.Names, ", "))
}

// Expand replaces ${VAR} and ${VAR:-default} references in input.
// The default applies when the variable is unset or empty. A reference whose
// variable is unset and has no default is an error; all such names are
// reported together in first-seen order.
func Expand(input []byte, lookup LookupFunc) ([]byte, error) {
	if lookup == nil {
		lookup = OSLookup
	}

	var missing []string
	seen := make(map[string]bool)

	out := referencePattern.ReplaceAllFunc(input, func(match []byte) []byte {
		groups := referencePattern.FindSubmatch(match)
		name := string(groups[1])
		hasDefault := len(groups[2]) > 0

		if v, ok := lookup(name); ok && (v != "" || !hasDefault) {
			return []byte(v)
		}
		if hasDefault {
			return groups[3]
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})

	if len(missing) > 0 {
		return nil, &UnresolvedError{Names: missing}
	}
	return out, nil
}
