package env

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/docsite/packages/builtin"
)

var tokenPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Resolver renders {{token}} templates found in configuration values.
// A token is resolved, in order, as an environment variable ({{$NAME}}), a
// function call ({{date('2006')}}) or a zero-argument builtin ({{year}}).
// Unresolved tokens are left in place.
type Resolver struct {
	funcs *builtin.Registry
}

// NewResolver creates a resolver whose time based builtins read from clock.
func NewResolver(clock builtin.Clock) *Resolver {
	return &Resolver{funcs: builtin.NewRegistry(clock)}
}

func (r *Resolver) Resolve(input string) string {
	return tokenPattern.ReplaceAllStringFunc(input, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])

		if val, ok := r.lookup(expr); ok {
			return fmt.Sprintf("%v", val)
		}
		return match
	})
}

func (r *Resolver) lookup(expr string) (any, bool) {
	if strings.HasPrefix(expr, "$") {
		if val := os.Getenv(expr[1:]); val != "" {
			return val, true
		}
		return nil, false
	}

	if strings.Contains(expr, "(") {
		return r.funcs.Call(expr)
	}

	if r.funcs.Has(expr) {
		return r.funcs.Call(expr + "()")
	}
	return nil, false
}

// UnresolvedTokens returns the expressions of tokens in input that cannot be
// resolved, in order of appearance. It returns nil when every token resolves.
func (r *Resolver) UnresolvedTokens(input string) []string {
	var unresolved []string
	for _, m := range tokenPattern.FindAllStringSubmatch(input, -1) {
		expr := strings.TrimSpace(m[1])
		if _, ok := r.lookup(expr); !ok {
			unresolved = append(unresolved, expr)
		}
	}
	return unresolved
}
