package builtin

import (
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Func func(args []string) any

// Clock returns the time used by time based functions.
type Clock func() time.Time

type Registry struct {
	funcs map[string]Func
	clock Clock
}

// NewRegistry creates a registry with the default functions bound to clock.
// A nil clock uses time.Now.
func NewRegistry(clock Clock) *Registry {
	if clock == nil {
		clock = time.Now
	}
	r := &Registry{
		funcs: make(map[string]Func),
		clock: clock,
	}
	r.registerDefaults()
	return r
}

func (r *Registry) registerDefaults() {
	r.funcs["year"] = r.funcYear
	r.funcs["date"] = r.funcDate
	r.funcs["now"] = r.funcNow
	r.funcs["timestamp"] = r.funcTimestamp
	r.funcs["env"] = funcEnv
	r.funcs["urlEncode"] = funcURLEncode
}

// Has reports whether a function with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

var funcCallPattern = regexp.MustCompile(`^(\w+)\((.*)\)$`)

func (r *Registry) Call(expr string) (any, bool) {
	matches := funcCallPattern.FindStringSubmatch(expr)
	if matches == nil {
		return nil, false
	}

	name := matches[1]
	argsStr := matches[2]

	fn, ok := r.funcs[name]
	if !ok {
		return nil, false
	}

	var args []string
	if argsStr != "" {
		args = parseArgs(argsStr)
	}

	return fn(args), true
}

func parseArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := byte(0)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case !inQuote && (ch == '"' || ch == '\''):
			inQuote = true
			quoteChar = ch
		case inQuote && ch == quoteChar:
			inQuote = false
			quoteChar = 0
		case !inQuote && ch == ',':
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	if current.Len() > 0 {
		args = append(args, strings.TrimSpace(current.String()))
	}

	return args
}

func (r *Registry) funcYear(_ []string) any {
	return strconv.Itoa(r.clock().Year())
}

func (r *Registry) funcDate(args []string) any {
	layout := "2006-01-02"
	if len(args) >= 1 && args[0] != "" {
		layout = args[0]
	}
	return r.clock().UTC().Format(layout)
}

func (r *Registry) funcNow(_ []string) any {
	return r.clock().UTC().Format(time.RFC3339)
}

func (r *Registry) funcTimestamp(_ []string) any {
	return r.clock().Unix()
}

func funcEnv(args []string) any {
	if len(args) < 1 {
		return ""
	}
	return os.Getenv(args[0])
}

func funcURLEncode(args []string) any {
	if len(args) < 1 {
		return ""
	}
	return url.QueryEscape(args[0])
}
