// Package builtin provides the functions available to render-time templates
// in site configuration values, such as the footer copyright line.
//
// Available functions:
//   - year(): Current four digit year
//   - date(layout): Current date formatted with a Go time layout (default 2006-01-02)
//   - now(): Current time in RFC 3339 format
//   - timestamp(): Current Unix timestamp
//   - env(name): Value of an environment variable
//   - urlEncode(value): Query-escape a string
//
// Functions are invoked using the {{functionName(args)}} syntax. All time based
// functions read from the registry clock so templates render deterministically
// in tests.
package builtin
