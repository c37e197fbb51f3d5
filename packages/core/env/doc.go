// Package env handles variable expansion for docsite configuration files.
//
// It provides functionality for:
//   - Expanding ${VAR} and ${VAR:-default} references in config source text
//   - Loading .env files as an additional lookup source
//   - Resolving render-time {{token}} templates such as the footer copyright
//
// Source expansion happens once, before a config file is decoded. Template
// tokens are left untouched by loading and resolved by a Resolver when the
// value is rendered.
package env
