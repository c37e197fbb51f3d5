// Package cmd implements the docsite CLI commands using Cobra.
//
// Available commands:
//   - validate: Check descriptors against the schema and load them
//   - show: Print a loaded descriptor, or one value from it
//   - build: Scan docs, check links and write the descriptor artifact
//   - diff: Compare two descriptors field by field
//   - schema: Print the descriptor JSON Schema
//   - init: Create a new site from the canonical descriptor
//   - version: Show docsite version information
//
// Tool settings come from flags, DOCSITE_* variables and .docsite-cli.yaml,
// merged with Viper. The exit code tells broken links (1), other failures (2),
// descriptor errors (3) and usage errors (64) apart.
package cmd
