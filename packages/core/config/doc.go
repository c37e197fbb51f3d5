// Package config defines the docsite Site Configuration Descriptor and how it
// is loaded.
//
// It provides functionality for:
//   - Constructing the descriptor from literal values (Load) or from a
//     docsite.yaml / docsite.json file (LoadFile, FindAndLoad)
//   - Default values for optional settings
//   - Validation of every declarative value, reported as one ConfigurationError
//   - Existence checks for the favicon, custom CSS and sidebar definition files
//   - Structured YAML and JSON representations that round-trip exactly
//
// A loaded descriptor is a private deep copy. Pass it explicitly to the stages
// that consume it; nothing in this package keeps a process-wide descriptor.
package config
