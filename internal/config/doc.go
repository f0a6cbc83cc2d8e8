// Package config loads and merges the folio configuration from environment
// variables, command-line flags, an optional JSON file, and built-in
// defaults.
//
// Sources are merged with first-source-wins precedence: a value set in the
// environment beats the same flag, which beats the JSON file, which beats
// the default. Server and client binaries share the same [StructuredConfig]
// type and differ only in which sections they validate.
package config
