// Package config loads application configuration from environment
// variables (prefix T20) merged over an optional YAML file, with
// validated defaults for the server, dataset, analysis, and export
// settings.
package config
