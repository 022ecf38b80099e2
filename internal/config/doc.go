// Package config loads, validates, and normalizes pontolink's TOML
// configuration.
package config
