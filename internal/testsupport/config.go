// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"pontolink/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Workbook = filepath.Join(base, "workbook.csv")
	cfg.Paths.FilesRoot = filepath.Join(base, "files")
	cfg.Paths.SessionDB = filepath.Join(base, "sessions.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithRouting replaces the routing ranges on the test config.
func WithRouting(ranges ...config.RoutingRange) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Routing.Ranges = ranges
	}
}

// WithMatching overrides the matching constants on the test config.
func WithMatching(m config.Matching) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching = m
	}
}
