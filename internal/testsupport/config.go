package testsupport

import (
	"path/filepath"
	"testing"

	"romcurator/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Database = filepath.Join(base, "romcurator.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAutoThreshold overrides the auto-link gate on the test config.
func WithAutoThreshold(value float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.AutoThreshold = value
	}
}

// WithMinConfidence overrides the candidate floor on the test config.
func WithMinConfidence(value float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.MinConfidence = value
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.Database)
}
