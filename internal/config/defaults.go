package config

const (
	defaultDatabasePath = "~/.local/share/romcurator/romcurator.db"
	defaultLogDir       = "~/.local/share/romcurator/logs"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	defaultMinConfidence = 0.7
	defaultAutoThreshold = 0.95
	defaultCurationMin   = 0.5
	defaultCurationMax   = 0.95

	defaultRetryMaxAttempts       = 3
	defaultRetryInitialDelayMS    = 1000
	defaultRetryMaxDelayMS        = 30000
	defaultRetryBackoffMultiplier = 2.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Database: defaultDatabasePath,
			LogDir:   defaultLogDir,
		},
		Matching: Matching{
			MinConfidence: defaultMinConfidence,
			AutoThreshold: defaultAutoThreshold,
			CurationMin:   defaultCurationMin,
			CurationMax:   defaultCurationMax,
		},
		Retry: Retry{
			MaxAttempts:       defaultRetryMaxAttempts,
			InitialDelayMS:    defaultRetryInitialDelayMS,
			MaxDelayMS:        defaultRetryMaxDelayMS,
			BackoffMultiplier: defaultRetryBackoffMultiplier,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
