// Package logging assembles the structured slog loggers used across
// romcurator commands and services.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the shared attribute keys so matcher and catalog
// code tag log lines consistently. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the system.
package logging
