package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateRetry(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Database) == "" {
		return errors.New("paths.database must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	thresholds := map[string]float64{
		"matching.min_confidence": c.Matching.MinConfidence,
		"matching.auto_threshold": c.Matching.AutoThreshold,
		"matching.curation_min":   c.Matching.CurationMin,
		"matching.curation_max":   c.Matching.CurationMax,
	}
	for key, value := range thresholds {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}
	if c.Matching.MinConfidence > c.Matching.AutoThreshold {
		return errors.New("matching.min_confidence must not exceed matching.auto_threshold")
	}
	if c.Matching.CurationMin >= c.Matching.CurationMax {
		return errors.New("matching.curation_min must be less than matching.curation_max")
	}
	return nil
}

func (c *Config) validateRetry() error {
	if c.Retry.MaxAttempts < 1 {
		return errors.New("retry.max_attempts must be at least 1")
	}
	if err := ensurePositiveMap(map[string]int{
		"retry.initial_delay_ms": c.Retry.InitialDelayMS,
		"retry.max_delay_ms":     c.Retry.MaxDelayMS,
	}); err != nil {
		return err
	}
	if c.Retry.InitialDelayMS > c.Retry.MaxDelayMS {
		return errors.New("retry.initial_delay_ms must not exceed retry.max_delay_ms")
	}
	if c.Retry.BackoffMultiplier < 1 {
		return errors.New("retry.backoff_multiplier must be at least 1")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
