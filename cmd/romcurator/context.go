package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"romcurator/internal/catalog"
	"romcurator/internal/config"
	"romcurator/internal/logging"
	"romcurator/internal/matching"
	"romcurator/internal/retry"
)

// commandContext carries lazily loaded shared state across commands. Config
// is loaded once; stores are opened per command so read commands hold the
// database open no longer than their query.
type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
		c.configExists = exists
	})
	return c.config, c.configErr
}

// withStore opens the catalog for the duration of fn.
func (c *commandContext) withStore(fn func(*catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// newLogger builds the configured logger for commands that write. Read
// commands pass logging.NewNop() instead so tables stay clean.
func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

// newEngine wires a matching engine over the store with the configured
// retry policy.
func (c *commandContext) newEngine(store *catalog.Store, logger *slog.Logger) *matching.Engine {
	policy := retry.DefaultPolicy()
	if c.config != nil {
		policy = retry.FromConfig(c.config.Retry)
	}
	return matching.NewEngine(matching.StoreRepositories(store), policy, logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
