package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"romcurator/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to point paths.database at your catalog before linking.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configExists {
				fmt.Fprintln(out, "Config file did not exist; defaults are in effect")
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "paths.database      = %s\n", cfg.Paths.Database)
			fmt.Fprintf(out, "paths.log_dir       = %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "matching.min_confidence = %.2f\n", cfg.Matching.MinConfidence)
			fmt.Fprintf(out, "matching.auto_threshold = %.2f\n", cfg.Matching.AutoThreshold)
			fmt.Fprintf(out, "matching.curation_min   = %.2f\n", cfg.Matching.CurationMin)
			fmt.Fprintf(out, "matching.curation_max   = %.2f\n", cfg.Matching.CurationMax)
			fmt.Fprintf(out, "retry.max_attempts      = %d\n", cfg.Retry.MaxAttempts)
			fmt.Fprintf(out, "retry.initial_delay_ms  = %d\n", cfg.Retry.InitialDelayMS)
			fmt.Fprintf(out, "retry.max_delay_ms      = %d\n", cfg.Retry.MaxDelayMS)
			fmt.Fprintf(out, "retry.backoff_multiplier = %.1f\n", cfg.Retry.BackoffMultiplier)
			fmt.Fprintf(out, "logging.format          = %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "logging.level           = %s\n", cfg.Logging.Level)
			return nil
		},
	}
}
