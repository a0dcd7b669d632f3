package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"romcurator/internal/catalog"
	"romcurator/internal/logging"
)

type autolinkResult struct {
	RunID     string  `json:"run_id"`
	Threshold float64 `json:"threshold"`
	Created   int     `json:"created"`
	Skipped   int     `json:"skipped"`
	Errors    int     `json:"errors"`
}

func newAutolinkCommand(ctx *commandContext) *cobra.Command {
	var threshold float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "autolink",
		Short: "Link every game with exactly one high-confidence match",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			gate := cfg.Matching.AutoThreshold
			if cmd.Flags().Changed("threshold") {
				gate = threshold
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			// One writer at a time. Concurrent runs would not corrupt the
			// store, but they would double-log and fight over run rows.
			lock := flock.New(filepath.Join(cfg.Paths.LogDir, "romcurator.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another autolink run is already in progress")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			return ctx.withStore(func(store *catalog.Store) error {
				runID := uuid.NewString()
				if err := store.BeginResolutionRun(cmd.Context(), runID, gate); err != nil {
					return err
				}

				engine := ctx.newEngine(store, logger)
				stats, runErr := engine.CreateAutomaticLinks(cmd.Context(), gate)

				runStatus := catalog.RunCompleted
				if runErr != nil {
					runStatus = catalog.RunFailed
				}
				if err := store.FinishResolutionRun(cmd.Context(), runID, runStatus, stats.Created, stats.Skipped, stats.Errors); err != nil {
					if runErr == nil {
						runErr = err
					} else {
						logger.Error("finalize resolution run failed",
							logging.String(logging.FieldRunID, runID),
							logging.Error(err))
					}
				}
				if runErr != nil {
					return runErr
				}

				if asJSON {
					return writeJSON(cmd, autolinkResult{
						RunID:     runID,
						Threshold: gate,
						Created:   stats.Created,
						Skipped:   stats.Skipped,
						Errors:    stats.Errors,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Run %s (threshold %.2f): created %d, skipped %d, errors %d\n",
					runID, gate, stats.Created, stats.Skipped, stats.Errors)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "confidence required to auto-link (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}
