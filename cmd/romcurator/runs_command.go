package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"romcurator/internal/catalog"
)

type runEntry struct {
	RunID         string     `json:"run_id"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	AutoThreshold float64    `json:"auto_threshold"`
	Status        string     `json:"status"`
	Created       int        `json:"created"`
	Skipped       int        `json:"skipped"`
	Errors        int        `json:"errors"`
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent automatic linking runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be positive, got %d", limit)
			}
			return ctx.withStore(func(store *catalog.Store) error {
				runs, err := store.RecentResolutionRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}

				if asJSON {
					entries := make([]runEntry, 0, len(runs))
					for _, run := range runs {
						entries = append(entries, runEntry{
							RunID:         run.RunID,
							StartedAt:     run.StartedAt,
							FinishedAt:    run.FinishedAt,
							AutoThreshold: run.AutoThreshold,
							Status:        string(run.Status),
							Created:       run.Created,
							Skipped:       run.Skipped,
							Errors:        run.Errors,
						})
					}
					return writeJSON(cmd, entries)
				}

				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No resolution runs recorded")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.RunID,
						run.StartedAt.Format(time.RFC3339),
						string(run.Status),
						formatConfidence(run.AutoThreshold),
						strconv.Itoa(run.Created),
						strconv.Itoa(run.Skipped),
						strconv.Itoa(run.Errors),
					})
				}
				table := renderTable(
					[]string{"Run", "Started", "Status", "Threshold", "Created", "Skipped", "Errors"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}
