package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"romcurator/internal/catalog"
	"romcurator/internal/logging"
	"romcurator/internal/matching"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	var minConfidence float64
	var maxConfidence float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List games whose best match needs a human decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			low := cfg.Matching.CurationMin
			if cmd.Flags().Changed("min") {
				low = minConfidence
			}
			high := cfg.Matching.CurationMax
			if cmd.Flags().Changed("max") {
				high = maxConfidence
			}

			return ctx.withStore(func(store *catalog.Store) error {
				engine := ctx.newEngine(store, logging.NewNop())
				items, err := engine.ManualCurationQueue(cmd.Context(), low, high)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, items)
				}

				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintf(out, "No games waiting for curation in [%.2f, %.2f)\n", low, high)
					return nil
				}

				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						strconv.FormatInt(item.AtomicID, 10),
						item.AtomicTitle,
						strconv.Itoa(item.MatchCount),
						bestMatchSummary(item.BestMatch),
						formatConfidence(item.BestMatch.Confidence),
					})
				}
				table := renderTable(
					[]string{"Atomic", "Title", "Matches", "Best Entry", "Confidence"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&minConfidence, "min", 0, "lower confidence bound, inclusive (default from config)")
	cmd.Flags().Float64Var(&maxConfidence, "max", 0, "upper confidence bound, exclusive (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}

func bestMatchSummary(best matching.Candidate) string {
	return fmt.Sprintf("%s (entry %d)", best.DatTitle, best.DatEntryID)
}
