package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"romcurator/internal/catalog"
	"romcurator/internal/logging"
	"romcurator/internal/matching"
)

type matchesResult struct {
	AtomicID   int64                `json:"atomic_id"`
	Title      string               `json:"title"`
	Candidates []matching.Candidate `json:"candidates"`
}

func newMatchesCommand(ctx *commandContext) *cobra.Command {
	var minConfidence float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "matches <atomic-id>",
		Short: "Score one game against the DAT entries in scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			atomicID, err := parseID(args[0], "atomic game id")
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			floor := cfg.Matching.MinConfidence
			if cmd.Flags().Changed("min-confidence") {
				floor = minConfidence
			}

			return ctx.withStore(func(store *catalog.Store) error {
				game, err := store.AtomicGame(cmd.Context(), atomicID)
				if err != nil {
					return err
				}
				if game == nil {
					return fmt.Errorf("atomic game %d not found", atomicID)
				}

				engine := ctx.newEngine(store, logging.NewNop())
				candidates, err := engine.FindMatches(cmd.Context(), atomicID, floor)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, matchesResult{
						AtomicID:   atomicID,
						Title:      game.CanonicalTitle,
						Candidates: candidates,
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (atomic %d)\n", game.CanonicalTitle, atomicID)
				if len(candidates) == 0 {
					fmt.Fprintf(out, "No candidates at or above %.2f\n", floor)
					return nil
				}

				rows := make([][]string, 0, len(candidates))
				for _, candidate := range candidates {
					rows = append(rows, []string{
						strconv.FormatInt(candidate.DatEntryID, 10),
						candidate.DatTitle,
						candidate.PlatformName,
						formatConfidence(candidate.Confidence),
						formatReasons(candidate),
					})
				}
				table := renderTable(
					[]string{"Entry", "DAT Title", "Platform", "Confidence", "Reasons"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "candidate floor (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}
