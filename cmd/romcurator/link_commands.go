package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"romcurator/internal/catalog"
	"romcurator/internal/logging"
)

func newLinkCommand(ctx *commandContext) *cobra.Command {
	var confidence float64

	cmd := &cobra.Command{
		Use:   "link <atomic-id> <dat-entry-id>",
		Short: "Record a manual link between a game and a DAT entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			atomicID, err := parseID(args[0], "atomic game id")
			if err != nil {
				return err
			}
			datEntryID, err := parseID(args[1], "dat entry id")
			if err != nil {
				return err
			}
			if confidence <= 0 || confidence > 1 {
				return fmt.Errorf("confidence %.2f out of range (0, 1]", confidence)
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *catalog.Store) error {
				game, err := store.AtomicGame(cmd.Context(), atomicID)
				if err != nil {
					return err
				}
				if game == nil {
					return fmt.Errorf("atomic game %d not found", atomicID)
				}
				entry, err := store.DatEntryByID(cmd.Context(), datEntryID)
				if err != nil {
					return err
				}
				if entry == nil {
					return fmt.Errorf("dat entry %d not found", datEntryID)
				}

				created, err := store.CreateLink(cmd.Context(), atomicID, datEntryID, confidence, catalog.MatchManual)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if !created {
					fmt.Fprintf(out, "Link %s -> %s already exists, skipped\n", game.CanonicalTitle, entry.ReleaseTitle)
					return nil
				}
				logger.Info("manual link recorded",
					logging.Int64(logging.FieldAtomicID, atomicID),
					logging.Int64(logging.FieldDatEntryID, datEntryID),
					logging.Float64(logging.FieldConfidence, confidence))
				fmt.Fprintf(out, "Linked %s -> %s (%.2f)\n", game.CanonicalTitle, entry.ReleaseTitle, confidence)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&confidence, "confidence", 1.0, "confidence to record on the link")
	return cmd
}

func newNoMatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "nomatch <atomic-id>",
		Short: "Mark a game as having no DAT counterpart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			atomicID, err := parseID(args[0], "atomic game id")
			if err != nil {
				return err
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *catalog.Store) error {
				game, err := store.AtomicGame(cmd.Context(), atomicID)
				if err != nil {
					return err
				}
				if game == nil {
					return fmt.Errorf("atomic game %d not found", atomicID)
				}

				created, err := store.MarkNoMatch(cmd.Context(), atomicID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if !created {
					fmt.Fprintf(out, "%s is already marked no-match\n", game.CanonicalTitle)
					return nil
				}
				logger.Info("no-match verdict recorded", logging.Int64(logging.FieldAtomicID, atomicID))
				fmt.Fprintf(out, "Marked %s as no-match\n", game.CanonicalTitle)
				return nil
			})
		},
	}
}
