package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"romcurator/internal/catalog"
)

type unmatchedEntry struct {
	AtomicID     int64  `json:"atomic_id"`
	Title        string `json:"title"`
	ReleaseCount int    `json:"release_count"`
	Platforms    string `json:"platforms"`
}

func newUnmatchedCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "unmatched",
		Short: "List games with no DAT link and no no-match verdict",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				games, err := store.UnmatchedAtomicGames(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					entries := make([]unmatchedEntry, 0, len(games))
					for _, game := range games {
						entries = append(entries, unmatchedEntry{
							AtomicID:     game.AtomicID,
							Title:        game.CanonicalTitle,
							ReleaseCount: game.ReleaseCount,
							Platforms:    game.Platforms,
						})
					}
					return writeJSON(cmd, entries)
				}

				out := cmd.OutOrStdout()
				if len(games) == 0 {
					fmt.Fprintln(out, "Every game is linked or marked no-match")
					return nil
				}

				rows := make([][]string, 0, len(games))
				for _, game := range games {
					rows = append(rows, []string{
						strconv.FormatInt(game.AtomicID, 10),
						game.CanonicalTitle,
						strconv.Itoa(game.ReleaseCount),
						game.Platforms,
					})
				}
				table := renderTable(
					[]string{"Atomic", "Title", "Releases", "Platforms"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}
