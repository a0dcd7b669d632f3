package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"romcurator/internal/catalog"
)

type reportResult struct {
	GeneratedAt     time.Time              `json:"generated_at"`
	TotalGames      int                    `json:"total_games"`
	TotalEntries    int                    `json:"total_entries"`
	LinkedGames     int                    `json:"linked_games"`
	UnlinkedGames   int                    `json:"unlinked_games"`
	AutoLinked      int                    `json:"auto_linked"`
	ManualLinked    int                    `json:"manual_linked"`
	MarkedNoMatch   int                    `json:"marked_no_match"`
	LinkedPercent   float64                `json:"linked_percent"`
	Platforms       []reportPlatformEntry  `json:"platforms"`
	ConfidenceBands []reportConfidenceBand `json:"confidence_bands"`
}

type reportPlatformEntry struct {
	Platform      string  `json:"platform"`
	TotalGames    int     `json:"total_games"`
	LinkedGames   int     `json:"linked_games"`
	LinkedPercent float64 `json:"linked_percent"`
}

type reportConfidenceBand struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

func newReportCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize matching coverage across the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				report, err := store.BuildReport(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, buildReportResult(report))
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Matching report (%s)\n", report.GeneratedAt.Format(time.RFC3339))
				fmt.Fprintf(out, "Games: %d total, %d linked (%.1f%%), %d unlinked, %d marked no-match\n",
					report.TotalGames, report.LinkedGames, report.LinkedPercent, report.UnlinkedGames, report.MarkedNoMatch)
				fmt.Fprintf(out, "Links: %d automatic, %d manual, against %d DAT entries\n",
					report.AutoLinked, report.ManualLinked, report.TotalEntries)

				if len(report.Platforms) > 0 {
					rows := make([][]string, 0, len(report.Platforms))
					for _, p := range report.Platforms {
						rows = append(rows, []string{
							p.Platform,
							strconv.Itoa(p.TotalGames),
							strconv.Itoa(p.LinkedGames),
							fmt.Sprintf("%.1f%%", p.LinkedPercent),
						})
					}
					fmt.Fprintln(out)
					table := renderTable(
						[]string{"Platform", "Games", "Linked", "Coverage"},
						rows,
						[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
					)
					fmt.Fprintln(out, table)
				}

				if len(report.ConfidenceBands) > 0 {
					rows := make([][]string, 0, len(report.ConfidenceBands))
					for _, band := range report.ConfidenceBands {
						rows = append(rows, []string{band.Range, strconv.Itoa(band.Count)})
					}
					table := renderTable(
						[]string{"Confidence", "Links"},
						rows,
						[]columnAlignment{alignLeft, alignRight},
					)
					fmt.Fprintln(out, table)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}

func buildReportResult(report *catalog.MatchingReport) reportResult {
	result := reportResult{
		GeneratedAt:   report.GeneratedAt,
		TotalGames:    report.TotalGames,
		TotalEntries:  report.TotalEntries,
		LinkedGames:   report.LinkedGames,
		UnlinkedGames: report.UnlinkedGames,
		AutoLinked:    report.AutoLinked,
		ManualLinked:  report.ManualLinked,
		MarkedNoMatch: report.MarkedNoMatch,
		LinkedPercent: report.LinkedPercent,
	}
	for _, p := range report.Platforms {
		result.Platforms = append(result.Platforms, reportPlatformEntry{
			Platform:      p.Platform,
			TotalGames:    p.TotalGames,
			LinkedGames:   p.LinkedGames,
			LinkedPercent: p.LinkedPercent,
		})
	}
	for _, band := range report.ConfidenceBands {
		result.ConfidenceBands = append(result.ConfidenceBands, reportConfidenceBand{
			Range: band.Range,
			Count: band.Count,
		})
	}
	return result
}
