package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"romcurator/internal/catalog"
	"romcurator/internal/logging"
	"romcurator/internal/platformadmin"
)

func newPlatformCommand(ctx *commandContext) *cobra.Command {
	platformCmd := &cobra.Command{
		Use:   "platform",
		Short: "Inspect and manage platform alias groups",
	}

	platformCmd.AddCommand(newPlatformListCommand(ctx))
	platformCmd.AddCommand(newPlatformStatusCommand(ctx))
	platformCmd.AddCommand(newPlatformGroupCommand(ctx))
	platformCmd.AddCommand(newPlatformLinkCommand(ctx))
	platformCmd.AddCommand(newPlatformUnlinkCommand(ctx))
	platformCmd.AddCommand(newPlatformPromoteCommand(ctx))
	platformCmd.AddCommand(newPlatformImportCommand(ctx))

	return platformCmd
}

type platformEntry struct {
	PlatformID int64  `json:"platform_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

func newPlatformListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List platforms with their alias-graph roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				service := platformadmin.NewService(store, logging.NewNop())
				statuses, err := service.Overview(cmd.Context())
				if err != nil {
					return err
				}

				// The store hands platforms back in id order. SQLite's NOCASE
				// collation only folds ASCII, so accented platform names need
				// a locale-aware sort.
				collator := collate.New(language.English, collate.Loose)
				sort.SliceStable(statuses, func(i, j int) bool {
					return collator.CompareString(statuses[i].Platform.Name, statuses[j].Platform.Name) < 0
				})

				if asJSON {
					entries := make([]platformEntry, 0, len(statuses))
					for _, status := range statuses {
						entries = append(entries, platformEntry{
							PlatformID: status.Platform.PlatformID,
							Name:       status.Platform.Name,
							Role:       string(status.Role),
						})
					}
					return writeJSON(cmd, entries)
				}

				out := cmd.OutOrStdout()
				if len(statuses) == 0 {
					fmt.Fprintln(out, "No platforms in the catalog")
					return nil
				}

				rows := make([][]string, 0, len(statuses))
				for _, status := range statuses {
					rows = append(rows, []string{
						strconv.FormatInt(status.Platform.PlatformID, 10),
						status.Platform.Name,
						string(status.Role),
					})
				}
				table := renderTable(
					[]string{"ID", "Name", "Role"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}

type platformStatusResult struct {
	PlatformID int64           `json:"platform_id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Canonical  *platformEntry  `json:"canonical,omitempty"`
	Aliases    []platformEntry `json:"aliases,omitempty"`
}

func newPlatformStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status <platform-id>",
		Short: "Show one platform's role and immediate relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			platformID, err := parseID(args[0], "platform id")
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				service := platformadmin.NewService(store, logging.NewNop())
				status, err := service.Status(cmd.Context(), platformID)
				if err != nil {
					return err
				}

				if asJSON {
					result := platformStatusResult{
						PlatformID: status.Platform.PlatformID,
						Name:       status.Platform.Name,
						Role:       string(status.Role),
					}
					if status.Canonical != nil {
						result.Canonical = &platformEntry{
							PlatformID: status.Canonical.PlatformID,
							Name:       status.Canonical.Name,
							Role:       string(platformadmin.RoleCanonical),
						}
					}
					for _, alias := range status.Aliases {
						result.Aliases = append(result.Aliases, platformEntry{
							PlatformID: alias.PlatformID,
							Name:       alias.Name,
							Role:       string(platformadmin.RoleAlias),
						})
					}
					return writeJSON(cmd, result)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (platform %d)\n", status.Platform.Name, status.Platform.PlatformID)
				fmt.Fprintf(out, "Role: %s\n", status.Role)
				if status.Canonical != nil {
					fmt.Fprintf(out, "Canonical: %s (%d)\n", status.Canonical.Name, status.Canonical.PlatformID)
				}
				if len(status.Aliases) > 0 {
					names := make([]string, 0, len(status.Aliases))
					for _, alias := range status.Aliases {
						names = append(names, fmt.Sprintf("%s (%d)", alias.Name, alias.PlatformID))
					}
					fmt.Fprintf(out, "Aliases: %s\n", strings.Join(names, ", "))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}

type platformGroupResult struct {
	CanonicalID int64           `json:"canonical_id"`
	Members     []platformEntry `json:"members"`
}

func newPlatformGroupCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "group <platform-id>",
		Short: "Show the full alias group a platform belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			platformID, err := parseID(args[0], "platform id")
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				service := platformadmin.NewService(store, logging.NewNop())
				group, err := service.Group(cmd.Context(), platformID)
				if err != nil {
					return err
				}

				if asJSON {
					result := platformGroupResult{CanonicalID: group.CanonicalID}
					for _, member := range group.Members {
						role := platformadmin.RoleAlias
						if member.PlatformID == group.CanonicalID {
							role = platformadmin.RoleCanonical
						}
						result.Members = append(result.Members, platformEntry{
							PlatformID: member.PlatformID,
							Name:       member.Name,
							Role:       string(role),
						})
					}
					return writeJSON(cmd, result)
				}

				rows := make([][]string, 0, len(group.Members))
				for _, member := range group.Members {
					rows = append(rows, []string{
						strconv.FormatInt(member.PlatformID, 10),
						member.Name,
						yesNo(member.PlatformID == group.CanonicalID),
					})
				}
				table := renderTable(
					[]string{"ID", "Name", "Canonical"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}

func newPlatformLinkCommand(ctx *commandContext) *cobra.Command {
	var confidence float64

	cmd := &cobra.Command{
		Use:   "link <canonical-id> <alias-id>...",
		Short: "Point alias platforms at a canonical platform",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonicalID, err := parseID(args[0], "canonical platform id")
			if err != nil {
				return err
			}
			aliasIDs := make([]int64, 0, len(args)-1)
			for _, arg := range args[1:] {
				aliasID, err := parseID(arg, "alias platform id")
				if err != nil {
					return err
				}
				aliasIDs = append(aliasIDs, aliasID)
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *catalog.Store) error {
				service := platformadmin.NewService(store, logger)
				created, err := service.CreateAliases(cmd.Context(), canonicalID, aliasIDs, confidence)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if created == 0 {
					fmt.Fprintln(out, "No new alias links; all requested links already exist")
					return nil
				}
				fmt.Fprintf(out, "Created %d alias link(s) under platform %d\n", created, canonicalID)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&confidence, "confidence", 1.0, "confidence to record on new alias links")
	return cmd
}

func newPlatformUnlinkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <canonical-id> <alias-id>",
		Short: "Remove one alias link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonicalID, err := parseID(args[0], "canonical platform id")
			if err != nil {
				return err
			}
			aliasID, err := parseID(args[1], "alias platform id")
			if err != nil {
				return err
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *catalog.Store) error {
				service := platformadmin.NewService(store, logger)
				removed, err := service.RemoveAlias(cmd.Context(), canonicalID, aliasID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !removed {
					fmt.Fprintf(out, "No alias link between platforms %d and %d\n", canonicalID, aliasID)
					return nil
				}
				fmt.Fprintf(out, "Removed alias link between platforms %d and %d\n", canonicalID, aliasID)
				return nil
			})
		},
	}
}

func newPlatformPromoteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <platform-id>",
		Short: "Make a platform the canonical member of its alias group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			platformID, err := parseID(args[0], "platform id")
			if err != nil {
				return err
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *catalog.Store) error {
				service := platformadmin.NewService(store, logger)
				written, err := service.Promote(cmd.Context(), platformID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Promoted platform %d; rewrote %d alias link(s)\n", platformID, written)
				return nil
			})
		},
	}
}

func newPlatformImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <seed-file>",
		Short: "Import alias groups from a YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer file.Close()

			return ctx.withStore(func(store *catalog.Store) error {
				service := platformadmin.NewService(store, logger)
				stats, err := service.ImportSeed(cmd.Context(), file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d group(s): %d link(s) created, %d already present, %d unknown name(s)\n",
					stats.Groups, stats.Created, stats.Existing, stats.Unknown)
				return nil
			})
		},
	}
}
