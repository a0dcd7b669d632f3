package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"romcurator/internal/catalog"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}

	dbCmd.AddCommand(newDBInitCommand(ctx))
	dbCmd.AddCommand(newDBHealthCommand(ctx))

	return dbCmd
}

func newDBInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog database and apply migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the store applies any pending migrations.
			return ctx.withStore(func(store *catalog.Store) error {
				health, err := store.CheckHealth(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s (schema version %s)\n",
					store.Path(), health.SchemaVersion)
				return nil
			})
		},
	}
}

type dbHealthResult struct {
	Path             string   `json:"path"`
	DatabaseExists   bool     `json:"database_exists"`
	DatabaseReadable bool     `json:"database_readable"`
	SchemaVersion    string   `json:"schema_version"`
	TablesPresent    []string `json:"tables_present"`
	MissingTables    []string `json:"missing_tables,omitempty"`
	AtomicGames      int      `json:"atomic_games"`
	DatEntries       int      `json:"dat_entries"`
	Links            int      `json:"links"`
	IntegrityCheck   bool     `json:"integrity_check"`
	Error            string   `json:"error,omitempty"`
}

func newDBHealthCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check catalog database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				health, err := store.CheckHealth(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, dbHealthResult{
						Path:             health.DBPath,
						DatabaseExists:   health.DatabaseExists,
						DatabaseReadable: health.DatabaseReadable,
						SchemaVersion:    health.SchemaVersion,
						TablesPresent:    health.TablesPresent,
						MissingTables:    health.MissingTables,
						AtomicGames:      health.AtomicGames,
						DatEntries:       health.DatEntries,
						Links:            health.Links,
						IntegrityCheck:   health.IntegrityCheck,
						Error:            health.Error,
					})
				}

				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)

				fmt.Fprintln(stdout, "Database health")
				fmt.Fprintln(stdout, renderStatusLine("Path", statusInfo, health.DBPath, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Exists", okOrError(health.DatabaseExists), yesNo(health.DatabaseExists), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Readable", okOrError(health.DatabaseReadable), yesNo(health.DatabaseReadable), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Schema version", statusInfo, health.SchemaVersion, colorize))

				tablesKind := statusOK
				tablesDetail := fmt.Sprintf("%d present", len(health.TablesPresent))
				if len(health.MissingTables) > 0 {
					tablesKind = statusError
					tablesDetail = fmt.Sprintf("missing %s", strings.Join(health.MissingTables, ", "))
				}
				fmt.Fprintln(stdout, renderStatusLine("Tables", tablesKind, tablesDetail, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Integrity check", okOrError(health.IntegrityCheck), yesNo(health.IntegrityCheck), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Atomic games", statusInfo, strconv.Itoa(health.AtomicGames), colorize))
				fmt.Fprintln(stdout, renderStatusLine("DAT entries", statusInfo, strconv.Itoa(health.DatEntries), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Links", statusInfo, strconv.Itoa(health.Links), colorize))
				if health.Error != "" {
					fmt.Fprintln(stdout, renderStatusLine("Error", statusError, health.Error, colorize))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}
