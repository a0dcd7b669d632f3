package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

var expectedTables = []string{
	"platform",
	"atomic_game_unit",
	"game_release",
	"dat_entry",
	"platform_links",
	"dat_atomic_link",
	"resolution_run",
}

// CheckHealth returns diagnostic information about the catalog database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{
		DBPath: s.path,
	}

	if s.path == "" {
		return health, errors.New("catalog database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			health.DatabaseExists = false
			return health, nil
		}
		return health, fmt.Errorf("stat catalog database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("catalog database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("catalog database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping catalog database: %w", err)
	}
	health.DatabaseReadable = true

	if version, err := s.schemaVersion(connCtx); err == nil {
		health.SchemaVersion = version
	}

	tableRows, err := s.db.QueryContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table'")
	if err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("query table info: %w", err)
	}
	defer tableRows.Close()

	present := make(map[string]struct{})
	for tableRows.Next() {
		var name string
		if err := tableRows.Scan(&name); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("scan table info: %w", err)
		}
		present[name] = struct{}{}
	}
	if err := tableRows.Err(); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("iterate table info: %w", err)
	}

	for _, table := range expectedTables {
		if _, ok := present[table]; ok {
			health.TablesPresent = append(health.TablesPresent, table)
		} else {
			health.MissingTables = append(health.MissingTables, table)
		}
	}

	counts := []struct {
		table string
		dest  *int
	}{
		{"atomic_game_unit", &health.AtomicGames},
		{"dat_entry", &health.DatEntries},
		{"dat_atomic_link", &health.Links},
	}
	for _, c := range counts {
		if _, ok := present[c.table]; !ok {
			continue
		}
		row := s.db.QueryRowContext(connCtx, fmt.Sprintf("SELECT COUNT(*) FROM %s", c.table))
		if err := row.Scan(c.dest); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("count %s: %w", c.table, err)
		}
	}

	row := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}
