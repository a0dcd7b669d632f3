package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// EntriesForPlatforms returns DAT entries on any of the given platforms that
// carry a parsed base title, in stable identifier order. Entries whose parser
// produced no base title are filtered at the query layer; they would score
// against nothing.
func (s *Store) EntriesForPlatforms(ctx context.Context, platformIDs []int64) ([]DatEntry, error) {
	if len(platformIDs) == 0 {
		return nil, nil
	}

	query, args, err := sq.Select(
		"de.dat_entry_id",
		"de.platform_id",
		"p.name",
		"de.release_title",
		"de.base_title",
	).
		From("dat_entry de").
		Join("platform p ON de.platform_id = p.platform_id").
		Where(sq.Eq{"de.platform_id": platformIDs}).
		Where("de.base_title <> ''").
		OrderBy("de.dat_entry_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entries query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query dat entries: %w", err)
	}
	defer rows.Close()

	var entries []DatEntry
	for rows.Next() {
		var entry DatEntry
		if err := rows.Scan(&entry.DatEntryID, &entry.PlatformID, &entry.PlatformName, &entry.ReleaseTitle, &entry.BaseTitle); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DatEntryByID fetches one DAT entry by identifier. Returns nil when absent.
func (s *Store) DatEntryByID(ctx context.Context, datEntryID int64) (*DatEntry, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT de.dat_entry_id, de.platform_id, p.name, de.release_title, de.base_title
        FROM dat_entry de
        JOIN platform p ON de.platform_id = p.platform_id
        WHERE de.dat_entry_id = ?`, datEntryID)
	var entry DatEntry
	if err := row.Scan(&entry.DatEntryID, &entry.PlatformID, &entry.PlatformName, &entry.ReleaseTitle, &entry.BaseTitle); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dat entry: %w", err)
	}
	return &entry, nil
}

// InsertDatEntry adds a DAT catalog record. This is the ingestion surface
// used by importers and tests.
func (s *Store) InsertDatEntry(ctx context.Context, platformID int64, releaseTitle, baseTitle string) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO dat_entry (platform_id, release_title, base_title) VALUES (?, ?, ?)`,
		platformID,
		releaseTitle,
		baseTitle,
	)
	if err != nil {
		return 0, fmt.Errorf("insert dat entry: %w", err)
	}
	return res.LastInsertId()
}
