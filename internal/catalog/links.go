package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LinkExists reports whether a link row exists for the exact pair.
func (s *Store) LinkExists(ctx context.Context, atomicID, datEntryID int64) (bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM dat_atomic_link WHERE atomic_id = ? AND dat_entry_id = ?`,
		atomicID,
		datEntryID,
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("check link: %w", err)
	}
	return count > 0, nil
}

// HasAnyLink reports whether the game carries any link decision, including a
// no-match sentinel.
func (s *Store) HasAnyLink(ctx context.Context, atomicID int64) (bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM dat_atomic_link WHERE atomic_id = ?`,
		atomicID,
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("check game links: %w", err)
	}
	return count > 0, nil
}

// LinksForAtomic returns the stored decisions for one game, oldest first.
func (s *Store) LinksForAtomic(ctx context.Context, atomicID int64) ([]Link, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT link_id, atomic_id, dat_entry_id, confidence, match_type, created_timestamp
        FROM dat_atomic_link
        WHERE atomic_id = ?
        ORDER BY link_id`, atomicID)
	if err != nil {
		return nil, fmt.Errorf("query game links: %w", err)
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}

// CreateLink records a resolution decision tying an atomic game to a DAT
// entry. The call is idempotent: an already-linked pair is detected and
// skipped, and the unique constraint converts a lost insert race into a skip
// as well. Reports whether a new row was written.
func (s *Store) CreateLink(ctx context.Context, atomicID, datEntryID int64, confidence float64, matchType MatchType) (bool, error) {
	if _, ok := matchTypeSet[matchType]; !ok {
		return false, Wrap(ErrValidation, "create link", fmt.Sprintf("unknown match type %q", matchType), nil)
	}
	if confidence < 0 || confidence > 1 {
		return false, Wrap(ErrValidation, "create link", fmt.Sprintf("confidence %v out of [0,1]", confidence), nil)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, classify("begin link tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var count int
	row := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM dat_atomic_link WHERE atomic_id = ? AND dat_entry_id = ?`,
		atomicID,
		datEntryID,
	)
	if err := row.Scan(&count); err != nil {
		return false, classify("check existing link", err)
	}
	if count > 0 {
		return false, nil
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO dat_atomic_link (atomic_id, dat_entry_id, confidence, match_type, created_timestamp)
         VALUES (?, ?, ?, ?, ?)`,
		atomicID,
		datEntryID,
		confidence,
		matchType,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Another writer got there first; the link exists, which is the goal.
			return false, nil
		}
		return false, classify("insert link", err)
	}

	if err := tx.Commit(); err != nil {
		return false, classify("commit link", err)
	}
	return true, nil
}

// MarkNoMatch records that an atomic game deliberately links to nothing, so
// it stops surfacing in the curation queue. Idempotent; reports whether a new
// sentinel was written.
func (s *Store) MarkNoMatch(ctx context.Context, atomicID int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, classify("begin no-match tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// The pair-level unique constraint does not cover NULL entry ids, so the
	// sentinel needs its own existence check before the partial index backstop.
	var count int
	row := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM dat_atomic_link WHERE atomic_id = ? AND dat_entry_id IS NULL`,
		atomicID,
	)
	if err := row.Scan(&count); err != nil {
		return false, classify("check existing no-match", err)
	}
	if count > 0 {
		return false, nil
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO dat_atomic_link (atomic_id, dat_entry_id, confidence, match_type, created_timestamp)
         VALUES (?, NULL, 0.0, ?, ?)`,
		atomicID,
		MatchNoMatch,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, classify("insert no-match", err)
	}

	if err := tx.Commit(); err != nil {
		return false, classify("commit no-match", err)
	}
	return true, nil
}

func scanLink(scanner interface{ Scan(dest ...any) error }) (*Link, error) {
	var (
		link       Link
		entryID    sql.NullInt64
		matchType  string
		createdRaw sql.NullString
	)
	if err := scanner.Scan(&link.LinkID, &link.AtomicID, &entryID, &link.Confidence, &matchType, &createdRaw); err != nil {
		return nil, err
	}
	if entryID.Valid {
		v := entryID.Int64
		link.DatEntryID = &v
	}
	if parsed, ok := ParseMatchType(matchType); ok {
		link.MatchType = parsed
	} else {
		// Preserve unknown values so callers can surface them verbatim.
		link.MatchType = MatchType(matchType)
	}
	if createdRaw.Valid {
		if created, err := parseTimeString(createdRaw.String); err == nil {
			link.CreatedAt = created
		}
	}
	return &link, nil
}
