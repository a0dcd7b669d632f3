package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// AtomicGame fetches one atomic game by identifier. Returns nil when absent.
func (s *Store) AtomicGame(ctx context.Context, atomicID int64) (*AtomicGame, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT atomic_id, canonical_title FROM atomic_game_unit WHERE atomic_id = ?`,
		atomicID,
	)
	var game AtomicGame
	if err := row.Scan(&game.AtomicID, &game.CanonicalTitle); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get atomic game: %w", err)
	}
	return &game, nil
}

// UnlinkedAtomicGames returns every atomic game with no link decision of any
// kind, ordered by canonical title.
func (s *Store) UnlinkedAtomicGames(ctx context.Context) ([]AtomicGame, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT agu.atomic_id, agu.canonical_title
        FROM atomic_game_unit agu
        LEFT JOIN dat_atomic_link dal ON agu.atomic_id = dal.atomic_id
        WHERE dal.atomic_id IS NULL
        ORDER BY agu.canonical_title`)
	if err != nil {
		return nil, fmt.Errorf("query unlinked games: %w", err)
	}
	defer rows.Close()

	var games []AtomicGame
	for rows.Next() {
		var game AtomicGame
		if err := rows.Scan(&game.AtomicID, &game.CanonicalTitle); err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// PlatformsForAtomic returns the distinct platforms an atomic game has a
// release on.
func (s *Store) PlatformsForAtomic(ctx context.Context, atomicID int64) ([]Platform, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT DISTINCT p.platform_id, p.name
        FROM game_release gr
        JOIN platform p ON gr.platform_id = p.platform_id
        WHERE gr.atomic_id = ?
        ORDER BY p.name`, atomicID)
	if err != nil {
		return nil, fmt.Errorf("query release platforms: %w", err)
	}
	defer rows.Close()

	var platforms []Platform
	for rows.Next() {
		var platform Platform
		if err := rows.Scan(&platform.PlatformID, &platform.Name); err != nil {
			return nil, err
		}
		platforms = append(platforms, platform)
	}
	return platforms, rows.Err()
}

// UnmatchedAtomicGames lists games with no link decision for operator triage,
// with release counts and platform names attached.
func (s *Store) UnmatchedAtomicGames(ctx context.Context) ([]UnmatchedGame, error) {
	query, args, err := sq.Select(
		"agu.atomic_id",
		"agu.canonical_title",
		"COUNT(DISTINCT gr.release_id)",
		"COALESCE(GROUP_CONCAT(DISTINCT p.name), '')",
	).
		From("atomic_game_unit agu").
		LeftJoin("game_release gr ON agu.atomic_id = gr.atomic_id").
		LeftJoin("platform p ON gr.platform_id = p.platform_id").
		LeftJoin("dat_atomic_link dal ON agu.atomic_id = dal.atomic_id").
		Where("dal.atomic_id IS NULL").
		GroupBy("agu.atomic_id", "agu.canonical_title").
		OrderBy("agu.canonical_title").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build unmatched query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query unmatched games: %w", err)
	}
	defer rows.Close()

	var games []UnmatchedGame
	for rows.Next() {
		var game UnmatchedGame
		if err := rows.Scan(&game.AtomicID, &game.CanonicalTitle, &game.ReleaseCount, &game.Platforms); err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// InsertAtomicGame adds a canonical game record. This is the ingestion
// surface used by importers and tests; the resolver never writes games.
func (s *Store) InsertAtomicGame(ctx context.Context, canonicalTitle string) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO atomic_game_unit (canonical_title) VALUES (?)`,
		canonicalTitle,
	)
	if err != nil {
		return 0, fmt.Errorf("insert atomic game: %w", err)
	}
	return res.LastInsertId()
}

// InsertGameRelease records that an atomic game shipped on a platform.
func (s *Store) InsertGameRelease(ctx context.Context, atomicID, platformID int64) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO game_release (atomic_id, platform_id) VALUES (?, ?)`,
		atomicID,
		platformID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert game release: %w", err)
	}
	return res.LastInsertId()
}
