package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Platforms returns every platform in identifier order.
func (s *Store) Platforms(ctx context.Context) ([]Platform, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT platform_id, name FROM platform ORDER BY platform_id`)
	if err != nil {
		return nil, fmt.Errorf("query platforms: %w", err)
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

// PlatformByID fetches one platform. Returns nil when absent.
func (s *Store) PlatformByID(ctx context.Context, platformID int64) (*Platform, error) {
	row := s.db.QueryRowContext(ctx, `SELECT platform_id, name FROM platform WHERE platform_id = ?`, platformID)
	var platform Platform
	if err := row.Scan(&platform.PlatformID, &platform.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get platform: %w", err)
	}
	return &platform, nil
}

// PlatformByName fetches one platform by case-insensitive name. Returns nil
// when absent.
func (s *Store) PlatformByName(ctx context.Context, name string) (*Platform, error) {
	row := s.db.QueryRowContext(ctx, `SELECT platform_id, name FROM platform WHERE name = ? COLLATE NOCASE`, name)
	var platform Platform
	if err := row.Scan(&platform.PlatformID, &platform.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get platform by name: %w", err)
	}
	return &platform, nil
}

// PlatformRoles classifies every platform in one pass: "canonical" when it
// owns outgoing alias edges, "alias" when another platform points at it,
// "standalone" otherwise. Canonical wins when a mis-shapen edge set gives a
// platform edges in both directions.
func (s *Store) PlatformRoles(ctx context.Context) (map[int64]string, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT p.platform_id,
               CASE WHEN EXISTS (
                   SELECT 1 FROM platform_links pl
                   WHERE pl.atomic_platform_id = p.platform_id
               ) THEN 'canonical'
               WHEN EXISTS (
                   SELECT 1 FROM platform_links pl
                   WHERE pl.dat_platform_id = p.platform_id
               ) THEN 'alias'
               ELSE 'standalone'
               END
        FROM platform p`)
	if err != nil {
		return nil, fmt.Errorf("query platform roles: %w", err)
	}
	defer rows.Close()

	roles := make(map[int64]string)
	for rows.Next() {
		var id int64
		var role string
		if err := rows.Scan(&id, &role); err != nil {
			return nil, err
		}
		roles[id] = role
	}
	return roles, rows.Err()
}

// InsertPlatform adds a platform. This is the ingestion surface used by
// importers and tests.
func (s *Store) InsertPlatform(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO platform (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert platform: %w", err)
	}
	return res.LastInsertId()
}

// EdgesFrom returns alias edges where the platform is the canonical endpoint.
func (s *Store) EdgesFrom(ctx context.Context, platformID int64) ([]PlatformLink, error) {
	return s.queryEdges(ctx, `
        SELECT atomic_platform_id, dat_platform_id, confidence
        FROM platform_links
        WHERE atomic_platform_id = ?
        ORDER BY dat_platform_id`, platformID)
}

// EdgesTo returns alias edges where the platform is the alias endpoint.
func (s *Store) EdgesTo(ctx context.Context, platformID int64) ([]PlatformLink, error) {
	return s.queryEdges(ctx, `
        SELECT atomic_platform_id, dat_platform_id, confidence
        FROM platform_links
        WHERE dat_platform_id = ?
        ORDER BY atomic_platform_id`, platformID)
}

func (s *Store) queryEdges(ctx context.Context, query string, platformID int64) ([]PlatformLink, error) {
	rows, err := s.db.QueryContext(ctx, query, platformID)
	if err != nil {
		return nil, fmt.Errorf("query platform links: %w", err)
	}
	defer rows.Close()

	var edges []PlatformLink
	for rows.Next() {
		var edge PlatformLink
		if err := rows.Scan(&edge.AtomicPlatformID, &edge.DatPlatformID, &edge.Confidence); err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

// NeighborPlatformIDs returns platforms linked to the given one in either
// direction. Group traversal walks this edge list breadth-first.
func (s *Store) NeighborPlatformIDs(ctx context.Context, platformID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT dat_platform_id FROM platform_links WHERE atomic_platform_id = ?
        UNION
        SELECT atomic_platform_id FROM platform_links WHERE dat_platform_id = ?`,
		platformID, platformID)
	if err != nil {
		return nil, fmt.Errorf("query platform neighbors: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// InsertPlatformLink adds a directed alias edge, ignoring a pre-existing one.
// Reports whether a new edge was written.
func (s *Store) InsertPlatformLink(ctx context.Context, canonicalID, aliasID int64, confidence float64) (bool, error) {
	if canonicalID == aliasID {
		return false, Wrap(ErrValidation, "insert platform link", "platform cannot alias itself", nil)
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO platform_links (atomic_platform_id, dat_platform_id, confidence) VALUES (?, ?, ?)`,
		canonicalID,
		aliasID,
		confidence,
	)
	if err != nil {
		return false, classify("insert platform link", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeletePlatformLinkPair removes the edge between two platforms in both
// directions. Reports how many edges were removed.
func (s *Store) DeletePlatformLinkPair(ctx context.Context, a, b int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        DELETE FROM platform_links
        WHERE (atomic_platform_id = ? AND dat_platform_id = ?)
           OR (atomic_platform_id = ? AND dat_platform_id = ?)`,
		a, b, b, a)
	if err != nil {
		return 0, classify("delete platform link", err)
	}
	return res.RowsAffected()
}

// RelinkGroup re-roots an alias group: every edge touching a member is
// dropped and each remaining member is re-pointed at canonicalID with
// confidence 1.0, all in one transaction. Reports how many edges were
// written.
func (s *Store) RelinkGroup(ctx context.Context, canonicalID int64, memberIDs []int64) (int, error) {
	if len(memberIDs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify("begin relink tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := sq.Delete("platform_links").
		Where(sq.Or{
			sq.Eq{"atomic_platform_id": memberIDs},
			sq.Eq{"dat_platform_id": memberIDs},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete links query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, classify("delete group links", err)
	}

	written := 0
	for _, memberID := range memberIDs {
		if memberID == canonicalID {
			continue
		}
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO platform_links (atomic_platform_id, dat_platform_id, confidence) VALUES (?, ?, 1.0)`,
			canonicalID,
			memberID,
		)
		if err != nil {
			return 0, classify("insert group link", err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, classify("commit relink", err)
	}
	return written, nil
}
