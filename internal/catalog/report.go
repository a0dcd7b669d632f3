package catalog

import (
	"context"
	"fmt"
	"time"
)

// BuildReport aggregates catalog-wide resolution coverage: totals, link
// provenance counts, per-platform coverage, and the confidence distribution
// of stored links.
func (s *Store) BuildReport(ctx context.Context) (*MatchingReport, error) {
	report := &MatchingReport{GeneratedAt: time.Now().UTC()}

	scalars := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM atomic_game_unit`, &report.TotalGames},
		{`SELECT COUNT(*) FROM dat_entry`, &report.TotalEntries},
		{`SELECT COUNT(DISTINCT atomic_id) FROM dat_atomic_link WHERE dat_entry_id IS NOT NULL`, &report.LinkedGames},
		{`SELECT COUNT(DISTINCT atomic_id) FROM dat_atomic_link WHERE match_type = 'automatic'`, &report.AutoLinked},
		{`SELECT COUNT(DISTINCT atomic_id) FROM dat_atomic_link WHERE match_type = 'manual'`, &report.ManualLinked},
		{`SELECT COUNT(DISTINCT atomic_id) FROM dat_atomic_link WHERE match_type = 'no_match'`, &report.MarkedNoMatch},
	}
	for _, sc := range scalars {
		row := s.db.QueryRowContext(ctx, sc.query)
		if err := row.Scan(sc.dest); err != nil {
			return nil, fmt.Errorf("report count: %w", err)
		}
	}

	report.UnlinkedGames = report.TotalGames - report.LinkedGames - report.MarkedNoMatch
	if report.TotalGames > 0 {
		report.LinkedPercent = float64(report.LinkedGames) / float64(report.TotalGames) * 100
	}

	platforms, err := s.platformCoverage(ctx)
	if err != nil {
		return nil, err
	}
	report.Platforms = platforms

	bands, err := s.confidenceBands(ctx)
	if err != nil {
		return nil, err
	}
	report.ConfidenceBands = bands

	return report, nil
}

func (s *Store) platformCoverage(ctx context.Context) ([]PlatformCoverage, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT p.name, COUNT(DISTINCT agu.atomic_id) AS total,
               COUNT(DISTINCT dal.atomic_id) AS linked
        FROM platform p
        LEFT JOIN game_release gr ON p.platform_id = gr.platform_id
        LEFT JOIN atomic_game_unit agu ON gr.atomic_id = agu.atomic_id
        LEFT JOIN dat_atomic_link dal ON agu.atomic_id = dal.atomic_id AND dal.dat_entry_id IS NOT NULL
        GROUP BY p.platform_id, p.name
        ORDER BY total DESC`)
	if err != nil {
		return nil, fmt.Errorf("report platform coverage: %w", err)
	}
	defer rows.Close()

	var coverage []PlatformCoverage
	for rows.Next() {
		var pc PlatformCoverage
		if err := rows.Scan(&pc.Platform, &pc.TotalGames, &pc.LinkedGames); err != nil {
			return nil, fmt.Errorf("scan platform coverage: %w", err)
		}
		if pc.TotalGames > 0 {
			pc.LinkedPercent = float64(pc.LinkedGames) / float64(pc.TotalGames) * 100
		}
		coverage = append(coverage, pc)
	}
	return coverage, rows.Err()
}

func (s *Store) confidenceBands(ctx context.Context) ([]ConfidenceBand, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT
            CASE
                WHEN confidence >= 0.95 THEN '95%+'
                WHEN confidence >= 0.90 THEN '90-95%'
                WHEN confidence >= 0.80 THEN '80-90%'
                WHEN confidence >= 0.70 THEN '70-80%'
                ELSE '<70%'
            END AS confidence_range,
            COUNT(*) AS count
        FROM dat_atomic_link
        WHERE dat_entry_id IS NOT NULL
        GROUP BY confidence_range
        ORDER BY MIN(confidence) DESC`)
	if err != nil {
		return nil, fmt.Errorf("report confidence bands: %w", err)
	}
	defer rows.Close()

	var bands []ConfidenceBand
	for rows.Next() {
		var band ConfidenceBand
		if err := rows.Scan(&band.Range, &band.Count); err != nil {
			return nil, fmt.Errorf("scan confidence band: %w", err)
		}
		bands = append(bands, band)
	}
	return bands, rows.Err()
}
