package matching

import (
	"context"

	"romcurator/internal/catalog"
	"romcurator/internal/logging"
	"romcurator/internal/retry"
)

// CreateAutomaticLinks links every unlinked atomic game that has exactly one
// candidate at or above autoThreshold. Games with zero or several qualifying
// candidates are left for manual curation; linking an ambiguous game
// automatically is worse than not linking it. Per-game failures are counted
// and the batch continues.
func (e *Engine) CreateAutomaticLinks(ctx context.Context, autoThreshold float64) (LinkStats, error) {
	if autoThreshold <= 0 {
		autoThreshold = DefaultAutoThreshold
	}

	matches, err := e.FindAllPotentialMatches(ctx, DefaultMinConfidence)
	if err != nil {
		return LinkStats{}, err
	}

	var stats LinkStats
	for _, atomicID := range orderedAtomicIDs(matches) {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		qualified := make([]Candidate, 0, 1)
		for _, candidate := range matches[atomicID] {
			if candidate.Confidence >= autoThreshold {
				qualified = append(qualified, candidate)
			}
		}
		if len(qualified) != 1 {
			if len(qualified) > 1 {
				e.logger.Debug("multiple high-confidence candidates, leaving for curation",
					logging.Int64(logging.FieldAtomicID, atomicID),
					logging.Int(logging.FieldCount, len(qualified)))
			}
			continue
		}
		best := qualified[0]

		exists, err := e.repos.Links.LinkExists(ctx, atomicID, best.DatEntryID)
		if err != nil {
			stats.Errors++
			e.logger.Error("link existence check failed",
				logging.Int64(logging.FieldAtomicID, atomicID),
				logging.Int64(logging.FieldDatEntryID, best.DatEntryID),
				logging.Error(err))
			continue
		}
		if exists {
			stats.Skipped++
			e.logger.Debug("link already present",
				logging.Int64(logging.FieldAtomicID, atomicID),
				logging.Int64(logging.FieldDatEntryID, best.DatEntryID))
			continue
		}

		var created bool
		err = retry.Do(ctx, e.policy, e.logger, "create automatic link", func() error {
			var linkErr error
			created, linkErr = e.repos.Links.CreateLink(ctx, atomicID, best.DatEntryID, best.Confidence, catalog.MatchAutomatic)
			return linkErr
		})
		if err != nil {
			stats.Errors++
			e.logger.Error("link write failed",
				logging.Int64(logging.FieldAtomicID, atomicID),
				logging.Int64(logging.FieldDatEntryID, best.DatEntryID),
				logging.Error(err))
			continue
		}
		if !created {
			// Another writer inserted the pair between the check and the
			// write. The link exists, which is what matters.
			stats.Skipped++
			continue
		}

		stats.Created++
		e.logger.Info("created automatic link",
			logging.Int64(logging.FieldAtomicID, atomicID),
			logging.Int64(logging.FieldDatEntryID, best.DatEntryID),
			logging.String(logging.FieldTitle, best.AtomicTitle),
			logging.String("base_title", best.BaseTitle),
			logging.Float64(logging.FieldConfidence, best.Confidence))
	}

	e.logger.Info("automatic linking complete",
		logging.Int("created", stats.Created),
		logging.Int("skipped", stats.Skipped),
		logging.Int("errors", stats.Errors))
	return stats, nil
}
