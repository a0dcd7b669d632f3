package platformadmin

import (
	"context"
	"fmt"

	"romcurator/internal/catalog"
	"romcurator/internal/logging"
)

// CreateAliases attaches the given platforms as aliases of canonicalID's
// group. When canonicalID is itself an alias the new edges attach to its
// canonical platform instead, so the group stays a star. Already-present
// edges are ignored. Returns the number of edges actually written.
func (s *Service) CreateAliases(ctx context.Context, canonicalID int64, aliasIDs []int64, confidence float64) (int, error) {
	if confidence <= 0 {
		confidence = 1.0
	}

	platform, err := s.store.PlatformByID(ctx, canonicalID)
	if err != nil {
		return 0, err
	}
	if platform == nil {
		return 0, catalog.Wrap(catalog.ErrNotFound, "create alias", fmt.Sprintf("platform %d", canonicalID), nil)
	}

	target, err := s.canonicalOf(ctx, canonicalID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, aliasID := range aliasIDs {
		if aliasID == target {
			return created, catalog.Wrap(catalog.ErrValidation, "create alias", fmt.Sprintf("platform %d cannot alias itself", aliasID), nil)
		}

		alias, err := s.store.PlatformByID(ctx, aliasID)
		if err != nil {
			return created, err
		}
		if alias == nil {
			return created, catalog.Wrap(catalog.ErrNotFound, "create alias", fmt.Sprintf("platform %d", aliasID), nil)
		}

		// A platform that anchors its own group cannot become an alias;
		// that would chain two groups together. Promote handles re-rooting.
		outgoing, err := s.store.EdgesFrom(ctx, aliasID)
		if err != nil {
			return created, err
		}
		if len(outgoing) > 0 {
			return created, catalog.Wrap(catalog.ErrValidation, "create alias",
				fmt.Sprintf("platform %d is canonical for its own group; unlink or promote first", aliasID), nil)
		}

		wrote, err := s.store.InsertPlatformLink(ctx, target, aliasID, confidence)
		if err != nil {
			return created, err
		}
		if wrote {
			created++
			s.logger.Info("created platform alias",
				logging.Int64("canonical_id", target),
				logging.Int64("alias_id", aliasID),
				logging.String("alias", alias.Name),
				logging.Float64(logging.FieldConfidence, confidence))
		}
	}
	return created, nil
}

// RemoveAlias drops the edge between two platforms in both directions.
// Reports whether an edge existed.
func (s *Service) RemoveAlias(ctx context.Context, canonicalID, aliasID int64) (bool, error) {
	removed, err := s.store.DeletePlatformLinkPair(ctx, canonicalID, aliasID)
	if err != nil {
		return false, err
	}
	if removed > 0 {
		s.logger.Info("removed platform alias",
			logging.Int64("canonical_id", canonicalID),
			logging.Int64("alias_id", aliasID))
	}
	return removed > 0, nil
}

// Promote re-roots a group around newCanonicalID: every edge among the
// group's members is replaced by an edge from the new canonical to each
// other member at confidence 1.0. Returns the number of members re-pointed.
func (s *Service) Promote(ctx context.Context, newCanonicalID int64) (int, error) {
	group, err := s.Group(ctx, newCanonicalID)
	if err != nil {
		return 0, err
	}
	if len(group.Members) <= 1 {
		return 0, catalog.Wrap(catalog.ErrValidation, "promote platform",
			fmt.Sprintf("platform %d has no alias group", newCanonicalID), nil)
	}

	memberIDs := make([]int64, 0, len(group.Members))
	for _, member := range group.Members {
		memberIDs = append(memberIDs, member.PlatformID)
	}

	written, err := s.store.RelinkGroup(ctx, newCanonicalID, memberIDs)
	if err != nil {
		return 0, err
	}
	s.logger.Info("promoted platform to canonical",
		logging.Int64(logging.FieldPlatformID, newCanonicalID),
		logging.Int("aliases", written))
	return written, nil
}
