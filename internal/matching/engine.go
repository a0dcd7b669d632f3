package matching

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"romcurator/internal/logging"
	"romcurator/internal/retry"
	"romcurator/internal/textutil"
)

// progressInterval is how many games a sweep processes between progress
// logs.
const progressInterval = 100

// Engine scores atomic games against DAT entries and applies the linking
// policies. It never mutates anything except through the link repository.
type Engine struct {
	repos   Repositories
	aliases *AliasResolver
	policy  retry.Policy
	logger  *slog.Logger
}

// NewEngine constructs an engine over the given repositories. The retry
// policy guards link writes; pass retry.DefaultPolicy() when no config is
// in play.
func NewEngine(repos Repositories, policy retry.Policy, logger *slog.Logger) *Engine {
	return &Engine{
		repos:   repos,
		aliases: NewAliasResolver(repos.PlatformLinks),
		policy:  policy,
		logger:  logging.NewComponentLogger(logger, "matcher"),
	}
}

// FindMatches scores every in-scope DAT entry against one atomic game and
// returns the candidates at or above minConfidence, best first. Ties keep
// store enumeration order. Data gaps (missing game, empty title, no release
// platforms, no alias edges) produce an empty result, never an error.
func (e *Engine) FindMatches(ctx context.Context, atomicID int64, minConfidence float64) ([]Candidate, error) {
	game, err := e.repos.Games.AtomicGame(ctx, atomicID)
	if err != nil {
		return nil, fmt.Errorf("fetch atomic game: %w", err)
	}
	if game == nil || strings.TrimSpace(game.CanonicalTitle) == "" {
		e.logger.Debug("atomic game missing or untitled, skipping",
			logging.Int64(logging.FieldAtomicID, atomicID))
		return nil, nil
	}

	platforms, err := e.repos.Releases.PlatformsForAtomic(ctx, atomicID)
	if err != nil {
		return nil, fmt.Errorf("fetch release platforms: %w", err)
	}
	if len(platforms) == 0 {
		e.logger.Debug("atomic game has no release platforms",
			logging.Int64(logging.FieldAtomicID, atomicID),
			logging.String(logging.FieldTitle, game.CanonicalTitle))
		return nil, nil
	}

	aliasSet := make(map[int64]struct{})
	for _, platform := range platforms {
		ids, err := e.aliases.Resolve(ctx, platform.PlatformID)
		if err != nil {
			return nil, fmt.Errorf("resolve platform aliases: %w", err)
		}
		if len(ids) == 0 {
			e.logger.Debug("platform has no alias edges, skipping",
				logging.Int64(logging.FieldPlatformID, platform.PlatformID),
				logging.String("platform", platform.Name))
			continue
		}
		for _, id := range ids {
			aliasSet[id] = struct{}{}
		}
	}
	if len(aliasSet) == 0 {
		return nil, nil
	}
	platformIDs := make([]int64, 0, len(aliasSet))
	for id := range aliasSet {
		platformIDs = append(platformIDs, id)
	}
	sort.Slice(platformIDs, func(i, j int) bool { return platformIDs[i] < platformIDs[j] })

	entries, err := e.repos.Entries.EntriesForPlatforms(ctx, platformIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch dat entries: %w", err)
	}

	var candidates []Candidate
	for _, entry := range entries {
		baseScore := textutil.Similarity(game.CanonicalTitle, entry.BaseTitle)
		fullScore := textutil.Similarity(game.CanonicalTitle, entry.ReleaseTitle)
		confidence := max(baseScore, fullScore)
		if confidence < minConfidence {
			continue
		}

		var reasons []string
		if baseScore >= minConfidence {
			reasons = append(reasons, fmt.Sprintf("Base title match (%.2f)", baseScore))
		}
		if fullScore >= minConfidence {
			reasons = append(reasons, fmt.Sprintf("Full title match (%.2f)", fullScore))
		}

		candidates = append(candidates, Candidate{
			AtomicID:     atomicID,
			AtomicTitle:  game.CanonicalTitle,
			DatEntryID:   entry.DatEntryID,
			DatTitle:     entry.ReleaseTitle,
			BaseTitle:    entry.BaseTitle,
			PlatformID:   entry.PlatformID,
			PlatformName: entry.PlatformName,
			Confidence:   confidence,
			Reasons:      reasons,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates, nil
}

// FindAllPotentialMatches runs FindMatches for every atomic game with no
// link decision of any kind and returns the games that produced at least
// one candidate. A per-game failure is logged and skipped; only the initial
// enumeration or a canceled context fails the sweep.
func (e *Engine) FindAllPotentialMatches(ctx context.Context, minConfidence float64) (map[int64][]Candidate, error) {
	games, err := e.repos.Games.UnlinkedAtomicGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unlinked games: %w", err)
	}

	e.logger.Info("matching sweep started",
		logging.Int(logging.FieldCount, len(games)),
		logging.Float64("min_confidence", minConfidence))

	matches := make(map[int64][]Candidate)
	for i, game := range games {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 && i%progressInterval == 0 {
			e.logger.Info("matching progress",
				logging.Int("processed", i),
				logging.Int("total", len(games)))
		}

		candidates, err := e.FindMatches(ctx, game.AtomicID, minConfidence)
		if err != nil {
			e.logger.Warn("matching failed for game, skipping",
				logging.Int64(logging.FieldAtomicID, game.AtomicID),
				logging.String(logging.FieldTitle, game.CanonicalTitle),
				logging.Error(err))
			continue
		}
		if len(candidates) > 0 {
			matches[game.AtomicID] = candidates
		}
	}

	e.logger.Info("matching sweep complete",
		logging.Int("games_scanned", len(games)),
		logging.Int("games_with_candidates", len(matches)))
	return matches, nil
}

// orderedAtomicIDs returns the map keys sorted by atomic title, then id, so
// batch passes process games in a stable, log-friendly order. Every value
// slice is non-empty by construction.
func orderedAtomicIDs(matches map[int64][]Candidate) []int64 {
	ids := make([]int64, 0, len(matches))
	for id := range matches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := matches[ids[i]][0].AtomicTitle, matches[ids[j]][0].AtomicTitle
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}
