package matching

import (
	"context"

	"romcurator/internal/catalog"
)

// GameRepository reads atomic game records.
type GameRepository interface {
	AtomicGame(ctx context.Context, atomicID int64) (*catalog.AtomicGame, error)
	UnlinkedAtomicGames(ctx context.Context) ([]catalog.AtomicGame, error)
}

// ReleaseRepository reports which platforms an atomic game shipped on.
type ReleaseRepository interface {
	PlatformsForAtomic(ctx context.Context, atomicID int64) ([]catalog.Platform, error)
}

// EntryRepository reads DAT entries for candidate scoring. Implementations
// must exclude entries without a base title.
type EntryRepository interface {
	EntriesForPlatforms(ctx context.Context, platformIDs []int64) ([]catalog.DatEntry, error)
}

// PlatformLinkRepository exposes the alias edge list. The resolver only
// reads edges; administration happens elsewhere.
type PlatformLinkRepository interface {
	EdgesFrom(ctx context.Context, platformID int64) ([]catalog.PlatformLink, error)
	EdgesTo(ctx context.Context, platformID int64) ([]catalog.PlatformLink, error)
}

// LinkRepository checks and writes link decisions. CreateLink reports
// whether a row was written; an existing pair is a skip, not an error.
type LinkRepository interface {
	LinkExists(ctx context.Context, atomicID, datEntryID int64) (bool, error)
	CreateLink(ctx context.Context, atomicID, datEntryID int64, confidence float64, matchType catalog.MatchType) (bool, error)
}

// Repositories bundles the collaborators an Engine needs.
type Repositories struct {
	Games         GameRepository
	Releases      ReleaseRepository
	Entries       EntryRepository
	PlatformLinks PlatformLinkRepository
	Links         LinkRepository
}

// StoreRepositories adapts one catalog store into the full bundle.
func StoreRepositories(store *catalog.Store) Repositories {
	return Repositories{
		Games:         store,
		Releases:      store,
		Entries:       store,
		PlatformLinks: store,
		Links:         store,
	}
}
