package matching_test

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"romcurator/internal/catalog"
	"romcurator/internal/logging"
	"romcurator/internal/matching"
	"romcurator/internal/retry"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// fakeStore is an in-memory stand-in for catalog.Store. Unlike the real
// store, UnlinkedAtomicGames does not filter games that gained a link; the
// engine's own existence checks are what these tests exercise.
type fakeStore struct {
	games    map[int64]catalog.AtomicGame
	ordered  []catalog.AtomicGame
	releases map[int64][]catalog.Platform
	entries  map[int64][]catalog.DatEntry
	outEdges map[int64][]catalog.PlatformLink
	inEdges  map[int64][]catalog.PlatformLink

	links map[pairKey]catalog.Link

	failGameFetch  map[int64]error
	createFailures map[pairKey]int
	createFailErr  error
	createCalls    int
}

type pairKey struct {
	atomicID   int64
	datEntryID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		games:          make(map[int64]catalog.AtomicGame),
		releases:       make(map[int64][]catalog.Platform),
		entries:        make(map[int64][]catalog.DatEntry),
		outEdges:       make(map[int64][]catalog.PlatformLink),
		inEdges:        make(map[int64][]catalog.PlatformLink),
		links:          make(map[pairKey]catalog.Link),
		failGameFetch:  make(map[int64]error),
		createFailures: make(map[pairKey]int),
	}
}

func (f *fakeStore) addGame(atomicID int64, title string) {
	game := catalog.AtomicGame{AtomicID: atomicID, CanonicalTitle: title}
	f.games[atomicID] = game
	f.ordered = append(f.ordered, game)
	sort.Slice(f.ordered, func(i, j int) bool {
		return f.ordered[i].CanonicalTitle < f.ordered[j].CanonicalTitle
	})
}

func (f *fakeStore) addRelease(atomicID, platformID int64, platformName string) {
	f.releases[atomicID] = append(f.releases[atomicID], catalog.Platform{PlatformID: platformID, Name: platformName})
}

func (f *fakeStore) addEntry(datEntryID, platformID int64, platformName, releaseTitle, baseTitle string) {
	f.entries[platformID] = append(f.entries[platformID], catalog.DatEntry{
		DatEntryID:   datEntryID,
		PlatformID:   platformID,
		PlatformName: platformName,
		ReleaseTitle: releaseTitle,
		BaseTitle:    baseTitle,
	})
}

func (f *fakeStore) addEdge(canonicalID, aliasID int64) {
	edge := catalog.PlatformLink{AtomicPlatformID: canonicalID, DatPlatformID: aliasID, Confidence: 1.0}
	f.outEdges[canonicalID] = append(f.outEdges[canonicalID], edge)
	f.inEdges[aliasID] = append(f.inEdges[aliasID], edge)
}

func (f *fakeStore) AtomicGame(_ context.Context, atomicID int64) (*catalog.AtomicGame, error) {
	if err := f.failGameFetch[atomicID]; err != nil {
		return nil, err
	}
	game, ok := f.games[atomicID]
	if !ok {
		return nil, nil
	}
	return &game, nil
}

func (f *fakeStore) UnlinkedAtomicGames(context.Context) ([]catalog.AtomicGame, error) {
	return append([]catalog.AtomicGame(nil), f.ordered...), nil
}

func (f *fakeStore) PlatformsForAtomic(_ context.Context, atomicID int64) ([]catalog.Platform, error) {
	return f.releases[atomicID], nil
}

func (f *fakeStore) EntriesForPlatforms(_ context.Context, platformIDs []int64) ([]catalog.DatEntry, error) {
	var out []catalog.DatEntry
	for _, id := range platformIDs {
		for _, entry := range f.entries[id] {
			if entry.BaseTitle == "" {
				continue
			}
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DatEntryID < out[j].DatEntryID })
	return out, nil
}

func (f *fakeStore) EdgesFrom(_ context.Context, platformID int64) ([]catalog.PlatformLink, error) {
	return f.outEdges[platformID], nil
}

func (f *fakeStore) EdgesTo(_ context.Context, platformID int64) ([]catalog.PlatformLink, error) {
	return f.inEdges[platformID], nil
}

func (f *fakeStore) LinkExists(_ context.Context, atomicID, datEntryID int64) (bool, error) {
	_, ok := f.links[pairKey{atomicID, datEntryID}]
	return ok, nil
}

func (f *fakeStore) CreateLink(_ context.Context, atomicID, datEntryID int64, confidence float64, matchType catalog.MatchType) (bool, error) {
	f.createCalls++
	key := pairKey{atomicID, datEntryID}
	if remaining := f.createFailures[key]; remaining > 0 {
		f.createFailures[key] = remaining - 1
		if f.createFailErr != nil {
			return false, f.createFailErr
		}
		return false, fmt.Errorf("injected write failure")
	}
	if _, ok := f.links[key]; ok {
		return false, nil
	}
	id := int64(len(f.links) + 1)
	entryID := datEntryID
	f.links[key] = catalog.Link{
		LinkID:     id,
		AtomicID:   atomicID,
		DatEntryID: &entryID,
		Confidence: confidence,
		MatchType:  matchType,
	}
	return true, nil
}

func (f *fakeStore) repositories() matching.Repositories {
	return matching.Repositories{
		Games:         f,
		Releases:      f,
		Entries:       f,
		PlatformLinks: f,
		Links:         f,
	}
}

func newTestEngine(f *fakeStore) *matching.Engine {
	policy := retry.Policy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}
	return matching.NewEngine(f.repositories(), policy, logging.NewNop())
}
