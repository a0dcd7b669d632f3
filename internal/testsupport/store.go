package testsupport

import (
	"context"
	"testing"

	"romcurator/internal/catalog"
	"romcurator/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedPlatform inserts a platform for tests using the provided store.
func SeedPlatform(t testing.TB, store *catalog.Store, name string) int64 {
	t.Helper()

	id, err := store.InsertPlatform(context.Background(), name)
	if err != nil {
		t.Fatalf("store.InsertPlatform: %v", err)
	}
	return id
}

// SeedAtomicGame inserts a canonical game record for tests.
func SeedAtomicGame(t testing.TB, store *catalog.Store, title string) int64 {
	t.Helper()

	id, err := store.InsertAtomicGame(context.Background(), title)
	if err != nil {
		t.Fatalf("store.InsertAtomicGame: %v", err)
	}
	return id
}

// SeedRelease records that a game shipped on a platform.
func SeedRelease(t testing.TB, store *catalog.Store, atomicID, platformID int64) int64 {
	t.Helper()

	id, err := store.InsertGameRelease(context.Background(), atomicID, platformID)
	if err != nil {
		t.Fatalf("store.InsertGameRelease: %v", err)
	}
	return id
}

// SeedDatEntry inserts a DAT catalog record for tests.
func SeedDatEntry(t testing.TB, store *catalog.Store, platformID int64, releaseTitle, baseTitle string) int64 {
	t.Helper()

	id, err := store.InsertDatEntry(context.Background(), platformID, releaseTitle, baseTitle)
	if err != nil {
		t.Fatalf("store.InsertDatEntry: %v", err)
	}
	return id
}

// SeedPlatformLink adds a directed alias edge between two platforms.
func SeedPlatformLink(t testing.TB, store *catalog.Store, canonicalID, aliasID int64) {
	t.Helper()

	if _, err := store.InsertPlatformLink(context.Background(), canonicalID, aliasID, 1.0); err != nil {
		t.Fatalf("store.InsertPlatformLink: %v", err)
	}
}
