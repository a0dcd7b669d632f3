// Package catalog persists the game-library catalog in SQLite and exposes
// the read and write surface the resolver works against.
//
// The Store manages database connections, embedded-file migrations, the
// reference entities (platforms, atomic games, releases, DAT entries), the
// platform alias graph, and the insert-only link table that records
// resolution decisions. Link writes are idempotent: an existing pair or
// no-match sentinel turns a write into a skip, so a resolution sweep can be
// rerun safely after a crash.
//
// Reads return nil for absent single rows; callers that need an error
// distinguish absence themselves. Persistence failures are classified so
// callers can retry contention (ErrTransient) without retrying corruption.
//
// Treat this package as the single source of truth for catalog semantics;
// schema changes are append-only migration files under migrations/.
package catalog
