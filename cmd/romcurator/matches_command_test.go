package main

import (
	"fmt"
	"strings"
	"testing"

	"romcurator/internal/testsupport"
)

func TestMatchesCommandScoresAgainstDat(t *testing.T) {
	env := setupCLITestEnv(t)

	canonicalID, aliasID := seedAliasedPlatform(t, env, "Super Nintendo", "SNES")
	atomicID := testsupport.SeedAtomicGame(t, env.store, "Street Fighter II")
	testsupport.SeedRelease(t, env.store, atomicID, canonicalID)
	testsupport.SeedDatEntry(t, env.store, aliasID, "Street Fighter 2 (USA)", "Street Fighter 2")
	testsupport.SeedDatEntry(t, env.store, aliasID, "Street Fighter 2 Turbo (USA)", "Street Fighter 2 Turbo")

	out, _, err := runCLI(t, []string{"matches", fmt.Sprint(atomicID)}, env.configPath)
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	requireContains(t, out, fmt.Sprintf("Street Fighter II (atomic %d)", atomicID))
	requireContains(t, out, "Street Fighter 2 (USA)")
	requireContains(t, out, "1.00")
	requireContains(t, out, "Street Fighter 2 Turbo (USA)")
	requireContains(t, out, "0.86")

	out, _, err = runCLI(t, []string{"matches", fmt.Sprint(atomicID), "--min-confidence", "0.99"}, env.configPath)
	if err != nil {
		t.Fatalf("matches with floor: %v", err)
	}
	requireContains(t, out, "Street Fighter 2 (USA)")
	if strings.Contains(out, "Street Fighter 2 Turbo") {
		t.Fatalf("expected high floor to drop the Turbo candidate, got %q", out)
	}
}

func TestMatchesCommandCrossesAliases(t *testing.T) {
	env := setupCLITestEnv(t)

	canonicalID := testsupport.SeedPlatform(t, env.store, "Super Nintendo")
	aliasID := testsupport.SeedPlatform(t, env.store, "SNES")
	testsupport.SeedPlatformLink(t, env.store, canonicalID, aliasID)

	atomicID := testsupport.SeedAtomicGame(t, env.store, "Secret of Mana")
	testsupport.SeedRelease(t, env.store, atomicID, canonicalID)
	// The DAT shelves this platform's entries under the alias name.
	testsupport.SeedDatEntry(t, env.store, aliasID, "Secret of Mana (Europe)", "Secret of Mana")

	out, _, err := runCLI(t, []string{"matches", fmt.Sprint(atomicID)}, env.configPath)
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	requireContains(t, out, "Secret of Mana (Europe)")
	requireContains(t, out, "SNES")
}

func TestMatchesCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	canonicalID, aliasID := seedAliasedPlatform(t, env, "Super Nintendo", "SNES")
	atomicID := testsupport.SeedAtomicGame(t, env.store, "Street Fighter II")
	testsupport.SeedRelease(t, env.store, atomicID, canonicalID)
	testsupport.SeedDatEntry(t, env.store, aliasID, "Street Fighter 2 (USA)", "Street Fighter 2")

	out, _, err := runCLI(t, []string{"matches", fmt.Sprint(atomicID), "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("matches --json: %v", err)
	}
	requireContains(t, out, `"dat_title": "Street Fighter 2 (USA)"`)
	requireContains(t, out, `"confidence": 1`)
	requireContains(t, out, `"reasons"`)
}

func TestMatchesCommandUnknownGame(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"matches", "42"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown atomic game")
	}
	requireContains(t, err.Error(), "atomic game 42 not found")
}
