package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"romcurator/internal/testsupport"
)

func TestPlatformLinkStatusAndGroup(t *testing.T) {
	env := setupCLITestEnv(t)

	canonicalID := testsupport.SeedPlatform(t, env.store, "Super Nintendo")
	aliasA := testsupport.SeedPlatform(t, env.store, "SNES")
	aliasB := testsupport.SeedPlatform(t, env.store, "Super Famicom")

	out, _, err := runCLI(t, []string{"platform", "link", fmt.Sprint(canonicalID), fmt.Sprint(aliasA), fmt.Sprint(aliasB)}, env.configPath)
	if err != nil {
		t.Fatalf("platform link: %v", err)
	}
	requireContains(t, out, fmt.Sprintf("Created 2 alias link(s) under platform %d", canonicalID))

	out, _, err = runCLI(t, []string{"platform", "status", fmt.Sprint(canonicalID)}, env.configPath)
	if err != nil {
		t.Fatalf("platform status: %v", err)
	}
	requireContains(t, out, "Role: canonical")
	requireContains(t, out, "SNES")
	requireContains(t, out, "Super Famicom")

	out, _, err = runCLI(t, []string{"platform", "status", fmt.Sprint(aliasA)}, env.configPath)
	if err != nil {
		t.Fatalf("platform status alias: %v", err)
	}
	requireContains(t, out, "Role: alias")
	requireContains(t, out, fmt.Sprintf("Canonical: Super Nintendo (%d)", canonicalID))

	out, _, err = runCLI(t, []string{"platform", "group", fmt.Sprint(aliasB)}, env.configPath)
	if err != nil {
		t.Fatalf("platform group: %v", err)
	}
	requireContains(t, out, "Super Nintendo")
	requireContains(t, out, "SNES")
	requireContains(t, out, "Super Famicom")

	out, _, err = runCLI(t, []string{"platform", "unlink", fmt.Sprint(canonicalID), fmt.Sprint(aliasA)}, env.configPath)
	if err != nil {
		t.Fatalf("platform unlink: %v", err)
	}
	requireContains(t, out, "Removed alias link")

	out, _, err = runCLI(t, []string{"platform", "status", fmt.Sprint(aliasA)}, env.configPath)
	if err != nil {
		t.Fatalf("platform status after unlink: %v", err)
	}
	requireContains(t, out, "Role: standalone")
}

func TestPlatformPromote(t *testing.T) {
	env := setupCLITestEnv(t)

	canonicalID := testsupport.SeedPlatform(t, env.store, "Mega Drive")
	aliasID := testsupport.SeedPlatform(t, env.store, "Genesis")
	testsupport.SeedPlatformLink(t, env.store, canonicalID, aliasID)

	out, _, err := runCLI(t, []string{"platform", "promote", fmt.Sprint(aliasID)}, env.configPath)
	if err != nil {
		t.Fatalf("platform promote: %v", err)
	}
	requireContains(t, out, fmt.Sprintf("Promoted platform %d", aliasID))

	out, _, err = runCLI(t, []string{"platform", "status", fmt.Sprint(aliasID)}, env.configPath)
	if err != nil {
		t.Fatalf("platform status: %v", err)
	}
	requireContains(t, out, "Role: canonical")
	requireContains(t, out, "Mega Drive")
}

func TestPlatformList(t *testing.T) {
	env := setupCLITestEnv(t)

	canonicalID := testsupport.SeedPlatform(t, env.store, "Super Nintendo")
	aliasID := testsupport.SeedPlatform(t, env.store, "SNES")
	testsupport.SeedPlatform(t, env.store, "Atari 2600")
	testsupport.SeedPlatformLink(t, env.store, canonicalID, aliasID)

	out, _, err := runCLI(t, []string{"platform", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("platform list: %v", err)
	}
	requireContains(t, out, "canonical")
	requireContains(t, out, "alias")
	requireContains(t, out, "standalone")

	// Name order, not insertion order.
	atariIdx := strings.Index(out, "Atari 2600")
	snesIdx := strings.Index(out, "Super Nintendo")
	if atariIdx < 0 || snesIdx < 0 || atariIdx > snesIdx {
		t.Fatalf("expected platforms sorted by name, got %q", out)
	}
}

func TestPlatformImportSeed(t *testing.T) {
	env := setupCLITestEnv(t)

	testsupport.SeedPlatform(t, env.store, "Super Nintendo")
	testsupport.SeedPlatform(t, env.store, "SNES")
	testsupport.SeedPlatform(t, env.store, "Super Famicom")

	seedPath := filepath.Join(t.TempDir(), "platforms.yaml")
	seed := "groups:\n  - canonical: Super Nintendo\n    aliases:\n      - SNES\n      - Super Famicom\n"
	if err := os.WriteFile(seedPath, []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	out, _, err := runCLI(t, []string{"platform", "import", seedPath}, env.configPath)
	if err != nil {
		t.Fatalf("platform import: %v", err)
	}
	requireContains(t, out, "Imported 1 group(s): 2 link(s) created, 0 already present, 0 unknown name(s)")

	out, _, err = runCLI(t, []string{"platform", "import", seedPath}, env.configPath)
	if err != nil {
		t.Fatalf("repeat platform import: %v", err)
	}
	requireContains(t, out, "0 link(s) created, 2 already present")
}
