package platformadmin_test

import (
	"context"
	"errors"
	"testing"

	"romcurator/internal/catalog"
	"romcurator/internal/platformadmin"
	"romcurator/internal/testsupport"
)

func TestCreateAliasesBuildsStar(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	canonical := testsupport.SeedPlatform(t, store, "Super Nintendo Entertainment System")
	aliasA := testsupport.SeedPlatform(t, store, "SNES")
	aliasB := testsupport.SeedPlatform(t, store, "Super Famicom")

	created, err := service.CreateAliases(ctx, canonical, []int64{aliasA, aliasB}, 1.0)
	if err != nil {
		t.Fatalf("CreateAliases: %v", err)
	}
	if created != 2 {
		t.Fatalf("created = %d, want 2", created)
	}

	created, err = service.CreateAliases(ctx, canonical, []int64{aliasA, aliasB}, 1.0)
	if err != nil {
		t.Fatalf("repeat CreateAliases: %v", err)
	}
	if created != 0 {
		t.Fatalf("repeat created = %d, want 0", created)
	}

	status, err := service.Status(ctx, canonical)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Role != platformadmin.RoleCanonical || len(status.Aliases) != 2 {
		t.Fatalf("status = %+v, want canonical with two aliases", status)
	}
}

func TestCreateAliasesAttachesToCanonicalOfAlias(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	canonical := testsupport.SeedPlatform(t, store, "Super Nintendo Entertainment System")
	aliasA := testsupport.SeedPlatform(t, store, "SNES")
	aliasB := testsupport.SeedPlatform(t, store, "Super Famicom")

	if _, err := service.CreateAliases(ctx, canonical, []int64{aliasA}, 1.0); err != nil {
		t.Fatalf("CreateAliases: %v", err)
	}

	// Linking through the alias must not hang a second hop off it.
	if _, err := service.CreateAliases(ctx, aliasA, []int64{aliasB}, 1.0); err != nil {
		t.Fatalf("CreateAliases via alias: %v", err)
	}

	status, err := service.Status(ctx, aliasB)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Role != platformadmin.RoleAlias || status.Canonical == nil || status.Canonical.PlatformID != canonical {
		t.Fatalf("status = %+v, want alias of platform %d", status, canonical)
	}
}

func TestCreateAliasesRejectsSelfLink(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	canonical := testsupport.SeedPlatform(t, store, "Super Nintendo Entertainment System")
	alias := testsupport.SeedPlatform(t, store, "SNES")

	if _, err := service.CreateAliases(ctx, canonical, []int64{canonical}, 1.0); !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("self link error = %v, want ErrValidation", err)
	}

	// Aliasing the canonical onto its own alias resolves back to a self link.
	if _, err := service.CreateAliases(ctx, canonical, []int64{alias}, 1.0); err != nil {
		t.Fatalf("CreateAliases: %v", err)
	}
	if _, err := service.CreateAliases(ctx, alias, []int64{canonical}, 1.0); !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("resolved self link error = %v, want ErrValidation", err)
	}
}

func TestCreateAliasesRejectsDemotingCanonical(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	snes := testsupport.SeedPlatform(t, store, "Super Nintendo Entertainment System")
	snesAlias := testsupport.SeedPlatform(t, store, "SNES")
	genesis := testsupport.SeedPlatform(t, store, "Genesis")
	genesisAlias := testsupport.SeedPlatform(t, store, "Mega Drive")

	if _, err := service.CreateAliases(ctx, snes, []int64{snesAlias}, 1.0); err != nil {
		t.Fatalf("CreateAliases: %v", err)
	}
	if _, err := service.CreateAliases(ctx, genesis, []int64{genesisAlias}, 1.0); err != nil {
		t.Fatalf("CreateAliases: %v", err)
	}

	if _, err := service.CreateAliases(ctx, snes, []int64{genesis}, 1.0); !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("demotion error = %v, want ErrValidation", err)
	}
}

func TestCreateAliasesUnknownPlatforms(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	known := testsupport.SeedPlatform(t, store, "Super Nintendo Entertainment System")

	if _, err := service.CreateAliases(ctx, 9999, []int64{known}, 1.0); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("unknown canonical error = %v, want ErrNotFound", err)
	}
	if _, err := service.CreateAliases(ctx, known, []int64{9999}, 1.0); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("unknown alias error = %v, want ErrNotFound", err)
	}
}

func TestRemoveAliasEitherDirection(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	canonical := testsupport.SeedPlatform(t, store, "Super Nintendo Entertainment System")
	aliasA := testsupport.SeedPlatform(t, store, "SNES")
	aliasB := testsupport.SeedPlatform(t, store, "Super Famicom")
	if _, err := service.CreateAliases(ctx, canonical, []int64{aliasA, aliasB}, 1.0); err != nil {
		t.Fatalf("CreateAliases: %v", err)
	}

	removed, err := service.RemoveAlias(ctx, aliasA, canonical)
	if err != nil {
		t.Fatalf("RemoveAlias: %v", err)
	}
	if !removed {
		t.Fatal("expected reversed-argument removal to find the edge")
	}

	removed, err = service.RemoveAlias(ctx, canonical, aliasA)
	if err != nil {
		t.Fatalf("second RemoveAlias: %v", err)
	}
	if removed {
		t.Fatal("edge already gone, second removal must report false")
	}

	status, err := service.Status(ctx, canonical)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.Aliases) != 1 {
		t.Fatalf("canonical has %d aliases after removal, want 1", len(status.Aliases))
	}
}

func TestPromoteRerootsGroup(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	old := testsupport.SeedPlatform(t, store, "Super Nintendo Entertainment System")
	next := testsupport.SeedPlatform(t, store, "SNES")
	other := testsupport.SeedPlatform(t, store, "Super Famicom")
	if _, err := service.CreateAliases(ctx, old, []int64{next, other}, 1.0); err != nil {
		t.Fatalf("CreateAliases: %v", err)
	}

	written, err := service.Promote(ctx, next)
	if err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if written != 2 {
		t.Fatalf("written = %d, want 2", written)
	}

	status, err := service.Status(ctx, next)
	if err != nil {
		t.Fatalf("Status(next): %v", err)
	}
	if status.Role != platformadmin.RoleCanonical || len(status.Aliases) != 2 {
		t.Fatalf("promoted status = %+v, want canonical with two aliases", status)
	}

	status, err = service.Status(ctx, old)
	if err != nil {
		t.Fatalf("Status(old): %v", err)
	}
	if status.Role != platformadmin.RoleAlias || status.Canonical == nil || status.Canonical.PlatformID != next {
		t.Fatalf("old canonical status = %+v, want alias of %d", status, next)
	}
}

func TestPromoteStandaloneRejected(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	lone := testsupport.SeedPlatform(t, store, "Virtual Boy")
	if _, err := service.Promote(ctx, lone); !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("Promote(standalone) error = %v, want ErrValidation", err)
	}
}
