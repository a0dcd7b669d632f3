package platformadmin_test

import (
	"context"
	"errors"
	"testing"

	"romcurator/internal/catalog"
	"romcurator/internal/logging"
	"romcurator/internal/platformadmin"
	"romcurator/internal/testsupport"
)

func newService(t *testing.T) (*catalog.Store, *platformadmin.Service) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	return store, platformadmin.NewService(store, logging.NewNop())
}

func TestStatusRoles(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	canonical := testsupport.SeedPlatform(t, store, "Super Nintendo Entertainment System")
	aliasA := testsupport.SeedPlatform(t, store, "SNES")
	aliasB := testsupport.SeedPlatform(t, store, "Super Famicom")
	standalone := testsupport.SeedPlatform(t, store, "Genesis")

	if _, err := store.InsertPlatformLink(ctx, canonical, aliasA, 1.0); err != nil {
		t.Fatalf("InsertPlatformLink: %v", err)
	}
	if _, err := store.InsertPlatformLink(ctx, canonical, aliasB, 1.0); err != nil {
		t.Fatalf("InsertPlatformLink: %v", err)
	}

	status, err := service.Status(ctx, canonical)
	if err != nil {
		t.Fatalf("Status(canonical): %v", err)
	}
	if status.Role != platformadmin.RoleCanonical {
		t.Errorf("canonical role = %q", status.Role)
	}
	if len(status.Aliases) != 2 {
		t.Errorf("canonical has %d aliases, want 2", len(status.Aliases))
	}

	status, err = service.Status(ctx, aliasA)
	if err != nil {
		t.Fatalf("Status(alias): %v", err)
	}
	if status.Role != platformadmin.RoleAlias {
		t.Errorf("alias role = %q", status.Role)
	}
	if status.Canonical == nil || status.Canonical.PlatformID != canonical {
		t.Errorf("alias canonical = %+v, want platform %d", status.Canonical, canonical)
	}

	status, err = service.Status(ctx, standalone)
	if err != nil {
		t.Fatalf("Status(standalone): %v", err)
	}
	if status.Role != platformadmin.RoleStandalone {
		t.Errorf("standalone role = %q", status.Role)
	}

	if _, err := service.Status(ctx, 9999); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Status(absent) error = %v, want ErrNotFound", err)
	}
}

func TestGroupFromAnyMember(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	canonical := testsupport.SeedPlatform(t, store, "Super Nintendo Entertainment System")
	aliasA := testsupport.SeedPlatform(t, store, "SNES")
	aliasB := testsupport.SeedPlatform(t, store, "Super Famicom")
	if _, err := store.InsertPlatformLink(ctx, canonical, aliasA, 1.0); err != nil {
		t.Fatalf("InsertPlatformLink: %v", err)
	}
	if _, err := store.InsertPlatformLink(ctx, canonical, aliasB, 1.0); err != nil {
		t.Fatalf("InsertPlatformLink: %v", err)
	}

	for _, seed := range []int64{canonical, aliasA, aliasB} {
		group, err := service.Group(ctx, seed)
		if err != nil {
			t.Fatalf("Group(%d): %v", seed, err)
		}
		if group.CanonicalID != canonical {
			t.Errorf("Group(%d) canonical = %d, want %d", seed, group.CanonicalID, canonical)
		}
		if len(group.Members) != 3 {
			t.Errorf("Group(%d) has %d members, want 3", seed, len(group.Members))
		}
	}
}

func TestGroupWalksChains(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	a := testsupport.SeedPlatform(t, store, "Platform A")
	b := testsupport.SeedPlatform(t, store, "Platform B")
	c := testsupport.SeedPlatform(t, store, "Platform C")

	// A chain rather than a star: built directly at the store level, the way
	// stray hand edits leave the table. The resolver's two-hop read cannot
	// see C from A, but the group walk must, so the operator can repair it.
	if _, err := store.InsertPlatformLink(ctx, a, b, 1.0); err != nil {
		t.Fatalf("InsertPlatformLink: %v", err)
	}
	if _, err := store.InsertPlatformLink(ctx, b, c, 1.0); err != nil {
		t.Fatalf("InsertPlatformLink: %v", err)
	}

	group, err := service.Group(ctx, a)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(group.Members) != 3 {
		t.Fatalf("chain walk found %d members, want 3", len(group.Members))
	}
	if group.CanonicalID != a {
		t.Errorf("canonical = %d, want %d", group.CanonicalID, a)
	}
}

func TestGroupStandalone(t *testing.T) {
	store, service := newService(t)
	ctx := context.Background()

	lone := testsupport.SeedPlatform(t, store, "Virtual Boy")
	group, err := service.Group(ctx, lone)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if group.CanonicalID != lone || len(group.Members) != 1 {
		t.Fatalf("standalone group = %+v, want only itself", group)
	}
}
