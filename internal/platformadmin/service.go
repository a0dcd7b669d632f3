package platformadmin

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"romcurator/internal/catalog"
	"romcurator/internal/logging"
)

// Role classifies a platform's position in the alias graph.
type Role string

const (
	// RoleCanonical marks a platform that owns outgoing alias edges.
	RoleCanonical Role = "canonical"
	// RoleAlias marks a platform that some canonical platform points at.
	RoleAlias Role = "alias"
	// RoleStandalone marks a platform with no edges in either direction.
	RoleStandalone Role = "standalone"
)

// Status describes one platform's place in the alias graph. Canonical is set
// for aliases; Aliases carries the direct aliases of a canonical platform.
type Status struct {
	Platform  catalog.Platform
	Role      Role
	Canonical *catalog.Platform
	Aliases   []catalog.Platform
}

// Group is a whole alias group: the canonical platform plus every member
// reachable through the edge list in either direction, the starting platform
// included. Members come back in identifier order.
type Group struct {
	CanonicalID int64
	Members     []catalog.Platform
}

// Service owns the alias-graph administration. The resolver only ever reads
// the edges; everything that writes them goes through here.
type Service struct {
	store  *catalog.Store
	logger *slog.Logger
}

// NewService constructs the administration service over the catalog store.
func NewService(store *catalog.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logging.NewComponentLogger(logger, "platformadmin"),
	}
}

// Overview lists every platform with its role, in platform order. Aliases
// and canonical pointers are left unresolved; Status fills those in for a
// single platform.
func (s *Service) Overview(ctx context.Context) ([]Status, error) {
	platforms, err := s.store.Platforms(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.store.PlatformRoles(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(platforms))
	for _, platform := range platforms {
		role := RoleStandalone
		switch roles[platform.PlatformID] {
		case "canonical":
			role = RoleCanonical
		case "alias":
			role = RoleAlias
		}
		out = append(out, Status{Platform: platform, Role: role})
	}
	return out, nil
}

// Status reports the role of one platform and its immediate relations.
func (s *Service) Status(ctx context.Context, platformID int64) (*Status, error) {
	platform, err := s.store.PlatformByID(ctx, platformID)
	if err != nil {
		return nil, err
	}
	if platform == nil {
		return nil, catalog.Wrap(catalog.ErrNotFound, "platform status", fmt.Sprintf("platform %d", platformID), nil)
	}

	status := &Status{Platform: *platform, Role: RoleStandalone}

	outgoing, err := s.store.EdgesFrom(ctx, platformID)
	if err != nil {
		return nil, err
	}
	if len(outgoing) > 0 {
		status.Role = RoleCanonical
		ids := make([]int64, 0, len(outgoing))
		for _, edge := range outgoing {
			ids = append(ids, edge.DatPlatformID)
		}
		status.Aliases, err = s.platformsByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return status, nil
	}

	inbound, err := s.store.EdgesTo(ctx, platformID)
	if err != nil {
		return nil, err
	}
	if len(inbound) > 0 {
		status.Role = RoleAlias
		canonical, err := s.store.PlatformByID(ctx, inbound[0].AtomicPlatformID)
		if err != nil {
			return nil, err
		}
		status.Canonical = canonical
	}
	return status, nil
}

// Group walks the whole alias group of a platform, following edges in both
// directions. This is deliberately stronger than the resolver's two-hop
// read: on a mis-shapen chain the walk still finds every member, which is
// exactly what an operator repairing the group needs to see.
func (s *Service) Group(ctx context.Context, platformID int64) (*Group, error) {
	platform, err := s.store.PlatformByID(ctx, platformID)
	if err != nil {
		return nil, err
	}
	if platform == nil {
		return nil, catalog.Wrap(catalog.ErrNotFound, "platform group", fmt.Sprintf("platform %d", platformID), nil)
	}

	canonicalID, err := s.canonicalOf(ctx, platformID)
	if err != nil {
		return nil, err
	}

	visited := make(map[int64]struct{})
	pending := []int64{canonicalID}
	for len(pending) > 0 {
		current := pending[0]
		pending = pending[1:]
		if _, ok := visited[current]; ok {
			continue
		}
		visited[current] = struct{}{}

		neighbors, err := s.store.NeighborPlatformIDs(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, id := range neighbors {
			if _, ok := visited[id]; !ok {
				pending = append(pending, id)
			}
		}
	}

	ids := make([]int64, 0, len(visited))
	for id := range visited {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	members, err := s.platformsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &Group{CanonicalID: canonicalID, Members: members}, nil
}

// canonicalOf resolves the canonical platform of the group platformID
// belongs to. A platform with outgoing edges is its own canonical; an alias
// follows its first inbound edge; a standalone platform stands for itself.
func (s *Service) canonicalOf(ctx context.Context, platformID int64) (int64, error) {
	outgoing, err := s.store.EdgesFrom(ctx, platformID)
	if err != nil {
		return 0, err
	}
	if len(outgoing) > 0 {
		return platformID, nil
	}
	inbound, err := s.store.EdgesTo(ctx, platformID)
	if err != nil {
		return 0, err
	}
	if len(inbound) > 0 {
		return inbound[0].AtomicPlatformID, nil
	}
	return platformID, nil
}

func (s *Service) platformsByIDs(ctx context.Context, ids []int64) ([]catalog.Platform, error) {
	platforms := make([]catalog.Platform, 0, len(ids))
	for _, id := range ids {
		platform, err := s.store.PlatformByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if platform == nil {
			continue
		}
		platforms = append(platforms, *platform)
	}
	return platforms, nil
}
