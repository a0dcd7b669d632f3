package matching

import (
	"context"
	"fmt"
	"slices"
)

// AliasResolver answers which platforms' DAT entries should be considered
// for games released on a given platform.
//
// Platform groups are modeled as a star: one canonical platform with
// directly linked aliases. Resolution is therefore a two-hop lookup, not a
// full traversal: the direct aliases of P, plus, when P is itself an alias,
// every alias of its canonical platform (sibling recovery). The platform
// admin tooling walks whole groups; if an operator ever builds a chain
// longer than two hops the two views disagree, and this resolver keeps the
// two-hop contract.
type AliasResolver struct {
	edges PlatformLinkRepository
}

// NewAliasResolver builds a resolver over the given edge repository.
func NewAliasResolver(edges PlatformLinkRepository) *AliasResolver {
	return &AliasResolver{edges: edges}
}

// Resolve returns the sorted, de-duplicated platform ids whose DAT entries
// are in scope for platformID. An empty result means the platform has no
// alias edges at all; callers skip it rather than comparing a platform
// against itself.
func (r *AliasResolver) Resolve(ctx context.Context, platformID int64) ([]int64, error) {
	seen := make(map[int64]struct{})

	direct, err := r.edges.EdgesFrom(ctx, platformID)
	if err != nil {
		return nil, fmt.Errorf("resolve direct aliases: %w", err)
	}
	for _, edge := range direct {
		seen[edge.DatPlatformID] = struct{}{}
	}

	inbound, err := r.edges.EdgesTo(ctx, platformID)
	if err != nil {
		return nil, fmt.Errorf("resolve canonical platforms: %w", err)
	}
	for _, edge := range inbound {
		siblings, err := r.edges.EdgesFrom(ctx, edge.AtomicPlatformID)
		if err != nil {
			return nil, fmt.Errorf("resolve sibling aliases: %w", err)
		}
		for _, sibling := range siblings {
			seen[sibling.DatPlatformID] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
