package platformadmin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"romcurator/internal/logging"
)

// seedFile is the YAML shape consumed by ImportSeed:
//
//	groups:
//	  - canonical: Super Nintendo Entertainment System
//	    aliases:
//	      - SNES
//	      - Super Famicom
type seedFile struct {
	Groups []seedGroup `yaml:"groups"`
}

type seedGroup struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

// SeedStats summarizes one seed import.
type SeedStats struct {
	Groups   int
	Created  int
	Existing int
	Unknown  int
}

// ImportSeed applies a YAML seed of alias groups, addressing platforms by
// name (case-insensitive). Names missing from the platform table are logged
// and skipped rather than failing the import, since seeds are written
// against catalogs whose platform sets vary. Re-importing the same seed is a
// no-op.
func (s *Service) ImportSeed(ctx context.Context, r io.Reader) (SeedStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return SeedStats{}, fmt.Errorf("read seed: %w", err)
	}
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return SeedStats{}, fmt.Errorf("parse seed: %w", err)
	}

	var stats SeedStats
	for _, group := range file.Groups {
		canonicalName := strings.TrimSpace(group.Canonical)
		if canonicalName == "" {
			continue
		}
		canonical, err := s.store.PlatformByName(ctx, canonicalName)
		if err != nil {
			return stats, err
		}
		if canonical == nil {
			stats.Unknown++
			s.logger.Warn("unknown canonical platform in seed, skipping group",
				logging.String("platform", canonicalName))
			continue
		}

		stats.Groups++
		for _, aliasName := range group.Aliases {
			aliasName = strings.TrimSpace(aliasName)
			if aliasName == "" {
				continue
			}
			alias, err := s.store.PlatformByName(ctx, aliasName)
			if err != nil {
				return stats, err
			}
			if alias == nil {
				stats.Unknown++
				s.logger.Warn("unknown alias platform in seed, skipping",
					logging.String("platform", aliasName),
					logging.String("canonical", canonical.Name))
				continue
			}
			if alias.PlatformID == canonical.PlatformID {
				continue
			}

			created, err := s.store.InsertPlatformLink(ctx, canonical.PlatformID, alias.PlatformID, 1.0)
			if err != nil {
				return stats, err
			}
			if created {
				stats.Created++
			} else {
				stats.Existing++
			}
		}
	}

	s.logger.Info("seed import complete",
		logging.Int("groups", stats.Groups),
		logging.Int("created", stats.Created),
		logging.Int("existing", stats.Existing),
		logging.Int("unknown", stats.Unknown))
	return stats, nil
}
