package catalog

import (
	"strings"
	"time"
)

// MatchType records the provenance of a stored atomic/DAT link.
type MatchType string

const (
	MatchAutomatic MatchType = "automatic"
	MatchManual    MatchType = "manual"
	MatchNoMatch   MatchType = "no_match"
)

var allMatchTypes = []MatchType{
	MatchAutomatic,
	MatchManual,
	MatchNoMatch,
}

var matchTypeSet = func() map[MatchType]struct{} {
	set := make(map[MatchType]struct{}, len(allMatchTypes))
	for _, mt := range allMatchTypes {
		set[mt] = struct{}{}
	}
	return set
}()

// ParseMatchType converts a string into a known MatchType.
func ParseMatchType(value string) (MatchType, bool) {
	normalized := MatchType(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := matchTypeSet[normalized]
	return normalized, ok
}

// AtomicGame is a canonical, deduplicated game record from a metadata source.
// The resolver reads these; the metadata-ingestion pipeline owns them.
type AtomicGame struct {
	AtomicID       int64
	CanonicalTitle string
}

// Platform is a shared reference entity naming a game system.
type Platform struct {
	PlatformID int64
	Name       string
}

// DatEntry is a ROM-catalog record tied to one platform. BaseTitle is the
// release title with region/version/dump tags already stripped by the DAT
// parser; entries with an empty BaseTitle never enter candidate generation.
// PlatformName is join-derived for display.
type DatEntry struct {
	DatEntryID   int64
	PlatformID   int64
	PlatformName string
	ReleaseTitle string
	BaseTitle    string
}

// PlatformLink is a directed alias edge: DAT entries catalogued under
// DatPlatformID also apply to games released on AtomicPlatformID.
type PlatformLink struct {
	AtomicPlatformID int64
	DatPlatformID    int64
	Confidence       float64
}

// Link is a stored resolution decision. DatEntryID is nil for a no_match
// sentinel, which records "nothing to link" so the game leaves the curation
// queue. Rows are insert-only.
type Link struct {
	LinkID     int64
	AtomicID   int64
	DatEntryID *int64
	Confidence float64
	MatchType  MatchType
	CreatedAt  time.Time
}

// UnmatchedGame is a triage row for games with no link decision of any kind.
type UnmatchedGame struct {
	AtomicID       int64
	CanonicalTitle string
	ReleaseCount   int
	Platforms      string
}

// RunStatus is the lifecycle of a resolution run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// ResolutionRun records one auto-link sweep over the catalog.
type ResolutionRun struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    *time.Time
	AutoThreshold float64
	Status        RunStatus
	Created       int
	Skipped       int
	Errors        int
}

// DatabaseHealth captures diagnostic information about the catalog database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	TablesPresent    []string
	MissingTables    []string
	AtomicGames      int
	DatEntries       int
	Links            int
	IntegrityCheck   bool
	Error            string
}

// MatchingReport aggregates catalog-wide resolution coverage.
type MatchingReport struct {
	GeneratedAt     time.Time
	TotalGames      int
	TotalEntries    int
	LinkedGames     int
	UnlinkedGames   int
	AutoLinked      int
	ManualLinked    int
	MarkedNoMatch   int
	LinkedPercent   float64
	Platforms       []PlatformCoverage
	ConfidenceBands []ConfidenceBand
}

// PlatformCoverage is the per-platform slice of the matching report.
type PlatformCoverage struct {
	Platform      string
	TotalGames    int
	LinkedGames   int
	LinkedPercent float64
}

// ConfidenceBand counts stored links whose confidence falls in a named range.
type ConfidenceBand struct {
	Range string
	Count int
}
