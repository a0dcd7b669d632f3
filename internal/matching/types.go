package matching

// Default thresholds. The config file can override each of these; the
// constants are the single source for flag defaults and tests.
const (
	// DefaultMinConfidence is the floor below which a scored entry is not
	// considered a candidate at all.
	DefaultMinConfidence = 0.7
	// DefaultAutoThreshold is the confidence a candidate must reach before
	// the auto-linker will consider writing a link for it.
	DefaultAutoThreshold = 0.95
	// DefaultCurationMin and DefaultCurationMax bound the half-open band
	// [min, max) of candidates offered for manual curation.
	DefaultCurationMin = 0.5
	DefaultCurationMax = 0.95
)

// curationTopMatches caps how many candidates a queue item carries for
// display.
const curationTopMatches = 5

// Candidate is a scored pairing of one atomic game with one DAT entry.
// Candidates are ephemeral; every resolution pass rebuilds them from the
// store.
type Candidate struct {
	AtomicID     int64    `json:"atomic_id"`
	AtomicTitle  string   `json:"atomic_title"`
	DatEntryID   int64    `json:"dat_entry_id"`
	DatTitle     string   `json:"dat_title"`
	BaseTitle    string   `json:"base_title"`
	PlatformID   int64    `json:"platform_id"`
	PlatformName string   `json:"platform_name"`
	Confidence   float64  `json:"confidence"`
	Reasons      []string `json:"reasons"`
}

// LinkStats summarizes one automatic linking pass. Counters are the only
// failure surface of a batch run; per-game errors never abort it.
type LinkStats struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// QueueItem is one atomic game awaiting manual curation, with its in-band
// candidates attached best-first.
type QueueItem struct {
	AtomicID    int64       `json:"atomic_id"`
	AtomicTitle string      `json:"atomic_title"`
	MatchCount  int         `json:"match_count"`
	BestMatch   Candidate   `json:"best_match"`
	TopMatches  []Candidate `json:"top_matches"`
}
