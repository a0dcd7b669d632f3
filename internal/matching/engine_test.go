package matching_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"romcurator/internal/matching"
)

// streetFighterStore seeds the recurring fixture: one game whose catalog
// platform has a single DAT-side alias carrying entries at three distinct
// confidence levels plus one unrelated entry.
func streetFighterStore() *fakeStore {
	store := newFakeStore()
	store.addGame(1, "Street Fighter II")
	store.addRelease(1, 10, "Super Nintendo Entertainment System")
	store.addEdge(10, 11)
	store.addEntry(101, 11, "SNES", "Street Fighter 2 (USA)", "Street Fighter 2")
	store.addEntry(102, 11, "SNES", "Street Fighter 2 Turbo (USA)", "Street Fighter 2 Turbo")
	store.addEntry(103, 11, "SNES", "Street Fighter (World)", "Street Fighter")
	store.addEntry(104, 11, "SNES", "Final Fantasy VII (USA)", "Final Fantasy VII")
	return store
}

func TestFindMatchesScoresAndOrders(t *testing.T) {
	store := streetFighterStore()
	engine := newTestEngine(store)

	candidates, err := engine.FindMatches(context.Background(), 1, matching.DefaultMinConfidence)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	wantIDs := []int64{101, 102, 103}
	wantScores := []float64{1.0, 6.0 / 7.0, 0.8}
	if len(candidates) != len(wantIDs) {
		t.Fatalf("got %d candidates, want %d: %+v", len(candidates), len(wantIDs), candidates)
	}
	for i, candidate := range candidates {
		if candidate.DatEntryID != wantIDs[i] {
			t.Errorf("candidate %d: dat entry %d, want %d", i, candidate.DatEntryID, wantIDs[i])
		}
		if !approxEqual(candidate.Confidence, wantScores[i]) {
			t.Errorf("candidate %d: confidence %.4f, want %.4f", i, candidate.Confidence, wantScores[i])
		}
		if candidate.AtomicID != 1 || candidate.AtomicTitle != "Street Fighter II" {
			t.Errorf("candidate %d carries wrong game: %+v", i, candidate)
		}
	}

	wantReasons := []string{"Base title match (1.00)", "Full title match (0.86)"}
	if !slices.Equal(candidates[0].Reasons, wantReasons) {
		t.Errorf("best candidate reasons = %v, want %v", candidates[0].Reasons, wantReasons)
	}
	if !slices.Equal(candidates[2].Reasons, []string{"Base title match (0.80)"}) {
		t.Errorf("weakest candidate reasons = %v", candidates[2].Reasons)
	}
}

func TestFindMatchesFullTitleSignalAlone(t *testing.T) {
	store := newFakeStore()
	store.addGame(2, "Sonic the Hedgehog 3")
	store.addRelease(2, 10, "Genesis")
	store.addEdge(10, 11)
	store.addEntry(201, 11, "Mega Drive", "Sonic the Hedgehog 3 (USA)", "Sonic 3")

	engine := newTestEngine(store)
	candidates, err := engine.FindMatches(context.Background(), 2, matching.DefaultMinConfidence)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(candidates), candidates)
	}
	// The abbreviated base title scores 0.45; only the release title carries
	// the match over the floor.
	if !approxEqual(candidates[0].Confidence, 8.0/9.0) {
		t.Errorf("confidence = %.4f, want %.4f", candidates[0].Confidence, 8.0/9.0)
	}
	if !slices.Equal(candidates[0].Reasons, []string{"Full title match (0.89)"}) {
		t.Errorf("reasons = %v, want full-title reason only", candidates[0].Reasons)
	}
}

func TestFindMatchesRespectsMinConfidence(t *testing.T) {
	store := newFakeStore()
	store.addGame(3, "Final Fantasy VI")
	store.addRelease(3, 10, "Super Nintendo Entertainment System")
	store.addEdge(10, 11)
	store.addEntry(301, 11, "SNES", "Final Fantasy VII (USA)", "Final Fantasy VII")

	engine := newTestEngine(store)

	candidates, err := engine.FindMatches(context.Background(), 3, 0.7)
	if err != nil {
		t.Fatalf("FindMatches at 0.7: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("sequels must not match at 0.7, got %+v", candidates)
	}

	candidates, err = engine.FindMatches(context.Background(), 3, 0.6)
	if err != nil {
		t.Fatalf("FindMatches at 0.6: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates at 0.6, want 1", len(candidates))
	}
	if !approxEqual(candidates[0].Confidence, 2.0/3.0) {
		t.Errorf("confidence = %.4f, want %.4f", candidates[0].Confidence, 2.0/3.0)
	}
}

func TestFindMatchesDataGaps(t *testing.T) {
	store := newFakeStore()
	store.addGame(5, "   ")
	store.addGame(6, "Chrono Trigger")
	store.addGame(7, "Earthbound")
	store.addRelease(7, 50, "SNES")

	engine := newTestEngine(store)

	cases := []struct {
		name     string
		atomicID int64
	}{
		{"unknown game", 404},
		{"blank title", 5},
		{"no release platforms", 6},
		{"platform without alias edges", 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidates, err := engine.FindMatches(context.Background(), tc.atomicID, matching.DefaultMinConfidence)
			if err != nil {
				t.Fatalf("FindMatches: %v", err)
			}
			if len(candidates) != 0 {
				t.Fatalf("got %+v, want no candidates", candidates)
			}
		})
	}
}

func TestFindAllPotentialMatchesSkipsFailingGame(t *testing.T) {
	store := streetFighterStore()
	store.addGame(2, "Sonic the Hedgehog 3")
	store.addRelease(2, 10, "Genesis")
	store.addEntry(201, 11, "Mega Drive", "Sonic the Hedgehog 3 (USA)", "Sonic 3")
	store.failGameFetch[1] = errors.New("boom")

	engine := newTestEngine(store)
	matches, err := engine.FindAllPotentialMatches(context.Background(), matching.DefaultMinConfidence)
	if err != nil {
		t.Fatalf("FindAllPotentialMatches: %v", err)
	}
	if _, ok := matches[1]; ok {
		t.Error("failing game must be skipped, not scored")
	}
	if got := len(matches[2]); got != 1 {
		t.Errorf("healthy game got %d candidates, want 1", got)
	}
}

func TestFindAllPotentialMatchesStopsOnCancel(t *testing.T) {
	store := streetFighterStore()
	engine := newTestEngine(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.FindAllPotentialMatches(ctx, matching.DefaultMinConfidence)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
