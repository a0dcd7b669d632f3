package matching

import (
	"context"
	"sort"
)

// ManualCurationQueue collects the games whose candidates fall in the
// half-open confidence band [minConfidence, maxConfidence): strong enough to
// show an operator, too weak or too ambiguous to link automatically. Items
// come back in atomic-title order with at most five candidates each.
func (e *Engine) ManualCurationQueue(ctx context.Context, minConfidence, maxConfidence float64) ([]QueueItem, error) {
	if minConfidence <= 0 {
		minConfidence = DefaultCurationMin
	}
	if maxConfidence <= 0 {
		maxConfidence = DefaultCurationMax
	}

	matches, err := e.FindAllPotentialMatches(ctx, minConfidence)
	if err != nil {
		return nil, err
	}

	var items []QueueItem
	for atomicID, candidates := range matches {
		inBand := make([]Candidate, 0, len(candidates))
		for _, candidate := range candidates {
			if candidate.Confidence >= minConfidence && candidate.Confidence < maxConfidence {
				inBand = append(inBand, candidate)
			}
		}
		if len(inBand) == 0 {
			continue
		}

		top := inBand
		if len(top) > curationTopMatches {
			top = top[:curationTopMatches]
		}
		items = append(items, QueueItem{
			AtomicID:    atomicID,
			AtomicTitle: inBand[0].AtomicTitle,
			MatchCount:  len(inBand),
			BestMatch:   inBand[0],
			TopMatches:  top,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].AtomicTitle != items[j].AtomicTitle {
			return items[i].AtomicTitle < items[j].AtomicTitle
		}
		return items[i].AtomicID < items[j].AtomicID
	})
	return items, nil
}
