package textutil

import "strings"

const (
	// substringScore is the floor awarded when one normalized title contains
	// the other ("Sonic the Hedgehog" inside "Sonic the Hedgehog 2").
	substringScore = 0.8
	// wordOverlapWeight discounts the word-set overlap signal so that shared
	// vocabulary alone ("Final Fantasy 6" vs "Final Fantasy 7") cannot reach
	// the default candidate threshold.
	wordOverlapWeight = 0.9
)

// Similarity scores how likely two titles name the same game, in [0,1].
// Titles that normalize identically score exactly 1.0. Otherwise the score is
// the strongest of three signals: the longest contiguous run of shared words,
// the substring containment floor, and the weighted word-set overlap. The
// function is symmetric and reflexive.
func Similarity(a, b string) float64 {
	normA := Normalize(a)
	normB := Normalize(b)
	if normA == normB {
		return 1.0
	}
	// A title that normalizes to nothing carries no evidence; without this
	// guard the containment signal would score it 0.8 against everything.
	if normA == "" || normB == "" {
		return 0.0
	}

	wordsA := strings.Fields(normA)
	wordsB := strings.Fields(normB)

	score := matchingBlockRatio(wordsA, wordsB)
	if strings.Contains(normA, normB) || strings.Contains(normB, normA) {
		score = max(score, substringScore)
	}
	score = max(score, wordOverlapWeight*wordOverlap(wordsA, wordsB))
	return score
}

// matchingBlockRatio finds the longest contiguous run of words common to both
// titles and returns 2*run / (len(a)+len(b)). Titles are short, so the naive
// quadratic scan beats setting up a DP table.
func matchingBlockRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	longest := 0
	for i := range a {
		for j := range b {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > longest {
				longest = k
			}
		}
	}
	return 2.0 * float64(longest) / float64(len(a)+len(b))
}

// wordOverlap returns the shared fraction of the two unique word sets,
// measured against the larger set.
func wordOverlap(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, w := range a {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, w := range b {
		setB[w] = struct{}{}
	}
	shared := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			shared++
		}
	}
	larger := max(len(setA), len(setB))
	if larger == 0 {
		return 0.0
	}
	return float64(shared) / float64(larger)
}
