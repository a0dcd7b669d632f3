// Package textutil provides title normalization and similarity scoring for
// catalog matching.
//
// Normalization canonicalizes release titles into a comparable form:
// separators become spaces, a leading "The" is dropped, Roman numerals II-VIII
// become digits, and marketing qualifiers (Edition, Remaster, HD, ...) are
// stripped. The result is lower-case, whitespace-collapsed, and stable under
// repeated application.
//
// Similarity combines three signals over the normalized forms: the longest
// contiguous run of shared words, a substring containment bonus, and a
// word-set overlap ratio. Scores are symmetric and bounded in [0,1], with 1.0
// reserved for titles that normalize identically.
package textutil
