// Package matching links atomic game records to DAT catalog entries.
//
// The Engine scores title similarity over the platform-alias graph and
// applies two selection policies to the same candidate sets: automatic
// linking accepts a game only when exactly one candidate clears the
// confidence threshold, and the curation queue collects the ambiguous
// middle band for an operator to adjudicate. All reads and writes go
// through narrow repository interfaces implemented by catalog.Store, so
// the policy logic is testable against in-memory fakes.
package matching
