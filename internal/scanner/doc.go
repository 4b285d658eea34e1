// Package scanner discovers candidate cryptocurrency artifacts in text
// content and on the filesystem.
//
// The package has three layers:
//   - A closed pattern registry (patterns.go) mapping each pattern
//     category to its matcher and category-specific score bonus
//   - Confidence scoring (score.go) that combines the base score,
//     category bonuses, and origin hints into a 0-95 score
//   - Content and filesystem scanning (scanner.go, walk.go) that apply
//     the registry to caller-provided text or to a depth-first
//     directory traversal
//
// Design decision: The registry is a fixed ordered table keyed by an
// iota category rather than a dynamically extended map. Dispatch stays
// exhaustive and statically checkable, and the match order (most
// specific first) doubles as the deduplication priority: once a piece
// of text is claimed by a specific pattern, the base58 catch-all will
// not claim it again.
package scanner
