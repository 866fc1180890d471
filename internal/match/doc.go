// Package match decides whether target and contract types are interchangeable.
//
// Key functions:
//   - Matcher.Match: verdict for one target/proxy type pair at a position
//   - MatchMethod: candidate for one contract method and one target method
//   - Rank: orders overload candidates by match quality
//   - Suggest: closest target names for an unmatched contract method
//   - Similarity: fuzzy member name comparison
package match
