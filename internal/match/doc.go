// Package match finds the known label closest to a mistyped one.
//
// Key functions:
//   - Levenshtein: edit distance between two labels
//   - Similarity: distance scaled to a 0..1 score
//   - Closest: best known label above a minimum score
package match
