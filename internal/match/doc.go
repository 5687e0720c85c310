// Package match provides name normalization and Levenshtein similarity for
// suggesting registered format names when a lookup by name fails.
//
// Key functions:
//   - NormalizeName: folds a format name to its comparable core
//   - Distance, Similarity: rune-wise edit distance and its [0, 1] score
//   - Suggest: ranks candidate names by similarity
package match
