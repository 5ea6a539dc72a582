// Package match finds the closest known identifier to a misspelled one, for
// "did you mean" hints in configuration errors.
//
// Key functions:
//   - NormalizeIdent: folds case and drops separators
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the best candidate above MinScore
package match
