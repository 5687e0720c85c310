// Package resource provides the resource pattern strategies and the view-type
// classifier.
//
// A Pattern wraps one view type and knows how to:
//   - normalize loosely typed input (a string path) into its canonical shape
//   - validate a canonical value, including the format's content check
//   - enumerate input coercions (ways to reach a backing format or path)
//   - enumerate output coercions (ways to produce this pattern from one)
//
// The first coercion of each list is always the identity. Coercions are local
// conversions; they never consult the transformer registry.
package resource
