// Package diagnostic provides coded diagnostics and the error taxonomy shared
// by the format model, the resource patterns and the transformation resolver.
//
// Key capabilities:
//   - Collecting declaration problems (duplicate fields, bad patterns) so they
//     can be reported together as a single configuration error
//   - Structural errors naming every missing or unrecognized file of a directory
//   - Sentinel errors usable with errors.Is across package boundaries
package diagnostic
