// Package registry provides the transformer registry consulted by the
// resolver.
//
// Plugins declare formats and transformers; Build aggregates any number of
// plugins into an immutable Registry. A transformer is registered for exactly
// one ordered (source, destination) view type pair and format names are
// unique across plugins; violations are configuration errors reported by
// Build. The registry is built once and passed explicitly to the resolver.
package registry
