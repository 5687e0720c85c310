// Package transform provides the transformation resolver.
//
// Resolution searches for a single registered transformer, allowing at most
// one local coercion on each side of it. Strategies are tried in order and
// the first hit wins:
//  1. direct: a transformer from the source view type to the destination
//  2. input coercion: source coerced to a bridge, then bridge -> destination
//  3. double coercion (single-file directory on both sides only): source
//     unwrapped to its file, transformer applied, result wrapped into the
//     destination layout
//  4. output coercion: source -> bridge, then bridge coerced to the destination
//
// Equal view types resolve to the identity. Multi-hop chaining through more
// than one registered transformer is not attempted.
//
// The returned conversion runs, in order: source normalization and
// validation, input coercion, transformer, output coercion, destination
// normalization and validation.
package transform
