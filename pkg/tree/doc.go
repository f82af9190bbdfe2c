// Package tree defines the canonical, immutable representation of a
// container's object hierarchy.
//
// A validation run canonicalizes the raw introspection output exactly once
// into a tree of Node values. After construction the tree never changes:
// the structural validator, the semantic rule engine, and the inspection
// dump all walk the same shared tree, so node identity and ordering are
// stable across consumers.
//
// # Canonical ordering
//
// Children and attributes are sorted lexicographically by name. Walk visits
// nodes in depth-first order following that child order, which makes every
// downstream report deterministic.
//
// # Sum types
//
// Attribute values, datatypes, and dataspaces are closed sums: sealed
// interfaces with a small fixed set of variants (see Value, Datatype,
// Dataspace). Consumers switch over the concrete variants; the sealed marker
// methods keep the set closed so a missing case is a local bug, not a silent
// fallthrough on foreign types.
package tree
