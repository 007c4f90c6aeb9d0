// Package core provides the owner-tracked relationship graph store behind the
// "who plays with whom" view, together with the two pure operations that grow
// and shrink it: Merge and Collapse.
//
// The Store S = (V, E, Own) is an immutable value:
//
//   - V: players keyed by id (Node)
//   - E: undirected relationships keyed by a canonical, swap-invariant key (Edge)
//   - Own: for every node and edge, the set of player ids whose expansion
//     introduced or re-confirmed it, plus the set of currently expanded players
//
// Every operation returns a fresh *Store; a *Store handed out is never mutated
// again, so it can be shared across goroutines and re-rendered freely.
//
// Operations:
//
//	NewStore(opts...)                 // empty store, WithOrigin(id) pins the origin
//	Merge(s, owner, payload) *Store   // fold one owner's neighborhood in
//	Collapse(s, owner) *Store         // reverse one owner's contribution
//	Equal(a, b) bool                  // structural equality, order independent
//	EdgeKey(a, b) string              // canonical edge identity
//
// Merge rules:
//
//	– node type is set on first sight and never downgraded
//	– node run count keeps the maximum ever observed
//	– a node label is only filled in when none was known
//	– edge run count keeps the maximum of the known values (nil = unknown)
//	– edge alternate flag is OR'ed (sticky true)
//	– the owner is always added to Expanded, even for an empty payload
//
// Because every rule is a set union or a max/OR, Merge is idempotent and
// commutative across owners; the final store does not depend on the order in
// which concurrent fetches complete.
//
// Collapse rules:
//
//	– the owner leaves Expanded and every owner set it belongs to
//	– a node or edge whose owner set becomes empty is deleted
//	– any edge left with a missing endpoint is deleted afterwards
//	– the origin is never collapsed
//
// Errors:
//
//	ErrEmptyNodeID   – zero-length node id on a lookup
//	ErrNodeNotFound  – lookup of a node that is not in the store
//
// Merge and Collapse never fail: unusable payload entries are skipped.
package core
