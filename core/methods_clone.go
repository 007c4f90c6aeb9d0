// File: methods_clone.go
// Role: Deep copies of a Store, the copy-on-write step behind Merge/Collapse.
// Determinism:
//   - Clone preserves every node, edge, owner set, the expanded set and the origin.

package core

// Clone returns a deep copy of the Store: nodes, edges, owner sets, expanded
// set and origin. The copy shares no memory with the receiver. A nil receiver
// clones to an empty store.
//
// Complexity: O(V + E + total owners)
func (s *Store) Clone() *Store {
	if s == nil {
		return NewStore()
	}
	c := NewStore(WithOrigin(s.origin))
	for id, n := range s.nodes {
		cp := *n
		c.nodes[id] = &cp
	}
	for key, e := range s.edges {
		cp := copyEdge(e)
		c.edges[key] = &cp
	}
	for id, owners := range s.nodeOwners {
		c.nodeOwners[id] = cloneSet(owners)
	}
	for key, owners := range s.edgeOwners {
		c.edgeOwners[key] = cloneSet(owners)
	}
	c.expanded = cloneSet(s.expanded)

	return c
}

func cloneSet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}

	return out
}
