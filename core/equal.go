// File: equal.go
// Role: Structural equality of Store snapshots.
// Determinism:
//   - Independent of map iteration order and of how the stores were built.

package core

// Equal reports whether a and b hold the same origin, nodes, edges, owner sets
// and expanded set. Two nil stores are equal; nil never equals a non-nil store.
//
// Complexity: O(V + E + total owners)
func Equal(a, b *Store) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.origin != b.origin || len(a.nodes) != len(b.nodes) || len(a.edges) != len(b.edges) {
		return false
	}
	for id, na := range a.nodes {
		nb, ok := b.nodes[id]
		if !ok || *na != *nb {
			return false
		}
	}
	for key, ea := range a.edges {
		eb, ok := b.edges[key]
		if !ok || !edgesEqual(ea, eb) {
			return false
		}
	}

	return ownersEqual(a.nodeOwners, b.nodeOwners) &&
		ownersEqual(a.edgeOwners, b.edgeOwners) &&
		setsEqual(a.expanded, b.expanded)
}

func edgesEqual(a, b *Edge) bool {
	if a.ID != b.ID || a.Source != b.Source || a.Target != b.Target || a.Alternate != b.Alternate {
		return false
	}
	if a.RunCount == nil || b.RunCount == nil {
		return a.RunCount == nil && b.RunCount == nil
	}

	return *a.RunCount == *b.RunCount
}

func ownersEqual(a, b map[string]map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id, sa := range a {
		sb, ok := b[id]
		if !ok || !setsEqual(sa, sb) {
			return false
		}
	}

	return true
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}

	return true
}
