// File: collapse.go
// Role: Collapse reverses one owner's contribution to a Store.
// Determinism:
//   - An entity with remaining owners is never removed; an entity owned only by
//     the collapsed owner is always removed.
// Concurrency:
//   - Pure: the input Store is cloned, never mutated.

package core

// Collapse returns a new Store with owner's contribution removed from s.
//
// Steps:
//  1. Nothing to remove for an empty owner, for the pinned origin, and for an
//     owner that is neither expanded nor owns anything: s is returned as is,
//     or as a pruned clone when it holds dangling edges (step 5).
//  2. Clone s; drop owner from Expanded.
//  3. Drop owner from every node owner set; delete nodes left without owners.
//  4. Same for edges.
//  5. Delete every remaining edge with a missing endpoint.
//
// Complexity: O(V + E) plus the clone.
func Collapse(s *Store, owner string) *Store {
	owner = normalizeID(owner)
	if s == nil {
		return nil
	}
	if owner == "" || owner == s.origin || !s.knowsOwner(owner) {
		if !s.hasDanglingEdges() {
			return s
		}
		out := s.Clone()
		out.pruneDanglingEdges()

		return out
	}
	out := s.Clone()
	delete(out.expanded, owner)

	for id, set := range out.nodeOwners {
		if _, ok := set[owner]; !ok {
			continue
		}
		delete(set, owner)
		if len(set) == 0 {
			delete(out.nodeOwners, id)
			delete(out.nodes, id)
		}
	}
	for key, set := range out.edgeOwners {
		if _, ok := set[owner]; !ok {
			continue
		}
		delete(set, owner)
		if len(set) == 0 {
			delete(out.edgeOwners, key)
			delete(out.edges, key)
		}
	}
	out.pruneDanglingEdges()

	return out
}

// pruneDanglingEdges deletes edges that reference a node absent from the store.
func (s *Store) pruneDanglingEdges() {
	for key, e := range s.edges {
		if s.hasEndpoints(e) {
			continue
		}
		delete(s.edges, key)
		delete(s.edgeOwners, key)
	}
}

// hasDanglingEdges reports whether any edge references a node absent from s.
func (s *Store) hasDanglingEdges() bool {
	for _, e := range s.edges {
		if !s.hasEndpoints(e) {
			return true
		}
	}

	return false
}

// knowsOwner reports whether owner is expanded or appears in any owner set.
func (s *Store) knowsOwner(owner string) bool {
	if _, ok := s.expanded[owner]; ok {
		return true
	}
	for _, set := range s.nodeOwners {
		if _, ok := set[owner]; ok {
			return true
		}
	}
	for _, set := range s.edgeOwners {
		if _, ok := set[owner]; ok {
			return true
		}
	}

	return false
}
