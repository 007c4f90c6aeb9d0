// File: merge.go
// Role: Merge folds one owner's fetched neighborhood into a Store.
// Determinism:
//   - Every update is a set union or a max/OR, so Merge is idempotent for a fixed
//     (owner, payload) and commutative across owners.
//   - Edge endpoints are stored in canonical order (Source <= Target).
// Concurrency:
//   - Pure: the input Store is cloned, never mutated.

package core

// typeRank orders node types so that a later merge can only promote a node.
var typeRank = map[NodeType]int{
	TypeRelated:   0,
	TypeAlternate: 1,
	TypeOrigin:    2,
}

// Merge returns a new Store in which owner's neighborhood p is folded into s.
//
// Steps:
//  1. Empty owner ⇒ s is returned unchanged (nothing to attribute the merge to).
//  2. Clone s; mark owner expanded (also for a nil or empty payload).
//  3. Upsert every player entry with a usable id; add owner to its owner set.
//  4. Upsert every edge entry with two distinct usable ids; add owner to its owner set.
//
// Node upsert: absent ⇒ created with the flag-inferred type; present ⇒ type only
// promoted (origin > alternate > related), run count maxed, label filled only
// when empty. Edge upsert: run count maxed over known values, alternate OR'ed.
//
// Complexity: O(V + E + |p|) dominated by the clone.
func Merge(s *Store, owner string, p *Payload) *Store {
	owner = normalizeID(owner)
	if owner == "" {
		return s
	}
	out := s.Clone()
	out.expanded[owner] = struct{}{}
	if p == nil {
		return out
	}

	if p.Origin != nil {
		entry := *p.Origin
		entry.Origin = true
		out.upsertNode(owner, entry)
	}
	for _, entry := range p.Alternates {
		entry.Alternate = true
		out.upsertNode(owner, entry)
	}
	for _, entry := range p.RelatedPlayers {
		out.upsertNode(owner, entry)
	}
	for _, entry := range p.Edges {
		out.upsertEdge(owner, entry)
	}

	return out
}

// upsertNode applies one player entry to the (already cloned) receiver.
func (s *Store) upsertNode(owner string, entry PlayerEntry) {
	id := normalizeID(entry.PlayerID)
	if id == "" {
		return
	}
	rc := clampCount(entry.RunCount)
	typ := s.inferType(id, entry)

	n, ok := s.nodes[id]
	if !ok {
		s.nodes[id] = &Node{ID: id, Label: entry.PlayerName, Type: typ, RunCount: rc}
	} else {
		if typeRank[typ] > typeRank[n.Type] {
			n.Type = typ
		}
		if rc > n.RunCount {
			n.RunCount = rc
		}
		if n.Label == "" {
			n.Label = entry.PlayerName
		}
	}
	addOwner(s.nodeOwners, id, owner)
}

// upsertEdge applies one edge entry to the (already cloned) receiver.
func (s *Store) upsertEdge(owner string, entry EdgeEntry) {
	a, b := normalizeID(entry.SourcePlayerID), normalizeID(entry.TargetPlayerID)
	if a == "" || b == "" || a == b {
		return
	}
	if b < a {
		a, b = b, a
	}
	key := EdgeKey(a, b)

	var rc *int64
	if entry.RunCount != nil {
		v := clampCount(*entry.RunCount)
		rc = &v
	}

	e, ok := s.edges[key]
	if !ok {
		s.edges[key] = &Edge{ID: key, Source: a, Target: b, RunCount: rc, Alternate: entry.AlternateLink}
	} else {
		if rc != nil && (e.RunCount == nil || *rc > *e.RunCount) {
			e.RunCount = rc
		}
		e.Alternate = e.Alternate || entry.AlternateLink
	}
	addOwner(s.edgeOwners, key, owner)
}

// inferType maps entry flags to a NodeType: origin wins over alternate. When the
// store has a pinned origin, only that id can be typed origin; every expanded
// player reports itself in its own payload's origin slot.
func (s *Store) inferType(id string, entry PlayerEntry) NodeType {
	switch {
	case entry.Origin && (s.origin == "" || s.origin == id):
		return TypeOrigin
	case entry.Alternate:
		return TypeAlternate
	default:
		return TypeRelated
	}
}

func clampCount(v int64) int64 {
	if v < 0 {
		return 0
	}

	return v
}

func addOwner(owners map[string]map[string]struct{}, id, owner string) {
	set, ok := owners[id]
	if !ok {
		set = make(map[string]struct{})
		owners[id] = set
	}
	set[owner] = struct{}{}
}
