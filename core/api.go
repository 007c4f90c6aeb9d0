// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only accessors over a Store snapshot.
// Policy:
//   - No mutation here; every returned slice/map/pointer is a fresh copy.
//   - Enumerations are sorted by id so outputs are stable across runs.

package core

import (
	"log/slog"
	"sort"
	"strings"
)

// Stats is a compact summary of a Store, used for logs and diagnostics.
type Stats struct {
	NodeCount      int
	EdgeCount      int
	ExpandedCount  int
	AlternateEdges int
	DanglingEdges  int
}

// LogValue renders st as a slog group.
func (st Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("nodes", st.NodeCount),
		slog.Int("edges", st.EdgeCount),
		slog.Int("expanded", st.ExpandedCount),
		slog.Int("alternate_edges", st.AlternateEdges),
		slog.Int("dangling_edges", st.DanglingEdges),
	)
}

// Origin returns the pinned origin id, or "" if none was set.
func (s *Store) Origin() string { return s.origin }

// Node returns a copy of the node with the given id.
// Complexity: O(1)
func (s *Store) Node(id string) (Node, bool) {
	n, ok := s.nodes[normalizeID(id)]
	if !ok {
		return Node{}, false
	}

	return *n, true
}

// HasNode reports whether a node with the given id exists.
func (s *Store) HasNode(id string) bool {
	_, ok := s.nodes[normalizeID(id)]
	return ok
}

// Edge returns a copy of the edge stored under the given canonical key.
// Complexity: O(1)
func (s *Store) Edge(key string) (Edge, bool) {
	e, ok := s.edges[key]
	if !ok {
		return Edge{}, false
	}

	return copyEdge(e), true
}

// EdgeBetween returns the edge joining a and b, in either orientation.
func (s *Store) EdgeBetween(a, b string) (Edge, bool) {
	return s.Edge(EdgeKey(a, b))
}

// Nodes returns copies of all nodes sorted by ID.
// Complexity: O(V log V)
func (s *Store) Nodes() []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Edges returns copies of all edges sorted by ID.
// Complexity: O(E log E)
func (s *Store) Edges() []Edge {
	out := make([]Edge, 0, len(s.edges))
	for _, e := range s.edges {
		out = append(out, copyEdge(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// NodeOwners returns the sorted owner ids of a node (nil if absent).
func (s *Store) NodeOwners(id string) []string {
	return sortedSet(s.nodeOwners[normalizeID(id)])
}

// EdgeOwners returns the sorted owner ids of an edge (nil if absent).
func (s *Store) EdgeOwners(key string) []string {
	return sortedSet(s.edgeOwners[key])
}

// Expanded returns the sorted ids of all expanded owners.
func (s *Store) Expanded() []string {
	return sortedSet(s.expanded)
}

// IsExpanded reports whether id's neighborhood is currently merged in.
func (s *Store) IsExpanded(id string) bool {
	_, ok := s.expanded[normalizeID(id)]
	return ok
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// Neighbors returns the sorted ids adjacent to id through any edge.
//
// Errors:
//   - ErrEmptyNodeID if id is empty.
//   - ErrNodeNotFound if id is not a node.
//
// Complexity: O(E + d log d)
func (s *Store) Neighbors(id string) ([]string, error) {
	id = normalizeID(id)
	if id == "" {
		return nil, ErrEmptyNodeID
	}
	if _, ok := s.nodes[id]; !ok {
		return nil, ErrNodeNotFound
	}
	seen := make(map[string]struct{})
	for _, e := range s.edges {
		switch id {
		case e.Source:
			seen[e.Target] = struct{}{}
		case e.Target:
			seen[e.Source] = struct{}{}
		}
	}

	return sortedSet(seen), nil
}

// Stats returns a summary snapshot of the store.
// Complexity: O(E)
func (s *Store) Stats() Stats {
	st := Stats{
		NodeCount:     len(s.nodes),
		EdgeCount:     len(s.edges),
		ExpandedCount: len(s.expanded),
	}
	for _, e := range s.edges {
		if e.Alternate {
			st.AlternateEdges++
		}
		if !s.hasEndpoints(e) {
			st.DanglingEdges++
		}
	}

	return st
}

// hasEndpoints reports whether both endpoints of e are nodes of s.
func (s *Store) hasEndpoints(e *Edge) bool {
	_, okS := s.nodes[e.Source]
	_, okT := s.nodes[e.Target]

	return okS && okT
}

// normalizeID trims surrounding whitespace; an empty result is unusable.
func normalizeID(id string) string {
	return strings.TrimSpace(id)
}

func copyEdge(e *Edge) Edge {
	out := *e
	if e.RunCount != nil {
		rc := *e.RunCount
		out.RunCount = &rc
	}

	return out
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
