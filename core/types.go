// Package core defines the relationship Store, its Node and Edge records, the
// Payload shape consumed by Merge, and the sentinel errors of lookups.
//
// This file declares NodeType, Node, Edge, Store, StoreOption, the payload
// entry types, sentinel errors, and the NewStore constructor.
//
// Errors:
//
//	ErrEmptyNodeID  - node id is the empty string.
//	ErrNodeNotFound - requested node does not exist.
package core

import "errors"

// Sentinel errors for store lookups.
var (
	// ErrEmptyNodeID indicates that the provided node id is empty.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrNodeNotFound indicates a lookup referenced a node absent from the store.
	ErrNodeNotFound = errors.New("core: node not found")
)

// NodeType classifies a player relative to the graph origin.
type NodeType string

const (
	// TypeOrigin marks the player whose profile anchors the graph.
	TypeOrigin NodeType = "origin"

	// TypeAlternate marks the same underlying player under another identity.
	TypeAlternate NodeType = "alternate"

	// TypeRelated marks any other player reached through shared activity.
	TypeRelated NodeType = "related"
)

// Node is one player in the relationship graph.
type Node struct {
	// ID is the string-normalized player identifier.
	ID string

	// Label is the display name; filled once, never overwritten by a later merge.
	Label string

	// Type is set when the node is first observed and never downgraded.
	Type NodeType

	// RunCount measures shared activity; the maximum ever observed is kept.
	RunCount int64
}

// Edge is an undirected relationship between two players.
//
// ID is EdgeKey(Source, Target). Endpoints are stored in canonical order
// (Source < Target) whatever orientation the payloads reported.
type Edge struct {
	// ID is the canonical, swap-invariant edge key.
	ID string

	// Source is one endpoint id.
	Source string

	// Target is the other endpoint id.
	Target string

	// RunCount is nil until some payload reports a count; then the max is kept.
	RunCount *int64

	// Alternate is true once any payload flagged the edge as an alternate link.
	Alternate bool
}

// Store is the owner-tracked graph snapshot.
//
// A *Store is never mutated after it is returned by NewStore, Merge, Collapse
// or Clone; all accessors return copies. Reads are therefore safe from any
// number of goroutines without locking.
type Store struct {
	origin string

	nodes map[string]*Node // node ID → Node
	edges map[string]*Edge // edge key → Edge

	nodeOwners map[string]map[string]struct{} // node ID → owner set
	edgeOwners map[string]map[string]struct{} // edge key → owner set

	expanded map[string]struct{} // owners whose neighborhood is merged in
}

// StoreOption configures a Store at construction time.
type StoreOption func(s *Store)

// WithOrigin pins the origin player id; Collapse never accepts it as owner.
func WithOrigin(id string) StoreOption {
	return func(s *Store) { s.origin = normalizeID(id) }
}

// NewStore creates an empty Store with the given options.
// Complexity: O(1)
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		nodes:      make(map[string]*Node),
		edges:      make(map[string]*Edge),
		nodeOwners: make(map[string]map[string]struct{}),
		edgeOwners: make(map[string]map[string]struct{}),
		expanded:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// PlayerEntry is one player reported by a relationship payload.
type PlayerEntry struct {
	PlayerID   string
	PlayerName string
	RunCount   int64
	Origin     bool
	Alternate  bool
}

// EdgeEntry is one relationship reported by a relationship payload.
type EdgeEntry struct {
	SourcePlayerID string
	TargetPlayerID string
	RunCount       *int64
	AlternateLink  bool
}

// Payload is one owner's fetched neighborhood.
//
// Origin is the player whose neighborhood this is and is implicitly
// origin-flagged; Alternates are implicitly alternate-flagged. On a store with a
// pinned origin the origin flag only types the pinned id as TypeOrigin.
type Payload struct {
	Origin         *PlayerEntry
	Alternates     []PlayerEntry
	RelatedPlayers []PlayerEntry
	Edges          []EdgeEntry
}
