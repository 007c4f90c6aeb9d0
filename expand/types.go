package expand

import (
	"context"
	"errors"

	"github.com/opyruso/nw-leaderboard-sub000/core"
)

// Sentinel errors for controller operations.
var (
	// ErrEmptyOrigin indicates a controller was asked to load without an origin.
	ErrEmptyOrigin = errors.New("expand: origin is empty")

	// ErrInitialLoad wraps a failed origin load; nothing is rendered.
	ErrInitialLoad = errors.New("expand: initial load failed")

	// ErrNoOriginData indicates the origin payload did not contain the origin player.
	ErrNoOriginData = errors.New("expand: no origin data")

	// ErrLoadInProgress indicates Load was called while the origin load is in flight.
	ErrLoadInProgress = errors.New("expand: origin load in progress")

	// ErrNotLoaded indicates a tap arrived before the origin finished loading.
	ErrNotLoaded = errors.New("expand: graph not loaded")

	// ErrUnknownNode indicates a tap on an id that is not a node of the graph.
	ErrUnknownNode = errors.New("expand: unknown node")

	// ErrExpansionFailed wraps a failed neighborhood fetch; the node stays collapsed.
	ErrExpansionFailed = errors.New("expand: expansion failed")

	// ErrSuperseded indicates a fetch finished after the origin changed; its
	// result was discarded.
	ErrSuperseded = errors.New("expand: result discarded after origin change")
)

// Fetcher retrieves one player's neighborhood.
type Fetcher interface {
	Relationships(ctx context.Context, playerID string) (*core.Payload, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, playerID string) (*core.Payload, error)

// Relationships calls f.
func (f FetcherFunc) Relationships(ctx context.Context, playerID string) (*core.Payload, error) {
	return f(ctx, playerID)
}

// NodeState is the per-node expansion state.
type NodeState int

const (
	StateCollapsed NodeState = iota
	StateLoading
	StateExpanded
)

func (s NodeState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateExpanded:
		return "expanded"
	default:
		return "collapsed"
	}
}

// MarshalText renders the state name in JSON.
func (s NodeState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Action reports what a tap did.
type Action int

const (
	// ActionIgnored: origin tap, duplicate tap while loading, failed or superseded fetch.
	ActionIgnored Action = iota
	// ActionCollapsed: an expanded node was collapsed synchronously.
	ActionCollapsed
	// ActionExpanded: the neighborhood was fetched and merged.
	ActionExpanded
	// ActionPending: the caller stopped waiting; the fetch completes in the background.
	ActionPending
)

func (a Action) String() string {
	switch a {
	case ActionCollapsed:
		return "collapsed"
	case ActionExpanded:
		return "expanded"
	case ActionPending:
		return "pending"
	default:
		return "ignored"
	}
}

// MarshalText renders the action name in JSON.
func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// LoadState is the state of the origin load.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadLoading
	LoadReady
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return "idle"
	}
}

// MarshalText renders the load state name in JSON.
func (s LoadState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Status is a snapshot of the controller for the page chrome.
type Status struct {
	Origin string    `json:"origin"`
	Load   LoadState `json:"load"`
	// Message is the blocking status message after a failed origin load.
	Message string `json:"message,omitempty"`
	// Notice is the transient, dismissible message after a failed expansion.
	Notice  string   `json:"notice,omitempty"`
	Loading []string `json:"loading,omitempty"`
}
