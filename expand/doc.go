// Package expand drives the expand/collapse interaction on a relationship graph.
//
// A Controller holds the current core.Store for one origin and applies taps:
//
//	collapsed --tap--> loading --fetch ok--> expanded --tap--> collapsed
//	                      |
//	                      +--fetch error--> collapsed (notice set)
//
// The origin is expanded by Load and cannot be collapsed. A tap on a node that
// is already loading is ignored, so each node has at most one fetch in flight.
// Fetches are never cancelled; Reset bumps a generation counter so results for
// a previous origin are dropped on arrival.
package expand
