// SPDX-License-Identifier: MIT
// Package core_test contains fixtures shared by the core tests.
//
// Purpose:
//   - Provide the canonical P1/A1/R1/R2/R3 neighborhood used across tests.
//   - Keep payload construction out of test bodies.

package core_test

import "github.com/opyruso/nw-leaderboard-sub000/core"

// Player ids used across core tests.
const (
	PlayerEmpty = ""

	PlayerP1 = "P1"
	PlayerA1 = "A1"
	PlayerR1 = "R1"
	PlayerR2 = "R2"
	PlayerR3 = "R3"
	PlayerX  = "X"
)

// Run counts used across core tests (avoid magic numbers in test bodies).
const (
	Runs0 int64 = 0
	Runs1 int64 = 1
	Runs2 int64 = 2
	Runs5 int64 = 5
	Runs9 int64 = 9
)

// count returns a pointer to v for nullable run counts.
func count(v int64) *int64 { return &v }

// player builds a plain (related) player entry.
func player(id string, runs int64) core.PlayerEntry {
	return core.PlayerEntry{PlayerID: id, PlayerName: "name-" + id, RunCount: runs}
}

// edge builds an edge entry with a known run count.
func edge(a, b string, runs int64) core.EdgeEntry {
	return core.EdgeEntry{SourcePlayerID: a, TargetPlayerID: b, RunCount: count(runs)}
}

// originPayload is the origin-only payload: nodes {P1}.
func originPayload() *core.Payload {
	origin := player(PlayerP1, Runs0)
	return &core.Payload{Origin: &origin}
}

// p1Payload is P1's neighborhood: alternate A1, related R1 (5) and R2 (2).
func p1Payload() *core.Payload {
	origin := player(PlayerP1, Runs0)
	return &core.Payload{
		Origin:         &origin,
		Alternates:     []core.PlayerEntry{player(PlayerA1, Runs0)},
		RelatedPlayers: []core.PlayerEntry{player(PlayerR1, Runs5), player(PlayerR2, Runs2)},
		Edges: []core.EdgeEntry{
			{SourcePlayerID: PlayerP1, TargetPlayerID: PlayerA1, AlternateLink: true},
			edge(PlayerP1, PlayerR1, Runs5),
			edge(PlayerP1, PlayerR2, Runs2),
		},
	}
}

// r1Payload is R1's neighborhood: related R3 (1).
func r1Payload() *core.Payload {
	origin := player(PlayerR1, Runs5)
	return &core.Payload{
		Origin:         &origin,
		RelatedPlayers: []core.PlayerEntry{player(PlayerR3, Runs1)},
		Edges:          []core.EdgeEntry{edge(PlayerR1, PlayerR3, Runs1)},
	}
}

// scenarioStore replays origin load, P1 expansion and R1 expansion.
func scenarioStore() *core.Store {
	s := core.NewStore(core.WithOrigin(PlayerP1))
	s = core.Merge(s, PlayerP1, originPayload())
	s = core.Merge(s, PlayerP1, p1Payload())

	return core.Merge(s, PlayerR1, r1Payload())
}

// nodeIDs returns the sorted node ids of s.
func nodeIDs(s *core.Store) []string {
	nodes := s.Nodes()
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}

	return out
}
