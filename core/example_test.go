package core_test

import (
	"fmt"

	"github.com/opyruso/nw-leaderboard-sub000/core"
)

// ExampleMerge expands the origin, then one of its related players.
func ExampleMerge() {
	origin := core.PlayerEntry{PlayerID: "P1", PlayerName: "Ada"}
	s := core.NewStore(core.WithOrigin("P1"))

	s = core.Merge(s, "P1", &core.Payload{
		Origin:         &origin,
		RelatedPlayers: []core.PlayerEntry{{PlayerID: "R1", PlayerName: "Bob", RunCount: 5}},
		Edges:          []core.EdgeEntry{{SourcePlayerID: "R1", TargetPlayerID: "P1"}},
	})
	s = core.Merge(s, "R1", &core.Payload{
		Origin:         &core.PlayerEntry{PlayerID: "R1", PlayerName: "Bob", RunCount: 5},
		RelatedPlayers: []core.PlayerEntry{{PlayerID: "R3", PlayerName: "Cy", RunCount: 1}},
		Edges:          []core.EdgeEntry{{SourcePlayerID: "R1", TargetPlayerID: "R3"}},
	})

	for _, n := range s.Nodes() {
		fmt.Println(n.ID, n.Type, s.NodeOwners(n.ID))
	}
	fmt.Println("edges:", s.EdgeCount())

	// Output:
	// P1 origin [P1]
	// R1 related [P1 R1]
	// R3 related [R1]
	// edges: 2
}

// ExampleCollapse removes what only R1's expansion contributed.
func ExampleCollapse() {
	s := core.NewStore(core.WithOrigin("P1"))
	s = core.Merge(s, "P1", &core.Payload{
		RelatedPlayers: []core.PlayerEntry{{PlayerID: "P1"}, {PlayerID: "R1"}},
		Edges:          []core.EdgeEntry{{SourcePlayerID: "P1", TargetPlayerID: "R1"}},
	})
	s = core.Merge(s, "R1", &core.Payload{
		RelatedPlayers: []core.PlayerEntry{{PlayerID: "R1"}, {PlayerID: "R3"}},
		Edges:          []core.EdgeEntry{{SourcePlayerID: "R1", TargetPlayerID: "R3"}},
	})

	s = core.Collapse(s, "R1")
	fmt.Println(s.HasNode("R1"), s.HasNode("R3"), s.EdgeCount())

	// Collapsing the origin is ignored.
	fmt.Println(core.Collapse(s, "P1").HasNode("P1"))

	// Output:
	// true false 1
	// true
}
