package bfs_test

import (
	"github.com/opyruso/nw-leaderboard-sub000/core"
)

// storeOf builds a store from undirected edges in one merge. Every endpoint
// becomes a node unless listed in missing.
func storeOf(origin string, edges [][2]string, missing ...string) *core.Store {
	skip := make(map[string]bool, len(missing))
	for _, id := range missing {
		skip[id] = true
	}

	p := &core.Payload{}
	seen := make(map[string]bool)
	addNode := func(id string) {
		if seen[id] || skip[id] {
			return
		}
		seen[id] = true
		p.RelatedPlayers = append(p.RelatedPlayers, core.PlayerEntry{PlayerID: id, PlayerName: id})
	}
	addNode(origin)
	for _, e := range edges {
		addNode(e[0])
		addNode(e[1])
		p.Edges = append(p.Edges, core.EdgeEntry{SourcePlayerID: e[0], TargetPlayerID: e[1]})
	}

	return core.Merge(core.NewStore(core.WithOrigin(origin)), origin, p)
}
