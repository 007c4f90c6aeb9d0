package encode

import (
	"github.com/opyruso/nw-leaderboard-sub000/bfs"
	"github.com/opyruso/nw-leaderboard-sub000/core"
)

// Unreachable is the Depth of a node with no path to the origin.
const Unreachable = -1

// NodeRecord is one node as the renderer consumes it.
type NodeRecord struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Type     core.NodeType `json:"type"`
	Size     float64       `json:"size"`
	RunCount int64         `json:"runCount"`
	Expanded bool          `json:"expanded"`
	// Depth is the hop distance from the origin, or Unreachable.
	Depth int `json:"depth"`
}

// EdgeRecord is one edge as the renderer consumes it.
type EdgeRecord struct {
	ID            string  `json:"id"`
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	Width         float64 `json:"width"`
	Label         string  `json:"label"`
	AlternateLink bool    `json:"alternateLink"`
}

// Scene is the full, flat node/edge list re-supplied after every store change.
type Scene struct {
	Nodes []NodeRecord `json:"nodes"`
	Edges []EdgeRecord `json:"edges"`
}

// Render encodes every node and edge of s, sorted by id. Edges whose endpoints
// are not both nodes yet are withheld; the renderer cannot lay them out.
// A nil store renders as an empty scene.
func Render(s *core.Store) Scene {
	scene := Scene{Nodes: []NodeRecord{}, Edges: []EdgeRecord{}}
	if s == nil {
		return scene
	}
	depths := Depths(s)
	for _, n := range s.Nodes() {
		depth, ok := depths[n.ID]
		if !ok {
			depth = Unreachable
		}
		scene.Nodes = append(scene.Nodes, NodeRecord{
			ID:       n.ID,
			Label:    n.Label,
			Type:     n.Type,
			Size:     NodeSize(n),
			RunCount: n.RunCount,
			Expanded: s.IsExpanded(n.ID),
			Depth:    depth,
		})
	}
	for _, e := range s.Edges() {
		if !s.HasNode(e.Source) || !s.HasNode(e.Target) {
			continue
		}
		scene.Edges = append(scene.Edges, EdgeRecord{
			ID:            e.ID,
			Source:        e.Source,
			Target:        e.Target,
			Width:         EdgeWidth(e),
			Label:         EdgeLabel(e),
			AlternateLink: e.Alternate,
		})
	}

	return scene
}

// Depths returns the hop distance from the origin of every node reachable
// from it. The map is empty when the origin is not a node.
func Depths(s *core.Store) map[string]int {
	res, err := bfs.BFS(s, s.Origin())
	if err != nil {
		return map[string]int{}
	}

	return res.Depth
}
