// Package nwgraph explores New World leaderboard player relationships as an
// incrementally expanded graph.
//
// Starting from one origin player, each tap on a related player fetches that
// player's neighborhood and merges it into the graph; a second tap collapses
// it again, removing only what no other expanded player still vouches for.
//
// Layout:
//
//	core/        immutable relationship Store, Merge and Collapse
//	bfs/         breadth-first traversal over a Store (hop depth from the origin)
//	encode/      node sizes, edge widths and labels; the flat scene for the renderer
//	relations/   HTTP client for the backend's /player/{id}/relationships endpoint
//	expand/      per-viewer expand/collapse controller
//	server/      gin HTTP surface over graph sessions
//	config/      YAML + environment configuration
//	cmd/nwgraph  CLI: serve, explore, version
//
// Quick example:
//
//	s := core.NewStore(core.WithOrigin("P1"))
//	s = core.Merge(s, "P1", originPayload)
//	s = core.Merge(s, "R1", r1Payload)   // R1 expanded
//	s = core.Collapse(s, "R1")           // back to the origin neighborhood
//	scene := encode.Render(s)
package nwgraph
