// Package bfs provides breadth-first search over a core.Store, returning
// hop distances, parent links, and visit order.
//
// Edges of a relationship graph are undirected. Neighbors are expanded in
// sorted id order, so the visit sequence is reproducible for a given store.
// Edges whose far endpoint is not (yet) a node are never followed.
//
// Usage
//
//	res, err := bfs.BFS(store, store.Origin())
//	if err != nil {
//		// ErrStoreNil, ErrStartNodeNotFound, ErrOptionViolation, ctx or hook errors
//	}
//	depth := res.Depth["R3"] // hops from the origin
//
//	res, err = bfs.BFS(store, "P1",
//		bfs.WithMaxDepth(1),
//		bfs.WithFilterNeighbor(func(curr, nbr string) bool { return nbr != "A1" }),
//	)
//
// Complexity: O(V·E) with the store's O(E) neighbor scan; O(V) memory.
package bfs
