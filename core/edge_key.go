// File: edge_key.go
// Role: Canonical, orientation-free edge identity.
// Determinism:
//   - EdgeKey(a, b) == EdgeKey(b, a) for all a, b.

package core

// edgeKeySeparator joins the two sorted endpoint ids of an edge key.
const edgeKeySeparator = "__"

// EdgeKey returns the canonical key of the edge joining a and b: both ids are
// normalized, sorted ascending and joined, so a payload reporting (A,B) and
// another reporting (B,A) address the same edge.
//
// Complexity: O(len(a)+len(b))
func EdgeKey(a, b string) string {
	a, b = normalizeID(a), normalizeID(b)
	if b < a {
		a, b = b, a
	}

	return a + edgeKeySeparator + b
}
