// Package encode derives the visual encoding of a relationship Store: node
// sizes, edge widths and edge labels, and the flat node/edge records handed to
// the force-directed renderer after every store change.
//
// All functions are pure.
//
//	NodeSize(n)  = base(type) + min(log10(runCount+1)·28, 42)
//	               base: origin 88, alternate 64, related 44
//	EdgeWidth(e) = 2                                   if alternate
//	             = 2                                   if runCount unknown or ≤ 0
//	             = min(2 + log10(runCount+1)·2.6, 9)   otherwise
//	EdgeLabel(e) = ""                                  if alternate
//	             = decimal runCount (0 when unknown)   otherwise
//
// Sizes grow sub-linearly with shared activity so that no single node
// dominates the layout. Alternate links carry binary, not quantitative, meaning
// and therefore get a fixed width and no label.
package encode
