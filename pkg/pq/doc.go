// Package pq implements the PQ-tree reduction engine used for incremental
// planarity testing in the style of Booth and Lueker.
//
// # Overview
//
// A PQ-tree compactly represents every permutation of a set of leaves that
// satisfies the "consecutive ones" constraints applied so far. The tree has
// two kinds of interior nodes:
//
//   - P-nodes: children can be arranged in any order
//   - Q-nodes: children have a fixed order that can only be reversed as a whole
//
// In planarity testing each leaf stands for a graph edge waiting to be
// embedded. Processing a vertex means reducing the leaves of its incoming
// edges to a consecutive block and replacing that block with fresh leaves for
// the outgoing edges. If some reduction is impossible, the graph is not
// planar.
//
// # Usage
//
// The engine works in strict reduce/replace pairs:
//
//	tree := pq.NewTree[string, string]()
//	tree.Initialize(keys)               // leaves for the first vertex's edges
//
//	red, err := tree.Reduction(incoming) // make incoming edges consecutive
//	if err != nil { ... }                // pq.ErrNonPlanar: not planar
//	res := tree.ReplaceRoot(red, outgoing, vertex)
//
// Every successful Reduction must be consumed by exactly one ReplaceRoot
// before the next Reduction; the reduction context carries the labelling
// state between the two calls.
//
// # Direction indicators
//
// When a partial pertinent subtree collapses, the engine threads a direction
// indicator into the surviving Q-node: an invisible pseudo-child remembering
// the orientation in which the collapsed sequence was scanned. Later
// ReplaceRoot calls that consume an indicator report its vertex in the
// Opposed or NonOpposed list of [ReplaceResult], telling the caller whether
// the edge sequence recorded for that vertex must be reversed to match the
// final embedding.
//
// Trees are not safe for concurrent use.
package pq
