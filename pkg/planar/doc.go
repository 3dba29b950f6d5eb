// Package planar decides planarity and computes combinatorial embeddings of
// undirected graphs.
//
// The test is the incremental vertex-addition method: the graph is split
// into biconnected components, each component is st-numbered, and the
// vertices are processed in that order against a PQ-tree whose leaves stand
// for the edges still waiting to be embedded. A graph is planar exactly when
// every reduction succeeds.
//
// # Usage
//
//	if planar.IsPlanar(g) {
//		emb, _ := planar.Rotations(g)
//		// emb.Rotations orders the neighbors around each vertex.
//	}
//
// [Rotations] additionally assembles an embedding from the leaf orders
// observed during the run: the frontiers reported while processing each
// vertex form an upward embedding, which a final depth-first pass extends to
// the cyclic neighbor order around every vertex.
//
// Both functions run in time linear in the size of the graph up to the
// amortized cost of the PQ-tree operations.
package planar
