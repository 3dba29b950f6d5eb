// Package pkg provides the core libraries for Planark planarity testing.
//
// # Overview
//
// Planark decides whether graphs can be drawn in the plane without edge
// crossings and computes combinatorial embeddings for those that can. The
// pkg directory is organized into these areas:
//
//  1. [pq] - The PQ-tree reduction engine
//  2. [planar] - Planarity testing and embedding on top of pq
//  3. [graph], [hypergraph] - Graph containers and serialization
//  4. [cache], [store] - Result caching and embedding persistence
//  5. [pipeline] - Orchestration (test → embed → render)
//
// # Architecture
//
// The typical data flow through Planark:
//
//	Graph JSON
//	     ↓
//	[planar] package (biconnected components, st-numbering)
//	     ↓
//	[pq] package (incremental leaf reductions)
//	     ↓
//	[pipeline] package (caching, artifacts)
//	     ↓
//	JSON/DOT/SVG output
//
// # Quick Start
//
//	g := graph.New(nil)
//	g.AddVertex("a")
//	g.AddVertex("b")
//	g.AddEdge("a", "b")
//	fmt.Println(planar.IsPlanar(g))
package pkg
