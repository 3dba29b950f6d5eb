// Package graph provides the undirected graph container and its wire formats.
//
// This package defines the canonical format for Planark's graph data, used
// for JSON files, API requests, caching, and storage.
//
// # Core Types
//
//   - [Graph]: in-memory undirected simple graph (the planarity input)
//   - [Doc], [VertexDoc], [EdgeDoc]: serialization types
//   - [Embedding]: serialized combinatorial embedding (the planarity output)
//
// # Graph Serialization
//
// Graphs use a simple vertex-edge JSON format:
//
//	{
//	  "vertices": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("input.json")   // File → Graph
//	graph.WriteGraphFile(g, "output.json")      // Graph → File
//	data, _ := graph.MarshalGraph(g)            // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
