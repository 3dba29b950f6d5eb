package graph

import (
	"fmt"
	"slices"
)

// =============================================================================
// Doc - Graph Serialization
// =============================================================================

// Doc is the canonical serialization format for graphs. Used for API
// responses, storage, caching, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// import → transform → export → re-import produces identical results.
type Doc struct {
	Vertices []VertexDoc `json:"vertices" bson:"vertices"`
	Edges    []EdgeDoc   `json:"edges" bson:"edges"`
	Meta     Metadata    `json:"meta,omitempty" bson:"meta,omitempty"`
}

// VertexDoc is the serialized form of a vertex.
type VertexDoc struct {
	ID   string   `json:"id" bson:"id"`
	Meta Metadata `json:"meta,omitempty" bson:"meta,omitempty"`
}

// EdgeDoc is the serialized form of an undirected edge.
type EdgeDoc struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// =============================================================================
// Embedding - Planarity Result Serialization
// =============================================================================

// Embedding is the serialization format for a combinatorial embedding: the
// cyclic order of incident edges around each vertex of a planar graph. It is
// the output of the planarity pipeline and the value cached and stored by the
// server.
type Embedding struct {
	// Rotations maps each vertex ID to the IDs of its neighbors in cyclic
	// order.
	Rotations map[string][]string `json:"rotations" bson:"rotations"`
}

// =============================================================================
// Graph ↔ Doc Conversion
// =============================================================================

// FromGraph converts a graph to its serialization format. Vertices are sorted
// by ID for deterministic output; edges keep insertion order.
func FromGraph(g *Graph) Doc {
	vertices := g.Vertices()
	out := Doc{
		Vertices: make([]VertexDoc, len(vertices)),
		Edges:    make([]EdgeDoc, 0, g.NumEdges()),
	}
	for i, v := range vertices {
		out.Vertices[i] = VertexDoc{ID: v.ID}
		if len(v.Meta) > 0 {
			out.Vertices[i].Meta = v.Meta
		}
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, EdgeDoc{From: e.From, To: e.To})
	}
	if len(g.Meta()) > 0 {
		out.Meta = g.Meta()
	}
	return out
}

// ToGraph builds a graph from its serialization format, validating vertex and
// edge constraints along the way. Errors carry the offending ID and wrap the
// package sentinel errors.
func ToGraph(d Doc) (*Graph, error) {
	g := New(d.Meta)
	for _, vd := range d.Vertices {
		v, err := g.AddVertex(vd.ID)
		if err != nil {
			return nil, fmt.Errorf("vertex %q: %w", vd.ID, err)
		}
		if len(vd.Meta) > 0 {
			v.Meta = vd.Meta
		}
	}
	for _, ed := range d.Edges {
		if err := g.AddEdge(ed.From, ed.To); err != nil {
			return nil, fmt.Errorf("edge %s-%s: %w", ed.From, ed.To, err)
		}
	}
	return g, nil
}

// SortedVertexIDs returns the vertex IDs of the document in sorted order
// without building a graph. Useful for cheap validation and display.
func (d Doc) SortedVertexIDs() []string {
	ids := make([]string, len(d.Vertices))
	for i, v := range d.Vertices {
		ids[i] = v.ID
	}
	slices.Sort(ids)
	return ids
}
