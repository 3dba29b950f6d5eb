package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrInvalidVertexID is returned by [Graph.AddVertex] when the vertex ID
	// is empty. All vertices must have non-empty identifiers.
	ErrInvalidVertexID = errors.New("vertex ID must not be empty")

	// ErrDuplicateVertexID is returned by [Graph.AddVertex] when a vertex
	// with the same ID already exists. Vertex IDs must be unique.
	ErrDuplicateVertexID = errors.New("duplicate vertex ID")

	// ErrUnknownVertex is returned by [Graph.AddEdge] and [Graph.Neighbors]
	// when an endpoint does not exist in the graph.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints name the
	// same vertex. The container holds simple graphs only.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the edge already
	// exists. Parallel edges are not allowed.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a vertex that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// Metadata stores arbitrary key-value pairs attached to vertices or the graph.
// Metadata maps are never nil - they are automatically initialized to empty
// maps when needed.
type Metadata map[string]any

// Vertex is a graph vertex identified by a unique non-empty string ID.
type Vertex struct {
	ID   string
	Meta Metadata // Arbitrary key-value metadata (never nil after AddVertex)
}

// Edge is an undirected edge between two vertices. From and To reflect the
// order the endpoints were given to AddEdge; the edge itself carries no
// direction.
type Edge struct {
	From string
	To   string
}

// Graph is an undirected simple graph over string vertex IDs: no self-loops,
// no parallel edges. It is the input container for the planarity algorithms
// and the CLI/server surface.
//
// The zero value is not usable - use New to create a valid instance. Graph is
// not safe for concurrent use without external synchronization.
type Graph struct {
	vertices map[string]*Vertex
	edges    []Edge
	adj      map[string][]string // vertex ID -> neighbor IDs, insertion order
	meta     Metadata
}

// New creates an empty graph with optional graph-level metadata. The metadata
// parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		vertices: make(map[string]*Vertex),
		adj:      make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map. Mutations are visible to the
// graph.
func (g *Graph) Meta() Metadata { return g.meta }

// AddVertex adds a vertex with the given ID and returns it. Returns
// ErrInvalidVertexID for an empty ID and ErrDuplicateVertexID if the ID is
// already present.
func (g *Graph) AddVertex(id string) (*Vertex, error) {
	if id == "" {
		return nil, ErrInvalidVertexID
	}
	if _, ok := g.vertices[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateVertexID, id)
	}
	v := &Vertex{ID: id, Meta: Metadata{}}
	g.vertices[id] = v
	return v, nil
}

// AddEdge adds an undirected edge between from and to. Both endpoints must
// already exist; self-loops and parallel edges are rejected.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.vertices[from]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, from)
	}
	if _, ok := g.vertices[to]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, to)
	}
	if from == to {
		return fmt.Errorf("%w: %s", ErrSelfLoop, from)
	}
	if g.HasEdge(from, to) {
		return fmt.Errorf("%w: %s-%s", ErrDuplicateEdge, from, to)
	}
	g.edges = append(g.edges, Edge{From: from, To: to})
	g.adj[from] = append(g.adj[from], to)
	g.adj[to] = append(g.adj[to], from)
	return nil
}

// HasVertex reports whether a vertex with the given ID exists.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.vertices[id]
	return ok
}

// HasEdge reports whether an edge between from and to exists, in either
// endpoint order.
func (g *Graph) HasEdge(from, to string) bool {
	return slices.Contains(g.adj[from], to)
}

// Vertex returns the vertex with the given ID, or nil if absent.
func (g *Graph) Vertex(id string) *Vertex { return g.vertices[id] }

// Vertices returns all vertices sorted by ID.
func (g *Graph) Vertices() []*Vertex {
	ids := g.VertexIDs()
	out := make([]*Vertex, len(ids))
	for i, id := range ids {
		out[i] = g.vertices[id]
	}
	return out
}

// VertexIDs returns all vertex IDs in sorted order.
func (g *Graph) VertexIDs() []string {
	return slices.Sorted(maps.Keys(g.vertices))
}

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// Neighbors returns the IDs adjacent to id in insertion order. Returns
// ErrUnknownVertex if the vertex does not exist.
func (g *Graph) Neighbors(id string) ([]string, error) {
	if _, ok := g.vertices[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVertex, id)
	}
	return slices.Clone(g.adj[id]), nil
}

// Degree returns the number of edges incident to id, or 0 for an unknown
// vertex.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int { return len(g.vertices) }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Validate checks structural integrity: every edge endpoint must reference an
// existing vertex. Returns ErrInvalidEdgeEndpoint on the first violation.
// Graphs built exclusively through AddVertex/AddEdge are always valid; this
// guards graphs decoded from external data.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.vertices[e.From]; !ok {
			return fmt.Errorf("%w: %s", ErrInvalidEdgeEndpoint, e.From)
		}
		if _, ok := g.vertices[e.To]; !ok {
			return fmt.Errorf("%w: %s", ErrInvalidEdgeEndpoint, e.To)
		}
	}
	return nil
}
