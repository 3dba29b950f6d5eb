package hypergraph

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors for hypergraph operations. All validation failures wrap one
// of these; use errors.Is to check.
var (
	// ErrInvalidNodeID indicates an empty or otherwise unusable node ID.
	ErrInvalidNodeID = errors.New("invalid hypernode ID")

	// ErrDuplicateNodeID indicates an attempt to add a node that exists.
	ErrDuplicateNodeID = errors.New("duplicate hypernode ID")

	// ErrUnknownNode indicates a reference to a node not in the hypergraph.
	ErrUnknownNode = errors.New("unknown hypernode")

	// ErrUnknownEdge indicates a reference to a hyperedge not in the
	// hypergraph.
	ErrUnknownEdge = errors.New("unknown hyperedge")

	// ErrCardinality indicates a hyperedge with fewer than two distinct
	// members. Degenerate hyperedges carry no incidence information and are
	// never stored.
	ErrCardinality = errors.New("hyperedge needs at least two distinct members")
)

// GateType classifies a hypernode. Most hypergraphs use only Normal; the
// BENCH circuit reader assigns the gate types it parses.
type GateType int

const (
	Normal GateType = iota
	Input
	Output
	And
	Or
	Nor
	Not
	Xor
	Buf
	Nand
	Dff
)

var gateNames = map[GateType]string{
	Normal: "normal", Input: "input", Output: "output",
	And: "and", Or: "or", Nor: "nor", Not: "not",
	Xor: "xor", Buf: "buf", Nand: "nand", Dff: "dff",
}

func (t GateType) String() string {
	if s, ok := gateNames[t]; ok {
		return s
	}
	return fmt.Sprintf("GateType(%d)", int(t))
}

// Node is a hypernode: an ID plus an optional gate classification.
type Node struct {
	ID   string
	Type GateType
}

// Edge is a hyperedge: a numeric ID and the IDs of its member nodes in
// insertion order. Cardinality is always at least two.
type Edge struct {
	ID      int
	Members []string
}

// Hypergraph is a finite hypergraph: nodes connected by hyperedges of
// arbitrary cardinality. Deleting a node removes it from every incident
// hyperedge; a hyperedge whose cardinality would drop below two is removed
// with it.
//
// Not safe for concurrent mutation.
type Hypergraph struct {
	nodes     map[string]*Node
	edges     map[int]*Edge
	incidence map[string][]int
	nextEdge  int
}

// New creates an empty hypergraph.
func New() *Hypergraph {
	return &Hypergraph{
		nodes:     make(map[string]*Node),
		edges:     make(map[int]*Edge),
		incidence: make(map[string][]int),
	}
}

// AddNode adds a node with the given ID and type Normal.
func (h *Hypergraph) AddNode(id string) (*Node, error) {
	return h.AddTypedNode(id, Normal)
}

// AddTypedNode adds a node with an explicit gate type.
func (h *Hypergraph) AddTypedNode(id string, t GateType) (*Node, error) {
	if id == "" {
		return nil, ErrInvalidNodeID
	}
	if _, ok := h.nodes[id]; ok {
		return nil, fmt.Errorf("%q: %w", id, ErrDuplicateNodeID)
	}
	n := &Node{ID: id, Type: t}
	h.nodes[id] = n
	return n, nil
}

// AddEdge adds a hyperedge over the given member nodes and returns its ID.
// Members must be distinct, already present, and at least two.
func (h *Hypergraph) AddEdge(members ...string) (int, error) {
	if len(members) < 2 {
		return 0, ErrCardinality
	}
	seen := make(map[string]bool, len(members))
	for _, id := range members {
		if _, ok := h.nodes[id]; !ok {
			return 0, fmt.Errorf("%q: %w", id, ErrUnknownNode)
		}
		if seen[id] {
			return 0, fmt.Errorf("repeated member %q: %w", id, ErrCardinality)
		}
		seen[id] = true
	}
	id := h.nextEdge
	h.nextEdge++
	h.edges[id] = &Edge{ID: id, Members: slices.Clone(members)}
	for _, m := range members {
		h.incidence[m] = append(h.incidence[m], id)
	}
	return id, nil
}

// DeleteEdge removes a hyperedge and its incidences.
func (h *Hypergraph) DeleteEdge(id int) error {
	e, ok := h.edges[id]
	if !ok {
		return fmt.Errorf("%d: %w", id, ErrUnknownEdge)
	}
	for _, m := range e.Members {
		h.incidence[m] = slices.DeleteFunc(h.incidence[m], func(x int) bool { return x == id })
	}
	delete(h.edges, id)
	return nil
}

// DeleteNode removes a node. Every incident hyperedge loses the node as a
// member; hyperedges that would fall below cardinality two are deleted.
func (h *Hypergraph) DeleteNode(id string) error {
	if _, ok := h.nodes[id]; !ok {
		return fmt.Errorf("%q: %w", id, ErrUnknownNode)
	}
	for _, eid := range slices.Clone(h.incidence[id]) {
		e := h.edges[eid]
		e.Members = slices.DeleteFunc(e.Members, func(m string) bool { return m == id })
		if len(e.Members) < 2 {
			h.DeleteEdge(eid)
		}
	}
	delete(h.incidence, id)
	delete(h.nodes, id)
	return nil
}

// Node returns the node with the given ID, or nil.
func (h *Hypergraph) Node(id string) *Node { return h.nodes[id] }

// HasNode reports whether a node with the given ID exists.
func (h *Hypergraph) HasNode(id string) bool {
	_, ok := h.nodes[id]
	return ok
}

// Edge returns the hyperedge with the given ID, or nil.
func (h *Hypergraph) Edge(id int) *Edge { return h.edges[id] }

// NodeIDs returns all node IDs in sorted order.
func (h *Hypergraph) NodeIDs() []string {
	ids := make([]string, 0, len(h.nodes))
	for id := range h.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EdgeIDs returns all hyperedge IDs in sorted order.
func (h *Hypergraph) EdgeIDs() []int {
	ids := make([]int, 0, len(h.edges))
	for id := range h.edges {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EdgesOf returns the IDs of the hyperedges incident to a node.
func (h *Hypergraph) EdgesOf(id string) ([]int, error) {
	if _, ok := h.nodes[id]; !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownNode)
	}
	return slices.Clone(h.incidence[id]), nil
}

// Degree returns the number of hyperedges incident to a node, zero for
// unknown IDs.
func (h *Hypergraph) Degree(id string) int { return len(h.incidence[id]) }

// Cardinality returns the number of members of a hyperedge, zero for unknown
// IDs.
func (h *Hypergraph) Cardinality(id int) int {
	if e, ok := h.edges[id]; ok {
		return len(e.Members)
	}
	return 0
}

// NumNodes returns the number of nodes.
func (h *Hypergraph) NumNodes() int { return len(h.nodes) }

// NumEdges returns the number of hyperedges.
func (h *Hypergraph) NumEdges() int { return len(h.edges) }

// Clear removes all nodes and hyperedges and resets edge numbering.
func (h *Hypergraph) Clear() {
	h.nodes = make(map[string]*Node)
	h.edges = make(map[int]*Edge)
	h.incidence = make(map[string][]int)
	h.nextEdge = 0
}

// Validate checks the internal consistency of the hypergraph: every member
// of every hyperedge exists and carries the matching incidence entry, every
// incidence entry points back to a hyperedge containing the node, and no
// hyperedge has cardinality below two.
func (h *Hypergraph) Validate() error {
	for id, e := range h.edges {
		if len(e.Members) < 2 {
			return fmt.Errorf("hyperedge %d: %w", id, ErrCardinality)
		}
		for _, m := range e.Members {
			if _, ok := h.nodes[m]; !ok {
				return fmt.Errorf("hyperedge %d member %q: %w", id, m, ErrUnknownNode)
			}
			if !slices.Contains(h.incidence[m], id) {
				return fmt.Errorf("hyperedge %d member %q: missing incidence entry", id, m)
			}
		}
	}
	for nid, eids := range h.incidence {
		for _, eid := range eids {
			e, ok := h.edges[eid]
			if !ok {
				return fmt.Errorf("node %q: stale incidence on hyperedge %d", nid, eid)
			}
			if !slices.Contains(e.Members, nid) {
				return fmt.Errorf("node %q: hyperedge %d does not list it", nid, eid)
			}
		}
	}
	return nil
}

// String renders the hypergraph as one line per hyperedge in ID order,
// members in insertion order. Intended for debugging and tests.
func (h *Hypergraph) String() string {
	var b strings.Builder
	for _, id := range h.EdgeIDs() {
		fmt.Fprintf(&b, "%d: %s\n", id, strings.Join(h.edges[id].Members, " "))
	}
	return b.String()
}
