package hypergraph

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func buildHypergraph(t *testing.T, ids []string, edges [][]string) *Hypergraph {
	t.Helper()
	h := New()
	for _, id := range ids {
		if _, err := h.AddNode(id); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if _, err := h.AddEdge(e...); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return h
}

func TestAddNode(t *testing.T) {
	h := New()
	if _, err := h.AddNode(""); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty ID: got %v, want ErrInvalidNodeID", err)
	}
	if _, err := h.AddNode("a"); err != nil {
		t.Fatalf("AddNode(a): %v", err)
	}
	if _, err := h.AddNode("a"); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate: got %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddEdge(t *testing.T) {
	h := buildHypergraph(t, []string{"a", "b", "c"}, nil)

	if _, err := h.AddEdge("a"); !errors.Is(err, ErrCardinality) {
		t.Errorf("single member: got %v, want ErrCardinality", err)
	}
	if _, err := h.AddEdge("a", "a"); !errors.Is(err, ErrCardinality) {
		t.Errorf("repeated member: got %v, want ErrCardinality", err)
	}
	if _, err := h.AddEdge("a", "x"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("unknown member: got %v, want ErrUnknownNode", err)
	}

	id, err := h.AddEdge("a", "b", "c")
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if h.Cardinality(id) != 3 {
		t.Errorf("Cardinality = %d, want 3", h.Cardinality(id))
	}
	if h.Degree("a") != 1 || h.Degree("b") != 1 {
		t.Errorf("degrees = %d/%d, want 1/1", h.Degree("a"), h.Degree("b"))
	}
	if err := h.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestDeleteNode_Cascade(t *testing.T) {
	h := buildHypergraph(t, []string{"a", "b", "c", "d"},
		[][]string{{"a", "b"}, {"a", "c", "d"}, {"c", "d"}})

	if err := h.DeleteNode("a"); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}
	// The pair {a,b} must be gone, {a,c,d} shrinks to {c,d}, {c,d} survives.
	if h.NumEdges() != 2 {
		t.Fatalf("NumEdges = %d, want 2\n%s", h.NumEdges(), h)
	}
	if h.Degree("b") != 0 {
		t.Errorf("Degree(b) = %d, want 0", h.Degree("b"))
	}
	if h.Degree("c") != 2 {
		t.Errorf("Degree(c) = %d, want 2", h.Degree("c"))
	}
	if err := h.Validate(); err != nil {
		t.Errorf("Validate after cascade: %v", err)
	}
}

func TestDeleteEdge(t *testing.T) {
	h := buildHypergraph(t, []string{"a", "b"}, [][]string{{"a", "b"}})
	id := h.EdgeIDs()[0]

	if err := h.DeleteEdge(id); err != nil {
		t.Fatalf("DeleteEdge: %v", err)
	}
	if err := h.DeleteEdge(id); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("second delete: got %v, want ErrUnknownEdge", err)
	}
	if h.Degree("a") != 0 || h.NumEdges() != 0 {
		t.Errorf("stale incidence after delete: %s", h)
	}
}

func TestEdgesOf(t *testing.T) {
	h := buildHypergraph(t, []string{"a", "b", "c"},
		[][]string{{"a", "b"}, {"a", "c"}})

	got, err := h.EdgesOf("a")
	if err != nil {
		t.Fatalf("EdgesOf: %v", err)
	}
	if !slices.Equal(got, []int{0, 1}) {
		t.Errorf("EdgesOf(a) = %v, want [0 1]", got)
	}
	if _, err := h.EdgesOf("x"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("EdgesOf(x): got %v, want ErrUnknownNode", err)
	}
}

func TestClear(t *testing.T) {
	h := buildHypergraph(t, []string{"a", "b"}, [][]string{{"a", "b"}})
	h.Clear()
	if h.NumNodes() != 0 || h.NumEdges() != 0 {
		t.Errorf("Clear left %d nodes, %d edges", h.NumNodes(), h.NumEdges())
	}
	h = buildHypergraph(t, []string{"x", "y"}, [][]string{{"x", "y"}})
	if got := h.EdgeIDs(); !slices.Equal(got, []int{0}) {
		t.Errorf("edge numbering after Clear = %v, want [0]", got)
	}
}

func TestReadBench(t *testing.T) {
	const circuit = `# a tiny circuit
INPUT(in1)
INPUT(in2)
OUTPUT(out)

g1 = AND(in1, in2)
out = NOT(g1)
`
	h, err := ReadBench(strings.NewReader(circuit))
	if err != nil {
		t.Fatalf("ReadBench: %v", err)
	}
	if h.NumNodes() != 4 {
		t.Errorf("NumNodes = %d, want 4 (%v)", h.NumNodes(), h.NodeIDs())
	}
	if h.NumEdges() != 2 {
		t.Errorf("NumEdges = %d, want 2\n%s", h.NumEdges(), h)
	}
	if got := h.Node("in1").Type; got != Input {
		t.Errorf("in1 type = %v, want input", got)
	}
	if got := h.Node("g1").Type; got != And {
		t.Errorf("g1 type = %v, want and", got)
	}
	if got := h.Node("out").Type; got != Not {
		t.Errorf("out type = %v, want not (gate overrides OUTPUT)", got)
	}
	if err := h.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestReadBench_Malformed(t *testing.T) {
	if _, err := ReadBench(strings.NewReader("garbage line\n")); err == nil {
		t.Error("malformed line should fail")
	}
	if _, err := ReadBench(strings.NewReader("x = AND\n")); err == nil {
		t.Error("gate without arguments should fail")
	}
}
