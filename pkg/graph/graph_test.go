package graph

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func buildGraph(t *testing.T, ids []string, edges [][2]string) *Graph {
	t.Helper()
	g := New(nil)
	for _, id := range ids {
		if _, err := g.AddVertex(id); err != nil {
			t.Fatalf("AddVertex(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%s, %s): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAddVertex(t *testing.T) {
	g := New(nil)

	if _, err := g.AddVertex(""); !errors.Is(err, ErrInvalidVertexID) {
		t.Errorf("empty ID: got %v, want ErrInvalidVertexID", err)
	}
	if _, err := g.AddVertex("a"); err != nil {
		t.Fatalf("AddVertex(a): %v", err)
	}
	if _, err := g.AddVertex("a"); !errors.Is(err, ErrDuplicateVertexID) {
		t.Errorf("duplicate ID: got %v, want ErrDuplicateVertexID", err)
	}
	if !g.HasVertex("a") || g.NumVertices() != 1 {
		t.Errorf("vertex set wrong after adds: %v", g.VertexIDs())
	}
}

func TestAddEdge(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}})

	if err := g.AddEdge("a", "x"); !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("unknown endpoint: got %v, want ErrUnknownVertex", err)
	}
	if err := g.AddEdge("a", "a"); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("self-loop: got %v, want ErrSelfLoop", err)
	}
	if err := g.AddEdge("b", "a"); !errors.Is(err, ErrDuplicateEdge) {
		t.Errorf("reversed duplicate: got %v, want ErrDuplicateEdge", err)
	}
	if !g.HasEdge("a", "b") || !g.HasEdge("b", "a") {
		t.Error("undirected edge not visible from both endpoints")
	}
	if g.NumEdges() != 1 {
		t.Errorf("NumEdges = %d, want 1", g.NumEdges())
	}
}

func TestNeighbors(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"a", "c"}})

	got, err := g.Neighbors("a")
	if err != nil {
		t.Fatalf("Neighbors(a): %v", err)
	}
	if !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Neighbors(a) = %v, want [b c]", got)
	}
	if g.Degree("a") != 2 || g.Degree("b") != 1 {
		t.Errorf("degrees = %d/%d, want 2/1", g.Degree("a"), g.Degree("b"))
	}
	if _, err := g.Neighbors("x"); !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("Neighbors(x): got %v, want ErrUnknownVertex", err)
	}
}

func TestVertices_Sorted(t *testing.T) {
	g := buildGraph(t, []string{"c", "a", "b"}, nil)
	if got := g.VertexIDs(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("VertexIDs = %v, want [a b c]", got)
	}
}

func TestDocRoundTrip(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	g.Vertex("a").Meta["weight"] = "heavy"

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	back, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}

	if !slices.Equal(back.VertexIDs(), g.VertexIDs()) {
		t.Errorf("vertices after round trip = %v", back.VertexIDs())
	}
	if !back.HasEdge("a", "b") || !back.HasEdge("b", "c") {
		t.Error("edges lost in round trip")
	}
	if back.Vertex("a").Meta["weight"] != "heavy" {
		t.Errorf("metadata lost in round trip: %v", back.Vertex("a").Meta)
	}
}

func TestToGraph_Invalid(t *testing.T) {
	_, err := ToGraph(Doc{
		Vertices: []VertexDoc{{ID: "a"}},
		Edges:    []EdgeDoc{{From: "a", To: "missing"}},
	})
	if !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("dangling edge: got %v, want ErrUnknownVertex", err)
	}

	_, err = ToGraph(Doc{Vertices: []VertexDoc{{ID: "a"}, {ID: "a"}}})
	if !errors.Is(err, ErrDuplicateVertexID) {
		t.Errorf("duplicate vertex: got %v, want ErrDuplicateVertexID", err)
	}
}

func TestReadGraph_MalformedJSON(t *testing.T) {
	_, err := ReadGraph(strings.NewReader("{nope"))
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("malformed JSON: got %v, want decode error", err)
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := buildGraph(t, []string{"x", "y"}, [][2]string{{"x", "y"}})

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	back, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if !back.HasEdge("x", "y") {
		t.Error("edge lost in file round trip")
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
}

func TestWriteGraph_Deterministic(t *testing.T) {
	g := buildGraph(t, []string{"b", "a"}, [][2]string{{"b", "a"}})

	var first, second bytes.Buffer
	if err := WriteGraph(g, &first); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	if err := WriteGraph(g, &second); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	if first.String() != second.String() {
		t.Error("repeated writes differ")
	}
	if !strings.Contains(first.String(), `"id": "a"`) {
		t.Errorf("unexpected JSON shape:\n%s", first.String())
	}
}
