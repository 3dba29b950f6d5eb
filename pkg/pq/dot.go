package pq

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the tree structure.
//
// The DOT format can be rendered with Graphviz tools (dot, neato, etc.) or
// programmatically with RenderSVG. The output is a complete DOT digraph with
// styling suitable for documentation and debugging.
//
// Node representation:
//   - P-nodes: labeled "P", ellipse shape
//   - Q-nodes: labeled "Q", box shape
//   - Leaves: labeled with their key's edge value, rounded box shape
//   - Direction indicators: labeled "!vertex", diamond shape
func (t *Tree[E, V]) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph PQTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	if t.root != nil {
		t.writeDOTNode(&buf, t.root, 0)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func (t *Tree[E, V]) writeDOTNode(buf *bytes.Buffer, n *node[E, V], id int) int {
	nodeID := fmt.Sprintf("n%d", id)
	next := id + 1

	switch n.kind {
	case KindLeaf:
		label := fmt.Sprintf("%v", n.key.Edge)
		fmt.Fprintf(buf, "  %s [label=%q, shape=box, style=\"filled,rounded\"];\n", nodeID, label)

	case KindIndicator:
		label := fmt.Sprintf("!%v", n.info.Vertex)
		fmt.Fprintf(buf, "  %s [label=%q, shape=diamond];\n", nodeID, label)

	case KindP:
		fmt.Fprintf(buf, "  %s [label=\"P\", shape=ellipse];\n", nodeID)
		next = t.writeDOTChildren(buf, nodeID, n.refChild, next)

	case KindQ:
		fmt.Fprintf(buf, "  %s [label=\"Q\", shape=box];\n", nodeID)
		next = t.writeDOTChildren(buf, nodeID, n.endmost[sideLeft], next)
	}

	return next
}

func (t *Tree[E, V]) writeDOTChildren(buf *bytes.Buffer, parentID string, first *node[E, V], next int) int {
	if first == nil {
		return next
	}
	fmt.Fprintf(buf, "  %s -> n%d;\n", parentID, next)
	next = t.writeDOTNode(buf, first, next)

	oldSib := first
	cur := first.nextSib(nil)
	for cur != nil && cur != first {
		fmt.Fprintf(buf, "  %s -> n%d;\n", parentID, next)
		hold := cur.nextSib(oldSib)
		next = t.writeDOTNode(buf, cur, next)
		oldSib = cur
		cur = hold
	}
	return next
}

// RenderSVG renders the tree structure as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz to
// render it to SVG format. The returned bytes are a complete SVG document
// suitable for embedding in HTML or saving to a file.
//
// RenderSVG requires the Graphviz library (github.com/goccy/go-graphviz) and
// its C dependencies to be installed. Errors are returned if Graphviz cannot
// initialize, the DOT is malformed, or rendering fails.
//
// All errors are wrapped with context using fmt.Errorf with %w, suitable for
// unwrapping with errors.Unwrap or errors.Is.
func (t *Tree[E, V]) RenderSVG() ([]byte, error) {
	dot := t.ToDOT()

	gv, err := graphviz.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(context.Background(), g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
