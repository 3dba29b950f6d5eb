package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/planark/planark/pkg/graph"
)

// resultDoc is the JSON artifact shape.
type resultDoc struct {
	GraphHash string           `json:"graph_hash"`
	Planar    bool             `json:"planar"`
	Graph     graph.Doc        `json:"graph"`
	Embedding *graph.Embedding `json:"embedding,omitempty"`
}

// Render produces one output artifact for the given format.
func Render(g *graph.Graph, result *Result, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return RenderJSON(g, result)
	case FormatDOT:
		return RenderDOT(g, result), nil
	case FormatSVG:
		return RenderSVG(context.Background(), g, result)
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
}

// RenderJSON serializes the graph, the verdict, and the embedding (when
// present) as an indented JSON document.
func RenderJSON(g *graph.Graph, result *Result) ([]byte, error) {
	doc := resultDoc{
		GraphHash: result.GraphHash,
		Planar:    result.Planar,
		Graph:     graph.FromGraph(g),
		Embedding: result.Embedding,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderDOT produces a Graphviz DOT representation of the undirected graph.
// When an embedding is present, each vertex's adjacency order is recorded in
// a comment so the rotation system survives the round trip through DOT.
func RenderDOT(g *graph.Graph, result *Result) []byte {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=circle];\n\n")

	for _, v := range g.Vertices() {
		if result.Embedding != nil {
			fmt.Fprintf(&buf, "  %q; // rotation: %v\n", v.ID, result.Embedding.Rotations[v.ID])
		} else {
			fmt.Fprintf(&buf, "  %q;\n", v.ID)
		}
	}
	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

// RenderSVG renders the graph to SVG via Graphviz.
func RenderSVG(ctx context.Context, g *graph.Graph, result *Result) ([]byte, error) {
	dot := RenderDOT(g, result)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
