package planar_test

import (
	"fmt"

	"github.com/planark/planark/pkg/graph"
	"github.com/planark/planark/pkg/planar"
)

func ExampleIsPlanar() {
	g := graph.New(nil)
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddVertex(id)
	}
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("a", "d")
	g.AddEdge("b", "c")
	g.AddEdge("b", "d")
	g.AddEdge("c", "d")

	fmt.Println(planar.IsPlanar(g))
	// Output: true
}

func ExampleRotations() {
	g := graph.New(nil)
	for _, id := range []string{"a", "b", "c"} {
		g.AddVertex(id)
	}
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("b", "c")

	emb, err := planar.Rotations(g)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("around a:", emb.Rotations["a"])
	// Output: around a: [b c]
}
