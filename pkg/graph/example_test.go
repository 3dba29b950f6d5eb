package graph_test

import (
	"fmt"
	"os"

	"github.com/planark/planark/pkg/graph"
)

func ExampleGraph() {
	g := graph.New(nil)
	g.AddVertex("a")
	g.AddVertex("b")
	g.AddVertex("c")
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	fmt.Println("vertices:", g.VertexIDs())
	fmt.Println("edges:", g.NumEdges())
	fmt.Println("a-b:", g.HasEdge("a", "b"))
	fmt.Println("a-c:", g.HasEdge("a", "c"))
	// Output:
	// vertices: [a b c]
	// edges: 2
	// a-b: true
	// a-c: false
}

func ExampleWriteGraph() {
	g := graph.New(nil)
	g.AddVertex("a")
	g.AddVertex("b")
	g.AddEdge("a", "b")

	graph.WriteGraph(g, os.Stdout)
	// Output:
	// {
	//   "vertices": [
	//     {
	//       "id": "a"
	//     },
	//     {
	//       "id": "b"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "a",
	//       "to": "b"
	//     }
	//   ]
	// }
}
