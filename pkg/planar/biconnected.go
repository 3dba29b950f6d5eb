package planar

import (
	"slices"

	"github.com/planark/planark/pkg/graph"
)

// comp is one biconnected component mapped into a local index space. Local
// vertex indices range over 0..n-1 and local edge indices over 0..m-1; edgeIdx
// maps a local edge back to its position in the owning graph's edge list.
type comp struct {
	verts   []string
	vidx    map[string]int
	edgeIdx []int
	ends    [][2]int // local endpoints per local edge
	adj     [][]halfEdge
}

// halfEdge is one direction of a local edge: the edge index and the endpoint
// reached by crossing it.
type halfEdge struct {
	e int
	w int
}

func (c *comp) addVertex(id string) int {
	if i, ok := c.vidx[id]; ok {
		return i
	}
	i := len(c.verts)
	c.verts = append(c.verts, id)
	c.vidx[id] = i
	return i
}

func buildComp(edges []graph.Edge, members []int) *comp {
	c := &comp{vidx: make(map[string]int)}
	for _, gi := range members {
		from := c.addVertex(edges[gi].From)
		to := c.addVertex(edges[gi].To)
		c.edgeIdx = append(c.edgeIdx, gi)
		c.ends = append(c.ends, [2]int{from, to})
	}
	c.adj = make([][]halfEdge, len(c.verts))
	for e, ends := range c.ends {
		c.adj[ends[0]] = append(c.adj[ends[0]], halfEdge{e: e, w: ends[1]})
		c.adj[ends[1]] = append(c.adj[ends[1]], halfEdge{e: e, w: ends[0]})
	}
	return c
}

func (c *comp) other(e, v int) int {
	if c.ends[e][0] == v {
		return c.ends[e][1]
	}
	return c.ends[e][0]
}

// biconnectedComponents partitions the edges of g into biconnected
// components, returned as lists of indices into g.Edges(). Isolated vertices
// contribute no component; a bridge forms a component of its own.
func biconnectedComponents(g *graph.Graph) [][]int {
	ids := g.VertexIDs()
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	edges := g.Edges()
	adj := make([][]halfEdge, len(ids))
	for e, ge := range edges {
		u, v := idx[ge.From], idx[ge.To]
		adj[u] = append(adj[u], halfEdge{e: e, w: v})
		adj[v] = append(adj[v], halfEdge{e: e, w: u})
	}

	dfn := make([]int, len(ids))
	low := make([]int, len(ids))
	for i := range dfn {
		dfn[i] = -1
	}
	counter := 0
	var stack []int
	var comps [][]int

	var dfs func(v, parentEdge int)
	dfs = func(v, parentEdge int) {
		dfn[v] = counter
		low[v] = counter
		counter++
		for _, he := range adj[v] {
			switch {
			case dfn[he.w] == -1:
				base := len(stack)
				stack = append(stack, he.e)
				dfs(he.w, he.e)
				low[v] = min(low[v], low[he.w])
				if low[he.w] >= dfn[v] {
					comps = append(comps, slices.Clone(stack[base:]))
					stack = stack[:base]
				}
			case dfn[he.w] < dfn[v] && he.e != parentEdge:
				stack = append(stack, he.e)
				low[v] = min(low[v], dfn[he.w])
			}
		}
	}
	for v := range ids {
		if dfn[v] == -1 {
			dfs(v, -1)
		}
	}
	return comps
}
