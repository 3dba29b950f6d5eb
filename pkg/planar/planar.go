package planar

import (
	"errors"
	"slices"

	"github.com/planark/planark/pkg/graph"
	"github.com/planark/planark/pkg/pq"
)

// ErrNotPlanar indicates the input graph admits no planar embedding.
var ErrNotPlanar = errors.New("graph is not planar")

// IsPlanar reports whether g admits a planar embedding. The empty graph and
// every graph with fewer than five vertices are planar.
func IsPlanar(g *graph.Graph) bool {
	_, ok := embedAll(g)
	return ok
}

// Rotations computes a combinatorial embedding of g: the cyclic order of
// neighbors around each vertex such that the graph can be drawn in the plane
// without edge crossings. Returns ErrNotPlanar when no such embedding exists.
//
// Disconnected graphs and cut vertices are handled by embedding each
// biconnected component independently and concatenating the rotations at
// shared vertices.
func Rotations(g *graph.Graph) (*graph.Embedding, error) {
	rot, ok := embedAll(g)
	if !ok {
		return nil, ErrNotPlanar
	}
	return &graph.Embedding{Rotations: rot}, nil
}

func embedAll(g *graph.Graph) (map[string][]string, bool) {
	rot := make(map[string][]string)
	if g == nil {
		return rot, true
	}
	for _, id := range g.VertexIDs() {
		rot[id] = []string{}
	}
	n, m := g.NumVertices(), g.NumEdges()
	if n >= 3 && m > 3*n-6 {
		// A simple planar graph cannot exceed the Euler bound.
		return nil, false
	}
	edges := g.Edges()
	for _, members := range biconnectedComponents(g) {
		c := buildComp(edges, members)
		local, ok := embedComponent(c)
		if !ok {
			return nil, false
		}
		for v, cycle := range local {
			for _, e := range cycle {
				rot[c.verts[v]] = append(rot[c.verts[v]], c.verts[c.other(e, v)])
			}
		}
	}
	return rot, true
}

// embedComponent runs the incremental reduction over one biconnected
// component in st-order and assembles a rotation per local vertex, as local
// edge indices in cyclic order.
//
// Processing vertex v reduces the leaves of its incoming edges to a
// consecutive run and replaces them with leaves for its outgoing edges. The
// frontier reported by the replacement is the upward embedding of v; opposed
// direction indicators flag earlier frontiers that the reduction flipped.
func embedComponent(c *comp) ([][]int, bool) {
	n := len(c.verts)
	s, t := c.ends[0][0], c.ends[0][1]
	pos := stNumber(c, s, t, 0)
	byPos := make([]int, n+1)
	for v, p := range pos {
		byPos[p] = v
	}

	tree := pq.NewTree[int, int]()
	keys := make([]*pq.LeafKey[int, int], len(c.ends))
	outKeys := func(v int) []*pq.LeafKey[int, int] {
		var out []*pq.LeafKey[int, int]
		for _, he := range c.adj[v] {
			if pos[he.w] > pos[v] {
				keys[he.e] = pq.NewLeafKey[int, int](he.e)
				out = append(out, keys[he.e])
			}
		}
		return out
	}
	inKeys := func(v int) []*pq.LeafKey[int, int] {
		var in []*pq.LeafKey[int, int]
		for _, he := range c.adj[v] {
			if pos[he.w] < pos[v] {
				in = append(in, keys[he.e])
			}
		}
		return in
	}

	up := make([][]int, n)
	if err := tree.Initialize(outKeys(s)); err != nil {
		return nil, false
	}
	for p := 2; p <= n; p++ {
		v := byPos[p]
		red, err := tree.Reduction(inKeys(v))
		if err != nil {
			return nil, false
		}
		var repl []*pq.LeafKey[int, int]
		if p < n {
			repl = outKeys(v)
		}
		res := tree.ReplaceRoot(red, repl, v)
		up[v] = res.Frontier
		for _, w := range res.Opposed {
			slices.Reverse(up[w])
		}
	}
	return entireEmbed(c, up, t), true
}

// entireEmbed extends the upward embedding to a full one. A depth-first
// search from t scans each upward list in reverse and records, at the lower
// endpoint of every edge, the order in which its outgoing edges are
// encountered. The rotation at a vertex is its outgoing edges in that order
// followed by its upward list.
func entireEmbed(c *comp, up [][]int, t int) [][]int {
	n := len(c.verts)
	out := make([][]int, n)
	visited := make([]bool, n)
	var dfs func(v int)
	dfs = func(v int) {
		visited[v] = true
		for i := len(up[v]) - 1; i >= 0; i-- {
			e := up[v][i]
			u := c.other(e, v)
			out[u] = append(out[u], e)
			if !visited[u] {
				dfs(u)
			}
		}
	}
	dfs(t)

	rot := make([][]int, n)
	for v := range rot {
		rot[v] = append(out[v], up[v]...)
	}
	return rot
}
