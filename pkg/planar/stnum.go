package planar

// stNumber computes an st-numbering of a biconnected component: a bijection
// pos from local vertices to 1..n such that pos[s] = 1, pos[t] = n, and every
// other vertex has both a lower-numbered and a higher-numbered neighbor. s and
// t must be adjacent.
//
// This is the Even-Tarjan algorithm: a depth-first search rooted at s with
// the edge (s,t) traversed first, followed by a pathfinding phase that peels
// ear paths off the DFS tree and numbers vertices as they run out of new
// edges.
func stNumber(c *comp, s, t, st int) []int {
	n := len(c.verts)
	pos := make([]int, n)
	if n == 2 {
		pos[s], pos[t] = 1, 2
		return pos
	}

	dfn := make([]int, n)
	low := make([]int, n)
	parent := make([]int, n)
	parentEdge := make([]int, n)
	isTree := make([]bool, len(c.ends))
	for v := range dfn {
		dfn[v] = -1
		parent[v] = -1
		parentEdge[v] = -1
	}

	counter := 0
	var dfs func(v int)
	dfs = func(v int) {
		dfn[v] = counter
		low[v] = counter
		counter++
		visit := func(he halfEdge) {
			switch {
			case dfn[he.w] == -1:
				isTree[he.e] = true
				parent[he.w] = v
				parentEdge[he.w] = he.e
				dfs(he.w)
				low[v] = min(low[v], low[he.w])
			case he.e != parentEdge[v]:
				low[v] = min(low[v], dfn[he.w])
			}
		}
		if v == s {
			// The st edge must become the first tree edge so that t is the
			// root's first child.
			visit(halfEdge{e: st, w: t})
		}
		for _, he := range c.adj[v] {
			if v == s && he.e == st {
				continue
			}
			visit(he)
		}
	}
	dfs(s)

	oldVertex := make([]bool, n)
	oldEdge := make([]bool, len(c.ends))
	oldVertex[s] = true
	oldVertex[t] = true
	oldEdge[st] = true

	// pathfinder returns a path of new edges from v to an old vertex, marking
	// everything on it old, or nil when v has no new edges left.
	pathfinder := func(v int) []int {
		for _, he := range c.adj[v] {
			if oldEdge[he.e] {
				continue
			}
			switch {
			case !isTree[he.e] && dfn[he.w] < dfn[v]:
				// Back edge to an ancestor, which is already old.
				oldEdge[he.e] = true
				return []int{v, he.w}
			case isTree[he.e] && parent[he.w] == v:
				// Tree edge down: follow the low path until an old vertex.
				oldEdge[he.e] = true
				path := []int{v, he.w}
				w := he.w
				for !oldVertex[w] {
					oldVertex[w] = true
					x := lowStep(c, w, dfn, low, parent, isTree, oldEdge)
					path = append(path, x)
					w = x
				}
				return path
			case !isTree[he.e] && dfn[he.w] > dfn[v]:
				// Back edge from a descendant: climb tree edges until an old
				// vertex.
				oldEdge[he.e] = true
				path := []int{v, he.w}
				w := he.w
				for !oldVertex[w] {
					oldVertex[w] = true
					oldEdge[parentEdge[w]] = true
					path = append(path, parent[w])
					w = parent[w]
				}
				return path
			}
		}
		return nil
	}

	stack := []int{t, s}
	count := 0
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		path := pathfinder(v)
		if path == nil {
			count++
			pos[v] = count
			continue
		}
		// Re-stack the path below v, excluding the old endpoint, so that the
		// interior vertices get numbered between v and it.
		for i := len(path) - 2; i >= 1; i-- {
			stack = append(stack, path[i])
		}
		stack = append(stack, v)
	}
	return pos
}

// lowStep takes one step along the low path from w: the edge that realizes
// low[w], either a back edge directly to that ancestor or the tree edge into
// the child subtree containing it. Marks the chosen edge old.
func lowStep(c *comp, w int, dfn, low, parent []int, isTree, oldEdge []bool) int {
	for _, he := range c.adj[w] {
		if oldEdge[he.e] {
			continue
		}
		if !isTree[he.e] && dfn[he.w] == low[w] && dfn[he.w] < dfn[w] {
			oldEdge[he.e] = true
			return he.w
		}
	}
	for _, he := range c.adj[w] {
		if oldEdge[he.e] {
			continue
		}
		if isTree[he.e] && parent[he.w] == w && low[he.w] == low[w] {
			oldEdge[he.e] = true
			return he.w
		}
	}
	panic("planar: low path broken, graph is not biconnected")
}
