// Package rect finds, for a set of axis-parallel rectangles and a set of
// query points, the rectangles nearest to each point under the L1 distance.
//
// A point inside a rectangle has distance zero to it. [Finder.Find] returns,
// per point, every rectangle within a tolerance of the minimum distance, as
// long as that minimum does not exceed the allowed maximum; it sweeps the
// points by decreasing y-coordinate and only inspects rectangles close enough
// to matter. [Finder.FindSimple] is the quadratic reference that checks every
// pair.
package rect

import (
	"cmp"
	"slices"
)

// Rect is an axis-parallel rectangle given by its center and extent.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Top returns the maximum y-coordinate of the rectangle.
func (r Rect) Top() float64 { return r.Y + r.Height/2 }

// Bottom returns the minimum y-coordinate of the rectangle.
func (r Rect) Bottom() float64 { return r.Y - r.Height/2 }

// xDist returns the horizontal distance from x to the rectangle's
// x-projection, zero inside it.
func (r Rect) xDist(x float64) float64 {
	left, right := r.X-r.Width/2, r.X+r.Width/2
	switch {
	case x < left:
		return left - x
	case x > right:
		return x - right
	}
	return 0
}

// yDist is the vertical counterpart of xDist.
func (r Rect) yDist(y float64) float64 {
	switch {
	case y < r.Bottom():
		return r.Bottom() - y
	case y > r.Top():
		return y - r.Top()
	}
	return 0
}

// Point is a query point.
type Point struct {
	X, Y float64
}

// Match pairs a rectangle index with its L1 distance to a query point.
type Match struct {
	Index    int
	Distance float64
}

// Finder holds the query parameters. MaxDistance bounds how far a nearest
// rectangle may be: points whose minimum distance exceeds it get no matches.
// Tolerance widens each answer to all rectangles within that much of the
// minimum.
type Finder struct {
	MaxDistance float64
	Tolerance   float64
}

// coordID pairs one y-coordinate of a rectangle with its index.
type coordID struct {
	coord float64
	index int
}

// Find returns, for each point, the rectangles within Tolerance of the
// minimum L1 distance, sorted by distance then index. Points farther than
// MaxDistance from every rectangle get a nil entry.
//
// The sweep processes points by decreasing y-coordinate and maintains the set
// of rectangles whose y-projection contains the sweep line. For each point
// the active rectangles contribute their x-distance; the rectangles entirely
// above and below are then scanned outward until they are too far away to
// beat the minimum found so far.
func (f Finder) Find(rects []Rect, points []Point) [][]Match {
	n, m := len(rects), len(points)
	out := make([][]Match, m)
	if n == 0 || m == 0 {
		return out
	}

	tops := make([]coordID, n)
	bottoms := make([]coordID, n)
	for i, r := range rects {
		tops[i] = coordID{r.Top(), i}
		bottoms[i] = coordID{r.Bottom(), i}
	}
	byDescCoord := func(a, b coordID) int { return cmp.Compare(b.coord, a.coord) }
	slices.SortFunc(tops, byDescCoord)
	slices.SortFunc(bottoms, byDescCoord)

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return cmp.Compare(points[b].Y, points[a].Y) })

	active := make(map[int]bool)
	distance := make([]float64, n)
	var visited []int
	nextTop, nextBottom := 0, 0

	for _, pi := range order {
		p := points[pi]

		for nextTop < n && tops[nextTop].coord >= p.Y {
			active[tops[nextTop].index] = true
			nextTop++
		}
		for nextBottom < n && bottoms[nextBottom].coord > p.Y {
			delete(active, bottoms[nextBottom].index)
			nextBottom++
		}

		// Everything up to this bound must be inspected: a rectangle at the
		// maximum allowed distance stays ambiguous while closer ones within
		// the tolerance exist.
		minDist := f.MaxDistance + f.Tolerance
		visited = visited[:0]

		for j := range active {
			d := rects[j].xDist(p.X)
			if d < minDist {
				minDist = d
			}
			visited = append(visited, j)
			distance[j] = d
		}

		// Scan outward: down the list of tops for rectangles entirely below
		// the point, up the list of bottoms for those entirely above.
		itTop, itBottom := nextTop, nextBottom-1
		for itTop < n || itBottom >= 0 {
			if itTop < n {
				if tops[itTop].coord < p.Y-minDist {
					itTop = n
				} else {
					j := tops[itTop].index
					d := rects[j].xDist(p.X) + (p.Y - tops[itTop].coord)
					if d < minDist {
						minDist = d
					}
					visited = append(visited, j)
					distance[j] = d
					itTop++
				}
			}
			if itBottom >= 0 {
				if bottoms[itBottom].coord > p.Y+minDist {
					itBottom = -1
				} else {
					j := bottoms[itBottom].index
					d := rects[j].xDist(p.X) + (bottoms[itBottom].coord - p.Y)
					if d < minDist {
						minDist = d
					}
					visited = append(visited, j)
					distance[j] = d
					itBottom--
				}
			}
		}

		if minDist > f.MaxDistance {
			continue
		}
		limit := minDist + f.Tolerance
		for _, j := range visited {
			if distance[j] <= limit {
				out[pi] = append(out[pi], Match{Index: j, Distance: distance[j]})
			}
		}
		slices.SortFunc(out[pi], func(a, b Match) int {
			if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
				return c
			}
			return cmp.Compare(a.Index, b.Index)
		})
	}
	return out
}

// FindSimple returns, for each point, only the single nearest rectangle,
// ignoring Tolerance, by checking every pair. It exists as a correctness
// reference for Find.
func (f Finder) FindSimple(rects []Rect, points []Point) [][]Match {
	out := make([][]Match, len(points))
	for i, p := range points {
		best := -1
		var bestDist float64
		for j, r := range rects {
			d := r.xDist(p.X) + r.yDist(p.Y)
			if best == -1 || d < bestDist {
				best, bestDist = j, d
			}
		}
		if best >= 0 && bestDist <= f.MaxDistance {
			out[i] = []Match{{Index: best, Distance: bestDist}}
		}
	}
	return out
}
