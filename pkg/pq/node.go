package pq

// Kind identifies the structural variant of a tree node.
type Kind int

const (
	// KindLeaf is a leaf carrying a LeafKey.
	KindLeaf Kind = iota
	// KindP is a P-node: children are an unordered set (any permutation).
	KindP
	// KindQ is a Q-node: children are an ordered sequence, reversible as a whole.
	KindQ
	// KindIndicator is a direction-indicator pseudo-node threaded into a
	// Q-node's sibling sequence. Indicators are transparent to template
	// matching and are consumed by the next frontier scan that visits them.
	KindIndicator
)

// Status is the labelling state of a node. Statuses are mutated only by the
// reduction pipeline, never by external callers.
type Status int

const (
	// StatusEmpty marks a node with no pertinent descendant.
	StatusEmpty Status = iota
	// StatusFull marks a node all of whose leaf descendants are pertinent.
	StatusFull
	// StatusPartial marks a node with some but not all descendants pertinent.
	StatusPartial
	// StatusIndicator is the permanent status of indicator pseudo-nodes.
	StatusIndicator
	// StatusToBeDeleted marks a node scheduled for destruction; it is freed
	// by the sweep at the end of the enclosing ReplaceRoot call.
	StatusToBeDeleted
	// StatusEliminated marks a node absorbed into another node during
	// template matching (a merged partial child).
	StatusEliminated
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusFull:
		return "full"
	case StatusPartial:
		return "partial"
	case StatusIndicator:
		return "indicator"
	case StatusToBeDeleted:
		return "to-be-deleted"
	case StatusEliminated:
		return "eliminated"
	}
	return "unknown"
}

// side selects one of the two sibling slots of a node. The slots are only
// locally oriented: templates may flip a subsequence without renumbering, so
// "left" and "right" are meaningful relative to a traversal, not globally.
// Direction indicators rely on the convention that their sideLeft slot points
// toward the sequence they were created for.
type side int

const (
	sideLeft side = iota
	sideRight
)

// node is a tree node. Exactly one of the variant fields is populated
// according to kind: key for leaves, info for indicators, refChild for
// P-nodes, endmost for Q-nodes.
//
// Children of a P-node form a circular doubly-linked ring entered through
// refChild. Children of a Q-node form an acyclic doubly-linked chain whose
// two ends are recorded in endmost; endmost children carry nil in their
// outward sibling slot. Indicators live inside Q chains but are not counted
// in childCount.
type node[E, V any] struct {
	kind   Kind
	status Status
	parent *node[E, V]
	sib    [2]*node[E, V]

	endmost    [2]*node[E, V] // Q-node only: the two end children
	refChild   *node[E, V]    // P-node only: entry point into the child ring
	childCount int            // non-indicator children; equals ring length at rest

	key  *LeafKey[E, V]       // leaf only
	info *IndicatorInfo[V]    // indicator only

	arenaIdx int // position in the owning tree's arena

	// Per-reduction bookkeeping, reset by the sweep at the end of each call.
	pertinent       bool          // registered in the current reduction context
	pertChildCount  int           // children with pertinent descendants
	pertProcessed   int           // pertinent children already template-matched
	pertLeafCount   int           // pertinent leaves in this subtree
	fullChildren    []*node[E, V] // children labelled Full, in labelling order
	partialChildren []*node[E, V] // children labelled Partial
}

// nextSib returns the sibling of n that is not pred. With pred nil it yields
// an arbitrary neighbour, which makes it the standard step function for
// walking a sibling chain or ring while tracking the previous node.
func (n *node[E, V]) nextSib(pred *node[E, V]) *node[E, V] {
	if n.sib[sideLeft] != pred {
		return n.sib[sideLeft]
	}
	return n.sib[sideRight]
}

// changeSib replaces the sibling slot currently holding old with new. It is
// a no-op if neither slot holds old.
func (n *node[E, V]) changeSib(old, repl *node[E, V]) {
	if n.sib[sideLeft] == old {
		n.sib[sideLeft] = repl
	} else if n.sib[sideRight] == old {
		n.sib[sideRight] = repl
	}
}

func (n *node[E, V]) isEndmostOf(p *node[E, V]) (side, bool) {
	if p.endmost[sideLeft] == n {
		return sideLeft, true
	}
	if p.endmost[sideRight] == n {
		return sideRight, true
	}
	return 0, false
}
