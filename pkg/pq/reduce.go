package pq

// Reduction is the per-call context of one reduction: the pertinent root and
// the set of nodes the labelling and matching passes touched. It is returned
// by [Tree.Reduction] and consumed by [Tree.ReplaceRoot]; keeping it explicit
// (instead of mutable fields on the tree) lets reductions be composed and
// tested without hidden state leaking between calls.
type Reduction[E, V any] struct {
	tree           *Tree[E, V]
	pertinentRoot  *node[E, V]
	pertinentNodes []*node[E, V]
	leafCount      int
	consumed       bool
}

// addPertinent registers n for end-of-call cleanup, once.
func (red *Reduction[E, V]) addPertinent(n *node[E, V]) {
	if !n.pertinent {
		n.pertinent = true
		red.pertinentNodes = append(red.pertinentNodes, n)
	}
}

// destroyNode schedules n for destruction at the end of the call. The node
// must already be unlinked from any live ring; it is freed by the sweep, so
// no traversal in between can observe a half-destroyed sibling.
func (t *Tree[E, V]) destroyNode(red *Reduction[E, V], n *node[E, V]) {
	if n.status != StatusEliminated {
		n.status = StatusToBeDeleted
	}
	red.addPertinent(n)
}

// Reduction restricts the permutations represented by the tree to those in
// which the leaves bound to keys appear consecutively. On success it returns
// the reduction context to pass to [Tree.ReplaceRoot]. On failure it returns
// ErrNonPlanar with all node labels cleanly unwound; the tree remains
// structurally consistent but callers are expected to discard it rather than
// attempt repair.
//
// Returns ErrInvalidInput if keys is empty. Passing a key not bound to a
// live leaf of this tree, or the same key twice, is a contract violation and
// panics.
func (t *Tree[E, V]) Reduction(keys []*LeafKey[E, V]) (*Reduction[E, V], error) {
	if len(keys) == 0 {
		return nil, ErrInvalidInput
	}
	assertf(t.root != nil, "Reduction on an uninitialized tree")

	red := &Reduction[E, V]{tree: t, leafCount: len(keys)}

	leaves := make([]*node[E, V], 0, len(keys))
	for _, key := range keys {
		leaf := key.leaf
		assertf(leaf != nil, "reduction key %v is not bound to a leaf", key.Edge)
		assertf(!leaf.pertinent, "reduction key %v appears twice", key.Edge)
		leaf.status = StatusFull
		leaf.pertLeafCount = 1
		red.addPertinent(leaf)
		leaves = append(leaves, leaf)
	}

	t.bubble(red, leaves)

	if err := t.match(red, leaves); err != nil {
		t.unwind(red)
		return nil, err
	}
	return red, nil
}

// bubble walks from every pertinent leaf toward the root, counting for each
// ancestor how many of its children own pertinent descendants. Each node is
// climbed through exactly once, so the pass is linear in the pertinent
// subtree plus the path from the pertinent root up to the tree root.
func (t *Tree[E, V]) bubble(red *Reduction[E, V], leaves []*node[E, V]) {
	queue := append([]*node[E, V](nil), leaves...)
	for i := 0; i < len(queue); i++ {
		p := queue[i].parent
		if p == nil {
			continue
		}
		if !p.pertinent {
			red.addPertinent(p)
			queue = append(queue, p)
		}
		p.pertChildCount++
	}
}

// match applies the template catalogue bottom-up: a node becomes ready once
// all of its pertinent children are labelled, and the unique node whose
// subtree holds the whole reduction set is matched with the root templates.
func (t *Tree[E, V]) match(red *Reduction[E, V], leaves []*node[E, V]) error {
	ready := append([]*node[E, V](nil), leaves...)

	for len(ready) > 0 {
		x := ready[len(ready)-1]
		ready = ready[:len(ready)-1]

		if x.pertLeafCount == red.leafCount {
			red.pertinentRoot = x
			return t.templateRoot(red, x)
		}

		// Capture before matching: templates may splice x out of its
		// parent's ring and hand back a replacement node.
		parent := x.parent
		count := x.pertLeafCount
		assertf(parent != nil, "pertinent node without parent below the pertinent root")

		rep, err := t.templateNonRoot(red, x)
		if err != nil {
			return err
		}

		switch rep.status {
		case StatusFull:
			parent.fullChildren = append(parent.fullChildren, rep)
		case StatusPartial:
			parent.partialChildren = append(parent.partialChildren, rep)
		default:
			assertf(false, "template left node with status %v", rep.status)
		}

		parent.pertProcessed++
		parent.pertLeafCount += count
		if parent.pertProcessed == parent.pertChildCount {
			ready = append(ready, parent)
		}
	}

	assertf(false, "reduction exhausted without reaching a pertinent root")
	return nil
}

// unwind restores every touched node to its rest state after a failed
// match: labels reset to Empty, counters cleared, and nodes already detached
// by partially applied templates freed. The tree stays consistent; the
// permutation set it represents may already have been narrowed, which is why
// callers discard the tree after a failure.
func (t *Tree[E, V]) unwind(red *Reduction[E, V]) {
	for _, n := range red.pertinentNodes {
		if n.status == StatusToBeDeleted || n.status == StatusEliminated {
			t.freeNode(n)
			continue
		}
		resetPertinent(n)
	}
	red.pertinentNodes = nil
	red.pertinentRoot = nil
	red.consumed = true
}

// Discard releases a successful reduction without replacing the pertinent
// sequence: statuses reset to rest, nodes the templates detached are freed,
// and the tree stays reduced and ready for further reductions. Use it when
// only the adjacency constraint itself matters and the collapsed sequence is
// never embedded. A consumed reduction is a no-op.
func (red *Reduction[E, V]) Discard() {
	if red.consumed {
		return
	}
	red.tree.unwind(red)
}

// resetPertinent clears the per-reduction bookkeeping of a surviving node.
func resetPertinent[E, V any](n *node[E, V]) {
	if n.kind != KindIndicator {
		n.status = StatusEmpty
	}
	n.pertinent = false
	n.pertChildCount = 0
	n.pertProcessed = 0
	n.pertLeafCount = 0
	n.fullChildren = nil
	n.partialChildren = nil
}
