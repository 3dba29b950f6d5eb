package pq

// ReplaceResult reports the outcome of a ReplaceRoot call. Frontier lists the
// edges of the collapsed pertinent leaves in scan order. Opposed and
// NonOpposed partition the direction indicators consumed by the scan: the
// edge sequence of an opposed vertex was traversed against its recorded
// orientation and must be reversed by the caller, a non-opposed one kept
// as is.
type ReplaceResult[E, V any] struct {
	Frontier   []E
	Opposed    []V
	NonOpposed []V
}

// ReplaceRoot collapses the pertinent subtree of a successful reduction and
// replaces it by fresh leaves bound to keys: a single leaf for one key, a
// P-node over new leaves otherwise. An empty keys slice is permitted only
// when the whole tree is pertinent and removes the tree entirely; this is the
// final step of an incremental run, when the last vertex has no outgoing
// edges left to embed.
//
// vertex identifies the collapsed sequence. When the pertinent root is
// partial, a direction indicator carrying vertex is threaded next to the
// replacement so that later scans can report whether the sequence was
// reversed in the meantime.
//
// The reduction context is consumed: all pertinent bookkeeping is cleared and
// the collapsed nodes are freed. Passing a consumed or foreign reduction is a
// contract violation and panics.
func (t *Tree[E, V]) ReplaceRoot(red *Reduction[E, V], keys []*LeafKey[E, V], vertex V) ReplaceResult[E, V] {
	assertf(red != nil && !red.consumed, "ReplaceRoot on a consumed reduction")
	assertf(red.tree == t, "ReplaceRoot with a reduction of a different tree")
	proot := red.pertinentRoot
	assertf(proot != nil, "ReplaceRoot without a pertinent root")

	var entries []frontEntry[E, V]
	switch {
	case len(keys) == 0:
		assertf(proot == t.root && proot.status == StatusFull,
			"empty replacement is only valid for a fully pertinent tree")
		entries = t.front(red, proot)
		red.pertinentRoot = nil
		t.root = nil
	case proot.status == StatusFull:
		entries = t.replaceFullRoot(red, keys, vertex, false, nil)
	default:
		entries = t.replacePartialRoot(red, keys, vertex)
	}

	t.sweep(red)

	var res ReplaceResult[E, V]
	for _, e := range entries {
		switch {
		case e.key != nil:
			res.Frontier = append(res.Frontier, e.key.Edge)
		case e.info != nil:
			if e.info.ChangeDir {
				res.Opposed = append(res.Opposed, e.info.Vertex)
			} else {
				res.NonOpposed = append(res.NonOpposed, e.info.Vertex)
			}
		}
	}
	return res
}

// replaceFullRoot replaces a full pertinent root, either the root of the
// whole pertinent subtree or the last surviving full child of a partial one.
// When called from replacePartialRoot, addIndicator is set and away names the
// raw sibling on the already-consumed side of the run, so the new indicator
// lands on the far side of the replacement.
func (t *Tree[E, V]) replaceFullRoot(red *Reduction[E, V], keys []*LeafKey[E, V], vertex V, addIndicator bool, away *node[E, V]) []frontEntry[E, V] {
	proot := red.pertinentRoot
	assertf(len(keys) > 0, "replaceFullRoot without replacement keys")

	entries := t.front(red, proot)

	if addIndicator {
		ind := t.newNode(KindIndicator, StatusIndicator)
		ind.info = &IndicatorInfo[V]{Vertex: vertex}
		t.insertIndicator(ind, proot, away)
	}

	if len(keys) == 1 {
		leaf := t.newLeaf(keys[0])
		t.exchangeNodes(proot, leaf)
		red.pertinentRoot = nil
		return entries
	}

	switch proot.kind {
	case KindP, KindQ:
		// Reuse the root in place as the new P-node. Its old children are
		// all full and get freed by the sweep; the root itself is kept, so
		// the sweep resets it instead.
		proot.kind = KindP
		proot.refChild = nil
		proot.endmost[sideLeft], proot.endmost[sideRight] = nil, nil
		proot.childCount = 0
		proot.fullChildren = nil
		t.addNewLeavesToTree(proot, keys)
	case KindLeaf:
		p := t.newNode(KindP, StatusEmpty)
		t.addNewLeavesToTree(p, keys)
		t.exchangeNodes(proot, p)
		red.pertinentRoot = nil
	}
	return entries
}

// replacePartialRoot collapses the full run of a partial pertinent root. The
// run members are consumed from one boundary toward the other, interior
// direction indicators reported and removed along the way; the last member
// becomes the pertinent root and is replaced by replaceFullRoot, which also
// threads the new indicator for this sequence.
func (t *Tree[E, V]) replacePartialRoot(red *Reduction[E, V], keys []*LeafKey[E, V], vertex V) []frontEntry[E, V] {
	proot := red.pertinentRoot
	assertf(proot.kind == KindQ, "partial pertinent root must be a Q-node")
	assertf(len(proot.fullChildren) >= 2, "partial pertinent root with fewer than two full children")

	// Locate the boundary children of the full run. predNode is the empty
	// client sibling just beyond the begin boundary; beginInd the raw sibling
	// there, which may be an indicator parked outside the run.
	var beginSeq, endSeq, predNode, beginInd *node[E, V]
	for _, c := range proot.fullChildren {
		if l := t.clientSibLeft(c); l == nil || l.status == StatusEmpty {
			if beginSeq == nil {
				beginSeq = c
				predNode = l
				beginInd = c.sib[sideLeft]
			} else {
				endSeq = c
			}
		} else if r := t.clientSibRight(c); r == nil || r.status == StatusEmpty {
			if beginSeq == nil {
				beginSeq = c
				predNode = r
				beginInd = c.sib[sideRight]
			} else {
				endSeq = c
			}
		}
	}
	assertf(beginSeq != nil && endSeq != nil, "full run without two boundary children")

	var entries []frontEntry[E, V]

	// Each removal splices the chain, so the raw neighbour of the current run
	// member on the consumed side stays beginInd throughout the walk.
	current := beginSeq
	for current != endSeq {
		next := t.clientNextSib(current, predNode)
		assertf(next != nil, "run walk fell off the chain")

		entries = append(entries, t.front(red, current)...)

		ind := current.nextSib(beginInd)
		for ind != next {
			assertf(ind.kind == KindIndicator, "non-indicator between run members")
			nextInd := ind.nextSib(current)
			if current == ind.sib[sideRight] {
				// The walk crosses the indicator against its recorded
				// orientation.
				ind.info.ChangeDir = true
			}
			entries = append(entries, frontEntry[E, V]{info: ind.info})
			t.removeChildFromSiblings(ind)
			t.destroyNode(red, ind)
			ind = nextInd
		}

		t.removeChildFromSiblings(current)
		current = next
	}

	current.parent = proot
	red.pertinentRoot = current
	return append(entries, t.replaceFullRoot(red, keys, vertex, true, beginInd)...)
}

// insertIndicator threads ind into the chain next to seq, on the side away
// from the raw sibling away. The indicator's left slot ends up pointing at
// seq: an indicator records its sequence on the left, which is how later
// scans detect reversals.
func (t *Tree[E, V]) insertIndicator(ind, seq, away *node[E, V]) {
	opposite := seq.nextSib(away)
	if opposite == nil {
		parent := seq.parent
		assertf(parent != nil && parent.kind == KindQ, "indicator beside a child of a non-Q node")
		s, ok := seq.isEndmostOf(parent)
		assertf(ok, "chain end without endmost registration")
		t.attachAtQEnd(parent, ind, s)
		return
	}
	insertBetween(ind, seq, opposite)
	ind.parent = seq.parent
}

// front scans the frontier of the subtree rooted at n, reporting leaf keys in
// leaf order and direction indicators at the position they are encountered.
// Unlike getFront the scan consumes the subtree's indicators: each one has
// its ChangeDir resolved against the scan direction and is scheduled for
// destruction. Only to be used on subtrees that are about to collapse.
func (t *Tree[E, V]) front(red *Reduction[E, V], n *node[E, V]) []frontEntry[E, V] {
	var out []frontEntry[E, V]
	stack := []*node[E, V]{n}

	for len(stack) > 0 {
		check := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if check.kind == KindLeaf {
			out = append(out, frontEntry[E, V]{key: check.key})
			continue
		}

		var firstSon *node[E, V]
		switch check.kind {
		case KindP:
			firstSon = check.refChild
		case KindQ:
			// Entering from the right endmost child leaves the left end on
			// top of the stack, so leaves still pop left to right.
			firstSon = check.endmost[sideRight]
		}
		assertf(firstSon != nil, "interior node without children in frontier scan")

		if firstSon.kind == KindIndicator {
			out = append(out, frontEntry[E, V]{info: firstSon.info})
			t.destroyNode(red, firstSon)
		} else {
			stack = append(stack, firstSon)
		}

		oldSib := firstSon
		nextSon := firstSon.nextSib(nil)
		for nextSon != nil && nextSon != firstSon {
			if nextSon.kind == KindIndicator {
				// Indicators point with their left slot toward their
				// sequence; reaching one from that side means the reported
				// order runs against the recorded orientation.
				if oldSib == nextSon.sib[sideLeft] {
					nextSon.info.ChangeDir = true
				}
				out = append(out, frontEntry[E, V]{info: nextSon.info})
				t.destroyNode(red, nextSon)
			} else {
				stack = append(stack, nextSon)
			}
			hold := nextSon.nextSib(oldSib)
			oldSib = nextSon
			nextSon = hold
		}
	}
	return out
}

// sweep ends the replace call: collapsed material is freed and every other
// node touched by the reduction returns to its rest state. A pertinent root
// reused as the replacement node survives with cleared bookkeeping.
func (t *Tree[E, V]) sweep(red *Reduction[E, V]) {
	for _, n := range red.pertinentNodes {
		switch {
		case n == red.pertinentRoot:
			resetPertinent(n)
		case n.status == StatusFull || n.status == StatusToBeDeleted || n.status == StatusEliminated:
			t.freeNode(n)
		default:
			resetPertinent(n)
		}
	}
	red.pertinentNodes = nil
	red.pertinentRoot = nil
	red.consumed = true
}
