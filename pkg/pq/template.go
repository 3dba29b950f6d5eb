package pq

// Template matching. Each pertinent node is rewritten in place by exactly one
// template once all of its pertinent children are labelled. Non-root nodes
// must end up Full or Partial with all pertinent leaves gathered at one end;
// the pertinent root only needs its pertinent leaves consecutive, which gives
// it the more permissive root templates.

// templateNonRoot matches x against the non-root templates and returns the
// node now representing x's pertinent material in the parent's ring. The
// returned node differs from x when a template replaces x wholesale.
func (t *Tree[E, V]) templateNonRoot(red *Reduction[E, V], x *node[E, V]) (*node[E, V], error) {
	switch x.kind {
	case KindLeaf:
		return x, nil
	case KindP:
		return t.templateNonRootP(red, x)
	case KindQ:
		if err := t.matchQ(red, x, false); err != nil {
			return nil, err
		}
		return x, nil
	}
	assertf(false, "template matching reached %v node", x.kind)
	return nil, nil
}

// templateRoot matches the pertinent root. It never fails the reduction for
// a surviving empty remainder; it may retarget red.pertinentRoot at the node
// that will carry the pertinent leaves into the replacement phase.
func (t *Tree[E, V]) templateRoot(red *Reduction[E, V], x *node[E, V]) error {
	switch x.kind {
	case KindLeaf:
		return nil
	case KindP:
		return t.templateRootP(red, x)
	case KindQ:
		return t.matchQ(red, x, true)
	}
	assertf(false, "template matching reached %v node", x.kind)
	return nil
}

// templateNonRootP handles templates P1 (all children full), P3 (no partial
// child, split into a partial Q-node) and P5 (one partial child absorbs the
// full and empty remainders). Two partial children below the pertinent root
// cannot be made consecutive.
func (t *Tree[E, V]) templateNonRootP(red *Reduction[E, V], x *node[E, V]) (*node[E, V], error) {
	switch len(x.partialChildren) {
	case 0:
		if len(x.fullChildren) == x.childCount {
			x.status = StatusFull // P1
			return x, nil
		}
		return t.splitPNode(red, x), nil // P3
	case 1:
		return t.absorbIntoPartial(red, x, x.partialChildren[0]), nil // P5
	}
	return nil, ErrNonPlanar
}

// templateRootP handles templates P1, P2 (full children bundled under the
// root), P4 (one partial child collects the full children) and P6 (two
// partial children merged end to end).
func (t *Tree[E, V]) templateRootP(red *Reduction[E, V], x *node[E, V]) error {
	switch len(x.partialChildren) {
	case 0:
		if len(x.fullChildren) == x.childCount {
			x.status = StatusFull // P1
			return nil
		}
		// P2: the pertinent root moves to the bundled full children; the
		// P-node itself keeps its empty remainder untouched.
		fb := t.bundleFull(red, x)
		t.addChildToP(x, fb)
		x.fullChildren = []*node[E, V]{fb}
		x.status = StatusPartial
		red.pertinentRoot = fb
		return nil

	case 1:
		// P4: full children move to the full end of the partial child, which
		// becomes the pertinent root.
		pc := x.partialChildren[0]
		assertf(len(x.fullChildren) > 0, "root P-node with a lone partial child counted as pertinent root")
		t.gatherFullAtEnd(red, x, pc)
		x.status = StatusPartial
		red.pertinentRoot = pc
		return nil

	case 2:
		// P6: merge the second partial child onto the full end of the first,
		// full ends facing each other, so all pertinent leaves meet in the
		// middle of one Q-node.
		pc1, pc2 := x.partialChildren[0], x.partialChildren[1]
		if len(x.fullChildren) > 0 {
			t.gatherFullAtEnd(red, x, pc1)
		}
		t.graftPartialOntoFullEnd(red, pc1, pc2)
		x.status = StatusPartial
		red.pertinentRoot = pc1
		return nil
	}
	return ErrNonPlanar
}

// bundleFull detaches x's full children and returns a single full node
// standing for all of them: the child itself when there is exactly one, or a
// fresh full P-node holding them otherwise. The result is parentless and
// ready to be attached wherever the template needs it.
func (t *Tree[E, V]) bundleFull(red *Reduction[E, V], x *node[E, V]) *node[E, V] {
	fulls := x.fullChildren
	assertf(len(fulls) > 0, "bundleFull on node without full children")

	if len(fulls) == 1 {
		t.removeChildFromSiblings(fulls[0])
		return fulls[0]
	}
	fp := t.newNode(KindP, StatusFull)
	red.addPertinent(fp)
	for _, c := range fulls {
		t.removeChildFromSiblings(c)
		t.addChildToP(fp, c)
	}
	return fp
}

// gatherFullAtEnd moves x's full children, bundled, to the full end of x's
// partial child pc.
func (t *Tree[E, V]) gatherFullAtEnd(red *Reduction[E, V], x, pc *node[E, V]) {
	sF := t.fullEndSide(pc)
	fb := t.bundleFull(red, x)
	t.attachAtQEnd(pc, fb, sF)
	pc.fullChildren = append(pc.fullChildren, fb)
	x.fullChildren = nil
}

// fullEndSide reports on which side the full end of the partial Q-node pc
// lies. A partial node produced by the templates always has exactly one full
// end.
func (t *Tree[E, V]) fullEndSide(pc *node[E, V]) side {
	assertf(pc.kind == KindQ, "fullEndSide on %v node", pc.kind)
	if e := t.clientEndmost(pc, sideLeft); e != nil && e.status == StatusFull {
		return sideLeft
	}
	e := t.clientEndmost(pc, sideRight)
	assertf(e != nil && e.status == StatusFull, "partial node without a full end")
	return sideRight
}

// splitPNode implements template P3: x's full children are bundled and paired
// with the empty remainder under a new partial Q-node that takes x's place.
// When only one empty child remains, it hangs directly off the Q-node and x
// is discarded.
func (t *Tree[E, V]) splitPNode(red *Reduction[E, V], x *node[E, V]) *node[E, V] {
	fb := t.bundleFull(red, x)

	q := t.newNode(KindQ, StatusPartial)
	red.addPertinent(q)
	t.exchangeNodes(x, q)

	var eb *node[E, V]
	if x.childCount == 1 {
		eb = x.refChild
		t.removeChildFromSiblings(eb)
		t.destroyNode(red, x)
	} else {
		eb = x
		x.status = StatusEmpty
		x.fullChildren = nil
	}

	q.endmost[sideLeft], q.endmost[sideRight] = eb, fb
	eb.parent, fb.parent = q, q
	eb.sib[sideLeft], eb.sib[sideRight] = nil, fb
	fb.sib[sideLeft], fb.sib[sideRight] = eb, nil
	q.childCount = 2
	q.fullChildren = []*node[E, V]{fb}
	return q
}

// absorbIntoPartial implements template P5: the partial child pc takes x's
// place, the bundled full children attach at pc's full end and x, reduced to
// its empty children, attaches at the empty end. When no empty child remains
// x is discarded; a single empty child attaches directly.
func (t *Tree[E, V]) absorbIntoPartial(red *Reduction[E, V], x, pc *node[E, V]) *node[E, V] {
	sF := t.fullEndSide(pc)
	if len(x.fullChildren) > 0 {
		t.gatherFullAtEnd(red, x, pc)
	}

	t.removeChildFromSiblings(pc)
	t.exchangeNodes(x, pc)

	sE := sideLeft
	if sF == sideLeft {
		sE = sideRight
	}
	switch x.childCount {
	case 0:
		t.destroyNode(red, x)
	case 1:
		e := x.refChild
		t.removeChildFromSiblings(e)
		t.attachAtQEnd(pc, e, sE)
		t.destroyNode(red, x)
	default:
		x.status = StatusEmpty
		t.attachAtQEnd(pc, x, sE)
	}
	return pc
}

// matchQ verifies the Q-node templates (Q1 through Q3) on x and merges
// partial children into x's own chain. For a non-root node the pertinent run
// must additionally touch one end of the chain, so that the parent templates
// can keep gathering pertinent material at an end; a non-root node therefore
// admits at most one partial child. The pertinent root admits two, one at
// each end of the full run, with their full ends facing inward.
func (t *Tree[E, V]) matchQ(red *Reduction[E, V], x *node[E, V], isRoot bool) error {
	type slot struct {
		n      *node[E, V]
		status Status
	}
	var children []slot

	var pred *node[E, V]
	cur := t.clientEndmost(x, sideLeft)
	assertf(cur != nil, "Q-node with no non-indicator children")
	for cur != nil {
		children = append(children, slot{n: cur, status: cur.status})
		next := t.clientNextSib(cur, pred)
		pred = cur
		cur = next
	}

	firstFull, lastFull := -1, -1
	var partials []int
	fullCount := 0
	for i, c := range children {
		switch c.status {
		case StatusFull:
			if firstFull < 0 {
				firstFull = i
			}
			lastFull = i
			fullCount++
		case StatusPartial:
			if len(partials) == 2 {
				return ErrNonPlanar
			}
			partials = append(partials, i)
		}
	}

	// The full children must form one contiguous run.
	if fullCount > 0 && lastFull-firstFull+1 != fullCount {
		return ErrNonPlanar
	}

	if len(partials) == 0 {
		if fullCount == x.childCount {
			x.status = StatusFull // Q1
			return nil
		}
		// Q2 / Q3 without a partial child: the run must touch an end unless
		// x is the pertinent root.
		if !isRoot && firstFull != 0 && lastFull != len(children)-1 {
			return ErrNonPlanar
		}
		x.status = StatusPartial
		return nil
	}

	if len(partials) == 1 {
		partialAt := partials[0]

		// The partial child must sit immediately next to the full run, or
		// stand alone when the node has no full children.
		if fullCount > 0 && partialAt != firstFull-1 && partialAt != lastFull+1 {
			return ErrNonPlanar
		}

		lo, hi := partialAt, partialAt
		if fullCount > 0 {
			if firstFull < lo {
				lo = firstFull
			}
			if lastFull > hi {
				hi = lastFull
			}
		}
		if !isRoot && lo != 0 && hi != len(children)-1 {
			return ErrNonPlanar
		}

		// A partial child always contributes an empty remainder, so x cannot
		// come out of the merge full.
		t.mergePartialIntoQ(red, x, children[partialAt].n)
		x.status = StatusPartial
		return nil
	}

	// Q3 with two partial children: only the pertinent root can host them.
	// They must flank the full run, or sit adjacent when there is no full
	// run, so that after both merges the pertinent leaves form one interior
	// run between the two empty remainders.
	if !isRoot {
		return ErrNonPlanar
	}
	p1, p2 := partials[0], partials[1]
	if fullCount > 0 {
		if p1 != firstFull-1 || p2 != lastFull+1 {
			return ErrNonPlanar
		}
	} else if p2 != p1+1 {
		return ErrNonPlanar
	}
	t.mergePartialIntoQ(red, x, children[p1].n)
	t.mergePartialIntoQ(red, x, children[p2].n)
	x.status = StatusPartial
	return nil
}

// graftPartialOntoFullEnd welds the chain of the partial node pc2 onto the
// full end of pc1, full ends facing each other. Afterwards pc1 is a Q-node
// whose pertinent leaves sit in one interior run flanked by the two empty
// remainders; pc2 is eliminated.
func (t *Tree[E, V]) graftPartialOntoFullEnd(red *Reduction[E, V], pc1, pc2 *node[E, V]) {
	sF1 := t.fullEndSide(pc1)
	sF2 := t.fullEndSide(pc2)
	sE2 := sideLeft
	if sF2 == sideLeft {
		sE2 = sideRight
	}

	t.removeChildFromSiblings(pc2)

	var prev *node[E, V]
	for c := pc2.endmost[sF2]; c != nil; {
		c.parent = pc1
		hold := c.nextSib(prev)
		prev = c
		c = hold
	}

	e1 := pc1.endmost[sF1]
	eF2 := pc2.endmost[sF2]
	e1.changeSib(nil, eF2)
	eF2.changeSib(nil, e1)
	pc1.endmost[sF1] = pc2.endmost[sE2]

	pc1.childCount += pc2.childCount
	pc1.fullChildren = append(pc1.fullChildren, pc2.fullChildren...)

	pc2.parent = nil
	pc2.sib[sideLeft], pc2.sib[sideRight] = nil, nil
	pc2.endmost[sideLeft], pc2.endmost[sideRight] = nil, nil
	pc2.fullChildren = nil
	pc2.status = StatusEliminated
	t.destroyNode(red, pc2)
}

// mergePartialIntoQ splices the chain of the partial child pc into its Q
// parent q in place of pc, oriented so that pc's full end faces q's full run.
// The run may be a sibling partial child not yet merged, or, when q has no
// other pertinent children, the nearer chain end. pc's children are
// reparented onto q; pc itself is eliminated and freed by the sweep.
func (t *Tree[E, V]) mergePartialIntoQ(red *Reduction[E, V], q, pc *node[E, V]) {
	sF := t.fullEndSide(pc)
	sE := sideLeft
	if sF == sideLeft {
		sE = sideRight
	}

	var toward side
	cl := t.clientSibLeft(pc)
	cr := t.clientSibRight(pc)
	switch {
	case cl != nil && cl.status != StatusEmpty:
		toward = sideLeft
	case cr != nil && cr.status != StatusEmpty:
		toward = sideRight
	case cl == nil:
		toward = sideLeft
	case cr == nil:
		toward = sideRight
	default:
		assertf(false, "partial child with empty neighbours on both sides")
	}
	away := sideLeft
	if toward == sideLeft {
		away = sideRight
	}

	// Reparent pc's whole raw chain, indicators included, before splicing.
	var prev *node[E, V]
	for c := pc.endmost[sF]; c != nil; {
		c.parent = q
		hold := c.nextSib(prev)
		prev = c
		c = hold
	}

	eF := pc.endmost[sF]
	eE := pc.endmost[sE]
	rTo := pc.sib[toward]
	rAway := pc.sib[away]

	if rTo != nil {
		rTo.changeSib(pc, eF)
		eF.changeSib(nil, rTo)
	} else {
		s, ok := pc.isEndmostOf(q)
		assertf(ok, "chain end without endmost registration")
		q.endmost[s] = eF
	}
	if rAway != nil {
		rAway.changeSib(pc, eE)
		eE.changeSib(nil, rAway)
	} else {
		s, ok := pc.isEndmostOf(q)
		assertf(ok, "chain end without endmost registration")
		q.endmost[s] = eE
	}

	q.childCount += pc.childCount - 1
	q.fullChildren = append(q.fullChildren, pc.fullChildren...)

	pc.parent = nil
	pc.sib[sideLeft], pc.sib[sideRight] = nil, nil
	pc.endmost[sideLeft], pc.endmost[sideRight] = nil, nil
	pc.fullChildren = nil
	pc.status = StatusEliminated
	t.destroyNode(red, pc)
}
