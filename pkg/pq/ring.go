package pq

// Sibling-ring surgery. All structural mutation of child rings and chains
// goes through the helpers in this file so that the endmost/refChild/
// childCount bookkeeping stays in one place. P-node children form a circular
// ring entered through refChild; Q-node children form an open chain whose
// ends are recorded on the parent. Indicators are chain members but never
// count toward childCount.

// addChildToP inserts c into the circular child ring of the P-node p,
// immediately after the reference child. Order inside a P ring carries no
// meaning, only membership.
func (t *Tree[E, V]) addChildToP(p, c *node[E, V]) {
	assertf(p.kind == KindP, "addChildToP on %v node", p.kind)
	c.parent = p
	r := p.refChild
	if r == nil {
		p.refChild = c
		c.sib[sideLeft], c.sib[sideRight] = c, c
		p.childCount++
		return
	}
	rn := r.sib[sideRight]
	c.sib[sideLeft], c.sib[sideRight] = r, rn
	r.sib[sideRight] = c
	rn.sib[sideLeft] = c
	p.childCount++
}

// attachAtQEnd makes c the new endmost child of the Q-node q on side s.
func (t *Tree[E, V]) attachAtQEnd(q, c *node[E, V], s side) {
	assertf(q.kind == KindQ, "attachAtQEnd on %v node", q.kind)
	c.parent = q
	e := q.endmost[s]
	if e == nil {
		q.endmost[sideLeft], q.endmost[sideRight] = c, c
		c.sib[sideLeft], c.sib[sideRight] = nil, nil
	} else {
		e.changeSib(nil, c)
		c.sib[sideLeft], c.sib[sideRight] = e, nil
		q.endmost[s] = c
	}
	if c.kind != KindIndicator {
		q.childCount++
	}
}

// insertBetween splices n into the chain between the adjacent siblings a
// and b. By convention n's left slot ends up pointing at a; direction
// indicators use that slot to remember their creation-time orientation.
func insertBetween[E, V any](n, a, b *node[E, V]) {
	a.changeSib(b, n)
	b.changeSib(a, n)
	n.sib[sideLeft], n.sib[sideRight] = a, b
}

// removeChildFromSiblings unlinks c from its parent's child structure:
// the neighbouring siblings are joined, and the parent's refChild, endmost
// pointers and childCount are fixed up. The parent back-pointer on c is kept
// so callers can still reach the old parent; both sibling slots are cleared.
func (t *Tree[E, V]) removeChildFromSiblings(c *node[E, V]) {
	p := c.parent
	assertf(p != nil, "removeChildFromSiblings on parentless node")
	a, b := c.sib[sideLeft], c.sib[sideRight]

	switch p.kind {
	case KindP:
		if p.refChild == c {
			if a == c || a == nil {
				p.refChild = nil
			} else {
				p.refChild = a
			}
		}
		if a != c { // not a self-ring of one
			a.changeSib(c, b)
			b.changeSib(c, a)
		}
	case KindQ:
		inward := a
		if inward == nil {
			inward = b
		}
		if p.endmost[sideLeft] == c {
			p.endmost[sideLeft] = inward
		}
		if p.endmost[sideRight] == c {
			p.endmost[sideRight] = inward
		}
		if a != nil {
			a.changeSib(c, b)
		}
		if b != nil {
			b.changeSib(c, a)
		}
	default:
		assertf(false, "removeChildFromSiblings under %v parent", p.kind)
	}

	c.sib[sideLeft], c.sib[sideRight] = nil, nil
	if c.kind != KindIndicator {
		p.childCount--
	}
}

// exchangeNodes puts repl into the exact structural position of old: same
// parent, same sibling links, same endmost/refChild role. old is fully
// unlinked. If old was the tree root, repl becomes the root.
func (t *Tree[E, V]) exchangeNodes(old, repl *node[E, V]) {
	p := old.parent
	repl.parent = p
	if p != nil {
		if p.refChild == old {
			p.refChild = repl
		}
		if p.endmost[sideLeft] == old {
			p.endmost[sideLeft] = repl
		}
		if p.endmost[sideRight] == old {
			p.endmost[sideRight] = repl
		}
	}

	a, b := old.sib[sideLeft], old.sib[sideRight]
	switch {
	case a == old && b == old: // self-ring of one
		repl.sib[sideLeft], repl.sib[sideRight] = repl, repl
	case a == b && a != nil: // ring of two: both of a's slots point at old
		repl.sib[sideLeft], repl.sib[sideRight] = a, a
		a.sib[sideLeft], a.sib[sideRight] = repl, repl
	default:
		repl.sib[sideLeft], repl.sib[sideRight] = a, b
		if a != nil {
			a.changeSib(old, repl)
		}
		if b != nil {
			b.changeSib(old, repl)
		}
	}

	old.sib[sideLeft], old.sib[sideRight] = nil, nil
	old.parent = nil
	if t.root == old {
		t.root = repl
		repl.parent = nil
	}
}

// clientSibLeft follows n's left sibling slot, transparently skipping over
// direction indicators, so that template matching and contiguity checks
// never see pseudo-children. Returns nil past the end of a Q chain.
func (t *Tree[E, V]) clientSibLeft(n *node[E, V]) *node[E, V] {
	pred := n
	cur := n.sib[sideLeft]
	for cur != nil && cur.kind == KindIndicator {
		hold := pred
		pred = cur
		cur = pred.nextSib(hold)
	}
	return cur
}

// clientSibRight is the mirror of clientSibLeft.
func (t *Tree[E, V]) clientSibRight(n *node[E, V]) *node[E, V] {
	pred := n
	cur := n.sib[sideRight]
	for cur != nil && cur.kind == KindIndicator {
		hold := pred
		pred = cur
		cur = pred.nextSib(hold)
	}
	return cur
}

// clientNextSib returns the non-indicator sibling of n that is not other,
// the step function for walking a Q chain in client view.
func (t *Tree[E, V]) clientNextSib(n, other *node[E, V]) *node[E, V] {
	if l := t.clientSibLeft(n); l != other {
		return l
	}
	if r := t.clientSibRight(n); r != other {
		return r
	}
	return nil
}

// clientEndmost returns the outermost non-indicator child of the Q-node q on
// side s, or nil if the chain holds only indicators.
func (t *Tree[E, V]) clientEndmost(q *node[E, V], s side) *node[E, V] {
	e := q.endmost[s]
	if e == nil || e.kind != KindIndicator {
		return e
	}
	return t.clientNextSib(e, nil)
}
