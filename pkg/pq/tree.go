package pq

import (
	"fmt"
	"strings"
)

// Tree is a PQ-tree over leaves bound to external keys of type E, with
// direction indicators referencing vertices of type V. It compactly
// represents every permutation of its leaves consistent with the reductions
// applied so far, and is the core data structure of incremental planarity
// testing: each leaf stands for a graph edge waiting to be embedded.
//
// The tree exclusively owns its nodes. Leaf keys are shared with the caller,
// but a key is bound to at most one live leaf at a time.
//
// Tree is not safe for concurrent use. The zero value is unusable; create
// instances with NewTree and populate them with Initialize.
type Tree[E, V any] struct {
	root  *node[E, V]
	arena []*node[E, V]
}

// NewTree creates an empty tree. Call Initialize before reducing.
func NewTree[E, V any]() *Tree[E, V] {
	return &Tree[E, V]{}
}

// newNode allocates a node owned by this tree's arena.
func (t *Tree[E, V]) newNode(kind Kind, status Status) *node[E, V] {
	n := &node[E, V]{kind: kind, status: status, arenaIdx: len(t.arena)}
	t.arena = append(t.arena, n)
	return n
}

// newLeaf allocates a leaf and binds key to it, replacing any previous
// binding the key carried.
func (t *Tree[E, V]) newLeaf(key *LeafKey[E, V]) *node[E, V] {
	n := t.newNode(KindLeaf, StatusEmpty)
	n.key = key
	key.leaf = n
	return n
}

// freeNode returns n to the arena free pool. Every pointer on n is cleared
// first so that no ring traversal can observe a half-destroyed sibling.
func (t *Tree[E, V]) freeNode(n *node[E, V]) {
	last := len(t.arena) - 1
	idx := n.arenaIdx
	t.arena[idx] = t.arena[last]
	t.arena[idx].arenaIdx = idx
	t.arena[last] = nil
	t.arena = t.arena[:last]

	if n.key != nil && n.key.leaf == n {
		n.key.leaf = nil
	}
	n.parent = nil
	n.sib[sideLeft], n.sib[sideRight] = nil, nil
	n.endmost[sideLeft], n.endmost[sideRight] = nil, nil
	n.refChild = nil
	n.key = nil
	n.info = nil
	n.fullChildren = nil
	n.partialChildren = nil
}

// Initialize builds the universal tree for the given keys: a single leaf for
// one key, or a P-node root with one leaf child per key. Any previous
// contents of the tree are discarded. Returns ErrInvalidInput if keys is
// empty.
func (t *Tree[E, V]) Initialize(keys []*LeafKey[E, V]) error {
	if len(keys) == 0 {
		return ErrInvalidInput
	}

	t.root = nil
	t.arena = t.arena[:0]

	if len(keys) == 1 {
		t.root = t.newLeaf(keys[0])
		return nil
	}

	root := t.newNode(KindP, StatusEmpty)
	t.addNewLeavesToTree(root, keys)
	t.root = root
	return nil
}

// addNewLeavesToTree creates one leaf per key as a child of the P-node p.
func (t *Tree[E, V]) addNewLeavesToTree(p *node[E, V], keys []*LeafKey[E, V]) {
	for _, key := range keys {
		t.addChildToP(p, t.newLeaf(key))
	}
}

// frontEntry is one element of a frontier scan: either a leaf key or the
// info of a direction indicator encountered along the leaf order.
type frontEntry[E, V any] struct {
	key  *LeafKey[E, V]
	info *IndicatorInfo[V]
}

// Frontier returns the keys of all leaves in the tree's current leaf order,
// left to right. Direction indicators are skipped. The scan is read-only and
// idempotent: calling it twice on an unmodified tree yields equal results.
func (t *Tree[E, V]) Frontier() []E {
	if t.root == nil {
		return nil
	}
	var out []E
	for _, e := range t.getFront(t.root) {
		if e.key != nil {
			out = append(out, e.key.Edge)
		}
	}
	return out
}

// getFront scans the frontier of the subtree rooted at n without modifying
// it: leaf keys and indicator infos in leaf order. P-node children are
// visited in ring order from the reference child; Q-node children in the
// chain's current order, entered from the right endmost child so the left
// end surfaces first off the stack.
func (t *Tree[E, V]) getFront(n *node[E, V]) []frontEntry[E, V] {
	var out []frontEntry[E, V]
	stack := []*node[E, V]{n}

	for len(stack) > 0 {
		check := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if check.kind == KindLeaf {
			out = append(out, frontEntry[E, V]{key: check.key})
			continue
		}
		if check.kind == KindIndicator {
			out = append(out, frontEntry[E, V]{info: check.info})
			continue
		}

		var firstSon *node[E, V]
		switch check.kind {
		case KindP:
			firstSon = check.refChild
		case KindQ:
			firstSon = check.endmost[sideRight]
		}
		assertf(firstSon != nil, "interior node without children in frontier scan")

		if firstSon.kind == KindIndicator {
			out = append(out, frontEntry[E, V]{info: firstSon.info})
		} else {
			stack = append(stack, firstSon)
		}

		oldSib := firstSon
		nextSon := firstSon.nextSib(nil)
		for nextSon != nil && nextSon != firstSon {
			if nextSon.kind == KindIndicator {
				out = append(out, frontEntry[E, V]{info: nextSon.info})
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

// PermutationCount returns the number of leaf permutations the tree
// represents: each P-node contributes the factorial of its child count, each
// Q-node contributes 2 for the two reading directions. Direction indicators
// never count as children. Overflows int for large unconstrained trees.
func (t *Tree[E, V]) PermutationCount() int {
	if t.root == nil {
		return 1
	}
	count := 1
	for _, n := range t.arena {
		switch n.kind {
		case KindP:
			count *= factorial(n.childCount)
		case KindQ:
			count *= 2
		}
	}
	return count
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

// String renders the tree structure: P-node children in braces, Q-node
// children in brackets, leaves as their key's edge value, indicators as
// !vertex. Intended for debugging and tests.
func (t *Tree[E, V]) String() string {
	if t.root == nil {
		return "(empty)"
	}
	return t.nodeString(t.root)
}

func (t *Tree[E, V]) nodeString(n *node[E, V]) string {
	switch n.kind {
	case KindLeaf:
		return fmt.Sprintf("%v", n.key.Edge)
	case KindIndicator:
		return fmt.Sprintf("!%v", n.info.Vertex)
	}

	open, close := "{", "}"
	if n.kind == KindQ {
		open, close = "[", "]"
	}

	var parts []string
	var first *node[E, V]
	if n.kind == KindP {
		first = n.refChild
	} else {
		first = n.endmost[sideLeft]
	}
	if first == nil {
		return open + close
	}

	parts = append(parts, t.nodeString(first))
	oldSib := first
	cur := first.nextSib(nil)
	for cur != nil && cur != first {
		parts = append(parts, t.nodeString(cur))
		hold := cur.nextSib(oldSib)
		oldSib = cur
		cur = hold
	}
	return open + strings.Join(parts, " ") + close
}
