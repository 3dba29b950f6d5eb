package pq

import (
	"errors"
	"slices"
	"testing"
)

func makeKeys(edges ...string) []*LeafKey[string, string] {
	keys := make([]*LeafKey[string, string], len(edges))
	for i, e := range edges {
		keys[i] = NewLeafKey[string, string](e)
	}
	return keys
}

func newTestTree(t *testing.T, edges ...string) (*Tree[string, string], map[string]*LeafKey[string, string]) {
	t.Helper()
	tree := NewTree[string, string]()
	keys := makeKeys(edges...)
	if err := tree.Initialize(keys); err != nil {
		t.Fatalf("Initialize(%v): %v", edges, err)
	}
	byEdge := make(map[string]*LeafKey[string, string], len(keys))
	for _, k := range keys {
		byEdge[k.Edge] = k
	}
	return tree, byEdge
}

// consecutive reports whether the members of set form one contiguous block
// in frontier.
func consecutive(frontier []string, set ...string) bool {
	want := make(map[string]bool, len(set))
	for _, s := range set {
		want[s] = true
	}
	first, last, seen := -1, -1, 0
	for i, e := range frontier {
		if want[e] {
			if first < 0 {
				first = i
			}
			last = i
			seen++
		}
	}
	return seen == len(set) && last-first+1 == len(set)
}

func TestInitialize_Empty(t *testing.T) {
	tree := NewTree[string, string]()
	if err := tree.Initialize(nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestInitialize_SingleLeaf(t *testing.T) {
	tree, _ := newTestTree(t, "a")
	if got := tree.Frontier(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("frontier = %v, want [a]", got)
	}
	if s := tree.String(); s != "a" {
		t.Errorf("String() = %q, want %q", s, "a")
	}
}

func TestInitialize_Universal(t *testing.T) {
	tree, _ := newTestTree(t, "a", "b", "c", "d")

	got := tree.Frontier()
	if len(got) != 4 {
		t.Fatalf("frontier has %d leaves, want 4", len(got))
	}
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	if !slices.Equal(sorted, []string{"a", "b", "c", "d"}) {
		t.Errorf("frontier = %v, want a permutation of [a b c d]", got)
	}
}

func TestInitialize_Reuse(t *testing.T) {
	tree, _ := newTestTree(t, "a", "b")
	if err := tree.Initialize(makeKeys("x", "y", "z")); err != nil {
		t.Fatalf("re-Initialize: %v", err)
	}
	if got := tree.Frontier(); len(got) != 3 {
		t.Errorf("frontier after re-Initialize = %v, want 3 leaves", got)
	}
}

func TestFrontier_Idempotent(t *testing.T) {
	tree, _ := newTestTree(t, "a", "b", "c")
	first := tree.Frontier()
	second := tree.Frontier()
	if !slices.Equal(first, second) {
		t.Errorf("repeated scans differ: %v vs %v", first, second)
	}
}

func TestString_PNode(t *testing.T) {
	tree, _ := newTestTree(t, "a", "b", "c")
	if s := tree.String(); s != "{a b c}" {
		t.Errorf("String() = %q, want %q", s, "{a b c}")
	}
}

func TestPermutationCount_Universal(t *testing.T) {
	tree, _ := newTestTree(t, "a", "b", "c", "d")
	if got := tree.PermutationCount(); got != 24 {
		t.Errorf("PermutationCount() = %d, want 24", got)
	}
}

func TestPermutationCount_Constrained(t *testing.T) {
	tree, byEdge := newTestTree(t, "a", "b", "c", "d")

	red, err := tree.Reduction([]*LeafKey[string, string]{byEdge["a"], byEdge["b"]})
	if err != nil {
		t.Fatalf("Reduction: %v", err)
	}
	red.Discard()

	// {a b} consecutive: {ab, ba} x 3! arrangements of the block with c, d.
	if got := tree.PermutationCount(); got != 12 {
		t.Errorf("PermutationCount() = %d, want 12", got)
	}
}

func TestDiscard_TreeStaysReducible(t *testing.T) {
	tree, byEdge := newTestTree(t, "a", "b", "c", "d", "e")

	red, err := tree.Reduction([]*LeafKey[string, string]{byEdge["a"], byEdge["b"], byEdge["c"]})
	if err != nil {
		t.Fatalf("Reduction(abc): %v", err)
	}
	red.Discard()
	red.Discard() // consumed, no-op

	red, err = tree.Reduction([]*LeafKey[string, string]{byEdge["c"], byEdge["d"]})
	if err != nil {
		t.Fatalf("Reduction(cd) after Discard: %v", err)
	}
	red.Discard()

	frontier := tree.Frontier()
	if !consecutive(frontier, "a", "b", "c") || !consecutive(frontier, "c", "d") {
		t.Errorf("frontier %v violates applied constraints", frontier)
	}
}
