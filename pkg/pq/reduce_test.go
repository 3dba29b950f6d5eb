package pq

import (
	"errors"
	"slices"
	"testing"
)

// reduceReplace runs one reduce/replace pair, failing the test if the
// reduction is rejected.
func reduceReplace(t *testing.T, tree *Tree[string, string], byEdge map[string]*LeafKey[string, string],
	pertinent []string, replacement []string, vertex string) ReplaceResult[string, string] {
	t.Helper()

	keys := make([]*LeafKey[string, string], len(pertinent))
	for i, e := range pertinent {
		keys[i] = byEdge[e]
	}
	red, err := tree.Reduction(keys)
	if err != nil {
		t.Fatalf("Reduction(%v): %v", pertinent, err)
	}

	repl := makeKeys(replacement...)
	for _, k := range repl {
		byEdge[k.Edge] = k
	}
	return tree.ReplaceRoot(red, repl, vertex)
}

func sortedClone(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}

func TestReduction_EmptyKeys(t *testing.T) {
	tree, _ := newTestTree(t, "a", "b")
	if _, err := tree.Reduction(nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReduction_SingleLeaf(t *testing.T) {
	tree, byEdge := newTestTree(t, "a", "b", "c")

	res := reduceReplace(t, tree, byEdge, []string{"c"}, []string{"x", "y"}, "v")
	if !slices.Equal(sortedClone(res.Frontier), []string{"c"}) {
		t.Errorf("collapsed frontier = %v, want [c]", res.Frontier)
	}

	got := tree.Frontier()
	if !slices.Equal(sortedClone(got), []string{"a", "b", "x", "y"}) {
		t.Fatalf("frontier = %v, want a permutation of [a b x y]", got)
	}
	if !consecutive(got, "x", "y") {
		t.Errorf("replacement leaves not consecutive in %v", got)
	}
}

func TestReduction_SubsetBecomesConsecutive(t *testing.T) {
	tree, byEdge := newTestTree(t, "a", "b", "c", "d", "e")

	res := reduceReplace(t, tree, byEdge, []string{"b", "c", "d"}, []string{"x"}, "v")
	if !slices.Equal(sortedClone(res.Frontier), []string{"b", "c", "d"}) {
		t.Errorf("collapsed frontier = %v, want {b c d}", res.Frontier)
	}
	if len(res.Opposed)+len(res.NonOpposed) != 0 {
		t.Errorf("unexpected indicators: opposed=%v nonOpposed=%v", res.Opposed, res.NonOpposed)
	}

	got := tree.Frontier()
	if !slices.Equal(sortedClone(got), []string{"a", "e", "x"}) {
		t.Errorf("frontier = %v, want a permutation of [a e x]", got)
	}
}

// Chained reductions force the P3/P4 templates and build a Q-node whose
// order constrains later reductions.
func TestReduction_ChainedConstraints(t *testing.T) {
	tree, byEdge := newTestTree(t, "a", "b", "c", "d", "e")

	reduceReplace(t, tree, byEdge, []string{"a", "b"}, []string{"u", "w"}, "v1")
	if got := tree.Frontier(); !consecutive(got, "u", "w") {
		t.Fatalf("{u w} not consecutive in %v", got)
	}

	res := reduceReplace(t, tree, byEdge, []string{"u", "c"}, []string{"m", "n"}, "v2")
	if !slices.Equal(sortedClone(res.Frontier), []string{"c", "u"}) {
		t.Errorf("collapsed frontier = %v, want {c u}", res.Frontier)
	}

	got := tree.Frontier()
	if !slices.Equal(sortedClone(got), []string{"d", "e", "m", "n", "w"}) {
		t.Fatalf("frontier = %v, want a permutation of [d e m n w]", got)
	}
	// The replacement hangs inside a Q-node next to w.
	if !consecutive(got, "m", "n") || !consecutive(got, "w", "m", "n") {
		t.Errorf("Q-node order violated in %v", got)
	}
}

// buildQTree reduces a universal tree down to a Q-node with client order
// [w n z] (plus a direction indicator) and a free sibling e. Used by the
// ordering tests below.
func buildQTree(t *testing.T) (*Tree[string, string], map[string]*LeafKey[string, string], ReplaceResult[string, string]) {
	t.Helper()
	tree, byEdge := newTestTree(t, "a", "b", "c", "d", "e")

	reduceReplace(t, tree, byEdge, []string{"a", "b"}, []string{"u", "w"}, "v1")
	reduceReplace(t, tree, byEdge, []string{"u", "c"}, []string{"m", "n"}, "v2")
	res := reduceReplace(t, tree, byEdge, []string{"m", "d"}, []string{"z"}, "v3")

	got := tree.Frontier()
	if !slices.Equal(sortedClone(got), []string{"e", "n", "w", "z"}) {
		t.Fatalf("frontier = %v, want a permutation of [e n w z]", got)
	}
	if !consecutive(got, "w", "n") || !consecutive(got, "n", "z") {
		t.Fatalf("expected Q order [w n z], got frontier %v", got)
	}
	return tree, byEdge, res
}

func TestReduction_ConsumesIndicator(t *testing.T) {
	_, _, res := buildQTree(t)

	reported := append(sortedClone(res.Opposed), res.NonOpposed...)
	slices.Sort(reported)
	if !slices.Equal(reported, []string{"v2"}) {
		t.Errorf("consumed indicators = %v, want [v2]", reported)
	}
}

func TestReduction_QOrderViolation(t *testing.T) {
	tree, byEdge, _ := buildQTree(t)

	// w and z sit at opposite ends of the Q-node with n between them.
	keys := []*LeafKey[string, string]{byEdge["w"], byEdge["z"]}
	if _, err := tree.Reduction(keys); !errors.Is(err, ErrNonPlanar) {
		t.Fatalf("expected ErrNonPlanar, got %v", err)
	}

	// The failed reduction must leave the tree scannable and its labels
	// reset, so a valid reduction still goes through.
	got := tree.Frontier()
	if !slices.Equal(sortedClone(got), []string{"e", "n", "w", "z"}) {
		t.Fatalf("frontier after failed reduction = %v", got)
	}
	reduceReplace(t, tree, byEdge, []string{"w", "n"}, []string{"y"}, "v4")
}

func TestReduction_QOrderRespected(t *testing.T) {
	tree, byEdge, _ := buildQTree(t)

	res := reduceReplace(t, tree, byEdge, []string{"w", "n"}, []string{"y"}, "v4")
	if !slices.Equal(sortedClone(res.Frontier), []string{"n", "w"}) {
		t.Errorf("collapsed frontier = %v, want {n w}", res.Frontier)
	}

	got := tree.Frontier()
	if !slices.Equal(sortedClone(got), []string{"e", "y", "z"}) {
		t.Fatalf("frontier = %v, want a permutation of [e y z]", got)
	}
	if !consecutive(got, "y", "z") {
		t.Errorf("{y z} not consecutive in %v", got)
	}
}

// A Q-node pertinent root admits a partial child at each end of its full
// run. Both merge into the chain and the pertinent leaves stay consecutive.
func TestReduction_PartialsFlankFullRun(t *testing.T) {
	tree, byEdge := newTestTree(t, "a", "b", "c", "d", "e", "f")

	constrain := func(labels ...string) {
		t.Helper()
		keys := make([]*LeafKey[string, string], len(labels))
		for i, l := range labels {
			keys[i] = byEdge[l]
		}
		red, err := tree.Reduction(keys)
		if err != nil {
			t.Fatalf("Reduction(%v): %v", labels, err)
		}
		red.Discard()
	}

	// Three constraints collapse the root into a Q-node whose chain reads
	// [{a b} c d {e f}] up to reversal.
	constrain("a", "b", "c")
	constrain("d", "e", "f")
	constrain("c", "d")

	// b and e turn the end P-nodes partial; c and d are the full run between
	// them. Before replacement the pertinent root is the Q-node itself.
	res := reduceReplace(t, tree, byEdge, []string{"b", "c", "d", "e"}, []string{"x"}, "v1")
	if !slices.Equal(sortedClone(res.Frontier), []string{"b", "c", "d", "e"}) {
		t.Errorf("collapsed frontier = %v, want {b c d e}", res.Frontier)
	}

	got := tree.Frontier()
	if !slices.Equal(sortedClone(got), []string{"a", "f", "x"}) {
		t.Fatalf("frontier = %v, want a permutation of [a f x]", got)
	}
	// The replacement sits between the two empty remainders.
	if !consecutive(got, "a", "x") || !consecutive(got, "x", "f") {
		t.Errorf("replacement not between the remainders in %v", got)
	}
}

// Below the pertinent root a Q-node still rejects a second partial child:
// the run could never be gathered at one end for the parent.
func TestReduction_TwoPartialsBelowRoot(t *testing.T) {
	tree, byEdge := newTestTree(t, "a", "b", "c", "d", "e", "f", "g")

	for _, labels := range [][]string{
		{"a", "b", "c"},
		{"d", "e", "f"},
		{"c", "d"},
	} {
		keys := make([]*LeafKey[string, string], len(labels))
		for i, l := range labels {
			keys[i] = byEdge[l]
		}
		red, err := tree.Reduction(keys)
		if err != nil {
			t.Fatalf("Reduction(%v): %v", labels, err)
		}
		red.Discard()
	}

	// g lives outside the Q-node, so the Q-node is not the pertinent root
	// and its flanking partials are fatal.
	keys := []*LeafKey[string, string]{byEdge["b"], byEdge["c"], byEdge["d"], byEdge["e"], byEdge["g"]}
	if _, err := tree.Reduction(keys); !errors.Is(err, ErrNonPlanar) {
		t.Fatalf("expected ErrNonPlanar, got %v", err)
	}
}

func TestReduction_AdjacentInQ(t *testing.T) {
	tree, byEdge, _ := buildQTree(t)

	// n and z are adjacent in the Q-node.
	reduceReplace(t, tree, byEdge, []string{"n", "z"}, []string{"p"}, "v4")
	got := tree.Frontier()
	if !slices.Equal(sortedClone(got), []string{"e", "p", "w"}) {
		t.Fatalf("frontier = %v, want a permutation of [e p w]", got)
	}
}
