package pq

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPlanar is returned by [Tree.Reduction] when no template in the
	// catalogue matches a node's child-status configuration. The reduction
	// set cannot be made consecutive, which means the graph under test is
	// not planar at this step. The tree is left structurally consistent but
	// should be discarded by the caller; no repair is possible.
	ErrNonPlanar = errors.New("reduction set cannot be made consecutive")

	// ErrInvalidInput is returned by [Tree.Initialize] and [Tree.Reduction]
	// when the key set is empty. At least one leaf key is required.
	ErrInvalidInput = errors.New("at least one leaf key required")
)

// assertf panics with a formatted message when cond is false. Broken engine
// invariants (not properties of the input graph) are surfaced this way: they
// indicate a bug in the engine or its driver and must fail loudly rather
// than be silently recovered.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("pq: "+format, args...))
	}
}
