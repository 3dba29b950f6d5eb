package pq

// LeafKey binds a tree leaf to an external identity, typically a graph edge
// incident to the vertex currently being embedded. The engine never reads or
// writes Edge; it only uses the key to locate the current leaf during a
// reduction and to rebind the key when a collapsed unit is replaced by fresh
// leaves.
//
// A key may be handed to [Tree.Initialize] or [Tree.ReplaceRoot] exactly once
// at a time: the tree it is bound to owns the corresponding leaf. Passing the
// same key to a second tree without releasing the first corrupts both.
type LeafKey[E, V any] struct {
	// Edge is the external identity carried by this key. Opaque to the engine.
	Edge E

	leaf *node[E, V] // current leaf bound to this key, nil before Initialize
}

// NewLeafKey creates an unbound leaf key carrying the given edge identity.
func NewLeafKey[E, V any](edge E) *LeafKey[E, V] {
	return &LeafKey[E, V]{Edge: edge}
}

// IndicatorInfo is the auxiliary payload of a direction indicator pseudo-node.
// An indicator marks "the run of leaves collapsed for vertex Vertex was
// scanned start-to-end in the orientation current at creation time". When a
// later frontier scan traverses the indicator opposite to that orientation,
// ChangeDir is set and the indicator is reported in the opposed bucket of
// [ReplaceResult], telling the caller to reverse the corresponding sequence.
type IndicatorInfo[V any] struct {
	// Vertex is the vertex whose collapsed edge sequence this indicator guards.
	Vertex V

	// ChangeDir reports whether the indicator was traversed opposite to its
	// creation-time orientation. Set exactly once, by the frontier scan that
	// consumes the indicator.
	ChangeDir bool
}
