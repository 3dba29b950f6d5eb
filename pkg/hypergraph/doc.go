// Package hypergraph provides a finite hypergraph container: nodes connected
// by hyperedges of arbitrary cardinality.
//
// Hyperedges always span at least two distinct nodes. Deleting a node removes
// it from every incident hyperedge, cascading to hyperedges that would become
// degenerate. [Hypergraph.Validate] checks the incidence structure end to
// end.
//
// [ReadBench] parses logic circuits in the BENCH benchmark format, turning
// each gate into a hyperedge over its output and input signals.
package hypergraph
