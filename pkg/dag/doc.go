// Package dag provides a directed acyclic graph optimized for row-based
// layered layouts, plus the weighted bilayer crossing counter that sits at
// the core of Sugiyama-style ordering.
//
// # Overview
//
// This package is the graph store for a layered-graph crossing-reduction
// engine: nodes are organized into horizontal rows (ranks), and edges only
// connect nodes in consecutive rows. The row-based constraint is what makes
// efficient bilayer crossing counting possible.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Nodes must have unique IDs, and edges can only connect
// existing nodes in consecutive rows (From.Row+1 == To.Row):
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "app", Row: 0})
//	g.AddNode(dag.Node{ID: "lib", Row: 1})
//	g.AddEdge(dag.Edge{From: "app", To: "lib", Weight: 1})
//
// Query the graph structure with [DAG.Children], [DAG.Parents], [DAG.NodesInRow],
// and related methods. Use [DAG.Validate] to verify structural integrity before
// running the reordering engine.
//
// # Node Types
//
// The package carries three node kinds inherited from the wider layout
// pipeline, though only [NodeKindRegular] participates in crossing
// reduction:
//
//   - [NodeKindRegular]: Original graph vertices
//   - [NodeKindSubdivider]: Synthetic nodes that break long edges into segments
//   - [NodeKindAuxiliary]: Helper nodes inserted by upstream layout stages
//
// # Edge Weights and Crossings
//
// Every [Edge] carries a positive integer [Edge.Weight] ([DAG.AddEdge]
// normalizes an unset weight to 1). [CountCrossings] and
// [CountLayerCrossings] count weighted crossings between adjacent rows using
// the Barth-Jünger-Mutzel accumulator tree: two crossing edges of weight w1
// and w2 contribute w1*w2 to the total, in O(E log V) time. [CountCrossingsIdx]
// is the allocation-free, index-addressed variant used by the reordering
// engine's hot loop, reusing a [CrossingWorkspace] across an entire sweep.
//
// # Metadata
//
// Both nodes and the graph itself support arbitrary metadata via [Metadata] maps.
// Metadata maps are never nil after creation - empty maps are automatically
// initialized.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize access
// if multiple goroutines read or modify the same graph. Immutable operations like
// counting crossings on a read-only graph can safely run in parallel across
// different goroutines, provided each uses its own [CrossingWorkspace].
//
// # Related Packages
//
// The [transform] subpackage provides the upstream collaborator stages that
// prepare an arbitrary DAG for reordering: cycle breaking and longest-path
// layer assignment.
//
// The [perm] subpackage provides permutation generation used by tests that
// compare the crossing counter against a naive brute-force reference.
//
// [transform]: github.com/crossred/crossred/pkg/dag/transform
// [perm]: github.com/crossred/crossred/pkg/dag/perm
package dag
