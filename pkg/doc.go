// Package pkg provides the core libraries for crossred, a bilayer
// crossing-reduction engine for Sugiyama-style hierarchical graph layout.
//
// # Overview
//
// crossred takes a layered graph - nodes grouped into horizontal ranks, edges
// only between consecutive ranks - and reorders each rank left-to-right to
// reduce the number of edge crossings between adjacent ranks. The pkg
// directory is organized into four areas:
//
//  1. Graph Data Structures ([dag])
//  2. Crossing Reduction ([reorder], [ordering])
//  3. External Interfaces ([wire], [render/dot])
//  4. Infrastructure ([cache], [store], [errors], [observability], [retry])
//
// # Architecture
//
// The typical data flow through crossred:
//
//	Ranked graph (dag.DAG) or serialized buffer (pkg/wire)
//	         ↓
//	    [dag/transform] (optional: break cycles, assign ranks)
//	         ↓
//	    [reorder] package (crossing counter + barycenter reordering)
//	         ↓
//	    Final per-rank orderings
//	         ↓
//	    [render/dot] (optional: Graphviz visualization)
//
// # Quick Start
//
// Build a ranked graph and minimize crossings:
//
//	import (
//	    "github.com/crossred/crossred/pkg/dag"
//	    "github.com/crossred/crossred/pkg/ordering"
//	)
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "a", Row: 0})
//	g.AddNode(dag.Node{ID: "b", Row: 0})
//	g.AddNode(dag.Node{ID: "x", Row: 1})
//	g.AddNode(dag.Node{ID: "y", Row: 1})
//	g.AddEdge(dag.Edge{From: "a", To: "y"})
//	g.AddEdge(dag.Edge{From: "b", To: "x"})
//
//	order := ordering.Barycentric{}.OrderRows(g)
//	crossings := dag.CountCrossings(g, order)
//
// # Main Packages
//
// ## Graph Data Structures
//
// [dag] - Directed acyclic graph optimized for row-based layered layouts.
// Nodes are organized into horizontal rows with edges connecting consecutive
// rows. Implements the weighted Barth-Jünger-Mutzel accumulator-tree
// crossing counter.
//
// [dag/transform] - Upstream collaborators for callers with an un-ranked
// graph: cycle breaking and longest-path layer assignment, both run before
// [reorder] ever sees the graph.
//
// [dag/perm] - Permutation generation (Heap's algorithm), used to exhaustively
// verify the crossing counter against a brute-force reference.
//
// ## Crossing Reduction
//
// [reorder] - The core engine: [reorder.Arena] holds the flat, index-addressed
// per-rank state; [reorder.Engine] runs the barycenter-proposal, alternating
// top-down/bottom-up sweep loop to convergence.
//
// [ordering] - A stable public facade ([ordering.Orderer], [ordering.ContextOrderer],
// [ordering.Quality]) wrapping [reorder] for callers who don't need the arena
// directly.
//
// ## External Interfaces
//
// [wire] - The serialized integer buffer format used to carry a ranked graph
// and its ordering result across process boundaries, plus the standalone
// text-file harness.
//
// [render/dot] - Renders a ranked graph to Graphviz DOT/SVG, highlighting
// edges that participate in a crossing.
//
// ## Infrastructure
//
// [cache] - Memoizes reorder results by graph content hash. File and Redis
// backends.
//
// [store] - Persists ordering run history. In-memory and MongoDB backends.
//
// [errors] - Structured, coded errors shared by the CLI and the HTTP API.
//
// [observability] - Hook registry for sweep/cache/HTTP instrumentation.
//
// [retry] - Exponential-backoff retry helper for the cache and store backends.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/dag/...                 # Specific package
//	go test -run Example ./...            # Examples only
//
// [dag]: https://pkg.go.dev/github.com/crossred/crossred/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/crossred/crossred/pkg/dag/transform
// [dag/perm]: https://pkg.go.dev/github.com/crossred/crossred/pkg/dag/perm
// [reorder]: https://pkg.go.dev/github.com/crossred/crossred/pkg/reorder
// [ordering]: https://pkg.go.dev/github.com/crossred/crossred/pkg/ordering
// [wire]: https://pkg.go.dev/github.com/crossred/crossred/pkg/wire
// [render/dot]: https://pkg.go.dev/github.com/crossred/crossred/pkg/render/dot
// [cache]: https://pkg.go.dev/github.com/crossred/crossred/pkg/cache
// [store]: https://pkg.go.dev/github.com/crossred/crossred/pkg/store
// [errors]: https://pkg.go.dev/github.com/crossred/crossred/pkg/errors
// [observability]: https://pkg.go.dev/github.com/crossred/crossred/pkg/observability
// [retry]: https://pkg.go.dev/github.com/crossred/crossred/pkg/retry
package pkg
