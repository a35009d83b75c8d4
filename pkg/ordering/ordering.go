// Package ordering is the public facade over [reorder]: a stable,
// dependency-light interface for callers that want "give me a good row
// ordering" without touching the arena/engine machinery directly.
package ordering

import (
	"context"
	"time"

	"github.com/crossred/crossred/pkg/dag"
	"github.com/crossred/crossred/pkg/dag/transform"
	"github.com/crossred/crossred/pkg/reorder"
)

// Quality is a coarse dial callers can use to trade ordering effort for
// speed. It maps onto a sweep-count/wall-clock budget, not onto an
// optimal/branch-and-bound search - this engine never searches exhaustively.
type Quality int

const (
	// QualityFast caps the engine to a small, fixed number of sweeps.
	QualityFast Quality = iota
	// QualityBalanced runs to convergence; [DefaultTimeoutBalanced] is the
	// deadline suggested for it. No timeout is applied by this package.
	QualityBalanced
	// QualityOptimal runs to convergence; [DefaultTimeoutOptimal] is the
	// deadline suggested for it. No timeout is applied by this package.
	QualityOptimal
)

// Default timeouts for [ContextOrderer] implementations keyed by [Quality].
const (
	DefaultTimeoutFast     = 50 * time.Millisecond
	DefaultTimeoutBalanced = 2 * time.Second
	DefaultTimeoutOptimal  = 30 * time.Second
)

// Orderer computes a left-to-right node ordering for every rank of g.
type Orderer interface {
	OrderRows(g *dag.DAG) map[int][]string
}

// ContextOrderer is an [Orderer] that additionally accepts a context for
// cancellation or deadline propagation.
type ContextOrderer interface {
	Orderer
	OrderRowsContext(ctx context.Context, g *dag.DAG) map[int][]string
}

// Barycentric is the [Orderer]/[ContextOrderer] backed by [reorder.Engine]:
// the weighted barycenter heuristic with interval-decomposed, conditionally
// accepted proposals, swept alternately top-down and bottom-up until
// convergence.
//
// The zero value runs to convergence with no sweep cap, equivalent to
// [QualityOptimal].
type Barycentric struct {
	// Passes caps the number of directional sweeps. Zero means run to
	// convergence.
	Passes int
}

// NewBarycentric builds a [Barycentric] orderer calibrated to q. QualityFast
// bounds the sweep count; QualityBalanced and QualityOptimal both run to
// convergence and differ only in the timeout a caller applies via
// [Barycentric.OrderRowsContext] (see [DefaultTimeoutBalanced], [DefaultTimeoutOptimal]).
func NewBarycentric(q Quality) Barycentric {
	if q == QualityFast {
		return Barycentric{Passes: 4}
	}
	return Barycentric{}
}

// OrderRows runs the engine to convergence (or to Passes sweeps) and returns
// the final per-rank orderings, keyed by rank index.
func (b Barycentric) OrderRows(g *dag.DAG) map[int][]string {
	return b.OrderRowsContext(context.Background(), g)
}

// OrderRowsContext is like [Barycentric.OrderRows] but allows the caller to
// bound execution with ctx. Cancellation is observed between sweeps only.
func (b Barycentric) OrderRowsContext(ctx context.Context, g *dag.DAG) map[int][]string {
	arena := reorder.BuildArena(g)
	engine := reorder.Engine{MaxSweeps: b.Passes}
	engine.Run(ctx, arena)
	return arena.Order()
}

var (
	_ Orderer        = Barycentric{}
	_ ContextOrderer = Barycentric{}
)

// AssignRanks prepares an unranked graph for ordering: it breaks any cycles
// (edges that would otherwise keep a node from ever reaching zero in-degree)
// and assigns every node a row via longest-path layering, overwriting any
// existing row assignments. Callers that already know their graph's ranks -
// the wire package's buffer decoder, for one - should skip this and set Row
// directly on each [dag.Node].
//
// Returns the number of edges removed to break cycles.
func AssignRanks(g *dag.DAG) int {
	removed := transform.BreakCycles(g)
	transform.AssignLayers(g)
	return removed
}
