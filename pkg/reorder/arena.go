// Package reorder implements the rank reorderer and sweep controller that sit
// above [dag]'s weighted bilayer crossing counter: given a ranked graph, it
// iteratively permutes each rank's node order to reduce the total number of
// crossings between adjacent ranks.
//
// # Arena
//
// [Arena] is the flat, index-addressed working set the sweep controller
// operates on. Node identity within the arena is rank-local: a node is a
// (rank, local index) pair, not a global integer or a string ID (the
// external buffer format of the wire package uses global integer node IDs).
// This lets every per-rank slice - order, positions, edge lists - be sized to exactly that
// rank's width, with no sparse global arrays.
//
// [BuildArena] constructs an Arena from a [dag.DAG] whose nodes already carry
// row assignments (see the transform package), and [Arena.Order] converts
// the arena's final rank-local orders back into the original string node IDs.
package reorder

import (
	"github.com/crossred/crossred/pkg/dag"
)

// Arena is the scratch working set for reordering runs. [BuildArena]
// allocates it; [Engine.Run] updates positions and crossings in place and
// replaces a rank's order slice with a newly allocated candidate each time it
// accepts one. Each rank visit of the sweep loop also allocates its
// barycenter proposal and interval list.
type Arena struct {
	numRanks int
	rankSize []int

	order     [][]int // order[r][pos] = local node index
	positions [][]int // positions[r][localIdx] = pos in order[r]

	// up[r][localIdx] lists the rank r-1 neighbors of node localIdx in rank r.
	// down[r][localIdx] lists the rank r+1 neighbors of node localIdx in rank r.
	up   [][][]dag.WeightedTarget
	down [][][]dag.WeightedTarget

	crossings []int // crossings[r] = weighted crossings between rank r-1 and rank r; crossings[0] == 0

	ids [][]string // ids[r][localIdx] = original dag.Node ID, for translating back
}

// NumRanks returns the number of ranks in the arena.
func (a *Arena) NumRanks() int { return a.numRanks }

// RankSize returns the number of nodes in rank r.
func (a *Arena) RankSize(r int) int { return a.rankSize[r] }

// TotalCrossings returns the sum of crossings across all rank boundaries.
func (a *Arena) TotalCrossings() int {
	total := 0
	for _, c := range a.crossings {
		total += c
	}
	return total
}

// Order returns the current node ordering for every rank, translated back to
// the original string node IDs. The returned map is safe to keep after the
// arena is discarded.
func (a *Arena) Order() map[int][]string {
	result := make(map[int][]string, a.numRanks)
	for r := 0; r < a.numRanks; r++ {
		row := make([]string, len(a.order[r]))
		for pos, localIdx := range a.order[r] {
			row[pos] = a.ids[r][localIdx]
		}
		result[r] = row
	}
	return result
}

// maxRankSize returns the width of the widest rank, used to size the
// accumulator tree workspace shared across the whole sweep.
func (a *Arena) maxRankSize() int {
	max := 0
	for _, n := range a.rankSize {
		if n > max {
			max = n
		}
	}
	return max
}

// BuildArena converts a ranked [dag.DAG] into an [Arena]. Nodes are grouped
// by [dag.Node.Row] and assigned a stable rank-local index in the order
// returned by [dag.DAG.NodesInRow] (insertion order), which becomes the
// initial permutation for every rank. Callers that must start from a
// specific initial order - the wire package's buffer decoder, for one -
// get it by adding nodes to the DAG in that order; BuildArena never
// reorders them on its own.
//
// BuildArena assumes g has already been validated ([dag.DAG.Validate]) and
// ranked (e.g. via transform.AssignLayers); it does not itself check for
// cycles or non-consecutive rows.
func BuildArena(g *dag.DAG) *Arena {
	rowIDs := g.RowIDs()
	numRanks := 0
	if len(rowIDs) > 0 {
		numRanks = rowIDs[len(rowIDs)-1] + 1
	}

	a := &Arena{
		numRanks:  numRanks,
		rankSize:  make([]int, numRanks),
		order:     make([][]int, numRanks),
		positions: make([][]int, numRanks),
		up:        make([][][]dag.WeightedTarget, numRanks),
		down:      make([][][]dag.WeightedTarget, numRanks),
		crossings: make([]int, numRanks),
		ids:       make([][]string, numRanks),
	}

	localIndex := make(map[string]int, g.NodeCount())
	for r := 0; r < numRanks; r++ {
		nodes := g.NodesInRow(r)
		ids := dag.NodeIDs(nodes) // preserves insertion order, i.e. the caller's initial order
		a.rankSize[r] = len(ids)
		a.ids[r] = ids
		a.order[r] = make([]int, len(ids))
		a.positions[r] = make([]int, len(ids))
		a.up[r] = make([][]dag.WeightedTarget, len(ids))
		a.down[r] = make([][]dag.WeightedTarget, len(ids))
		for i, id := range ids {
			localIndex[id] = i
			a.order[r][i] = i
			a.positions[r][i] = i
		}
	}

	for _, e := range g.Edges() {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)
		if src == nil || dst == nil {
			continue
		}
		fromIdx := localIndex[e.From]
		toIdx := localIndex[e.To]
		weight := e.Weight
		if weight == 0 {
			weight = 1
		}
		a.down[src.Row][fromIdx] = append(a.down[src.Row][fromIdx], dag.WeightedTarget{Target: toIdx, Weight: weight})
		a.up[dst.Row][toIdx] = append(a.up[dst.Row][toIdx], dag.WeightedTarget{Target: fromIdx, Weight: weight})
	}

	a.crossings[0] = 0
	ws := dag.NewCrossingWorkspace(a.maxRankSize())
	for r := 1; r < numRanks; r++ {
		a.crossings[r] = countRankCrossingsWS(a, r-1, a.order[r], a.up[r], ws)
	}

	return a
}

// countRankCrossingsWS computes the weighted crossing count between rank
// northR and the candidate order of the rank being proposed, using that
// rank's north-neighbor edges (edgesNorth) and northR's current positions.
// northR is r-1 on a down sweep and r+1 on an up sweep; callers must pass
// the sweep-direction-aware value, not assume r-1.
func countRankCrossingsWS(a *Arena, northR int, candidateOrder []int, edgesNorth [][]dag.WeightedTarget, ws *dag.CrossingWorkspace) int {
	return dag.CountCrossingsIdx(edgesNorth, candidateOrder, a.order[northR], ws)
}
