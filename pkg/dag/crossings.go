package dag

import (
	"maps"
	"slices"
)

// CrossingWorkspace provides reusable buffers for weighted crossing counting to
// avoid repeated allocations. Create with [NewCrossingWorkspace] and reuse
// across many calls to [CountCrossingsIdx] from within a single reordering run.
//
// The workspace is not safe for concurrent use - each goroutine should have its own.
type CrossingWorkspace struct {
	tree []int // accumulator tree over the lower row's positions
	pos  []int // position lookup buffer, indexed by original lower-row index
}

// NewCrossingWorkspace creates a workspace for counting crossings efficiently.
// The maxWidth parameter should be the maximum number of nodes in any single row
// across all calls that will use this workspace. Using a workspace smaller than
// needed will cause CountCrossingsIdx to produce incorrect results.
//
// For typical use, set maxWidth to the size of the largest row in your graph:
//
//	maxWidth := 0
//	for _, row := range g.RowIDs() {
//	    if n := len(g.NodesInRow(row)); n > maxWidth {
//	        maxWidth = n
//	    }
//	}
//	ws := dag.NewCrossingWorkspace(maxWidth)
func NewCrossingWorkspace(maxWidth int) *CrossingWorkspace {
	return &CrossingWorkspace{
		tree: make([]int, accumulatorTreeSize(maxWidth)),
		pos:  make([]int, maxWidth+1),
	}
}

// accumulatorTreeSize returns the size of the complete binary accumulator
// tree needed to address numLeaves leaf positions: the smallest power of two
// K with K >= numLeaves, doubled minus one for the internal nodes above it.
// A zero-width row still gets a single-node tree.
func accumulatorTreeSize(numLeaves int) int {
	firstIndex := 1
	for firstIndex < numLeaves {
		firstIndex *= 2
	}
	return 2*firstIndex - 1
}

// CountCrossings returns the total number of weighted edge crossings for the
// given row orderings. It sums the crossings between each pair of consecutive
// rows. The orders map should contain node IDs in left-to-right order for
// each row. Rows without entries in the map are treated as empty.
//
// Example:
//
//	orders := map[int][]string{
//	    0: {"app", "cli"},           // row 0: app on left, cli on right
//	    1: {"lib1", "lib2", "lib3"}, // row 1: three nodes
//	}
//	crossings := dag.CountCrossings(g, orders)
func CountCrossings(g *DAG, orders map[int][]string) int {
	rows := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for i := 0; i < len(rows)-1; i++ {
		r := rows[i]
		crossings += CountLayerCrossings(g, orders[r], orders[r+1])
	}
	return crossings
}

// CountLayerCrossings counts weighted edge crossings between two adjacent
// rows using the Barth-Jünger-Mutzel accumulator tree, the bilayer
// cross-counting method described in their 2002 Graph Drawing paper. Two
// edges (u1,v1) and (u2,v2) of weights w1, w2 cross if and only if
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// and contribute w1*w2 to the total. Unweighted edges (Edge.Weight == 0,
// normalized to 1 by [DAG.AddEdge]) reduce to plain inversion counting.
//
// Returns 0 if either row is empty or nil, as no crossings can exist without edges.
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)

	type edge struct {
		upper, lower, weight int
	}
	edges := make([]edge, 0, len(upper)*2)
	for i, nodeID := range upper {
		children := g.Children(nodeID)
		weights := g.ChildWeights(nodeID)
		for j, child := range children {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos, weights[j]})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	// Sort edges by source position, then by target position - the sorted
	// order the accumulator tree walk assumes.
	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	tree := make([]int, accumulatorTreeSize(len(lower)))
	firstLeaf := (len(tree)+1)/2 - 1
	crossings := 0
	for _, e := range edges {
		index := e.lower + firstLeaf
		tree[index] += e.weight
		weightSum := 0
		for index > 0 {
			if index%2 == 1 {
				weightSum += tree[index+1]
			}
			index = (index - 1) / 2
			tree[index] += e.weight
		}
		crossings += e.weight * weightSum
	}
	return crossings
}

// CountCrossingsIdx counts weighted crossings using index-based edges and
// permutations. This is an optimized version for the sweep controller's
// inner loop that avoids string lookups by using integer indices throughout
// and a caller-provided workspace to avoid per-call allocation.
//
// The edges parameter should be a slice where edges[i] contains the
// (target index into the lower row, weight) pairs for all children of upper
// row node i. The upperPerm and lowerPerm parameters are permutations
// (orderings) of node indices. The ws parameter must be a workspace created
// with [NewCrossingWorkspace] with maxWidth >= len(lowerPerm).
//
// Performance: O(E log V) where E is the total number of edges and V is len(lowerPerm).
func CountCrossingsIdx(edges [][]WeightedTarget, upperPerm, lowerPerm []int, ws *CrossingWorkspace) int {
	if len(upperPerm) == 0 || len(lowerPerm) == 0 {
		return 0
	}

	for pos, origIdx := range lowerPerm {
		ws.pos[origIdx] = pos
	}

	treeSize := accumulatorTreeSize(len(lowerPerm))
	for i := range treeSize {
		ws.tree[i] = 0
	}
	firstLeaf := (treeSize+1)/2 - 1

	crossings := 0
	for _, upperIdx := range upperPerm {
		// Query all of this node's edges before inserting any of them, so
		// edges sharing upperIdx never count as crossing each other whatever
		// order edges[upperIdx] lists them in.
		for _, t := range edges[upperIdx] {
			index := ws.pos[t.Target] + firstLeaf
			weightSum := 0
			for index > 0 {
				if index%2 == 1 {
					weightSum += ws.tree[index+1]
				}
				index = (index - 1) / 2
			}
			crossings += t.Weight * weightSum
		}
		for _, t := range edges[upperIdx] {
			index := ws.pos[t.Target] + firstLeaf
			ws.tree[index] += t.Weight
			for index > 0 {
				index = (index - 1) / 2
				ws.tree[index] += t.Weight
			}
		}
	}
	return crossings
}

// WeightedTarget pairs a lower-row target index with the weight of the edge
// reaching it, as consumed by [CountCrossingsIdx].
type WeightedTarget struct {
	Target int
	Weight int
}

// CountPairCrossings counts the weighted crossings between the edges of two
// nodes in the same row when left is placed before right. If useParents is
// true, considers edges to the row above; otherwise, considers edges to the
// row below.
//
// This is used by local search heuristics (e.g., adjacent node swapping) to
// decide whether a swap would reduce crossings. The adjOrder slice should
// contain the node IDs of the adjacent row in left-to-right order.
//
// Returns 0 if either node has no edges to the adjacent row, or if no crossings
// would occur. This function does not modify the graph.
func CountPairCrossings(g *DAG, left, right string, adjOrder []string, useParents bool) int {
	return CountPairCrossingsWithPos(g, left, right, PosMap(adjOrder), useParents)
}

// CountPairCrossingsWithPos is like [CountPairCrossings] but takes a precomputed
// position map for the adjacent row. This avoids repeated calls to [PosMap] when
// checking multiple swaps against the same adjacent row.
//
// The adjPos map should map node IDs to their positions (0-indexed) in the
// adjacent row. Nodes not in the map are ignored.
func CountPairCrossingsWithPos(g *DAG, left, right string, adjPos map[string]int, useParents bool) int {
	var lnbr, rnbr []string
	var lw, rw []int
	if useParents {
		lnbr, rnbr = g.Parents(left), g.Parents(right)
		lw, rw = g.ParentWeights(left), g.ParentWeights(right)
	} else {
		lnbr, rnbr = g.Children(left), g.Children(right)
		lw, rw = g.ChildWeights(left), g.ChildWeights(right)
	}

	crossings := 0
	for i, ln := range lnbr {
		lp, ok := adjPos[ln]
		if !ok {
			continue
		}
		for j, rn := range rnbr {
			// If left's neighbor is to the right of right's neighbor, they cross.
			if rp, ok := adjPos[rn]; ok && lp > rp {
				crossings += lw[i] * rw[j]
			}
		}
	}
	return crossings
}
