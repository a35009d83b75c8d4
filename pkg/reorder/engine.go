package reorder

import (
	"context"
	"sort"
	"time"

	"github.com/crossred/crossred/pkg/dag"
	"github.com/crossred/crossred/pkg/observability"
)

// Engine is the rank reorderer (C2) and sweep controller (C3): given an
// [Arena] built from a ranked graph, it alternates top-down and bottom-up
// sweeps, proposing a barycenter-ordered permutation for each rank and
// accepting it only when it strictly reduces crossings at that rank's
// leading boundary without increasing the rank's total crossings.
//
// Engine holds no per-run state; the zero value is ready to use. A single
// Engine instance must not run concurrent [Engine.Run] calls against the
// same Arena - each Run call owns its arena's mutable slices for its
// duration.
type Engine struct {
	// MaxSweeps caps the number of directional sweeps (a down pass and an
	// up pass each count as one sweep). Zero or negative means run to
	// convergence with no external cap, matching the original algorithm.
	MaxSweeps int
}

// Stats summarizes one Engine.Run call.
type Stats struct {
	Sweeps         int
	InitialCrossings int
	FinalCrossings   int
	Duration         time.Duration
}

// Run executes the sweep loop against arena until convergence, MaxSweeps is
// reached, or ctx is cancelled. Cancellation is only checked between
// sweeps, never inside a single rank's reordering step, preserving the
// core loop's synchronous, single-threaded execution model.
func (e Engine) Run(ctx context.Context, arena *Arena) Stats {
	start := time.Now()
	initial := arena.TotalCrossings()
	observability.Sweep().OnSweepStart(ctx, arena.numRanks, totalNodes(arena), totalEdges(arena))

	ws := dag.NewCrossingWorkspace(arena.maxRankSize())

	down := true    // boolDirection: true = downward, false = upward
	sign := 1       // signDirection
	improveCounter := 2
	sweeps := 0

	for improveCounter > 0 {
		if ctx != nil {
			select {
			case <-ctx.Done():
				improveCounter = 0
				continue
			default:
			}
		}
		improveCounter--
		if e.MaxSweeps > 0 && sweeps >= e.MaxSweeps {
			break
		}
		sweeps++

		crossingOffsetNorth, crossingOffsetSouth := 0, 1
		if !down {
			crossingOffsetNorth, crossingOffsetSouth = 1, 0
		}

		firstRank, lastRank := 1, arena.numRanks-1
		if !down {
			firstRank, lastRank = arena.numRanks-2, 0
		}

		for r := firstRank; r-sign != lastRank; r += sign {
			if arena.crossings[r+crossingOffsetNorth] == 0 {
				continue
			}
			northR := r - sign
			edgesForMean, edgesSouth := directionEdges(arena, r, down)

			newOrder := proposeOrder(arena, r, northR, edgesForMean)
			changes := intervalChanges(newOrder, arena.positions[r])

			for _, ch := range changes {
				candidate := make([]int, len(arena.order[r]))
				copy(candidate, arena.order[r])
				copy(candidate[ch[0]:ch[1]+1], newOrder[ch[0]:ch[1]+1])

				result := tryNewOrder(arena, r, candidate, northR, crossingOffsetNorth, crossingOffsetSouth, sign, lastRank, edgesForMean, edgesSouth, ws, ctx)
				if result == 2 {
					improveCounter = 2
				}
			}
		}

		down = !down
		sign *= -1
	}

	stats := Stats{
		Sweeps:           sweeps,
		InitialCrossings: initial,
		FinalCrossings:   arena.TotalCrossings(),
		Duration:         time.Since(start),
	}
	observability.Sweep().OnSweepComplete(ctx, stats.Sweeps, stats.FinalCrossings, stats.Duration)
	return stats
}

// directionEdges returns (edges used to compute the barycenter mean and to
// verify the leading boundary, edges used to verify the trailing boundary)
// for the current sweep direction. Sweeping down, a rank looks north (up
// edges) for its mean and checks south (down edges) as the secondary
// boundary; sweeping up, the roles swap.
func directionEdges(a *Arena, r int, down bool) (mean, secondary [][]dag.WeightedTarget) {
	if down {
		return a.up[r], a.down[r]
	}
	return a.down[r], a.up[r]
}

// proposeOrder computes the barycenter-ordered permutation for rank r's
// nodes, using edgesForMean[n] (n a rank r local index) and the current
// positions of rank northR. Nodes with no neighbors in northR keep their
// current position as their mean, so isolated nodes do not move. The sort
// is stable so ties preserve the current order, preventing oscillation.
func proposeOrder(a *Arena, r, northR int, edgesForMean [][]dag.WeightedTarget) []int {
	numNodes := len(a.order[r])
	type scored struct {
		mean float32
		node int
	}
	means := make([]scored, numNodes)
	for pos, n := range a.order[r] {
		sum, num := 0, 0
		for _, t := range edgesForMean[n] {
			neighborPos := a.positions[northR][t.Target]
			sum += t.Weight * neighborPos
			num += t.Weight
		}
		if num > 0 {
			means[pos] = scored{mean: float32(sum) / float32(num), node: n}
		} else {
			means[pos] = scored{mean: float32(pos), node: n}
		}
	}

	sort.SliceStable(means, func(i, j int) bool { return means[i].mean < means[j].mean })

	newOrder := make([]int, numNodes)
	for pos, s := range means {
		newOrder[pos] = s.node
	}
	return newOrder
}

// intervalChanges decomposes the difference between newOrder and the
// current positions into maximal contiguous intervals where applying
// newOrder actually moves a node. Every position outside the intervals keeps
// its current node; an interval may still contain an untouched position
// (permutation[pos] == pos) that lies between moving ones. Callers can
// apply and test each interval independently instead of the whole rank at
// once.
func intervalChanges(newOrder, positions []int) [][2]int {
	numNodes := len(newOrder)
	permutation := make([]int, numNodes)
	for pos, n := range newOrder {
		permutation[pos] = positions[n]
	}

	var result [][2]int
	seqStart, seqEnd := -1, -1
	for pos := 0; pos < numNodes; pos++ {
		if permutation[pos] > pos {
			switch {
			case seqStart == -1:
				seqStart = pos
				seqEnd = permutation[pos]
			case seqEnd < pos:
				result = append(result, [2]int{seqStart, pos - 1})
				seqStart = pos
				seqEnd = permutation[pos]
			default:
				if permutation[pos] > seqEnd {
					seqEnd = permutation[pos]
				}
			}
		}
		if permutation[pos] == pos && seqStart != -1 && seqEnd < pos {
			result = append(result, [2]int{seqStart, pos - 1})
			seqStart = -1
		}
	}
	if seqStart != -1 {
		result = append(result, [2]int{seqStart, numNodes - 1})
	}
	return result
}

// tryNewOrder evaluates the candidate order for rank r and, if it strictly
// reduces the leading ("north") boundary's crossings without increasing the
// rank's total crossings, commits it to the arena. Returns 0 if rejected, 1
// if accepted with an equal total, or 2 if accepted with a strictly lower
// total (the signal the sweep controller uses to reset improveCounter).
func tryNewOrder(a *Arena, r int, candidate []int, northR, crossingOffsetNorth, crossingOffsetSouth, sign, lastRank int, edgesNorth, edgesSouth [][]dag.WeightedTarget, ws *dag.CrossingWorkspace, ctx context.Context) int {
	prevNorth := a.crossings[r+crossingOffsetNorth]
	newNorth := countRankCrossingsWS(a, northR, candidate, edgesNorth, ws)

	var prevSouth, newSouth int
	if r != lastRank {
		prevSouth = a.crossings[r+crossingOffsetSouth]
		southR := r + sign
		newSouth = dag.CountCrossingsIdx(edgesSouth, candidate, a.order[southR], ws)
	}

	fewerNorth := newNorth < prevNorth
	fewerOrEqualTotal := (newNorth + newSouth) <= (prevNorth + prevSouth)
	if !fewerNorth || !fewerOrEqualTotal {
		return 0
	}

	a.crossings[r+crossingOffsetNorth] = newNorth
	if r != lastRank {
		a.crossings[r+crossingOffsetSouth] = newSouth
	}
	a.order[r] = candidate
	for pos, n := range candidate {
		a.positions[r][n] = pos
	}

	observability.Sweep().OnRankAccepted(ctx, r, newNorth, newSouth)

	if newNorth+newSouth < prevNorth+prevSouth {
		return 2
	}
	return 1
}

func totalNodes(a *Arena) int {
	total := 0
	for _, n := range a.rankSize {
		total += n
	}
	return total
}

func totalEdges(a *Arena) int {
	total := 0
	for r := range a.down {
		for _, targets := range a.down[r] {
			total += len(targets)
		}
	}
	return total
}
