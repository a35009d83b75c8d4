// Package wire implements the serialized integer buffer format used to carry
// a ranked graph and its ordering result across the library's external
// interface, plus the standalone text harness built on top of it.
//
// This is deliberately an external collaborator, not part of the core
// algorithm: [Reorder] only translates the buffer into a [dag.DAG], delegates
// to [reorder.Engine], and translates the result back.
package wire

import (
	"context"
	"strconv"

	"github.com/crossred/crossred/pkg/dag"
	crosserrors "github.com/crossred/crossred/pkg/errors"
	"github.com/crossred/crossred/pkg/reorder"
)

// Edge is one weighted edge entering a rank, as laid out in the input
// buffer: From is a node ID in the preceding rank, To is a node ID in the
// current rank.
type Edge struct {
	From, To, Weight int32
}

// Decoded is the structured form of an input buffer.
type Decoded struct {
	NumRanks int
	// RankNodes[r] lists the node IDs of rank r, in their given initial order.
	RankNodes [][]int32
	// RankEdges[r] lists the edges entering rank r (empty for r == 0).
	RankEdges [][]Edge
}

// DecodeBuffer parses buffer according to the input buffer layout:
//
//	for r in 0..numRanks:
//	    numNodesInRank[r]
//	    nodeId[0], nodeId[1], ..., nodeId[numNodesInRank[r]-1]
//	for r in 1..numRanks:
//	    numEdgesEnteringRank[r]
//	    for each edge:
//	        from, to, weight
//
// It validates that the total node and edge counts match numNodes and
// numEdges respectively, but does not otherwise validate graph structure
// (see [Reorder], which builds a [dag.DAG] and runs full validation).
func DecodeBuffer(numRanks, numNodes, numEdges int, buffer []int32) (*Decoded, error) {
	if err := crosserrors.ValidateRankCount(numRanks); err != nil {
		return nil, err
	}

	d := &Decoded{
		NumRanks:  numRanks,
		RankNodes: make([][]int32, numRanks),
		RankEdges: make([][]Edge, numRanks),
	}

	pos := 0
	next := func() (int32, error) {
		if pos >= len(buffer) {
			return 0, crosserrors.New(crosserrors.ErrCodeInvalidInput, "buffer truncated at offset %d", pos)
		}
		v := buffer[pos]
		pos++
		return v, nil
	}

	totalNodes := 0
	for r := 0; r < numRanks; r++ {
		count, err := next()
		if err != nil {
			return nil, err
		}
		if err := crosserrors.ValidateCount("node count", r, count); err != nil {
			return nil, err
		}
		ids := make([]int32, count)
		for i := range ids {
			v, err := next()
			if err != nil {
				return nil, err
			}
			ids[i] = v
		}
		d.RankNodes[r] = ids
		totalNodes += int(count)
	}
	if totalNodes != numNodes {
		return nil, crosserrors.New(crosserrors.ErrCodeInvalidInput, "node count mismatch: header says %d, ranks sum to %d", numNodes, totalNodes)
	}

	totalEdges := 0
	for r := 1; r < numRanks; r++ {
		count, err := next()
		if err != nil {
			return nil, err
		}
		if err := crosserrors.ValidateCount("edge count", r, count); err != nil {
			return nil, err
		}
		edges := make([]Edge, count)
		for i := range edges {
			from, err := next()
			if err != nil {
				return nil, err
			}
			to, err := next()
			if err != nil {
				return nil, err
			}
			weight, err := next()
			if err != nil {
				return nil, err
			}
			if err := crosserrors.ValidateEdgeWeight(weight); err != nil {
				return nil, err
			}
			edges[i] = Edge{From: from, To: to, Weight: weight}
		}
		d.RankEdges[r] = edges
		totalEdges += int(count)
	}
	if totalEdges != numEdges {
		return nil, crosserrors.New(crosserrors.ErrCodeInvalidInput, "edge count mismatch: header says %d, ranks sum to %d", numEdges, totalEdges)
	}

	return d, nil
}

// EncodeBuffer writes the final per-rank orderings into buffer starting at
// its first element: the concatenation of order[r] for r = 0..numRanks-1,
// rank-by-rank with no separators or counts. order maps each rank index to
// that rank's reordered node IDs, as [Reorder] builds them by translating
// [reorder.Arena.Order] back to the int32 IDs decoded by [DecodeBuffer]. buffer must be at least as long as the total node count;
// any remainder is left untouched.
func EncodeBuffer(buffer []int32, numRanks int, order map[int][]int32) error {
	pos := 0
	for r := 0; r < numRanks; r++ {
		for _, id := range order[r] {
			if pos >= len(buffer) {
				return crosserrors.New(crosserrors.ErrCodeInternal, "output buffer too small for %d node ids", pos+1)
			}
			buffer[pos] = id
			pos++
		}
	}
	return nil
}

// Reorder is the library entry point: it decodes buffer, builds a ranked
// graph, runs the crossing-reduction engine to convergence, and overwrites
// buffer in place with the final per-rank orderings.
func Reorder(numRanks, numNodes, numEdges int, buffer []int32) error {
	decoded, err := DecodeBuffer(numRanks, numNodes, numEdges, buffer)
	if err != nil {
		return err
	}

	g := dag.New(nil)
	idOf := func(n int32) string { return strconv.FormatInt(int64(n), 10) }

	for r, ids := range decoded.RankNodes {
		for _, id := range ids {
			if err := g.AddNode(dag.Node{ID: idOf(id), Row: r}); err != nil {
				return crosserrors.Wrap(crosserrors.ErrCodeInvalidInput, err, "adding node %d to rank %d", id, r)
			}
		}
	}
	for r, edges := range decoded.RankEdges {
		for _, e := range edges {
			if err := g.AddEdge(dag.Edge{From: idOf(e.From), To: idOf(e.To), Weight: int(e.Weight)}); err != nil {
				return crosserrors.Wrap(crosserrors.ErrCodeInvalidInput, err, "adding edge %d->%d entering rank %d", e.From, e.To, r)
			}
		}
	}
	if err := g.Validate(); err != nil {
		return crosserrors.Wrap(crosserrors.ErrCodeInvalidInput, err, "validating decoded graph")
	}

	arena := reorder.BuildArena(g)
	reorder.Engine{}.Run(context.Background(), arena)

	final := arena.Order()
	out := make(map[int][]int32, numRanks)
	for r, ids := range final {
		row := make([]int32, len(ids))
		for i, id := range ids {
			n, err := strconv.ParseInt(id, 10, 32)
			if err != nil {
				return crosserrors.Wrap(crosserrors.ErrCodeInternal, err, "translating node id %q back to int32", id)
			}
			row[i] = int32(n)
		}
		out[r] = row
	}

	return EncodeBuffer(buffer, numRanks, out)
}
