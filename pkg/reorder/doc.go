// Package reorder implements the Rank Reorderer and Sweep Controller of a
// layered-graph crossing-reduction engine: the ordering step of Sugiyama-style
// hierarchical graph layout.
//
// # Algorithm
//
// [Engine.Run] alternates downward and upward sweeps over the ranks of an
// [Arena]. For each rank (except the one fixed by the sweep's direction), it:
//
//  1. Computes a barycenter (weighted mean neighbor position) for every node
//     against the adjacent, already-visited rank.
//  2. Stable-sorts nodes by that mean to propose a new order.
//  3. Decomposes the proposal into the maximal contiguous intervals that
//     actually move nodes, and evaluates each interval independently.
//  4. Accepts an interval's candidate order only if it strictly reduces the
//     rank's leading-boundary crossing count and does not increase the
//     rank's total crossing count.
//
// A sweep converges when two consecutive full passes (one down, one up)
// produce no strictly-improving acceptance; [Engine.Run] tracks this with a
// counter that resets to 2 whenever an acceptance strictly lowers a rank's
// total crossings, matching the original algorithm's termination rule
// exactly rather than a fixed iteration budget.
//
// # Grounding
//
// This implementation is adapted from the crossing-minimization routine
// originally described in Barth, Jünger & Mutzel (2002), "Simple and
// Efficient Bilayer Cross Counting" - the same accumulator-tree counter
// [dag.CountCrossingsIdx] exposes, reused here as the hot-loop crossing
// oracle.
package reorder
