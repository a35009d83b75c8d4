// Package transform provides the upstream collaborator stages that prepare
// an arbitrary DAG for crossing reduction: cycle breaking and layer
// assignment. Ranking and crossing reduction are deliberately separate
// passes, matching how the wider layout pipeline treats them as independent
// collaborators.
//
// # Cycle Breaking
//
// [BreakCycles] detects and removes edges that create cycles using a
// DFS-based white/gray/black traversal, restoring acyclicity by removing
// every back-edge the traversal finds. The number of removed edges is not
// guaranteed to be the minimum.
//
// # Layer Assignment
//
// [AssignLayers] computes the row (rank) for each node based on its depth
// from source nodes (those with no incoming edges), using Kahn's algorithm
// so that parents are always assigned to rows above their children.
//
// # Usage
//
//	transform.BreakCycles(g)
//	transform.AssignLayers(g)
//	// g.Node(id).Row is now set for every node; pkg/reorder can run.
package transform
