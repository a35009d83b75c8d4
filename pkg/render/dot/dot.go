// Package dot renders a ranked graph and a chosen per-rank node ordering to
// Graphviz DOT, highlighting edges that participate in a counted crossing -
// a debugging and demo aid for the crossing counter and reordering loop, not
// part of the core algorithm's hot path.
//
// Adapted from the teacher's pkg/render/nodelink (ToDOT/RenderSVG via
// goccy/go-graphviz).
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/crossred/crossred/pkg/dag"
)

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// Options configures rendering.
type Options struct {
	// Detailed includes rank numbers in node labels.
	Detailed bool
}

// ToDOT renders g to Graphviz DOT, laying nodes out rank-by-rank in the
// order given by orders (rank index -> ordered node IDs). Edges that cross
// at least one other edge under orders are drawn in red; all others in
// black. orders may cover a subset of ranks (e.g. a single bilayer); nodes
// in ranks absent from orders fall back to g's own insertion order.
func ToDOT(g *dag.DAG, orders map[int][]string, opts Options) string {
	crossingEdges := crossingEdgeSet(g, orders)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n\n")

	for _, row := range g.RowIDs() {
		ids := orders[row]
		if ids == nil {
			ids = dag.NodeIDs(g.NodesInRow(row))
		}
		fmt.Fprintf(&buf, "  { rank=same; ")
		for _, id := range ids {
			fmt.Fprintf(&buf, "%q; ", id)
		}
		buf.WriteString("}\n")
		for _, id := range ids {
			n, ok := g.Node(id)
			if !ok {
				continue
			}
			label := fmtLabel(*n, opts.Detailed)
			fmt.Fprintf(&buf, "  %q [label=%q];\n", id, label)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		color := "black"
		if crossingEdges[edgeKey{e.From, e.To}] {
			color = "red"
		}
		fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", e.From, e.To, color)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}
	return fmt.Sprintf("%s\nrow: %d", n.ID, n.Row)
}

type edgeKey struct{ from, to string }

// crossingEdgeSet identifies every edge that crosses at least one other edge
// between the same pair of adjacent ranks, under orders.
func crossingEdgeSet(g *dag.DAG, orders map[int][]string) map[edgeKey]bool {
	crossing := make(map[edgeKey]bool)
	rows := g.RowIDs()
	for i := 0; i < len(rows)-1; i++ {
		upperRow, lowerRow := rows[i], rows[i+1]
		upper, lower := orders[upperRow], orders[lowerRow]
		if upper == nil {
			upper = dag.NodeIDs(g.NodesInRow(upperRow))
		}
		if lower == nil {
			lower = dag.NodeIDs(g.NodesInRow(lowerRow))
		}
		upperPos := dag.PosMap(upper)
		lowerPos := dag.PosMap(lower)

		type placedEdge struct {
			from, to string
			up, low  int
		}
		var edges []placedEdge
		for _, e := range g.Edges() {
			fromPos, ok1 := upperPos[e.From]
			toPos, ok2 := lowerPos[e.To]
			if !ok1 || !ok2 {
				continue
			}
			edges = append(edges, placedEdge{e.From, e.To, fromPos, toPos})
		}
		for a := 0; a < len(edges); a++ {
			for b := a + 1; b < len(edges); b++ {
				ea, eb := edges[a], edges[b]
				if (ea.up < eb.up && ea.low > eb.low) || (ea.up > eb.up && ea.low < eb.low) {
					crossing[edgeKey{edges[a].from, edges[a].to}] = true
					crossing[edgeKey{edges[b].from, edges[b].to}] = true
				}
			}
		}
	}
	return crossing
}

// RenderSVG renders a DOT graph to SVG using Graphviz, exactly as the
// teacher's nodelink package does.
func RenderSVG(dotSrc string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dotSrc))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
