package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/mkarlsen/argmap/pkg/graph"
	"github.com/mkarlsen/argmap/pkg/layout"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes node type and metadata in labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ToDOT converts an argument graph and its layout to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Layer membership is encoded as rank=same groups and the within-layer
// order as invisible constraint edges, so the rendered diagram matches the
// computed layout. Edges with unknown endpoints are skipped, matching the
// layout engine's tolerance for malformed input.
func ToDOT(g graph.Graph, res layout.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph argmap {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if !seen[e.Source] || !seen[e.Target] || e.Source == e.Target {
			continue
		}
		if attrs := edgeAttrs(e); len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	writeRanks(&buf, res)

	buf.WriteString("}\n")
	return buf.String()
}

// writeRanks pins each node to its layer and fixes the within-layer order.
func writeRanks(buf *bytes.Buffer, res layout.Result) {
	if len(res.Layers) == 0 {
		return
	}

	maxLayer := 0
	for _, l := range res.Layers {
		if l > maxLayer {
			maxLayer = l
		}
	}
	byLayer := make([][]string, maxLayer+1)
	for id, l := range res.Layers {
		byLayer[l] = append(byLayer[l], id)
	}

	buf.WriteString("\n")
	for _, ids := range byLayer {
		// Left to right by computed x, ties by ID for stable output.
		sort.Slice(ids, func(i, j int) bool {
			xi, xj := res.Positions[ids[i]].X, res.Positions[ids[j]].X
			if xi != xj {
				return xi < xj
			}
			return ids[i] < ids[j]
		})

		buf.WriteString("  { rank=same;")
		for _, id := range ids {
			fmt.Fprintf(buf, " %q;", id)
		}
		buf.WriteString(" }\n")

		for i := 1; i < len(ids); i++ {
			fmt.Fprintf(buf, "  %q -> %q [style=invis, weight=100];\n", ids[i-1], ids[i])
		}
	}
}

func fmtLabel(n graph.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}

	var parts []string
	if n.Type != "" {
		parts = append(parts, fmt.Sprintf("type: %s", n.Type))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Type {
	case graph.TypeClaim:
		attrs = append(attrs, "fillcolor=lightblue")
	case graph.TypeConclusion:
		attrs = append(attrs, "fillcolor=lightblue", "peripheries=2")
	case graph.TypeObjection:
		attrs = append(attrs, "fillcolor=mistyrose")
	case graph.TypeReply:
		attrs = append(attrs, "fillcolor=lavender")
	}
	return attrs
}

func edgeAttrs(e graph.Edge) []string {
	switch e.Relation {
	case graph.RelationAttack:
		return []string{"style=dashed", "color=\"#b22222\"", "arrowhead=onormal"}
	case graph.RelationSupport:
		return nil
	}
	return nil
}
