package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mkarlsen/argmap/pkg/graph"
	"github.com/mkarlsen/argmap/pkg/layout"
	"github.com/mkarlsen/argmap/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing a computed layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Browse positioned nodes interactively",
		Long: `Browse positioned nodes interactively.

The inspect command computes the layered layout and opens an interactive
browser listing every node with its layer, coordinates, and label. Selecting
a node prints its full detail including incoming and outgoing edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&opts.NodeSpacing, "node-spacing", 0, "horizontal distance between nodes in a layer")
	cmd.Flags().IntVar(&opts.LayerSeparation, "layer-separation", 0, "vertical distance between layers")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "barycenter sweep iterations")

	return cmd
}

// runInspect computes the layout and drives the interactive browser.
func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.apply(&opts)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Input = input
	opts.Logger = c.Logger

	g, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	res, err := runner.ComputeLayout(ctx, g, opts)
	if err != nil {
		return err
	}

	model := NewNodeListModel(buildNodeRows(g, res))
	p := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run node browser: %w", err)
	}

	if m, ok := final.(NodeListModel); ok && m.Selected != nil {
		printNodeDetail(g, *m.Selected)
	}
	return nil
}

// buildNodeRows flattens the layout into browser rows, ordered by layer,
// then left to right within a layer.
func buildNodeRows(g graph.Graph, res layout.Result) []nodeRow {
	rows := make([]nodeRow, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		pos, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		rows = append(rows, nodeRow{
			ID:    n.ID,
			Label: n.Label,
			Type:  n.Type,
			Layer: res.Layers[n.ID],
			X:     pos.X,
			Y:     pos.Y,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Layer != rows[j].Layer {
			return rows[i].Layer < rows[j].Layer
		}
		if rows[i].X != rows[j].X {
			return rows[i].X < rows[j].X
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

// printNodeDetail prints the selected node with its edges.
func printNodeDetail(g graph.Graph, row nodeRow) {
	printNewline()
	fmt.Println(StyleTitle.Render(row.ID))
	if row.Label != "" {
		printDetail("%s", row.Label)
	}
	printNewline()
	printKeyValue("Type", orDash(row.Type))
	printKeyValue("Layer", strconv.Itoa(row.Layer))
	printKeyValue("Position", fmt.Sprintf("(%d, %d)", row.X, row.Y))

	var incoming, outgoing []string
	for _, e := range g.Edges {
		switch row.ID {
		case e.Target:
			incoming = append(incoming, describeEdge(e.Source, e.Relation))
		case e.Source:
			outgoing = append(outgoing, describeEdge(e.Target, e.Relation))
		}
	}
	printEdgeList("Incoming", incoming)
	printEdgeList("Outgoing", outgoing)
}

func printEdgeList(key string, edges []string) {
	if len(edges) == 0 {
		printKeyValue(key, "—")
		return
	}
	printKeyValue(key, edges[0])
	for _, e := range edges[1:] {
		printKeyValue("", e)
	}
}

func describeEdge(other, relation string) string {
	if relation == "" {
		return other
	}
	return fmt.Sprintf("%s (%s)", other, relation)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
