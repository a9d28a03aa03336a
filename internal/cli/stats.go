package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mkarlsen/argmap/pkg/layout"
	"github.com/mkarlsen/argmap/pkg/pipeline"
)

// statsCommand creates the stats command for printing layout metrics.
func (c *CLI) statsCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "stats [graph.json]",
		Short: "Print layout metrics for an argument graph",
		Long: `Print layout metrics for an argument graph.

The stats command computes the layered layout and reports its shape: how
many layers the argument stacks into, the widest layer, and how many edge
crossings remain after ordering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&opts.NodeSpacing, "node-spacing", 0, "horizontal distance between nodes in a layer")
	cmd.Flags().IntVar(&opts.LayerSeparation, "layer-separation", 0, "vertical distance between layers")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "barycenter sweep iterations")

	return cmd
}

// runStats loads the graph, computes the layout, and prints the metrics.
func (c *CLI) runStats(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
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

	prog := newProgress(loggerFromContext(ctx))
	res, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d nodes", g.NodeCount()))

	// Lexicographic baseline, to show what the barycenter sweep bought.
	naive := layout.CountCrossings(res.Layers, layout.NaiveOrders(res.Layers), g.Edges)

	m := res.Metrics
	fmt.Println(StyleTitle.Render(input))
	printNewline()
	printKeyValue("Nodes", strconv.Itoa(m.TotalNodes))
	printKeyValue("Edges", strconv.Itoa(m.TotalEdges))
	printKeyValue("Layers", strconv.Itoa(m.Layers))
	printKeyValue("Widest layer", strconv.Itoa(m.MaxLayerWidth))
	printKeyValue("Crossings", fmt.Sprintf("%d (naive ordering: %d)", m.Crossings, naive))
	printNewline()
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)

	return nil
}
