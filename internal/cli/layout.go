package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkarlsen/argmap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for an argument graph",
		Long: `Compute node positions for an argument graph.

The layout command takes a graph.json file and assigns every node a layer
and an (x, y) coordinate: every edge's source sits above its target, edge
crossings minimized. The output is a layout.json file (same
format as 'render -f json') that carries the positioned nodes together with
the layer assignment and layout metrics.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	// Layout flags
	cmd.Flags().IntVar(&opts.NodeSpacing, "node-spacing", 0, "horizontal distance between nodes in a layer")
	cmd.Flags().IntVar(&opts.LayerSeparation, "layer-separation", 0, "vertical distance between layers")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "barycenter sweep iterations")

	return cmd
}

// runLayout runs the pipeline with a JSON artifact and writes the output file.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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
	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := os.WriteFile(outputPath, result.Artifacts[pipeline.FormatJSON], 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printDetail("%d layers · %d crossings", result.Layout.Metrics.Layers, result.Layout.Metrics.Crossings)
	printNewline()
	printNextStep("Render", "argmap render "+input)

	return nil
}
