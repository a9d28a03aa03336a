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

// renderCommand creates the render command for generating diagram artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render an argument graph to SVG, PNG, PDF, DOT, or JSON",
		Long: `Render an argument graph to one or more output formats.

The render command computes the layered layout and produces artifacts in the
requested formats. SVG, PNG, and PDF go through Graphviz; DOT emits the
annotated graph source; JSON emits the positioned graph with metrics.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr != "" {
				opts.Formats = parseFormats(formatsStr)
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached")

	// Render flags
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include node type and metadata in labels")

	// Layout flags
	cmd.Flags().IntVar(&opts.NodeSpacing, "node-spacing", 0, "horizontal distance between nodes in a layer")
	cmd.Flags().IntVar(&opts.LayerSeparation, "layer-separation", 0, "vertical distance between layers")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "barycenter sweep iterations")

	return cmd
}

// runRender executes the pipeline and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.apply(&opts)
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Input = input
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")

	base := basePath(output, input)
	for _, format := range opts.Formats {
		path := base + "." + format
		if output != "" && len(opts.Formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	cached := result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, cached)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., debate.svg, debate.json).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	// Strip known format extensions from output path
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
