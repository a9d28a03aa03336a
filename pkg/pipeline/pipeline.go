// Package pipeline provides the core layout pipeline for argmap.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the argument graph from a file or an inline request body
//  2. Layout: Compute layered positions for the graph
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "debate.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	g, err := runner.Load(ctx, opts)
//
//	// Layout with an existing graph
//	res, err := runner.ComputeLayout(ctx, g, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, g, res, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkarlsen/argmap/pkg/cache"
	"github.com/mkarlsen/argmap/pkg/errors"
	"github.com/mkarlsen/argmap/pkg/graph"
	"github.com/mkarlsen/argmap/pkg/layout"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// DefaultPNGScale is the resolution multiplier for PNG export.
const DefaultPNGScale = 2.0

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of Input or Graph must be set.
	Input string       `json:"input,omitempty"` // path to a graph JSON file
	Graph *graph.Graph `json:"graph,omitempty"` // inline graph (API requests)

	// Layout options. Zero values select the engine defaults.
	NodeSpacing     int `json:"node_spacing,omitempty"`
	LayerSeparation int `json:"layer_separation,omitempty"`
	Iterations      int `json:"iterations,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // include type and metadata in node labels

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution in logs.
	RunID string

	// Graph is the loaded argument graph.
	Graph graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout contains the computed positions, layers, and metrics.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && o.Graph == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input file or inline graph is required")
	}
	if o.Input != "" && o.Graph != nil {
		return errors.New(errors.ErrCodeInvalidInput, "input file and inline graph are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.NodeSpacing == 0 {
		o.NodeSpacing = layout.DefaultNodeSpacing
	}
	if o.LayerSeparation == 0 {
		o.LayerSeparation = layout.DefaultLayerSeparation
	}
	if o.Iterations == 0 {
		o.Iterations = layout.DefaultIterations
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions converts the pipeline options to engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		NodeSpacing:     o.NodeSpacing,
		LayerSeparation: o.LayerSeparation,
		Iterations:      o.Iterations,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NodeSpacing:     o.NodeSpacing,
		LayerSeparation: o.LayerSeparation,
		Iterations:      o.Iterations,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
