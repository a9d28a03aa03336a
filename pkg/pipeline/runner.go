package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mkarlsen/argmap/pkg/cache"
	"github.com/mkarlsen/argmap/pkg/errors"
	"github.com/mkarlsen/argmap/pkg/graph"
	"github.com/mkarlsen/argmap/pkg/layout"
	"github.com/mkarlsen/argmap/pkg/observability"
	"github.com/mkarlsen/argmap/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run", result.RunID)

	// Stage 1: Load
	loadStart := time.Now()
	g, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	if data, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	logger.Info("loaded graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"layers", res.Metrics.Layers,
		"crossings", res.Metrics.Crossings,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, res, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the argument graph from the configured source.
func (r *Runner) Load(ctx context.Context, opts Options) (graph.Graph, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return graph.Graph{}, err
	}

	source := opts.Input
	if opts.Graph != nil {
		source = "inline"
	}
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)

	var g graph.Graph
	var err error
	if opts.Graph != nil {
		g = *opts.Graph
	} else {
		g, err = graph.ReadGraphFile(opts.Input)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeInvalidGraph, err, "load graph from %s", opts.Input)
		}
	}

	observability.Pipeline().OnLoadComplete(ctx, source, g.NodeCount(), time.Since(start), err)
	if err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (layout.Result, bool, error) {
	opts.SetLayoutDefaults()

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return layout.Result{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize graph for cache key")
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(graphData), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Corrupt entry: fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, g.NodeCount(), g.EdgeCount())
	res := layout.Compute(g.Nodes, g.Edges, opts.LayoutOptions())
	observability.Pipeline().OnLayoutComplete(ctx, res.Metrics.Crossings, time.Since(start), nil)

	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultLayoutTTL)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return res, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g graph.Graph, opts Options) (layout.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g graph.Graph, res layout.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := json.Marshal(res)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)
		data, err := r.renderFormat(g, res, format, opts)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultArtifactTTL)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g graph.Graph, res layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, res, opts)
	return artifacts, err
}

// renderFormat produces one artifact.
func (r *Runner) renderFormat(g graph.Graph, res layout.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalPositioned(g, res)
	case FormatDOT:
		return []byte(render.ToDOT(g, res, render.Options{Detailed: opts.Detailed})), nil
	}

	dot := render.ToDOT(g, res, render.Options{Detailed: opts.Detailed})
	var data []byte
	var err error
	switch format {
	case FormatSVG:
		data, err = render.RenderSVG(dot)
	case FormatPNG:
		data, err = render.RenderPNG(dot, DefaultPNGScale)
	case FormatPDF:
		data, err = render.RenderPDF(dot)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}

// positionedDocument is the JSON artifact: the input graph with coordinates
// applied, plus the layout metrics and layer assignment.
type positionedDocument struct {
	Nodes   []graph.Node   `json:"nodes"`
	Edges   []graph.Edge   `json:"edges"`
	Layers  map[string]int `json:"layers"`
	Metrics layout.Metrics `json:"metrics"`
}

func marshalPositioned(g graph.Graph, res layout.Result) ([]byte, error) {
	doc := positionedDocument{
		Nodes:   layout.Apply(g.Nodes, res.Positions),
		Edges:   g.Edges,
		Layers:  res.Layers,
		Metrics: res.Metrics,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
