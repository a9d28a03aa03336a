package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mkarlsen/argmap/pkg/cache"
	"github.com/mkarlsen/argmap/pkg/errors"
	"github.com/mkarlsen/argmap/pkg/graph"
	"github.com/mkarlsen/argmap/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	// Missing both input and graph
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing input should fail")
	}

	// Both input and graph
	opts = Options{Input: "a.json", Graph: &graph.Graph{}}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Input and inline graph together should fail")
	}

	// Input only
	opts = Options{Input: "a.json"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Input-only options should pass: %v", err)
	}

	// Inline graph only
	opts = Options{Graph: &graph.Graph{}}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Graph-only options should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Graph: &graph.Graph{}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.NodeSpacing != layout.DefaultNodeSpacing {
		t.Errorf("NodeSpacing should be %d, got %d", layout.DefaultNodeSpacing, opts.NodeSpacing)
	}
	if opts.LayerSeparation != layout.DefaultLayerSeparation {
		t.Errorf("LayerSeparation should be %d, got %d", layout.DefaultLayerSeparation, opts.LayerSeparation)
	}
	if opts.Iterations != layout.DefaultIterations {
		t.Errorf("Iterations should be %d, got %d", layout.DefaultIterations, opts.Iterations)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Graph: &graph.Graph{}, NodeSpacing: 100}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalSpacing := opts.NodeSpacing
	originalFormats := len(opts.Formats)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.NodeSpacing != originalSpacing {
		t.Error("NodeSpacing changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func debateGraph() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{ID: "claim", Label: "Remote work raises productivity", Type: graph.TypeClaim},
			{ID: "p1", Label: "Fewer interruptions", Type: graph.TypePremise},
			{ID: "obj", Label: "Coordination suffers", Type: graph.TypeObjection},
		},
		Edges: []graph.Edge{
			{Source: "p1", Target: "claim", Relation: graph.RelationSupport},
			{Source: "obj", Target: "claim", Relation: graph.RelationAttack},
		},
	}
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, testLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Graph:   debateGraph(),
		Formats: []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.RunID == "" {
		t.Error("Execute should assign a RunID")
	}
	if len(result.GraphHash) != 64 {
		t.Errorf("GraphHash = %q, want 64-char sha256", result.GraphHash)
	}
	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("stats = %d nodes / %d edges, want 3 / 2", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.Layout.Metrics.Layers != 2 {
		t.Errorf("Layers = %d, want 2", result.Layout.Metrics.Layers)
	}

	// DOT artifact carries the graph
	dot := string(result.Artifacts[FormatDOT])
	if dot == "" || !strings.Contains(dot, `"claim"`) {
		t.Errorf("dot artifact missing claim node:\n%s", dot)
	}

	// JSON artifact is the positioned graph
	var doc struct {
		Nodes   []graph.Node   `json:"nodes"`
		Metrics layout.Metrics `json:"metrics"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(doc.Nodes) != 3 {
		t.Fatalf("json artifact has %d nodes, want 3", len(doc.Nodes))
	}
	for _, n := range doc.Nodes {
		if !n.Positioned() {
			t.Errorf("node %s missing coordinates in json artifact", n.ID)
		}
	}
	if doc.Metrics.TotalNodes != 3 {
		t.Errorf("json metrics = %+v", doc.Metrics)
	}
}

func TestRunnerExecute_CacheHitOnSecondRun(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, testLogger())
	defer runner.Close()

	opts := Options{Graph: debateGraph(), Formats: []string{FormatJSON, FormatDOT}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(second.Artifacts[FormatDOT]) != string(first.Artifacts[FormatDOT]) {
		t.Error("cached artifact differs from computed one")
	}

	// Refresh bypasses the cache
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should bypass the cache")
	}
}

func TestRunnerExecute_InvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Graph:   debateGraph(),
		Formats: []string{"webp"},
	})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteGraphFile(*debateGraph(), path); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	g, err := runner.Load(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Errorf("loaded %d nodes, want 3", g.NodeCount())
	}
}

func TestRunnerLoad_MissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	_, err := runner.Load(context.Background(), Options{Input: filepath.Join(t.TempDir(), "nope.json")})
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("error = %v, want INVALID_GRAPH", err)
	}
}
