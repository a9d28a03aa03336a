package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUnmarshalGraph_RoundTrip(t *testing.T) {
	x, y := -125, 200
	g := Graph{
		Nodes: []Node{
			{ID: "claim", Label: "Main claim", Type: TypeClaim},
			{ID: "p1", Type: TypePremise, X: &x, Y: &y, Meta: map[string]any{"source": "doc-3"}},
		},
		Edges: []Edge{
			{Source: "p1", Target: "claim", Relation: RelationSupport},
		},
	}

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error = %v", err)
	}

	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph() error = %v", err)
	}
	if got.NodeCount() != 2 || got.EdgeCount() != 1 {
		t.Fatalf("round trip sizes = %d/%d, want 2/1", got.NodeCount(), got.EdgeCount())
	}
	if got.Nodes[1].X == nil || *got.Nodes[1].X != -125 {
		t.Errorf("p1 x = %v, want -125", got.Nodes[1].X)
	}
	if got.Nodes[0].X != nil {
		t.Error("unpositioned node gained an x coordinate")
	}
	if got.Edges[0].Relation != RelationSupport {
		t.Errorf("relation = %q, want %q", got.Edges[0].Relation, RelationSupport)
	}
}

func TestUnmarshalGraph_OmitsUnsetCoordinates(t *testing.T) {
	data, err := MarshalGraph(Graph{Nodes: []Node{{ID: "a"}}})
	if err != nil {
		t.Fatalf("MarshalGraph() error = %v", err)
	}
	if strings.Contains(string(data), `"x"`) {
		t.Errorf("unpositioned node serialized a coordinate:\n%s", data)
	}
}

func TestUnmarshalGraph_Invalid(t *testing.T) {
	if _, err := UnmarshalGraph([]byte(`{"nodes": "oops"}`)); err == nil {
		t.Error("UnmarshalGraph() accepted malformed input")
	}
}

func TestNode_DisplayLabel(t *testing.T) {
	n := Node{ID: "n1"}
	if n.DisplayLabel() != "n1" {
		t.Errorf("DisplayLabel() = %q, want ID fallback", n.DisplayLabel())
	}
	n.Label = "Carbon pricing works"
	if n.DisplayLabel() != "Carbon pricing works" {
		t.Errorf("DisplayLabel() = %q, want label", n.DisplayLabel())
	}
}

func TestNode_Clone(t *testing.T) {
	x, y := 10, 20
	orig := Node{ID: "a", X: &x, Y: &y, Meta: map[string]any{"k": "v"}}

	c := orig.Clone()
	*c.X = 99
	c.Meta["k"] = "changed"

	if *orig.X != 10 {
		t.Errorf("clone shares X pointer: orig x = %d", *orig.X)
	}
	if orig.Meta["k"] != "v" {
		t.Errorf("clone shares Meta map: orig meta = %v", orig.Meta)
	}
	if !c.Positioned() || !orig.Positioned() {
		t.Error("both original and clone should report Positioned")
	}
}

func TestReadGraphFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")

	want := Graph{
		Nodes: []Node{{ID: "claim"}, {ID: "p1"}},
		Edges: []Edge{{Source: "p1", Target: "claim"}},
	}
	if err := WriteGraphFile(want, path); err != nil {
		t.Fatalf("WriteGraphFile() error = %v", err)
	}

	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error = %v", err)
	}
	if got.NodeCount() != 2 || got.EdgeCount() != 1 {
		t.Errorf("ReadGraphFile() sizes = %d/%d, want 2/1", got.NodeCount(), got.EdgeCount())
	}
}

func TestReadGraphFile_Missing(t *testing.T) {
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ReadGraphFile() on missing file should fail")
	}
}

func TestReadGraphFile_NotJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadGraphFile(path); err == nil {
		t.Error("ReadGraphFile() on non-JSON content should fail")
	}
}
