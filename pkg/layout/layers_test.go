package layout

import (
	"testing"

	"github.com/mkarlsen/argmap/pkg/graph"
)

func nodesFromIDs(ids ...string) []graph.Node {
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = graph.Node{ID: id}
	}
	return nodes
}

func TestAssignLayers_Chain(t *testing.T) {
	res := Compute(nodesFromIDs("a", "b", "c"), []graph.Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
	}, Options{})

	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, layer := range want {
		if res.Layers[id] != layer {
			t.Errorf("layer(%s) = %d, want %d", id, res.Layers[id], layer)
		}
	}
}

func TestAssignLayers_LongestPathWins(t *testing.T) {
	// d is reachable directly from a and via a → b → c, so it must sit on
	// layer 3, below the deepest parent.
	res := Compute(nodesFromIDs("a", "b", "c", "d"), []graph.Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "a", Target: "d"},
		{Source: "c", Target: "d"},
	}, Options{})

	if res.Layers["d"] != 3 {
		t.Errorf("layer(d) = %d, want 3", res.Layers["d"])
	}
}

func TestAssignLayers_EdgeInvariant(t *testing.T) {
	edges := []graph.Edge{
		{Source: "root", Target: "mid1"},
		{Source: "root", Target: "mid2"},
		{Source: "mid1", Target: "leaf1"},
		{Source: "mid1", Target: "leaf2"},
		{Source: "mid2", Target: "leaf2"},
	}
	res := Compute(nodesFromIDs("root", "mid1", "mid2", "leaf1", "leaf2"), edges, Options{})

	for _, e := range edges {
		if res.Layers[e.Source] >= res.Layers[e.Target] {
			t.Errorf("edge %s→%s violates layering: %d >= %d",
				e.Source, e.Target, res.Layers[e.Source], res.Layers[e.Target])
		}
	}
}

func TestAssignLayers_CycleFallsBackToLayerZero(t *testing.T) {
	res := Compute(nodesFromIDs("a", "b"), []graph.Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "a"},
	}, Options{})

	if res.Layers["a"] != 0 || res.Layers["b"] != 0 {
		t.Errorf("cycle members should default to layer 0, got a=%d b=%d",
			res.Layers["a"], res.Layers["b"])
	}
	if res.Metrics.Layers != 1 {
		t.Errorf("Layers metric = %d, want 1", res.Metrics.Layers)
	}
}

func TestAssignLayers_CycleDoesNotDisturbRest(t *testing.T) {
	// b↔c cycle alongside a clean chain x → y.
	res := Compute(nodesFromIDs("b", "c", "x", "y"), []graph.Edge{
		{Source: "b", Target: "c"},
		{Source: "c", Target: "b"},
		{Source: "x", Target: "y"},
	}, Options{})

	if res.Layers["x"] != 0 || res.Layers["y"] != 1 {
		t.Errorf("chain layers disturbed: x=%d y=%d", res.Layers["x"], res.Layers["y"])
	}
	if res.Layers["b"] != 0 || res.Layers["c"] != 0 {
		t.Errorf("cycle members should be on layer 0, got b=%d c=%d",
			res.Layers["b"], res.Layers["c"])
	}
}

func TestAssignLayers_SelfLoopIgnored(t *testing.T) {
	res := Compute(nodesFromIDs("a", "b"), []graph.Edge{
		{Source: "a", Target: "a"},
		{Source: "a", Target: "b"},
	}, Options{})

	if res.Layers["a"] != 0 || res.Layers["b"] != 1 {
		t.Errorf("self-loop affected layering: a=%d b=%d", res.Layers["a"], res.Layers["b"])
	}
}

func TestAssignLayers_DanglingEdgeIgnored(t *testing.T) {
	res := Compute(nodesFromIDs("a", "b"), []graph.Edge{
		{Source: "a", Target: "b"},
		{Source: "ghost", Target: "b"},
		{Source: "a", Target: "phantom"},
	}, Options{})

	if res.Layers["a"] != 0 || res.Layers["b"] != 1 {
		t.Errorf("dangling edges affected layering: a=%d b=%d", res.Layers["a"], res.Layers["b"])
	}
	if _, ok := res.Layers["ghost"]; ok {
		t.Error("ghost should not appear in the layer map")
	}
}

func TestAssignLayers_IsolatedNodesOnTop(t *testing.T) {
	res := Compute(nodesFromIDs("lone1", "lone2"), nil, Options{})

	if res.Layers["lone1"] != 0 || res.Layers["lone2"] != 0 {
		t.Errorf("isolated nodes should be on layer 0, got %v", res.Layers)
	}
}
