package layout

import (
	"github.com/mkarlsen/argmap/pkg/graph"
)

// Default spacing configuration. These match the canvas geometry the
// rendering collaborator expects for argument maps.
const (
	DefaultNodeSpacing     = 250
	DefaultLayerSeparation = 200
	DefaultIterations      = 8
)

// Options configures a layout computation. The zero value selects the
// defaults.
type Options struct {
	// NodeSpacing is the horizontal distance between adjacent nodes in a
	// layer. Default 250.
	NodeSpacing int `json:"node_spacing,omitempty" bson:"node_spacing,omitempty"`

	// LayerSeparation is the vertical distance between layers. Default 200.
	LayerSeparation int `json:"layer_separation,omitempty" bson:"layer_separation,omitempty"`

	// Iterations is the fixed barycenter sweep budget. Default 8.
	Iterations int `json:"iterations,omitempty" bson:"iterations,omitempty"`
}

// WithDefaults returns a copy of o with unset fields replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.NodeSpacing == 0 {
		o.NodeSpacing = DefaultNodeSpacing
	}
	if o.LayerSeparation == 0 {
		o.LayerSeparation = DefaultLayerSeparation
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	return o
}

// Position is an integer canvas coordinate. y encodes layer depth
// (ascending = deeper), x encodes within-layer order.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Metrics summarizes layout quality and size. Node and edge totals count
// the raw input, including edges excluded from layout.
type Metrics struct {
	Crossings     int `json:"crossings" bson:"crossings"`
	Layers        int `json:"layers" bson:"layers"`
	MaxLayerWidth int `json:"max_layer_width" bson:"max_layer_width"`
	TotalNodes    int `json:"total_nodes" bson:"total_nodes"`
	TotalEdges    int `json:"total_edges" bson:"total_edges"`
}

// Result is the output of [Compute]. All maps are freshly allocated per
// call; the caller owns them.
type Result struct {
	// Positions maps node ID to its canvas coordinate.
	Positions map[string]Position `json:"positions" bson:"positions"`

	// Metrics reports crossing count and layout dimensions.
	Metrics Metrics `json:"metrics" bson:"metrics"`

	// Layers maps node ID to its layer, 0 = top. Callers use this to pin
	// the vertical axis during any downstream physics refinement.
	Layers map[string]int `json:"layers" bson:"layers"`
}

// Compute positions the nodes of a directed argument graph.
//
// The pipeline is layer assignment → barycenter ordering → bottom-layer
// regrouping → position projection, with the crossing count attached as a
// read-only metric. Identical inputs yield byte-identical results. Inputs
// are never mutated, and malformed edges (dangling references, self-loops)
// are tolerated. An empty node list returns empty maps and zero metrics.
func Compute(nodes []graph.Node, edges []graph.Edge, opts Options) Result {
	if len(nodes) == 0 {
		return Result{
			Positions: map[string]Position{},
			Layers:    map[string]int{},
		}
	}
	opts = opts.WithDefaults()

	a := newArena(nodes, edges)
	a.layerOf = assignLayers(a)
	byLayer := groupByLayer(a, a.layerOf)

	order := orderLayers(a, byLayer, opts.Iterations)
	regroupBottomLayer(a, byLayer, order)

	positions := computePositions(a, byLayer, order, opts.NodeSpacing, opts.LayerSeparation)

	maxWidth := 0
	for _, layer := range byLayer {
		if len(layer) > maxWidth {
			maxWidth = len(layer)
		}
	}

	layers := make(map[string]int, a.len())
	for i, id := range a.ids {
		layers[id] = a.layerOf[i]
	}

	return Result{
		Positions: positions,
		Layers:    layers,
		Metrics: Metrics{
			Crossings:     countCrossings(a, order),
			Layers:        len(byLayer),
			MaxLayerWidth: maxWidth,
			TotalNodes:    len(nodes),
			TotalEdges:    len(edges),
		},
	}
}

// Apply returns a new node slice with X/Y set from positions. Nodes without
// a position are copied through untouched. The input slice and its nodes
// are never modified: the rendering layer reuses the original records
// elsewhere.
func Apply(nodes []graph.Node, positions map[string]Position) []graph.Node {
	result := make([]graph.Node, len(nodes))
	for i, n := range nodes {
		c := n.Clone()
		if p, ok := positions[n.ID]; ok {
			x, y := p.X, p.Y
			c.X = &x
			c.Y = &y
		}
		result[i] = c
	}
	return result
}
