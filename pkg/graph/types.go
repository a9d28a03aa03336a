package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// Node types produced by the extraction collaborator.
// The layout engine never interprets these; they drive rendering only.
const (
	TypeClaim      = "claim"
	TypePremise    = "premise"
	TypeObjection  = "objection"
	TypeReply      = "reply"
	TypeConclusion = "conclusion"
)

// Edge relations between argument nodes.
const (
	RelationSupport = "support"
	RelationAttack  = "attack"
)

// Graph is the canonical serialization format for argument graphs.
// Used for CLI input files, API requests, archive storage, and caching.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// NodeCount returns the number of nodes in the graph.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges in the graph.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// Node is a vertex in the argument graph. Only ID is required; everything
// else is opaque payload owned by the extraction and rendering collaborators.
//
// X and Y are pointers so that unpositioned nodes serialize without
// coordinate fields, and a node placed at the origin is distinguishable
// from one that was never positioned.
type Node struct {
	ID    string         `json:"id" bson:"id"`
	Label string         `json:"label,omitempty" bson:"label,omitempty"`
	Type  string         `json:"type,omitempty" bson:"type,omitempty"`
	X     *int           `json:"x,omitempty" bson:"x,omitempty"`
	Y     *int           `json:"y,omitempty" bson:"y,omitempty"`
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Positioned reports whether the node carries layout coordinates.
func (n *Node) Positioned() bool { return n.X != nil && n.Y != nil }

// Clone returns a deep copy of the node. Coordinate pointers and the
// metadata map are duplicated so mutating the copy never affects the
// original.
func (n Node) Clone() Node {
	c := n
	if n.X != nil {
		x := *n.X
		c.X = &x
	}
	if n.Y != nil {
		y := *n.Y
		c.Y = &y
	}
	if n.Meta != nil {
		c.Meta = make(map[string]any, len(n.Meta))
		for k, v := range n.Meta {
			c.Meta[k] = v
		}
	}
	return c
}

// Edge represents a directed connection between two argument nodes.
// For support edges the source is typically a premise and the target the
// claim it supports. Relation and any future fields are opaque to layout.
type Edge struct {
	Source   string `json:"source" bson:"source"`
	Target   string `json:"target" bson:"target"`
	Relation string `json:"relation,omitempty" bson:"relation,omitempty"`
}

// MarshalGraph serializes a Graph to pretty-printed JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("unmarshal graph: %w", err)
	}
	return g, nil
}

// ReadGraphFile reads a Graph from a JSON file.
func ReadGraphFile(path string) (Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Graph{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalGraph(data)
}

// WriteGraphFile writes a Graph to a JSON file.
func WriteGraphFile(g Graph, path string) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
