// Package graph provides serialization types for argument graphs.
//
// This package defines the canonical wire format for argmap's graph data,
// used for JSON files, API requests, archive storage, and cross-tool
// interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between the layout engine
// and external formats:
//
//   - [Graph], [Node], [Edge]: Serialization types (this package)
//   - pkg/layout: The layout engine consuming these types
//
// The layout engine only reads [Node.ID]; every other field (type, label,
// relation, metadata) is opaque payload carried through for the rendering
// and extraction collaborators.
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "claim-1", "type": "claim"}, {"id": "p-1", "type": "premise"}],
//	  "edges": [{"source": "p-1", "target": "claim-1", "relation": "support"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("argument.json") // File → Graph
//	graph.WriteGraphFile(g, "output.json")       // Graph → File
//	data, _ := graph.MarshalGraph(g)             // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)      // []byte → Graph
//
// # Node Types and Edge Relations
//
// The extraction collaborator tags nodes and edges with argumentative roles.
// Recognized node types (used only for presentation, never by the engine):
//
//	graph.TypeClaim       // "claim"
//	graph.TypePremise     // "premise"
//	graph.TypeObjection   // "objection"
//	graph.TypeReply       // "reply"
//	graph.TypeConclusion  // "conclusion"
//
// Edge relations:
//
//	graph.RelationSupport // "support"
//	graph.RelationAttack  // "attack"
//
// Unknown types and relations are carried through untouched.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
