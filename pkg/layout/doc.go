// Package layout positions the nodes of a directed argument graph so the
// rendered diagram has minimal visual clutter.
//
// # Overview
//
// Argument graphs (claims, premises, objections, replies, conclusions
// connected by support/attack edges) are drawn as layered diagrams: sources
// at the top, each node strictly below everything that points at it. The
// engine is a pure function
//
//	(nodes, edges, options) → (positions, metrics, layer map)
//
// It holds no state, performs no I/O, never mutates its inputs, and is safe
// to call concurrently on independent graphs.
//
// # Pipeline
//
// [Compute] runs four stages in a fixed order:
//
//  1. Layer assignment: longest-path layering via Kahn's algorithm. Every
//     edge whose endpoints both exist satisfies layer(source) < layer(target).
//     Nodes caught in unresolvable cycles fall back to layer 0.
//  2. Crossing minimization: iterative bidirectional barycenter sweeps.
//     Within each layer, nodes are reordered by the mean order position of
//     their neighbors in the adjacent layer, alternating top-down and
//     bottom-up for a fixed iteration budget (default 8). No convergence
//     detection: the fixed budget caps worst-case cost and keeps behavior
//     reproducible regardless of graph shape.
//  3. Bottom-layer regrouping: premises supporting the same parent set are
//     pulled together into one contiguous block under that parent. This
//     replaces the sweep order for the deepest layer only.
//  4. Position projection: order indices become integer (x, y) canvas
//     coordinates; y encodes layer depth, x encodes within-layer order,
//     each layer centered around x = 0.
//
// [CountCrossings] is an independent read-only metric over any layer/order
// assignment, used both for the reported quality metric and for comparing
// the optimized order against the [NaiveOrders] lexicographic baseline.
//
// # Determinism
//
// Identical inputs produce byte-identical outputs, across runs and across
// processes:
//
//   - Initial order within each layer is lexicographic by node ID.
//   - All sort keys tie-break on node ID.
//   - Nodes without neighbors in the adjacent layer get a fallback sort key
//     derived from an FNV-1a hash of their ID, never from any runtime
//     identity hash.
//
// # Malformed Input
//
// The engine never fails on malformed graphs. Edges referencing unknown
// node IDs are silently excluded from every internal structure. Self-loops
// are tolerated and excluded from layering and crossing counting. Residual
// cycles degrade layout quality, never correctness. An empty node list
// yields empty maps and zero metrics.
//
// # Internals
//
// All inner loops run over a dense integer arena built once per call: node
// IDs are interned to indices, adjacency and order state live in slices.
// The public API stays string-ID based at the boundary.
package layout
