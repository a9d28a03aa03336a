// Package render turns positioned argument graphs into visual outputs.
//
// # Overview
//
// The package produces Graphviz DOT source from a graph plus its computed
// layout, then renders it in-process to SVG. PDF and PNG conversion shell
// out to rsvg-convert.
//
//	dot := render.ToDOT(g, res, render.Options{})
//	svg, err := render.RenderSVG(dot)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Layout fidelity
//
// Exact coordinates live in the layout result; the DOT output encodes the
// two facts that matter visually: which layer each node sits on (rank=same
// groups) and the left-to-right order within each layer (invisible ordering
// edges). Graphviz then handles box sizing and edge routing.
//
// # Styling
//
// Node fill and border follow the node type (claim, premise, objection,
// reply, conclusion); attack edges are dashed, support edges solid. Unknown
// types and relations fall back to the plain style.
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz] in-process. PDF and PNG
// conversion requires librsvg (rsvg-convert).
package render
