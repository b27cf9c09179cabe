// Package render turns packed surfaces into pictures.
//
//   - [diagram]: draws a packed surface through an abstract emitter
//   - [diagram/sink]: SVG, PNG, PDF and JSON emitters
//   - [nodelink]: the combinatorial map itself as a Graphviz graph
//
// PDF is the one format drawn out of process: [ToPDF] pipes SVG through
// rsvg-convert from librsvg for both the PDF sink and node-link output.
//
//	pdf, err := render.ToPDF(ctx, svg)
//
// [diagram]: github.com/matzehuels/ribbonpack/pkg/render/diagram
// [diagram/sink]: github.com/matzehuels/ribbonpack/pkg/render/diagram/sink
// [nodelink]: github.com/matzehuels/ribbonpack/pkg/render/nodelink
package render
