// Package sink provides output formats for circle packing diagrams.
//
// # Overview
//
// A sink is a [diagram.Emitter] that assembles a document and exposes it
// through Bytes once Close has been called:
//
//   - [SVG]: an SVG document, one element per primitive
//   - [PNG]: a raster image drawn with golang.org/x/image/vector
//   - [PDF]: the SVG document converted by rsvg-convert
//   - [JSON]: the primitives as data, readable again with [ReadJSON]
//
// Basic usage:
//
//	s := sink.NewSVG(sink.WithTitle("pentagon"))
//	if err := diagram.Draw(surf, layout, s, diagram.DefaultOptions()); err != nil {
//	    return err
//	}
//	os.WriteFile("pentagon.svg", s.Bytes(), 0o644)
//
// [New] picks a sink by [Format], which is how the command line and the
// HTTP server select output.
//
// The PDF sink requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [diagram.Emitter]: github.com/matzehuels/ribbonpack/pkg/render/diagram.Emitter
package sink
