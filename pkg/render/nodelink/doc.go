// Package nodelink renders combinatorial maps as node-link diagrams.
//
// This package produces an undirected Graphviz graph of a map: one node per
// vertex orbit, one edge per pair of darts, and a dangling edge for every
// unpaired dart. It is a quick structural view, useful for checking a map
// built from an expression before packing it.
//
// # Usage
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Detailed: true})
//	svg, err := nodelink.Render(ctx, dot, nodelink.SVG, 1)
//	png, err := nodelink.Render(ctx, dot, nodelink.PNG, 2)
//
// [github.com/goccy/go-graphviz] lays out and draws SVG and PNG in
// process. PDF additionally needs rsvg-convert from librsvg.
package nodelink
