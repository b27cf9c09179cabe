// Package diagram draws a packed surface through an abstract [Emitter].
//
// # Layers
//
// [Draw] emits up to five layers, selected by [Options]:
//
//   - graph: one line per half edge, from the vertex circle towards the
//     edge circle, in the dart's colour and with an arrowhead when the
//     dart is a tail. Under-crossing half edges start a fifth of the way
//     along.
//   - circles: the packing circles, in yellow.
//   - medial: a purple polygon through the edge circles around each face.
//   - triangles: the triangulation, blue for positive and green for
//     negative triangles.
//   - radical circles: the circle orthogonal to the three circles of each
//     triangle, in red.
//
// All coordinates are canvas coordinates from [embed.Layout.Transform].
//
// # Emitters
//
// The [Recorder] keeps primitives in memory, which is convenient for tests
// and for replaying a drawing into several sinks. File formats live in the
// [sink] subpackage.
//
// [sink]: github.com/matzehuels/ribbonpack/pkg/render/diagram/sink
package diagram
