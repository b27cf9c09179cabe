// Package pkg provides the core libraries for Ribbonpack circle packing.
//
// # Overview
//
// Ribbonpack realizes combinatorial maps (ribbon graphs) geometrically: a
// closed map is triangulated, every vertex, edge and face becomes a circle,
// the radii are solved so tangent circles close up around each interior
// circle, and the packing is laid out in the plane and drawn. The pkg
// directory is organized into four main areas:
//
//  1. [ribbon], [web], [expr] - Building maps
//  2. [surface], [packing], [embed] - Solving and laying out packings
//  3. [render] - Drawing packings and maps
//  4. [pipeline] - Orchestration (build → pack → embed → render)
//
// # Architecture
//
// The typical data flow:
//
//	Expression / catalog example / map file
//	         ↓
//	    [expr] package (evaluate to a closed map)
//	         ↓
//	    [surface] package (circles, triangles, roles)
//	         ↓
//	    [packing] package (iterate radii to a fixed point)
//	         ↓
//	    [embed] package (place centres in the plane)
//	         ↓
//	    [render/diagram] package (layers onto an emitter)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/ribbonpack/pkg/expr"
//	    "github.com/matzehuels/ribbonpack/pkg/surface"
//	    "github.com/matzehuels/ribbonpack/pkg/packing"
//	    "github.com/matzehuels/ribbonpack/pkg/embed"
//	)
//
//	// 1. Evaluate an expression to a closed map
//	c, _ := expr.Closed("closure(polygon(5))")
//
//	// 2. Classify it
//	s, _ := surface.New(c.Map, c.Outer)
//
//	// 3. Solve the radii
//	p, _ := packing.Solve(context.Background(), s, packing.Config{})
//
//	// 4. Lay out the circles
//	l, _ := embed.Embed(s, p)
//
// # Main Packages
//
// ## Maps
//
// [ribbon] - Combinatorial maps as a rotation and a pairing of darts, with
// the surgery (join, stitch, normalize, closure) the other packages build on.
//
// [web] - Maps with a distinguished boundary: primitives, gluing along
// boundary runs, and enumeration of trees.
//
// [expr] - A small expression language over webs and maps, parsed with
// participle. [catalog] names a set of ready-made expressions.
//
// [io] - Map files in JSON and TOML.
//
// ## Packing
//
// [surface] - Triangulates a closed map into circles and triangles and
// assigns each circle a role (corner, boundary, interior).
//
// [packing] - Solves for radii with the basic or accelerated scheme.
//
// [embed] - Places circle centres by walking the triangulation.
//
// ## Visualization
//
// [render/diagram] - Draws graph, circles, medial, triangle and radical
// circle layers through an emitter; [render/diagram/sink] provides the
// SVG, PNG, PDF and JSON emitters.
//
// [render/nodelink] - The map itself as a Graphviz graph.
//
// ## Infrastructure
//
// [pipeline] - The complete build → pack → embed → render pipeline used by
// the CLI and the API server. Ensures consistent behavior across both.
//
// [cache] - Packing and artifact caches: file, Redis, MongoDB and null
// backends behind one interface.
//
// [httputil] - Downloads remote map files with retries.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and their HTTP status mapping.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/packing/...            # Specific package
//
// [ribbon]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/ribbon
// [web]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/web
// [expr]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/expr
// [catalog]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/catalog
// [io]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/io
// [surface]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/surface
// [packing]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/packing
// [embed]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/embed
// [render]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/render
// [render/diagram]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/render/diagram
// [render/diagram/sink]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/render/diagram/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/ribbonpack/pkg/errors
package pkg
