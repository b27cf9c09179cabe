// Package ribbon implements combinatorial maps (ribbon graphs): graphs
// cellularly embedded in an oriented surface, encoded by a cyclic rotation
// of half-edges at every vertex and a pairing of half-edges into edges.
//
// # Overview
//
// A [Map] is an arena of darts addressed by [Dart] indices. Two
// permutations act on the darts:
//
//   - the rotation c, a total bijection whose cycles are the vertices
//   - the pairing e, a fixed-point-free involution defined on the interior
//     darts, whose cycles are the edges
//
// Darts on which e is undefined are boundary darts; a map without boundary
// darts is closed. Faces are the cycles of x -> c(e(x)), with e extended by
// the identity on boundary darts so the step remains a bijection on open
// maps.
//
// # Construction
//
// Maps are built from the primitive constructors [Vertex], [VertexOf],
// [Line] and [Polygon], or from raw permutation arrays with [New], which
// validates every invariant. Surgery combines and reshapes them:
//
//	f, _ := ribbon.Vertex(4)
//	g, _ := ribbon.Vertex(3)
//	h, err := ribbon.Join(f, g, f.BoundaryWalk(0)[:2], g.BoundaryWalk(0)[:2])
//
// [Map.Stitch] bridges two boundary darts with a fresh pair of bookkeeping
// darts, [Map.Normalize] contracts those bookkeeping vertices again, and
// [Join] does both for two whole boundary lists. [Map.Closure] attaches a
// rim to an open map and returns a closed map together with its outer
// face, the input expected by the surface package.
//
// # Decorations
//
// Every dart carries a [Decoration] (direction tag, colour, crossing flag)
// and an interior flag marking bookkeeping darts. Decorations are plain
// values; [Map.SetDecoration] is the only way to change one.
//
// # Orbits
//
// [Map.Vertices], [Map.Edges] and [Map.Faces] partition the darts. The
// content of each orbit is deterministic, but neither the start dart of a
// cycle nor the order of the cycles is part of the contract; compare
// multisets in tests.
//
// # Concurrency
//
// Map instances are not safe for concurrent use. Every structural operation
// assumes exclusive access and either mutates in place or returns a fresh,
// disjoint map together with an explicit old-to-new [Dart] translation.
package ribbon
