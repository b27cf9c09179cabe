// Package surface turns a closed combinatorial map with a distinguished
// outer face into the input of a circle packing: a list of circles with
// roles and target cone angles, and the oriented triangles that tie them
// together.
//
// # Circles
//
// Every vertex, every edge and every face other than the outer face of the
// map becomes a circle. Under the Neumann boundary condition the boundary
// set is the outer face together with the pairs of its darts, and circles
// are classified as:
//
//   - [Corner]: a vertex of valency two touching the boundary set, target
//     angle (1 - 2/C)·π where C is the number of corners
//   - [BoundaryVertex]: any other vertex touching the boundary set, π
//   - [InteriorVertex]: every remaining vertex, 2π
//   - [BoundaryEdge]: an edge inside the boundary set, π
//   - [InteriorEdge]: every other edge, 2π
//   - [Face]: every face except the outer one, 2π
//
// Circles are listed in that order; the first circle is the anchor whose
// radius the solver holds fixed.
//
// # Triangles
//
// Each dart a outside the outer face yields two triangles: (V(a), E(a),
// F(a)) with positive orientation and (V(e(a)), E(a), F(a)) with negative
// orientation.
//
// # Extension points
//
// [Hyperbolic] geometry and the [Dirichlet] and [Cauchy] boundary
// conditions are named so configurations can refer to them, but [New]
// rejects them with UNSUPPORTED_GEOMETRY and
// UNSUPPORTED_BOUNDARY_CONDITION respectively.
package surface
