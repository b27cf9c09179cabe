// Package expr implements a small expression language for building maps.
//
// # Syntax
//
// An expression is a function call, an integer, or a bracketed integer
// list:
//
//	closure(glue(vertex(4), vertex(3), 1))
//	closure(polygon(5), [1, 1, 1, 1, 1])
//	rotate(polygon(4), -1)
//	tree(3, 0)
//
// # Functions
//
// Webs are built with vertex, line, polygon, rotate, glue, normal and tree.
// morphism splits a web into domain and codomain; compose and tensor
// combine morphisms. closure turns a web or morphism into a closed map with
// an outer face. join, dual and subdivision produce maps without an outer
// face; face(map, dart) picks the face through a dart. [Functions] lists
// the exact signatures.
//
// # Evaluation
//
// [Eval] returns whatever the expression denotes. [Closed] additionally
// closes webs and morphisms, which is what the pack command and the HTTP
// API need. All errors carry the INVALID_EXPRESSION code unless they come
// from the map operations themselves.
package expr
