// Package web provides webs: combinatorial maps with a cyclically ordered,
// based boundary. Webs are the building blocks of a spider. The basic
// operations are [Web.Rotate] and [Glue], and [Web.Closure] turns a web
// into a closed map ready for circle packing.
//
// Every operation returns a fresh web; the inputs are never modified.
package web

import (
	"fmt"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
)

// ErrInvalidWeb is returned when a boundary list does not match the
// boundary darts of its map, or an operation gets an unusable argument.
var ErrInvalidWeb = perrors.New(perrors.ErrCodeInvalidInput, "invalid web")

// Web is a combinatorial map whose boundary darts are listed in boundary
// order starting at a base point.
type Web struct {
	m  *ribbon.Map
	bd []ribbon.Dart
}

// New wraps m with the boundary order bd, which must list every boundary
// dart of m exactly once.
func New(m *ribbon.Map, bd []ribbon.Dart) (*Web, error) {
	want := m.BoundaryDarts()
	if len(bd) != len(want) {
		return nil, fmt.Errorf("%w: boundary lists %d darts, map has %d", ErrInvalidWeb, len(bd), len(want))
	}
	seen := make(map[ribbon.Dart]bool, len(bd))
	for _, x := range bd {
		if int(x) < 0 || int(x) >= m.Len() || !m.IsBoundary(x) || seen[x] {
			return nil, fmt.Errorf("%w: dart %d is not an unlisted boundary dart", ErrInvalidWeb, x)
		}
		seen[x] = true
	}
	return &Web{m: m, bd: append([]ribbon.Dart(nil), bd...)}, nil
}

// Map returns the underlying map. Callers must not modify it.
func (w *Web) Map() *ribbon.Map { return w.m }

// Boundary returns a copy of the boundary order.
func (w *Web) Boundary() []ribbon.Dart { return append([]ribbon.Dart(nil), w.bd...) }

// Len returns the number of boundary points.
func (w *Web) Len() int { return len(w.bd) }

func fromPrimitive(m *ribbon.Map, err error) (*Web, error) {
	if err != nil {
		return nil, err
	}
	return &Web{m: m, bd: m.Boundary()}, nil
}

// Vertex returns a single vertex of valency n.
func Vertex(n int) (*Web, error) { return fromPrimitive(ribbon.Vertex(n)) }

// VertexOf returns a vertex whose boundary points carry decos.
func VertexOf(decos []ribbon.Decoration) (*Web, error) {
	return fromPrimitive(ribbon.VertexOf(decos))
}

// Line returns a superfluous vertex of valency two.
func Line() *Web {
	w, _ := fromPrimitive(ribbon.Line(), nil)
	return w
}

// Polygon returns an n-gon with one boundary point per corner.
func Polygon(n int) (*Web, error) { return fromPrimitive(ribbon.Polygon(n)) }

// Copy returns a disjoint copy of w.
func (w *Web) Copy() *Web {
	m, tr := w.m.Copy()
	return &Web{m: m, bd: translate(tr, w.bd)}
}

// Rotate returns a copy of w whose base point has moved n steps
// anticlockwise: the boundary list is rotated right by n. Negative n
// rotates the other way.
func (w *Web) Rotate(n int) *Web {
	c := w.Copy()
	l := len(c.bd)
	if l == 0 {
		return c
	}
	n = ((n % l) + l) % l
	c.bd = append(c.bd[l-n:], c.bd[:l-n]...)
	return c
}

// Normal returns a copy of w with superfluous vertices contracted.
func (w *Web) Normal() *Web {
	c := w.Copy()
	tr := c.m.Normalize()
	c.bd = translate(tr, c.bd)
	return c
}

// IsConnected reports whether walking the boundary from the base point
// visits the boundary points in exactly the listed order.
func (w *Web) IsConnected() bool {
	if len(w.bd) == 0 {
		return w.m.IsConnected()
	}
	walk := w.m.BoundaryWalk(w.bd[0])
	if len(walk) != len(w.bd) {
		return false
	}
	for i := range walk {
		if walk[i] != w.bd[i] {
			return false
		}
	}
	return true
}

// Glue stitches the last n boundary points of g, taken from the end, to
// the first n boundary points of h. The boundary of the result is the rest
// of g followed by the rest of h. The bookkeeping lines are kept; use
// [Web.Normal] to remove them.
func Glue(g, h *Web, n int) (*Web, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: need a non-negative number of points, got %d", ErrInvalidWeb, n)
	}
	if n > len(g.bd) || n > len(h.bd) {
		return nil, fmt.Errorf("%w: cannot glue %d points (boundaries %d and %d)", ErrInvalidWeb, n, len(g.bd), len(h.bd))
	}

	u, tg, th := ribbon.Union(g.m, h.m)
	a := translate(tg, g.bd)
	b := translate(th, h.bd)
	for i := 0; i < n; i++ {
		x := a[len(a)-1]
		a = a[:len(a)-1]
		y := b[0]
		b = b[1:]
		if err := u.Stitch(x, y); err != nil {
			return nil, err
		}
	}
	return &Web{m: u, bd: append(a, b...)}, nil
}

// Closure closes w with the boundary valence vector bv (nil means one
// boundary point between consecutive corners) and returns the closed map
// and its outer face.
func (w *Web) Closure(bv []int) (*ribbon.Map, []ribbon.Dart, error) {
	return w.m.Closure(w.bd, bv)
}

// Trees returns every planar rooted binary tree with n trivalent vertices
// and n+2 boundary points. There are Catalan(n) of them. Trees(0) is the
// single line.
func Trees(n int) ([]*Web, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: need a non-negative number of vertices, got %d", ErrInvalidWeb, n)
	}
	tri, _ := Vertex(3)
	result := [][]*Web{{Line()}, {tri}}
	for k := 2; k <= n; k++ {
		var out []*Web
		for r := 0; r < k; r++ {
			for _, gf := range result[r] {
				for _, gs := range result[k-r-1] {
					t, err := graft(gf, gs, tri)
					if err != nil {
						return nil, err
					}
					out = append(out, t)
				}
			}
		}
		result = append(result, out)
	}
	if n <= 1 {
		return []*Web{result[n][0].Copy()}, nil
	}
	trees := make([]*Web, len(result[n]))
	for i, t := range result[n] {
		trees[i] = t.Normal()
	}
	return trees, nil
}

// graft hangs gf and gs below a fresh trivalent root.
func graft(gf, gs, tri *Web) (*Web, error) {
	g, err := Glue(gs, Line(), 0)
	if err != nil {
		return nil, err
	}
	h, err := Glue(gf, g.Rotate(1), 1)
	if err != nil {
		return nil, err
	}
	return Glue(h, tri, 2)
}

// MaxIndexedTrees is the largest n for which [CountTrees] fits in an int.
const MaxIndexedTrees = 35

// CountTrees returns the number of planar rooted binary trees with n
// trivalent vertices, the n-th Catalan number.
func CountTrees(n int) (int, error) {
	counts, err := catalan(n)
	if err != nil {
		return 0, err
	}
	return counts[n], nil
}

func catalan(n int) ([]int, error) {
	if n < 0 || n > MaxIndexedTrees {
		return nil, fmt.Errorf("%w: tree size %d outside [0, %d]", ErrInvalidWeb, n, MaxIndexedTrees)
	}
	counts := make([]int, n+1)
	counts[0] = 1
	for k := 1; k <= n; k++ {
		for r := range k {
			counts[k] += counts[r] * counts[k-r-1]
		}
	}
	return counts, nil
}

// Tree returns Trees(n)[i] without building the other trees: the index is
// decoded into the sizes and indices of the two subtrees, recursively.
func Tree(n, i int) (*Web, error) {
	counts, err := catalan(n)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= counts[n] {
		return nil, fmt.Errorf("%w: tree index %d out of range [0, %d)", ErrInvalidWeb, i, counts[n])
	}
	tri, _ := Vertex(3)
	t, err := unrankTree(n, i, counts, tri)
	if err != nil {
		return nil, err
	}
	if n <= 1 {
		return t.Copy(), nil
	}
	return t.Normal(), nil
}

func unrankTree(k, i int, counts []int, tri *Web) (*Web, error) {
	switch k {
	case 0:
		return Line(), nil
	case 1:
		return tri, nil
	}
	for r := range k {
		right := counts[k-r-1]
		if block := counts[r] * right; i >= block {
			i -= block
			continue
		}
		gf, err := unrankTree(r, i/right, counts, tri)
		if err != nil {
			return nil, err
		}
		gs, err := unrankTree(k-r-1, i%right, counts, tri)
		if err != nil {
			return nil, err
		}
		return graft(gf, gs, tri)
	}
	return nil, fmt.Errorf("%w: tree index out of range", ErrInvalidWeb)
}

func translate(tr []ribbon.Dart, ds []ribbon.Dart) []ribbon.Dart {
	out := make([]ribbon.Dart, len(ds))
	for i, x := range ds {
		out[i] = tr[x]
	}
	return out
}
