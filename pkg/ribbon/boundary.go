package ribbon

import (
	"fmt"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
)

// nextBoundary returns the boundary dart that follows x on its boundary
// component: step to c(x), then keep crossing edges with c(e(s)) until a
// boundary dart is reached.
func (m *Map) nextBoundary(x Dart) Dart {
	s := m.rot[x]
	for steps := 0; m.pair[s] != NoDart; steps++ {
		if steps > len(m.rot) {
			// unreachable for a valid map
			return x
		}
		s = m.rot[m.pair[s]]
	}
	return s
}

// BoundaryWalk returns the boundary component of the boundary dart x in
// cyclic order starting at x. It returns nil if x is not a boundary dart.
func (m *Map) BoundaryWalk(x Dart) []Dart {
	if !m.valid(x) || m.pair[x] != NoDart {
		return nil
	}
	b := []Dart{x}
	for t := m.nextBoundary(x); t != x; t = m.nextBoundary(t) {
		b = append(b, t)
		if len(b) > len(m.rot) {
			break
		}
	}
	return b
}

// Boundary returns the boundary component of the first boundary dart, or
// nil for a closed map.
func (m *Map) Boundary() []Dart {
	for x, y := range m.pair {
		if y == NoDart {
			return m.BoundaryWalk(Dart(x))
		}
	}
	return nil
}

// IsConnected reports whether a single boundary walk visits every boundary
// dart. The empty map is connected; a non-empty closed map has no boundary
// to walk and reports false.
func (m *Map) IsConnected() bool {
	if len(m.rot) == 0 {
		return true
	}
	bd := m.BoundaryDarts()
	if len(bd) == 0 {
		return false
	}
	return len(m.BoundaryWalk(bd[0])) == len(bd)
}

// Closure attaches a rim to the boundary of an open map and returns the
// resulting closed map together with its outer face.
//
// order lists every boundary dart exactly once in the cyclic order the rim
// visits them; nil means [Map.Boundary]. bv has one entry per corner of
// the rim giving how many boundary darts lie between consecutive corners;
// nil means one per boundary dart. bv must have at least three entries,
// none negative, summing to the number of boundary darts; otherwise
// Closure fails with [ErrInvalidBoundaryVector].
//
// The rim consists of a valency-two corner vertex per entry of bv and a
// trivalent vertex per boundary dart; rim darts are decorated
// (neither, black, over) and the dart capping boundary dart b takes the
// switched direction and the colour of b. The outer face starts at the
// outward dart of the first corner. The receiver is not modified.
func (m *Map) Closure(order []Dart, bv []int) (*Map, []Dart, error) {
	if order == nil {
		order = m.Boundary()
	}
	bd := m.BoundaryDarts()
	if len(order) != len(bd) {
		return nil, nil, fmt.Errorf("%w: boundary order lists %d of %d boundary darts", ErrInvalidBoundaryVector, len(order), len(bd))
	}
	seen := make(map[Dart]bool, len(order))
	for _, x := range order {
		if !m.valid(x) || m.pair[x] != NoDart || seen[x] {
			return nil, nil, fmt.Errorf("%w: boundary order is not a permutation of the boundary darts", ErrInvalidBoundaryVector)
		}
		seen[x] = true
	}

	if bv == nil {
		bv = make([]int, len(order))
		for i := range bv {
			bv[i] = 1
		}
	}
	if err := perrors.ValidateBoundaryVector(bv); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidBoundaryVector, perrors.UserMessage(err))
	}
	sum := 0
	for _, v := range bv {
		sum += v
	}
	if sum != len(order) {
		return nil, nil, fmt.Errorf("%w: entries sum to %d but there are %d boundary darts", ErrInvalidBoundaryVector, sum, len(order))
	}

	C, B := len(bv), len(order)
	g, tr := m.Copy()
	rim := Decoration{Direction: Neither, Colour: RimColour, Over: true}

	ci := make([]Dart, C)
	co := make([]Dart, C)
	for i := 0; i < C; i++ {
		ci[i] = g.add(rim, false)
		co[i] = g.add(rim, false)
		g.rot[ci[i]] = co[i]
		g.rot[co[i]] = ci[i]
	}

	bi := make([]Dart, B)
	bo := make([]Dart, B)
	bc := make([]Dart, B)
	for i := 0; i < B; i++ {
		nb := tr[order[i]]
		f := g.deco[nb]
		bi[i] = g.add(rim, false)
		bo[i] = g.add(rim, false)
		bc[i] = g.add(Decoration{Direction: f.Direction.Switch(), Colour: f.Colour, Over: true}, false)
		g.rot[bi[i]] = bo[i]
		g.rot[bo[i]] = bc[i]
		g.rot[bc[i]] = bi[i]
		g.link(bc[i], nb)
	}

	p := 0
	for i, a := range bv {
		r := co[(i-1+C)%C]
		for j := 0; j < a; j++ {
			g.link(bi[p], r)
			r = bo[p]
			p++
		}
		g.link(r, ci[i])
	}

	return g, g.FaceOf(co[0]), nil
}

// Subdivision returns the medial subdivision of a closed map and the
// inclusion of the original darts. Every dart x spawns four darts O, E, A,
// B with e(O) = E, e(A(x)) = B(c(x)), c(O(x)) = O(c(x)), c(E(x)) = B(x),
// c(A(x)) = E(x) and c(B(x)) = A(e(x)). O and E keep the decoration of x;
// A and B are undecorated.
func (m *Map) Subdivision() (*Map, []Dart, error) {
	if !m.IsClosed() {
		return nil, nil, ErrNotClosed
	}
	n := len(m.rot)
	O := func(x Dart) Dart { return x }
	E := func(x Dart) Dart { return Dart(n) + x }
	A := func(x Dart) Dart { return Dart(2*n) + x }
	B := func(x Dart) Dart { return Dart(3*n) + x }

	s := &Map{}
	plain := Decoration{Direction: Neither, Colour: MedialColour, Over: true}
	for k := 0; k < 4; k++ {
		for x := 0; x < n; x++ {
			if k < 2 {
				s.add(m.deco[x], false)
			} else {
				s.add(plain, false)
			}
		}
	}
	for i := 0; i < n; i++ {
		x := Dart(i)
		s.link(O(x), E(x))
		s.link(A(x), B(m.rot[x]))
		s.rot[O(x)] = O(m.rot[x])
		s.rot[E(x)] = B(x)
		s.rot[A(x)] = E(x)
		s.rot[B(x)] = A(m.pair[x])
	}

	inc := make([]Dart, n)
	for i := range inc {
		inc[i] = O(Dart(i))
	}
	return s, inc, nil
}
