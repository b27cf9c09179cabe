package ribbon

import (
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// Copy returns a structurally identical map with fresh darts, together with
// the old-to-new translation. The arena is compact, so the translation is
// the identity, but callers must still go through it: darts of one map are
// never valid in another.
func (m *Map) Copy() (*Map, []Dart) {
	c := &Map{
		rot:      append([]Dart(nil), m.rot...),
		pair:     append([]Dart(nil), m.pair...),
		deco:     append([]Decoration(nil), m.deco...),
		interior: append([]bool(nil), m.interior...),
	}
	tr := make([]Dart, len(m.rot))
	for i := range tr {
		tr[i] = Dart(i)
	}
	return c, tr
}

// Union returns the disjoint union of a and b with a translation for each.
func Union(a, b *Map) (*Map, []Dart, []Dart) {
	u, ta := a.Copy()
	off := Dart(a.Len())
	tb := make([]Dart, b.Len())
	for i := range tb {
		tb[i] = Dart(i) + off
	}
	for i := range b.rot {
		u.rot = append(u.rot, b.rot[i]+off)
		p := b.pair[i]
		if p != NoDart {
			p += off
		}
		u.pair = append(u.pair, p)
		u.deco = append(u.deco, b.deco[i])
		u.interior = append(u.interior, b.interior[i])
	}
	return u, ta, tb
}

// compatible reports whether two direction tags may be stitched.
func compatible(dx, dy Direction) bool {
	switch {
	case dx == Neither && dy == Neither:
		return true
	case dx == Head && dy == Tail:
		return true
	case dx == Tail && dy == Head:
		return true
	}
	return false
}

// Stitch bridges the boundary darts x and y with a fresh line: two interior
// darts u, v with c(u) = v, c(v) = u, e(x) = u and e(y) = v. u takes the
// direction of y and the colour of x; v takes the direction of x and the
// colour of y. Both are drawn over.
//
// It fails with [ErrIncompatibleBoundary] unless x and y are distinct
// boundary darts of equal colour whose directions pair as (neither,
// neither), (head, tail) or (tail, head). The map is unchanged on failure.
func (m *Map) Stitch(x, y Dart) error {
	if !m.valid(x) || !m.valid(y) {
		return fmt.Errorf("%w: dart out of range (%d, %d)", ErrInvalidArgument, x, y)
	}
	if x == y {
		return fmt.Errorf("%w: cannot stitch dart %d to itself", ErrIncompatibleBoundary, x)
	}
	if m.pair[x] != NoDart {
		return fmt.Errorf("%w: dart %d is not a boundary dart", ErrIncompatibleBoundary, x)
	}
	if m.pair[y] != NoDart {
		return fmt.Errorf("%w: dart %d is not a boundary dart", ErrIncompatibleBoundary, y)
	}
	dx, dy := m.deco[x], m.deco[y]
	if dx.Colour != dy.Colour {
		return fmt.Errorf("%w: colours %q and %q do not match", ErrIncompatibleBoundary, dx.Colour, dy.Colour)
	}
	if !compatible(dx.Direction, dy.Direction) {
		return fmt.Errorf("%w: directions %s and %s do not match", ErrIncompatibleBoundary, dx.Direction, dy.Direction)
	}

	u := m.add(Decoration{Direction: dy.Direction, Colour: dx.Colour, Over: true}, true)
	v := m.add(Decoration{Direction: dx.Direction, Colour: dy.Colour, Over: true}, true)
	m.rot[u] = v
	m.rot[v] = u
	m.link(x, u)
	m.link(y, v)
	return nil
}

// Join copies a and b, stitches ra[i] (darts of a) to rb[i] (darts of b)
// for every i, and normalizes the result. The inputs are not modified.
func Join(a, b *Map, ra, rb []Dart) (*Map, error) {
	if len(ra) != len(rb) {
		return nil, fmt.Errorf("%w: boundary lists have lengths %d and %d", ErrIncompatibleBoundary, len(ra), len(rb))
	}
	for _, x := range ra {
		if !a.valid(x) {
			return nil, fmt.Errorf("%w: dart %d is not in the first map", ErrInvalidArgument, x)
		}
	}
	for _, y := range rb {
		if !b.valid(y) {
			return nil, fmt.Errorf("%w: dart %d is not in the second map", ErrInvalidArgument, y)
		}
	}

	u, ta, tb := Union(a, b)
	for i := range ra {
		if err := u.Stitch(ta[ra[i]], tb[rb[i]]); err != nil {
			return nil, err
		}
	}
	u.Normalize()
	return u, nil
}

// Dual returns the dual of a closed map: the pairing is kept and the new
// rotation is x -> c(e(x)), so vertices and faces swap. Decorations and
// interior flags are carried over unchanged.
func (m *Map) Dual() (*Map, error) {
	if !m.IsClosed() {
		return nil, ErrNotClosed
	}
	d, _ := m.Copy()
	for x := range d.rot {
		d.rot[x] = m.rot[m.pair[x]]
	}
	return d, nil
}

// Normalize contracts superfluous valency-two bookkeeping vertices in
// place. For an interior dart x with e(x) defined and y = c(x):
//
//   - if e(y) is defined and differs from x, e(x) and e(y) are paired
//     directly and x, y are removed
//   - if e(y) is undefined, y replaces z = e(x) in the rotation of z's
//     vertex, inherits its interior flag, and x, z are removed
//
// Darts matching neither case are skipped. The arena is compacted
// afterwards; the returned slice translates old darts to new ones, with
// NoDart for removed darts.
func (m *Map) Normalize() []Dart {
	n := len(m.rot)
	removed := make([]bool, n)

	candidate := func(x Dart) bool {
		return !removed[x] && m.interior[x] && m.pair[x] != NoDart
	}
	q := linkedlistqueue.New()
	for i := 0; i < n; i++ {
		if candidate(Dart(i)) {
			q.Enqueue(Dart(i))
		}
	}
	push := func(ds ...Dart) {
		for _, d := range ds {
			if candidate(d) {
				q.Enqueue(d)
			}
		}
	}

	for !q.Empty() {
		v, _ := q.Dequeue()
		x := v.(Dart)
		if !candidate(x) {
			continue
		}
		y := m.rot[x]
		switch {
		case m.pair[y] != NoDart && m.pair[x] != y:
			px, py := m.pair[x], m.pair[y]
			m.link(px, py)
			removed[x], removed[y] = true, true
			m.pair[x], m.pair[y] = NoDart, NoDart
			push(px, py, m.Anti(px), m.Anti(py))

		case m.pair[y] == NoDart:
			z := m.pair[x]
			if m.rot[z] == z {
				m.rot[y] = y
			} else {
				a := m.Anti(z)
				m.rot[y] = m.rot[z]
				m.rot[a] = y
			}
			m.interior[y] = m.interior[z]
			removed[x], removed[z] = true, true
			m.pair[x], m.pair[z] = NoDart, NoDart
			push(y, m.Anti(y))
		}
	}

	return m.compact(removed)
}

// compact drops removed darts and renumbers the rest in order.
func (m *Map) compact(removed []bool) []Dart {
	tr := make([]Dart, len(m.rot))
	k := Dart(0)
	for i := range m.rot {
		if removed[i] {
			tr[i] = NoDart
			continue
		}
		tr[i] = k
		k++
	}

	rot := make([]Dart, 0, k)
	pair := make([]Dart, 0, k)
	deco := make([]Decoration, 0, k)
	interior := make([]bool, 0, k)
	for i := range m.rot {
		if removed[i] {
			continue
		}
		rot = append(rot, tr[m.rot[i]])
		p := m.pair[i]
		if p != NoDart {
			p = tr[p]
		}
		pair = append(pair, p)
		deco = append(deco, m.deco[i])
		interior = append(interior, m.interior[i])
	}
	m.rot, m.pair, m.deco, m.interior = rot, pair, deco, interior
	return tr
}
