package ribbon

import "fmt"

// Vertex returns a single vertex of valency n whose darts are all boundary
// darts, listed in rotation order 0, 1, ..., n-1.
func Vertex(n int) (*Map, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: vertex valency must be positive, got %d", ErrInvalidArgument, n)
	}
	m := &Map{}
	for i := 0; i < n; i++ {
		m.add(Vanilla, false)
	}
	for i := 0; i < n; i++ {
		m.rot[i] = Dart((i + 1) % n)
	}
	return m, nil
}

// VertexOf returns a vertex whose darts carry the given decorations, in
// rotation order.
func VertexOf(decos []Decoration) (*Map, error) {
	m, err := Vertex(len(decos))
	if err != nil {
		return nil, err
	}
	copy(m.deco, decos)
	return m, nil
}

// Line returns a superfluous vertex of valency two. Both darts are
// interior, so [Map.Normalize] removes the vertex once it is stitched in.
func Line() *Map {
	m, _ := Vertex(2)
	m.interior[0] = true
	m.interior[1] = true
	return m
}

// Polygon returns an n-gon with one boundary dart at each corner: 3n darts,
// n trivalent vertices, boundary darts 0..n-1 in boundary order.
func Polygon(n int) (*Map, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: polygon needs at least one side, got %d", ErrInvalidArgument, n)
	}
	m := &Map{}
	for i := 0; i < 3*n; i++ {
		m.add(Vanilla, false)
	}
	a := func(i int) Dart { return Dart(i) }
	b1 := func(i int) Dart { return Dart(n + (i+n)%n) }
	b2 := func(i int) Dart { return Dart(2*n + (i+n)%n) }
	for i := 0; i < n; i++ {
		m.link(b1(i-1), b2(i))
		m.rot[a(i)] = b1(i)
		m.rot[b1(i)] = b2(i)
		m.rot[b2(i)] = a(i)
	}
	return m, nil
}
