package ribbon

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
)

// requireMap checks the map invariants and that vertex, edge and face
// orbits each partition the darts.
func requireMap(t *testing.T, m *Map) {
	t.Helper()
	require.NoError(t, m.Validate())
	for name, orbits := range map[string][][]Dart{
		"vertices": m.Vertices(),
		"edges":    m.Edges(),
		"faces":    m.Faces(),
	} {
		seen := make([]int, m.Len())
		for _, o := range orbits {
			for _, x := range o {
				seen[x]++
			}
		}
		for x, c := range seen {
			require.Equalf(t, 1, c, "%s: dart %d covered %d times", name, x, c)
		}
	}
}

func orbitSizes(orbits [][]Dart) []int {
	sizes := make([]int, len(orbits))
	for i, o := range orbits {
		sizes[i] = len(o)
	}
	slices.Sort(sizes)
	return sizes
}

func mustVertex(t *testing.T, n int) *Map {
	t.Helper()
	m, err := Vertex(n)
	require.NoError(t, err)
	return m
}

func mustPolygon(t *testing.T, n int) *Map {
	t.Helper()
	m, err := Polygon(n)
	require.NoError(t, err)
	return m
}

// tetrahedron joins a trivalent vertex onto a triangle. The reversed
// boundary order keeps the result planar.
func tetrahedron(t *testing.T) *Map {
	t.Helper()
	m, err := Join(mustVertex(t, 3), mustPolygon(t, 3), []Dart{0, 1, 2}, []Dart{0, 2, 1})
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		rot     []Dart
		pair    []Dart
		wantErr bool
	}{
		{"single vertex", []Dart{1, 2, 0}, []Dart{NoDart, NoDart, NoDart}, false},
		{"loop", []Dart{1, 0}, []Dart{1, 0}, false},
		{"empty", nil, nil, false},

		{"length mismatch", []Dart{0}, []Dart{NoDart, NoDart}, true},
		{"rotation not bijective", []Dart{1, 1}, []Dart{NoDart, NoDart}, true},
		{"rotation out of range", []Dart{5}, []Dart{NoDart}, true},
		{"pairing fixed point", []Dart{1, 0}, []Dart{0, NoDart}, true},
		{"pairing not involutive", []Dart{1, 2, 0}, []Dart{1, 2, NoDart}, true},
		{"pairing out of range", []Dart{0}, []Dart{3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.rot, tt.pair, nil, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvariant))
				assert.True(t, perrors.Is(err, perrors.ErrCodeStructuralInvariant))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rot), m.Len())
			for _, x := range m.Darts() {
				assert.Equal(t, Vanilla, m.Decoration(x))
			}
		})
	}
}

func TestConstructorsRejectNonPositive(t *testing.T) {
	_, err := Vertex(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Polygon(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = VertexOf(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPolygonVertexOrbits(t *testing.T) {
	for n := 3; n <= 9; n++ {
		m := mustPolygon(t, n)
		requireMap(t, m)

		vs := m.Vertices()
		require.Len(t, vs, n, "n=%d", n)
		for _, v := range vs {
			assert.Len(t, v, 3, "n=%d", n)
		}
		assert.Len(t, m.BoundaryDarts(), n)
		assert.Equal(t, 3*n, m.Len())
	}
}

func TestPolygonBoundaryWalk(t *testing.T) {
	m := mustPolygon(t, 5)
	assert.Equal(t, []Dart{0, 1, 2, 3, 4}, m.Boundary())
	assert.Equal(t, []Dart{2, 3, 4, 0, 1}, m.BoundaryWalk(2))
	assert.Nil(t, m.BoundaryWalk(5), "interior dart has no boundary walk")
	assert.True(t, m.IsConnected())
}

func TestLine(t *testing.T) {
	m := Line()
	requireMap(t, m)
	assert.True(t, m.IsInterior(0))
	assert.True(t, m.IsInterior(1))
	assert.Equal(t, Dart(1), m.C(0))
	assert.Equal(t, Dart(0), m.Anti(1))
}

func TestStitch(t *testing.T) {
	deco := func(d Direction, c string) Decoration { return Decoration{Direction: d, Colour: c, Over: false} }

	tests := []struct {
		name    string
		x, y    Decoration
		wantErr bool
	}{
		{"neither neither", deco(Neither, "red"), deco(Neither, "red"), false},
		{"head tail", deco(Head, "red"), deco(Tail, "red"), false},
		{"tail head", deco(Tail, "blue"), deco(Head, "blue"), false},

		{"head head", deco(Head, "red"), deco(Head, "red"), true},
		{"neither tail", deco(Neither, "red"), deco(Tail, "red"), true},
		{"colour mismatch", deco(Neither, "red"), deco(Neither, "blue"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := VertexOf([]Decoration{tt.x, tt.y})
			require.NoError(t, err)

			err = m.Stitch(0, 1)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncompatibleBoundary)
				assert.Equal(t, 2, m.Len(), "map must be unchanged on failure")
				return
			}
			require.NoError(t, err)
			requireMap(t, m)

			u, v := m.E(0), m.E(1)
			assert.Equal(t, v, m.C(u))
			assert.Equal(t, u, m.C(v))
			assert.True(t, m.IsInterior(u))
			assert.True(t, m.IsInterior(v))
			assert.Equal(t, Decoration{Direction: tt.y.Direction, Colour: tt.x.Colour, Over: true}, m.Decoration(u))
			assert.Equal(t, Decoration{Direction: tt.x.Direction, Colour: tt.y.Colour, Over: true}, m.Decoration(v))
		})
	}
}

func TestStitchRejectsPairedDart(t *testing.T) {
	m := mustPolygon(t, 3)
	err := m.Stitch(0, 3)
	assert.ErrorIs(t, err, ErrIncompatibleBoundary)
	assert.True(t, perrors.Is(err, perrors.ErrCodeIncompatibleBoundary))

	err = m.Stitch(0, 0)
	assert.ErrorIs(t, err, ErrIncompatibleBoundary)
}

func TestJoinTetrahedron(t *testing.T) {
	m := tetrahedron(t)
	requireMap(t, m)

	assert.True(t, m.IsClosed())
	assert.Equal(t, 12, m.Len())
	assert.Equal(t, []int{3, 3, 3, 3}, orbitSizes(m.Vertices()))
	assert.Len(t, m.Edges(), 6)
	assert.Equal(t, []int{3, 3, 3, 3}, orbitSizes(m.Faces()))
	assert.Equal(t, 2, m.EulerCharacteristic())
	for _, x := range m.Darts() {
		assert.False(t, m.IsInterior(x), "normalize must remove every bookkeeping dart")
	}
}

func TestJoinTwisted(t *testing.T) {
	// The same pieces glued in the other cyclic order give a torus.
	m, err := Join(mustVertex(t, 3), mustPolygon(t, 3), []Dart{0, 1, 2}, []Dart{0, 1, 2})
	require.NoError(t, err)
	requireMap(t, m)
	assert.Equal(t, 0, m.EulerCharacteristic())
}

func TestJoinLengthMismatch(t *testing.T) {
	_, err := Join(mustVertex(t, 3), mustVertex(t, 3), []Dart{0}, []Dart{0, 1})
	assert.ErrorIs(t, err, ErrIncompatibleBoundary)
}

func TestJoinPartial(t *testing.T) {
	f, g := mustVertex(t, 4), mustVertex(t, 3)
	m, err := Join(f, g, f.Boundary()[:2], g.Boundary()[:2])
	require.NoError(t, err)
	requireMap(t, m)

	assert.Equal(t, []int{0, 0, 0, 1, 1}, m.CountVertices())
	assert.Len(t, m.BoundaryDarts(), 3)
	assert.Equal(t, 4, f.Len(), "inputs are not modified")
	assert.Equal(t, 3, g.Len())
}

func TestCopyIsomorphic(t *testing.T) {
	maps := map[string]*Map{
		"vertex":      mustVertex(t, 5),
		"polygon":     mustPolygon(t, 6),
		"tetrahedron": tetrahedron(t),
		"line":        Line(),
	}
	for name, m := range maps {
		t.Run(name, func(t *testing.T) {
			c, tr := m.Copy()
			requireMap(t, c)
			require.Len(t, tr, m.Len())

			assert.Equal(t, orbitSizes(m.Vertices()), orbitSizes(c.Vertices()))
			assert.Equal(t, orbitSizes(m.Edges()), orbitSizes(c.Edges()))
			assert.Equal(t, orbitSizes(m.Faces()), orbitSizes(c.Faces()))

			for _, x := range m.Darts() {
				assert.Equal(t, tr[m.C(x)], c.C(tr[x]))
			}

			// mutations of the copy never reach the original
			c.SetDecoration(tr[0], Decoration{Colour: "green"})
			assert.NotEqual(t, "green", m.Decoration(0).Colour)
		})
	}
}

func TestUnion(t *testing.T) {
	a, b := mustPolygon(t, 3), mustVertex(t, 2)
	u, ta, tb := Union(a, b)
	requireMap(t, u)
	assert.Equal(t, 11, u.Len())
	assert.Equal(t, Dart(9), tb[0])
	assert.Equal(t, Dart(0), ta[0])
	assert.Len(t, u.BoundaryDarts(), 5)
}

func TestDual(t *testing.T) {
	m := tetrahedron(t)
	d, err := m.Dual()
	require.NoError(t, err)
	requireMap(t, d)

	canon := func(orbits [][]Dart) [][]Dart {
		out := make([][]Dart, len(orbits))
		for i, o := range orbits {
			out[i] = slices.Sorted(slices.Values(o))
		}
		slices.SortFunc(out, func(a, b []Dart) int { return int(a[0] - b[0]) })
		return out
	}
	assert.Equal(t, canon(m.Faces()), canon(d.Vertices()))
	assert.Equal(t, canon(m.Vertices()), canon(d.Faces()))
	assert.Equal(t, m.EulerCharacteristic(), d.EulerCharacteristic())

	_, err = mustVertex(t, 3).Dual()
	assert.ErrorIs(t, err, ErrNotClosed)
}

func TestNormalize(t *testing.T) {
	t.Run("isolated line is kept", func(t *testing.T) {
		m := Line()
		tr := m.Normalize()
		assert.Equal(t, []Dart{0, 1}, tr)
		requireMap(t, m)
	})

	t.Run("line between two vertices", func(t *testing.T) {
		u, _, tb := Union(mustVertex(t, 3), Line())
		require.NoError(t, u.Stitch(0, tb[0]))
		requireMap(t, u)
		tr := u.Normalize()
		requireMap(t, u)

		// the free end of the line takes the place of dart 0
		assert.Equal(t, 3, u.Len())
		assert.Equal(t, NoDart, tr[0])
		assert.Len(t, u.BoundaryDarts(), 3)
		assert.Equal(t, []int{0, 0, 0, 1}, u.CountVertices())
	})

	t.Run("idempotent", func(t *testing.T) {
		m := tetrahedron(t)
		before := m.Len()
		tr := m.Normalize()
		assert.Equal(t, before, m.Len())
		for i, x := range tr {
			assert.Equal(t, Dart(i), x)
		}
	})
}

func TestIsConnected(t *testing.T) {
	u, _, _ := Union(mustVertex(t, 3), mustVertex(t, 2))
	assert.False(t, u.IsConnected())
	assert.True(t, (&Map{}).IsConnected())
	assert.False(t, tetrahedron(t).IsConnected(), "closed maps have no boundary to walk")
}

func TestClosurePentagon(t *testing.T) {
	p := mustPolygon(t, 5)
	g, outer, err := p.Closure(nil, nil)
	require.NoError(t, err)
	requireMap(t, g)

	assert.True(t, g.IsClosed())
	assert.Equal(t, 40, g.Len())
	assert.Len(t, outer, 10)
	assert.Len(t, g.Vertices(), 15)
	assert.Len(t, g.Edges(), 20)
	assert.Len(t, g.Faces(), 7)
	assert.Equal(t, 2, g.EulerCharacteristic())
	assert.Equal(t, []int{0, 0, 5, 10}, g.CountVertices())
	assert.Equal(t, 15, p.Len(), "receiver is not modified")

	// outer is a face orbit
	assert.ElementsMatch(t, outer, g.FaceOf(outer[0]))
	for _, x := range outer {
		assert.Equal(t, RimColour, g.Decoration(x).Colour)
	}
}

func TestClosureCapsDirections(t *testing.T) {
	m, err := VertexOf([]Decoration{
		{Direction: Head, Colour: "red", Over: true},
		{Direction: Tail, Colour: "blue", Over: true},
		{Direction: Neither, Colour: "red", Over: true},
	})
	require.NoError(t, err)
	g, _, err := m.Closure(nil, nil)
	require.NoError(t, err)
	requireMap(t, g)

	assert.Equal(t, Decoration{Direction: Tail, Colour: "red", Over: true}, g.Decoration(g.E(0)))
	assert.Equal(t, Decoration{Direction: Head, Colour: "blue", Over: true}, g.Decoration(g.E(1)))
	assert.Equal(t, Decoration{Direction: Neither, Colour: "red", Over: true}, g.Decoration(g.E(2)))
}

func TestClosureBoundaryVector(t *testing.T) {
	p := mustPolygon(t, 4)

	tests := []struct {
		name    string
		bv      []int
		wantErr bool
	}{
		{"ones", []int{1, 1, 1, 1}, false},
		{"with empty sides", []int{2, 0, 2, 0}, false},
		{"three corners", []int{2, 1, 1}, false},

		{"wrong sum", []int{1, 1, 1}, true},
		{"too few corners", []int{2, 2}, true},
		{"negative", []int{3, -1, 1, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, outer, err := p.Closure(nil, tt.bv)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBoundaryVector)
				assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidBoundaryVector))
				return
			}
			require.NoError(t, err)
			requireMap(t, g)
			assert.Len(t, outer, len(tt.bv)+4)
			assert.Equal(t, 2, g.EulerCharacteristic())
		})
	}
}

func TestClosureRejectsBadOrder(t *testing.T) {
	p := mustPolygon(t, 3)
	_, _, err := p.Closure([]Dart{0, 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidBoundaryVector)
	_, _, err = p.Closure([]Dart{0, 1, 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidBoundaryVector)
	_, _, err = p.Closure([]Dart{0, 1, 3}, nil)
	assert.ErrorIs(t, err, ErrInvalidBoundaryVector)
}

func TestSubdivision(t *testing.T) {
	m := tetrahedron(t)
	s, inc, err := m.Subdivision()
	require.NoError(t, err)
	requireMap(t, s)

	assert.True(t, s.IsClosed())
	assert.Equal(t, 4*m.Len(), s.Len())
	assert.Equal(t, 2, s.EulerCharacteristic())
	require.Len(t, inc, m.Len())
	for _, x := range m.Darts() {
		assert.Equal(t, inc[m.C(x)], s.C(inc[x]), "original rotation is preserved")
		assert.Equal(t, m.Decoration(x), s.Decoration(inc[x]))
	}

	_, _, err = mustPolygon(t, 3).Subdivision()
	assert.ErrorIs(t, err, ErrNotClosed)
}

func TestDirection(t *testing.T) {
	for _, d := range []Direction{Neither, Head, Tail} {
		got, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
		assert.Equal(t, d, d.Switch().Switch())
	}
	assert.Equal(t, Tail, Head.Switch())
	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

func randomPiece(t *testing.T, rng *rand.Rand) *Map {
	t.Helper()
	n := 3 + rng.IntN(4)
	if rng.IntN(2) == 0 {
		return mustVertex(t, n)
	}
	return mustPolygon(t, n)
}

// TestRandomSurgery runs seeded sequences of join, stitch, copy, closure,
// dual and subdivision and checks the map invariants after every step.
func TestRandomSurgery(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, 0x5eed))

		a, b := randomPiece(t, rng), randomPiece(t, rng)
		ba, bb := a.BoundaryDarts(), b.BoundaryDarts()
		j := 1 + rng.IntN(min(len(ba), len(bb), (len(ba)+len(bb)-3)/2))
		m, err := Join(a, b, ba[:j], bb[:j])
		require.NoError(t, err, "seed %d: join %d", seed, j)
		requireMap(t, m)
		require.Len(t, m.BoundaryDarts(), len(ba)+len(bb)-2*j, "seed %d", seed)

		if bd := m.BoundaryDarts(); len(bd) >= 5 {
			x := rng.IntN(len(bd))
			y := (x + 1 + rng.IntN(len(bd)-1)) % len(bd)
			require.NoError(t, m.Stitch(bd[x], bd[y]), "seed %d", seed)
			requireMap(t, m)
			m.Normalize()
			requireMap(t, m)
			require.Len(t, m.BoundaryDarts(), len(bd)-2, "seed %d", seed)
		}

		c, tr := m.Copy()
		requireMap(t, c)
		require.Equal(t, m.Len(), c.Len())
		for x := range Dart(m.Len()) {
			require.Equal(t, tr[m.C(x)], c.C(tr[x]))
			if y := m.E(x); y != NoDart {
				require.Equal(t, tr[y], c.E(tr[x]))
			} else {
				require.Equal(t, NoDart, c.E(tr[x]))
			}
		}

		closed, outer, err := c.Closure(c.BoundaryDarts(), nil)
		require.NoError(t, err, "seed %d", seed)
		requireMap(t, closed)
		require.True(t, closed.IsClosed())
		require.NotEmpty(t, outer)

		dual, err := closed.Dual()
		require.NoError(t, err, "seed %d", seed)
		requireMap(t, dual)
		assert.Len(t, dual.Vertices(), len(closed.Faces()), "seed %d", seed)
		assert.Len(t, dual.Faces(), len(closed.Vertices()), "seed %d", seed)
		back, err := dual.Dual()
		require.NoError(t, err)
		for x := range Dart(closed.Len()) {
			require.Equal(t, closed.C(x), back.C(x), "seed %d: dual of dual", seed)
		}

		sub, _, err := closed.Subdivision()
		require.NoError(t, err, "seed %d", seed)
		requireMap(t, sub)
		assert.Equal(t, 4*closed.Len(), sub.Len())
		assert.Equal(t, closed.EulerCharacteristic(), sub.EulerCharacteristic(), "seed %d", seed)
	}
}
