package surface

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ribbonpack/pkg/ribbon"
)

func closedPolygon(t *testing.T, n int) (*ribbon.Map, []ribbon.Dart) {
	t.Helper()
	p, err := ribbon.Polygon(n)
	require.NoError(t, err)
	m, outer, err := p.Closure(nil, nil)
	require.NoError(t, err)
	return m, outer
}

func TestPentagonClassification(t *testing.T) {
	m, outer := closedPolygon(t, 5)
	s, err := New(m, outer)
	require.NoError(t, err)

	counts := s.RoleCounts()
	assert.Equal(t, map[Role]int{
		Corner:         5,
		BoundaryVertex: 5,
		InteriorVertex: 5,
		BoundaryEdge:   10,
		InteriorEdge:   10,
		Face:           6,
	}, counts)
	assert.Len(t, s.Triangles(), 60)

	var total float64
	for _, c := range s.Circles() {
		total += c.Angle
		assert.False(t, c.Boundary, "Neumann prescribes no radii")
		if c.Role == Corner {
			assert.InDelta(t, 0.6*math.Pi, c.Angle, 1e-12)
		}
	}
	assert.InDelta(t, 60*math.Pi, total, 1e-9)
	assert.Equal(t, Corner, s.Circle(s.Anchor()).Role)
}

func TestCircleOrder(t *testing.T) {
	m, outer := closedPolygon(t, 3)
	s, err := New(m, outer)
	require.NoError(t, err)

	prev := Corner
	for i, c := range s.Circles() {
		assert.Equal(t, i, c.Index)
		assert.GreaterOrEqual(t, c.Role, prev, "circle %d out of order", i)
		prev = c.Role
	}
	assert.InDelta(t, math.Pi/3, s.Circle(0).Angle, 1e-12)
}

func TestTriangles(t *testing.T) {
	m, outer := closedPolygon(t, 4)
	s, err := New(m, outer)
	require.NoError(t, err)

	tris := s.Triangles()
	half := len(tris) / 2
	require.Equal(t, 2*(m.Len()-len(outer)), len(tris))
	for i, tr := range tris {
		assert.Equal(t, i < half, tr.Positive)
		assert.True(t, s.Circle(tr.V).Role.IsVertex())
		assert.True(t, s.Circle(tr.E).Role.IsEdge())
		assert.Equal(t, Face, s.Circle(tr.F).Role)
		assert.True(t, tr.Contains(tr.E))
	}
	for x := range m.Len() {
		d := ribbon.Dart(x)
		assert.Equal(t, s.EdgeCircle(d), s.EdgeCircle(m.E(d)))
	}
	for _, x := range outer {
		assert.Equal(t, -1, s.FaceCircle(x))
	}
}

func TestGenus(t *testing.T) {
	m, outer := closedPolygon(t, 5)
	s, err := New(m, outer)
	require.NoError(t, err)
	g, err := s.Genus()
	require.NoError(t, err)
	assert.Equal(t, 0, g)

	v, err := ribbon.Vertex(3)
	require.NoError(t, err)
	p, err := ribbon.Polygon(3)
	require.NoError(t, err)
	torus, err := ribbon.Join(v, p, []ribbon.Dart{0, 1, 2}, []ribbon.Dart{0, 1, 2})
	require.NoError(t, err)

	ts, err := New(torus, torus.Faces()[0])
	require.NoError(t, err)
	assert.Equal(t, 0, ts.EulerCharacteristic())
	g, err = ts.Genus()
	require.NoError(t, err)
	assert.Equal(t, 1, g)

	_, err = genusFromEuler(1)
	assert.ErrorIs(t, err, ErrNonOrientable)
	g, err = genusFromEuler(-2)
	require.NoError(t, err)
	assert.Equal(t, 2, g)
}

func TestHasTadpole(t *testing.T) {
	m, outer := closedPolygon(t, 5)
	s, err := New(m, outer)
	require.NoError(t, err)
	assert.False(t, s.HasTadpole())

	// A single edge between two univalent vertices: its only face runs
	// along both sides.
	bar, err := ribbon.New(
		[]ribbon.Dart{0, 1},
		[]ribbon.Dart{1, 0},
		[]ribbon.Decoration{ribbon.Vanilla, ribbon.Vanilla},
		[]bool{false, false},
	)
	require.NoError(t, err)
	s, err = New(bar, []ribbon.Dart{0, 1})
	require.NoError(t, err)
	assert.True(t, s.HasTadpole())
	assert.Empty(t, s.Triangles())
}

func TestNewErrors(t *testing.T) {
	m, outer := closedPolygon(t, 5)

	tests := []struct {
		name  string
		m     *ribbon.Map
		outer []ribbon.Dart
		opts  []Option
		want  error
	}{
		{"hyperbolic", m, outer, []Option{WithGeometry(Hyperbolic)}, ErrUnsupportedGeometry},
		{"dirichlet", m, outer, []Option{WithBoundaryCondition(Dirichlet)}, ErrUnsupportedBoundaryCondition},
		{"cauchy", m, outer, []Option{WithBoundaryCondition(Cauchy)}, ErrUnsupportedBoundaryCondition},
		{"empty outer", m, nil, nil, ErrNotAFace},
		{"partial face", m, outer[:3], nil, ErrNotAFace},
		{"duplicate dart", m, append([]ribbon.Dart{outer[0]}, outer[:len(outer)-1]...), nil, ErrNotAFace},
		{"out of range", m, []ribbon.Dart{ribbon.Dart(m.Len())}, nil, ErrNotAFace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.m, tt.outer, tt.opts...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	p, err := ribbon.Polygon(5)
	require.NoError(t, err)
	_, err = New(p, p.Boundary())
	assert.ErrorIs(t, err, ErrNotClosed)
}

func TestNewCopiesMap(t *testing.T) {
	m, outer := closedPolygon(t, 3)
	s, err := New(m, outer, WithName("triangle"))
	require.NoError(t, err)
	assert.NotSame(t, m, s.Map())
	assert.Equal(t, "triangle", s.Name())
	assert.Equal(t, Euclidean, s.Geometry())
	assert.Equal(t, Neumann, s.BoundaryCondition())
}

func TestParse(t *testing.T) {
	g, err := ParseGeometry("Hyperbolic")
	require.NoError(t, err)
	assert.Equal(t, Hyperbolic, g)
	_, err = ParseGeometry("spherical")
	assert.Error(t, err)

	b, err := ParseBoundaryCondition("")
	require.NoError(t, err)
	assert.Equal(t, Neumann, b)
	_, err = ParseBoundaryCondition("robin")
	assert.Error(t, err)

	assert.Equal(t, "boundary-edge", BoundaryEdge.String())
	assert.Equal(t, "Role(9)", Role(9).String())
}
