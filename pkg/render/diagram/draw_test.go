package diagram

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/matrix"

	"github.com/matzehuels/ribbonpack/pkg/embed"
	"github.com/matzehuels/ribbonpack/pkg/packing"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

func packed(t *testing.T, m *ribbon.Map, outer []ribbon.Dart) (*surface.Surface, *embed.Layout) {
	t.Helper()
	s, err := surface.New(m, outer)
	require.NoError(t, err)
	p, err := packing.Solve(context.Background(), s, packing.Config{})
	require.NoError(t, err)
	l, err := embed.Embed(s, p)
	require.NoError(t, err)
	return s, l
}

func pentagon(t *testing.T) (*ribbon.Map, []ribbon.Dart) {
	t.Helper()
	p, err := ribbon.Polygon(5)
	require.NoError(t, err)
	m, outer, err := p.Closure(nil, nil)
	require.NoError(t, err)
	return m, outer
}

func TestDrawAllLayers(t *testing.T) {
	m, outer := pentagon(t)
	s, l := packed(t, m, outer)

	var rec Recorder
	require.NoError(t, Draw(s, l, &rec, AllOptions()))
	assert.True(t, rec.Closed)

	assert.Equal(t, 40, rec.Count(KindLine, ""))
	assert.Equal(t, 41, rec.Count(KindCircle, ColourCircle))
	assert.Equal(t, 60, rec.Count(KindCircle, ColourRadical))
	assert.Equal(t, 6, rec.Count(KindPolygon, ColourMedial))
	assert.Equal(t, 30, rec.Count(KindPolygon, ColourPositive))
	assert.Equal(t, 30, rec.Count(KindPolygon, ColourNegative))

	// Layers arrive in order: graph lines first, radical circles last.
	assert.Equal(t, KindLine, rec.Primitives[0].Kind)
	last := rec.Primitives[len(rec.Primitives)-1]
	assert.Equal(t, ColourRadical, last.Colour)

	for _, p := range rec.Primitives {
		for _, pt := range p.Points {
			assert.False(t, math.IsNaN(pt.X) || math.IsNaN(pt.Y))
		}
	}
}

func TestDrawDefaultOptions(t *testing.T) {
	m, outer := pentagon(t)
	s, l := packed(t, m, outer)

	var rec Recorder
	require.NoError(t, Draw(s, l, &rec, DefaultOptions()))
	assert.Len(t, rec.Primitives, 40)
	assert.Equal(t, 0, rec.Count(KindCircle, ""))

	rec = Recorder{}
	require.NoError(t, Draw(s, l, &rec, Options{}))
	assert.Empty(t, rec.Primitives)
	assert.True(t, rec.Closed)
}

func TestDrawDecorations(t *testing.T) {
	m, outer := pentagon(t)
	m.SetDecoration(0, ribbon.Decoration{Direction: ribbon.Tail, Colour: "blue", Over: false})
	s, l := packed(t, m, outer)

	var rec Recorder
	require.NoError(t, Draw(s, l, &rec, DefaultOptions()))

	var arrows []Primitive
	for _, p := range rec.Primitives {
		if p.Arrow {
			arrows = append(arrows, p)
		}
	}
	require.Len(t, arrows, 1)
	assert.Equal(t, "blue", arrows[0].Colour)

	v, e := l.Centres[s.VertexCircle(0)], l.Centres[s.EdgeCircle(0)]
	start := l.Transform(0.8*v + 0.2*e)
	assert.InDelta(t, start.X, arrows[0].Points[0].X, 1e-9)
	assert.InDelta(t, start.Y, arrows[0].Points[0].Y, 1e-9)
	end := l.Transform(e)
	assert.InDelta(t, end.X, arrows[0].Points[1].X, 1e-9)
}

func TestDrawDegenerate(t *testing.T) {
	// A single loop: the vertex and the edge share both darts.
	loop, err := ribbon.New(
		[]ribbon.Dart{1, 0},
		[]ribbon.Dart{1, 0},
		[]ribbon.Decoration{ribbon.Vanilla, ribbon.Vanilla},
		[]bool{false, false},
	)
	require.NoError(t, err)
	s, err := surface.New(loop, []ribbon.Dart{0})
	require.NoError(t, err)
	require.Len(t, s.Circles(), 3)

	l := &embed.Layout{
		Centres: make([]complex128, 3),
		Radii:   []float64{1, 1, 1},
		Canvas:  matrix.Identity,
	}
	var rec Recorder
	err = Draw(s, l, &rec, DefaultOptions())
	assert.ErrorIs(t, err, ErrDegenerate)
	assert.False(t, rec.Closed)

	err = Draw(s, &embed.Layout{Canvas: matrix.Identity}, &rec, DefaultOptions())
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestRadicalCircle(t *testing.T) {
	p := [3]complex128{0, 2, complex(1, math.Sqrt(3))}
	z, rho, ok := radicalCircle(p, [3]float64{1, 1, 1})
	require.True(t, ok)
	assert.InDelta(t, 1, real(z), 1e-12)
	assert.InDelta(t, 1/math.Sqrt(3), imag(z), 1e-12)
	assert.InDelta(t, 1/math.Sqrt(3), rho, 1e-12)

	_, _, ok = radicalCircle([3]complex128{0, 1, 2}, [3]float64{1, 1, 1})
	assert.False(t, ok)
}

func TestRecorderReplay(t *testing.T) {
	m, outer := pentagon(t)
	s, l := packed(t, m, outer)
	var a, b Recorder
	require.NoError(t, Draw(s, l, &a, AllOptions()))
	require.NoError(t, a.Replay(&b))
	assert.Equal(t, a.Primitives, b.Primitives)
	assert.True(t, b.Closed)
}

func TestOptionsLayers(t *testing.T) {
	assert.Equal(t, []string{"graph"}, DefaultOptions().Layers())
	assert.Equal(t, []string{"graph", "circles", "medial", "triangles", "radical_circles"}, AllOptions().Layers())
	assert.Empty(t, Options{}.Layers())
}

func TestParseLayers(t *testing.T) {
	o, err := ParseLayers("graph, circles,radical-circles")
	require.NoError(t, err)
	assert.Equal(t, Options{Graph: true, Circles: true, RadicalCircles: true}, o)

	o, err = ParseLayers("all")
	require.NoError(t, err)
	assert.Equal(t, AllOptions(), o)

	o, err = ParseLayers(strings.Join(AllOptions().Layers(), ","))
	require.NoError(t, err)
	assert.Equal(t, AllOptions(), o)

	o, err = ParseLayers("")
	require.NoError(t, err)
	assert.Equal(t, Options{}, o)

	_, err = ParseLayers("graph,shadows")
	assert.ErrorIs(t, err, ErrUnknownLayer)
}
