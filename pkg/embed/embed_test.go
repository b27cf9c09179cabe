package embed

import (
	"context"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ribbonpack/pkg/packing"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

func closed(t *testing.T, n int) (*ribbon.Map, []ribbon.Dart) {
	t.Helper()
	p, err := ribbon.Polygon(n)
	require.NoError(t, err)
	m, outer, err := p.Closure(nil, nil)
	require.NoError(t, err)
	return m, outer
}

func solved(t *testing.T, n int) (*surface.Surface, *Layout) {
	t.Helper()
	m, outer := closed(t, n)
	s, err := surface.New(m, outer)
	require.NoError(t, err)
	p, err := packing.Solve(context.Background(), s, packing.Config{})
	require.NoError(t, err)
	l, err := Embed(s, p)
	require.NoError(t, err)
	return s, l
}

func TestEmbedTangency(t *testing.T) {
	for _, n := range []int{3, 4, 5} {
		s, l := solved(t, n)
		for _, tr := range s.Triangles() {
			c := tr.Circles()
			for i := range 3 {
				a, b := c[i], c[(i+1)%3]
				want := l.Radii[a] + l.Radii[b]
				got := cmplx.Abs(l.Centres[a] - l.Centres[b])
				assert.InDelta(t, 0, (got-want)/want, 1e-5, "n=%d circles %d,%d", n, a, b)
			}
		}
	}
}

func TestEmbedOrientation(t *testing.T) {
	s, l := solved(t, 5)
	for _, tr := range s.Triangles() {
		a, b, c := l.Centres[tr.V], l.Centres[tr.E], l.Centres[tr.F]
		cross := imag(cmplx.Conj(b-a) * (c - a))
		if tr.Positive {
			assert.Less(t, cross, 0.0)
		} else {
			assert.Greater(t, cross, 0.0)
		}
	}
}

func TestEmbedRoot(t *testing.T) {
	s, l := solved(t, 5)
	assert.True(t, l.Root.Positive)
	assert.Equal(t, s.VertexCircle(s.Outer()[0]), l.Root.V)
	assert.Equal(t, complex(0, 0), l.Centres[l.Root.V])
	assert.Equal(t, complex(l.Radii[l.Root.V]+l.Radii[l.Root.E], 0), l.Centres[l.Root.E])
}

func TestCanvas(t *testing.T) {
	_, l := solved(t, 5)

	for i := range l.Len() {
		p := l.Centre(i)
		assert.GreaterOrEqual(t, p.X, CanvasMargin-1e-9)
		assert.LessOrEqual(t, p.X, CanvasSize-CanvasMargin+1e-9)
		assert.GreaterOrEqual(t, p.Y, CanvasMargin-1e-9)
		assert.LessOrEqual(t, p.Y, CanvasSize-CanvasMargin+1e-9)
	}

	b := l.BBox
	lo := l.Transform(complex(b.LLx, b.LLy))
	hi := l.Transform(complex(b.URx, b.URy))
	assert.InDelta(t, 400, math.Max(hi.X-lo.X, hi.Y-lo.Y), 1e-9)
	mid := l.Transform(complex((b.LLx+b.URx)/2, (b.LLy+b.URy)/2))
	assert.InDelta(t, 250, mid.X, 1e-9)
	assert.InDelta(t, 250, mid.Y, 1e-9)

	assert.InDelta(t, l.Radii[3]*l.Scale(), l.Radius(3), 1e-12)
	assert.InDelta(t, l.Scale(), l.Transform(1).X-l.Transform(0).X, 1e-9)
}

func TestPlace(t *testing.T) {
	z := place(0, 2, 1, 1, 1)
	assert.InDelta(t, 1, real(z), 1e-12)
	assert.InDelta(t, math.Sqrt(3), imag(z), 1e-12)
}

func TestEmbedDisconnected(t *testing.T) {
	a, outer := closed(t, 5)
	b, _ := closed(t, 3)
	u, ta, _ := ribbon.Union(a, b)
	uo := make([]ribbon.Dart, len(outer))
	for i, x := range outer {
		uo[i] = ta[x]
	}
	s, err := surface.New(u, uo)
	require.NoError(t, err)

	radii := make([]float64, len(s.Circles()))
	for i := range radii {
		radii[i] = 1
	}
	_, err = Embed(s, &packing.Packing{Radii: radii})
	assert.ErrorIs(t, err, ErrDisconnected)
}

func TestEmbedRadiusMismatch(t *testing.T) {
	m, outer := closed(t, 3)
	s, err := surface.New(m, outer)
	require.NoError(t, err)
	_, err = Embed(s, &packing.Packing{Radii: []float64{1, 2}})
	assert.ErrorIs(t, err, ErrRadiusMismatch)
}
