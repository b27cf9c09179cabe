package packing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ribbonpack/pkg/ribbon"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

func closedPolygon(t *testing.T, n int) *surface.Surface {
	t.Helper()
	p, err := ribbon.Polygon(n)
	require.NoError(t, err)
	m, outer, err := p.Closure(nil, nil)
	require.NoError(t, err)
	s, err := surface.New(m, outer)
	require.NoError(t, err)
	return s
}

func radiiByRole(s *surface.Surface, p *Packing) map[surface.Role][]float64 {
	out := make(map[surface.Role][]float64)
	for _, c := range s.Circles() {
		out[c.Role] = append(out[c.Role], p.Radius(c.Index))
	}
	return out
}

func TestSolvePentagon(t *testing.T) {
	s := closedPolygon(t, 5)

	for _, scheme := range []Scheme{Basic, Accelerated} {
		t.Run(string(scheme), func(t *testing.T) {
			p, err := Solve(context.Background(), s, Config{Scheme: scheme})
			require.NoError(t, err)
			require.Len(t, p.Radii, len(s.Circles()))
			assert.Equal(t, scheme, p.Scheme)
			assert.Less(t, p.Error, DefaultTolerance)
			assert.Equal(t, DefaultRadius, p.Radius(s.Anchor()))

			for _, r := range p.Radii {
				assert.Greater(t, r, 0.0)
			}
			assert.Less(t, MaxAngleError(s, p.Radii), 1e-6)

			// The closed pentagon has five-fold symmetry.
			for role, rs := range radiiByRole(s, p) {
				if role == surface.InteriorEdge || role == surface.Face {
					continue
				}
				for _, r := range rs {
					assert.InDelta(t, rs[0], r, 1e-4, "role %s", role)
				}
			}
			byRole := radiiByRole(s, p)
			assert.InDelta(t, 10.0, byRole[surface.Corner][4], 1e-4)
			assert.InDelta(t, 13.02978, byRole[surface.BoundaryVertex][0], 1e-4)
			assert.InDelta(t, 6.58339, byRole[surface.InteriorVertex][0], 1e-4)
			assert.InDelta(t, 5.31416, byRole[surface.BoundaryEdge][0], 1e-4)
		})
	}
}

func TestOnlyAnchorIsFixed(t *testing.T) {
	s := closedPolygon(t, 5)
	sv, err := newSolver(s, Config{}.WithDefaults())
	require.NoError(t, err)

	require.Len(t, sv.free, len(s.Circles())-1)
	assert.NotContains(t, sv.free, s.Anchor())
	for _, i := range sv.free {
		assert.Greater(t, sv.delta[i], 0.0, "circle %d", i)
	}
}

func TestSchemesAgree(t *testing.T) {
	for _, n := range []int{3, 4, 6} {
		s := closedPolygon(t, n)
		b, err := Solve(context.Background(), s, Config{Scheme: Basic})
		require.NoError(t, err)
		a, err := Solve(context.Background(), s, Config{})
		require.NoError(t, err)

		assert.Less(t, a.Iterations, b.Iterations, "n=%d", n)
		for i := range a.Radii {
			assert.InDelta(t, b.Radii[i], a.Radii[i], 1e-4, "n=%d circle %d", n, i)
		}
	}
}

func TestAnchorRadiusScales(t *testing.T) {
	s := closedPolygon(t, 4)
	p, err := Solve(context.Background(), s, Config{})
	require.NoError(t, err)
	q, err := Solve(context.Background(), s, Config{AnchorRadius: 1, DefaultRadius: 1})
	require.NoError(t, err)
	for i := range p.Radii {
		assert.InDelta(t, p.Radii[i]/10, q.Radii[i], 1e-5)
	}
}

func TestSolveNonConvergent(t *testing.T) {
	s := closedPolygon(t, 5)
	_, err := Solve(context.Background(), s, Config{MaxIterations: 10})
	assert.ErrorIs(t, err, ErrNonConvergent)
	_, err = Solve(context.Background(), s, Config{Scheme: Basic, MaxIterations: 10})
	assert.ErrorIs(t, err, ErrNonConvergent)
}

func TestSolveCancelled(t *testing.T) {
	s := closedPolygon(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Solve(ctx, s, Config{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveProgress(t *testing.T) {
	s := closedPolygon(t, 5)
	var calls []int
	_, err := Solve(context.Background(), s, Config{
		Progress: func(it int, _ float64) { calls = append(calls, it) },
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1000}, calls)
}

func TestSolveIsolatedCircle(t *testing.T) {
	bar, err := ribbon.New(
		[]ribbon.Dart{0, 1},
		[]ribbon.Dart{1, 0},
		[]ribbon.Decoration{ribbon.Vanilla, ribbon.Vanilla},
		[]bool{false, false},
	)
	require.NoError(t, err)
	s, err := surface.New(bar, []ribbon.Dart{0, 1})
	require.NoError(t, err)

	_, err = Solve(context.Background(), s, Config{})
	assert.ErrorIs(t, err, ErrIsolatedCircle)
}

func TestConfig(t *testing.T) {
	cfg := Config{}.WithDefaults()
	assert.Equal(t, Accelerated, cfg.Scheme)
	assert.Equal(t, DefaultTolerance, cfg.Tolerance)
	assert.Equal(t, DefaultMaxIterations, cfg.MaxIterations)
	assert.Equal(t, DefaultRadius, cfg.AnchorRadius)
	assert.NoError(t, cfg.Validate())

	cfg.Scheme = "newton"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	_, err := Solve(context.Background(), closedPolygon(t, 3), Config{Tolerance: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseScheme(t *testing.T) {
	s, err := ParseScheme("BASIC")
	require.NoError(t, err)
	assert.Equal(t, Basic, s)
	s, err = ParseScheme("")
	require.NoError(t, err)
	assert.Equal(t, Accelerated, s)
	_, err = ParseScheme("newton")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTriangleAngles(t *testing.T) {
	for _, u := range [][3]float64{{1, 1, 1}, {1, 2, 3}, {10, 0.5, 4}} {
		c := cosineAngles(u)
		h := halfAngles(u)
		assert.InDelta(t, math.Pi, c[0]+c[1]+c[2], 1e-12)
		for i := range 3 {
			assert.InDelta(t, c[i], h[i], 1e-12)
		}
	}
	eq := cosineAngles([3]float64{2, 2, 2})
	assert.InDelta(t, math.Pi/3, eq[0], 1e-12)
}
