// Package embed places the circles of a packing in the plane.
//
// [Embed] fixes the root triangle (the positive triangle at the first dart
// of the outer face) and then repeatedly places the one missing circle of
// any triangle whose other two circles are already placed. The resulting
// [Layout] also carries the affine map from packing coordinates to a
// 500×500 canvas with a 50 unit margin.
package embed

import (
	"fmt"
	"math"
	"math/cmplx"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/packing"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

const (
	CanvasSize   = 500.0 // Width and height of the canvas
	CanvasMargin = 50.0  // Blank border on every side
)

var (
	ErrDisconnected   = perrors.New(perrors.ErrCodeDisconnectedTriangulation, "triangulation is not connected")
	ErrRadiusMismatch = perrors.New(perrors.ErrCodeInvalidInput, "packing does not match surface")
)

// Layout is a packing with centres.
type Layout struct {
	Centres []complex128 // Centre per circle, indexed like surface.Circles
	Radii   []float64    // Radius per circle
	BBox    rect.Rect    // Bounding box of the centres
	Canvas  matrix.Matrix
	Root    surface.Triangle // Triangle placed first
}

// Embed computes centres for the radii of p.
func Embed(s *surface.Surface, p *packing.Packing) (*Layout, error) {
	circles := s.Circles()
	if len(p.Radii) != len(circles) {
		return nil, fmt.Errorf("%w: %d radii for %d circles", ErrRadiusMismatch, len(p.Radii), len(circles))
	}

	root, ok := rootTriangle(s)
	if !ok {
		return nil, fmt.Errorf("%w: no positive triangle at the outer face", ErrDisconnected)
	}

	r := p.Radii
	centre := make([]complex128, len(circles))
	placed := make([]bool, len(circles))
	centre[root.V], placed[root.V] = 0, true
	centre[root.E], placed[root.E] = complex(r[root.V]+r[root.E], 0), true

	for progress := true; progress; {
		progress = false
		for _, t := range s.Triangles() {
			c := t.Circles()
			missing, n := -1, 0
			for i, x := range c {
				if !placed[x] {
					missing, n = i, n+1
				}
			}
			if n != 1 {
				continue
			}
			a, b := c[(missing+2)%3], c[(missing+1)%3]
			if !t.Positive {
				a, b = b, a
			}
			x := c[missing]
			centre[x] = place(centre[a], centre[b], r[a], r[b], r[x])
			placed[x] = true
			progress = true
		}
	}
	for i, ok := range placed {
		if !ok {
			return nil, fmt.Errorf("%w: circle %d (%s) was never placed", ErrDisconnected, i, circles[i].Role)
		}
	}

	l := &Layout{Centres: centre, Radii: append([]float64(nil), r...), Root: root}
	l.BBox = boundingBox(centre)
	l.Canvas = canvas(l.BBox)
	return l, nil
}

func rootTriangle(s *surface.Surface) (surface.Triangle, bool) {
	outer := s.Outer()
	v := s.VertexCircle(outer[0])
	for _, t := range s.Triangles() {
		if t.Positive && t.V == v {
			return t, true
		}
	}
	return surface.Triangle{}, false
}

// place returns the centre of a circle of radius t tangent to the circles
// (z, r) and (w, s), on the left of the line from z to w.
func place(z, w complex128, r, s, t float64) complex128 {
	cos := 1 - 2*s*t/((r+s)*(r+t))
	theta := math.Acos(max(-1, min(1, cos)))
	return cmplx.Rect((r+t)/(r+s), theta)*(w-z) + z
}

func boundingBox(cs []complex128) rect.Rect {
	b := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, z := range cs {
		b.LLx = min(b.LLx, real(z))
		b.LLy = min(b.LLy, imag(z))
		b.URx = max(b.URx, real(z))
		b.URy = max(b.URy, imag(z))
	}
	return b
}

func canvas(b rect.Rect) matrix.Matrix {
	extent := max(b.URx-b.LLx, b.URy-b.LLy)
	scale := 1.0
	if extent > 0 {
		scale = (CanvasSize - 2*CanvasMargin) / extent
	}
	mx, my := (b.LLx+b.URx)/2, (b.LLy+b.URy)/2
	half := CanvasSize / 2
	return matrix.Matrix{scale, 0, 0, scale, half - scale*mx, half - scale*my}
}

// Transform maps a point of the packing plane to canvas coordinates.
func (l *Layout) Transform(z complex128) vec.Vec2 {
	m := l.Canvas
	x, y := real(z), imag(z)
	return vec.Vec2{
		X: m[0]*x + m[2]*y + m[4],
		Y: m[1]*x + m[3]*y + m[5],
	}
}

// Scale returns the factor by which the canvas map stretches lengths.
func (l *Layout) Scale() float64 { return l.Canvas[0] }

// Centre returns the canvas position of circle i.
func (l *Layout) Centre(i int) vec.Vec2 { return l.Transform(l.Centres[i]) }

// Radius returns the canvas radius of circle i.
func (l *Layout) Radius(i int) float64 { return l.Radii[i] * l.Scale() }

// Len returns the number of circles.
func (l *Layout) Len() int { return len(l.Centres) }
