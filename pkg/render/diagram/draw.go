package diagram

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"
	"strings"

	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/ribbonpack/pkg/embed"
	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

// Colours used for the construction layers. Graph edges use the colour of
// their dart decoration.
const (
	ColourCircle   = "yellow"
	ColourMedial   = "purple"
	ColourPositive = "blue"
	ColourNegative = "green"
	ColourRadical  = "red"
)

// underFraction is how far along an under-crossing edge the stroke starts.
const underFraction = 0.2

var (
	ErrDegenerate   = perrors.New(perrors.ErrCodeDegenerateDiagram, "diagram cannot be drawn")
	ErrUnknownLayer = perrors.New(perrors.ErrCodeInvalidInput, "unknown layer")
)

// Options selects the layers to draw.
type Options struct {
	Graph          bool `toml:"graph" json:"graph"`                     // Edges of the map
	Circles        bool `toml:"circles" json:"circles"`                 // Packing circles
	Medial         bool `toml:"medial" json:"medial"`                   // Filled polygon per face
	Triangles      bool `toml:"triangles" json:"triangles"`             // The triangulation
	RadicalCircles bool `toml:"radical_circles" json:"radical_circles"` // Radical circle per triangle
}

// DefaultOptions draws the graph only.
func DefaultOptions() Options { return Options{Graph: true} }

// AllOptions draws every layer.
func AllOptions() Options {
	return Options{Graph: true, Circles: true, Medial: true, Triangles: true, RadicalCircles: true}
}

// Layers returns the names of the enabled layers in drawing order.
func (o Options) Layers() []string {
	var out []string
	for _, l := range []struct {
		on   bool
		name string
	}{
		{o.Graph, "graph"},
		{o.Circles, "circles"},
		{o.Medial, "medial"},
		{o.Triangles, "triangles"},
		{o.RadicalCircles, "radical_circles"},
	} {
		if l.on {
			out = append(out, l.name)
		}
	}
	return out
}

// ParseLayers reads a comma-separated list of layer names as returned by
// [Options.Layers]. Dashes may stand for underscores, and "all" enables
// every layer.
func ParseLayers(s string) (Options, error) {
	var o Options
	for _, name := range strings.Split(s, ",") {
		switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
		case "":
		case "all":
			o = AllOptions()
		case "graph":
			o.Graph = true
		case "circles":
			o.Circles = true
		case "medial":
			o.Medial = true
		case "triangles":
			o.Triangles = true
		case "radical_circles":
			o.RadicalCircles = true
		default:
			return Options{}, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
		}
	}
	return o, nil
}

// Draw emits the enabled layers of the packed surface in the order graph,
// circles, medial, triangles, radical circles and then closes e. If a
// layer fails, nothing further is emitted and e is not closed.
func Draw(s *surface.Surface, l *embed.Layout, e Emitter, opts Options) error {
	if l.Len() != len(s.Circles()) {
		return fmt.Errorf("%w: layout has %d circles, surface %d", ErrDegenerate, l.Len(), len(s.Circles()))
	}
	d := drawer{s: s, l: l, e: e}
	steps := []struct {
		on bool
		fn func() error
	}{
		{opts.Graph, d.graph},
		{opts.Circles, d.circles},
		{opts.Medial, d.medial},
		{opts.Triangles, d.triangles},
		{opts.RadicalCircles, d.radicalCircles},
	}
	for _, st := range steps {
		if !st.on {
			continue
		}
		if err := st.fn(); err != nil {
			return err
		}
	}
	return e.Close()
}

type drawer struct {
	s *surface.Surface
	l *embed.Layout
	e Emitter
}

func (d *drawer) graph() error {
	for _, t := range d.s.Triangles() {
		if !t.Positive && d.s.Circle(t.E).Role != surface.BoundaryEdge &&
			!(d.s.Circle(t.V).Boundary && d.s.Circle(t.E).Boundary) {
			continue
		}
		if err := d.connect(t.V, t.E); err != nil {
			return err
		}
	}
	return nil
}

// connect draws the half edge shared by vertex circle u and edge circle v,
// from the vertex towards the middle of the edge.
func (d *drawer) connect(u, v int) error {
	var shared []ribbon.Dart
	for _, x := range d.s.Circle(u).Darts {
		if slices.Contains(d.s.Circle(v).Darts, x) {
			shared = append(shared, x)
		}
	}
	if len(shared) != 1 {
		return fmt.Errorf("%w: circles %d and %d share %d darts", ErrDegenerate, u, v, len(shared))
	}
	deco := d.s.Map().Decoration(shared[0])

	w := d.l.Centres[v]
	z := d.l.Centres[u]
	if !deco.Over {
		z = complex(1-underFraction, 0)*z + complex(underFraction, 0)*w
	}
	a, b := d.l.Transform(z), d.l.Transform(w)
	d.e.Line(a.X, a.Y, b.X, b.Y, deco.Colour, deco.Direction == ribbon.Tail)
	return nil
}

func (d *drawer) circles() error {
	for i := range d.s.Circles() {
		c := d.l.Centre(i)
		d.e.Circle(c.X, c.Y, d.l.Radius(i), ColourCircle)
	}
	return nil
}

func (d *drawer) medial() error {
	for _, c := range d.s.Circles() {
		if c.Role != surface.Face {
			continue
		}
		pts := make([]vec.Vec2, len(c.Darts))
		for i, x := range c.Darts {
			pts[i] = d.l.Centre(d.s.EdgeCircle(x))
		}
		switch len(pts) {
		case 0, 1:
		case 2:
			d.e.Line(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, ColourMedial, false)
		default:
			d.e.Polygon(pts, ColourMedial)
		}
	}
	return nil
}

func (d *drawer) triangles() error {
	for _, t := range d.s.Triangles() {
		pts := []vec.Vec2{d.l.Centre(t.V), d.l.Centre(t.E), d.l.Centre(t.F)}
		colour := ColourNegative
		if t.Positive {
			colour = ColourPositive
		}
		d.e.Polygon(pts, colour)
	}
	return nil
}

func (d *drawer) radicalCircles() error {
	for _, t := range d.s.Triangles() {
		c := t.Circles()
		var p [3]complex128
		var r [3]float64
		for i, x := range c {
			p[i], r[i] = d.l.Centres[x], d.l.Radii[x]
		}
		z, rho, ok := radicalCircle(p, r)
		if !ok {
			return fmt.Errorf("%w: triangle %v has collinear centres", ErrDegenerate, c)
		}
		q := d.l.Transform(z)
		d.e.Circle(q.X, q.Y, rho*d.l.Scale(), ColourRadical)
	}
	return nil
}

// radicalCircle returns the circle orthogonal to the three given circles.
// For mutually tangent circles it is the incircle of the triangle of
// centres and passes through the three tangency points.
func radicalCircle(p [3]complex128, r [3]float64) (complex128, float64, bool) {
	m11, m12 := real(p[1])-real(p[0]), imag(p[1])-imag(p[0])
	m21, m22 := real(p[2])-real(p[1]), imag(p[2])-imag(p[1])
	var c [3]float64
	for i := range 3 {
		a := cmplx.Abs(p[i])
		c[i] = (a*a - r[i]*r[i]) / 2
	}
	det := m11*m22 - m12*m21
	if det == 0 {
		return 0, 0, false
	}
	x := m22*(c[1]-c[0]) - m12*(c[2]-c[1])
	y := -m21*(c[1]-c[0]) + m11*(c[2]-c[1])
	z := complex(x/det, y/det)
	dz := cmplx.Abs(p[1] - z)
	return z, math.Sqrt(max(0, dz*dz-r[1]*r[1])), true
}
