package diagram

import (
	"seehuhn.de/go/geom/vec"
)

// Emitter receives drawing primitives in canvas coordinates. Sinks in the
// [sink] subpackage implement it for concrete output formats.
//
// [sink]: github.com/matzehuels/ribbonpack/pkg/render/diagram/sink
type Emitter interface {
	// Line draws a segment from (x0, y0) to (x1, y1). If arrow is set the
	// segment ends in an arrowhead at (x1, y1).
	Line(x0, y0, x1, y1 float64, colour string, arrow bool)
	// Circle draws the outline of a circle.
	Circle(x, y, r float64, colour string)
	// Polygon draws a filled polygon.
	Polygon(points []vec.Vec2, colour string)
	// Close finishes the drawing.
	Close() error
}

// Kind identifies a recorded primitive.
type Kind string

const (
	KindLine    Kind = "line"
	KindCircle  Kind = "circle"
	KindPolygon Kind = "polygon"
)

// Primitive is one recorded Emitter call. Lines have two points, circles
// one point and a radius, polygons any number of points.
type Primitive struct {
	Kind   Kind       `json:"kind"`
	Points []vec.Vec2 `json:"points"`
	Radius float64    `json:"radius,omitempty"`
	Colour string     `json:"colour"`
	Arrow  bool       `json:"arrow,omitempty"`
}

// Recorder is an Emitter that keeps every call in memory.
type Recorder struct {
	Primitives []Primitive
	Closed     bool
}

func (r *Recorder) Line(x0, y0, x1, y1 float64, colour string, arrow bool) {
	r.Primitives = append(r.Primitives, Primitive{
		Kind:   KindLine,
		Points: []vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y1}},
		Colour: colour,
		Arrow:  arrow,
	})
}

func (r *Recorder) Circle(x, y, radius float64, colour string) {
	r.Primitives = append(r.Primitives, Primitive{
		Kind:   KindCircle,
		Points: []vec.Vec2{{X: x, Y: y}},
		Radius: radius,
		Colour: colour,
	})
}

func (r *Recorder) Polygon(points []vec.Vec2, colour string) {
	r.Primitives = append(r.Primitives, Primitive{
		Kind:   KindPolygon,
		Points: append([]vec.Vec2(nil), points...),
		Colour: colour,
	})
}

func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// Count returns how many recorded primitives have the given kind and
// colour. An empty colour matches any colour.
func (r *Recorder) Count(k Kind, colour string) int {
	n := 0
	for _, p := range r.Primitives {
		if p.Kind == k && (colour == "" || p.Colour == colour) {
			n++
		}
	}
	return n
}

// Replay sends the recorded primitives to e and closes it.
func (r *Recorder) Replay(e Emitter) error {
	for _, p := range r.Primitives {
		switch p.Kind {
		case KindLine:
			e.Line(p.Points[0].X, p.Points[0].Y, p.Points[1].X, p.Points[1].Y, p.Colour, p.Arrow)
		case KindCircle:
			e.Circle(p.Points[0].X, p.Points[0].Y, p.Radius, p.Colour)
		case KindPolygon:
			e.Polygon(p.Points, p.Colour)
		}
	}
	return e.Close()
}
