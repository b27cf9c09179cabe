package sink

import (
	"bytes"
	"fmt"
	"html"
	"slices"
	"strings"

	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/ribbonpack/pkg/embed"
)

// SVGOption configures an [SVG] sink.
type SVGOption func(*SVG)

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(s *SVG) { s.title = t } }

// WithDescription sets the document description.
func WithDescription(d string) SVGOption { return func(s *SVG) { s.desc = d } }

// WithBackground fills the canvas with a colour before drawing.
func WithBackground(c string) SVGOption { return func(s *SVG) { s.background = c } }

// SVG writes primitives as an SVG document. The document is complete after
// Close.
type SVG struct {
	title      string
	desc       string
	background string

	body   bytes.Buffer
	arrows []string // colours that need an arrowhead marker
	out    []byte
}

// NewSVG returns an empty SVG sink.
func NewSVG(opts ...SVGOption) *SVG {
	s := &SVG{
		title: "A Link Diagram",
		desc:  "A link diagram produced using circle packing.",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) Line(x0, y0, x1, y1 float64, colour string, arrow bool) {
	c := html.EscapeString(colour)
	fmt.Fprintf(&s.body, `  <line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" stroke="%s"`, x0, y0, x1, y1, c)
	if arrow {
		if !slices.Contains(s.arrows, colour) {
			s.arrows = append(s.arrows, colour)
		}
		fmt.Fprintf(&s.body, ` marker-end="url(#%s)"`, markerID(colour))
	}
	s.body.WriteString("/>\n")
}

func (s *SVG) Circle(x, y, r float64, colour string) {
	fmt.Fprintf(&s.body, `  <circle cx="%.3f" cy="%.3f" r="%.3f" stroke="%s" fill="none"/>`+"\n",
		x, y, r, html.EscapeString(colour))
}

func (s *SVG) Polygon(points []vec.Vec2, colour string) {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.3f,%.3f", p.X, p.Y)
	}
	fmt.Fprintf(&s.body, `  <polygon points="%s" fill="%s" fill-opacity="0.25" stroke="none"/>`+"\n",
		strings.Join(parts, " "), html.EscapeString(colour))
}

func (s *SVG) Close() error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		embed.CanvasSize, embed.CanvasSize, embed.CanvasSize, embed.CanvasSize)
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(s.title))
	fmt.Fprintf(&buf, "<desc>%s</desc>\n", html.EscapeString(s.desc))

	if len(s.arrows) > 0 {
		buf.WriteString("<defs>\n")
		for _, c := range s.arrows {
			fmt.Fprintf(&buf, `  <marker id="%s" markerWidth="5" markerHeight="10" refX="5" refY="5" orient="auto">`+"\n", markerID(c))
			fmt.Fprintf(&buf, `    <path d="M 0 0 5 5 0 10 Z" fill="%s"/>`+"\n", html.EscapeString(c))
			buf.WriteString("  </marker>\n")
		}
		buf.WriteString("</defs>\n")
	}
	if s.background != "" {
		fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(s.background))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	s.out = buf.Bytes()
	return nil
}

// Bytes returns the document written by Close.
func (s *SVG) Bytes() []byte { return s.out }

// markerID derives an XML id from a colour name or hex value.
func markerID(colour string) string {
	var b strings.Builder
	b.WriteString("arrow-")
	for _, r := range colour {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
