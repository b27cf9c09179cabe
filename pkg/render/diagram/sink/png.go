package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/ribbonpack/pkg/embed"
)

const (
	strokeWidth  = 1.0  // Line and circle width in canvas units
	arrowLength  = 6.0  // Arrowhead length in canvas units
	fillAlpha    = 0x40 // Polygon alpha, 0.25 opacity as in the SVG sink
	circleKappa  = 0.5522847498
	defaultScale = 2.0
)

// PNGOption configures a [PNG] sink.
type PNGOption func(*PNG)

// WithScale sets the pixel density (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(p *PNG) {
		if s > 0 {
			p.scale = s
		}
	}
}

// WithPNGBackground sets the background colour (default white).
func WithPNGBackground(c string) PNGOption { return func(p *PNG) { p.background = c } }

// PNG rasterizes primitives as they arrive and encodes the image on Close.
type PNG struct {
	scale      float64
	background string
	img        *image.RGBA
	r          *vector.Rasterizer
	out        []byte
}

// NewPNG returns a blank PNG sink.
func NewPNG(opts ...PNGOption) *PNG {
	p := &PNG{scale: defaultScale, background: "white"}
	for _, opt := range opts {
		opt(p)
	}
	size := int(math.Ceil(embed.CanvasSize * p.scale))
	p.img = image.NewRGBA(image.Rect(0, 0, size, size))
	p.r = vector.NewRasterizer(size, size)
	if bg, ok := parseColour(p.background); ok {
		draw.Draw(p.img, p.img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	}
	return p
}

func (p *PNG) pt(x, y float64) (float32, float32) {
	return float32(x * p.scale), float32(y * p.scale)
}

func (p *PNG) fill(c color.Color) {
	p.r.Draw(p.img, p.img.Bounds(), image.NewUniform(c), image.Point{})
	b := p.img.Bounds()
	p.r.Reset(b.Dx(), b.Dy())
}

func (p *PNG) Line(x0, y0, x1, y1 float64, colour string, arrow bool) {
	c, ok := parseColour(colour)
	if !ok {
		return
	}
	dx, dy := x1-x0, y1-y0
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	ux, uy := dx/n, dy/n
	nx, ny := -uy*strokeWidth/2, ux*strokeWidth/2

	p.r.MoveTo(p.pt(x0+nx, y0+ny))
	p.r.LineTo(p.pt(x1+nx, y1+ny))
	p.r.LineTo(p.pt(x1-nx, y1-ny))
	p.r.LineTo(p.pt(x0-nx, y0-ny))
	p.r.ClosePath()
	if arrow {
		bx, by := x1-ux*arrowLength, y1-uy*arrowLength
		wx, wy := -uy*arrowLength/2, ux*arrowLength/2
		p.r.MoveTo(p.pt(x1, y1))
		p.r.LineTo(p.pt(bx+wx, by+wy))
		p.r.LineTo(p.pt(bx-wx, by-wy))
		p.r.ClosePath()
	}
	p.fill(c)
}

func (p *PNG) Circle(x, y, r float64, colour string) {
	c, ok := parseColour(colour)
	if !ok || r <= 0 {
		return
	}
	p.addCircle(x, y, r+strokeWidth/2, false)
	p.addCircle(x, y, max(0, r-strokeWidth/2), true)
	p.fill(c)
}

// addCircle adds a circle approximated by four cubic Béziers. The inner
// circle of a ring is added clockwise so its area cancels.
func (p *PNG) addCircle(cx, cy, radius float64, clockwise bool) {
	x, y := p.pt(cx, cy)
	rad := float32(radius * p.scale)
	kr := float32(circleKappa) * rad
	r := p.r
	if clockwise {
		r.MoveTo(x, y-rad)
		r.CubeTo(x-kr, y-rad, x-rad, y-kr, x-rad, y)
		r.CubeTo(x-rad, y+kr, x-kr, y+rad, x, y+rad)
		r.CubeTo(x+kr, y+rad, x+rad, y+kr, x+rad, y)
		r.CubeTo(x+rad, y-kr, x+kr, y-rad, x, y-rad)
	} else {
		r.MoveTo(x, y-rad)
		r.CubeTo(x+kr, y-rad, x+rad, y-kr, x+rad, y)
		r.CubeTo(x+rad, y+kr, x+kr, y+rad, x, y+rad)
		r.CubeTo(x-kr, y+rad, x-rad, y+kr, x-rad, y)
		r.CubeTo(x-rad, y-kr, x-kr, y-rad, x, y-rad)
	}
	r.ClosePath()
}

func (p *PNG) Polygon(points []vec.Vec2, colour string) {
	c, ok := parseColour(colour)
	if !ok || len(points) < 3 {
		return
	}
	p.r.MoveTo(p.pt(points[0].X, points[0].Y))
	for _, q := range points[1:] {
		p.r.LineTo(p.pt(q.X, q.Y))
	}
	p.r.ClosePath()
	p.fill(color.NRGBA{c.R, c.G, c.B, fillAlpha})
}

func (p *PNG) Close() error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.img); err != nil {
		return err
	}
	p.out = buf.Bytes()
	return nil
}

// Bytes returns the encoded image written by Close.
func (p *PNG) Bytes() []byte { return p.out }

// Image returns the raster being drawn into.
func (p *PNG) Image() *image.RGBA { return p.img }
