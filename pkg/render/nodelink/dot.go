package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ribbonpack/pkg/render"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed lists the darts of each vertex in its label, in rotation
	// order. When false, only the vertex number is shown.
	Detailed bool
	// Outer marks the darts of the outer face; their edges are dashed.
	Outer []ribbon.Dart
}

// ToDOT converts a combinatorial map to an undirected Graphviz graph. Each
// vertex orbit becomes a node, each pair of darts an edge, and each
// unpaired dart a dangling edge to a point node. Edges take the colour of
// their first dart and get an arrow when that dart is a head or a tail.
//
// Graphviz chooses its own layout, so the cyclic order at each vertex is
// not preserved; use the diagram package for a faithful picture.
func ToDOT(m *ribbon.Map, opts Options) string {
	vertices := m.Vertices()
	vertexOf := ribbon.OrbitIndex(m.Len(), vertices)
	outer := make(map[ribbon.Dart]bool, len(opts.Outer))
	for _, x := range opts.Outer {
		outer[x] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	for i, v := range vertices {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", vertexID(i), fmtLabel(i, v, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, x := range m.Darts() {
		y := m.E(x)
		if y != ribbon.NoDart && y < x {
			continue
		}
		to := ""
		if y == ribbon.NoDart {
			to = fmt.Sprintf("b%d", x)
			fmt.Fprintf(&buf, "  %q [shape=point, width=0.08];\n", to)
		} else {
			to = vertexID(vertexOf[y])
		}
		attrs := fmtAttrs(m.Decoration(x), outer[x] || (y != ribbon.NoDart && outer[y]))
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", vertexID(vertexOf[x]), to, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexID(i int) string { return "v" + strconv.Itoa(i) }

func fmtLabel(i int, v []ribbon.Dart, detailed bool) string {
	if !detailed {
		return strconv.Itoa(i)
	}
	parts := make([]string, len(v))
	for j, x := range v {
		parts[j] = strconv.Itoa(int(x))
	}
	return fmt.Sprintf("%d\n(%s)", i, strings.Join(parts, " "))
}

func fmtAttrs(d ribbon.Decoration, outer bool) []string {
	var attrs []string
	if d.Colour != "" && d.Colour != ribbon.MedialColour {
		attrs = append(attrs, fmt.Sprintf("color=%q", d.Colour))
	}
	switch d.Direction {
	case ribbon.Head:
		attrs = append(attrs, "dir=back")
	case ribbon.Tail:
		attrs = append(attrs, "dir=forward")
	}
	if outer {
		attrs = append(attrs, "style=dashed")
	}
	if !d.Over {
		attrs = append(attrs, "penwidth=1")
	}
	return attrs
}

// Output formats accepted by [Render].
const (
	SVG = "svg"
	PNG = "png"
	PDF = "pdf"
)

// baseDPI is the Graphviz default resolution; PNG output scales it.
const baseDPI = 96

// Render lays out dot with Graphviz and returns it as SVG, PNG or PDF.
// SVG and PNG are produced in process; PDF goes through rsvg-convert (see
// [render.ToPDF]). scale only affects PNG, where 2 doubles the resolution.
func Render(ctx context.Context, dot string, format string, scale float64) ([]byte, error) {
	switch format {
	case SVG:
		svg, err := layout(ctx, dot, graphviz.SVG)
		if err != nil {
			return nil, err
		}
		return normalizeViewBox(svg), nil
	case PNG:
		if scale <= 0 {
			scale = 1
		}
		dpi := fmt.Sprintf("{\n  dpi=%d;\n", int(baseDPI*scale))
		return layout(ctx, strings.Replace(dot, "{\n", dpi, 1), graphviz.PNG)
	case PDF:
		svg, err := Render(ctx, dot, SVG, 1)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	default:
		return nil, fmt.Errorf("nodelink: unsupported format %q", format)
	}
}

func layout(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("start graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer g.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, g, format, &out); err != nil {
		return nil, fmt.Errorf("graphviz %s: %w", format, err)
	}
	return out.Bytes(), nil
}

var (
	svgOpenTag = regexp.MustCompile(`<svg[^>]*>`)
	svgViewBox = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag, whose size is in
// points and whose viewBox may not start at the origin, with one sized in
// pixels from the viewBox extent.
func normalizeViewBox(svg []byte) []byte {
	m := svgViewBox.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[3]), 64)
	h, errH := strconv.ParseFloat(string(m[4]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgOpenTag.ReplaceAllLiteral(svg, []byte(tag))
}
