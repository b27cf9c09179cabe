package sink

import (
	"context"

	"github.com/matzehuels/ribbonpack/pkg/render"
)

// PDF draws through an [SVG] sink and converts the document on Close.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type PDF struct {
	*SVG
	ctx context.Context
	out []byte
}

// NewPDF returns a PDF sink. The context bounds the conversion.
func NewPDF(ctx context.Context, opts ...SVGOption) *PDF {
	return &PDF{SVG: NewSVG(opts...), ctx: ctx}
}

func (p *PDF) Close() error {
	if err := p.SVG.Close(); err != nil {
		return err
	}
	out, err := render.ToPDF(p.ctx, p.SVG.Bytes())
	if err != nil {
		return err
	}
	p.out = out
	return nil
}

// Bytes returns the PDF written by Close.
func (p *PDF) Bytes() []byte { return p.out }
