package sink

import (
	"context"
	"fmt"
	"strings"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram"
)

// Format names an output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

var ErrUnknownFormat = perrors.New(perrors.ErrCodeInvalidFormat, "unknown output format")

// Sink is an emitter that produces a document once closed.
type Sink interface {
	diagram.Emitter
	Bytes() []byte
}

// ParseFormat converts a name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(s), "."))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of documents in format f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// New returns a sink for the given format. name is used as the SVG title
// and the JSON name.
func New(ctx context.Context, f Format, name string, opts diagram.Options) (Sink, error) {
	var svgOpts []SVGOption
	if name != "" {
		svgOpts = append(svgOpts, WithTitle(name))
	}
	switch f {
	case FormatSVG:
		return NewSVG(svgOpts...), nil
	case FormatPNG:
		return NewPNG(), nil
	case FormatPDF:
		return NewPDF(ctx, svgOpts...), nil
	case FormatJSON:
		return NewJSON(WithJSONName(name), WithJSONLayers(opts)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
