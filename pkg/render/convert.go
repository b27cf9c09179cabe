package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
)

const rsvgConvert = "rsvg-convert"

// ErrConverterMissing is returned by [ToPDF] when rsvg-convert is not on
// the PATH.
var ErrConverterMissing = perrors.New(perrors.ErrCodeUnsupported,
	"PDF output needs rsvg-convert; install librsvg (brew install librsvg, apt install librsvg2-bin)")

// HasConverter reports whether rsvg-convert can be found.
func HasConverter() bool {
	_, err := exec.LookPath(rsvgConvert)
	return err == nil
}

// ToPDF converts an SVG document to PDF with rsvg-convert.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	if !HasConverter() {
		return nil, ErrConverterMissing
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, rsvgConvert, "--format", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "%s: %s", rsvgConvert, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
