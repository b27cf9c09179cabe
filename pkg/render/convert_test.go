package render

import (
	"bytes"
	"context"
	"errors"
	"testing"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><circle cx="5" cy="5" r="4"/></svg>`

func TestToPDFWithoutConverter(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if HasConverter() {
		t.Fatal("empty PATH should hide rsvg-convert")
	}
	_, err := ToPDF(context.Background(), []byte(tinySVG))
	if !errors.Is(err, ErrConverterMissing) || perrors.GetCode(err) != perrors.ErrCodeUnsupported {
		t.Errorf("err = %v", err)
	}
}

func TestToPDF(t *testing.T) {
	if !HasConverter() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output starts with %q", pdf[:min(8, len(pdf))])
	}
}
