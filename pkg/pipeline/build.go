package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/matzehuels/ribbonpack/pkg/cache"
	"github.com/matzehuels/ribbonpack/pkg/catalog"
	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/expr"
	"github.com/matzehuels/ribbonpack/pkg/httputil"
	mapio "github.com/matzehuels/ribbonpack/pkg/io"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

// Build resolves the source of opts to a map document. The document name
// is opts.Name when set, otherwise the example or file name, otherwise the
// expression itself. A file given as an http(s) URL is downloaded. Maps
// larger than [perrors.MaxDarts] are rejected whatever their source.
func Build(ctx context.Context, opts Options) (*mapio.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc *mapio.Document
	switch opts.Source() {
	case SourceExpr:
		s, err := expr.ClosedContext(ctx, opts.Expr)
		if err != nil {
			return nil, err
		}
		doc = &mapio.Document{Name: opts.Expr, Map: s.Map, Outer: s.Outer}
	case SourceExample:
		e, err := catalog.Get(opts.Example)
		if err != nil {
			return nil, err
		}
		s, err := e.BuildContext(ctx)
		if err != nil {
			return nil, err
		}
		doc = &mapio.Document{Name: e.Name, Map: s.Map, Outer: s.Outer}
	case SourceFile:
		d, err := buildFile(ctx, opts.File)
		if err != nil {
			return nil, err
		}
		doc = d
	default:
		if opts.Document == nil || opts.Document.Map == nil {
			return nil, fmt.Errorf("%w: no map given", ErrInvalidOptions)
		}
		doc = opts.Document
	}
	if err := perrors.ValidateDarts("map", doc.Map.Len(), 1); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Name != "" {
		doc = &mapio.Document{Name: opts.Name, Map: doc.Map, Outer: doc.Outer}
	}
	return doc, nil
}

func buildFile(ctx context.Context, file string) (*mapio.Document, error) {
	if !httputil.IsURL(file) {
		return mapio.Import(file)
	}
	u, err := url.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	data, err := httputil.NewClient().Get(ctx, file)
	if err != nil {
		return nil, err
	}
	return mapio.Read(u.Path, bytes.NewReader(data))
}

// NewSurface classifies a document with the geometry and boundary
// condition of opts. opts must have been validated.
func NewSurface(doc *mapio.Document, opts Options) (*surface.Surface, error) {
	return surface.New(doc.Map, doc.Outer,
		surface.WithName(doc.Name),
		surface.WithGeometry(opts.geometry),
		surface.WithBoundaryCondition(opts.boundary),
	)
}

// MapHash returns the content hash of a document's map and outer face.
// The name does not take part, so renaming a surface keeps its packing.
func MapHash(doc *mapio.Document) (string, error) {
	var buf bytes.Buffer
	if err := mapio.WriteJSON(&mapio.Document{Map: doc.Map, Outer: doc.Outer}, &buf); err != nil {
		return "", fmt.Errorf("serialize map: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}
