// Package pipeline provides the build → pack → render pipeline of ribbonpack.
//
// This package implements the complete pipeline used by the CLI and the
// HTTP API. By centralizing this logic, both entry points share the same
// defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: evaluate an expression, look up a catalog example or read a
//     map file, then classify the closed surface
//  2. Pack: solve for the radii and lay the circles out in the plane
//  3. Render: draw the requested layers in each output format
//
// Packings and artifacts are cached; a packing is keyed by the hash of the
// map and every solver setting.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Expr:    "closure(polygon(5))",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Options can also be loaded from a TOML file with [LoadOptions].
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/ribbonpack/pkg/cache"
	"github.com/matzehuels/ribbonpack/pkg/embed"
	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	mapio "github.com/matzehuels/ribbonpack/pkg/io"
	"github.com/matzehuels/ribbonpack/pkg/packing"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram/sink"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

// Visualization types.
const (
	VizPacking  = "packing"
	VizNodelink = "nodelink"

	DefaultVizType = VizPacking
)

// Source names reported to hooks and logs.
const (
	SourceExpr    = "expr"
	SourceExample = "example"
	SourceFile    = "file"
	SourceMap     = "map"
)

// ErrInvalidOptions is returned by [Options.ValidateAndSetDefaults].
var ErrInvalidOptions = perrors.New(perrors.ErrCodeInvalidInput, "invalid options")

// Options contains all configuration for a pipeline run.
// It can be decoded from TOML (see [LoadOptions]) and from JSON API requests.
type Options struct {
	// Source: exactly one of these is set.
	Expr     string          `toml:"expr" json:"expr,omitempty"`
	Example  string          `toml:"example" json:"example,omitempty"`
	File     string          `toml:"file" json:"-"`
	Document *mapio.Document `toml:"-" json:"-"`

	// Surface options
	Name              string `toml:"name" json:"name,omitempty"`
	Geometry          string `toml:"geometry" json:"geometry,omitempty"`
	BoundaryCondition string `toml:"boundary_condition" json:"boundary_condition,omitempty"`

	// Packing options
	Packing packing.Config `toml:"packing" json:"packing"`
	Refresh bool           `toml:"refresh" json:"refresh,omitempty"` // Ignore cached packings

	// Render options
	VizType  string          `toml:"viz_type" json:"viz_type,omitempty"`
	Layers   diagram.Options `toml:"layers" json:"layers"`
	Formats  []string        `toml:"formats" json:"formats,omitempty"`
	Detailed bool            `toml:"detailed" json:"detailed,omitempty"` // Dart lists in nodelink labels

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`

	geometry  surface.Geometry
	boundary  surface.BoundaryCondition
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Name is the surface name used for titles.
	Name string

	// Surface is the classified closed surface.
	Surface *surface.Surface

	// MapHash is the content hash of the map and its outer face.
	MapHash string

	// Packing and Layout are nil for nodelink runs.
	Packing *packing.Packing
	Layout  *embed.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Darts      int
	Circles    int
	Triangles  int
	Iterations int
	Error      float64
	BuildTime  time.Duration
	PackTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PackHit   bool // Whether the packing came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// LoadOptions decodes a TOML options file. Unknown keys are rejected.
func LoadOptions(path string) (Options, error) {
	var o Options
	md, err := toml.DecodeFile(path, &o)
	if err != nil {
		return Options{}, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, fmt.Errorf("%w: %s: unknown key %q", ErrInvalidOptions, path, undecoded[0].String())
	}
	return o, nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(sink.Formats, sink.Format(format)) {
		return fmt.Errorf("%w: format %q (must be one of: svg, png, pdf, json)", ErrInvalidOptions, format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if vizType != VizPacking && vizType != VizNodelink {
		return fmt.Errorf("%w: viz_type %q (must be one of: packing, nodelink)", ErrInvalidOptions, vizType)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	n := 0
	for _, set := range []bool{o.Expr != "", o.Example != "", o.File != "", o.Document != nil} {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return fmt.Errorf("%w: one of expr, example or file is required", ErrInvalidOptions)
	case n > 1:
		return fmt.Errorf("%w: only one of expr, example or file may be given", ErrInvalidOptions)
	}

	var err error
	if o.geometry, err = surface.ParseGeometry(o.Geometry); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if o.boundary, err = surface.ParseBoundaryCondition(o.BoundaryCondition); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	o.Packing = o.Packing.WithDefaults()
	if err := o.Packing.Validate(); err != nil {
		return err
	}

	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if o.Layers == (diagram.Options{}) {
		o.Layers = diagram.DefaultOptions()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{string(sink.FormatSVG)}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Source returns which source field is set.
func (o *Options) Source() string {
	switch {
	case o.Expr != "":
		return SourceExpr
	case o.Example != "":
		return SourceExample
	case o.File != "":
		return SourceFile
	}
	return SourceMap
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizNodelink
}

// PackingKeyOpts returns cache key options for the packing stage.
func (o *Options) PackingKeyOpts() cache.PackingKeyOpts {
	return cache.PackingKeyOpts{
		Scheme:            string(o.Packing.Scheme),
		Tolerance:         o.Packing.Tolerance,
		MaxIterations:     o.Packing.MaxIterations,
		AnchorRadius:      o.Packing.AnchorRadius,
		DefaultRadius:     o.Packing.DefaultRadius,
		Geometry:          o.geometry.String(),
		BoundaryCondition: o.boundary.String(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string, name string) cache.ArtifactKeyOpts {
	layers := o.Layers.Layers()
	if o.IsNodelink() {
		layers = []string{VizNodelink}
		if o.Detailed {
			layers = append(layers, "detailed")
		}
	}
	return cache.ArtifactKeyOpts{
		Format: format,
		Layers: layers,
		Title:  name,
	}
}
