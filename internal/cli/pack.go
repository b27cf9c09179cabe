package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ribbonpack/pkg/packing"
	"github.com/matzehuels/ribbonpack/pkg/pipeline"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram"
)

// packFlags holds the flags of the pack command that override options
// loaded from a config file.
type packFlags struct {
	source        sourceFlags
	output        string
	formats       string
	vizType       string
	layers        string
	scheme        string
	tolerance     float64
	maxIterations int
	anchorRadius  float64
	geometry      string
	boundary      string
	detailed      bool
	refresh       bool
	noCache       bool
}

// packCommand creates the pack command, the full build → pack → render run.
func (c *CLI) packCommand() *cobra.Command {
	var f packFlags

	cmd := &cobra.Command{
		Use:   "pack [expression]",
		Short: "Pack a map and draw it",
		Long: `Build a closed map, solve its circle packing and draw the requested layers.

The map comes from an expression, a catalog example (--example) or a map file
(--file). Webs and morphisms are closed automatically.

Packings and drawings are cached; --refresh solves again.`,
		Example: `  ribbonpack pack 'closure(polygon(5), [1, 1, 1, 1, 1])'
  ribbonpack pack -e glued --layers graph,circles -f svg,png
  ribbonpack pack --file map.toml -t nodelink -o map.svg
  ribbonpack pack -c run.toml --scheme basic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd, args)
			if err != nil {
				return err
			}
			return c.runPack(cmd.Context(), opts, f.output, f.noCache)
		},
	}

	f.register(cmd)
	return cmd
}

// register adds the pack flags to cmd.
func (f *packFlags) register(cmd *cobra.Command) {
	f.source.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&f.vizType, "type", "t", "", "visualization type: packing (default), nodelink")
	cmd.Flags().StringVarP(&f.layers, "layers", "l", "", "layers to draw: graph (default), circles, medial, triangles, radical-circles, all")
	cmd.Flags().StringVar(&f.scheme, "scheme", "", "iteration scheme: accelerated (default), basic")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", packing.DefaultTolerance, "angle error threshold")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", packing.DefaultMaxIterations, "maximum number of sweeps")
	cmd.Flags().Float64Var(&f.anchorRadius, "anchor-radius", packing.DefaultRadius, "fixed radius of the first circle")
	cmd.Flags().StringVar(&f.geometry, "geometry", "", "model space: euclidean (default), hyperbolic")
	cmd.Flags().StringVar(&f.boundary, "boundary", "", "boundary condition: neumann (default), dirichlet, cauchy")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "list darts in node labels (nodelink)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached packings")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	for flag, values := range map[string][]string{
		"format":   formatNames(),
		"layers":   append(diagram.AllOptions().Layers(), "all"),
		"type":     {pipeline.VizPacking, pipeline.VizNodelink},
		"scheme":   {string(packing.Accelerated), string(packing.Basic)},
		"geometry": {"euclidean", "hyperbolic"},
		"boundary": {"neumann", "dirichlet", "cauchy"},
	} {
		_ = cmd.RegisterFlagCompletionFunc(flag, completeList(values))
	}
}

// options merges the config file, the source flags and every flag the user
// set explicitly.
func (f *packFlags) options(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	opts, err := f.source.options(args)
	if err != nil {
		return opts, err
	}
	changed := cmd.Flags().Changed

	if changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("type") {
		opts.VizType = f.vizType
	}
	if changed("layers") {
		if opts.Layers, err = diagram.ParseLayers(f.layers); err != nil {
			return opts, err
		}
	}
	if changed("scheme") {
		opts.Packing.Scheme = packing.Scheme(strings.ToLower(f.scheme))
	}
	if changed("tolerance") {
		opts.Packing.Tolerance = f.tolerance
	}
	if changed("max-iterations") {
		opts.Packing.MaxIterations = f.maxIterations
	}
	if changed("anchor-radius") {
		opts.Packing.AnchorRadius = f.anchorRadius
	}
	if changed("geometry") {
		opts.Geometry = f.geometry
	}
	if changed("boundary") {
		opts.BoundaryCondition = f.boundary
	}
	if changed("detailed") {
		opts.Detailed = f.detailed
	}
	if changed("refresh") {
		opts.Refresh = f.refresh
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// runPack executes the pipeline and writes one file per format.
func (c *CLI) runPack(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spinner := newSpinner(ctx, os.Stderr, "Packing circles...")
	if opts.Packing.Progress == nil {
		opts.Packing.Progress = spinner.Progress
	}
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Packing failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, baseName(opts), output)
	if err != nil {
		return err
	}

	printSuccess("Packed %s", StyleHighlight.Render(result.Name))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.PackHit)
	printNewline()
	printNextStep("Inspect", "ribbonpack inspect "+sourceArg(opts))
	return nil
}

// sourceArg renders the source of opts as command-line arguments.
func sourceArg(opts pipeline.Options) string {
	switch {
	case opts.Example != "":
		return "-e " + opts.Example
	case opts.File != "":
		return "--file " + opts.File
	}
	return "'" + opts.Expr + "'"
}

// writeArtifacts writes each format to its own file and returns the paths
// written. A single format goes to output verbatim when given; otherwise
// files are named <base>.<format>, where base is output without a known
// format extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	if len(formats) == 1 && output != "" {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		return []string{output}, nil
	}

	if output != "" {
		base = output
		ext := filepath.Ext(output)
		if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
			base = strings.TrimSuffix(output, ext)
		}
	}

	paths := make([]string, 0, len(formats))
	for _, format := range slices.Compact(slices.Clone(formats)) {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
