package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ribbonpack/pkg/pipeline"
	"github.com/matzehuels/ribbonpack/pkg/render/nodelink"
)

// dotCommand prints the Graphviz source of a map without packing it.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		source   sourceFlags
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "dot [expression]",
		Short: "Print a map as a Graphviz graph",
		Long: `Print the vertices and edges of a map in DOT. Unpaired darts become point
nodes and the outer face is dashed. Use 'pack -t nodelink' for rendered output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := source.options(args)
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			doc, err := pipeline.Build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			dot := nodelink.ToDOT(doc.Map, nodelink.Options{Detailed: detailed, Outer: doc.Outer})

			if output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), dot)
				return err
			}
			if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			c.Logger.Infof("Wrote %s", output)
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "list darts in node labels")
	return cmd
}
