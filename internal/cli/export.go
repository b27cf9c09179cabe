package cli

import (
	"github.com/spf13/cobra"

	mapio "github.com/matzehuels/ribbonpack/pkg/io"
	"github.com/matzehuels/ribbonpack/pkg/pipeline"
)

// exportCommand writes the closed map of an expression or example as a
// map file that --file can read back.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		source sourceFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [expression]",
		Short: "Write a map file (JSON or TOML)",
		Example: `  ribbonpack export -e glued -o glued.toml
  ribbonpack export 'closure(polygon(5))' > pentagon.json`,
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
			if output == "" {
				return mapio.WriteJSON(doc, cmd.OutOrStdout())
			}
			if err := mapio.Export(doc, output); err != nil {
				return err
			}
			printSuccess("Exported %s", doc.Name)
			printFile(output)
			printNewline()
			printNextStep("Pack", "ribbonpack pack --file "+output)
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .json or .toml (default: JSON on stdout)")
	return cmd
}
