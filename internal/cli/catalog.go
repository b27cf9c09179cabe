package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ribbonpack/pkg/catalog"
	"github.com/matzehuels/ribbonpack/pkg/expr"
)

// catalogCommand lists the named examples.
func (c *CLI) catalogCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the example surfaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			examples := catalog.All()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(examples)
			}

			rows := make([][]string, len(examples))
			for i, e := range examples {
				rows[i] = []string{e.Name, e.Expr, e.Description}
			}
			fmt.Fprintln(cmd.OutOrStdout(), newTable("Name", "Expression", "Description").Rows(rows...))
			printNewline()
			printNextStep("Pack one", "ribbonpack pack -e "+examples[0].Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	cmd.AddCommand(c.functionsCommand())
	return cmd
}

// functionsCommand lists the functions of the expression language.
func (c *CLI) functionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the expression functions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, usage := range expr.Functions() {
				fmt.Fprintln(cmd.OutOrStdout(), "  "+StyleHighlight.Render(usage))
			}
		},
	}
}
