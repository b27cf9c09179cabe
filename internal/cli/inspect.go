package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ribbonpack/pkg/packing"
	"github.com/matzehuels/ribbonpack/pkg/pipeline"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

// inspectCommand prints the combinatorics of a surface and, with --radii,
// the solved radius and angle sum of every circle.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		source  sourceFlags
		radii   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [expression]",
		Short: "Show the vertices, edges, faces and circles of a map",
		Example: `  ribbonpack inspect 'glue(vertex(4), vertex(3), 1)'
  ribbonpack inspect -e pentagon --radii`,
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
			s, err := pipeline.NewSurface(doc, opts)
			if err != nil {
				return err
			}

			printSummary(s)
			if !radii {
				return nil
			}

			hash, err := pipeline.MapHash(doc)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts.Logger = c.Logger
			p, err := runner.Pack(cmd.Context(), s, hash, opts)
			if err != nil {
				return err
			}
			printNewline()
			fmt.Fprintln(stdout, circleTable(s, p))
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().BoolVar(&radii, "radii", false, "solve the packing and list every circle")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func printSummary(s *surface.Surface) {
	m := s.Map()
	fmt.Fprintln(stdout, StyleTitle.Render(s.Name()))
	printKeyValue("darts", strconv.Itoa(m.Len()))
	printKeyValue("vertices", strconv.Itoa(len(s.Vertices())))
	printKeyValue("edges", strconv.Itoa(len(s.Edges())))
	printKeyValue("faces", strconv.Itoa(len(s.Faces())))
	printKeyValue("outer face", strconv.Itoa(len(s.Outer())))
	printKeyValue("euler", strconv.Itoa(s.EulerCharacteristic()))
	if g, err := s.Genus(); err == nil {
		printKeyValue("genus", strconv.Itoa(g))
	} else {
		printKeyValue("genus", "non-orientable")
	}
	printKeyValue("valency", valencyString(m.CountVertices()))
	printKeyValue("circles", strconv.Itoa(len(s.Circles())))
	printKeyValue("triangles", strconv.Itoa(len(s.Triangles())))
	if s.HasTadpole() {
		printWarning("A face runs along both sides of an edge; the packing cannot be drawn")
	}

	counts := s.RoleCounts()
	rows := make([][]string, 0, len(surface.Roles))
	for _, r := range surface.Roles {
		if counts[r] > 0 {
			rows = append(rows, []string{r.String(), strconv.Itoa(counts[r])})
		}
	}
	printNewline()
	fmt.Fprintln(stdout, newTable("Role", "Circles").Rows(rows...))
}

// valencyString formats a valency histogram as "3×2 4×1".
func valencyString(counts []int) string {
	var parts []string
	for k, n := range counts {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d×%d", k, n))
		}
	}
	return strings.Join(parts, " ")
}

func circleTable(s *surface.Surface, p *packing.Packing) *table.Table {
	sums := packing.AngleSums(s, p.Radii)
	rows := make([][]string, len(s.Circles()))
	for i, c := range s.Circles() {
		rows[i] = []string{
			strconv.Itoa(i),
			c.Role.String(),
			strconv.FormatFloat(p.Radii[i], 'f', 4, 64),
			strconv.FormatFloat(c.Angle/math.Pi, 'f', 3, 64) + "π",
			strconv.FormatFloat(sums[i]/math.Pi, 'f', 3, 64) + "π",
		}
	}
	return newTable("#", "Role", "Radius", "Target", "Angle sum").Rows(rows...)
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			return cellStyle
		})
}
