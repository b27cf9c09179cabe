package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ribbonpack/pkg/catalog"
	"github.com/matzehuels/ribbonpack/pkg/pipeline"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ExampleListModel - Interactive example selection
// =============================================================================

// ExampleListModel is the bubbletea model for picking a catalog example.
type ExampleListModel struct {
	Examples []catalog.Example
	Cursor   int
	Selected *catalog.Example
	Height   int
	Offset   int
}

// NewExampleListModel creates a new example list model.
func NewExampleListModel(examples []catalog.Example) ExampleListModel {
	return ExampleListModel{
		Examples: examples,
		Height:   15,
	}
}

func (m ExampleListModel) Init() tea.Cmd {
	return nil
}

func (m ExampleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Examples)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Examples) == 0 {
				return m, tea.Quit
			}
			e := m.Examples[m.Cursor]
			m.Selected = &e
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ExampleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Example"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ pack  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Examples))
	for i := m.Offset; i < end; i++ {
		e := m.Examples[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-12s", cursor, e.Name)))
		b.WriteString(" " + listDimStyle.Render(e.Description))
		b.WriteString("\n")
	}

	if m.Cursor < len(m.Examples) {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
		b.WriteString("\n  " + StyleHighlight.Render(m.Examples[m.Cursor].Expr) + "\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Examples))))
	return b.String()
}

// pickCommand lets the user choose a catalog example and packs it.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		output  string
		formats string
		layers  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a catalog example interactively and pack it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(NewExampleListModel(catalog.All()),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.ErrOrStderr()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("selection: %w", err)
			}
			sel := final.(ExampleListModel).Selected
			if sel == nil {
				printInfo("Nothing selected")
				return nil
			}

			opts := pipeline.Options{Example: sel.Name, Formats: parseFormats(formats)}
			if layers != "" {
				if opts.Layers, err = diagram.ParseLayers(layers); err != nil {
					return err
				}
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runPack(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&layers, "layers", "l", "", "layers to draw (default: graph)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
