package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/parse"
)

// Explorer styles
var (
	exploreFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	exploreBlurStyle  = lipgloss.NewStyle().Foreground(colorGray)
	exploreErrStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// exploreCommand creates the interactive format explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		format    string
		text      string
		typesPath string
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Interactively try format strings against sample text",
		Long: `Interactively try format strings against sample text.

The explorer shows the compiled pattern and extracted fields live as
you edit either the format string or the input text. Useful for
working out a format before wiring it into a script or schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := loadRegistry(typesPath)
			if err != nil {
				return err
			}
			model := newExploreModel(format, text, reg)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "initial format string")
	cmd.Flags().StringVar(&text, "text", "", "initial sample text")
	cmd.Flags().StringVarP(&typesPath, "types", "t", "", "TOML file with custom type definitions")

	return cmd
}

// Focusable inputs, cycled with tab.
const (
	focusFormat = iota
	focusText
)

// Match modes, cycled with ctrl+o.
var exploreModes = []string{"parse", "search", "findall"}

// exploreModel is the bubbletea model for the format explorer.
type exploreModel struct {
	registry *convert.Registry

	format string
	text   string
	focus  int
	mode   int

	compiled   *parse.Format
	compileErr error
	results    []*parse.Result
	matchErr   error
}

func newExploreModel(format, text string, reg *convert.Registry) exploreModel {
	m := exploreModel{
		registry: reg,
		format:   format,
		text:     text,
	}
	m.refresh()
	return m
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.focus = (m.focus + 1) % 2
		return m, nil
	case "ctrl+o":
		m.mode = (m.mode + 1) % len(exploreModes)
	case "backspace":
		s := m.focused()
		if len(*s) > 0 {
			r := []rune(*s)
			*s = string(r[:len(r)-1])
		}
	case "ctrl+u":
		*m.focused() = ""
	case " ":
		*m.focused() += " "
	default:
		if key.Type != tea.KeyRunes {
			return m, nil
		}
		*m.focused() += string(key.Runes)
	}

	m.refresh()
	return m, nil
}

// focused returns the string the current focus edits.
func (m *exploreModel) focused() *string {
	if m.focus == focusFormat {
		return &m.format
	}
	return &m.text
}

// refresh recompiles the format and re-runs the match.
func (m *exploreModel) refresh() {
	m.compiled, m.compileErr = nil, nil
	m.results, m.matchErr = nil, nil

	if m.format == "" {
		return
	}

	f, err := parse.Compile(m.format, m.registry)
	if err != nil {
		m.compileErr = err
		return
	}
	m.compiled = f

	if m.text == "" {
		return
	}

	switch exploreModes[m.mode] {
	case "search":
		r, err := f.Search(m.text)
		if r != nil {
			m.results = []*parse.Result{r}
		}
		m.matchErr = err
	case "findall":
		m.results, m.matchErr = f.FindAll(m.text)
	default:
		r, err := f.Parse(m.text)
		if r != nil {
			m.results = []*parse.Result{r}
		}
		m.matchErr = err
	}
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Format Explorer"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab: switch input  ctrl+o: cycle mode  ctrl+u: clear  esc: quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderInput("Format", m.format, m.focus == focusFormat))
	b.WriteString(m.renderInput("Text", m.text, m.focus == focusText))
	b.WriteString(fmt.Sprintf("  %s %s\n\n", StyleDim.Render("Mode:"), StyleHighlight.Render(exploreModes[m.mode])))

	switch {
	case m.compileErr != nil:
		b.WriteString("  " + exploreErrStyle.Render(m.compileErr.Error()) + "\n")
	case m.compiled == nil:
		b.WriteString(StyleDim.Render("  enter a format string to begin") + "\n")
	default:
		b.WriteString(m.renderOutcome())
	}

	return b.String()
}

func (m exploreModel) renderInput(label, value string, focused bool) string {
	marker := "  "
	style := exploreBlurStyle
	if focused {
		marker = "▸ "
		style = exploreFocusStyle
	}
	shown := value
	if focused {
		shown += "█"
	}
	return fmt.Sprintf("%s%s %s\n", marker, style.Render(label+":"), StyleValue.Render(shown))
}

func (m exploreModel) renderOutcome() string {
	var b strings.Builder

	b.WriteString("  " + StyleDim.Render("Pattern: "+m.compiled.Pattern()) + "\n\n")

	if m.text == "" {
		b.WriteString(StyleDim.Render("  enter sample text to match against") + "\n")
		return b.String()
	}
	if m.matchErr != nil || len(m.results) == 0 {
		b.WriteString("  " + StyleWarning.Render("no match") + "\n")
		return b.String()
	}

	rows := [][]string{}
	for i, res := range m.results {
		match := fmt.Sprintf("%d", i+1)
		for j, v := range res.Positional {
			rows = append(rows, []string{match, fmt.Sprintf("#%d", j), formatValue(v)})
		}
		for _, name := range res.Names() {
			rows = append(rows, []string{match, name, formatValue(res.Named[name])})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Match", "Field", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}
