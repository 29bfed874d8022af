package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
	"github.com/NCI-Agency/anet-orgchart/pkg/orgchart"
	"github.com/NCI-Agency/anet-orgchart/pkg/pipeline"
)

// Terminal cells are mapped to chart pixels at this size when fitting the
// viewport to the window.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

var (
	exploreHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	exploreStatusStyle = lipgloss.NewStyle().Foreground(colorGreen)
	exploreErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	exploreHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		flags  chartFlags
		export string
	)

	cmd := &cobra.Command{
		Use:   "explore [tree-file]",
		Short: "Browse an organization chart in the terminal",
		Long: `Browse an organization chart interactively.

Keys:
  + / -      show one level more / less
  0-9        show exactly that many levels
  f          cycle the people filter
  s          toggle APP-6 symbols
  r          refit the chart to the window
  e          export the current chart as SVG
  ↑/↓        scroll
  q          quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.chartOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), inputArg(args), opts, export, flags.noCache)
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "SVG file written by the e key (default: <root>.svg)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input string, opts pipeline.Options, export string, noCache bool) error {
	if err := requireInput(input, opts.OrgUUID); err != nil {
		return err
	}
	runner, closeRunner, err := c.newRunner(ctx, input, noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	tree, err := runner.Fetch(ctx, opts)
	if err != nil {
		return err
	}
	if export == "" {
		export = sanitizeFileName(tree.Root.DisplayName()) + ".svg"
	}

	m, err := NewExploreModel(tree, opts, export)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// ExploreModel - Interactive chart controls
// =============================================================================

// ExploreModel is the bubbletea model behind the explore command. Every
// control change recomputes the chart; resizing and reframing only refit
// the viewport.
type ExploreModel struct {
	tree   *org.Tree
	opts   pipeline.Options
	depth  *orgchart.DepthControl
	filter orgchart.FilterMode

	chart orgchart.Chart
	geo   orgchart.Geometry
	vp    orgchart.Viewport

	width, height int // terminal size in cells
	offset        int
	exportPath    string
	status        string
	err           error
}

// NewExploreModel lays out tree with opts and returns the model.
func NewExploreModel(tree *org.Tree, opts pipeline.Options, exportPath string) (*ExploreModel, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	m := &ExploreModel{
		tree:       tree,
		opts:       opts,
		depth:      orgchart.NewDepthControl(tree.MaxDepth(), opts.DepthLimit),
		filter:     opts.FilterMode(),
		width:      int(opts.Width / cellWidth),
		height:     int(opts.Height / cellHeight),
		exportPath: exportPath,
	}
	m.relayout()
	return m, nil
}

func (m *ExploreModel) Init() tea.Cmd {
	return nil
}

func (m *ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.depth.Increment()
			m.relayout()
		case "-", "_":
			m.depth.Decrement()
			m.relayout()
		case "f":
			m.filter = m.filter.Next()
			m.relayout()
		case "s":
			m.opts.Symbols = !m.opts.Symbols
			m.relayout()
		case "r":
			m.refit()
			m.status = fmt.Sprintf("Refit to %.0f×%.0f", m.container().Width, m.container().Height)
		case "e":
			m.export()
		case "up", "k":
			m.offset = max(m.offset-1, 0)
		case "down", "j":
			m.offset = min(m.offset+1, max(len(m.chart.Nodes)-1, 0))
		default:
			if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
				m.depth.Set(int(key[0] - '0'))
				m.relayout()
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refit()
	}
	return m, nil
}

// relayout recomputes the chart for the current controls and refits.
func (m *ExploreModel) relayout() {
	opts := m.opts
	opts.DepthLimit = m.depth.Limit()
	opts.Filter = m.filter.String()

	chart, geo, err := pipeline.ComputeChart(m.tree, opts)
	if err != nil {
		m.err = err
		return
	}
	m.chart, m.geo, m.err = chart, geo, nil
	m.offset = min(m.offset, max(len(chart.Nodes)-1, 0))
	m.refit()
}

func (m *ExploreModel) refit() {
	m.vp = orgchart.Fit(m.chart.Nodes, m.geo, m.container())
}

func (m *ExploreModel) container() orgchart.Size {
	return orgchart.Size{
		Width:  float64(max(m.width, 1)) * cellWidth,
		Height: float64(max(m.height, 1)) * cellHeight,
	}
}

// Layout returns the current chart as an exported layout.
func (m *ExploreModel) Layout() graph.Layout {
	return m.chart.Export(m.geo, m.vp)
}

func (m *ExploreModel) export() {
	opts := m.opts
	opts.Formats = []string{pipeline.FormatSVG}
	artifacts, err := pipeline.Render(m.Layout(), opts)
	if err == nil {
		err = os.WriteFile(m.exportPath, artifacts[pipeline.FormatSVG], 0o644)
	}
	if err != nil {
		m.err = err
		return
	}
	m.status = "Exported " + m.exportPath
}

func (m *ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.tree.Root.DisplayName()))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("depth %d/%d · filter %s · symbols %s · zoom %.2f",
		m.depth.Limit(), m.depth.Max(), m.filter, onOff(m.opts.Symbols), m.vp.Zoom)))
	b.WriteString("\n")
	b.WriteString(exploreHelpStyle.Render("+/- depth  0-9 set depth  f filter  s symbols  r refit  e export  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.table())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(exploreErrorStyle.Render(iconError + " " + m.err.Error()))
	case m.status != "":
		b.WriteString(exploreStatusStyle.Render(iconSuccess + " " + m.status))
	default:
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", min(m.offset+1, len(m.chart.Nodes)), len(m.chart.Nodes))))
	}
	return b.String()
}

func (m *ExploreModel) table() string {
	rows := max(m.height-8, 3)
	end := min(m.offset+rows, len(m.chart.Nodes))

	data := make([][]string, 0, end-m.offset)
	for _, n := range m.chart.Nodes[m.offset:end] {
		name := strings.Repeat("  ", n.Data.Depth) + n.Data.Organization.DisplayName()
		data = append(data, []string{
			name,
			fmt.Sprintf("%.0f,%.0f", n.X, n.Y),
			peopleSummary(n.Data.People),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Organization", "Position", "People").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return exploreHeaderStyle
			}
			if m.offset+row == 0 {
				return StyleHighlight.Bold(true)
			}
			return StyleValue
		}).
		Render()
}

func peopleSummary(people []org.Person) string {
	switch len(people) {
	case 0:
		return "—"
	case 1:
		return displayPerson(people[0])
	default:
		return fmt.Sprintf("%s +%d", displayPerson(people[0]), len(people)-1)
	}
}

func displayPerson(p org.Person) string {
	return strings.TrimSpace(p.Rank + " " + p.Name)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
