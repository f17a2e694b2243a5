package cli

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/pkg/layout"
	"github.com/matzehuels/constellation/pkg/pipeline"
	"github.com/matzehuels/constellation/pkg/roster"
	"github.com/matzehuels/constellation/pkg/similarity"
)

// rotateStep is the rotation applied per [ or ] press.
const rotateStep = math.Pi / 12

// Map cell glyphs.
const (
	glyphStar   = "·"
	glyphLinked = "✦"
	glyphActive = "★"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listLinkedStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	mapBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// exploreCommand opens the interactive roster explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		flags  viewFlags
		active string
	)

	cmd := &cobra.Command{
		Use:   "explore [roster]",
		Short: "Browse a roster interactively",
		Long: `Browse a roster interactively.

Move through the visible students to see their closest classmates on a
small star map. Keys:

  ↑/k ↓/j  select student      m  cycle scoring mode
  +/-      more/fewer links    g  cycle year group
  [/]      rotate              t  cycle layout kind
  q        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Active = active
			return c.runExplore(cmd.Context(), args[0], opts)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&active, "active", "a", "", "student id to start on")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input string, opts pipeline.Options) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	entities, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		printWarning("%s has no students", input)
		return nil
	}

	m := NewExploreModel(ctx, runner, entities, opts)
	if m.Err != nil {
		return m.Err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("explore: %w", err)
	}
	return nil
}

// =============================================================================
// Key Map
// =============================================================================

type exploreKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Mode        key.Binding
	More        key.Binding
	Fewer       key.Binding
	Group       key.Binding
	Kind        key.Binding
	RotateLeft  key.Binding
	RotateRight key.Binding
	Quit        key.Binding
}

var exploreKeys = exploreKeyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Mode:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
	More:        key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more links")),
	Fewer:       key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "fewer links")),
	Group:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "group")),
	Kind:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "layout")),
	RotateLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "rotate left")),
	RotateRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "rotate right")),
	Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Mode, k.More, k.Fewer, k.Group, k.RotateRight, k.Quit}
}

func (k exploreKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Mode, k.More, k.Fewer},
		{k.Group, k.Kind, k.RotateLeft, k.RotateRight},
		{k.Quit},
	}
}

// =============================================================================
// ExploreModel
// =============================================================================

// ExploreModel is the bubbletea model behind the explore command. Every key
// press re-runs the pipeline for the current view.
type ExploreModel struct {
	ctx      context.Context
	runner   *pipeline.Runner
	entities []roster.Entity
	groups   []layout.GroupKey

	Opts   pipeline.Options
	Result *pipeline.Result
	Err    error

	// Active is the selected student id. It can drop out of view when the
	// group filter changes; the selection then moves to the first visible
	// student.
	Active string
	Cursor int
	Offset int
	Height int
	Width  int

	keys exploreKeyMap
	help help.Model
}

// NewExploreModel creates an explorer showing entities. opts must already be
// defaulted.
func NewExploreModel(ctx context.Context, runner *pipeline.Runner, entities []roster.Entity, opts pipeline.Options) ExploreModel {
	m := ExploreModel{
		ctx:      ctx,
		runner:   runner,
		entities: entities,
		groups:   layout.GroupKeys(entities),
		Opts:     opts,
		Active:   opts.Active,
		Height:   15,
		Width:    80,
		keys:     exploreKeys,
		help:     help.New(),
	}
	m.refresh()
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Mode):
			mode, _ := similarity.ParseMode(m.Opts.Mode)
			m.Opts.Mode = string(mode.Next())
		case key.Matches(msg, m.keys.More):
			m.Opts.TopN = m.Opts.Limits.Clamp(m.Opts.TopN + 1)
		case key.Matches(msg, m.keys.Fewer):
			m.Opts.TopN = m.Opts.Limits.Clamp(m.Opts.TopN - 1)
		case key.Matches(msg, m.keys.Group):
			m.Opts.Group = m.Opts.Filter().Next(m.groups).String()
		case key.Matches(msg, m.keys.Kind):
			kind, _ := layout.ParseKind(m.Opts.Kind)
			m.Opts.Kind = string(nextKind(kind))
		case key.Matches(msg, m.keys.RotateLeft):
			m.Opts.Rotation = wrapAngle(m.Opts.Rotation - rotateStep)
		case key.Matches(msg, m.keys.RotateRight):
			m.Opts.Rotation = wrapAngle(m.Opts.Rotation + rotateStep)
		default:
			return m, nil
		}
		m.refresh()
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = max(msg.Height-12, 5)
		m.help.Width = msg.Width
		m.scroll()
	}
	return m, nil
}

// move shifts the selection by delta within the visible students.
func (m *ExploreModel) move(delta int) {
	nodes := m.nodes()
	if len(nodes) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(nodes)-1)
	m.Active = nodes[m.Cursor].ID
}

// refresh recomputes the view for the current options and selection.
func (m *ExploreModel) refresh() {
	opts := m.Opts
	opts.Active = m.Active
	res, err := m.runner.Run(m.ctx, m.entities, opts)
	if err != nil {
		m.Err = err
		return
	}
	m.Err = nil

	idx := slices.IndexFunc(res.Layout.Nodes, func(n layout.Node) bool { return n.ID == m.Active })
	if idx < 0 && len(res.Layout.Nodes) > 0 {
		m.Active = res.Layout.Nodes[0].ID
		m.Cursor = 0
		m.refresh()
		return
	}
	m.Result = res
	m.Cursor = max(idx, 0)
	m.scroll()
}

// scroll keeps the cursor inside the list window.
func (m *ExploreModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *ExploreModel) nodes() []layout.Node {
	if m.Result == nil {
		return nil
	}
	return m.Result.Layout.Nodes
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Constellation"))
	if m.Result != nil {
		b.WriteString("  ")
		b.WriteString(listDimStyle.Render(m.status()))
	}
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error() + "\n")
	}
	if m.Result == nil {
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	linked := make(map[string]bool, len(m.Result.Links))
	for _, l := range m.Result.Links {
		linked[l.To.ID] = true
	}

	mapCols := min(max(m.Width-36, 24), 64)
	mapRows := max(m.Height, 8)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(linked),
		"  ",
		mapBoxStyle.Render(renderMap(m.Result, linked, mapCols, mapRows)),
	))
	b.WriteString("\n")

	if len(m.Result.Links) > 0 {
		b.WriteString(renderLinks(m.Opts.Table, m.Result))
	} else {
		b.WriteString(listDimStyle.Render("  no shared interests in view"))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m ExploreModel) status() string {
	return fmt.Sprintf("%s · mode %s · group %s · top %d · %d°",
		m.Result.Options.Kind, m.Result.Mode, m.Result.Filter, m.Opts.Limits.Clamp(m.Opts.TopN),
		int(math.Round(m.Opts.Rotation*180/math.Pi)))
}

func (m ExploreModel) renderList(linked map[string]bool) string {
	nodes := m.nodes()
	end := min(m.Offset+m.Height, len(nodes))

	var b strings.Builder
	for i := m.Offset; i < end; i++ {
		n := nodes[i]
		cursor := "  "
		style := listNormalStyle
		switch {
		case i == m.Cursor:
			cursor = "▸ "
			style = listSelectedStyle
		case linked[n.ID]:
			style = listLinkedStyle
		}
		line := fmt.Sprintf("%s%-20s %s", cursor, truncate(n.DisplayLabel(), 20), listDimStyle.Render(n.Group.String()))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(nodes))))
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// renderMap plots the visible students on a cols x rows character grid.
func renderMap(res *pipeline.Result, linked map[string]bool, cols, rows int) string {
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = slices.Repeat([]string{" "}, cols)
	}

	w, h := res.Options.Width, res.Options.Height
	for _, n := range res.Layout.Nodes {
		c := int(math.Round(n.X / w * float64(cols-1)))
		r := int(math.Round(n.Y / h * float64(rows-1)))
		c = min(max(c, 0), cols-1)
		r = min(max(r, 0), rows-1)

		switch {
		case res.Active != nil && n.ID == res.Active.ID:
			grid[r][c] = listSelectedStyle.Render(glyphActive)
		case linked[n.ID]:
			grid[r][c] = listLinkedStyle.Render(glyphLinked)
		default:
			grid[r][c] = listNormalStyle.Render(glyphStar)
		}
	}

	lines := make([]string, rows)
	for r, row := range grid {
		lines[r] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

func nextKind(k layout.Kind) layout.Kind {
	i := slices.Index(layout.Kinds, k)
	return layout.Kinds[(i+1)%len(layout.Kinds)]
}

// wrapAngle maps a to [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
