package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/blocksnap/pkg/geom"
	"github.com/matzehuels/blocksnap/pkg/render/nodelink"
	"github.com/matzehuels/blocksnap/pkg/scenario"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// historySize is how many past steps the play view lists.
const historySize = 6

// =============================================================================
// KeyMap
// =============================================================================

// KeyMap defines the key bindings of the play view.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Press  key.Binding
	Cancel key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Step   key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "n"),
		key.WithHelp("tab", "select"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "p"),
		key.WithHelp("shift+tab", "previous"),
	),
	Press: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("⏎", "press/drop"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Step: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "next step"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy DOT"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Press, k.Up, k.Cancel, k.Step, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Press, k.Cancel},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Step, k.Copy, k.Help, k.Quit},
	}
}

// =============================================================================
// PlayModel - Interactive drag
// =============================================================================

// PlayModel is the bubbletea model of the play command. It drives the
// world's controller with the same steps a scenario file would.
type PlayModel struct {
	World *scenario.World
	// Nudge is how far one arrow key moves the pointer.
	Nudge float64
	Keys  KeyMap

	// copyText receives the workspace DOT on the copy key.
	copyText func(string) error

	help    help.Model
	cursor  int
	pressed bool
	dxy     geom.Point
	script  int
	history []scenario.State
	notice  string
	err     error
}

// NewPlayModel creates a play model for w.
func NewPlayModel(w *scenario.World, nudge float64) PlayModel {
	if nudge <= 0 {
		nudge = defaultNudge
	}
	return PlayModel{
		World:    w,
		Nudge:    nudge,
		Keys:     DefaultKeyMap,
		copyText: clipboard.WriteAll,
		help:     help.New(),
	}
}

func (m PlayModel) Init() tea.Cmd {
	return nil
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.Keys.Quit):
		if m.pressed {
			m.apply(scenario.Step{Cancel: true})
		}
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.Keys.Next):
		if !m.pressed {
			m.cursor = (m.cursor + 1) % max(len(m.ids()), 1)
		}
	case key.Matches(msg, m.Keys.Prev):
		if !m.pressed {
			n := max(len(m.ids()), 1)
			m.cursor = (m.cursor + n - 1) % n
		}
	case key.Matches(msg, m.Keys.Press):
		if m.pressed {
			m.apply(scenario.Step{End: true})
			m.pressed = false
			break
		}
		ids := m.ids()
		if len(ids) == 0 {
			break
		}
		if m.apply(scenario.Step{Begin: ids[m.cursor%len(ids)]}) {
			m.pressed = true
			m.dxy = geom.Point{}
		}
	case key.Matches(msg, m.Keys.Cancel):
		if m.pressed {
			m.apply(scenario.Step{Cancel: true})
			m.pressed = false
		}
	case key.Matches(msg, m.Keys.Up):
		m.nudge(0, -1)
	case key.Matches(msg, m.Keys.Down):
		m.nudge(0, 1)
	case key.Matches(msg, m.Keys.Left):
		m.nudge(-1, 0)
	case key.Matches(msg, m.Keys.Right):
		m.nudge(1, 0)
	case key.Matches(msg, m.Keys.Step):
		m.playScripted()
	case key.Matches(msg, m.Keys.Copy):
		m.copyDOT()
	}
	return m, nil
}

// copyDOT puts the workspace graph, previews included, on the clipboard.
func (m *PlayModel) copyDOT() {
	dot := nodelink.ToDOT(m.World.Workspace, nodelink.Options{Markers: true})
	if err := m.copyText(dot); err != nil {
		m.err = fmt.Errorf("copy: %w", err)
		return
	}
	m.err = nil
	m.notice = "copied DOT to clipboard"
}

func (m *PlayModel) nudge(x, y float64) {
	if !m.pressed {
		return
	}
	m.dxy = m.dxy.Add(geom.Pt(x*m.Nudge, y*m.Nudge))
	m.apply(scenario.Step{Move: []float64{m.dxy.X, m.dxy.Y}})
}

// playScripted applies the next step of the scenario file.
func (m *PlayModel) playScripted() {
	steps := m.World.File.Steps
	if m.script >= len(steps) {
		return
	}
	step := steps[m.script]
	m.script++
	if !m.apply(step) {
		return
	}
	switch {
	case step.Begin != "":
		m.pressed = true
		m.dxy = geom.Point{}
	case len(step.Move) == 2:
		m.dxy = geom.Pt(step.Move[0], step.Move[1])
	case step.End, step.Cancel:
		m.pressed = false
	}
}

// apply performs step and records its state. It reports whether the step
// was applied.
func (m *PlayModel) apply(step scenario.Step) bool {
	st, err := m.World.Apply(step)
	m.err = err
	if err != nil {
		return false
	}
	m.history = append(m.history, st)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
	return true
}

// ids returns the ids of all blocks in paint order.
func (m PlayModel) ids() []string {
	blocks := m.World.Workspace.Blocks()
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID()
	}
	return ids
}

func (m PlayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.World.File.Name))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.Keys))
	b.WriteString("\n\n")

	selected := ""
	if ids := m.ids(); len(ids) > 0 {
		selected = ids[m.cursor%len(ids)]
	}
	var rows [][]string
	for _, blk := range m.World.Workspace.Blocks() {
		cursor := "  "
		if blk.ID() == selected {
			cursor = "▸ "
		}
		parent := "-"
		if p := blk.Parent(); p != nil {
			parent = p.ID()
		}
		pos := blk.Position()
		rows = append(rows, []string{cursor, blk.ID(), blk.Type(), fmt.Sprintf("%g, %g", pos.X, pos.Y), parent})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Block", "Type", "Position", "Parent").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(rows) && rows[row][1] == selected {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	st := m.World.State()
	switch {
	case st.WouldDelete:
		b.WriteString(listErrorStyle.Render("drop would delete"))
	case st.Closest != "":
		b.WriteString(StylePreview.Render(fmt.Sprintf("%s %s → %s", st.Mode, st.Local, st.Closest)))
	case st.Dragging:
		b.WriteString(listDimStyle.Render(fmt.Sprintf("dragging by %g, %g", m.dxy.X, m.dxy.Y)))
	default:
		b.WriteString(listDimStyle.Render("idle"))
	}
	b.WriteString("\n\n")

	for _, h := range m.history {
		b.WriteString(listDimStyle.Render(h.String()))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(StyleSuccess.Render(m.notice))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(listErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}
