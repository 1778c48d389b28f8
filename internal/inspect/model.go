// Package inspect implements the interactive IR browser backing
// `embossc tui` (§1 "Interactive exploration"): a bubbletea tree view over
// the decorated IR (modules -> type definitions -> fields -> expressions),
// built on bubbles/list for the navigable list and lipgloss for styling,
// the entire stack carried from teacher-pack member bobbyhouse-iguana
// (cmd/iguana/main.go's promptModel is the closest analogue this repo's
// own teacher has to a bubbletea tea.Model, but it never imports the
// bubbletea stack itself).
package inspect

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-emboss/embossc/internal/ir"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

// frame is one level of the drill-down stack: the list showing that
// level's children, plus the node it was built from (so Update can push
// a child frame when the user drills in further).
type frame struct {
	current node
	list     list.Model
}

// Model is the bubbletea tea.Model for the IR browser. It keeps a stack
// of frames the way a breadcrumb trail works: pushing on Enter, popping
// on Esc/Backspace, quitting on Ctrl+C/q from any frame.
type Model struct {
	stack  []frame
	width  int
	height int
}

func newFrame(n node, width, height int) frame {
	items := make([]list.Item, len(n.children))
	for i, c := range n.children {
		items[i] = c
	}
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, width, height)
	l.Title = n.title
	if n.desc != "" {
		l.Title += "  —  " + n.desc
	}
	l.SetShowHelp(true)
	return frame{current: n, list: l}
}

// NewModel builds the browser rooted at the whole IR tree.
func NewModel(tree *ir.IR) Model {
	root := BuildTree(tree)
	return Model{stack: []frame{newFrame(root, 80, 24)}}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for i := range m.stack {
			m.stack[i].list.SetSize(msg.Width, msg.Height-2)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc", "backspace":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
			}
			return m, nil
		case "enter":
			top := &m.stack[len(m.stack)-1]
			if sel, ok := top.list.SelectedItem().(node); ok && len(sel.children) > 0 {
				m.stack = append(m.stack, newFrame(sel, m.width, m.height-2))
			}
			return m, nil
		}
	}

	top := &m.stack[len(m.stack)-1]
	var cmd tea.Cmd
	top.list, cmd = top.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	top := m.stack[len(m.stack)-1]
	help := helpStyle.Render("enter: expand  esc: back  q: quit")
	return top.list.View() + "\n" + help
}

// Run starts the browser over tree and blocks until the user quits.
func Run(tree *ir.IR) error {
	p := tea.NewProgram(NewModel(tree), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
