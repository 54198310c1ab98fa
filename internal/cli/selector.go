package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type selectKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Home  key.Binding
	End   key.Binding
	Enter key.Binding
	Quit  key.Binding
}

var selectKeys = selectKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home", "first"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end", "last"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// selectModel is a single-choice list driven by the arrow keys.
type selectModel struct {
	label   string
	options []string
	cursor  int
	chosen  int
	aborted bool
	keys    selectKeyMap
}

func newSelectModel(label string, options []string) selectModel {
	return selectModel{label: label, options: options, chosen: -1, keys: selectKeys}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.options) - 1
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case key.Matches(keyMsg, m.keys.Home):
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.End):
		m.cursor = len(m.options) - 1
	case key.Matches(keyMsg, m.keys.Enter):
		m.chosen = m.cursor
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.chosen >= 0 || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.label))
	b.WriteString("\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.keys.Up.Help().Key + "/" + m.keys.Down.Help().Key + " move • enter select • esc quit"))
	b.WriteString("\n")
	return b.String()
}

func runSelect(ctx context.Context, label string, options []string, in io.Reader, out io.Writer) (int, error) {
	final, err := tea.NewProgram(newSelectModel(label, options),
		tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out)).Run()
	if ctx.Err() != nil {
		return -1, ErrAborted
	}
	if err != nil {
		return -1, err
	}
	m, ok := final.(selectModel)
	if !ok || m.aborted || m.chosen < 0 {
		return -1, ErrAborted
	}
	return m.chosen, nil
}
