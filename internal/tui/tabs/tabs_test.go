package tabs

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/cardfriends/internal/tui/core"
)

func newShell(tabs ...core.Tab) *core.Model {
	m := core.NewModel(tabs, core.NewKeyRegistry(core.DefaultKeyBindings()), core.NewCommandRegistry(nil), nil, nil)
	return &m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t core.Tab, m *core.Model, s string) {
	for _, r := range s {
		t.Update(m, runes(string(r)))
	}
}

// drain runs cmd and any batched children, returning the messages they
// produce. Timed commands are never returned by the callers under test.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func deliver(t core.Tab, m *core.Model, cmd tea.Cmd) {
	for _, msg := range drain(cmd) {
		t.Update(m, msg)
	}
}
