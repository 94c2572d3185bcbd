package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/cardfriends/internal/tui/core"
)

type CommandOption struct {
	ID       string
	Name     string
	Desc     string
	Disabled bool
	Reason   string
}

func (i CommandOption) Title() string {
	if i.Disabled && i.Reason != "" {
		return fmt.Sprintf("%s (%s)", i.Name, i.Reason)
	}
	return i.Name
}
func (i CommandOption) Description() string { return i.Desc }
func (i CommandOption) FilterValue() string { return i.Name + " " + i.Desc + " " + i.ID }

// CommandScreen is the fuzzy command palette. Typed text goes to the query;
// only arrow and ctrl+n/ctrl+p keys move the selection.
type CommandScreen struct {
	scope    string
	keys     *core.KeyRegistry
	search   func(query string) []CommandOption
	onSelect func(id string) tea.Msg
	input    textinput.Model
	list     list.Model
}

func NewCommandScreen(scope string, keys *core.KeyRegistry, search func(query string) []CommandOption, onSelect func(id string) tea.Msg) *CommandScreen {
	inp := textinput.New()
	inp.Placeholder = "Search commands"
	inp.Prompt = "cmd> "
	inp.Focus()
	lst := list.New(nil, list.NewDefaultDelegate(), 64, 14)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowTitle(false)
	lst.KeyMap = paletteListKeys()
	s := &CommandScreen{scope: scope, keys: keys, search: search, onSelect: onSelect, input: inp, list: lst}
	s.refresh()
	return s
}

// paletteListKeys leaves letters to the query input.
func paletteListKeys() list.KeyMap {
	km := list.DefaultKeyMap()
	km.CursorUp = key.NewBinding(key.WithKeys("up", "ctrl+p"))
	km.CursorDown = key.NewBinding(key.WithKeys("down", "ctrl+n"))
	km.NextPage = key.NewBinding(key.WithKeys("pgdown"))
	km.PrevPage = key.NewBinding(key.WithKeys("pgup"))
	for _, b := range []*key.Binding{
		&km.GoToStart, &km.GoToEnd, &km.Filter, &km.ClearFilter,
		&km.CancelWhileFiltering, &km.AcceptWhileFiltering,
		&km.ShowFullHelp, &km.CloseFullHelp, &km.Quit, &km.ForceQuit,
	} {
		b.SetEnabled(false)
	}
	return km
}

func (s *CommandScreen) Title() string { return "Command Palette" }
func (s *CommandScreen) Scope() string { return core.ScopeCommandPalette }

func (s *CommandScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case s.isAction(msg, "close", "esc"):
			return s, nil, true
		case s.isAction(msg, "select", "enter"):
			it, ok := s.list.SelectedItem().(CommandOption)
			if !ok {
				return s, nil, false
			}
			if it.Disabled {
				return s, core.StatusCmd(it.Reason), true
			}
			if s.onSelect != nil {
				id := it.ID
				return s, func() tea.Msg { return s.onSelect(id) }, true
			}
			return s, nil, true
		}
		if key.Matches(msg, s.list.KeyMap.CursorUp, s.list.KeyMap.CursorDown, s.list.KeyMap.NextPage, s.list.KeyMap.PrevPage) {
			var cmd tea.Cmd
			s.list, cmd = s.list.Update(msg)
			return s, cmd, false
		}
	}
	var cmd tea.Cmd
	before := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.refresh()
	}
	return s, cmd, false
}

func (s *CommandScreen) isAction(msg tea.KeyMsg, action, fallback string) bool {
	if s.keys == nil {
		return msg.String() == fallback
	}
	return s.keys.IsAction(msg, action, core.ScopeCommandPalette)
}

// Selected returns the highlighted option.
func (s *CommandScreen) Selected() (CommandOption, bool) {
	it, ok := s.list.SelectedItem().(CommandOption)
	return it, ok
}

func (s *CommandScreen) refresh() {
	query := strings.TrimSpace(s.input.Value())
	items := s.search(query)
	ls := make([]list.Item, 0, len(items))
	for _, it := range items {
		ls = append(ls, it)
	}
	_ = s.list.SetItems(ls)
	s.list.ResetSelected()
}

func (s *CommandScreen) View(width, height int) string {
	s.list.SetWidth(width)
	s.list.SetHeight(max(6, height-4))
	return "Command Palette (scope: " + s.scope + ")\n" + s.input.View() + "\n" + s.list.View()
}
