package core

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/cardfriends/internal/tui/widgets"
)

// Screen is a modal layered over the active tab.
type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

// Tab is one top-level screen of the shell. Mount is called every time the
// tab becomes active and must reset its state.
type Tab interface {
	ID() string
	Title() string
	Scope() string
	Mount(m *Model) tea.Cmd
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

// Unmounter is implemented by tabs holding resources across a mount.
type Unmounter interface {
	Unmount()
}

// Navigator is the shell's view of the navigation history.
type Navigator interface {
	Back() bool
}

type Model struct {
	width            int
	height           int
	tabs             []Tab
	activeTab        int
	screens          ScreenStack
	keys             *KeyRegistry
	commands         *CommandRegistry
	status           string
	statusErr        bool
	quitting         bool
	Nav              Navigator
	Log              *zap.Logger
	OpenCommandModal func(m *Model, scope string) Screen
}

func NewModel(tabs []Tab, keys *KeyRegistry, commands *CommandRegistry, nav Navigator, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		tabs:     tabs,
		keys:     keys,
		commands: commands,
		Nav:      nav,
		Log:      log,
		status:   "Ready",
		width:    100,
		height:   32,
	}
}

func (m Model) Init() tea.Cmd {
	if len(m.tabs) == 0 {
		return nil
	}
	return m.tabs[m.activeTab].Mount(&m)
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) Status() (string, bool) { return m.status, m.statusErr }

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	if len(m.tabs) == 0 {
		return "app"
	}
	return m.tabs[m.activeTab].Scope()
}

// ActiveTab returns the tab currently shown, or nil without tabs.
func (m Model) ActiveTab() Tab {
	if len(m.tabs) == 0 {
		return nil
	}
	return m.tabs[m.activeTab]
}

// SelectInitialTab makes id the active tab before Init runs. Unknown IDs
// are ignored.
func (m *Model) SelectInitialTab(id string) {
	for i, t := range m.tabs {
		if t.ID() == id {
			m.activeTab = i
			return
		}
	}
}

// SwitchTab unmounts the current tab and mounts the one at index. Selecting
// the active tab again is a no-op, matching a page switcher that only
// re-renders on change.
func (m *Model) SwitchTab(index int) tea.Cmd {
	if index < 0 || index >= len(m.tabs) || index == m.activeTab {
		return nil
	}
	if u, ok := m.tabs[m.activeTab].(Unmounter); ok {
		u.Unmount()
	}
	m.activeTab = index
	m.Log.Debug("tab switched", zap.String("tab", m.tabs[index].ID()))
	return m.tabs[index].Mount(m)
}

// SwitchTabByID is SwitchTab keyed by tab ID.
func (m *Model) SwitchTabByID(id string) tea.Cmd {
	for i, t := range m.tabs {
		if t.ID() == id {
			return m.SwitchTab(i)
		}
	}
	return nil
}

func (m *Model) PushScreen(s Screen) {
	m.screens.Push(s)
}

func (m *Model) Keys() *KeyRegistry { return m.keys }

func (m *Model) CommandRegistry() *CommandRegistry {
	return m.commands
}

func (m Model) Size() (int, int) { return m.width, m.height }
