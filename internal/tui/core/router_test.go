package core

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/cardfriends/internal/tui/widgets"
)

type fakeTab struct {
	id        string
	scope     string
	mounts    int
	unmounts  int
	keys      []string
	otherMsgs int
}

func (t *fakeTab) ID() string    { return t.id }
func (t *fakeTab) Title() string { return strings.ToUpper(t.id) }
func (t *fakeTab) Scope() string { return t.scope }
func (t *fakeTab) Mount(m *Model) tea.Cmd {
	t.mounts++
	return StatusCmd("mounted " + t.id)
}
func (t *fakeTab) Unmount() { t.unmounts++ }
func (t *fakeTab) Update(m *Model, msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		t.keys = append(t.keys, km.String())
		return nil
	}
	t.otherMsgs++
	return nil
}
func (t *fakeTab) Build(m *Model) widgets.Widget { return widgets.Text("body of " + t.id) }

type fakeScreen struct{ hits int }

func (s *fakeScreen) Title() string        { return "Screen" }
func (s *fakeScreen) Scope() string        { return "screen:test" }
func (s *fakeScreen) View(int, int) string { return "screen" }
func (s *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		s.hits++
		if km.String() == "esc" {
			return s, nil, true
		}
	}
	return s, nil, false
}

type fakeNav struct{ backs int }

func (n *fakeNav) Back() bool { n.backs++; return n.backs == 1 }

func twoTabs() (*fakeTab, *fakeTab, Model) {
	a := &fakeTab{id: "article", scope: ScopeArticle}
	f := &fakeTab{id: "facebook", scope: ScopeFriendsList}
	m := NewModel([]Tab{a, f}, NewKeyRegistry(DefaultKeyBindings()), NewCommandRegistry(nil), &fakeNav{}, nil)
	return a, f, m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScreenGetsKeyBeforeTab(t *testing.T) {
	a, _, m := twoTabs()
	screen := &fakeScreen{}
	m.PushScreen(screen)

	next, _ := m.Update(runes("x"))
	updated := next.(Model)
	if screen.hits != 1 {
		t.Fatalf("screen should handle key first")
	}
	if len(a.keys) != 0 {
		t.Fatalf("tab should not receive key when screen open")
	}
	if updated.screens.Len() != 1 {
		t.Fatalf("screen should remain open")
	}
}

func TestScreenCanPopItself(t *testing.T) {
	_, _, m := twoTabs()
	m.PushScreen(&fakeScreen{})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Model).screens.Len() != 0 {
		t.Fatalf("expected screen to pop on esc")
	}
}

func TestNonKeyMessagesReachTabUnderScreen(t *testing.T) {
	a, _, m := twoTabs()
	m.PushScreen(&fakeScreen{})
	type tick struct{}
	m.Update(tick{})
	if a.otherMsgs != 1 {
		t.Fatalf("tab messages = %d, want 1", a.otherMsgs)
	}
}

func TestArticleScopeLetsLettersThrough(t *testing.T) {
	a, f, m := twoTabs()
	for _, k := range []string{"q", "1", "2"} {
		next, cmd := m.Update(runes(k))
		m = next.(Model)
		if cmd != nil {
			if _, quit := cmd().(tea.QuitMsg); quit {
				t.Fatalf("%q should not quit from the article form", k)
			}
		}
	}
	if got := strings.Join(a.keys, ""); got != "q12" {
		t.Fatalf("article keys = %q, want q12", got)
	}
	if f.mounts != 0 {
		t.Fatalf("friends tab should not mount on a typed digit")
	}
}

func TestSwitchTabRemounts(t *testing.T) {
	a, f, m := twoTabs()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF2})
	m = next.(Model)
	if f.mounts != 1 || a.unmounts != 1 {
		t.Fatalf("mounts=%d unmounts=%d, want 1/1", f.mounts, a.unmounts)
	}
	if cmd == nil {
		t.Fatal("expected mount command")
	}
	if m.ActiveTab().ID() != "facebook" {
		t.Fatalf("active = %s", m.ActiveTab().ID())
	}

	next, _ = m.Update(runes("2"))
	m = next.(Model)
	if f.mounts != 1 {
		t.Fatal("re-selecting the active tab should not remount")
	}

	next, _ = m.Update(runes("1"))
	m = next.(Model)
	if a.mounts != 1 || f.unmounts != 1 {
		t.Fatalf("article mounts=%d friends unmounts=%d", a.mounts, f.unmounts)
	}
}

func TestQuitInFriendsScope(t *testing.T) {
	_, _, m := twoTabs()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyF2})
	m = next.(Model)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestHistoryBackUsesNavigator(t *testing.T) {
	_, _, m := twoTabs()
	nav := m.Nav.(*fakeNav)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyF2})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(Model)
	if nav.backs != 1 {
		t.Fatalf("backs = %d, want 1", nav.backs)
	}
	next, _ = m.Update(HistoryBackMsg{})
	m = next.(Model)
	if status, _ := m.Status(); status != "Nothing to go back to" {
		t.Fatalf("status = %q", status)
	}
}

func TestViewShowsTabsAndBody(t *testing.T) {
	_, _, m := twoTabs()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	out := next.(Model).View()
	for _, want := range []string{"ARTICLE", "FACEBOOK", "body of article", "Ready"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines != 12 {
		t.Fatalf("view height = %d, want 12", lines)
	}
}
