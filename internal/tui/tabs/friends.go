package tabs

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/cardfriends/internal/friends"
	"github.com/jask/cardfriends/internal/tui/core"
	"github.com/jask/cardfriends/internal/tui/widgets"
)

const FriendsTabID = "facebook"

// FriendsLoader performs one fetch for the friends list.
type FriendsLoader interface {
	Load(ctx context.Context, req friends.Request) friends.Result
}

type FriendsDeps struct {
	Context context.Context
	Loader  FriendsLoader
	Nav     friends.Navigator
	Actions friends.Actions
	Log     *zap.Logger
}

// friendsLoadedMsg carries a settled fetch back to the list that issued it.
type friendsLoadedMsg struct {
	list   *friends.List
	result friends.Result
}

type mailSentMsg struct {
	address string
	err     error
}

type FriendsTab struct {
	deps   FriendsDeps
	list   *friends.List
	ctx    context.Context
	cancel context.CancelFunc
	cursor int
	spin   spinner.Model
	pager  paginator.Model
	log    *zap.Logger
}

func NewFriendsTab(deps FriendsDeps) *FriendsTab {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = 1
	return &FriendsTab{
		deps:  deps,
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(headingStyle)),
		pager: pager,
		log:   log,
	}
}

func (t *FriendsTab) ID() string    { return FriendsTabID }
func (t *FriendsTab) Title() string { return "FaceBook Friends List" }

func (t *FriendsTab) Scope() string {
	if t.list != nil && t.list.Screen() == friends.ScreenProfile {
		return core.ScopeFriendsProfile
	}
	return core.ScopeFriendsList
}

// List returns the state of the current mount, nil before the first one.
func (t *FriendsTab) List() *friends.List { return t.list }

// Mount starts a fresh list at page 1 and fetches it. Results still in
// flight for the previous mount are cancelled and ignored.
func (t *FriendsTab) Mount(m *core.Model) tea.Cmd {
	t.Unmount()
	t.ctx, t.cancel = context.WithCancel(t.deps.Context)
	t.list = friends.New(t.deps.Nav, t.deps.Actions)
	t.cursor = 0
	return tea.Batch(t.fetch(t.list.Mount()), t.spin.Tick)
}

func (t *FriendsTab) Unmount() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if t.list != nil {
		t.list.Close()
	}
}

func (t *FriendsTab) fetch(req friends.Request) tea.Cmd {
	list, ctx, loader := t.list, t.ctx, t.deps.Loader
	t.log.Debug("fetch issued", zap.String("request_id", req.ID), zap.Uint64("seq", req.Seq), zap.Int("page", req.Page))
	return func() tea.Msg {
		return friendsLoadedMsg{list: list, result: loader.Load(ctx, req)}
	}
}

func (t *FriendsTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case friendsLoadedMsg:
		if msg.list != t.list || t.list == nil {
			t.log.Debug("result for unmounted list dropped", zap.String("request_id", msg.result.Request.ID))
			return nil
		}
		if !t.list.Settle(msg.result) {
			t.log.Debug("stale result dropped",
				zap.String("request_id", msg.result.Request.ID),
				zap.Uint64("seq", msg.result.Request.Seq))
			return nil
		}
		t.clampCursor()
		return nil
	case mailSentMsg:
		if msg.err != nil {
			t.log.Warn("mail failed", zap.String("address", msg.address), zap.Error(msg.err))
			m.SetError(msg.err)
			return nil
		}
		m.SetStatus("Composing mail to " + msg.address)
		return nil
	case spinner.TickMsg:
		if t.list == nil || !t.list.Loading() {
			return nil
		}
		var cmd tea.Cmd
		t.spin, cmd = t.spin.Update(msg)
		return cmd
	case tea.KeyMsg:
		if t.list == nil {
			return nil
		}
		if t.list.Screen() == friends.ScreenProfile {
			return t.handleProfileKey(m, msg)
		}
		return t.handleListKey(m, msg)
	}
	return nil
}

func (t *FriendsTab) handleListKey(m *core.Model, msg tea.KeyMsg) tea.Cmd {
	keys := m.Keys()
	scope := core.ScopeFriendsList
	switch {
	case keys.IsAction(msg, "prev-page", scope):
		return t.PreviousPage(m)
	case keys.IsAction(msg, "next-page", scope):
		return t.NextPage(m)
	}

	// the rows are hidden while a page loads
	users := t.list.Users()
	if t.list.Loading() || len(users) == 0 {
		return nil
	}
	current := users[t.cursor]
	switch {
	case keys.IsAction(msg, "row-down", scope):
		t.cursor = min(t.cursor+1, len(users)-1)
	case keys.IsAction(msg, "row-up", scope):
		t.cursor = max(t.cursor-1, 0)
	case keys.IsAction(msg, "open-profile", scope):
		t.list.OpenProfile(current)
	case keys.IsAction(msg, "email", scope):
		return t.mail(current)
	case keys.IsAction(msg, "delete", scope):
		if t.list.DeleteFriend(current.ID) {
			t.clampCursor()
			m.SetStatus("Removed " + current.FullName())
		}
	}
	return nil
}

func (t *FriendsTab) handleProfileKey(m *core.Model, msg tea.KeyMsg) tea.Cmd {
	keys := m.Keys()
	scope := core.ScopeFriendsProfile
	switch {
	case keys.IsAction(msg, "close-profile", scope):
		t.list.CloseProfile()
	case keys.IsAction(msg, "email", scope):
		if sel := t.list.Selected(); sel != nil {
			return t.mail(*sel)
		}
	}
	return nil
}

// PreviousPage moves the list back a page and fetches it. At page 1 it
// does nothing.
func (t *FriendsTab) PreviousPage(m *core.Model) tea.Cmd {
	if t.list == nil {
		return nil
	}
	req, ok := t.list.PreviousPage()
	if !ok {
		return nil
	}
	t.cursor = 0
	return tea.Batch(t.fetch(req), t.spin.Tick)
}

// NextPage moves the list forward a page and fetches it. On the last page
// it does nothing.
func (t *FriendsTab) NextPage(m *core.Model) tea.Cmd {
	if t.list == nil {
		return nil
	}
	req, ok := t.list.NextPage()
	if !ok {
		return nil
	}
	t.cursor = 0
	return tea.Batch(t.fetch(req), t.spin.Tick)
}

func (t *FriendsTab) mail(u friends.User) tea.Cmd {
	list := t.list
	return func() tea.Msg {
		return mailSentMsg{address: u.Email, err: list.Email(u)}
	}
}

func (t *FriendsTab) clampCursor() {
	n := len(t.list.Users())
	switch {
	case n == 0:
		t.cursor = 0
	case t.cursor >= n:
		t.cursor = n - 1
	}
}

func (t *FriendsTab) Build(m *core.Model) widgets.Widget {
	if t.list != nil && t.list.Screen() == friends.ScreenProfile {
		return widgets.Func(t.renderProfile)
	}
	return widgets.Func(t.renderList)
}

func (t *FriendsTab) renderList(width, height int) string {
	var b strings.Builder
	switch {
	case t.list == nil:
	case t.list.Loading():
		b.WriteString(t.spin.View() + " Loading...")
	default:
		users := t.list.Users()
		if len(users) == 0 {
			b.WriteString(hintStyle.Render("No friends on this page."))
		}
		for i, u := range users {
			row := widgets.PadRight(nameStyle.Render(u.FullName()), 24) + " " + hintStyle.Render(fmt.Sprintf("%d mutual friends", u.MutualFriends))
			if i == t.cursor {
				row = cursorStyle.Render("› " + row)
			} else {
				row = "  " + row
			}
			b.WriteString(row + "\n")
		}
	}

	content := strings.TrimRight(b.String(), "\n")
	body := max(3, height-2)
	return widgets.VStack{
		Widgets: []widgets.Widget{
			widgets.Pane{Title: "Friends", Content: content, Active: true},
			widgets.Text(t.pagerLine()),
		},
		Ratios: []float64{float64(body), 2},
	}.Render(width, height)
}

func (t *FriendsTab) pagerLine() string {
	if t.list == nil {
		return ""
	}
	t.pager.SetTotalPages(t.list.TotalPages())
	t.pager.Page = t.list.Page() - 1

	prev := buttonStyle.Render("Previous")
	if t.list.CanPrevious() {
		prev = buttonActive.Render("Previous")
	}
	next := buttonStyle.Render("Next")
	if t.list.CanNext() {
		next = buttonActive.Render("Next")
	}
	return fmt.Sprintf(" %s  %s  %s  page %d of %d", prev, t.pager.View(), next, t.list.Page(), t.list.TotalPages())
}

func (t *FriendsTab) renderProfile(width, height int) string {
	u := t.list.Selected()
	if u == nil {
		return widgets.Pane{Title: "Profile"}.Render(width, height)
	}
	lines := []string{
		headingStyle.Render(u.FullName()),
		"",
		labelStyle.Render("Email   ") + u.Email,
		labelStyle.Render("Avatar  ") + u.Avatar,
		labelStyle.Render("Mutual  ") + fmt.Sprintf("%d mutual friends", u.MutualFriends),
		"",
		buttonActive.Render("a Add Friend") + " " + buttonStyle.Render("m Message") + " " + buttonStyle.Render("esc Back"),
	}
	return widgets.Pane{Title: "Profile", Content: strings.Join(lines, "\n"), Active: true}.Render(width, height)
}
