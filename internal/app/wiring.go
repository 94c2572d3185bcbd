// Package app assembles the shell: tabs, the command palette and the
// commands it offers.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/cardfriends/internal/friends"
	"github.com/jask/cardfriends/internal/tui/core"
	"github.com/jask/cardfriends/internal/tui/screens"
	"github.com/jask/cardfriends/internal/tui/tabs"
)

// Deps are the collaborators shared by the tabs.
type Deps struct {
	Context  context.Context
	Loader   tabs.FriendsLoader
	History  History
	Actions  friends.Actions
	Renderer tabs.MarkdownRenderer
	Log      *zap.Logger
}

// History is the navigation stack seen by both the shell and the friends
// list.
type History interface {
	friends.Navigator
	core.Navigator
}

// Shell holds the assembled tabs so commands can reach them.
type Shell struct {
	Article *tabs.ArticleTab
	Friends *tabs.FriendsTab
}

func (s Shell) Tabs() []core.Tab {
	return []core.Tab{s.Article, s.Friends}
}

func NewShell(d Deps) Shell {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return Shell{
		Article: tabs.NewArticleTab(d.Actions, d.Renderer, log.Named("article")),
		Friends: tabs.NewFriendsTab(tabs.FriendsDeps{
			Context: d.Context,
			Loader:  d.Loader,
			Nav:     d.History,
			Actions: d.Actions,
			Log:     log.Named("friends"),
		}),
	}
}

// NewModel builds the root model with the shell's tabs and commands, starting
// on the tab named by start.
func NewModel(d Deps, start string) core.Model {
	shell := NewShell(d)
	m := core.NewModel(shell.Tabs(),
		core.NewKeyRegistry(core.DefaultKeyBindings()),
		core.NewCommandRegistry(nil),
		d.History,
		d.Log,
	)
	ConfigureModel(&m, shell)
	m.SelectInitialTab(start)
	return m
}

func ConfigureModel(m *core.Model, shell Shell) {
	if m == nil {
		return
	}
	m.OpenCommandModal = func(model *core.Model, scope string) core.Screen {
		return screens.NewCommandScreen(scope, model.Keys(),
			func(query string) []screens.CommandOption {
				results := model.CommandRegistry().Search(query, scope, model)
				out := make([]screens.CommandOption, 0, len(results))
				for _, r := range results {
					out = append(out, screens.CommandOption{ID: r.CommandID, Name: r.Name, Desc: r.Desc, Disabled: r.Disabled, Reason: r.Reason})
				}
				return out
			},
			func(id string) tea.Msg { return core.CommandExecuteMsg{CommandID: id} },
		)
	}
	RegisterCommands(m.CommandRegistry(), shell)
}

func RegisterCommands(reg *core.CommandRegistry, shell Shell) {
	reg.Register(core.Command{
		ID:          "switch-article",
		Name:        "Switch to article form",
		Description: "Show the article form, starting from a blank card",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			return m.SwitchTabByID(tabs.ArticleTabID)
		},
		Disabled: activeOn(tabs.ArticleTabID, "already on the article form"),
	})
	reg.Register(core.Command{
		ID:          "switch-friends",
		Name:        "Switch to friends list",
		Description: "Show the friends list from page 1",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			return m.SwitchTabByID(tabs.FriendsTabID)
		},
		Disabled: activeOn(tabs.FriendsTabID, "already on the friends list"),
	})
	reg.Register(core.Command{
		ID:          "submit-article",
		Name:        "Preview article",
		Description: "Validate the form and show the card",
		Scopes:      []string{core.ScopeArticle},
		Execute: func(m *core.Model) tea.Cmd {
			shell.Article.Submit(m)
			return nil
		},
	})
	reg.Register(core.Command{
		ID:          "open-link",
		Name:        "Open card link",
		Description: "Open the preview's click url in the browser",
		Scopes:      []string{core.ScopeArticle},
		Execute:     shell.Article.OpenLink,
		Disabled: func(m *core.Model) (bool, string) {
			if !shell.Article.Form().PreviewVisible() {
				return true, "preview the card first"
			}
			return false, ""
		},
	})
	reg.Register(core.Command{
		ID:          "next-page",
		Name:        "Next page",
		Description: "Fetch the next page of friends",
		Scopes:      []string{core.ScopeFriendsList},
		Execute:     shell.Friends.NextPage,
		Disabled: func(m *core.Model) (bool, string) {
			if l := shell.Friends.List(); l == nil || !l.CanNext() {
				return true, "already on the last page"
			}
			return false, ""
		},
	})
	reg.Register(core.Command{
		ID:          "prev-page",
		Name:        "Previous page",
		Description: "Fetch the previous page of friends",
		Scopes:      []string{core.ScopeFriendsList},
		Execute:     shell.Friends.PreviousPage,
		Disabled: func(m *core.Model) (bool, string) {
			if l := shell.Friends.List(); l == nil || !l.CanPrevious() {
				return true, "already on page 1"
			}
			return false, ""
		},
	})
	reg.Register(core.Command{
		ID:          "history-back",
		Name:        "Go back",
		Description: "Navigate back one history entry",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			return func() tea.Msg { return core.HistoryBackMsg{} }
		},
	})
}

// activeOn disables a command while tab id is showing.
func activeOn(id, reason string) func(m *core.Model) (bool, string) {
	return func(m *core.Model) (bool, string) {
		if active := m.ActiveTab(); active != nil && active.ID() == id {
			return true, reason
		}
		return false, ""
	}
}
