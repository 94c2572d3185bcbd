package core

// Scopes used by the shell and its tabs.
const (
	ScopeArticle         = "tab:article"
	ScopeFriendsList     = "tab:facebook:list"
	ScopeFriendsProfile  = "tab:facebook:profile"
	ScopeCommandPalette  = "screen:command"
	scopeFriendsAnywhere = "tab:facebook:*"
)

// DefaultKeyBindings keeps plain letters out of the article scope so the
// form inputs receive them.
func DefaultKeyBindings() []KeyBinding {
	friends := []string{scopeFriendsAnywhere}
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: "quit", Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: friends},
		{Keys: []string{"f1", "alt+1"}, Action: "switch-tab-1", Description: "article", Scopes: []string{"*"}},
		{Keys: []string{"f2", "alt+2"}, Action: "switch-tab-2", Description: "friends", Scopes: []string{"*"}},
		{Keys: []string{"1"}, Action: "switch-tab-1", Description: "article", Scopes: friends},
		{Keys: []string{"2"}, Action: "switch-tab-2", Description: "friends", Scopes: friends},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: []string{"*"}},
		{Keys: []string{"alt+left", "backspace"}, Action: "history-back", Description: "back", Scopes: friends},
		{Keys: []string{"alt+left"}, Action: "history-back", Description: "back", Scopes: []string{ScopeArticle}},

		{Keys: []string{"tab"}, Action: "next-field", Description: "next field", Scopes: []string{ScopeArticle}},
		{Keys: []string{"shift+tab"}, Action: "prev-field", Description: "prev field", Scopes: []string{ScopeArticle}},
		{Keys: []string{"ctrl+s"}, Action: "submit", Description: "preview", Scopes: []string{ScopeArticle}},
		{Keys: []string{"ctrl+o"}, Action: "open-link", Description: "open link", Scopes: []string{ScopeArticle}},

		{Keys: []string{"j", "down"}, Action: "row-down", Description: "down", Scopes: []string{ScopeFriendsList}},
		{Keys: []string{"k", "up"}, Action: "row-up", Description: "up", Scopes: []string{ScopeFriendsList}},
		{Keys: []string{"enter", "o"}, Action: "open-profile", Description: "profile", Scopes: []string{ScopeFriendsList}},
		{Keys: []string{"c", "e"}, Action: "email", Description: "confirm (email)", Scopes: []string{ScopeFriendsList}},
		{Keys: []string{"d", "x"}, Action: "delete", Description: "delete", Scopes: []string{ScopeFriendsList}},
		{Keys: []string{"h", "left"}, Action: "prev-page", Description: "prev page", Scopes: []string{ScopeFriendsList}},
		{Keys: []string{"l", "right"}, Action: "next-page", Description: "next page", Scopes: []string{ScopeFriendsList}},

		{Keys: []string{"esc", "b"}, Action: "close-profile", Description: "back to list", Scopes: []string{ScopeFriendsProfile}},
		{Keys: []string{"a"}, Action: "email", Description: "add friend", Scopes: []string{ScopeFriendsProfile}},
		{Keys: []string{"m", "e"}, Action: "email", Description: "message", Scopes: []string{ScopeFriendsProfile}},

		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{ScopeCommandPalette}},
		{Keys: []string{"enter"}, Action: "select", Description: "run", Scopes: []string{ScopeCommandPalette}},
	}
}
