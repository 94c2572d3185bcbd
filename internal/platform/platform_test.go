package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryPushDoesNotNotify(t *testing.T) {
	h := NewHistory(Entry{State: "list", URL: "/"})
	calls := 0
	h.OnPopState(func(string) { calls++ })
	h.Push("profile", "#profile")
	require.Equal(t, 0, calls)
	require.Equal(t, Entry{State: "profile", URL: "#profile"}, h.Current())
	require.Equal(t, 2, h.Len())
}

func TestHistoryBackNotifiesWithNewTop(t *testing.T) {
	h := NewHistory(Entry{State: "list", URL: "/"})
	var got []string
	h.OnPopState(func(s string) { got = append(got, s) })
	h.Push("profile", "#profile")

	require.True(t, h.Back())
	require.Equal(t, []string{"list"}, got)
	require.False(t, h.Back(), "root entry is never popped")
	require.Len(t, got, 1)
}

func TestHistoryUnsubscribe(t *testing.T) {
	h := NewHistory(Entry{State: "list", URL: "/"})
	calls := 0
	off := h.OnPopState(func(string) { calls++ })
	off()
	h.Push("profile", "#profile")
	h.Back()
	require.Equal(t, 0, calls)
}

func TestHistoryHandlerMayPush(t *testing.T) {
	h := NewHistory(Entry{State: "list", URL: "/"})
	h.OnPopState(func(string) { h.Push("list", "/") })
	h.Push("profile", "#profile")
	require.True(t, h.Back())
	require.Equal(t, 2, h.Len())
}

type recorded struct {
	name string
	args []string
}

func TestOpenerCommands(t *testing.T) {
	cases := []struct {
		goos string
		want recorded
	}{
		{"linux", recorded{"xdg-open", []string{"mailto:a@b.c"}}},
		{"darwin", recorded{"open", []string{"mailto:a@b.c"}}},
		{"windows", recorded{"rundll32", []string{"url.dll,FileProtocolHandler", "mailto:a@b.c"}}},
	}
	for _, tc := range cases {
		t.Run(tc.goos, func(t *testing.T) {
			var got recorded
			o := &Opener{GOOS: tc.goos, Run: func(_ context.Context, name string, args ...string) error {
				got = recorded{name, args}
				return nil
			}}
			require.NoError(t, o.Mail("a@b.c"))
			require.Equal(t, tc.want, got)
		})
	}
}

func TestOpenerWrapsRunError(t *testing.T) {
	boom := errors.New("no handler")
	o := &Opener{GOOS: "linux", Run: func(context.Context, string, ...string) error { return boom }}
	err := o.OpenLink("https://example.com")
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "https://example.com")
}
