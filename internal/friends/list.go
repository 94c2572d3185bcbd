// Package friends is the state machine behind the friends list: the current
// page of users, pagination, the loading flag, profile selection and local
// deletion.
package friends

import (
	"slices"

	"github.com/google/uuid"

	"github.com/jask/cardfriends/internal/usersapi"
)

// MutualFriendsBound is the exclusive upper bound of the random mutual
// friends count.
const MutualFriendsBound = 9

// Screen is the visible view of the list component.
type Screen string

const (
	ScreenList    Screen = "list"
	ScreenProfile Screen = "profile"
)

// History states and URLs pushed on profile navigation.
const (
	StateList    = "list"
	StateProfile = "profile"
	URLList      = "/"
	URLProfile   = "#profile"
)

// User is a fetched record with its client-side mutual friends count.
type User struct {
	usersapi.User
	MutualFriends int
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Request identifies one issued fetch.
type Request struct {
	ID   string
	Seq  uint64
	Page int
}

// Result is the settled outcome of a Request.
type Result struct {
	Request    Request
	Users      []User
	TotalPages int
	Err        error
}

// Navigator records history entries and reports external back navigation.
type Navigator interface {
	Push(state, url string)
	OnPopState(handler func(state string)) (unsubscribe func())
}

// Actions performs platform side effects.
type Actions interface {
	Mail(address string) error
	OpenLink(url string) error
}

// List is the mutable state of one mounted friends list.
type List struct {
	users       []User
	page        int
	totalPages  int
	loading     bool
	selected    *User
	latest      uint64
	nav         Navigator
	actions     Actions
	unsubscribe func()
}

// New returns a list at page 1 showing the list screen. The popstate
// listener is registered with nav until Close is called.
func New(nav Navigator, actions Actions) *List {
	l := &List{page: 1, totalPages: 1, nav: nav, actions: actions}
	if nav != nil {
		l.unsubscribe = nav.OnPopState(l.handlePopState)
	}
	return l
}

// Close detaches the popstate listener.
func (l *List) Close() {
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
}

func (l *List) Users() []User     { return slices.Clone(l.users) }
func (l *List) Page() int         { return l.page }
func (l *List) TotalPages() int   { return l.totalPages }
func (l *List) Loading() bool     { return l.loading }
func (l *List) Selected() *User   { return l.selected }
func (l *List) CanPrevious() bool { return l.page > 1 }
func (l *List) CanNext() bool     { return l.page < l.totalPages }

func (l *List) Screen() Screen {
	if l.selected != nil {
		return ScreenProfile
	}
	return ScreenList
}

// Mount issues the initial fetch for the current page.
func (l *List) Mount() Request {
	return l.begin()
}

func (l *List) begin() Request {
	l.latest++
	l.loading = true
	return Request{ID: uuid.NewString(), Seq: l.latest, Page: l.page}
}

// PreviousPage moves back one page. At page 1 nothing changes and no
// request is issued.
func (l *List) PreviousPage() (Request, bool) {
	if !l.CanPrevious() {
		return Request{}, false
	}
	l.page--
	return l.begin(), true
}

// NextPage moves forward one page, capped at the last known total.
func (l *List) NextPage() (Request, bool) {
	if !l.CanNext() {
		return Request{}, false
	}
	l.page++
	return l.begin(), true
}

// Settle applies a fetch result. Results for anything but the most recent
// request are dropped and leave the loading flag alone. A failed fetch
// keeps the previous users and total pages.
func (l *List) Settle(res Result) (applied bool) {
	if res.Request.Seq != l.latest {
		return false
	}
	l.loading = false
	if res.Err != nil {
		return true
	}
	l.users = slices.Clone(res.Users)
	l.totalPages = res.TotalPages
	return true
}

// DeleteFriend drops the user with id from the current page only.
func (l *List) DeleteFriend(id int) bool {
	n := len(l.users)
	l.users = slices.DeleteFunc(l.users, func(u User) bool { return u.ID == id })
	return len(l.users) != n
}

// OpenProfile selects u and pushes a profile history entry.
func (l *List) OpenProfile(u User) {
	sel := u
	l.selected = &sel
	if l.nav != nil {
		l.nav.Push(StateProfile, URLProfile)
	}
}

// CloseProfile returns to the list and pushes a list history entry.
func (l *List) CloseProfile() {
	l.selected = nil
	if l.nav != nil {
		l.nav.Push(StateList, URLList)
	}
}

// handlePopState reacts to back navigation that did not originate here.
// It never pushes history.
func (l *List) handlePopState(string) {
	if l.selected != nil {
		l.selected = nil
	}
}

// Email hands the address to the platform mail composer.
func (l *List) Email(u User) error {
	if l.actions == nil {
		return nil
	}
	return l.actions.Mail(u.Email)
}
