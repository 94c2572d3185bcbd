// Package platform provides the host-side collaborators used by the UI:
// an in-memory navigation history and the OS opener for links and mail.
package platform

import "sync"

// Entry is one history record.
type Entry struct {
	State string
	URL   string
}

// History is a browser-style navigation stack. Push records an entry
// without notifying listeners; Back pops one and notifies them with the
// entry that becomes current.
type History struct {
	mu       sync.Mutex
	entries  []Entry
	handlers map[int]func(state string)
	nextID   int
}

// NewHistory returns a history whose first entry is root.
func NewHistory(root Entry) *History {
	return &History{entries: []Entry{root}, handlers: map[int]func(string){}}
}

func (h *History) Push(state, url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Entry{State: state, URL: url})
}

// OnPopState registers handler and returns a function that removes it.
func (h *History) OnPopState(handler func(state string)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.handlers[id] = handler
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.handlers, id)
	}
}

// Back pops the current entry. It reports false when only the root entry
// is left.
func (h *History) Back() bool {
	h.mu.Lock()
	if len(h.entries) <= 1 {
		h.mu.Unlock()
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	state := h.entries[len(h.entries)-1].State
	handlers := make([]func(string), 0, len(h.handlers))
	for i := 0; i < h.nextID; i++ {
		if fn, ok := h.handlers[i]; ok {
			handlers = append(handlers, fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(state)
	}
	return true
}

// Current returns the top entry.
func (h *History) Current() Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
