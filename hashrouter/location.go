package hashrouter

import "strings"

// Location is the holder of the current URL fragment.
type Location interface {
	// Fragment returns the fragment without the leading '#'.
	Fragment() string
	// SetFragment replaces the fragment. A change must eventually be
	// reported to the OnChange listeners; setting the current value is a no-op.
	SetFragment(fragment string)
	OnChange(listener func())
}

// MemoryLocation keeps the fragment in memory and queues change
// notifications until Dispatch is called, like a browser event loop.
type MemoryLocation struct {
	fragment  string
	listeners []func()
	pending   int
}

func NewMemoryLocation(fragment string) *MemoryLocation {
	return &MemoryLocation{fragment: strings.TrimPrefix(fragment, "#")}
}

func (l *MemoryLocation) Fragment() string {
	return l.fragment
}

func (l *MemoryLocation) SetFragment(fragment string) {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == l.fragment {
		return
	}
	l.fragment = fragment
	l.pending++
}

func (l *MemoryLocation) OnChange(listener func()) {
	l.listeners = append(l.listeners, listener)
}

// Pending reports how many change notifications are queued.
func (l *MemoryLocation) Pending() int {
	return l.pending
}

// Dispatch delivers queued notifications, including those queued by the
// listeners themselves, and returns how many were delivered.
func (l *MemoryLocation) Dispatch() int {
	delivered := 0
	for l.pending > 0 {
		l.pending--
		delivered++
		for _, listener := range l.listeners {
			listener()
		}
	}
	return delivered
}
