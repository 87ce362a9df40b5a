// Package hook is the window manager's event subscription registry.
package hook

// Event is a window manager lifecycle event.
type Event int

const (
	WindowManaged Event = iota
	WindowKilled
	FocusChanged
	FloatChanged
	GroupChanged
	Startup
	nEvents
)

var eventNames = [nEvents]string{
	WindowManaged: "window-managed",
	WindowKilled:  "window-killed",
	FocusChanged:  "focus-changed",
	FloatChanged:  "float-changed",
	GroupChanged:  "group-changed",
	Startup:       "startup",
}

func (e Event) String() string {
	if e < 0 || e >= nEvents {
		return "unknown"
	}
	return eventNames[e]
}

// Registry holds callbacks per event. It is not safe for concurrent use:
// the window manager subscribes and fires only from its main loop, which
// also serializes the callbacks.
type Registry struct {
	subs [nEvents][]func()
}

// Subscribe appends fn to e's callbacks.
func (r *Registry) Subscribe(e Event, fn func()) {
	if e < 0 || e >= nEvents || fn == nil {
		return
	}
	r.subs[e] = append(r.subs[e], fn)
}

// SubscribeAll subscribes fn to every listed event.
func (r *Registry) SubscribeAll(fn func(), events ...Event) {
	for _, e := range events {
		r.Subscribe(e, fn)
	}
}

// Fire runs e's callbacks in subscription order.
func (r *Registry) Fire(e Event) {
	if e < 0 || e >= nEvents {
		return
	}
	for _, fn := range r.subs[e] {
		fn()
	}
}

// Len returns the number of callbacks subscribed to e.
func (r *Registry) Len(e Event) int {
	if e < 0 || e >= nEvents {
		return 0
	}
	return len(r.subs[e])
}
