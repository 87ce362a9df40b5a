// Package clock renders the bar clock once a second.
package clock

import (
	"time"
)

// Layout is the clock's time format: 24-hour hours, minutes and seconds.
const Layout = "15:04:05"

// Interval is the delay between two ticks.
const Interval = time.Second

// Format renders t with Layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Label is the text widget the clock writes to.
type Label interface {
	SetText(text string)
}

// Scheduler runs fn once, d from now. Implementations must deliver fn on the
// same goroutine that runs the other callbacks.
type Scheduler interface {
	CallLater(d time.Duration, fn func())
}

// Ticker re-arms itself through its Scheduler after every tick, so it runs
// until stopped. Missed ticks are not compensated for.
type Ticker struct {
	Label     Label
	Scheduler Scheduler
	// Now defaults to time.Now.
	Now func() time.Time
	// Layout defaults to the package's Layout.
	Layout string

	stopped bool
}

// Tick renders the current time and schedules the next tick.
func (t *Ticker) Tick() {
	if t.stopped {
		return
	}
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	t0 := now()
	text := Format(t0)
	if t.Layout != "" {
		text = t0.Format(t.Layout)
	}
	t.Label.SetText(text)
	t.Scheduler.CallLater(Interval, t.Tick)
}

// Stop prevents any further rendering or rescheduling. A tick that is
// already scheduled becomes a no-op.
func (t *Ticker) Stop() {
	t.stopped = true
}
