package main

import (
	"log/slog"
	"time"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/barwm/internal/autostart"
	"github.com/nigeltao/barwm/internal/bar"
	"github.com/nigeltao/barwm/internal/clock"
	"github.com/nigeltao/barwm/internal/hook"
	"github.com/nigeltao/barwm/internal/indicator"
)

// The bar widgets other than the group list and the layout name are shared
// by every screen's bar. Those two differ per screen.
var (
	barWindow = &bar.TextBox{Name: bar.NameWindow}
	barSpacer = &bar.TextBox{Name: bar.NameSpacer, Stretch: true}
	barFloat  = &bar.TextBox{Name: bar.NameFloat}
	barClose  = &bar.TextBox{Name: bar.NameClose}
	barClock  = &bar.TextBox{Name: bar.NameClock}

	indicators = &indicator.Updater{Close: barClose, Float: barFloat}

	clockTicker = &clock.Ticker{
		Label:     repaintingLabel{barClock},
		Scheduler: mainLoopScheduler{},
	}
)

// mainLoopScheduler delivers deferred calls on the main goroutine.
type mainLoopScheduler struct{}

func (mainLoopScheduler) CallLater(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { proactiveChan <- fn })
}

// callLater runs fn once on the main goroutine, d from now.
func callLater(d time.Duration, fn func()) {
	mainLoopScheduler{}.CallLater(d, fn)
}

// repaintingLabel redraws the bars when its text changes.
type repaintingLabel struct {
	*bar.TextBox
}

func (l repaintingLabel) SetText(text string) {
	l.TextBox.SetText(text)
	if l.Changed() {
		drawBars()
	}
}

// indicatorEvents are the events after which the close and float
// indicators may be stale.
var indicatorEvents = []hook.Event{
	hook.WindowManaged,
	hook.WindowKilled,
	hook.FocusChanged,
	hook.FloatChanged,
	hook.GroupChanged,
}

func initHooks() {
	hooks.Subscribe(hook.Startup, func() {
		if cfg.Autostart.Enabled {
			n := autostart.Run(slog.Default(), spawner, cfg.Autostart.Commands)
			slog.Info("autostart", "started", n, "commands", len(cfg.Autostart.Commands))
		}
		clockTicker.Layout = cfg.Bar.ClockFormat
		clockTicker.Tick()
	})
	hooks.SubscribeAll(updateIndicators, indicatorEvents...)
	hooks.SubscribeAll(drawBars, append(indicatorEvents, hook.Startup)...)
	for _, e := range indicatorEvents {
		slog.Debug("hooks", "event", e, "callbacks", hooks.Len(e))
	}
}

// indicatorState snapshots the current group and its focused window. A
// missing screen or window reads as an empty group or no focus.
func indicatorState() indicator.State {
	g := currentGroup()
	if g == nil {
		return indicator.State{}
	}
	w := g.focused
	return indicator.State{
		GroupWindows: g.numWindows(),
		HasFocus:     w != nil,
		Floating:     w != nil && w.floating,
	}
}

func updateIndicators() {
	indicators.Update(indicatorState())
	name := ""
	if g := currentGroup(); g != nil && g.focused != nil {
		name = g.focused.name
	}
	barWindow.SetText(bar.Truncate(name, cfg.Bar.WindowNameWidth))
}

func groupNames() []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.name
	}
	return names
}

func barWidgets(s *screen) []*bar.TextBox {
	return []*bar.TextBox{
		{Name: bar.NameGroups, Text: bar.GroupBox(groupNames(), s.group.index())},
		barWindow,
		barSpacer,
		{Name: bar.NameLayout, Text: layouts[s.group.layout%len(layouts)].Kind.String()},
		barFloat,
		barClose,
		barClock,
	}
}

func drawBars() {
	for _, s := range screens {
		drawBar(s)
	}
}

func drawBar(s *screen) {
	b := s.bar
	if b.Height == 0 || s.group == nil {
		s.placements = nil
		return
	}
	setForeground(colorBarBackground)
	check(xp.PolyFillRectangleChecked(xConn, xp.Drawable(desktopXWin), desktopXGC, []xp.Rectangle{b}))
	s.placements = bar.Layout(barWidgets(s), int(b.Width), fontWidth)

	y := b.Y + int16(b.Height+fontHeight1)/2
	for _, p := range s.placements {
		if p.Text == "" {
			continue
		}
		color := uint32(colorBarText)
		if p.Name == bar.NameWindow || p.Name == bar.NameLayout {
			color = colorBarDim
		}
		setForeground(color)
		drawText(b.X+int16(p.X+bar.Padding*fontWidth), y, p.Text)
	}

	setForeground(colorBarLine)
	bottom := b.Y + int16(b.Height) - 1
	check(xp.PolyLineChecked(xConn, xp.CoordModeOrigin, xp.Drawable(desktopXWin), desktopXGC,
		[]xp.Point{{X: b.X, Y: bottom}, {X: b.X + int16(b.Width) - 1, Y: bottom}}))
}

// handleBarClick acts on a click at root X co-ordinate x in s's bar.
func handleBarClick(s *screen, x int16) {
	offset := int(x - s.bar.X)
	name, ok := bar.HitTest(s.placements, offset)
	if !ok {
		return
	}
	g := s.group
	switch name {
	case bar.NameClose:
		doKill(g, nil)
	case bar.NameFloat:
		doFloat(g, nil)
	case bar.NameLayout:
		doNextLayout(g, nil)
	case bar.NameGroups:
		if i := groupClicked(s.placements, offset); i >= 0 {
			showGroup(s, groups[i])
		}
	}
}

// groupClicked returns the index of the group drawn at pixel offset within
// the bar, or -1.
func groupClicked(placements []bar.Placement, offset int) int {
	for _, p := range placements {
		if p.Name != bar.NameGroups {
			continue
		}
		cell := (offset-p.X)/fontWidth - bar.Padding
		return bar.GroupAt(groupNames(), cell)
	}
	return -1
}
