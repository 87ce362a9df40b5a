package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nigeltao/barwm/internal/bar"
	"github.com/nigeltao/barwm/internal/clock"
	"github.com/nigeltao/barwm/internal/hook"
	"github.com/nigeltao/barwm/internal/indicator"
	"github.com/nigeltao/barwm/internal/mocks"
)

// useScreen makes a screen showing g current for the duration of a test.
// The screens list stays empty, so nothing is drawn.
func useScreen(t *testing.T, g *group) *screen {
	t.Helper()
	s := testScreen(g)
	old := currentScreen
	currentScreen = s
	t.Cleanup(func() { currentScreen = old })
	return s
}

// resetBar clears the shared bar widgets before and after a test.
func resetBar(t *testing.T) {
	t.Helper()
	reset := func() {
		for _, b := range []*bar.TextBox{barWindow, barFloat, barClose, barClock} {
			b.Text = ""
			b.Changed()
		}
	}
	reset()
	t.Cleanup(reset)
}

func TestIndicatorState(t *testing.T) {
	gs := useGroups(t, "1")
	req := require.New(t)
	g := gs[0]

	old := currentScreen
	currentScreen = nil
	t.Cleanup(func() { currentScreen = old })
	req.Equal(indicator.State{}, indicatorState())

	useScreen(t, g)
	req.Equal(indicator.State{}, indicatorState())

	w := addWindow(g, &window{})
	g.focused = w
	req.Equal(indicator.State{GroupWindows: 1, HasFocus: true}, indicatorState())

	f := addWindow(g, &window{floating: true})
	g.focused = f
	req.Equal(indicator.State{GroupWindows: 2, HasFocus: true, Floating: true}, indicatorState())

	g.focused = nil
	req.Equal(indicator.State{GroupWindows: 2}, indicatorState())
}

func TestUpdateIndicators(t *testing.T) {
	gs := useGroups(t, "1")
	useDefaultSettings(t)
	resetBar(t)
	req := require.New(t)
	g := gs[0]

	useScreen(t, g)
	updateIndicators()
	req.Empty(barClose.Text)
	req.Empty(barFloat.Text)
	req.Empty(barWindow.Text)

	w := addWindow(g, &window{name: "vim"})
	g.focused = w
	updateIndicators()
	req.Equal(indicator.CloseGlyph, barClose.Text)
	req.Equal(indicator.TiledGlyph, barFloat.Text)
	req.Equal("vim", barWindow.Text)

	w.floating = true
	updateIndicators()
	req.Equal(indicator.FloatingGlyph, barFloat.Text)

	cfg.Bar.WindowNameWidth = 4
	w.name = "a very long title"
	updateIndicators()
	req.Equal("a v…", barWindow.Text)
}

func TestInitHooks_Indicators(t *testing.T) {
	gs := useGroups(t, "1", "2")
	useDefaultSettings(t)
	useHooks(t)
	resetBar(t)
	req := require.New(t)
	g0, g1 := gs[0], gs[1]
	s := useScreen(t, g0)

	initHooks()
	for _, e := range indicatorEvents {
		req.Equal(2, hooks.Len(e), e.String())
	}
	req.Equal(2, hooks.Len(hook.Startup))

	w := addWindow(g0, &window{name: "term"})
	g0.focused = w
	hooks.Fire(hook.WindowManaged)
	req.Equal(indicator.CloseGlyph, barClose.Text)
	req.Equal(indicator.TiledGlyph, barFloat.Text)

	// Toggling the float state fires FloatChanged by itself.
	setFloating(w, true)
	req.Equal(indicator.FloatingGlyph, barFloat.Text)

	g0.focused = nil
	hooks.Fire(hook.FocusChanged)
	req.Equal(indicator.CloseGlyph, barClose.Text)
	req.Equal(indicator.TiledGlyph, barFloat.Text)

	showOn(s, g1)
	hooks.Fire(hook.GroupChanged)
	req.Empty(barClose.Text)
	req.Empty(barFloat.Text)

	showOn(s, g0)
	hooks.Fire(hook.GroupChanged)
	req.Equal(indicator.CloseGlyph, barClose.Text)

	w.remove()
	hooks.Fire(hook.WindowKilled)
	req.Empty(barClose.Text)
	req.Empty(barFloat.Text)
}

// recordingScheduler records deferred calls instead of running them.
type recordingScheduler struct {
	delays []time.Duration
}

func (r *recordingScheduler) CallLater(d time.Duration, _ func()) {
	r.delays = append(r.delays, d)
}

func TestInitHooks_Startup(t *testing.T) {
	useDefaultSettings(t)
	useHooks(t)
	resetBar(t)
	req := require.New(t)

	ctrl := gomock.NewController(t)
	m := mocks.NewMockSpawner(ctrl)
	oldSpawner := spawner
	spawner = m
	t.Cleanup(func() { spawner = oldSpawner })

	sched := &recordingScheduler{}
	oldTicker := clockTicker
	clockTicker = &clock.Ticker{
		Label:     barClock,
		Scheduler: sched,
		Now:       func() time.Time { return time.Date(2024, 5, 6, 10, 11, 12, 0, time.UTC) },
	}
	t.Cleanup(func() { clockTicker = oldTicker })

	cfg.Autostart.Enabled = true
	cfg.Autostart.Commands = [][]string{{"wosp-lock"}, {}, {"picom", "-b"}}
	gomock.InOrder(
		m.EXPECT().Spawn([]string{"wosp-lock"}).Return(nil),
		m.EXPECT().Spawn([]string{"picom", "-b"}).Return(nil),
	)

	initHooks()
	hooks.Fire(hook.Startup)
	req.Equal("10:11:12", barClock.Text)
	req.Equal([]time.Duration{time.Second}, sched.delays)
}

func TestInitHooks_StartupWithoutAutostart(t *testing.T) {
	useDefaultSettings(t)
	useHooks(t)
	resetBar(t)
	req := require.New(t)

	ctrl := gomock.NewController(t)
	oldSpawner := spawner
	spawner = mocks.NewMockSpawner(ctrl)
	t.Cleanup(func() { spawner = oldSpawner })

	sched := &recordingScheduler{}
	oldTicker := clockTicker
	clockTicker = &clock.Ticker{Label: barClock, Scheduler: sched}
	t.Cleanup(func() { clockTicker = oldTicker })

	cfg.Autostart.Enabled = false
	initHooks()
	hooks.Fire(hook.Startup)
	req.NotEmpty(barClock.Text)
	req.Len(sched.delays, 1)
}

func TestGroupNames_BarWidgets(t *testing.T) {
	gs := useGroups(t, "web", "code", "chat")
	req := require.New(t)
	req.Equal([]string{"web", "code", "chat"}, groupNames())

	s := testScreen(gs[1])
	widgets := barWidgets(s)
	req.Len(widgets, 7)
	req.Equal(bar.NameGroups, widgets[0].Name)
	req.Equal(" web [code] chat ", widgets[0].Text)
	req.True(widgets[2].Stretch)
	req.Equal(bar.NameLayout, widgets[3].Name)
	req.Equal("max", widgets[3].Text)
	req.Same(barClock, widgets[6])

	gs[1].layout = 2
	req.Equal("monadtall", barWidgets(s)[3].Text)
}

func TestGroupClicked(t *testing.T) {
	useGroups(t, "1", "22", "3")
	req := require.New(t)

	// " 1 [22] 3 " drawn from pixel 12, after one cell of padding.
	placements := []bar.Placement{
		{Name: bar.NameGroups, Text: " 1 [22] 3 ", X: 6, Width: 12 * fontWidth},
	}
	cellAt := func(cell int) int { return 6 + (cell+bar.Padding)*fontWidth }
	req.Equal(0, groupClicked(placements, cellAt(1)))
	req.Equal(1, groupClicked(placements, cellAt(4)))
	req.Equal(2, groupClicked(placements, cellAt(8)))
	req.Equal(-1, groupClicked(placements, cellAt(10)))
	req.Equal(-1, groupClicked(nil, 0))
}

func TestMainLoopScheduler(t *testing.T) {
	req := require.New(t)
	ran := false
	mainLoopScheduler{}.CallLater(time.Millisecond, func() { ran = true })
	select {
	case f := <-proactiveChan:
		f()
	case <-time.After(5 * time.Second):
		t.Fatal("deferred call was never delivered")
	}
	req.True(ran)
}

func TestRepaintingLabel(t *testing.T) {
	req := require.New(t)
	box := &bar.TextBox{Name: bar.NameClock}
	l := repaintingLabel{box}
	l.SetText("10:00:00")
	req.Equal("10:00:00", box.Text)
	// The label consumed the change when it repainted.
	req.False(box.Changed())
}
