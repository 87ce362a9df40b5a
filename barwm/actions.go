package main

import (
	"log/slog"
	"os"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/barwm/internal/hook"
	"github.com/nigeltao/barwm/internal/layout"
	"github.com/nigeltao/barwm/internal/logging"
	"github.com/nigeltao/barwm/internal/rules"
	"github.com/nigeltao/barwm/internal/settings"
)

func doSpawn(_ *group, cmd1 interface{}) {
	cmd, ok := cmd1.([]string)
	if !ok || len(cmd) == 0 {
		return
	}
	// Ignore any error from the program itself.
	if err := spawner.Spawn(cmd); err != nil {
		slog.Warn("could not start command", "cmd", cmd, "err", err)
	}
}

func doProgram(g *group, p1 interface{}) {
	p, ok := p1.(program)
	if !ok {
		return
	}
	doSpawn(g, programCommand(p))
}

func programCommand(p program) []string {
	switch p {
	case progTerminal:
		return cfg.Programs.Terminal
	case progPower:
		return cfg.Programs.Power
	case progLauncher:
		return cfg.Programs.Launcher
	case progLock:
		return cfg.Programs.Lock
	case progRocker:
		return cfg.Programs.Rocker
	case progRun:
		return cfg.Programs.Run
	}
	return nil
}

func setCurrentScreen(s *screen) {
	if s == nil || s == currentScreen {
		return
	}
	currentScreen = s
	hooks.Fire(hook.GroupChanged)
}

// currentGroup is the group on the screen that last held the pointer.
func currentGroup() *group {
	if currentScreen == nil {
		return nil
	}
	return currentScreen.group
}

// focus gives w the input focus and makes it its group's focused window.
// A nil w focuses the desktop.
func focus(w *window) {
	if w != nil && w.group != nil {
		w.group.focused = w
	}
	if w != focusedWindow {
		focusedWindow = w
		defer hooks.Fire(hook.FocusChanged)
	}
	if g := currentGroup(); g != nil {
		g.paintBorders()
	}
	xWin := desktopXWin
	if w != nil {
		xWin = w.xWin
		if w.wmTakeFocus {
			sendClientMessage(xWin, atomWMTakeFocus)
			return
		}
	}
	check(xp.SetInputFocusChecked(xConn, xp.InputFocusParent, xWin, eventTime))
}

func doKill(g *group, _ interface{}) {
	w := g.focused
	if w == nil {
		return
	}
	if w.wmDeleteWindow {
		sendClientMessage(w.xWin, atomWMDeleteWindow)
	} else {
		check(xp.KillClientChecked(xConn, uint32(w.xWin)))
	}
}

func doNextLayout(g *group, _ interface{}) {
	g.layout = layout.Next(g.layout, len(layouts))
	slog.Debug("layout", "group", g.name, "layout", layouts[g.layout].Kind)
	g.arrange()
	drawBars()
}

// setFloating makes w float or tile. A window that starts floating keeps
// the place it had, clamped to its screen, or takes the middle half of the
// screen if it had none.
func setFloating(w *window, on bool) {
	if w.floating == on {
		return
	}
	w.floating = on
	if on && w.group != nil && w.group.screen != nil {
		area := w.group.screen.rect
		r := w.rect
		if r.X == offscreenXY || r.Width <= 1 || r.Height <= 1 {
			r = halfRect(area)
		}
		w.floatRect = relativeTo(placeFloating(r, area), area)
	}
	hooks.Fire(hook.FloatChanged)
}

func doFloat(g *group, _ interface{}) {
	w := g.focused
	if w == nil {
		return
	}
	setFloating(w, !w.floating)
	g.arrange()
}

// fullscreenAction applies a _NET_WM_STATE action (0 remove, 1 add, 2
// toggle) to the current state.
func fullscreenAction(action uint32, cur bool) bool {
	switch action {
	case 0:
		return false
	case 1:
		return true
	case 2:
		return !cur
	}
	return cur
}

func setFullscreen(w *window, on bool) {
	if w.fullscreen == on {
		return
	}
	w.fullscreen = on
	var b []byte
	if on {
		a := atomNetWMStateFullscreen
		b = []byte{byte(a >> 0), byte(a >> 8), byte(a >> 16), byte(a >> 24)}
	}
	check(xp.ChangePropertyChecked(xConn, xp.PropModeReplace, w.xWin,
		atomNetWMState, xp.AtomAtom, 32, uint32(len(b)/4), b))
	if g := w.group; g != nil {
		g.arrange()
	}
}

func doFullscreen(g *group, _ interface{}) {
	if w := g.focused; w != nil {
		setFullscreen(w, !w.fullscreen)
	}
}

// showOn makes s show g1. If g1 is on another screen, the two screens
// swap groups. It returns the screen that g1 came from, if any.
func showOn(s *screen, g1 *group) (from *screen) {
	g0 := s.group
	if g0 == g1 {
		return nil
	}
	from = g1.screen
	if from != nil {
		from.group, g0.screen = g0, from
	} else {
		g0.screen = nil
	}
	s.group, g1.screen = g1, s
	return from
}

func showGroup(s *screen, g1 *group) {
	g0 := s.group
	if g0 == g1 {
		return
	}
	showOn(s, g1)
	g0.arrange()
	g1.arrange()
	focus(g1.focused)
	hooks.Fire(hook.GroupChanged)
}

func doGroup(g *group, i1 interface{}) {
	i, ok := i1.(int)
	if !ok || i < 0 || i >= len(groups) || g.screen == nil {
		return
	}
	showGroup(g.screen, groups[i])
}

// moveToGroup moves w to the end of g1's ring and makes it g1's focused
// window. A floating window keeps its place relative to its screen.
func moveToGroup(w *window, g1 *group) {
	if w.group == g1 {
		return
	}
	w.remove()
	g1.insert(w, g1.dummyWindow.link[prev])
	g1.focused = w
}

// doToGroup moves the focused window to group i and shows that group.
func doToGroup(g *group, i1 interface{}) {
	i, ok := i1.(int)
	if !ok || i < 0 || i >= len(groups) || g.screen == nil {
		return
	}
	g1 := groups[i]
	if w := g.focused; w != nil && g1 != g {
		moveToGroup(w, g1)
		g.arrange()
	}
	showGroup(g.screen, g1)
	focus(g1.focused)
}

func doReload(_ *group, _ interface{}) {
	s, err := settings.LoadEnvironment(envCfg)
	if err != nil {
		slog.Error("could not reload settings", "err", err)
		return
	}
	applySettings(s)
	slog.Info("settings reloaded")
}

// applySettings makes s the effective settings. Key bindings, layouts and
// colors are compiled in and do not change. Neither do the groups once the
// window manager has started.
func applySettings(s settings.Settings) {
	cfg = s
	slog.SetDefault(logging.New(s.Log.Level, os.Stderr))
	floatRules = rules.FromLists(s.Float.Classes, s.Float.Titles)
	slog.Debug("float rules", "rules", floatRules.Len())
	clockTicker.Layout = s.Bar.ClockFormat
	for _, sc := range screens {
		sc.setBarHeight(uint16(s.Bar.Height))
		sc.group.arrange()
	}
	if len(screens) != 0 {
		updateIndicators()
		drawBars()
	}
}

// shuttingDown is set once doShutdown has asked every window to close.
var shuttingDown bool

// doShutdown asks every window to close, then exits once they have all gone
// or after closeTimeout, whichever is first.
func doShutdown(_ *group, _ interface{}) {
	if shuttingDown {
		return
	}
	shuttingDown = true
	slog.Info("shutting down")
	waiting := false
	for _, g := range groups {
		for w := g.dummyWindow.link[next]; w != &g.dummyWindow; w = w.link[next] {
			if w.wmDeleteWindow {
				waiting = true
				sendClientMessage(w.xWin, atomWMDeleteWindow)
			}
		}
	}
	if !waiting {
		os.Exit(0)
	}
	callLater(closeTimeout, func() { os.Exit(0) })
}

func doChangeVT(_ *group, n1 interface{}) {
	n, ok := n1.(int)
	if !ok {
		return
	}
	if _, err := vtSwitcher.Switch(n); err != nil {
		slog.Warn("could not switch virtual terminal", "vt", n, "err", err)
	}
}
