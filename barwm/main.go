package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/samber/lo"

	"github.com/nigeltao/barwm/internal/autostart"
	"github.com/nigeltao/barwm/internal/hook"
	"github.com/nigeltao/barwm/internal/rules"
	"github.com/nigeltao/barwm/internal/settings"
	"github.com/nigeltao/barwm/internal/vt"
)

var (
	xConn    *xgb.Conn
	rootXWin xp.Window

	eventTime xp.Timestamp

	// proactiveChan carries X operations that happen of the program's
	// own accord, such as clock ticks. These are sent to the main goroutine
	// from other goroutines. In comparison, examples of reactive operations
	// are responding to window creation and key presses.
	proactiveChan = make(chan func())

	cfg        settings.Settings
	envCfg     settings.Env
	floatRules = rules.New()
	hooks      hook.Registry

	spawner    autostart.Spawner = autostart.ExecSpawner{}
	vtSwitcher                   = &vt.Switcher{Allowed: vt.CanSwitch, Spawner: spawner}

	// focusedWindow is the window last given the input focus, if any.
	focusedWindow *window
	// currentScreen is the screen that last held the pointer.
	currentScreen *screen
)

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}

type checker interface {
	Check() error
}

var checkers []checker

func check(c checker) {
	checkers = append(checkers, c)
}

func sendClientMessage(xWin xp.Window, atom xp.Atom) {
	check(xp.SendEventChecked(xConn, false, xWin, xp.EventMaskNoEvent,
		string(xp.ClientMessageEvent{
			Format: 32,
			Window: xWin,
			Type:   atomWMProtocols,
			Data: xp.ClientMessageDataUnionData32New([]uint32{
				uint32(atom),
				uint32(eventTime),
				0,
				0,
				0,
			}),
		}.Bytes()),
	))
}

func handleConfigureRequest(e xp.ConfigureRequestEvent) {
	if w := windowFor(e.Window); w != nil {
		// Floating windows may move and resize themselves, within their
		// screen's window area. Everything else stays where it was put.
		if g := w.group; w.floating && !w.fullscreen && g != nil && g.screen != nil {
			area := g.screen.rect
			r := absoluteFrom(w.floatRect, area)
			if e.ValueMask&xp.ConfigWindowX != 0 {
				r.X = e.X
			}
			if e.ValueMask&xp.ConfigWindowY != 0 {
				r.Y = e.Y
			}
			if e.ValueMask&xp.ConfigWindowWidth != 0 {
				r.Width = e.Width
			}
			if e.ValueMask&xp.ConfigWindowHeight != 0 {
				r.Height = e.Height
			}
			w.floatRect = relativeTo(placeFloating(r, area), area)
			w.place(placement{rect: absoluteFrom(w.floatRect, area), border: floatBorder})
		}
		cne := xp.ConfigureNotifyEvent{
			Event:       w.xWin,
			Window:      w.xWin,
			X:           w.rect.X,
			Y:           w.rect.Y,
			Width:       w.rect.Width,
			Height:      w.rect.Height,
			BorderWidth: w.border,
		}
		check(xp.SendEventChecked(xConn, false, w.xWin,
			xp.EventMaskStructureNotify, string(cne.Bytes())))
		return
	}
	mask, values := configureValues(e)
	check(xp.ConfigureWindowChecked(xConn, e.Window, mask, values))
}

// configureValues is the ConfigureWindow mask and value list that grants an
// unmanaged window's request as is.
func configureValues(e xp.ConfigureRequestEvent) (mask uint16, values []uint32) {
	for _, f := range [...]struct {
		bit   uint16
		value uint32
	}{
		{xp.ConfigWindowX, uint32(e.X)},
		{xp.ConfigWindowY, uint32(e.Y)},
		{xp.ConfigWindowWidth, uint32(e.Width)},
		{xp.ConfigWindowHeight, uint32(e.Height)},
		{xp.ConfigWindowBorderWidth, uint32(e.BorderWidth)},
		{xp.ConfigWindowSibling, uint32(e.Sibling)},
		{xp.ConfigWindowStackMode, uint32(e.StackMode)},
	} {
		if e.ValueMask&f.bit != 0 {
			mask |= f.bit
			values = append(values, f.value)
		}
	}
	return mask, values
}

func manage(xWin xp.Window, mapRequest bool) {
	if w := windowFor(xWin); w != nil {
		if mapRequest {
			check(xp.MapWindowChecked(xConn, xWin))
		}
		return
	}

	protocols := atomList(xWin, atomWMProtocols)
	transientFor := (*window)(nil)
	if prop, err := xp.GetProperty(xConn, false, xWin, atomWMTransientFor,
		xp.GetPropertyTypeAny, 0, 64).Reply(); err != nil {
		slog.Warn("get WM_TRANSIENT_FOR", "window", xWin, "err", err)
	} else if v := prop.Value; len(v) == 4 {
		transientFor = windowFor(xp.Window(u32(v)))
	}

	// New windows go to the transient parent's group, or else to the
	// group on the pointer's screen.
	g := currentGroup()
	if transientFor != nil && transientFor.group != nil {
		g = transientFor.group
	} else if p, err := xp.QueryPointer(xConn, rootXWin).Reply(); err != nil {
		slog.Warn("query pointer", "err", err)
	} else {
		g = screenContaining(p.RootX, p.RootY).group
	}

	w := &window{
		transientFor:   transientFor,
		xWin:           xWin,
		rect:           offscreen.rect,
		wmDeleteWindow: lo.Contains(protocols, atomWMDeleteWindow),
		wmTakeFocus:    lo.Contains(protocols, atomWMTakeFocus),
	}
	instance, class := rules.ParseWMClass(w.property(atomWMClass))
	w.refreshName()
	title := w.name
	if title == "?" {
		title = ""
	}
	floating := floatRules.ShouldFloat(rules.Window{
		Class:     class,
		Instance:  instance,
		Title:     title,
		Transient: transientFor != nil,
		Dialog: lo.Some(atomList(xWin, atomNetWMWindowType), []xp.Atom{
			atomNetWMWindowTypeDialog,
			atomNetWMWindowTypeUtility,
			atomNetWMWindowTypeSplash,
		}),
	})
	w.fullscreen = w.hasAtom(atomNetWMState, atomNetWMStateFullscreen)

	previous := g.focused
	if transientFor != nil {
		previous = transientFor
	}
	g.insert(w, previous)
	if floating {
		area := screens[0].rect
		if g.screen != nil {
			area = g.screen.rect
		}
		w.floating = true
		w.floatRect = relativeTo(placeFloating(w.geometry(), area), area)
	}

	check(xp.ChangeWindowAttributesChecked(xConn, xWin, xp.CwEventMask,
		[]uint32{xp.EventMaskEnterWindow | xp.EventMaskStructureNotify | xp.EventMaskPropertyChange},
	))
	slog.Debug("manage", "window", xWin, "class", class, "group", g.name, "floating", w.floating)

	g.focused = w
	g.arrange()
	if mapRequest {
		check(xp.MapWindowChecked(xConn, xWin))
	}
	if g.screen != nil && g == currentGroup() {
		focus(w)
	}
	hooks.Fire(hook.WindowManaged)
}

func unmanage(xWin xp.Window) {
	w := windowFor(xWin)
	if w == nil {
		return
	}
	for {
		w1 := findWindow(func(w1 *window) bool { return w1.transientFor == w })
		if w1 == nil {
			break
		}
		w1.transientFor = nil
	}
	if activeDrag != nil && activeDrag.w == w {
		activeDrag = nil
	}
	g := w.group
	// A closing transient hands the focus back to its parent.
	if t := w.transientFor; t != nil && t.group == g && g.focused == w {
		g.focused = t
	}
	w.remove()
	if focusedWindow == w {
		focusedWindow = nil
	}
	*w = window{}
	if shuttingDown && findWindow(func(*window) bool { return true }) == nil {
		os.Exit(0)
	}
	g.arrange()
	if g.screen != nil && g == currentGroup() {
		focus(g.focused)
	}
	hooks.Fire(hook.WindowKilled)
}

func handlePropertyNotify(e xp.PropertyNotifyEvent) {
	if e.Atom != atomWMName {
		return
	}
	w := windowFor(e.Window)
	if w == nil {
		return
	}
	w.refreshName()
	if w == focusedWindow {
		updateIndicators()
		drawBars()
	}
}

// handleClientMessage handles clients asking to enter or leave fullscreen.
func handleClientMessage(e xp.ClientMessageEvent) {
	if e.Type != atomNetWMState || e.Format != 32 {
		return
	}
	w := windowFor(e.Window)
	if w == nil {
		return
	}
	data := e.Data.Data32
	if len(data) < 3 {
		return
	}
	if xp.Atom(data[1]) != atomNetWMStateFullscreen && xp.Atom(data[2]) != atomNetWMStateFullscreen {
		return
	}
	setFullscreen(w, fullscreenAction(data[0], w.fullscreen))
}

type xEventOrError struct {
	event xgb.Event
	error xgb.Error
}

func main() {
	dumpConfig := flag.Bool("dump-config", false, "print the effective settings as TOML and exit")
	flag.Parse()

	var err error
	envCfg, err = settings.CurrentEnv()
	if err != nil {
		fatal("could not read the environment", "err", err)
	}
	s, err := settings.LoadEnvironment(envCfg)
	if err != nil {
		fatal("could not load settings", "err", err)
	}
	applySettings(s)
	if *dumpConfig {
		if err := settings.Dump(os.Stdout, s); err != nil {
			fatal("could not dump settings", "err", err)
		}
		return
	}
	groups = newGroups(cfg.Groups)
	bindGroupKeys(len(groups))
	initHooks()

	xConn, err = xgb.NewConnDisplay(envCfg.Display)
	if err != nil {
		fatal("could not connect to the X server", "display", envCfg.Display, "err", err)
	}
	if err = xinerama.Init(xConn); err != nil {
		fatal("could not initialize xinerama", "err", err)
	}
	xSetup := xp.Setup(xConn)
	if len(xSetup.Roots) != 1 {
		fatal("X setup has unsupported number of roots", "roots", len(xSetup.Roots))
	}
	rootXWin = xSetup.Roots[0].Root

	becomeTheWM()
	initAtoms()
	initDesktop(&xSetup.Roots[0])
	announceWM(cfg.WMName)
	initKeyboardMapping()
	grabButtons()
	initScreens()

	// Manage any existing windows.
	tree, err := xp.QueryTree(xConn, rootXWin).Reply()
	if err != nil {
		fatal("could not query the window tree", "err", err)
	}
	for _, c := range tree.Children {
		if c == desktopXWin {
			continue
		}
		attrs, err := xp.GetWindowAttributes(xConn, c).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState == xp.MapStateUnmapped {
			continue
		}
		manage(c, false)
	}
	focus(currentGroup().focused)
	updateIndicators()
	hooks.Fire(hook.Startup)
	slog.Info("barwm started", "screens", len(screens), "display", envCfg.Display)

	// Process X events.
	eeChan := make(chan xEventOrError)
	go func() {
		for {
			e, err := xConn.WaitForEvent()
			eeChan <- xEventOrError{e, err}
		}
	}()
	for {
		flushChecks()
		select {
		case f := <-proactiveChan:
			f()
		case ee := <-eeChan:
			if ee.error != nil {
				slog.Warn("X error", "err", ee.error)
				continue
			}
			handleEvent(ee.event)
		}
	}
}

// flushChecks waits for the replies to the checked requests made since the
// last call, logging any errors.
func flushChecks() {
	for i, c := range checkers {
		if err := c.Check(); err != nil {
			slog.Warn("X request failed", "err", err)
		}
		checkers[i] = nil
	}
	checkers = checkers[:0]
}

func handleEvent(ev xgb.Event) {
	switch e := ev.(type) {
	case xp.ButtonPressEvent:
		eventTime = e.Time
		handleButtonPress(e)
	case xp.ButtonReleaseEvent:
		eventTime = e.Time
		handleButtonRelease(e)
	case xp.ClientMessageEvent:
		handleClientMessage(e)
	case xp.ConfigureRequestEvent:
		handleConfigureRequest(e)
	case xp.EnterNotifyEvent:
		eventTime = e.Time
		handleEnterNotify(e)
	case xp.ExposeEvent:
		handleExpose(e)
	case xp.KeyPressEvent:
		eventTime = e.Time
		handleKeyPress(e)
	case xp.KeyReleaseEvent:
		eventTime = e.Time
	case xp.MapRequestEvent:
		manage(e.Window, true)
	case xp.MotionNotifyEvent:
		eventTime = e.Time
		handleMotionNotify(e)
	case xp.PropertyNotifyEvent:
		eventTime = e.Time
		handlePropertyNotify(e)
	case xp.UnmapNotifyEvent:
		unmanage(e.Window)
	case xp.ConfigureNotifyEvent, xp.DestroyNotifyEvent, xp.MapNotifyEvent, xp.MappingNotifyEvent:
		// No-op.
	default:
		slog.Debug("unhandled event", "event", ev)
	}
}
