package main

import (
	"log/slog"

	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
)

var (
	atomWMClass                xp.Atom
	atomWMDeleteWindow         xp.Atom
	atomWMName                 xp.Atom
	atomWMProtocols            xp.Atom
	atomWMTakeFocus            xp.Atom
	atomWMTransientFor         xp.Atom
	atomNetWMWindowType        xp.Atom
	atomNetWMWindowTypeDialog  xp.Atom
	atomNetWMWindowTypeSplash  xp.Atom
	atomNetWMWindowTypeUtility xp.Atom
	atomNetWMState             xp.Atom
	atomNetWMStateFullscreen   xp.Atom
	atomNetWMName              xp.Atom
	atomNetSupported           xp.Atom
	atomNetSupportingWMCheck   xp.Atom
	atomUTF8String             xp.Atom

	desktopScreen *xp.ScreenInfo
	desktopXWin   xp.Window
	desktopXGC    xp.Gcontext
	desktopWidth  uint16
	desktopHeight uint16

	keysyms [256][2]xp.Keysym
)

func becomeTheWM() {
	if err := xp.ChangeWindowAttributesChecked(xConn, rootXWin, xp.CwEventMask, []uint32{
		xp.EventMaskButtonPress |
			xp.EventMaskButtonRelease |
			xp.EventMaskPointerMotion |
			xp.EventMaskSubstructureRedirect,
	}).Check(); err != nil {
		if _, ok := err.(xp.AccessError); ok {
			fatal("could not become the window manager. Is another window manager running?")
		}
		fatal("select root events", "err", err)
	}
}

func initAtoms() {
	atomWMClass = internAtom("WM_CLASS")
	atomWMDeleteWindow = internAtom("WM_DELETE_WINDOW")
	atomWMName = internAtom("WM_NAME")
	atomWMProtocols = internAtom("WM_PROTOCOLS")
	atomWMTakeFocus = internAtom("WM_TAKE_FOCUS")
	atomWMTransientFor = internAtom("WM_TRANSIENT_FOR")
	atomNetWMWindowType = internAtom("_NET_WM_WINDOW_TYPE")
	atomNetWMWindowTypeDialog = internAtom("_NET_WM_WINDOW_TYPE_DIALOG")
	atomNetWMWindowTypeSplash = internAtom("_NET_WM_WINDOW_TYPE_SPLASH")
	atomNetWMWindowTypeUtility = internAtom("_NET_WM_WINDOW_TYPE_UTILITY")
	atomNetWMState = internAtom("_NET_WM_STATE")
	atomNetWMStateFullscreen = internAtom("_NET_WM_STATE_FULLSCREEN")
	atomNetWMName = internAtom("_NET_WM_NAME")
	atomNetSupported = internAtom("_NET_SUPPORTED")
	atomNetSupportingWMCheck = internAtom("_NET_SUPPORTING_WM_CHECK")
	atomUTF8String = internAtom("UTF8_STRING")
}

func internAtom(name string) xp.Atom {
	r, err := xp.InternAtom(xConn, false, uint16(len(name)), name).Reply()
	if err != nil {
		fatal("intern atom", "name", name, "err", err)
	}
	return r.Atom
}

// mustCheck exits if the checked request c failed.
func mustCheck(what string, c checker) {
	if err := c.Check(); err != nil {
		fatal(what, "err", err)
	}
}

// initDesktop creates the desktop window: an override-redirect window below
// every other, covering the root, that the bars are drawn on and that has
// the input focus when no client does.
func initDesktop(xScreen *xp.ScreenInfo) {
	xFont, err := xp.NewFontId(xConn)
	if err != nil {
		fatal("allocate font id", "err", err)
	}
	xCursor, err := xp.NewCursorId(xConn)
	if err != nil {
		fatal("allocate cursor id", "err", err)
	}
	desktopXWin, err = xp.NewWindowId(xConn)
	if err != nil {
		fatal("allocate window id", "err", err)
	}
	desktopXGC, err = xp.NewGcontextId(xConn)
	if err != nil {
		fatal("allocate gcontext id", "err", err)
	}
	desktopScreen = xScreen
	desktopWidth = xScreen.WidthInPixels
	desktopHeight = xScreen.HeightInPixels

	const xcLeftPtr = 68 // XC_left_ptr from cursorfont.h.
	mustCheck("open cursor font", xp.OpenFontChecked(xConn, xFont, uint16(len("cursor")), "cursor"))
	mustCheck("create cursor", xp.CreateGlyphCursorChecked(
		xConn, xCursor, xFont, xFont, xcLeftPtr, xcLeftPtr+1,
		0xffff, 0xffff, 0xffff, 0, 0, 0))
	mustCheck("close cursor font", xp.CloseFontChecked(xConn, xFont))

	mustCheck("create desktop window", xp.CreateWindowChecked(
		xConn, xScreen.RootDepth, desktopXWin, xScreen.Root,
		0, 0, desktopWidth, desktopHeight, 0,
		xp.WindowClassInputOutput,
		xScreen.RootVisual,
		xp.CwBackPixel|xp.CwOverrideRedirect|xp.CwEventMask|xp.CwCursor,
		[]uint32{
			colorBarBackground,
			1,
			xp.EventMaskExposure,
			uint32(xCursor),
		},
	))
	mustCheck("lower desktop window", xp.ConfigureWindowChecked(
		xConn, desktopXWin, xp.ConfigWindowStackMode, []uint32{xp.StackModeBelow}))
	mustCheck("create gcontext", xp.CreateGCChecked(
		xConn, desktopXGC, xp.Drawable(xScreen.Root),
		xp.GcForeground|xp.GcBackground,
		[]uint32{colorBarText, colorBarBackground},
	))
	initFont()
	mustCheck("map desktop window", xp.MapWindowChecked(xConn, desktopXWin))
}

// initFont loads fontName into the desktop's graphics context. Without it,
// text is drawn in the server's default font, which may lack the bar's
// glyphs.
func initFont() {
	xFont, err := xp.NewFontId(xConn)
	if err != nil {
		slog.Warn("allocate font id", "err", err)
		return
	}
	if err := xp.OpenFontChecked(xConn, xFont, uint16(len(fontName)), fontName).Check(); err != nil {
		slog.Warn("open font; using the default", "font", fontName, "err", err)
		return
	}
	check(xp.ChangeGCChecked(xConn, desktopXGC, xp.GcFont, []uint32{uint32(xFont)}))
}

// announceWM tells clients which window manager this is, using the desktop
// window as the _NET_SUPPORTING_WM_CHECK window. Some Java toolkits only
// draw correctly for a window manager they know the name of.
func announceWM(name string) {
	w := []byte{
		byte(desktopXWin >> 0),
		byte(desktopXWin >> 8),
		byte(desktopXWin >> 16),
		byte(desktopXWin >> 24),
	}
	for _, xWin := range [...]xp.Window{rootXWin, desktopXWin} {
		check(xp.ChangePropertyChecked(xConn, xp.PropModeReplace, xWin,
			atomNetSupportingWMCheck, xp.AtomWindow, 32, 1, w))
	}
	check(xp.ChangePropertyChecked(xConn, xp.PropModeReplace, desktopXWin,
		atomNetWMName, atomUTF8String, 8, uint32(len(name)), []byte(name)))

	supported := []xp.Atom{atomNetWMState, atomNetWMStateFullscreen, atomNetWMName, atomNetSupportingWMCheck}
	b := make([]byte, 0, 4*len(supported))
	for _, a := range supported {
		b = append(b, byte(a>>0), byte(a>>8), byte(a>>16), byte(a>>24))
	}
	check(xp.ChangePropertyChecked(xConn, xp.PropModeReplace, rootXWin,
		atomNetSupported, xp.AtomAtom, 32, uint32(len(supported)), b))
}

func initKeyboardMapping() {
	const (
		keyLo = 8
		keyHi = 255
	)
	km, err := xp.GetKeyboardMapping(xConn, keyLo, keyHi-keyLo+1).Reply()
	if err != nil {
		fatal("get keyboard mapping", "err", err)
	}
	n := int(km.KeysymsPerKeycode)
	if n < 2 {
		fatal("too few keysyms per keycode", "n", n)
	}
	for i := keyLo; i <= keyHi; i++ {
		keysyms[i][0] = km.Keysyms[(i-keyLo)*n+0]
		keysyms[i][1] = km.Keysyms[(i-keyLo)*n+1]
	}
	grabKeys()
}

// keycodesFor returns every keycode whose unshifted keysym is k.
func keycodesFor(k xp.Keysym) (keycodes []xp.Keycode) {
	for i, ks := range keysyms {
		if ks[0] == k {
			keycodes = append(keycodes, xp.Keycode(i))
		}
	}
	return keycodes
}

// grabKeys grabs every bound key combination, under every combination of
// the lock modifiers that handleKeyPress ignores.
func grabKeys() {
	check(xp.UngrabKeyChecked(xConn, xp.GrabAny, rootXWin, xp.ModMaskAny))
	for kc := range keyBindings {
		keycodes := keycodesFor(kc.keysym)
		if len(keycodes) == 0 {
			slog.Debug("no keycode for key", "key", modString(kc.mods)+keysymString(kc.keysym))
			continue
		}
		for _, keycode := range keycodes {
			for _, ignored := range ignoredMods {
				check(xp.GrabKeyChecked(xConn, true, rootXWin, kc.mods|ignored, keycode,
					xp.GrabModeAsync, xp.GrabModeAsync))
			}
		}
	}
}

// grabButtons grabs the mouse buttons that move, resize and raise floating
// windows when pressed with the mod key.
func grabButtons() {
	for button := range mouseBindings {
		for _, ignored := range ignoredMods {
			check(xp.GrabButtonChecked(xConn, false, rootXWin,
				xp.EventMaskButtonPress|xp.EventMaskButtonRelease|xp.EventMaskPointerMotion,
				xp.GrabModeAsync, xp.GrabModeAsync, xp.WindowNone, xp.CursorNone,
				byte(button), modSuper|ignored))
		}
	}
}

func initScreens() {
	xine, err := xinerama.QueryScreens(xConn).Reply()
	if err != nil {
		fatal("query xinerama screens", "err", err)
	}
	if len(xine.ScreenInfo) > 0 {
		screens = make([]*screen, len(xine.ScreenInfo))
		for i, si := range xine.ScreenInfo {
			screens[i] = &screen{
				full: xp.Rectangle{
					X:      si.XOrg,
					Y:      si.YOrg,
					Width:  si.Width,
					Height: si.Height,
				},
			}
		}
	} else {
		screens = []*screen{{
			full: xp.Rectangle{
				X:      0,
				Y:      0,
				Width:  desktopWidth,
				Height: desktopHeight,
			},
		}}
	}
	if len(screens) > len(groups) {
		slog.Warn("more screens than groups; ignoring the extra screens",
			"screens", len(screens), "groups", len(groups))
		screens = screens[:len(groups)]
	}
	assignGroups(screens, groups)
	for _, s := range screens {
		s.setBarHeight(uint16(cfg.Bar.Height))
	}
	currentScreen = screens[0]
}

// assignGroups shows the first groups on the screens, one each. There must
// be at least as many groups as screens.
func assignGroups(ss []*screen, gs []*group) {
	for i, s := range ss {
		s.group, gs[i].screen = gs[i], s
	}
}
