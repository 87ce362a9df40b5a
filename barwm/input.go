package main

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

func handleButtonPress(e xp.ButtonPressEvent) {
	if openPopup != nil {
		handlePopupClick(e)
		return
	}
	s := screenContaining(e.RootX, e.RootY)
	setCurrentScreen(s)
	if e.State&modSuper != 0 {
		if op := mouseBindings[e.Detail]; op != mouseNone && e.Child != xp.WindowNone {
			if w := windowFor(e.Child); w != nil {
				startDrag(op, w, e.Detail, e.RootX, e.RootY)
			}
		}
		return
	}
	if contains(s.bar, e.RootX, e.RootY) && e.RootY < s.rect.Y {
		handleBarClick(s, e.RootX)
	}
}

func handleButtonRelease(e xp.ButtonReleaseEvent) {
	endDrag(e.Detail)
}

// handleEnterNotify gives the focus to the window under the pointer.
func handleEnterNotify(e xp.EnterNotifyEvent) {
	if activeDrag != nil || e.Mode != xp.NotifyModeNormal {
		return
	}
	w := windowFor(e.Event)
	if w == nil || w.group == nil || w.group.screen == nil {
		return
	}
	setCurrentScreen(w.group.screen)
	if w == focusedWindow {
		return
	}
	focus(w)
	if w.floating {
		check(xp.ConfigureWindowChecked(xConn, w.xWin, xp.ConfigWindowStackMode,
			[]uint32{xp.StackModeAbove}))
	}
}

func handleKeyPress(e xp.KeyPressEvent) {
	kc := keyCombo{e.State & modMask, keysyms[e.Detail][0]}
	b := keyBindings[kc]
	if b.do == nil {
		return
	}
	s := screenContaining(e.RootX, e.RootY)
	setCurrentScreen(s)
	b.do(s.group, b.arg)
}

func handleMotionNotify(e xp.MotionNotifyEvent) {
	if activeDrag != nil {
		updateDrag(e.RootX, e.RootY)
		return
	}
	setCurrentScreen(screenContaining(e.RootX, e.RootY))
}
