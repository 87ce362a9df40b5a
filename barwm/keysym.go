package main

// These constants come from /usr/include/X11/keysymdef.h and
// /usr/include/X11/XF86keysym.h.

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
)

const (
	xkTab    = 0xff09
	xkReturn = 0xff0d
	xkF1     = 0xffbe

	xkAudioLowerVolume = 0x1008ff11
	xkAudioMute        = 0x1008ff12
	xkAudioRaiseVolume = 0x1008ff13
)

// modMask is the modifiers that tell bindings apart. Caps Lock and Num Lock
// are ignored.
const modMask = xp.ModMaskShift | xp.ModMaskControl | xp.ModMask1 | xp.ModMask4

// ignoredMods are grabbed alongside every binding's modifiers, so that
// bindings work with Caps Lock or Num Lock on.
var ignoredMods = []uint16{0, xp.ModMaskLock, xp.ModMask2, xp.ModMaskLock | xp.ModMask2}

func keysymString(keysym xp.Keysym) string {
	switch {
	case keysym == xkTab:
		return "Tab"
	case keysym == xkReturn:
		return "Return"
	case xkF1 <= keysym && keysym < xkF1+12:
		return fmt.Sprintf("F%d", keysym-xkF1+1)
	case keysym == xkAudioLowerVolume:
		return "XF86AudioLowerVolume"
	case keysym == xkAudioMute:
		return "XF86AudioMute"
	case keysym == xkAudioRaiseVolume:
		return "XF86AudioRaiseVolume"
	case ' ' < keysym && keysym < 0x7f:
		return string(rune(keysym))
	}
	return fmt.Sprintf("0x%x", uint32(keysym))
}

func modString(mods uint16) string {
	s := ""
	for _, m := range []struct {
		mask uint16
		name string
	}{
		{xp.ModMask4, "mod4"},
		{xp.ModMaskControl, "control"},
		{xp.ModMask1, "mod1"},
		{xp.ModMaskShift, "shift"},
	} {
		if mods&m.mask != 0 {
			s += m.name + "+"
		}
	}
	return s
}
