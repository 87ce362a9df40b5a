package main

import (
	"time"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/barwm/internal/layout"
	"github.com/nigeltao/barwm/internal/vt"
)

const (
	// modSuper is the modifier for barwm's key and mouse bindings: the
	// Super (Windows) key.
	modSuper = xp.ModMask4

	// colorXxx are barwm's colors. We assume 24-bit RGB.
	colorBorderFocused   = 0xd75f5f
	colorBorderUnfocused = 0x282828
	colorBarBackground   = 0x282828
	colorBarText         = 0xebdbb2
	colorBarDim          = 0x928374
	colorBarLine         = 0x504945
	colorGraph           = 0x7fff7f
	colorGraphBorder     = 0x1f3f1f

	// fontXxx are the font metrics for the 6x13 "fixed" font. fontHeight1
	// is the vertical offset for the first line of text.
	fontHeight  = 16
	fontHeight1 = 9
	fontWidth   = 6

	// fontName is a fixed-width font with ISO 10646 glyphs, so that the bar
	// indicators can be drawn. If the X server lacks it, the default font
	// is used instead.
	fontName = "-misc-fixed-medium-r-semicondensed--13-120-75-75-c-60-iso10646-1"

	// floatBorder is the border width of floating windows.
	floatBorder = 1

	// closeTimeout is how long a window gets to act on WM_DELETE_WINDOW
	// during shutdown.
	closeTimeout = 5 * time.Second
)

// layouts is the cycle that Super and Tab steps through. Every group starts
// with the first.
var layouts = []layout.Layout{
	{Kind: layout.Max},
	{Kind: layout.MonadWide, Border: 1, Margin: 6},
	{Kind: layout.MonadTall, Border: 3, Margin: 6},
}

// program names a command from the settings file's [programs] table.
type program int

const (
	progTerminal program = iota
	progPower
	progLauncher
	progLock
	progRocker
	progRun
)

// keyCombo is a key binding's trigger: the modifiers, masked by modMask,
// and the keysym in the key's unshifted column. Super, Shift and '1' is
// {modSuper | xp.ModMaskShift, '1'}, not '!'.
type keyCombo struct {
	mods   uint16
	keysym xp.Keysym
}

type binding struct {
	do  func(*group, interface{})
	arg interface{}
}

// keyBindings maps key combinations to actions. Group bindings are added by
// bindGroupKeys once the groups are known.
var keyBindings = map[keyCombo]binding{
	{modSuper, 'g'}:      {doPopup, nil},
	{modSuper, 'p'}:      {doProgram, progPower},
	{modSuper, 'a'}:      {doProgram, progLauncher},
	{modSuper, 'l'}:      {doProgram, progLock},
	{modSuper, 'n'}:      {doProgram, progRocker},
	{modSuper, xkReturn}: {doProgram, progTerminal},
	{modSuper, 'r'}:      {doProgram, progRun},

	{modSuper, xkTab}: {doNextLayout, nil},
	{modSuper, 'w'}:   {doKill, nil},
	{modSuper, 'f'}:   {doFullscreen, nil},
	{modSuper, 't'}:   {doFloat, nil},

	{modSuper | xp.ModMaskControl, 'r'}: {doReload, nil},
	{modSuper | xp.ModMaskControl, 'q'}: {doShutdown, nil},

	{0, xkAudioRaiseVolume}: {doSpawn, []string{"amixer", "-q", "set", "Master", "5%+"}},
	{0, xkAudioLowerVolume}: {doSpawn, []string{"amixer", "-q", "set", "Master", "5%-"}},
	{0, xkAudioMute}:        {doSpawn, []string{"amixer", "-q", "set", "Master", "toggle"}},
}

func init() {
	// Control, Alt and F1 to F7 switch virtual terminals.
	for n := 1; n <= vt.Count; n++ {
		keyBindings[keyCombo{xp.ModMaskControl | xp.ModMask1, xp.Keysym(xkF1 + n - 1)}] =
			binding{doChangeVT, n}
	}
}

// bindGroupKeys binds Super and a digit to show the group at that position,
// and Super, Shift and a digit to move the current window there too.
func bindGroupKeys(n int) {
	for i := 0; i < n && i < 9; i++ {
		digit := xp.Keysym('1' + i)
		keyBindings[keyCombo{modSuper, digit}] = binding{doGroup, i}
		keyBindings[keyCombo{modSuper | xp.ModMaskShift, digit}] = binding{doToGroup, i}
	}
}

// mouseOp is what a Super-click on a window does.
type mouseOp int

const (
	mouseNone mouseOp = iota
	mouseMove
	mouseResize
	mouseRaise
)

// mouseBindings maps buttons, pressed with modSuper, to operations.
var mouseBindings = map[xp.Button]mouseOp{
	1: mouseMove,
	2: mouseRaise,
	3: mouseResize,
}
