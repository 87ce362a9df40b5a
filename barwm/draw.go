package main

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

func setForeground(c uint32) {
	check(xp.ChangeGCChecked(xConn, desktopXGC, xp.GcForeground, []uint32{c}))
}

// drawText draws text on the desktop window with (x, y) as the baseline
// origin. Runes outside the Basic Multilingual Plane are drawn as '?'.
func drawText(x, y int16, text string) {
	drawTextOn(xp.Drawable(desktopXWin), x, y, text)
}

func drawTextOn(d xp.Drawable, x, y int16, text string) {
	chars := toChar2b(text)
	for len(chars) > 0 {
		n := len(chars)
		if n > 255 {
			n = 255
		}
		check(xp.ImageText16Checked(xConn, byte(n), d, desktopXGC, x, y, chars[:n]))
		chars = chars[n:]
		x += int16(n * fontWidth)
	}
}

func toChar2b(text string) []xp.Char2b {
	chars := make([]xp.Char2b, 0, len(text))
	for _, r := range text {
		if r > 0xffff {
			r = '?'
		}
		chars = append(chars, xp.Char2b{Byte1: byte(r >> 8), Byte2: byte(r)})
	}
	return chars
}

func handleExpose(e xp.ExposeEvent) {
	if openPopup != nil && e.Window == openPopup.xWin {
		if e.Count == 0 {
			drawPopup()
		}
		return
	}
	if e.Window != desktopXWin || e.Count != 0 {
		return
	}
	drawBars()
}
