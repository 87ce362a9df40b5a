package main

import (
	"log/slog"

	xp "github.com/BurntSushi/xgb/xproto"
)

// drag is a Super-button drag in progress. Only one can be.
type drag struct {
	op     mouseOp
	w      *window
	button xp.Button
	// rootX and rootY are where the pointer was pressed, and start is
	// w's floatRect at that time.
	rootX, rootY int16
	start        xp.Rectangle
}

var activeDrag *drag

// dragged is start after the pointer moved by (dx, dy) during op. Resizing
// moves the bottom-right corner and never shrinks below one pixel.
func dragged(op mouseOp, start xp.Rectangle, dx, dy int) xp.Rectangle {
	r := start
	switch op {
	case mouseMove:
		r.X = int16(int(start.X) + dx)
		r.Y = int16(int(start.Y) + dy)
	case mouseResize:
		r.Width = uint16(max(int(start.Width)+dx, 1))
		r.Height = uint16(max(int(start.Height)+dy, 1))
	}
	return r
}

// startDrag begins op on w, which was Super-clicked at (rootX, rootY). A
// tiled window that is moved or resized starts floating where it is.
func startDrag(op mouseOp, w *window, button xp.Button, rootX, rootY int16) {
	g := w.group
	if g == nil || g.screen == nil || w.fullscreen {
		return
	}
	focus(w)
	if op == mouseRaise {
		check(xp.ConfigureWindowChecked(xConn, w.xWin, xp.ConfigWindowStackMode,
			[]uint32{xp.StackModeAbove}))
		return
	}
	if !w.floating {
		setFloating(w, true)
		g.arrange()
	}
	activeDrag = &drag{
		op:     op,
		w:      w,
		button: button,
		rootX:  rootX,
		rootY:  rootY,
		start:  w.floatRect,
	}
	slog.Debug("drag", "op", op, "window", w.xWin)
}

func updateDrag(rootX, rootY int16) {
	d := activeDrag
	if d == nil || d.w.group == nil {
		activeDrag = nil
		return
	}
	d.w.floatRect = dragged(d.op, d.start, int(rootX-d.rootX), int(rootY-d.rootY))
	if s := d.w.group.screen; s != nil {
		d.w.place(placement{rect: absoluteFrom(d.w.floatRect, s.rect), border: floatBorder})
	}
}

func endDrag(button xp.Button) {
	if d := activeDrag; d != nil && d.button == button {
		activeDrag = nil
	}
}
