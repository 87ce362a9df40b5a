package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/barwm/internal/metrics"
	"github.com/nigeltao/barwm/internal/popup"
)

// popupWindow is the open popup overlay. At most one is open at a time.
type popupWindow struct {
	xWin    xp.Window
	overlay *popup.Overlay
	cancel  context.CancelFunc
	err     error
}

var (
	openPopup *popupWindow

	// metricsSource is what the popup graphs sample.
	metricsSource metrics.Source = metrics.System{}
)

func doPopup(g *group, _ interface{}) {
	if openPopup != nil {
		hidePopup()
		return
	}
	if g.screen != nil {
		showPopup(g.screen)
	}
}

func popupGrid() popup.Grid {
	return popup.Grid{
		Rows:          cfg.Popup.Rows,
		Cols:          cfg.Popup.Cols,
		HeightDivisor: cfg.Popup.HeightDivisor,
	}
}

func toPopupRect(r xp.Rectangle) popup.Rect {
	return popup.Rect{X: int(r.X), Y: int(r.Y), Width: int(r.Width), Height: int(r.Height)}
}

func showPopup(s *screen) {
	o := popup.New(popupGrid(), toPopupRect(s.full))
	r := o.Rect
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	xWin, err := xp.NewWindowId(xConn)
	if err != nil {
		slog.Warn("allocate popup window id", "err", err)
		return
	}
	if err := xp.CreateWindowChecked(
		xConn, desktopScreen.RootDepth, xWin, rootXWin,
		int16(r.X), int16(r.Y), uint16(r.Width), uint16(r.Height), 0,
		xp.WindowClassInputOutput,
		desktopScreen.RootVisual,
		xp.CwBackPixel|xp.CwOverrideRedirect|xp.CwEventMask,
		[]uint32{
			colorBarBackground,
			1,
			xp.EventMaskExposure,
		},
	).Check(); err != nil {
		slog.Warn("create popup window", "err", err)
		return
	}
	check(xp.MapWindowChecked(xConn, xWin))
	check(xp.ConfigureWindowChecked(xConn, xWin, xp.ConfigWindowStackMode,
		[]uint32{xp.StackModeAbove}))

	// Grab the pointer so that a click anywhere reaches us, and one outside
	// the overlay dismisses it.
	if g, err := xp.GrabPointer(xConn, false, rootXWin,
		xp.EventMaskButtonPress, xp.GrabModeAsync, xp.GrabModeAsync,
		xp.WindowNone, xp.CursorNone, xp.TimeCurrentTime).Reply(); err != nil {
		slog.Warn("grab pointer for popup", "err", err)
	} else if g.Status != xp.GrabStatusSuccess {
		slog.Warn("grab pointer for popup", "status", g.Status)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &popupWindow{
		xWin:    xWin,
		overlay: o,
		cancel:  cancel,
	}
	openPopup = p
	go samplePopup(ctx, p, cfg.Popup.Interval)
}

// samplePopup reads the system statistics every interval, off the main
// goroutine, and hands each reading to the main goroutine.
func samplePopup(ctx context.Context, p *popupWindow, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		snap := metrics.Take(metricsSource)
		now := time.Now()
		f := func() {
			if openPopup != p {
				return
			}
			if err := p.overlay.Sample(snap, now); err != nil && p.err == nil {
				slog.Warn("sample system metrics", "err", err)
				p.err = err
			}
			drawPopup()
		}
		select {
		case proactiveChan <- f:
		case <-ctx.Done():
			return
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func hidePopup() {
	p := openPopup
	if p == nil {
		return
	}
	openPopup = nil
	p.cancel()
	check(xp.UngrabPointerChecked(xConn, xp.TimeCurrentTime))
	check(xp.DestroyWindowChecked(xConn, p.xWin))
}

// handlePopupClick dismisses the popup on a click outside of it.
func handlePopupClick(e xp.ButtonPressEvent) {
	if openPopup == nil {
		return
	}
	if !openPopup.overlay.Rect.Contains(int(e.RootX), int(e.RootY)) {
		hidePopup()
	}
}

func drawPopup() {
	p := openPopup
	if p == nil {
		return
	}
	o := p.overlay
	d := xp.Drawable(p.xWin)
	check(xp.ClearAreaChecked(xConn, false, p.xWin, 0, 0, 0, 0))
	for _, g := range o.Graphs {
		// Cells are in root co-ordinates; the popup window's origin is the
		// overlay's top-left.
		c := o.CellOf(g)
		c.X -= o.Rect.X
		c.Y -= o.Rect.Y
		inner := popup.Rect{X: c.X + 2, Y: c.Y + 2, Width: c.Width - 4, Height: c.Height - 4}

		setForeground(colorGraphBorder)
		check(xp.PolyRectangleChecked(xConn, d, desktopXGC, []xp.Rectangle{{
			X:      int16(c.X + 1),
			Y:      int16(c.Y + 1),
			Width:  uint16(max(c.Width-2, 0)),
			Height: uint16(max(c.Height-2, 0)),
		}}))

		setForeground(colorGraph)
		if pts := g.History.Points(inner, g.Max); len(pts) > 1 {
			xpts := make([]xp.Point, len(pts))
			for i, pt := range pts {
				xpts[i] = xp.Point{X: int16(pt.X), Y: int16(pt.Y)}
			}
			check(xp.PolyLineChecked(xConn, xp.CoordModeOrigin, d, desktopXGC, xpts))
		}
		drawTextOn(d, int16(inner.X+fontWidth), int16(inner.Y+fontHeight), graphLabel(g))
	}
}

func graphLabel(g *popup.Graph) string {
	vs := g.History.Values()
	if len(vs) == 0 {
		return g.Kind.String()
	}
	v := vs[len(vs)-1]
	if g.Kind == popup.Network {
		return fmt.Sprintf("%s %s/s", g.Kind, humanBytes(v))
	}
	return fmt.Sprintf("%s %.0f%%", g.Kind, v)
}

func humanBytes(v float64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%.0fB", v)
	}
	suffixes := "KMGTPE"
	i := 0
	for v /= unit; v >= unit && i < len(suffixes)-1; i++ {
		v /= unit
	}
	return fmt.Sprintf("%.1f%ciB", v, suffixes[i])
}
