package main

import (
	"log/slog"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/samber/lo"

	"github.com/nigeltao/barwm/internal/bar"
	"github.com/nigeltao/barwm/internal/layout"
)

type traversal int

const (
	next traversal = iota
	prev
)

// offscreenXY is the most negative X/Y co-ordinate. Windows of groups that
// are not on any screen are moved there instead of being unmapped, so that
// every UnmapNotify means the client withdrew its window.
const offscreenXY = -1 << 15

func contains(r xp.Rectangle, x, y int16) bool {
	return r.X <= x && int(x) < int(r.X)+int(r.Width) &&
		r.Y <= y && int(y) < int(r.Y)+int(r.Height)
}

func screenContaining(x, y int16) *screen {
	for _, s := range screens {
		if contains(s.full, x, y) {
			return s
		}
	}
	return screens[0]
}

// placeFloating returns where a floating window that asked for r goes within
// area: clamped to area's size and, unless it already lies within area,
// centered.
func placeFloating(r, area xp.Rectangle) xp.Rectangle {
	if r.Width == 0 || r.Width > area.Width {
		r.Width = area.Width
	}
	if r.Height == 0 || r.Height > area.Height {
		r.Height = area.Height
	}
	inside := r.X >= area.X && r.Y >= area.Y &&
		int(r.X)+int(r.Width) <= int(area.X)+int(area.Width) &&
		int(r.Y)+int(r.Height) <= int(area.Y)+int(area.Height)
	if !inside || (r.X == 0 && r.Y == 0) {
		r.X = area.X + int16((area.Width-r.Width)/2)
		r.Y = area.Y + int16((area.Height-r.Height)/2)
	}
	return r
}

// halfRect is r shrunk to half its size about its center.
func halfRect(r xp.Rectangle) xp.Rectangle {
	return xp.Rectangle{
		X:      r.X + int16(r.Width/4),
		Y:      r.Y + int16(r.Height/4),
		Width:  r.Width / 2,
		Height: r.Height / 2,
	}
}

// relativeTo translates r into area's co-ordinates.
func relativeTo(r, area xp.Rectangle) xp.Rectangle {
	r.X -= area.X
	r.Y -= area.Y
	return r
}

// absoluteFrom is the inverse of relativeTo.
func absoluteFrom(r, area xp.Rectangle) xp.Rectangle {
	r.X += area.X
	r.Y += area.Y
	return r
}

func toLayoutRect(r xp.Rectangle) layout.Rect {
	return layout.Rect{X: int(r.X), Y: int(r.Y), Width: int(r.Width), Height: int(r.Height)}
}

var (
	screens []*screen
	groups  []*group
)

type screen struct {
	group *group
	// full is the whole monitor, bar is the strip at its top and rect is
	// the rest, where windows go.
	full xp.Rectangle
	bar  xp.Rectangle
	rect xp.Rectangle
	// placements are where the bar's widgets were last drawn.
	placements []bar.Placement
}

// setBarHeight splits the screen into its bar and window areas.
func (s *screen) setBarHeight(h uint16) {
	if h > s.full.Height/2 {
		h = s.full.Height / 2
	}
	s.bar = xp.Rectangle{X: s.full.X, Y: s.full.Y, Width: s.full.Width, Height: h}
	s.rect = xp.Rectangle{
		X:      s.full.X,
		Y:      s.full.Y + int16(h),
		Width:  s.full.Width,
		Height: s.full.Height - h,
	}
}

// group is a named set of windows, shown on at most one screen. Its windows
// form a ring, anchored at dummyWindow, in tiling order.
type group struct {
	name        string
	screen      *screen
	focused     *window
	layout      int // Index into layouts.
	dummyWindow window
}

func newGroups(names []string) []*group {
	gs := make([]*group, len(names))
	for i, name := range names {
		g := &group{name: name}
		g.dummyWindow.link[next] = &g.dummyWindow
		g.dummyWindow.link[prev] = &g.dummyWindow
		gs[i] = g
	}
	return gs
}

// index returns g's position in groups, or -1.
func (g *group) index() int {
	for i, h := range groups {
		if h == g {
			return i
		}
	}
	return -1
}

func (g *group) numWindows() (n int) {
	for w := g.dummyWindow.link[next]; w != &g.dummyWindow; w = w.link[next] {
		n++
	}
	return n
}

// insert adds w to g's ring after previous, or at the end if previous is
// nil or not in g.
func (g *group) insert(w, previous *window) {
	if previous == nil || previous.group != g {
		previous = g.dummyWindow.link[prev]
	}
	w.group = g
	w.link[next] = previous.link[next]
	w.link[prev] = previous
	w.link[next].link[prev] = w
	w.link[prev].link[next] = w
}

// remove takes w out of its group's ring. If w had the focus, a neighbor,
// preferring the next one, gets it.
func (w *window) remove() {
	g := w.group
	if g == nil {
		return
	}
	if g.focused == w {
		g.focused = nil
		for _, t := range [...]traversal{next, prev} {
			if n := w.link[t]; n != &g.dummyWindow && n != w {
				g.focused = n
				break
			}
		}
	}
	w.link[next].link[prev] = w.link[prev]
	w.link[prev].link[next] = w.link[next]
	w.link = [2]*window{}
	w.group = nil
}

// tiled returns g's non-floating windows in ring order.
func (g *group) tiled() (ws []*window) {
	for w := g.dummyWindow.link[next]; w != &g.dummyWindow; w = w.link[next] {
		if !w.floating {
			ws = append(ws, w)
		}
	}
	return ws
}

// placement is a window's outer geometry and border width.
type placement struct {
	rect   xp.Rectangle
	border uint16
}

var offscreen = placement{rect: xp.Rectangle{X: offscreenXY, Y: offscreenXY, Width: 1, Height: 1}}

// placements computes where each of g's windows goes, without talking to
// the X server.
func (g *group) placements() map[*window]placement {
	ps := map[*window]placement{}
	s := g.screen
	if s == nil {
		for w := g.dummyWindow.link[next]; w != &g.dummyWindow; w = w.link[next] {
			p := offscreen
			p.rect.Width, p.rect.Height = max(w.rect.Width, 1), max(w.rect.Height, 1)
			ps[w] = p
		}
		return ps
	}
	tiled := g.tiled()
	geoms := layouts[g.layout%len(layouts)].Arrange(toLayoutRect(s.rect), len(tiled))
	for i, w := range tiled {
		gm := geoms[i]
		ps[w] = placement{
			rect: xp.Rectangle{
				X:      int16(gm.X),
				Y:      int16(gm.Y),
				Width:  uint16(gm.Width),
				Height: uint16(gm.Height),
			},
			border: uint16(gm.Border),
		}
	}
	for w := g.dummyWindow.link[next]; w != &g.dummyWindow; w = w.link[next] {
		switch {
		case w.fullscreen:
			ps[w] = placement{rect: s.full}
		case w.floating:
			ps[w] = placement{rect: absoluteFrom(w.floatRect, s.rect), border: floatBorder}
		}
	}
	return ps
}

// stackingOrder lists the windows to raise, bottom first: the focused tiled
// window, which matters for the max layout, then the floating windows with
// the focused one last, then any fullscreen windows.
func (g *group) stackingOrder() (ws []*window) {
	if w := g.focused; w != nil && !w.floating && !w.fullscreen {
		ws = append(ws, w)
	}
	var fullscreen []*window
	for w := g.dummyWindow.link[next]; w != &g.dummyWindow; w = w.link[next] {
		switch {
		case w.fullscreen:
			fullscreen = append(fullscreen, w)
		case w.floating && w != g.focused:
			ws = append(ws, w)
		}
	}
	if w := g.focused; w != nil && w.floating && !w.fullscreen {
		ws = append(ws, w)
	}
	return append(ws, fullscreen...)
}

// arrange moves g's windows to their places and restacks them.
func (g *group) arrange() {
	for w, p := range g.placements() {
		w.place(p)
	}
	if g.screen == nil {
		return
	}
	for _, w := range g.stackingOrder() {
		check(xp.ConfigureWindowChecked(xConn, w.xWin, xp.ConfigWindowStackMode,
			[]uint32{xp.StackModeAbove}))
	}
	g.paintBorders()
}

func (g *group) paintBorders() {
	for w := g.dummyWindow.link[next]; w != &g.dummyWindow; w = w.link[next] {
		color := uint32(colorBorderUnfocused)
		if w == g.focused {
			color = colorBorderFocused
		}
		check(xp.ChangeWindowAttributesChecked(xConn, w.xWin, xp.CwBorderPixel, []uint32{color}))
	}
}

type window struct {
	group        *group
	link         [2]*window
	transientFor *window
	xWin         xp.Window
	// rect and border are the geometry last sent to the X server.
	rect   xp.Rectangle
	border uint16
	// floatRect is relative to the screen's window area, so that a
	// floating window keeps its place when its group changes screens.
	floatRect      xp.Rectangle
	name           string
	floating       bool
	fullscreen     bool
	wmDeleteWindow bool
	wmTakeFocus    bool
}

func (w *window) place(p placement) {
	if w.rect == p.rect && w.border == p.border {
		return
	}
	w.rect, w.border = p.rect, p.border
	check(xp.ConfigureWindowChecked(xConn, w.xWin,
		xp.ConfigWindowX|xp.ConfigWindowY|xp.ConfigWindowWidth|xp.ConfigWindowHeight|xp.ConfigWindowBorderWidth,
		[]uint32{
			uint32(uint16(p.rect.X)),
			uint32(uint16(p.rect.Y)),
			uint32(p.rect.Width),
			uint32(p.rect.Height),
			uint32(p.border),
		}))
}

func findWindow(predicate func(*window) bool) *window {
	for _, g := range groups {
		for w := g.dummyWindow.link[next]; w != &g.dummyWindow; w = w.link[next] {
			if predicate(w) {
				return w
			}
		}
	}
	return nil
}

func windowFor(xWin xp.Window) *window {
	return findWindow(func(w *window) bool { return w.xWin == xWin })
}

func (w *window) property(a xp.Atom) string {
	p, err := xp.GetProperty(xConn, false, w.xWin, a, xp.GetPropertyTypeAny, 0, 1<<32-1).Reply()
	if err != nil {
		slog.Warn("get property", "window", w.xWin, "err", err)
		return ""
	}
	return string(p.Value)
}

// refreshName re-reads w's WM_NAME. It is called when w is managed and
// whenever that property changes.
func (w *window) refreshName() {
	w.name = w.property(atomWMName)
	if w.name == "" {
		w.name = "?"
	}
}

// atomList reads xWin's property a as a list of atoms.
func atomList(xWin xp.Window, a xp.Atom) (atoms []xp.Atom) {
	p, err := xp.GetProperty(xConn, false, xWin, a, xp.GetPropertyTypeAny, 0, 64).Reply()
	if err != nil {
		slog.Warn("get property", "window", xWin, "atom", a, "err", err)
		return nil
	}
	for b := p.Value; len(b) >= 4; b = b[4:] {
		atoms = append(atoms, xp.Atom(u32(b)))
	}
	return atoms
}

// hasAtom reports whether w's property a, a list of atoms, contains v.
func (w *window) hasAtom(a, v xp.Atom) bool {
	return lo.Contains(atomList(w.xWin, a), v)
}

// geometry is where w's client asked to be.
func (w *window) geometry() xp.Rectangle {
	g, err := xp.GetGeometry(xConn, xp.Drawable(w.xWin)).Reply()
	if err != nil {
		slog.Warn("get geometry", "window", w.xWin, "err", err)
		return xp.Rectangle{}
	}
	return xp.Rectangle{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<0 | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
