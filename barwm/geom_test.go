package main

import (
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/require"
)

// useGroups replaces the groups for the duration of a test.
func useGroups(t *testing.T, names ...string) []*group {
	t.Helper()
	old := groups
	groups = newGroups(names)
	t.Cleanup(func() { groups = old })
	return groups
}

func addWindow(g *group, w *window) *window {
	g.insert(w, nil)
	return w
}

// testScreen is a 1000x618 screen with an 18 pixel bar, showing g.
func testScreen(g *group) *screen {
	s := &screen{group: g, full: xp.Rectangle{Width: 1000, Height: 618}}
	s.setBarHeight(18)
	g.screen = s
	return s
}

func TestPlaceFloating(t *testing.T) {
	area := xp.Rectangle{X: 0, Y: 18, Width: 1000, Height: 782}
	tests := []struct {
		name string
		r    xp.Rectangle
		want xp.Rectangle
	}{
		{
			name: "inside",
			r:    xp.Rectangle{X: 100, Y: 100, Width: 200, Height: 100},
			want: xp.Rectangle{X: 100, Y: 100, Width: 200, Height: 100},
		},
		{
			name: "outside is centered",
			r:    xp.Rectangle{X: -50, Y: 100, Width: 200, Height: 100},
			want: xp.Rectangle{X: 400, Y: 359, Width: 200, Height: 100},
		},
		{
			name: "origin is centered",
			r:    xp.Rectangle{X: 0, Y: 0, Width: 200, Height: 100},
			want: xp.Rectangle{X: 400, Y: 359, Width: 200, Height: 100},
		},
		{
			name: "too big is clamped",
			r:    xp.Rectangle{X: 10, Y: 20, Width: 5000, Height: 5000},
			want: xp.Rectangle{X: 0, Y: 18, Width: 1000, Height: 782},
		},
		{
			name: "empty takes the area",
			r:    xp.Rectangle{},
			want: area,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, placeFloating(tt.r, area))
		})
	}
}

func TestHalfRect(t *testing.T) {
	req := require.New(t)
	req.Equal(xp.Rectangle{X: 25, Y: 12, Width: 50, Height: 25},
		halfRect(xp.Rectangle{X: 0, Y: 0, Width: 100, Height: 50}))
	req.Equal(xp.Rectangle{X: 150, Y: 60, Width: 100, Height: 40},
		halfRect(xp.Rectangle{X: 100, Y: 40, Width: 200, Height: 80}))
}

func TestRelativeTo(t *testing.T) {
	req := require.New(t)
	area := xp.Rectangle{X: 1920, Y: 18, Width: 1280, Height: 1006}
	r := xp.Rectangle{X: 2000, Y: 100, Width: 300, Height: 200}
	rel := relativeTo(r, area)
	req.Equal(xp.Rectangle{X: 80, Y: 82, Width: 300, Height: 200}, rel)
	req.Equal(r, absoluteFrom(rel, area))
}

func TestScreen_SetBarHeight(t *testing.T) {
	req := require.New(t)
	s := &screen{full: xp.Rectangle{X: 1920, Y: 0, Width: 1280, Height: 1024}}

	s.setBarHeight(18)
	req.Equal(xp.Rectangle{X: 1920, Y: 0, Width: 1280, Height: 18}, s.bar)
	req.Equal(xp.Rectangle{X: 1920, Y: 18, Width: 1280, Height: 1006}, s.rect)

	s.setBarHeight(0)
	req.Equal(uint16(0), s.bar.Height)
	req.Equal(s.full, s.rect)

	s.setBarHeight(5000)
	req.Equal(uint16(512), s.bar.Height)
	req.Equal(int16(512), s.rect.Y)
}

func TestGroup_Ring(t *testing.T) {
	gs := useGroups(t, "1", "2")
	req := require.New(t)
	g := gs[0]

	req.Equal(0, g.numWindows())
	req.Equal(0, g.index())
	req.Equal(1, gs[1].index())
	req.Equal(-1, (&group{}).index())

	a := addWindow(g, &window{name: "a"})
	c := addWindow(g, &window{name: "c"})
	b := &window{name: "b"}
	g.insert(b, a)
	req.Equal(3, g.numWindows())
	req.Equal([]*window{a, b, c}, g.tiled())
	req.Same(g, b.group)

	// A previous window from another group means the end of the ring.
	d := &window{name: "d"}
	g.insert(d, addWindow(gs[1], &window{}))
	req.Equal([]*window{a, b, c, d}, g.tiled())
}

func TestWindow_Remove(t *testing.T) {
	gs := useGroups(t, "1")
	req := require.New(t)
	g := gs[0]

	a := addWindow(g, &window{})
	b := addWindow(g, &window{})
	c := addWindow(g, &window{})

	// The focus moves to the next window, or the previous one at the end.
	g.focused = b
	b.remove()
	req.Same(c, g.focused)
	req.Nil(b.group)
	req.Equal([]*window{a, c}, g.tiled())

	c.remove()
	req.Same(a, g.focused)

	a.remove()
	req.Nil(g.focused)
	req.Equal(0, g.numWindows())

	// Removing a window that is in no group does nothing.
	a.remove()
}

func TestGroup_Placements(t *testing.T) {
	gs := useGroups(t, "1", "2")
	req := require.New(t)
	g := gs[0]
	testScreen(g)
	g.layout = 2 // monadtall

	a := addWindow(g, &window{})
	b := addWindow(g, &window{})
	f := addWindow(g, &window{floating: true, floatRect: xp.Rectangle{X: 10, Y: 10, Width: 200, Height: 100}})

	ps := g.placements()
	req.Len(ps, 3)
	req.Equal(placement{rect: xp.Rectangle{X: 6, Y: 24, Width: 482, Height: 582}, border: 3}, ps[a])
	req.Equal(placement{rect: xp.Rectangle{X: 506, Y: 24, Width: 482, Height: 582}, border: 3}, ps[b])
	req.Equal(placement{rect: xp.Rectangle{X: 10, Y: 28, Width: 200, Height: 100}, border: floatBorder}, ps[f])

	// A fullscreen window covers the bar too, and still takes a tile.
	c := addWindow(g, &window{fullscreen: true})
	ps = g.placements()
	req.Equal(placement{rect: xp.Rectangle{X: 506, Y: 24, Width: 482, Height: 282}, border: 3}, ps[b])
	req.Equal(placement{rect: xp.Rectangle{Width: 1000, Height: 618}}, ps[c])

	// The max layout gives every tiled window the whole area.
	g.layout = 0
	ps = g.placements()
	req.Equal(placement{rect: xp.Rectangle{X: 0, Y: 18, Width: 1000, Height: 600}}, ps[a])
	req.Equal(ps[a], ps[b])

	// A group on no screen is parked offscreen.
	hidden := gs[1]
	h := addWindow(hidden, &window{rect: xp.Rectangle{X: 5, Y: 5, Width: 300, Height: 200}})
	req.Equal(placement{rect: xp.Rectangle{X: offscreenXY, Y: offscreenXY, Width: 300, Height: 200}},
		hidden.placements()[h])
}

func TestGroup_StackingOrder(t *testing.T) {
	gs := useGroups(t, "1")
	req := require.New(t)
	g := gs[0]

	a := addWindow(g, &window{})
	addWindow(g, &window{})
	c := addWindow(g, &window{fullscreen: true})
	f := addWindow(g, &window{floating: true})
	f2 := addWindow(g, &window{floating: true})

	g.focused = a
	req.Equal([]*window{a, f, f2, c}, g.stackingOrder())

	g.focused = f
	req.Equal([]*window{f2, f, c}, g.stackingOrder())

	g.focused = nil
	req.Equal([]*window{f, f2, c}, g.stackingOrder())
}

func TestU32(t *testing.T) {
	require.Equal(t, uint32(0x04030201), u32([]byte{1, 2, 3, 4}))
}
