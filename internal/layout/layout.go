// Package layout arranges a group's tiled windows.
//
// Three layouts are provided. Max gives every window the whole area, with
// the focused one stacked on top. MonadTall puts the first (master) window
// in a left column and stacks the rest on the right. MonadWide puts the
// master on top and lines the rest up underneath.
package layout

// Rect is an area in root window co-ordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Kind is a tiling algorithm.
type Kind int

const (
	Max Kind = iota
	MonadWide
	MonadTall
)

func (k Kind) String() string {
	switch k {
	case Max:
		return "max"
	case MonadWide:
		return "monadwide"
	case MonadTall:
		return "monadtall"
	}
	return "?"
}

// DefaultRatio is the master window's share of the area.
const DefaultRatio = 0.5

// Layout is a Kind plus its decoration.
type Layout struct {
	Kind Kind
	// Border is the window border width, in pixels.
	Border int
	// Margin is the gap around every window, in pixels.
	Margin int
	// Ratio is the master's share for the monad layouts. Zero means
	// DefaultRatio.
	Ratio float64
}

// Geometry is where one window goes. X and Y are the outer top-left corner;
// Width and Height exclude the border, as in an X ConfigureWindow request.
type Geometry struct {
	X, Y          int
	Width, Height int
	Border        int
}

// Arrange returns the geometry of n tiled windows, in ring order, within
// area. The first window is the master.
func (l Layout) Arrange(area Rect, n int) []Geometry {
	if n <= 0 {
		return nil
	}
	gs := make([]Geometry, n)
	for i, c := range l.cells(area, n) {
		gs[i] = l.decorate(c)
	}
	return gs
}

func (l Layout) cells(area Rect, n int) []Rect {
	cs := make([]Rect, n)
	if l.Kind == Max || n == 1 {
		for i := range cs {
			cs[i] = area
		}
		return cs
	}
	ratio := l.Ratio
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultRatio
	}
	master, rest := area, area
	switch l.Kind {
	case MonadTall:
		master.Width = int(float64(area.Width) * ratio)
		rest.X += master.Width
		rest.Width -= master.Width
		split(cs[1:], rest, false)
	case MonadWide:
		master.Height = int(float64(area.Height) * ratio)
		rest.Y += master.Height
		rest.Height -= master.Height
		split(cs[1:], rest, true)
	}
	cs[0] = master
	return cs
}

// split divides r evenly between len(dst) cells, side by side if across is
// true and stacked otherwise. The cells tile r exactly.
func split(dst []Rect, r Rect, across bool) {
	n := len(dst)
	for i := range dst {
		c := r
		if across {
			i0, i1 := i*r.Width/n, (i+1)*r.Width/n
			c.X, c.Width = r.X+i0, i1-i0
		} else {
			i0, i1 := i*r.Height/n, (i+1)*r.Height/n
			c.Y, c.Height = r.Y+i0, i1-i0
		}
		dst[i] = c
	}
}

// decorate shrinks a cell by the margin and the border. A window is never
// smaller than 1x1.
func (l Layout) decorate(c Rect) Geometry {
	g := Geometry{
		X:      c.X + l.Margin,
		Y:      c.Y + l.Margin,
		Width:  c.Width - 2*l.Margin - 2*l.Border,
		Height: c.Height - 2*l.Margin - 2*l.Border,
		Border: l.Border,
	}
	g.Width = max(g.Width, 1)
	g.Height = max(g.Height, 1)
	return g
}

// Next returns the index after i in a cycle of n layouts.
func Next(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}
