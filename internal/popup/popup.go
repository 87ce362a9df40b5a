// Package popup lays out the transient overlay of system graphs.
package popup

import (
	"time"

	"github.com/nigeltao/barwm/internal/metrics"
)

// Rect is a rectangle in root window co-ordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return r.X <= x && x < r.X+r.Width && r.Y <= y && y < r.Y+r.Height
}

// Point is a polyline vertex.
type Point struct {
	X, Y int
}

// Grid divides the overlay into equal cells.
type Grid struct {
	Rows int
	Cols int
	// HeightDivisor is how many overlays stack in the screen height.
	HeightDivisor int
}

// DefaultGrid is 4 rows by 6 columns, one third of the screen tall.
var DefaultGrid = Grid{Rows: 4, Cols: 6, HeightDivisor: 3}

// Geometry returns the overlay's rectangle on screen: the screen's top-left
// corner, full width, 1/HeightDivisor of the height.
func (g Grid) Geometry(screen Rect) Rect {
	d := g.HeightDivisor
	if d <= 0 {
		d = 1
	}
	return Rect{
		X:      screen.X,
		Y:      screen.Y,
		Width:  screen.Width,
		Height: screen.Height / d,
	}
}

// Placement is a widget's position in grid cells.
type Placement struct {
	Row, Col         int
	RowSpan, ColSpan int
}

// Cell returns p's rectangle within overlay. Cell edges are rounded so that
// adjacent cells tile the overlay exactly.
func (g Grid) Cell(overlay Rect, p Placement) Rect {
	if g.Rows <= 0 || g.Cols <= 0 {
		return Rect{}
	}
	x0 := p.Col * overlay.Width / g.Cols
	x1 := (p.Col + p.ColSpan) * overlay.Width / g.Cols
	y0 := p.Row * overlay.Height / g.Rows
	y1 := (p.Row + p.RowSpan) * overlay.Height / g.Rows
	return Rect{
		X:      overlay.X + x0,
		Y:      overlay.Y + y0,
		Width:  x1 - x0,
		Height: y1 - y0,
	}
}

// Kind identifies which statistic a graph shows.
type Kind int

const (
	CPU Kind = iota
	Memory
	Network
)

func (k Kind) String() string {
	switch k {
	case CPU:
		return "cpu"
	case Memory:
		return "mem"
	case Network:
		return "net"
	}
	return "?"
}

// Graph is one live graph widget.
type Graph struct {
	Kind      Kind
	Placement Placement
	// Max is the value drawn at the top of the cell. Zero auto-scales.
	Max     float64
	History *History
}

// HistoryLen is the number of samples each graph keeps.
const HistoryLen = 60

// DefaultGraphs returns the three graphs at their fixed grid positions: CPU
// across the top two rows, memory and network side by side in the third.
// The bottom row is left empty.
func DefaultGraphs() []*Graph {
	return []*Graph{
		{Kind: CPU, Placement: Placement{Row: 0, Col: 0, RowSpan: 2, ColSpan: 6}, Max: 100, History: NewHistory(HistoryLen)},
		{Kind: Memory, Placement: Placement{Row: 2, Col: 0, RowSpan: 1, ColSpan: 3}, Max: 100, History: NewHistory(HistoryLen)},
		{Kind: Network, Placement: Placement{Row: 2, Col: 3, RowSpan: 1, ColSpan: 3}, History: NewHistory(HistoryLen)},
	}
}

// Overlay is one invocation of the popup. A new Overlay is built each time
// the popup opens.
type Overlay struct {
	Grid   Grid
	Rect   Rect
	Graphs []*Graph

	rate metrics.Rate
}

// New builds an overlay for the given screen.
func New(g Grid, screen Rect) *Overlay {
	return &Overlay{
		Grid:   g,
		Rect:   g.Geometry(screen),
		Graphs: DefaultGraphs(),
	}
}

// Sample appends one reading from src to every graph. A failed reading is
// recorded as zero and the first error is returned.
func (o *Overlay) Sample(src metrics.Source, now time.Time) error {
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}
	for _, g := range o.Graphs {
		v := 0.0
		switch g.Kind {
		case CPU:
			c, err := src.CPUPercent()
			if err != nil {
				keep(err)
				break
			}
			v = c
		case Memory:
			m, err := src.MemoryPercent()
			if err != nil {
				keep(err)
				break
			}
			v = m
		case Network:
			n, err := src.NetworkBytes()
			if err != nil {
				keep(err)
				break
			}
			v = o.rate.Observe(n, now)
		}
		g.History.Push(v)
	}
	return firstErr
}

// CellOf returns g's rectangle within the overlay.
func (o *Overlay) CellOf(g *Graph) Rect {
	return o.Grid.Cell(o.Rect, g.Placement)
}
