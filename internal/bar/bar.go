// Package bar arranges the status bar's widgets.
package bar

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// Widget names used by the window manager's default arrangement.
const (
	NameGroups = "groups"
	NameWindow = "window"
	NameSpacer = "spacer"
	NameLayout = "layout"
	NameFloat  = "float"
	NameClose  = "close"
	NameClock  = "clock"
)

// Padding is the number of blank cells on each side of a non-empty widget.
const Padding = 1

// TextBox is a mutable bar widget. It is written by the indicator updater
// and the clock, and read when the bar repaints.
type TextBox struct {
	Name    string
	Text    string
	Stretch bool

	changed bool
}

// SetText replaces the text, noting whether it differs from the old one.
func (b *TextBox) SetText(text string) {
	if b.Text != text {
		b.Text, b.changed = text, true
	}
}

// Changed reports and clears whether the text changed since the last call.
func (b *TextBox) Changed() bool {
	c := b.changed
	b.changed = false
	return c
}

// Placement is a widget's horizontal extent, in pixels, within the bar.
type Placement struct {
	Name string
	Text string
	X    int
	// Width includes padding.
	Width int
}

// Cells returns the number of character cells text occupies with padding.
// Empty text occupies nothing.
func Cells(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return n + 2*Padding
}

// Layout places widgets left to right in a bar width pixels wide, with
// fixed-width characters charWidth pixels wide. The first stretch widget
// takes up whatever width remains; any others are treated as fixed.
func Layout(widgets []*TextBox, width, charWidth int) []Placement {
	if charWidth <= 0 {
		return nil
	}
	stretch := -1
	for i, w := range widgets {
		if w.Stretch {
			stretch = i
			break
		}
	}
	fixed := lo.SumBy(widgets, func(w *TextBox) int {
		return Cells(w.Text) * charWidth
	})
	remaining := 0
	if stretch >= 0 {
		fixed -= Cells(widgets[stretch].Text) * charWidth
		remaining = width - fixed
		if remaining < 0 {
			remaining = 0
		}
	}

	placements := make([]Placement, 0, len(widgets))
	x := 0
	for i, w := range widgets {
		wd := Cells(w.Text) * charWidth
		if i == stretch {
			wd = remaining
		}
		placements = append(placements, Placement{
			Name:  w.Name,
			Text:  w.Text,
			X:     x,
			Width: wd,
		})
		x += wd
	}
	return placements
}

// HitTest returns the name of the non-empty widget at x.
func HitTest(placements []Placement, x int) (string, bool) {
	p, ok := lo.Find(placements, func(p Placement) bool {
		return p.Width > 0 && p.X <= x && x < p.X+p.Width
	})
	if !ok {
		return "", false
	}
	return p.Name, true
}

// GroupBox renders the group names with the current group bracketed.
func GroupBox(names []string, current int) string {
	parts := lo.Map(names, func(name string, i int) string {
		if i == current {
			return "[" + name + "]"
		}
		return " " + name + " "
	})
	return strings.Join(parts, "")
}

// GroupAt maps a character offset into a GroupBox text back to the group
// index, or -1.
func GroupAt(names []string, offset int) int {
	x := 0
	for i, name := range names {
		n := utf8.RuneCountInString(name) + 2
		if offset >= x && offset < x+n {
			return i
		}
		x += n
	}
	return -1
}

// Truncate shortens text to at most n runes, marking the cut with "…".
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	r := []rune(text)
	return string(r[:n-1]) + "…"
}
