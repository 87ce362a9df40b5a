// Package indicator computes the two bar indicators that track the focused
// group and window: a close button and a floating/tiled toggle.
package indicator

// Glyphs shown by the indicators. An empty group shows neither.
const (
	CloseGlyph    = "❌"
	FloatingGlyph = "⎗"
	TiledGlyph    = "⎘"
)

// State is a snapshot of the window manager state that the indicators
// depend on.
type State struct {
	// GroupWindows is the number of windows in the current group.
	GroupWindows int
	// HasFocus is whether some window in the current group is focused.
	HasFocus bool
	// Floating is the focused window's floating flag. It is ignored
	// unless HasFocus is set.
	Floating bool
}

// Labels returns the close and float indicator texts for s.
func Labels(s State) (closeLabel, floatLabel string) {
	if s.GroupWindows <= 0 {
		return "", ""
	}
	if s.HasFocus && s.Floating {
		return CloseGlyph, FloatingGlyph
	}
	return CloseGlyph, TiledGlyph
}

// Label is a text widget that an Updater writes to.
type Label interface {
	SetText(text string)
}

// Updater keeps two labels in sync with State. Calling Update again with an
// unchanged State rewrites the same texts.
type Updater struct {
	Close Label
	Float Label
}

// Update overwrites both labels.
func (u *Updater) Update(s State) {
	c, f := Labels(s)
	if u.Close != nil {
		u.Close.SetText(c)
	}
	if u.Float != nil {
		u.Float.SetText(f)
	}
}
