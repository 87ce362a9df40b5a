// Package rules decides which new windows float instead of tiling.
package rules

import (
	"github.com/samber/lo"
)

// Window is what the rules can see of a new window.
type Window struct {
	// Class and Instance are the two WM_CLASS strings.
	Class    string
	Instance string
	Title    string
	// Transient is set when WM_TRANSIENT_FOR names another window.
	Transient bool
	// Dialog is set for _NET_WM_WINDOW_TYPE_DIALOG and similar types.
	Dialog bool
}

// Match selects windows. Empty fields match anything, but a Match with every
// field empty matches nothing.
type Match struct {
	Class string
	Title string
}

func (m Match) matches(w Window) bool {
	if m.Class == "" && m.Title == "" {
		return false
	}
	if m.Class != "" && m.Class != w.Class && m.Class != w.Instance {
		return false
	}
	if m.Title != "" && m.Title != w.Title {
		return false
	}
	return true
}

// Defaults are the floating rules that always apply: git GUI dialogs,
// password prompts and the like.
var Defaults = []Match{
	{Class: "confirmreset"},
	{Class: "makebranch"},
	{Class: "maketag"},
	{Class: "ssh-askpass"},
	{Title: "branchdialog"},
	{Title: "pinentry"},
}

// Rules is a set of floating rules.
type Rules struct {
	matches []Match
}

// New returns Defaults plus extra.
func New(extra ...Match) *Rules {
	ms := make([]Match, 0, len(Defaults)+len(extra))
	ms = append(ms, Defaults...)
	ms = append(ms, extra...)
	return &Rules{matches: ms}
}

// FromLists builds rules from plain class and title lists, as they appear in
// the settings file.
func FromLists(classes, titles []string) *Rules {
	extra := lo.Map(classes, func(c string, _ int) Match { return Match{Class: c} })
	extra = append(extra, lo.Map(titles, func(t string, _ int) Match { return Match{Title: t} })...)
	return New(extra...)
}

// ShouldFloat reports whether w should start floating.
func (r *Rules) ShouldFloat(w Window) bool {
	if w.Transient || w.Dialog {
		return true
	}
	if r == nil {
		return false
	}
	return lo.SomeBy(r.matches, func(m Match) bool { return m.matches(w) })
}

// Len returns the number of rules, including the defaults.
func (r *Rules) Len() int {
	if r == nil {
		return 0
	}
	return len(r.matches)
}
