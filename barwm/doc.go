/*
Barwm is a keyboard driven, tiling window manager with a status bar. Each
screen shows one group of windows, tiled by the group's layout. A thin bar
along the top of every screen shows the groups, the focused window's name,
the layout, two indicators and a clock.


INSTALLATION

	go install github.com/nigeltao/barwm/barwm@latest

Barwm is designed to run from an Xsession session. Add this line to the end
of your ~/.xsession file:
	/path/to/your/barwm
Barwm logs to stderr, which Xsession usually sends to ~/.xsession-errors.


USAGE

Most keyboard shortcuts involve first holding down the Super (Windows) key.

Super and the Enter key opens a terminal emulator and Super and 'R' prompts
for a command to run. Super and 'A' opens the program launcher, 'P' the
power menu, 'L' locks the screen and 'N' opens the rocker. Super and 'W'
closes the focused window.

Super and the Tab key cycles the group's layout: max, where the focused
window covers the screen, then monadwide and monadtall, with a main window
above or to the left of the others. Super and 'F' toggles fullscreen and
Super and 'T' toggles whether the focused window floats. Floating windows
keep their own geometry and sit above the tiled ones. Dialogs, transient
windows and the window classes and titles listed in the settings file float
when they first appear.

With Super held, dragging a window with the left mouse button moves it and
dragging with the right button resizes it. Either makes a tiled window
float. The middle button raises the window.

The focus follows the mouse.

Super and 1, 2, etc. show the 1st, 2nd, etc. group on the current screen. If
that group is on another screen, the two screens swap groups. Super, Shift
and a number move the focused window to that group and show it.

Super and 'G' opens a popup of live CPU, memory and network graphs along the
top third of the screen. Clicking outside it, or Super and 'G' again, closes
it.

Control, Alt and F1 to F7 switch to the Linux virtual terminal of that
number, when barwm itself runs on one and may do so. Under most X servers,
the keyboard layout already handles these keys.

Super, Control and 'R' reloads the settings file. Super, Control and 'Q'
asks every window to close and quits, giving them 5 seconds to do so.

The volume keys adjust the ALSA master volume.


THE BAR

From left to right: the groups, with the current one bracketed; the focused
window's name; the layout; the float indicator; the close indicator; the
clock. Both indicators are blank when the current group has no windows. The
close indicator shows ❌ otherwise. The float indicator shows ⎗ when the
focused window floats and ⎘ when it is tiled. Clicking a group switches to
it, clicking the layout cycles it, clicking ❌ closes the focused window and
clicking the float indicator toggles it.


CUSTOMIZATION

Key bindings, layouts and colors are in config.go and need recompiling.
Groups, programs, autostart commands, floating rules, the bar and the popup
are in $XDG_CONFIG_HOME/barwm/config.toml, or the file named by
$BARWM_CONFIG. Run "barwm -dump-config" to print the effective settings,
which is a good starting point for that file. Any setting can be overridden
by an environment variable such as BARWM_BAR_HEIGHT or BARWM_LOG_LEVEL.


DEVELOPMENT

Barwm can be run in a nested X server such as Xephyr:
	Xephyr :9 2>/dev/null &
	DISPLAY=:9 go run ./barwm
*/
package main
