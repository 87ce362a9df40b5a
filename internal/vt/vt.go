// Package vt switches the active Linux virtual terminal.
//
// Under X, the server usually handles Control-Alt-F1 and friends through
// XKB before any client sees the keys. The window manager's binding only
// matters when that is turned off, for example with the XKB option
// srvrkeys:none. chvt needs CAP_SYS_TTY_CONFIG; without it, the switch is
// not attempted at all.
package vt

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/nigeltao/barwm/internal/autostart"
	"github.com/nigeltao/barwm/internal/settings"
)

// Count is the number of virtual terminals bound to keys.
const Count = 7

// capSysTTYConfig is CAP_SYS_TTY_CONFIG from linux/capability.h.
const capSysTTYConfig = 26

// Switcher runs chvt when Allowed says so. Allowed is consulted on every
// Switch, not when the binding is made: at bind time the session may not
// be fully set up yet.
type Switcher struct {
	Allowed func() bool
	Spawner autostart.Spawner
}

// Switch changes to virtual terminal n, if allowed. It reports whether a
// switch was attempted.
func (s *Switcher) Switch(n int) (bool, error) {
	if n < 1 || (s.Allowed != nil && !s.Allowed()) {
		return false, nil
	}
	return true, s.Spawner.Spawn([]string{"chvt", strconv.Itoa(n)})
}

// OnVirtualTerminal reports whether this session runs on a Linux virtual
// terminal, reading the environment at call time.
func OnVirtualTerminal() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	e, err := settings.CurrentEnv()
	if err != nil {
		return false
	}
	_, err = strconv.Atoi(e.VTNR)
	return err == nil
}

// CanSwitch reports whether chvt can succeed from this process: the session
// is on a virtual terminal and the process holds CAP_SYS_TTY_CONFIG.
func CanSwitch() bool {
	if !OnVirtualTerminal() {
		return false
	}
	status, err := os.ReadFile("/proc/self/status")
	if err != nil {
		return false
	}
	return hasCapability(string(status), capSysTTYConfig)
}

// hasCapability reports whether the CapEff line of a /proc/<pid>/status
// dump has bit c set.
func hasCapability(status string, c uint) bool {
	for _, line := range strings.Split(status, "\n") {
		v, ok := strings.CutPrefix(line, "CapEff:")
		if !ok {
			continue
		}
		bits, err := strconv.ParseUint(strings.TrimSpace(v), 16, 64)
		return err == nil && bits&(1<<c) != 0
	}
	return false
}
