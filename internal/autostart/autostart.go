// Package autostart launches the session's helper programs.
package autostart

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/samber/lo"
)

//go:generate go run go.uber.org/mock/mockgen -source=autostart.go -destination=../mocks/mock_spawner.go -package=mocks

// Spawner starts a program without waiting for it.
type Spawner interface {
	Spawn(argv []string) error
}

// ExecSpawner starts programs with os/exec. The program's exit status is
// ignored; a goroutine reaps it.
type ExecSpawner struct{}

func (ExecSpawner) Spawn(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("spawn: empty command")
	}
	c := exec.Command(argv[0], argv[1:]...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("could not start command %q: %w", argv, err)
	}
	go c.Wait()
	return nil
}

// Defaults is the session's autostart list: the lock screen, the shell,
// wallpaper restore, the status and running-apps panels, the compositor,
// the touch gesture daemon, the screenshot tool and the polkit agent.
//
// Commands are started directly, without a shell.
var Defaults = [][]string{
	{"wosp-lock"},
	{"wosp-shell"},
	{"osm-paper-restore"},
	{"osm-status"},
	{"osm-running"},
	{"picom", "-b"},
	{"touchegg"},
	{"Flameshot"},
	{"wosp-polkit-agent"},
}

// Run spawns every non-empty command in order. Failures are logged and do
// not stop the remaining commands. It returns the number of commands
// started.
func Run(log *slog.Logger, s Spawner, commands [][]string) int {
	started := 0
	for _, argv := range lo.Filter(commands, func(c []string, _ int) bool { return len(c) > 0 }) {
		if err := s.Spawn(argv); err != nil {
			log.Warn("autostart failed", "cmd", argv[0], "err", err)
			continue
		}
		log.Debug("autostart", "cmd", argv[0])
		started++
	}
	return started
}
