package autostart_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nigeltao/barwm/internal/autostart"
	"github.com/nigeltao/barwm/internal/mocks"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_ContinuesPastFailures(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	spawner := mocks.NewMockSpawner(ctrl)

	gomock.InOrder(
		spawner.EXPECT().Spawn([]string{"picom", "--daemon"}).Return(errors.New("not found")),
		spawner.EXPECT().Spawn([]string{"nm-applet"}).Return(nil),
		spawner.EXPECT().Spawn([]string{"flameshot"}).Return(nil),
	)

	n := autostart.Run(discard(), spawner, [][]string{
		{"picom", "--daemon"},
		{},
		{"nm-applet"},
		nil,
		{"flameshot"},
	})
	req.Equal(2, n)
}

func TestRun_Defaults(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	spawner := mocks.NewMockSpawner(ctrl)
	spawner.EXPECT().Spawn(gomock.Any()).Return(nil).Times(len(autostart.Defaults))

	req.Equal(len(autostart.Defaults), autostart.Run(discard(), spawner, autostart.Defaults))

	req.Equal([]string{"wosp-lock"}, autostart.Defaults[0])
	req.Contains(autostart.Defaults, []string{"picom", "-b"})
	req.Equal([]string{"wosp-polkit-agent"}, autostart.Defaults[len(autostart.Defaults)-1])
}

func TestExecSpawner(t *testing.T) {
	req := require.New(t)
	var s autostart.ExecSpawner
	req.Error(s.Spawn(nil))
	req.Error(s.Spawn([]string{"/nonexistent/barwm-test-binary"}))
}
