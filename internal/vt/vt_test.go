package vt_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nigeltao/barwm/internal/mocks"
	"github.com/nigeltao/barwm/internal/vt"
)

func TestSwitch_EvaluatesAllowedPerCall(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	spawner := mocks.NewMockSpawner(ctrl)

	allowed, checks := false, 0
	s := &vt.Switcher{
		Allowed: func() bool { checks++; return allowed },
		Spawner: spawner,
	}
	req.Zero(checks)

	ok, err := s.Switch(2)
	req.NoError(err)
	req.False(ok)
	req.Equal(1, checks)

	allowed = true
	spawner.EXPECT().Spawn([]string{"chvt", "2"}).Return(nil)
	ok, err = s.Switch(2)
	req.NoError(err)
	req.True(ok)
	req.Equal(2, checks)
}

func TestSwitch_Errors(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	spawner := mocks.NewMockSpawner(ctrl)
	s := &vt.Switcher{Spawner: spawner}

	ok, err := s.Switch(0)
	req.NoError(err)
	req.False(ok)

	spawner.EXPECT().Spawn([]string{"chvt", "7"}).Return(errors.New("no chvt"))
	ok, err = s.Switch(7)
	req.True(ok)
	req.EqualError(err, "no chvt")
}

func TestOnVirtualTerminal(t *testing.T) {
	req := require.New(t)
	t.Setenv("XDG_VTNR", "")
	req.False(vt.OnVirtualTerminal())

	t.Setenv("XDG_VTNR", "2")
	req.Equal(runtime.GOOS == "linux", vt.OnVirtualTerminal())
}
