package settings

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/nigeltao/barwm/internal/autostart"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	req := require.New(t)
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	req.NoError(err)
	req.Equal(Default(), s)
	req.Equal(18, s.Bar.Height)
	req.Equal("15:04:05", s.Bar.ClockFormat)
	req.Equal(4, s.Popup.Rows)
	req.Equal(6, s.Popup.Cols)
	req.Equal(3, s.Popup.HeightDivisor)
	req.Equal(time.Second, s.Popup.Interval)
	req.True(s.Autostart.Enabled)
	req.Equal(autostart.Defaults, s.Autostart.Commands)
	req.Equal("info", s.Log.Level)
	req.Equal([]string{"1", "2", "3"}, s.Groups)
	req.Equal("LG3D", s.WMName)
	req.Equal([]string{"osm-launcher"}, s.Programs.Launcher)
}

func TestLoad_File(t *testing.T) {
	req := require.New(t)
	path := writeFile(t, `
groups = ["web", "code"]

[programs]
terminal = ["alacritty"]

[autostart]
enabled = false
commands = [["picom"], ["nm-applet", "--indicator"]]

[float]
classes = ["Pavucontrol"]

[bar]
height = 24

[popup]
interval = "2s"
`)
	s, err := Load(path)
	req.NoError(err)
	req.Equal([]string{"alacritty"}, s.Programs.Terminal)
	req.Equal([]string{"osm-power"}, s.Programs.Power)
	req.Equal([]string{"web", "code"}, s.Groups)
	req.False(s.Autostart.Enabled)
	req.Equal([][]string{{"picom"}, {"nm-applet", "--indicator"}}, s.Autostart.Commands)
	req.Equal([]string{"Pavucontrol"}, s.Float.Classes)
	req.Equal(24, s.Bar.Height)
	req.Equal(2*time.Second, s.Popup.Interval)
}

func TestLoad_EnvOverride(t *testing.T) {
	req := require.New(t)
	t.Setenv("BARWM_BAR_HEIGHT", "30")
	t.Setenv("BARWM_LOG_LEVEL", "debug")
	s, err := Load(writeFile(t, "[bar]\nheight = 24\n"))
	req.NoError(err)
	req.Equal(30, s.Bar.Height)
	req.Equal("debug", s.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	req := require.New(t)
	_, err := Load(writeFile(t, "[popup]\nrows = 0\n"))
	req.Error(err)
	var verrs validator.ValidationErrors
	req.True(errors.As(err, &verrs))
	req.Equal("Rows", verrs[0].Field())

	_, err = Load(writeFile(t, "[log]\nlevel = \"loud\"\n"))
	req.Error(err)

	_, err = Load(writeFile(t, `groups = ["1", "2", "3", "4", "5", "6", "7", "8", "9", "10"]`))
	req.Error(err)

	_, err = Load(writeFile(t, "this is not toml ="))
	req.Error(err)
}

func TestDump(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	req.NoError(Dump(&buf, Default()))
	req.Contains(buf.String(), "[bar]")
	req.Contains(buf.String(), "height = 18")
	req.Contains(buf.String(), `clock_format = "15:04:05"`)
}

func TestDefaultPath(t *testing.T) {
	req := require.New(t)
	req.Equal("/x/barwm/config.toml", DefaultPath(Env{ConfigHome: "/x", Home: "/home/u"}))
	req.Equal("/home/u/.config/barwm/config.toml", DefaultPath(Env{Home: "/home/u"}))
}

func TestLoadEnv(t *testing.T) {
	req := require.New(t)
	e, err := LoadEnv([]string{
		"DISPLAY=:1",
		"BARWM_CONFIG=/etc/barwm.toml",
		"XDG_VTNR=2",
		"UNRELATED=x",
	})
	req.NoError(err)
	req.Equal(":1", e.Display)
	req.Equal("/etc/barwm.toml", e.ConfigPath)
	req.Equal("2", e.VTNR)
	req.Empty(e.ConfigHome)

	s, err := LoadEnvironment(Env{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")})
	req.NoError(err)
	req.Equal(18, s.Bar.Height)
}
