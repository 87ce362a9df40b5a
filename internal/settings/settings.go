// Package settings loads barwm's runtime settings file.
//
// Settings are read from $XDG_CONFIG_HOME/barwm/config.toml, or the file
// named by $BARWM_CONFIG, over built-in defaults. Any key can be overridden
// by an environment variable: bar.height is BARWM_BAR_HEIGHT, and so on.
package settings

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/nigeltao/barwm/internal/autostart"
)

// Settings is the effective runtime configuration.
type Settings struct {
	// Groups names the groups, in order. Super and a digit key switch to
	// the group at that position, so there are at most nine.
	Groups []string `mapstructure:"groups" toml:"groups" validate:"min=1,max=9,dive,required"`
	// WMName is the name the window manager announces to clients.
	WMName string `mapstructure:"wm_name" toml:"wm_name"`

	Programs  Programs  `mapstructure:"programs" toml:"programs"`
	Autostart Autostart `mapstructure:"autostart" toml:"autostart"`
	Float     Float     `mapstructure:"float" toml:"float"`
	Bar       Bar       `mapstructure:"bar" toml:"bar"`
	Popup     Popup     `mapstructure:"popup" toml:"popup"`
	Log       Log       `mapstructure:"log" toml:"log"`
}

// Programs are the commands bound to keys.
type Programs struct {
	Terminal []string `mapstructure:"terminal" toml:"terminal" validate:"min=1"`
	Power    []string `mapstructure:"power" toml:"power"`
	Launcher []string `mapstructure:"launcher" toml:"launcher"`
	Lock     []string `mapstructure:"lock" toml:"lock"`
	Rocker   []string `mapstructure:"rocker" toml:"rocker"`
	// Run prompts for a command to run.
	Run []string `mapstructure:"run" toml:"run"`
}

type Autostart struct {
	Enabled  bool       `mapstructure:"enabled" toml:"enabled"`
	Commands [][]string `mapstructure:"commands" toml:"commands" validate:"dive,min=1"`
}

// Float lists extra WM_CLASS values and titles whose windows float.
type Float struct {
	Classes []string `mapstructure:"classes" toml:"classes"`
	Titles  []string `mapstructure:"titles" toml:"titles"`
}

type Bar struct {
	Height      int    `mapstructure:"height" toml:"height" validate:"gte=0,lte=128"`
	ClockFormat string `mapstructure:"clock_format" toml:"clock_format" validate:"required"`
	// WindowNameWidth is the maximum number of characters of the focused
	// window's name shown in the bar.
	WindowNameWidth int `mapstructure:"window_name_width" toml:"window_name_width" validate:"gte=0"`
}

type Popup struct {
	Rows          int           `mapstructure:"rows" toml:"rows" validate:"gte=1"`
	Cols          int           `mapstructure:"cols" toml:"cols" validate:"gte=1"`
	HeightDivisor int           `mapstructure:"height_divisor" toml:"height_divisor" validate:"gte=1"`
	Interval      time.Duration `mapstructure:"interval" toml:"interval" validate:"gte=100ms"`
}

type Log struct {
	Level string `mapstructure:"level" toml:"level" validate:"oneof=debug info warn error"`
}

const envPrefix = "BARWM"

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("groups", []string{"1", "2", "3"})
	v.SetDefault("wm_name", "LG3D")
	v.SetDefault("programs.terminal", []string{"x-terminal-emulator"})
	v.SetDefault("programs.power", []string{"osm-power"})
	v.SetDefault("programs.launcher", []string{"osm-launcher"})
	v.SetDefault("programs.lock", []string{"osm-lockd"})
	v.SetDefault("programs.rocker", []string{"osm-rocker"})
	v.SetDefault("programs.run", []string{"dmenu_run"})
	v.SetDefault("autostart.enabled", true)
	v.SetDefault("autostart.commands", autostart.Defaults)
	v.SetDefault("float.classes", []string{})
	v.SetDefault("float.titles", []string{})
	v.SetDefault("bar.height", 18)
	v.SetDefault("bar.clock_format", "15:04:05")
	v.SetDefault("bar.window_name_width", 60)
	v.SetDefault("popup.rows", 4)
	v.SetDefault("popup.cols", 6)
	v.SetDefault("popup.height_divisor", 3)
	v.SetDefault("popup.interval", time.Second)
	v.SetDefault("log.level", "info")
}

// DefaultPath returns the settings file path used when BARWM_CONFIG is unset.
func DefaultPath(e Env) string {
	dir := e.ConfigHome
	if dir == "" {
		dir = filepath.Join(e.Home, ".config")
	}
	return filepath.Join(dir, "barwm", "config.toml")
}

// Load reads the settings file at path over the defaults. A missing file is
// not an error.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := Validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadEnvironment loads the settings file that e points at.
func LoadEnvironment(e Env) (Settings, error) {
	path := e.ConfigPath
	if path == "" {
		path = DefaultPath(e)
	}
	return Load(path)
}

// Validate checks s's field constraints.
func Validate(s Settings) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Dump writes s as a settings file.
func Dump(w io.Writer, s Settings) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

// Default returns the built-in settings, ignoring the environment.
func Default() Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		panic(fmt.Sprintf("settings: bad defaults: %v", err))
	}
	return s
}
