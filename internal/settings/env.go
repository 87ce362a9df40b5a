package settings

import (
	"fmt"
	"os"

	env "github.com/Netflix/go-env"
)

// Env is the part of the process environment barwm looks at.
type Env struct {
	Display    string `env:"DISPLAY"`
	ConfigPath string `env:"BARWM_CONFIG"`
	ConfigHome string `env:"XDG_CONFIG_HOME"`
	Home       string `env:"HOME"`

	// VTNR is set by the login manager when the session owns a virtual
	// terminal.
	VTNR string `env:"XDG_VTNR"`
}

// LoadEnv decodes environ, a list of "key=value" strings as returned by
// os.Environ.
func LoadEnv(environ []string) (Env, error) {
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return Env{}, fmt.Errorf("parse environment: %w", err)
	}
	var e Env
	if err := env.Unmarshal(es, &e); err != nil {
		return Env{}, fmt.Errorf("decode environment: %w", err)
	}
	return e, nil
}

// CurrentEnv decodes the process environment.
func CurrentEnv() (Env, error) {
	return LoadEnv(os.Environ())
}
