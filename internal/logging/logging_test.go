package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	req := require.New(t)
	req.Equal(slog.LevelDebug, ParseLevel("debug"))
	req.Equal(slog.LevelWarn, ParseLevel(" WARN "))
	req.Equal(slog.LevelWarn, ParseLevel("warning"))
	req.Equal(slog.LevelError, ParseLevel("error"))
	req.Equal(slog.LevelInfo, ParseLevel(""))
	req.Equal(slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	log := New("warn", &buf)
	log.Info("hidden")
	log.Warn("shown", "cmd", "picom")
	req.NotContains(buf.String(), "hidden")
	req.Contains(buf.String(), "msg=shown")
	req.Contains(buf.String(), "cmd=picom")
}
