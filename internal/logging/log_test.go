package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func resetLogger(t *testing.T) {
	t.Helper()
	out, level, formatter := log.StandardLogger().Out, log.GetLevel(), log.StandardLogger().Formatter
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetLevel(level)
		log.SetFormatter(formatter)
	})
}

func TestInitLog_Console(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer

	require.NoError(t, InitLog("warn", "", &buf))
	require.Equal(t, log.WarnLevel, log.GetLevel())

	log.Info("hidden")
	log.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestInitLog_ConsoleKeyword(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer

	require.NoError(t, InitLog("debug", Console, &buf))
	log.Debug("details")
	require.Contains(t, buf.String(), "details")
}

func TestInitLog_File(t *testing.T) {
	resetLogger(t)
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "sdkdl.log")

	require.NoError(t, InitLog("info", path, &console))
	log.Info("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "to file"))
	require.Empty(t, console.String())
}

func TestInitLog_InvalidLevel(t *testing.T) {
	resetLogger(t)
	require.Error(t, InitLog("loud", "", &bytes.Buffer{}))
}
