package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestSplog(t *testing.T) {
	t.Parallel()

	t.Run("routes warnings and errors to stderr", func(t *testing.T) {
		t.Parallel()
		var stdout, stderr bytes.Buffer
		splog := NewSplogWithWriters(&stdout, &stderr)

		splog.Info("Processing %s", "ci.yml")
		splog.Warn("slow")
		splog.Error("broken")
		splog.Debug("hidden")

		require.Equal(t, "Processing ci.yml\n", stdout.String())
		require.Contains(t, stderr.String(), "slow")
		require.Contains(t, stderr.String(), "broken")
		require.NotContains(t, stdout.String()+stderr.String(), "hidden")
	})

	t.Run("quiet mode only prints errors", func(t *testing.T) {
		t.Parallel()
		var stdout, stderr bytes.Buffer
		splog := NewSplogWithWriters(&stdout, &stderr)
		splog.SetQuiet(true)
		require.True(t, splog.IsQuiet())

		splog.Info("info")
		splog.Newline()
		splog.Warn("warn")
		splog.Error("error")

		require.Empty(t, stdout.String())
		require.NotContains(t, stderr.String(), "warn")
		require.Contains(t, stderr.String(), "error")
	})

	t.Run("file log records debug output", func(t *testing.T) {
		t.Parallel()
		var stdout, stderr bytes.Buffer
		logFile := filepath.Join(t.TempDir(), "logs", "actionpin.log")
		splog, err := NewSplogWithConfig(SplogConfig{LogFile: logFile, Stdout: &stdout, Stderr: &stderr})
		require.NoError(t, err)

		splog.Debug("tag lookup failed")
		splog.Info("done")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		require.Contains(t, string(data), "tag lookup failed")
		require.Contains(t, string(data), "done")
		require.Equal(t, "done\n", stdout.String())
	})
}

func TestCreateLumberjackLogger(t *testing.T) {
	t.Setenv("ACTIONPIN_LOG_MAX_SIZE", "5")
	t.Setenv("ACTIONPIN_LOG_MAX_BACKUPS", "0")
	t.Setenv("ACTIONPIN_LOG_MAX_AGE", "not-a-number")

	logger := createLumberjackLogger("/tmp/actionpin.log")
	require.Equal(t, 5, logger.MaxSize)
	require.Equal(t, 0, logger.MaxBackups)
	require.Equal(t, 30, logger.MaxAge)
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("ACTIONPIN_LOG_FILE", "/var/log/env.log")
	require.Equal(t, "/tmp/flag.log", GetLogFilePath("/tmp/flag.log"))
	require.Equal(t, "/var/log/env.log", GetLogFilePath(""))
}

func TestColorProfile(t *testing.T) {
	t.Run("buffers get no colors", func(t *testing.T) {
		var buf bytes.Buffer
		require.Equal(t, termenv.Ascii, colorProfile(&buf))
	})

	t.Run("NO_COLOR disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		require.Equal(t, termenv.Ascii, colorProfile(os.Stdout))
	})
}

func TestConfirmRespectsNoInteractive(t *testing.T) {
	t.Setenv("ACTIONPIN_NO_INTERACTIVE", "1")
	_, err := SurveyConfirmer{}.Confirm("Write?", true)
	require.ErrorIs(t, err, ErrInteractiveDisabled)
}
